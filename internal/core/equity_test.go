package core

import "testing"

func paidBy(t *testing.T, id string, payer PartnerRole, cents int64, date Date) Transaction {
	t.Helper()
	tx, err := NewTransaction(id, date, "test expense", payer,
		[]Split{{Category: "Groceries", Amount: Money{Cents: cents}}})
	if err != nil {
		t.Fatalf("build transaction: %v", err)
	}
	return tx
}

func TestComputeEquityEvenSplit(t *testing.T) {
	w := MonthWindow(2025, 3)
	txns := []Transaction{
		paidBy(t, "a", Partner1, 30000, NewDate(2025, 3, 5)),
		paidBy(t, "b", Partner2, 10000, NewDate(2025, 3, 20)),
	}

	s := ComputeEquity(txns, w, EvenSplit())
	if s.Balanced {
		t.Fatalf("expected imbalance")
	}
	// Combined 400, each owes 200; partner2 paid 100, so owes 100.
	if s.Owing != Partner2 {
		t.Fatalf("expected partner2 owing, got %s", s.Owing)
	}
	if s.Owed.Cents != 10000 {
		t.Fatalf("expected owed 10000 cents, got %d", s.Owed.Cents)
	}
	if s.Combined.Cents != 40000 {
		t.Fatalf("expected combined 40000 cents, got %d", s.Combined.Cents)
	}
}

func TestComputeEquityEmptyWindowIsBalanced(t *testing.T) {
	s := ComputeEquity(nil, MonthWindow(2025, 3), EvenSplit())
	if !s.Balanced {
		t.Fatalf("expected balanced for empty window, got %+v", s)
	}
	if s.Owed.Cents != 0 {
		t.Fatalf("expected zero owed, got %d", s.Owed.Cents)
	}
}

func TestComputeEquityIgnoresOutOfWindow(t *testing.T) {
	w := MonthWindow(2025, 3)
	txns := []Transaction{
		paidBy(t, "in", Partner1, 5000, NewDate(2025, 3, 31)),
		paidBy(t, "before", Partner2, 99900, NewDate(2025, 2, 28)),
		paidBy(t, "after", Partner2, 99900, NewDate(2025, 4, 1)),
	}
	s := ComputeEquity(txns, w, EvenSplit())
	if s.Combined.Cents != 5000 {
		t.Fatalf("expected combined 5000 cents, got %d", s.Combined.Cents)
	}
	if s.Owing != Partner2 || s.Owed.Cents != 2500 {
		t.Fatalf("expected partner2 owing 2500, got %s owing %d", s.Owing, s.Owed.Cents)
	}
}

func TestComputeEquityConfiguredRatio(t *testing.T) {
	ratio, err := NewRatio(45, 55)
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	w := MonthWindow(2025, 3)
	txns := []Transaction{
		paidBy(t, "a", Partner1, 30000, NewDate(2025, 3, 5)),
		paidBy(t, "b", Partner2, 10000, NewDate(2025, 3, 6)),
	}
	// Combined 400; partner1's expected share at 45% is 180, they paid 300.
	s := ComputeEquity(txns, w, ratio)
	if s.Owing != Partner2 || s.Owed.Cents != 12000 {
		t.Fatalf("expected partner2 owing 12000, got %s owing %d", s.Owing, s.Owed.Cents)
	}
}

func TestNewRatioRejectsInvalid(t *testing.T) {
	cases := [][2]int64{{0, 100}, {100, 0}, {-10, 110}, {45, 54}, {60, 50}}
	for _, c := range cases {
		if _, err := NewRatio(c[0], c[1]); err == nil {
			t.Fatalf("expected error for %d/%d", c[0], c[1])
		}
	}
	if _, err := NewRatio(45, 55); err != nil {
		t.Fatalf("expected ok for 45/55, got %v", err)
	}
}

func TestSettlementAmountRebalances(t *testing.T) {
	ratios := []Ratio{EvenSplit()}
	if r, err := NewRatio(45, 55); err == nil {
		ratios = append(ratios, r)
	}

	w := MonthWindow(2025, 3)
	for _, ratio := range ratios {
		txns := []Transaction{
			paidBy(t, "a", Partner1, 30000, NewDate(2025, 3, 5)),
			paidBy(t, "b", Partner2, 10000, NewDate(2025, 3, 6)),
		}
		s := ComputeEquity(txns, w, ratio)
		amount := SettlementAmount(s, ratio)

		txns = append(txns, paidBy(t, "settle", s.Owing, amount.Cents, NewDate(2025, 3, 28)))
		after := ComputeEquity(txns, w, ratio)
		// Sub-cent residue from rounding is tolerated.
		if !after.Balanced && after.Owed.Cents > 1 {
			t.Fatalf("ratio %s: expected balanced after settlement, still %s owes %d",
				ratio, after.Owing, after.Owed.Cents)
		}
	}
}

func TestSettlementAmountBalancedIsZero(t *testing.T) {
	if got := SettlementAmount(Settlement{Balanced: true}, EvenSplit()); got.Cents != 0 {
		t.Fatalf("expected zero, got %d", got.Cents)
	}
}

func TestRatioString(t *testing.T) {
	if got := EvenSplit().String(); got != "50/50" {
		t.Fatalf("expected 50/50, got %s", got)
	}
	r, _ := NewRatio(45, 55)
	if got := r.String(); got != "45/55" {
		t.Fatalf("expected 45/55, got %s", got)
	}
}
