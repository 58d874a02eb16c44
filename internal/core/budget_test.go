package core

import "testing"

func TestAggregateBudget(t *testing.T) {
	reg := NewRegistry(
		Category{ID: "groceries", DisplayName: "Groceries"},
		Category{ID: "rent", DisplayName: "Rent"},
	)
	budgets := BudgetMap{
		"Groceries": {Cents: 20000},
	}
	w := MonthWindow(2025, 3)
	txns := []Transaction{
		{ID: "a", Date: NewDate(2025, 3, 1), Description: "shop", Payer: Partner1,
			Splits: []Split{
				{Category: "Groceries", Amount: Money{Cents: 15000}},
				{Category: "Rent", Amount: Money{Cents: 80000}},
			}},
		{ID: "b", Date: NewDate(2025, 3, 15), Description: "shop again", Payer: Partner2,
			Splits: []Split{{Category: "Groceries", Amount: Money{Cents: 8000}}}},
	}

	got := AggregateBudget(txns, budgets, reg, w)

	rows := map[string]CategorySpend{}
	for _, row := range got.PerCategory {
		rows[row.Category.DisplayName] = row
	}

	groceries := rows["Groceries"]
	if groceries.Spent.Cents != 23000 {
		t.Fatalf("expected groceries spent 23000, got %d", groceries.Spent.Cents)
	}
	if !groceries.OverBudget {
		t.Fatalf("expected groceries over budget (23000 > 20000)")
	}

	// Zero limit means unset, never instantly over budget.
	rent := rows["Rent"]
	if rent.Spent.Cents != 80000 {
		t.Fatalf("expected rent spent 80000, got %d", rent.Spent.Cents)
	}
	if rent.OverBudget {
		t.Fatalf("rent has no limit configured, must not be over budget")
	}

	if got.TotalSpent.Cents != 103000 {
		t.Fatalf("expected total spent 103000, got %d", got.TotalSpent.Cents)
	}
	if got.TotalLimit.Cents != 20000 {
		t.Fatalf("expected total limit 20000, got %d", got.TotalLimit.Cents)
	}
	if got.Remaining.Cents != -83000 {
		t.Fatalf("expected remaining -83000, got %d", got.Remaining.Cents)
	}
}

func TestAggregateBudgetWindowBoundary(t *testing.T) {
	reg := NewRegistry(Category{ID: "groceries", DisplayName: "Groceries"})
	w := MonthWindow(2025, 3)
	txns := []Transaction{
		{ID: "before", Date: NewDate(2025, 2, 28), Description: "x", Payer: Partner1,
			Splits: []Split{{Category: "Groceries", Amount: Money{Cents: 5000}}}},
		{ID: "after", Date: NewDate(2025, 4, 1), Description: "x", Payer: Partner1,
			Splits: []Split{{Category: "Groceries", Amount: Money{Cents: 5000}}}},
	}

	got := AggregateBudget(txns, BudgetMap{}, reg, w)
	if got.TotalSpent.Cents != 0 {
		t.Fatalf("out-of-window transactions must contribute 0, got %d", got.TotalSpent.Cents)
	}
}

func TestAggregateBudgetDropsUnknownCategories(t *testing.T) {
	reg := NewRegistry(Category{ID: "groceries", DisplayName: "Groceries"})
	w := MonthWindow(2025, 3)
	txns := []Transaction{
		{ID: "a", Date: NewDate(2025, 3, 1), Description: "x", Payer: Partner1,
			Splits: []Split{
				{Category: "Groceries", Amount: Money{Cents: 1000}},
				{Category: "Renamed Away", Amount: Money{Cents: 9000}},
			}},
	}

	got := AggregateBudget(txns, BudgetMap{}, reg, w)
	if got.TotalSpent.Cents != 1000 {
		t.Fatalf("unknown categories must be dropped silently, got total %d", got.TotalSpent.Cents)
	}
	if len(got.PerCategory) != 1 {
		t.Fatalf("expected one registry row, got %d", len(got.PerCategory))
	}
}
