package core

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseDecimalToCents(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"1", 100, true},
		{"1.0", 100, true},
		{"1.23", 123, true},
		{"1,23", 123, true},
		{"0.01", 1, true},
		{"1.005", 101, true}, // half-up rounding
		{" 2.50 ", 250, true},
		{"-1", 0, false},
		{"0", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseDecimalToCents(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
		}
	}
}

func TestMoneyDecimalRoundTrip(t *testing.T) {
	m := Money{Cents: 1234}
	if got := m.Decimal().String(); got != "12.34" {
		t.Fatalf("expected 12.34, got %s", got)
	}
	if got := MoneyFromDecimal(m.Decimal()); got != m {
		t.Fatalf("expected %v, got %v", m, got)
	}
}

func TestMoneyFromDecimalRoundsHalfUp(t *testing.T) {
	d, _ := decimal.NewFromString("2.005")
	if got := MoneyFromDecimal(d).Cents; got != 201 {
		t.Fatalf("expected 201, got %d", got)
	}
	d, _ = decimal.NewFromString("2.004")
	if got := MoneyFromDecimal(d).Cents; got != 200 {
		t.Fatalf("expected 200, got %d", got)
	}
}

func TestMoneyString(t *testing.T) {
	if got := (Money{Cents: 50}).String(); got != "0.50" {
		t.Fatalf("expected 0.50, got %s", got)
	}
}
