package core

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

type (
	// Ratio is the agreed division of combined spend between the partners.
	// It holds partner1's share; partner2's share is the complement.
	Ratio struct {
		share1 decimal.Decimal
	}

	// Settlement is the outcome of an equity computation over a window.
	// When Balanced is false, Owing owes Owed to the other partner.
	Settlement struct {
		Balanced bool
		Owing    PartnerRole
		Owed     Money
		Paid     map[PartnerRole]Money
		Combined Money
	}
)

var ErrInvalidRatio = errors.New("split ratio percentages must be positive and sum to 100")

var one = decimal.NewFromInt(1)

// EvenSplit is the default 50/50 ratio.
func EvenSplit() Ratio {
	return Ratio{share1: decimal.New(5, -1)}
}

// NewRatio builds a ratio from whole percentages, e.g. NewRatio(45, 55).
func NewRatio(p1, p2 int64) (Ratio, error) {
	if p1 <= 0 || p2 <= 0 || p1+p2 != 100 {
		return Ratio{}, ErrInvalidRatio
	}
	return Ratio{share1: decimal.New(p1, -2)}, nil
}

// Share returns the given partner's fraction of combined spend.
func (r Ratio) Share(p PartnerRole) decimal.Decimal {
	if r.share1.IsZero() {
		// Zero value behaves as an even split.
		r = EvenSplit()
	}
	if p == Partner1 {
		return r.share1
	}
	return one.Sub(r.share1)
}

func (r Ratio) String() string {
	s1 := r.Share(Partner1).Shift(2)
	return fmt.Sprintf("%s/%s", s1.StringFixed(0), decimal.NewFromInt(100).Sub(s1).StringFixed(0))
}

// ComputeEquity derives who owes whom for the transactions inside the
// window. With no in-window transactions the result is balanced.
func ComputeEquity(txns []Transaction, w Window, r Ratio) Settlement {
	paid := map[PartnerRole]Money{Partner1: {}, Partner2: {}}
	for _, t := range txns {
		if !t.InWindow(w) {
			continue
		}
		paid[t.Payer] = paid[t.Payer].Add(t.Total())
	}
	combined := paid[Partner1].Add(paid[Partner2])

	// Expected share of partner1, rounded half-up at the cent.
	expected1 := combined.Decimal().Mul(r.Share(Partner1))
	owed1 := MoneyFromDecimal(expected1).Sub(paid[Partner1])

	s := Settlement{Paid: paid, Combined: combined}
	switch {
	case owed1.Cents > 0:
		s.Owing = Partner1
		s.Owed = owed1
	case owed1.Cents < 0:
		s.Owing = Partner2
		s.Owed = Money{Cents: -owed1.Cents}
	default:
		s.Balanced = true
	}
	return s
}

// SettlementAmount is the total a balancing transaction paid by the owing
// partner must carry so that recomputing equity over a window containing it
// comes out balanced. Paying x raises the payer's contribution by x but also
// raises their expected share by x*share, so x = owed / (1 - owingShare).
func SettlementAmount(s Settlement, r Ratio) Money {
	if s.Balanced {
		return Money{}
	}
	otherShare := r.Share(s.Owing.Other())
	return MoneyFromDecimal(s.Owed.Decimal().Div(otherShare))
}
