package core

import (
	"errors"
	"strings"
)

const (
	// Partner1 and Partner2 are the only two roles in the ledger. The
	// partner count is fixed; there is no dynamic membership.
	Partner1 PartnerRole = "partner1"
	Partner2 PartnerRole = "partner2"
)

type (
	// PartnerRole identifies one of the two partners sharing the ledger.
	PartnerRole string

	// Split attributes a fragment of a transaction's total to one category.
	// Categories are joined by display name (the historical key).
	Split struct {
		Category string
		Amount   Money
	}

	// Transaction is a shared expense paid by one partner and split across
	// one or more categories. The total is always derived from Splits via
	// Total(); it is never stored as an independent field, so it cannot
	// diverge from the splits.
	Transaction struct {
		ID          string
		Date        Date
		Description string
		Payer       PartnerRole
		Splits      []Split
	}

	// PartnerProfile maps the two roles to display names. Cosmetic only;
	// it never affects computation.
	PartnerProfile map[PartnerRole]string
)

var (
	ErrEmptyID          = errors.New("empty transaction id")
	ErrEmptySplits      = errors.New("transaction has no splits")
	ErrEmptyCategory    = errors.New("empty split category")
	ErrNegativeAmount   = errors.New("negative amount")
	ErrNonPositiveTotal = errors.New("transaction total must be positive")
	ErrEmptyDescription = errors.New("empty description")
	ErrInvalidPayer     = errors.New("payer must be one of the two partner roles")
)

// Valid reports whether r is one of the two partner roles.
func (r PartnerRole) Valid() bool {
	return r == Partner1 || r == Partner2
}

// Other returns the opposite partner role.
func (r PartnerRole) Other() PartnerRole {
	if r == Partner1 {
		return Partner2
	}
	return Partner1
}

func (s Split) Validate() error {
	if strings.TrimSpace(s.Category) == "" {
		return ErrEmptyCategory
	}
	if s.Amount.Cents < 0 {
		return ErrNegativeAmount
	}
	return nil
}

// NewTransaction builds a validated transaction. The id is supplied by the
// creating client and must be stable across sync cycles.
func NewTransaction(id string, date Date, description string, payer PartnerRole, splits []Split) (Transaction, error) {
	t := Transaction{
		ID:          id,
		Date:        date,
		Description: description,
		Payer:       payer,
		Splits:      splits,
	}
	if err := t.Validate(); err != nil {
		return Transaction{}, err
	}
	return t, nil
}

// Total is the derived, read-only projection of the split amounts.
func (t Transaction) Total() Money {
	var cents int64
	for _, s := range t.Splits {
		cents += s.Amount.Cents
	}
	return Money{Cents: cents}
}

func (t Transaction) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return ErrEmptyID
	}
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if len(strings.TrimSpace(t.Description)) == 0 {
		return ErrEmptyDescription
	}
	if !t.Payer.Valid() {
		return ErrInvalidPayer
	}
	if len(t.Splits) == 0 {
		return ErrEmptySplits
	}
	for _, s := range t.Splits {
		if err := s.Validate(); err != nil {
			return err
		}
	}
	if t.Total().Cents <= 0 {
		return ErrNonPositiveTotal
	}
	return nil
}

// InWindow reports whether the transaction date falls inside w.
func (t Transaction) InWindow(w Window) bool {
	return w.Contains(t.Date.Time)
}

// DefaultProfile returns placeholder partner display names.
func DefaultProfile() PartnerProfile {
	return PartnerProfile{
		Partner1: "Partner 1",
		Partner2: "Partner 2",
	}
}
