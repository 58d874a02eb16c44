package core

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Wire shapes shared by the sync protocol and the local store. Amounts
// travel as plain decimal numbers in whole currency units; dates as RFC3339.
type (
	wireSplit struct {
		CategoryName string      `json:"categoryName"`
		Amount       json.Number `json:"amount"`
	}

	wireTransaction struct {
		ID          string      `json:"id"`
		Date        string      `json:"date"`
		Description string      `json:"description"`
		UserID      string      `json:"userId"`
		TotalAmount json.Number `json:"totalAmount"`
		Splits      []wireSplit `json:"splits"`
	}
)

// Spreadsheet-edited rows sometimes carry bare dates.
var wireDateLayouts = []string{time.RFC3339, "2006-01-02"}

func (m Money) wireNumber() json.Number {
	return json.Number(m.Decimal().String())
}

func moneyFromNumber(n json.Number) (Money, error) {
	d, err := decimal.NewFromString(n.String())
	if err != nil {
		return Money{}, fmt.Errorf("parse amount %q: %w", n, err)
	}
	if d.IsNegative() {
		return Money{}, ErrNegativeAmount
	}
	return MoneyFromDecimal(d), nil
}

func (t Transaction) MarshalJSON() ([]byte, error) {
	wt := wireTransaction{
		ID:          t.ID,
		Date:        t.Date.UTC().Format(time.RFC3339),
		Description: t.Description,
		UserID:      string(t.Payer),
		TotalAmount: t.Total().wireNumber(),
		Splits:      make([]wireSplit, 0, len(t.Splits)),
	}
	for _, s := range t.Splits {
		wt.Splits = append(wt.Splits, wireSplit{
			CategoryName: s.Category,
			Amount:       s.Amount.wireNumber(),
		})
	}
	return json.Marshal(wt)
}

// UnmarshalJSON decodes the wire shape. The declared totalAmount is ignored:
// the total is always re-derived from the splits, so a row whose stored
// total drifted from its splits is corrected on decode. Domain invariants
// (non-empty splits, positive total) are checked by Validate, not here.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	var wt wireTransaction
	if err := json.Unmarshal(data, &wt); err != nil {
		return err
	}
	var date time.Time
	var err error
	for _, layout := range wireDateLayouts {
		date, err = time.Parse(layout, wt.Date)
		if err == nil {
			break
		}
	}
	if err != nil {
		return fmt.Errorf("parse transaction date %q: %w", wt.Date, err)
	}
	out := Transaction{
		ID:          wt.ID,
		Date:        DateOf(date),
		Description: wt.Description,
		Payer:       PartnerRole(wt.UserID),
		Splits:      make([]Split, 0, len(wt.Splits)),
	}
	for _, ws := range wt.Splits {
		amount, err := moneyFromNumber(ws.Amount)
		if err != nil {
			return fmt.Errorf("transaction %s: %w", wt.ID, err)
		}
		out.Splits = append(out.Splits, Split{Category: ws.CategoryName, Amount: amount})
	}
	*t = out
	return nil
}

func (b BudgetMap) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(b))
	for name, limit := range b {
		out[name] = json.RawMessage(limit.Decimal().String())
	}
	return json.Marshal(out)
}

func (b *BudgetMap) UnmarshalJSON(data []byte) error {
	var raw map[string]json.Number
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(BudgetMap, len(raw))
	for name, n := range raw {
		limit, err := moneyFromNumber(n)
		if err != nil {
			return fmt.Errorf("budget %q: %w", name, err)
		}
		out[name] = limit
	}
	*b = out
	return nil
}
