package core

type (
	// BudgetMap maps category display names to monthly limits. A category
	// without an entry has a zero (unset) limit.
	BudgetMap map[string]Money

	// CategorySpend is one category's spend against its limit for a window.
	CategorySpend struct {
		Category   Category
		Spent      Money
		Limit      Money
		OverBudget bool
	}

	// BudgetSummary is the per-category breakdown plus aggregate totals.
	// Remaining may be negative when spend exceeds the combined limits.
	BudgetSummary struct {
		PerCategory []CategorySpend
		TotalSpent  Money
		TotalLimit  Money
		Remaining   Money
	}
)

// Limit returns the configured limit for a category name, zero when unset.
func (b BudgetMap) Limit(name string) Money {
	return b[name]
}

// Clone returns a copy of the map.
func (b BudgetMap) Clone() BudgetMap {
	out := make(BudgetMap, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}

// AggregateBudget computes per-category spend against limits for the window.
// Splits naming categories missing from the registry are dropped silently;
// registries evolve and historical data must keep aggregating. A zero limit
// means "unset", never "instantly over budget".
func AggregateBudget(txns []Transaction, budgets BudgetMap, reg Registry, w Window) BudgetSummary {
	spent := make(map[string]Money)
	for _, t := range txns {
		if !t.InWindow(w) {
			continue
		}
		for _, s := range t.Splits {
			if !reg.Known(s.Category) {
				continue
			}
			spent[s.Category] = spent[s.Category].Add(s.Amount)
		}
	}

	var summary BudgetSummary
	for _, c := range reg.All() {
		row := CategorySpend{
			Category: c,
			Spent:    spent[c.DisplayName],
			Limit:    budgets.Limit(c.DisplayName),
		}
		row.OverBudget = row.Limit.Cents > 0 && row.Spent.Cents > row.Limit.Cents
		summary.PerCategory = append(summary.PerCategory, row)
		summary.TotalSpent = summary.TotalSpent.Add(row.Spent)
		summary.TotalLimit = summary.TotalLimit.Add(row.Limit)
	}
	summary.Remaining = summary.TotalLimit.Sub(summary.TotalSpent)
	return summary
}
