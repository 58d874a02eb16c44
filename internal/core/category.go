package core

type (
	// Category is an entry in the fixed category registry. ID is the stable
	// identifier; DisplayName is the join key used by Split.Category.
	// Renaming a display name orphans historical splits, so renames must go
	// through a data migration (not implemented here).
	Category struct {
		ID          string
		DisplayName string
		Color       string
		Icon        string
	}

	// Registry is the known category set, in display order.
	Registry struct {
		cats   []Category
		byName map[string]Category
	}
)

// SettlementCategory is the reserved display name for transactions
// synthesized by settle-up.
const SettlementCategory = "Settlement"

func NewRegistry(cats ...Category) Registry {
	r := Registry{
		cats:   append([]Category(nil), cats...),
		byName: make(map[string]Category, len(cats)),
	}
	for _, c := range cats {
		if _, dup := r.byName[c.DisplayName]; !dup {
			r.byName[c.DisplayName] = c
		}
	}
	return r
}

// Lookup finds a category by display name.
func (r Registry) Lookup(name string) (Category, bool) {
	c, ok := r.byName[name]
	return c, ok
}

// Known reports whether a display name is registered.
func (r Registry) Known(name string) bool {
	_, ok := r.byName[name]
	return ok
}

// All returns the categories in display order.
func (r Registry) All() []Category {
	return append([]Category(nil), r.cats...)
}

// DefaultRegistry returns the standard category set, including the reserved
// settlement category.
func DefaultRegistry() Registry {
	return NewRegistry(
		Category{ID: "groceries", DisplayName: "Groceries", Color: "#4caf50", Icon: "cart"},
		Category{ID: "rent", DisplayName: "Rent", Color: "#795548", Icon: "home"},
		Category{ID: "utilities", DisplayName: "Utilities", Color: "#ff9800", Icon: "bolt"},
		Category{ID: "transport", DisplayName: "Transport", Color: "#2196f3", Icon: "bus"},
		Category{ID: "dining", DisplayName: "Dining", Color: "#e91e63", Icon: "fork"},
		Category{ID: "entertainment", DisplayName: "Entertainment", Color: "#9c27b0", Icon: "film"},
		Category{ID: "health", DisplayName: "Health", Color: "#00bcd4", Icon: "heart"},
		Category{ID: "travel", DisplayName: "Travel", Color: "#3f51b5", Icon: "plane"},
		Category{ID: "other", DisplayName: "Other", Color: "#9e9e9e", Icon: "dots"},
		Category{ID: "settlement", DisplayName: SettlementCategory, Color: "#607d8b", Icon: "scale"},
	)
}
