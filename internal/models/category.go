package models

// Category classifies both transactions and budgets. The set is closed.
type Category string

const (
	CategoryFood          Category = "Food"
	CategoryTransport     Category = "Transport"
	CategoryUtilities     Category = "Utilities"
	CategoryEntertainment Category = "Entertainment"
	CategoryHealth        Category = "Health"
	CategoryShopping      Category = "Shopping"
	CategoryEducation     Category = "Education"
	CategoryOther         Category = "Other"
)

// Categories lists every category in display order. Aggregations iterate
// this slice so their output order is stable.
var Categories = []Category{
	CategoryFood,
	CategoryTransport,
	CategoryUtilities,
	CategoryEntertainment,
	CategoryHealth,
	CategoryShopping,
	CategoryEducation,
	CategoryOther,
}

// IsValid reports whether c is a member of the category set.
func (c Category) IsValid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Index returns the position of c in display order, or -1.
func (c Category) Index() int {
	for i, known := range Categories {
		if c == known {
			return i
		}
	}
	return -1
}
