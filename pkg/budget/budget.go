package budget

// Settings is the single logical budget configuration row of a user, created
// lazily on first write.
type Settings struct {
	MonthlyIncome float64
	Categories    []Category
}

// Category is a named budget ceiling. Expenses reference categories by name
// only; there is no referential integrity and unmatched expense categories
// are tolerated as uncategorized spend.
type Category struct {
	Name   string
	Color  string
	Budget float64
}

// CategorySummary is a category with the spend accumulated against it over a
// reporting range.
type CategorySummary struct {
	Category
	Spent float64
}

type Overview struct {
	MonthlyIncome float64
	Categories    []CategorySummary
	Uncategorized float64
	TotalSpent    float64
}
