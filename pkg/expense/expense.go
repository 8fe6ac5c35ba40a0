package expense

import "time"

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// Expense is a single spend entry. Category is free text matched loosely
// against the budget categories; an unmatched category is tolerated and
// counted as uncategorized spend.
type Expense struct {
	ID          string
	Category    string
	Amount      float64
	Description string
	Date        time.Time
	DueDate     time.Time // zero = no due date
	Status      Status
}
