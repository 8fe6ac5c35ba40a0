package budget

import (
	"context"
	"fmt"
	"time"

	"github.com/kentuckyfb/Payday/pkg/expense"
	"github.com/kentuckyfb/Payday/pkg/user"
)

// ExpenseLister is the slice of the expense service the budget overview needs.
type ExpenseLister interface {
	ListExpenses(ctx context.Context, from, to time.Time) ([]expense.Expense, error)
}

type BudgetService interface {
	// GetSettings returns zero-value settings when the user has none yet.
	GetSettings(ctx context.Context) (Settings, error)
	SaveSettings(ctx context.Context, settings Settings) (Settings, error)
	// Overview accumulates the user's expenses in [from, to] against the
	// configured categories by loose name equality. Spend in a category not
	// configured ends up in the uncategorized bucket.
	Overview(ctx context.Context, from, to time.Time) (Overview, error)
}

type BudgetServiceImpl struct {
	repo     BudgetRepo
	expenses ExpenseLister
}

func NewBudgetService(repo BudgetRepo, expenses ExpenseLister) *BudgetServiceImpl {
	return &BudgetServiceImpl{repo: repo, expenses: expenses}
}

func (s *BudgetServiceImpl) GetSettings(ctx context.Context) (Settings, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Settings{}, fmt.Errorf("failed to get current user: %w", err)
	}
	settings, err := s.repo.GetSettings(ctx, userId)
	if err != nil {
		return Settings{}, err
	}
	if settings == nil {
		return Settings{}, nil
	}
	return *settings, nil
}

func (s *BudgetServiceImpl) SaveSettings(ctx context.Context, settings Settings) (Settings, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Settings{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.SaveSettings(ctx, userId, settings)
}

func (s *BudgetServiceImpl) Overview(ctx context.Context, from, to time.Time) (Overview, error) {
	settings, err := s.GetSettings(ctx)
	if err != nil {
		return Overview{}, err
	}
	expenses, err := s.expenses.ListExpenses(ctx, from, to)
	if err != nil {
		return Overview{}, err
	}

	spentByCategory := make(map[string]float64)
	for _, e := range expenses {
		spentByCategory[e.Category] += e.Amount
	}

	overview := Overview{
		MonthlyIncome: settings.MonthlyIncome,
		Categories:    make([]CategorySummary, 0, len(settings.Categories)),
	}
	matched := make(map[string]bool)
	for _, category := range settings.Categories {
		overview.Categories = append(overview.Categories, CategorySummary{
			Category: category,
			Spent:    spentByCategory[category.Name],
		})
		matched[category.Name] = true
	}
	for name, spent := range spentByCategory {
		overview.TotalSpent += spent
		if !matched[name] {
			overview.Uncategorized += spent
		}
	}
	return overview, nil
}
