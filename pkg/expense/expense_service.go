package expense

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kentuckyfb/Payday/internal/utils"
	"github.com/kentuckyfb/Payday/pkg/user"
	log "github.com/sirupsen/logrus"
)

var (
	ErrExpenseNotFound = errors.New("expense not found")
	ErrInvalidExpense  = errors.New("invalid expense")
)

type ExpenseService interface {
	ListExpenses(ctx context.Context, from, to time.Time) ([]Expense, error)
	GetExpense(ctx context.Context, id string) (Expense, error)
	CreateExpense(ctx context.Context, expense Expense) (Expense, error)
	UpdateExpense(ctx context.Context, id string, expense Expense) (Expense, error)
	MarkCompleted(ctx context.Context, id string) error
	DeleteExpense(ctx context.Context, id string) error
	// IsEligibleForCompletion reports whether the expense's due date has
	// arrived. The status stays pending until explicitly completed.
	IsEligibleForCompletion(expense Expense) bool
}

type ExpenseServiceImpl struct {
	repo  ExpenseRepo
	clock utils.Clock
}

func NewExpenseService(repo ExpenseRepo) *ExpenseServiceImpl {
	return &ExpenseServiceImpl{repo: repo, clock: &utils.SystemClock{}}
}

func (s *ExpenseServiceImpl) ListExpenses(ctx context.Context, from, to time.Time) ([]Expense, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		return nil, fmt.Errorf("%w: end date is before start date", ErrInvalidExpense)
	}
	return s.repo.ListExpenses(ctx, userId, from, to)
}

func (s *ExpenseServiceImpl) GetExpense(ctx context.Context, id string) (Expense, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Expense{}, fmt.Errorf("failed to get current user: %w", err)
	}
	found, err := s.repo.FindExpense(ctx, userId, id)
	if err != nil {
		return Expense{}, err
	}
	if found == nil {
		return Expense{}, ErrExpenseNotFound
	}
	return *found, nil
}

func (s *ExpenseServiceImpl) CreateExpense(ctx context.Context, expense Expense) (Expense, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Expense{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if expense.Status == "" {
		expense.Status = StatusPending
	}
	if expense.Date.IsZero() {
		now := s.clock.Now()
		expense.Date = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}
	if err := validateExpense(expense); err != nil {
		return Expense{}, err
	}
	return s.repo.StoreExpense(ctx, userId, expense)
}

func (s *ExpenseServiceImpl) UpdateExpense(ctx context.Context, id string, expense Expense) (Expense, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Expense{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if err := validateExpense(expense); err != nil {
		return Expense{}, err
	}

	expense.ID = id
	updated, err := s.repo.UpdateExpense(ctx, userId, expense)
	if err != nil {
		return Expense{}, err
	}
	if !updated {
		log.Warnf("expense not updated, probably because it does not exist (%s) or the user (%d) is not the owner", id, userId)
		return Expense{}, ErrExpenseNotFound
	}
	return expense, nil
}

func (s *ExpenseServiceImpl) MarkCompleted(ctx context.Context, id string) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}
	updated, err := s.repo.UpdateStatus(ctx, userId, id, StatusCompleted)
	if err != nil {
		return err
	}
	if !updated {
		return ErrExpenseNotFound
	}
	return nil
}

func (s *ExpenseServiceImpl) DeleteExpense(ctx context.Context, id string) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}
	deleted, err := s.repo.DeleteExpense(ctx, userId, id)
	if err != nil {
		return err
	}
	if !deleted {
		log.Warnf("expense not deleted, probably because it does not exist (%s) or the user (%d) is not the owner", id, userId)
		return ErrExpenseNotFound
	}
	return nil
}

func (s *ExpenseServiceImpl) IsEligibleForCompletion(expense Expense) bool {
	if expense.Status == StatusCompleted || expense.DueDate.IsZero() {
		return false
	}
	now := s.clock.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return !expense.DueDate.After(today)
}

func validateExpense(expense Expense) error {
	if expense.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidExpense)
	}
	if expense.Category == "" {
		return fmt.Errorf("%w: category is required", ErrInvalidExpense)
	}
	switch expense.Status {
	case StatusPending, StatusCompleted:
	default:
		return fmt.Errorf("%w: unknown status %q", ErrInvalidExpense, expense.Status)
	}
	return nil
}
