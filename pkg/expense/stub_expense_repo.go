package expense

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type StubExpenseRepo struct {
	Expenses []Expense
}

func (s *StubExpenseRepo) ListExpenses(ctx context.Context, userId int, from, to time.Time) ([]Expense, error) {
	var expenses []Expense
	for _, e := range s.Expenses {
		if !from.IsZero() && e.Date.Before(from) {
			continue
		}
		if !to.IsZero() && e.Date.After(to) {
			continue
		}
		expenses = append(expenses, e)
	}
	return expenses, nil
}

func (s *StubExpenseRepo) FindExpense(ctx context.Context, userId int, id string) (*Expense, error) {
	for i := range s.Expenses {
		if s.Expenses[i].ID == id {
			expense := s.Expenses[i]
			return &expense, nil
		}
	}
	return nil, nil
}

func (s *StubExpenseRepo) StoreExpense(ctx context.Context, userId int, expense Expense) (Expense, error) {
	if expense.ID == "" {
		expense.ID = uuid.NewString()
	}
	s.Expenses = append(s.Expenses, expense)
	return expense, nil
}

func (s *StubExpenseRepo) UpdateExpense(ctx context.Context, userId int, expense Expense) (bool, error) {
	for i := range s.Expenses {
		if s.Expenses[i].ID == expense.ID {
			s.Expenses[i] = expense
			return true, nil
		}
	}
	return false, nil
}

func (s *StubExpenseRepo) UpdateStatus(ctx context.Context, userId int, id string, status Status) (bool, error) {
	for i := range s.Expenses {
		if s.Expenses[i].ID == id {
			s.Expenses[i].Status = status
			return true, nil
		}
	}
	return false, nil
}

func (s *StubExpenseRepo) DeleteExpense(ctx context.Context, userId int, id string) (bool, error) {
	for i := range s.Expenses {
		if s.Expenses[i].ID == id {
			s.Expenses = append(s.Expenses[:i], s.Expenses[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}
