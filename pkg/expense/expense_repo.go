package expense

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const dateLayout = "2006-01-02"

type ExpenseRepo interface {
	// ListExpenses returns the user's expenses ordered by date descending.
	// Zero from/to bounds mean unbounded; set bounds are inclusive.
	ListExpenses(ctx context.Context, userId int, from, to time.Time) ([]Expense, error)
	// FindExpense returns nil when no expense with the id belongs to the user.
	FindExpense(ctx context.Context, userId int, id string) (*Expense, error)
	StoreExpense(ctx context.Context, userId int, expense Expense) (Expense, error)
	UpdateExpense(ctx context.Context, userId int, expense Expense) (bool, error)
	UpdateStatus(ctx context.Context, userId int, id string, status Status) (bool, error)
	DeleteExpense(ctx context.Context, userId int, id string) (bool, error)
}

type ExpenseRepoImpl struct {
	db *sql.DB
}

func NewExpenseRepo(db *sql.DB) *ExpenseRepoImpl {
	return &ExpenseRepoImpl{db: db}
}

func (r *ExpenseRepoImpl) ListExpenses(ctx context.Context, userId int, from, to time.Time) ([]Expense, error) {
	query := "SELECT id, category, amount, description, date, due_date, status FROM expenses WHERE user_id = ?"
	args := []interface{}{userId}
	if !from.IsZero() {
		query += " AND date >= ?"
		args = append(args, from.Format(dateLayout))
	}
	if !to.IsZero() {
		query += " AND date <= ?"
		args = append(args, to.Format(dateLayout))
	}
	query += " ORDER BY date DESC, rowid DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not query expenses: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var expenses []Expense
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			err := fmt.Errorf("could not scan expense: %w", err)
			log.Error(err)
			return nil, err
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return expenses, nil
}

func (r *ExpenseRepoImpl) FindExpense(ctx context.Context, userId int, id string) (*Expense, error) {
	query := "SELECT id, category, amount, description, date, due_date, status FROM expenses WHERE id = ? AND user_id = ?"
	row := r.db.QueryRowContext(ctx, query, id, userId)

	expense, err := scanExpense(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		err := fmt.Errorf("could not scan expense: %w", err)
		log.Error(err)
		return nil, err
	}
	return &expense, nil
}

func (r *ExpenseRepoImpl) StoreExpense(ctx context.Context, userId int, expense Expense) (Expense, error) {
	query := `INSERT INTO expenses (id, user_id, category, amount, description, date, due_date, status)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %v", err)
		log.Error(err)
		return Expense{}, err
	}
	defer stmt.Close()

	if expense.ID == "" {
		expense.ID = uuid.NewString()
	}
	var dueDateParam interface{}
	if !expense.DueDate.IsZero() {
		dueDateParam = expense.DueDate.Format(dateLayout)
	}

	_, err = stmt.ExecContext(ctx,
		expense.ID,
		userId,
		expense.Category,
		expense.Amount,
		expense.Description,
		expense.Date.Format(dateLayout),
		dueDateParam,
		string(expense.Status),
	)
	if err != nil {
		err := fmt.Errorf("could not execute query: %v", err)
		log.Error(err)
		return Expense{}, err
	}
	return expense, nil
}

func (r *ExpenseRepoImpl) UpdateExpense(ctx context.Context, userId int, expense Expense) (bool, error) {
	query := `UPDATE expenses SET
					category = ?,
					amount = ?,
					description = ?,
					date = ?,
					due_date = ?,
					status = ?
				WHERE id = ? AND user_id = ?`

	var dueDateParam interface{}
	if !expense.DueDate.IsZero() {
		dueDateParam = expense.DueDate.Format(dateLayout)
	}

	result, err := r.db.ExecContext(ctx, query,
		expense.Category,
		expense.Amount,
		expense.Description,
		expense.Date.Format(dateLayout),
		dueDateParam,
		string(expense.Status),
		expense.ID,
		userId,
	)
	if err != nil {
		err := fmt.Errorf("could not execute query: %v", err)
		log.Error(err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
		return false, err
	}
	return rowsAffected == 1, nil
}

func (r *ExpenseRepoImpl) UpdateStatus(ctx context.Context, userId int, id string, status Status) (bool, error) {
	query := "UPDATE expenses SET status = ? WHERE id = ? AND user_id = ?"
	result, err := r.db.ExecContext(ctx, query, string(status), id, userId)
	if err != nil {
		err := fmt.Errorf("could not execute query: %v", err)
		log.Error(err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
		return false, err
	}
	return rowsAffected == 1, nil
}

func (r *ExpenseRepoImpl) DeleteExpense(ctx context.Context, userId int, id string) (bool, error) {
	query := "DELETE FROM expenses WHERE id = ? AND user_id = ?"
	result, err := r.db.ExecContext(ctx, query, id, userId)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
		return false, err
	}
	return rowsAffected == 1, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanExpense(row rowScanner) (Expense, error) {
	var expense Expense
	var dateString, status string
	var dueDate sql.NullString

	err := row.Scan(
		&expense.ID,
		&expense.Category,
		&expense.Amount,
		&expense.Description,
		&dateString,
		&dueDate,
		&status,
	)
	if err != nil {
		return Expense{}, err
	}

	expense.Date, err = time.Parse(dateLayout, dateString)
	if err != nil {
		return Expense{}, fmt.Errorf("could not parse expense date: %w", err)
	}
	if dueDate.Valid {
		expense.DueDate, err = time.Parse(dateLayout, dueDate.String)
		if err != nil {
			return Expense{}, fmt.Errorf("could not parse due date: %w", err)
		}
	}
	expense.Status = Status(status)
	return expense, nil
}
