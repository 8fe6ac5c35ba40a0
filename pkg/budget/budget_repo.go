package budget

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

type BudgetRepo interface {
	// GetSettings returns nil when the user has no settings row yet.
	GetSettings(ctx context.Context, userId int) (*Settings, error)
	// SaveSettings inserts the user's settings row on first write and
	// updates it afterwards.
	SaveSettings(ctx context.Context, userId int, settings Settings) (Settings, error)
}

type BudgetRepoImpl struct {
	db *sql.DB
}

func NewBudgetRepo(db *sql.DB) *BudgetRepoImpl {
	return &BudgetRepoImpl{db: db}
}

func (r *BudgetRepoImpl) GetSettings(ctx context.Context, userId int) (*Settings, error) {
	query := "SELECT monthly_income, categories FROM budget_settings WHERE user_id = ?"
	row := r.db.QueryRowContext(ctx, query, userId)

	var settings Settings
	var categoriesString string
	err := row.Scan(&settings.MonthlyIncome, &categoriesString)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		err := fmt.Errorf("could not scan budget settings: %w", err)
		log.Error(err)
		return nil, err
	}
	if err := json.Unmarshal([]byte(categoriesString), &settings.Categories); err != nil {
		err := fmt.Errorf("could not unmarshal budget categories: %w", err)
		log.Error(err)
		return nil, err
	}
	return &settings, nil
}

func (r *BudgetRepoImpl) SaveSettings(ctx context.Context, userId int, settings Settings) (Settings, error) {
	categories, err := json.Marshal(settings.Categories)
	if err != nil {
		return Settings{}, fmt.Errorf("could not marshal budget categories: %w", err)
	}

	query := `INSERT INTO budget_settings (user_id, monthly_income, categories) VALUES (?, ?, ?)
				ON CONFLICT (user_id) DO UPDATE SET monthly_income = excluded.monthly_income, categories = excluded.categories`
	_, err = r.db.ExecContext(ctx, query, userId, settings.MonthlyIncome, string(categories))
	if err != nil {
		err := fmt.Errorf("could not execute query: %v", err)
		log.Error(err)
		return Settings{}, err
	}
	return settings, nil
}
