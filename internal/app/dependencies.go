package app

import (
	"database/sql"

	"github.com/kentuckyfb/Payday/internal/config"
	"github.com/kentuckyfb/Payday/pkg/budget"
	"github.com/kentuckyfb/Payday/pkg/event"
	"github.com/kentuckyfb/Payday/pkg/expense"
	"github.com/kentuckyfb/Payday/pkg/income"
	"github.com/kentuckyfb/Payday/pkg/user"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	UserService user.Service
	UserHandler *user.Handler

	EventRepo    event.EventRepository
	EventService event.EventService
	EventHandler *event.EventHandler

	IncomeService *income.IncomeServiceImpl
	IncomeHandler *income.IncomeHandler

	ExpenseRepo    expense.ExpenseRepo
	ExpenseService expense.ExpenseService
	ExpenseHandler *expense.ExpenseHandler

	BudgetRepo    budget.BudgetRepo
	BudgetService budget.BudgetService
	BudgetHandler *budget.BudgetHandler
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *sql.DB, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.UserService = user.NewUserService(user.NewUserRepo(db))
	deps.UserHandler = user.NewHandler(deps.UserService)

	deps.EventRepo = event.NewEventRepo(db)
	deps.EventService = event.NewEventService(deps.EventRepo)
	deps.EventHandler = event.NewEventHandler(deps.EventService)

	deps.IncomeService = income.NewIncomeService(deps.EventService, deps.UserService, cfg.DefaultRate)
	deps.IncomeHandler = income.NewIncomeHandler(deps.IncomeService)

	deps.ExpenseRepo = expense.NewExpenseRepo(db)
	deps.ExpenseService = expense.NewExpenseService(deps.ExpenseRepo)
	deps.ExpenseHandler = expense.NewExpenseHandler(deps.ExpenseService)

	deps.BudgetRepo = budget.NewBudgetRepo(db)
	deps.BudgetService = budget.NewBudgetService(deps.BudgetRepo, deps.ExpenseService)
	deps.BudgetHandler = budget.NewBudgetHandler(deps.BudgetService)

	return deps
}
