package app

import (
	"github.com/gorilla/mux"
	"github.com/kentuckyfb/Payday/internal/config"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Events
	r.HandleFunc("/api/event", deps.EventHandler.GetEventsForDate).Queries("date", "{date}").Methods("GET")
	r.HandleFunc("/api/event", deps.EventHandler.GetEvents).Methods("GET")
	r.HandleFunc("/api/event", deps.EventHandler.CreateEvent).Methods("POST")
	r.HandleFunc("/api/event/calendar", deps.EventHandler.GetCalendar).Methods("GET")
	r.HandleFunc("/api/event/{eventId}", deps.EventHandler.GetEvent).Methods("GET")
	r.HandleFunc("/api/event/{eventId}", deps.EventHandler.UpdateEvent).Methods("PUT")
	r.HandleFunc("/api/event/{eventId}", deps.EventHandler.DeleteEvent).Methods("DELETE")

	// Income
	r.HandleFunc("/api/income", deps.IncomeHandler.GetIncome).Queries("from", "{from}", "to", "{to}").Methods("GET")
	r.HandleFunc("/api/income/monthly", deps.IncomeHandler.GetMonthlyIncome).Queries("year", "{year}", "month", "{month}").Methods("GET")

	// Expenses
	r.HandleFunc("/api/expense", deps.ExpenseHandler.GetExpenses).Methods("GET")
	r.HandleFunc("/api/expense", deps.ExpenseHandler.CreateExpense).Methods("POST")
	r.HandleFunc("/api/expense/{expenseId}", deps.ExpenseHandler.GetExpense).Methods("GET")
	r.HandleFunc("/api/expense/{expenseId}", deps.ExpenseHandler.UpdateExpense).Methods("PUT")
	r.HandleFunc("/api/expense/{expenseId}/status", deps.ExpenseHandler.MarkCompleted).Methods("PATCH")
	r.HandleFunc("/api/expense/{expenseId}", deps.ExpenseHandler.DeleteExpense).Methods("DELETE")

	// Budget
	r.HandleFunc("/api/budget/settings", deps.BudgetHandler.GetSettings).Methods("GET")
	r.HandleFunc("/api/budget/settings", deps.BudgetHandler.SaveSettings).Methods("PUT")
	r.HandleFunc("/api/budget/overview", deps.BudgetHandler.GetOverview).Methods("GET")

	// User management
	r.HandleFunc("/api/user/current", deps.UserHandler.CurrentUser).Methods("GET")
	r.HandleFunc("/api/user/current", deps.UserHandler.UpdateUser).Methods("PUT")
	r.HandleFunc("/api/user", deps.UserHandler.CreateUser).Methods("POST")
}
