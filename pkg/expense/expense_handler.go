package expense

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type ExpenseDTO struct {
	ID          string  `json:"id"`
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description,omitempty"`
	Date        string  `json:"date"`
	DueDate     string  `json:"dueDate,omitempty"`
	Status      string  `json:"status"`
	// Eligible is derived: the due date has arrived but the expense has not
	// been explicitly completed yet.
	Eligible bool `json:"eligibleForCompletion,omitempty"`
}

type ExpenseHandler struct {
	expenseService ExpenseService
}

func NewExpenseHandler(expenseService ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService}
}

func (h *ExpenseHandler) GetExpenses(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var from, to time.Time
	if fromParam := r.URL.Query().Get("from"); fromParam != "" {
		parsed, err := time.Parse(dateLayout, fromParam)
		if err != nil {
			http.Error(w, "Invalid from parameter", http.StatusBadRequest)
			return
		}
		from = parsed
	}
	if toParam := r.URL.Query().Get("to"); toParam != "" {
		parsed, err := time.Parse(dateLayout, toParam)
		if err != nil {
			http.Error(w, "Invalid to parameter", http.StatusBadRequest)
			return
		}
		to = parsed
	}

	expenses, err := h.expenseService.ListExpenses(r.Context(), from, to)
	if err != nil {
		h.writeError(w, err)
		return
	}

	dtos := make([]ExpenseDTO, 0, len(expenses))
	for _, expense := range expenses {
		dto := expenseToDTO(expense)
		dto.Eligible = h.expenseService.IsEligibleForCompletion(expense)
		dtos = append(dtos, dto)
	}
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *ExpenseHandler) GetExpense(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	expense, err := h.expenseService.GetExpense(r.Context(), mux.Vars(r)["expenseId"])
	if err != nil {
		h.writeError(w, err)
		return
	}

	dto := expenseToDTO(expense)
	dto.Eligible = h.expenseService.IsEligibleForCompletion(expense)
	if err := json.NewEncoder(w).Encode(dto); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *ExpenseHandler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new expense")
	w.Header().Set("Content-Type", "application/json")

	var dto ExpenseDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	expense, err := dtoToExpense(dto)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.expenseService.CreateExpense(r.Context(), expense)
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(expenseToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *ExpenseHandler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	expenseId := mux.Vars(r)["expenseId"]

	var dto ExpenseDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	expense, err := dtoToExpense(dto)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	updated, err := h.expenseService.UpdateExpense(r.Context(), expenseId, expense)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if err := json.NewEncoder(w).Encode(expenseToDTO(updated)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *ExpenseHandler) MarkCompleted(w http.ResponseWriter, r *http.Request) {
	expenseId := mux.Vars(r)["expenseId"]

	if err := h.expenseService.MarkCompleted(r.Context(), expenseId); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *ExpenseHandler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	expenseId := mux.Vars(r)["expenseId"]

	if err := h.expenseService.DeleteExpense(r.Context(), expenseId); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ExpenseHandler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrExpenseNotFound):
		http.Error(w, "Expense not found", http.StatusNotFound)
	case errors.Is(err, ErrInvalidExpense):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func expenseToDTO(expense Expense) ExpenseDTO {
	dto := ExpenseDTO{
		ID:          expense.ID,
		Category:    expense.Category,
		Amount:      expense.Amount,
		Description: expense.Description,
		Date:        expense.Date.Format(dateLayout),
		Status:      string(expense.Status),
	}
	if !expense.DueDate.IsZero() {
		dto.DueDate = expense.DueDate.Format(dateLayout)
	}
	return dto
}

func dtoToExpense(dto ExpenseDTO) (Expense, error) {
	expense := Expense{
		ID:          dto.ID,
		Category:    dto.Category,
		Amount:      dto.Amount,
		Description: dto.Description,
		Status:      Status(dto.Status),
	}
	if dto.Date != "" {
		date, err := time.Parse(dateLayout, dto.Date)
		if err != nil {
			return Expense{}, err
		}
		expense.Date = date
	}
	if dto.DueDate != "" {
		dueDate, err := time.Parse(dateLayout, dto.DueDate)
		if err != nil {
			return Expense{}, err
		}
		expense.DueDate = dueDate
	}
	return expense, nil
}
