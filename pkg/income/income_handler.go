package income

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/kentuckyfb/Payday/pkg/event"
)

type IncomeDTO struct {
	Total float64 `json:"total"`
	From  string  `json:"from"`
	To    string  `json:"to"`
}

type IncomeHandler struct {
	incomeService IncomeService
}

func NewIncomeHandler(incomeService IncomeService) *IncomeHandler {
	return &IncomeHandler{incomeService}
}

func (h *IncomeHandler) GetIncome(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	from, err := time.Parse(event.DateLayout, r.URL.Query().Get("from"))
	if err != nil {
		http.Error(w, "Invalid from parameter", http.StatusBadRequest)
		return
	}
	to, err := time.Parse(event.DateLayout, r.URL.Query().Get("to"))
	if err != nil {
		http.Error(w, "Invalid to parameter", http.StatusBadRequest)
		return
	}

	total, err := h.incomeService.TotalIncome(r.Context(), from, to)
	if err != nil {
		if errors.Is(err, event.ErrInvalidDateRange) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.writeIncome(w, total, from, to)
}

func (h *IncomeHandler) GetMonthlyIncome(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		http.Error(w, "Invalid year parameter", http.StatusBadRequest)
		return
	}
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || month < 1 || month > 12 {
		http.Error(w, "Invalid month parameter", http.StatusBadRequest)
		return
	}

	total, err := h.incomeService.MonthlyIncome(r.Context(), year, time.Month(month))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	h.writeIncome(w, total, start, start.AddDate(0, 1, -1))
}

func (h *IncomeHandler) writeIncome(w http.ResponseWriter, total float64, from, to time.Time) {
	dto := IncomeDTO{
		Total: total,
		From:  from.Format(event.DateLayout),
		To:    to.Format(event.DateLayout),
	}
	if err := json.NewEncoder(w).Encode(dto); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
