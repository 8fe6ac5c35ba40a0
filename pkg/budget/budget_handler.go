package budget

import (
	"encoding/json"
	"net/http"
	"time"
)

const dateLayout = "2006-01-02"

type SettingsDTO struct {
	MonthlyIncome float64       `json:"monthlyIncome"`
	Categories    []CategoryDTO `json:"categories"`
}

type CategoryDTO struct {
	Name   string  `json:"name"`
	Color  string  `json:"color,omitempty"`
	Budget float64 `json:"budget"`
}

type CategorySummaryDTO struct {
	CategoryDTO
	Spent float64 `json:"spent"`
}

type OverviewDTO struct {
	MonthlyIncome float64              `json:"monthlyIncome"`
	Categories    []CategorySummaryDTO `json:"categories"`
	Uncategorized float64              `json:"uncategorized"`
	TotalSpent    float64              `json:"totalSpent"`
}

type BudgetHandler struct {
	budgetService BudgetService
}

func NewBudgetHandler(budgetService BudgetService) *BudgetHandler {
	return &BudgetHandler{budgetService}
}

func (h *BudgetHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	settings, err := h.budgetService.GetSettings(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := json.NewEncoder(w).Encode(settingsToDTO(settings)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *BudgetHandler) SaveSettings(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var dto SettingsDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	saved, err := h.budgetService.SaveSettings(r.Context(), dtoToSettings(dto))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := json.NewEncoder(w).Encode(settingsToDTO(saved)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *BudgetHandler) GetOverview(w http.ResponseWriter, r *http.Request) {
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

	overview, err := h.budgetService.Overview(r.Context(), from, to)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dto := OverviewDTO{
		MonthlyIncome: overview.MonthlyIncome,
		Categories:    make([]CategorySummaryDTO, 0, len(overview.Categories)),
		Uncategorized: overview.Uncategorized,
		TotalSpent:    overview.TotalSpent,
	}
	for _, summary := range overview.Categories {
		dto.Categories = append(dto.Categories, CategorySummaryDTO{
			CategoryDTO: CategoryDTO{Name: summary.Name, Color: summary.Color, Budget: summary.Budget},
			Spent:       summary.Spent,
		})
	}
	if err := json.NewEncoder(w).Encode(dto); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func settingsToDTO(settings Settings) SettingsDTO {
	dto := SettingsDTO{
		MonthlyIncome: settings.MonthlyIncome,
		Categories:    make([]CategoryDTO, 0, len(settings.Categories)),
	}
	for _, category := range settings.Categories {
		dto.Categories = append(dto.Categories, CategoryDTO{
			Name:   category.Name,
			Color:  category.Color,
			Budget: category.Budget,
		})
	}
	return dto
}

func dtoToSettings(dto SettingsDTO) Settings {
	settings := Settings{
		MonthlyIncome: dto.MonthlyIncome,
		Categories:    make([]Category, 0, len(dto.Categories)),
	}
	for _, category := range dto.Categories {
		settings.Categories = append(settings.Categories, Category{
			Name:   category.Name,
			Color:  category.Color,
			Budget: category.Budget,
		})
	}
	return settings
}
