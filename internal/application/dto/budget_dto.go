package dto

import "github.com/m4lucen4/alquilandia-dashboard/internal/domain/entity"

// BudgetListRequest query de GET /api/budgets.
type BudgetListRequest struct {
	Page            int    `query:"page"`
	PageSize        int    `query:"page_size"`
	BudgetReference string `query:"budget_reference"`
	Client          string `query:"client"`
}

// BudgetItem presupuesto con los campos de presentación ya resueltos.
type BudgetItem struct {
	entity.Budget
	ClientName  string `json:"client_name"`
	StatusLabel string `json:"status_label"`
}

// BudgetListResponse página de presupuestos.
type BudgetListResponse struct {
	Items    []BudgetItem `json:"items"`
	Page     int          `json:"page"`
	PageSize int          `json:"page_size"`
	Total    int          `json:"total"`
}
