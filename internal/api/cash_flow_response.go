package api

import (
	"encoding/json"

	"cashflow/internal/model"
	"cashflow/internal/service"

	"github.com/shopspring/decimal"
)

// swagger:model api.SummaryResponse
type SummaryResponse struct {
	InitialBalance json.Number `json:"initialBalance" swaggertype:"number" example:"1000.00"`
	TotalEntries   json.Number `json:"totalEntries" swaggertype:"number" example:"500.00"`
	TotalExpenses  json.Number `json:"totalExpenses" swaggertype:"number" example:"200.00"`
	FinalBalance   json.Number `json:"finalBalance" swaggertype:"number" example:"1300.00"`
}

// swagger:model api.CashFlowDetailResponse
type CashFlowDetailResponse struct {
	model.CashFlow
	Entries  []model.Entry   `json:"entries"`
	Expenses []model.Expense `json:"expenses"`
	Summary  SummaryResponse `json:"summary"`
}

// money 以兩位小數輸出數字，不經過 float64
func money(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(2))
}

func NewSummaryResponse(s *service.Summary) SummaryResponse {
	return SummaryResponse{
		InitialBalance: money(s.InitialBalance),
		TotalEntries:   money(s.TotalEntries),
		TotalExpenses:  money(s.TotalExpenses),
		FinalBalance:   money(s.FinalBalance),
	}
}
