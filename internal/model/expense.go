// File: internal/model/expense.go
package model

import "time"

type Expense struct {
	ID          int       `db:"id" json:"id"`
	CashFlowID  int       `db:"cash_flow_id" json:"cashFlowId"`
	Date        string    `db:"date" json:"date"`
	Description string    `db:"description" json:"description"`
	Amount      string    `db:"amount" json:"amount"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	Tags        []Tag     `db:"-" json:"tags"`
}
