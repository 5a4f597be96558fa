// File: internal/model/cash_flow.go
package model

import "time"

// CashFlow 代表單一月份的現金流帳本，(Month, Year) 全域唯一
type CashFlow struct {
	ID             int       `db:"id" json:"id"`
	Month          int       `db:"month" json:"month"`
	Year           int       `db:"year" json:"year"`
	InitialBalance string    `db:"initial_balance" json:"initialBalance"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
}
