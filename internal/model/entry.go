// File: internal/model/entry.go
package model

import "time"

// Entry 收入項目，金額以定點小數字串保存
type Entry struct {
	ID             int       `db:"id" json:"id"`
	CashFlowID     int       `db:"cash_flow_id" json:"cashFlowId"`
	Date           string    `db:"date" json:"date"`
	Description    string    `db:"description" json:"description"`
	AmountExpected string    `db:"amount_expected" json:"amountExpected"`
	AmountReceived string    `db:"amount_received" json:"amountReceived"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
	Tags           []Tag     `db:"-" json:"tags"`
}
