// File: internal/model/tag.go
package model

import "time"

const DefaultTagColor = "#6366f1"

type Tag struct {
	ID        int       `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Color     string    `db:"color" json:"color"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
