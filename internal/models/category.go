package models

import "time"

// Category is the database representation of a global category row, unique
// on (name, kind).
type Category struct {
	CategoryID string    `db:"category_id"`
	Name       string    `db:"name"`
	Kind       string    `db:"kind"`
	CreatedAt  time.Time `db:"created_at"`
}
