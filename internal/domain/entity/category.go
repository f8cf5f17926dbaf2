package entity

import "time"

// Category categoría de productos con slug único.
type Category struct {
	ID        string
	Name      string
	Slug      string
	CreatedAt time.Time
}
