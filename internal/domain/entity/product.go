package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product artículo publicado en una sucursal. (Name, StoreID) es único y Slug es único global.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal // > 0
	Available   bool
	CategoryID  string
	StoreID     string
	CreatedBy   string // Manager.ID
	ImageKey    string
	ExternalURL string
	Slug        string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Datos de lectura (JOIN), no se persisten.
	CategoryName string
	CategorySlug string
	StoreCity    string
	StoreAddress string
}
