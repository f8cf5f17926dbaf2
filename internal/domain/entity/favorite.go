package entity

import "time"

// FavoriteProduct producto marcado como favorito por un cliente. El par (CustomerID, ProductID) es único.
type FavoriteProduct struct {
	ID         string
	CustomerID string
	ProductID  string
	AddedAt    time.Time
}
