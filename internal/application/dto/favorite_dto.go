package dto

import "time"

// ToggleFavoriteRequest alternar favorito.
type ToggleFavoriteRequest struct {
	ProductID string `json:"product_id" form:"product_id"`
}

// ToggleFavoriteResponse resultado del toggle: "added" o "removed".
type ToggleFavoriteResponse struct {
	Status    string `json:"status"`
	Count     int    `json:"count"`
	ProductID string `json:"product_id"`
}

// FavoriteListResponse favoritos del cliente.
type FavoriteListResponse struct {
	Products []ProductResponse `json:"products"`
	Count    int               `json:"count"`
}

// CustomerProfileResponse perfil del cliente.
type CustomerProfileResponse struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	MiddleName string    `json:"middle_name,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	Address    string    `json:"address,omitempty"`
	IsVerified bool      `json:"is_verified"`
	CreatedAt  time.Time `json:"created_at"`
}

// CustomerDashboardResponse panel del cliente.
type CustomerDashboardResponse struct {
	User          UserResponse             `json:"user"`
	Profile       *CustomerProfileResponse `json:"profile,omitempty"`
	FavoriteCount int                      `json:"favorite_count"`
}
