package dto

import (
	"time"

	"github.com/jhoicas/Tienda-api/internal/domain/entity"
)

// SaveUserRequest alta o edición de usuario desde la API de administración.
// Password vacío en edición conserva el hash actual.
type SaveUserRequest struct {
	Username          string  `json:"username" validate:"required,max=150,username"`
	Email             string  `json:"email" validate:"omitempty,email,max=254"`
	Password          string  `json:"password"`
	FirstName         string  `json:"first_name" validate:"omitempty,max=150,cyrillic"`
	LastName          string  `json:"last_name" validate:"omitempty,max=150,cyrillic"`
	Role              string  `json:"role" validate:"required,oneof=ADMIN MANAGER CUSTOMER"`
	IsSuperuser       bool    `json:"is_superuser"`
	IsStaff           bool    `json:"is_staff"`
	IsActive          *bool   `json:"is_active"`
	ManagerProfileID  *string `json:"manager_profile_id" validate:"omitempty,uuid"`
	CustomerProfileID *string `json:"customer_profile_id" validate:"omitempty,uuid"`
}

// CustomerSignupRequest registro de cliente.
type CustomerSignupRequest struct {
	Email     string `json:"email" validate:"required,email,max=254"`
	FirstName string `json:"first_name" validate:"required,max=50,cyrillic"`
	LastName  string `json:"last_name" validate:"required,max=50,cyrillic"`
	Password1 string `json:"password1" validate:"required,min=8"`
	Password2 string `json:"password2" validate:"required,eqfield=Password1"`
}

// ManagerSignupRequest registro de manager.
type ManagerSignupRequest struct {
	Username  string `json:"username" validate:"required,max=150,username"`
	Email     string `json:"email" validate:"required,email,max=254"`
	FirstName string `json:"first_name" validate:"required,max=50,cyrillic"`
	LastName  string `json:"last_name" validate:"required,max=50,cyrillic"`
	Password1 string `json:"password1" validate:"required,min=8"`
	Password2 string `json:"password2" validate:"required,eqfield=Password1"`
}

// LoginRequest entrada para login: username (managers/admin) o email (clientes).
type LoginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID                string     `json:"id"`
	Username          string     `json:"username"`
	Email             string     `json:"email"`
	FirstName         string     `json:"first_name"`
	LastName          string     `json:"last_name"`
	Role              string     `json:"role"`
	IsSuperuser       bool       `json:"is_superuser"`
	IsStaff           bool       `json:"is_staff"`
	IsActive          bool       `json:"is_active"`
	ManagerProfileID  *string    `json:"manager_profile_id,omitempty"`
	CustomerProfileID *string    `json:"customer_profile_id,omitempty"`
	LastLogin         *time.Time `json:"last_login,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// LoginResponse salida del login y del registro: token de sesión, usuario y destino.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
	Redirect  string       `json:"redirect"`
}

// NewUserResponse mapea la entidad a la salida HTTP.
func NewUserResponse(u *entity.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:                u.ID,
		Username:          u.Username,
		Email:             u.Email,
		FirstName:         u.FirstName,
		LastName:          u.LastName,
		Role:              string(u.Role),
		IsSuperuser:       u.IsSuperuser,
		IsStaff:           u.IsStaff,
		IsActive:          u.IsActive,
		ManagerProfileID:  u.ManagerProfileID,
		CustomerProfileID: u.CustomerProfileID,
		LastLogin:         u.LastLogin,
		CreatedAt:         u.CreatedAt,
		UpdatedAt:         u.UpdatedAt,
	}
}
