package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Tienda-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Los Get* devuelven (nil, nil) cuando no existe el registro.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	// GetCustomerByEmail busca solo entre usuarios con rol CUSTOMER.
	GetCustomerByEmail(ctx context.Context, email string) (*entity.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	GetByManagerProfile(ctx context.Context, managerID string) (*entity.User, error)
	GetByCustomerProfile(ctx context.Context, customerID string) (*entity.User, error)
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
}
