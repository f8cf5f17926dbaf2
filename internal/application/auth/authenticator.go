package auth

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
)

// CredentialStore búsquedas que necesita el Authenticator.
type CredentialStore interface {
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	GetCustomerByEmail(ctx context.Context, email string) (*entity.User, error)
}

// Authenticator valida credenciales. El username solo autentica cuentas MANAGER/ADMIN
// y el email solo autentica cuentas CUSTOMER.
type Authenticator struct {
	users     CredentialStore
	dummyHash []byte
}

// NewAuthenticator construye el autenticador.
func NewAuthenticator(users CredentialStore) *Authenticator {
	// Hash de relleno para igualar el tiempo de respuesta cuando no hay candidato.
	dummy, err := bcrypt.GenerateFromPassword([]byte("tienda-dummy-password"), bcrypt.DefaultCost)
	if err != nil {
		panic("auth: generar hash de relleno: " + err.Error())
	}
	return &Authenticator{users: users, dummyHash: dummy}
}

// Authenticate devuelve el usuario cuyas credenciales coinciden o domain.ErrInvalidCredentials.
// No distingue usuario inexistente de password incorrecto, no escribe nada y no registra credenciales.
// Los errores de infraestructura se devuelven envueltos.
func (a *Authenticator) Authenticate(ctx context.Context, identifier, password string) (*entity.User, error) {
	if identifier == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	compared := false

	user, err := a.users.GetByUsername(ctx, identifier)
	if err != nil {
		return nil, fmt.Errorf("buscar por username: %w", err)
	}
	if user != nil && user.Role != entity.RoleCustomer {
		compared = true
		if passwordMatches(user, password) {
			return user, nil
		}
	}

	if strings.Contains(identifier, "@") {
		customer, err := a.users.GetCustomerByEmail(ctx, identifier)
		if err != nil {
			return nil, fmt.Errorf("buscar por email: %w", err)
		}
		if customer != nil && customer.Role == entity.RoleCustomer {
			compared = true
			if passwordMatches(customer, password) {
				return customer, nil
			}
		}
	}

	if !compared {
		_ = bcrypt.CompareHashAndPassword(a.dummyHash, []byte(password))
	}
	return nil, domain.ErrInvalidCredentials
}

func passwordMatches(u *entity.User, password string) bool {
	if u.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}
