package auth

import (
	"context"
	"time"

	"github.com/jhoicas/Tienda-api/internal/application/access"
	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
)

// Registrar altas de clientes y managers (identity.Service).
type Registrar interface {
	RegisterCustomer(ctx context.Context, in dto.CustomerSignupRequest) (*entity.User, error)
	RegisterManager(ctx context.Context, in dto.ManagerSignupRequest) (*entity.User, error)
}

// UserReader lecturas y marcas de acceso sobre usuarios.
type UserReader interface {
	GetByID(ctx context.Context, id string) (*entity.User, error)
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
}

// AuthUseCase casos de uso de autenticación: login, registro, logout y usuario actual.
type AuthUseCase struct {
	authn     *Authenticator
	registrar Registrar
	users     UserReader
	sessions  *SessionManager
	now       func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(authn *Authenticator, registrar Registrar, users UserReader, sessions *SessionManager) *AuthUseCase {
	return &AuthUseCase{authn: authn, registrar: registrar, users: users, sessions: sessions, now: time.Now}
}

// Login verifica credenciales (username para staff, email para clientes) y emite la sesión.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.authn.Authenticate(ctx, in.Username, in.Password)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, domain.ErrForbidden
	}
	if err := uc.users.UpdateLastLogin(ctx, user.ID, uc.now()); err != nil {
		return nil, err
	}
	return uc.startSession(ctx, user)
}

// SignupCustomer registra un cliente e inicia su sesión.
func (uc *AuthUseCase) SignupCustomer(ctx context.Context, in dto.CustomerSignupRequest) (*dto.LoginResponse, error) {
	user, err := uc.registrar.RegisterCustomer(ctx, in)
	if err != nil {
		return nil, err
	}
	return uc.startSession(ctx, user)
}

// SignupManager registra un manager e inicia su sesión.
func (uc *AuthUseCase) SignupManager(ctx context.Context, in dto.ManagerSignupRequest) (*dto.LoginResponse, error) {
	user, err := uc.registrar.RegisterManager(ctx, in)
	if err != nil {
		return nil, err
	}
	return uc.startSession(ctx, user)
}

// Logout revoca la sesión del token.
func (uc *AuthUseCase) Logout(ctx context.Context, token string) error {
	return uc.sessions.Revoke(ctx, token)
}

// Me devuelve el usuario de la sesión.
func (uc *AuthUseCase) Me(ctx context.Context, principal *access.Principal) (*dto.UserResponse, error) {
	if principal == nil {
		return nil, domain.ErrUnauthorized
	}
	user, err := uc.users.GetByID(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return dto.NewUserResponse(user), nil
}

func (uc *AuthUseCase) startSession(ctx context.Context, user *entity.User) (*dto.LoginResponse, error) {
	token, expiresAt, err := uc.sessions.Issue(ctx, user)
	if err != nil {
		return nil, err
	}
	principal := &access.Principal{UserID: user.ID, Role: user.Role, IsSuperuser: user.IsSuperuser}
	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      *dto.NewUserResponse(user),
		Redirect:  access.HomeFor(principal),
	}, nil
}
