// Package identity gestiona el ciclo de vida de los usuarios y sus perfiles.
// Guardar un User es el punto de sincronización con su perfil de Manager.
package identity

import (
	"context"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/application/validation"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
)

const generatedUsernameAttempts = 5

// Service casos de uso de identidad: alta/edición de usuarios y registro de clientes y managers.
type Service struct {
	tx       TxRunner
	validate *validation.Validator
	hashCost int
	now      func() time.Time
}

// NewService construye el servicio.
func NewService(tx TxRunner, validate *validation.Validator) *Service {
	return &Service{tx: tx, validate: validate, hashCost: bcrypt.DefaultCost, now: time.Now}
}

// WithHashCost cambia el coste de bcrypt (tests).
func (s *Service) WithHashCost(cost int) *Service {
	s.hashCost = cost
	return s
}

// SaveUser crea (id vacío) o actualiza un usuario. User y perfil de Manager se escriben en una sola transacción.
func (s *Service) SaveUser(ctx context.Context, id string, in dto.SaveUserRequest) (*entity.User, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}
	creating := id == ""
	if creating && in.Password == "" {
		return nil, domain.NewValidationError("password", "campo obligatorio")
	}

	var saved *entity.User
	err := s.tx.RunIdentity(ctx, func(r Repos) error {
		user := &entity.User{IsActive: true}
		if !creating {
			existing, err := r.Users.GetByID(ctx, id)
			if err != nil {
				return err
			}
			if existing == nil {
				return domain.ErrUserNotFound
			}
			user = existing
		}

		if user.Username != in.Username {
			if err := ensureUsernameFree(ctx, r, in.Username, user.ID); err != nil {
				return err
			}
		}
		user.Username = in.Username
		user.Email = strings.TrimSpace(in.Email)
		user.FirstName = in.FirstName
		user.LastName = in.LastName
		user.Role = entity.Role(in.Role)
		user.IsSuperuser = in.IsSuperuser
		user.IsStaff = in.IsStaff
		if in.IsActive != nil {
			user.IsActive = *in.IsActive
		}
		if in.ManagerProfileID != nil {
			user.ManagerProfileID = in.ManagerProfileID
		}
		if in.CustomerProfileID != nil {
			user.CustomerProfileID = in.CustomerProfileID
		}
		if in.Password != "" {
			if err := s.setPassword(user, in.Password); err != nil {
				return err
			}
		}

		if err := s.persist(ctx, r, user, creating); err != nil {
			return err
		}
		saved = user
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// RegisterCustomer crea Customer y User (rol CUSTOMER) en una transacción.
func (s *Service) RegisterCustomer(ctx context.Context, in dto.CustomerSignupRequest) (*entity.User, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))

	var saved *entity.User
	err := s.tx.RunIdentity(ctx, func(r Repos) error {
		if existing, err := r.Customers.GetByEmail(ctx, email); err != nil {
			return err
		} else if existing != nil {
			return domain.ErrEmailAlreadyExists
		}
		if existing, err := r.Users.GetCustomerByEmail(ctx, email); err != nil {
			return err
		} else if existing != nil {
			return domain.ErrEmailAlreadyExists
		}

		now := s.now()
		customer := &entity.Customer{
			ID:        uuid.New().String(),
			Email:     email,
			FirstName: in.FirstName,
			LastName:  in.LastName,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := r.Customers.Create(ctx, customer); err != nil {
			return err
		}

		username, err := generateUsername(ctx, r)
		if err != nil {
			return err
		}
		user := &entity.User{
			Username:          username,
			Email:             email,
			Role:              entity.RoleCustomer,
			IsActive:          true,
			FirstName:         in.FirstName,
			LastName:          in.LastName,
			CustomerProfileID: &customer.ID,
		}
		if err := s.setPassword(user, in.Password1); err != nil {
			return err
		}
		if err := s.persist(ctx, r, user, true); err != nil {
			return err
		}
		saved = user
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// RegisterManager crea un User MANAGER; el perfil de Manager se crea al guardar.
func (s *Service) RegisterManager(ctx context.Context, in dto.ManagerSignupRequest) (*entity.User, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))

	var saved *entity.User
	err := s.tx.RunIdentity(ctx, func(r Repos) error {
		exists, err := r.Users.ExistsByEmail(ctx, email)
		if err != nil {
			return err
		}
		if exists {
			return domain.ErrEmailAlreadyExists
		}
		if err := ensureUsernameFree(ctx, r, in.Username, ""); err != nil {
			return err
		}
		user := &entity.User{
			Username:  in.Username,
			Email:     email,
			Role:      entity.RoleManager,
			IsActive:  true,
			FirstName: in.FirstName,
			LastName:  in.LastName,
		}
		if err := s.setPassword(user, in.Password1); err != nil {
			return err
		}
		if err := s.persist(ctx, r, user, true); err != nil {
			return err
		}
		saved = user
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// persist aplica las invariantes del User, lo escribe y sincroniza el perfil de Manager.
// Debe ejecutarse dentro de RunIdentity.
func (s *Service) persist(ctx context.Context, r Repos, user *entity.User, creating bool) error {
	user.EnforceRoleInvariants()
	if !user.Role.Valid() {
		return domain.NewValidationError("role", "rol inválido")
	}
	if err := ensureProfilesFree(ctx, r, user); err != nil {
		return err
	}
	if err := ensureCustomerEmailFree(ctx, r, user); err != nil {
		return err
	}

	now := s.now()
	user.UpdatedAt = now
	if creating {
		user.ID = uuid.New().String()
		user.CreatedAt = now
		if err := r.Users.Create(ctx, user); err != nil {
			return err
		}
	} else if err := r.Users.Update(ctx, user); err != nil {
		return err
	}

	if user.Role == entity.RoleManager {
		return s.syncManagerProfile(ctx, r, user)
	}
	return nil
}

// syncManagerProfile copia nombre y apellido al perfil enlazado en cada guardado,
// o crea y enlaza un perfil nuevo si el usuario no tiene uno.
func (s *Service) syncManagerProfile(ctx context.Context, r Repos, user *entity.User) error {
	now := s.now()
	if user.HasManagerProfile() {
		m, err := r.Managers.GetByID(ctx, *user.ManagerProfileID)
		if err != nil {
			return err
		}
		if m == nil {
			return fmt.Errorf("perfil de manager %s: %w", *user.ManagerProfileID, domain.ErrNotFound)
		}
		m.FirstName = user.FirstName
		m.LastName = user.LastName
		m.UpdatedAt = now
		return r.Managers.Update(ctx, m)
	}

	m := &entity.Manager{
		ID:        uuid.New().String(),
		FirstName: user.FirstName,
		LastName:  user.LastName,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := r.Managers.Create(ctx, m); err != nil {
		return err
	}
	user.ManagerProfileID = &m.ID
	return r.Users.Update(ctx, user)
}

func (s *Service) setPassword(user *entity.User, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = string(hash)
	return nil
}

// ensureProfilesFree un perfil solo puede pertenecer a un User.
func ensureProfilesFree(ctx context.Context, r Repos, user *entity.User) error {
	if user.HasManagerProfile() {
		m, err := r.Managers.GetByID(ctx, *user.ManagerProfileID)
		if err != nil {
			return err
		}
		if m == nil {
			return domain.NewValidationError("manager_profile_id", "el perfil no existe")
		}
		owner, err := r.Users.GetByManagerProfile(ctx, m.ID)
		if err != nil {
			return err
		}
		if owner != nil && owner.ID != user.ID {
			return domain.ErrProfileAlreadyLinked
		}
	}
	if user.HasCustomerProfile() {
		c, err := r.Customers.GetByID(ctx, *user.CustomerProfileID)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.NewValidationError("customer_profile_id", "el perfil no existe")
		}
		owner, err := r.Users.GetByCustomerProfile(ctx, c.ID)
		if err != nil {
			return err
		}
		if owner != nil && owner.ID != user.ID {
			return domain.ErrProfileAlreadyLinked
		}
	}
	return nil
}

// ensureCustomerEmailFree el email es el identificador de login del cliente: único entre usuarios CUSTOMER.
func ensureCustomerEmailFree(ctx context.Context, r Repos, user *entity.User) error {
	if user.Role != entity.RoleCustomer || user.Email == "" {
		return nil
	}
	existing, err := r.Users.GetCustomerByEmail(ctx, user.Email)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != user.ID {
		return domain.ErrEmailAlreadyExists
	}
	return nil
}

func ensureUsernameFree(ctx context.Context, r Repos, username, selfID string) error {
	existing, err := r.Users.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return domain.ErrUsernameTaken
	}
	return nil
}

// generateUsername "user_" + 8 caracteres hexadecimales, reintentando ante colisión.
func generateUsername(ctx context.Context, r Repos) (string, error) {
	for i := 0; i < generatedUsernameAttempts; i++ {
		id := uuid.New()
		candidate := "user_" + hex.EncodeToString(id[:4])
		existing, err := r.Users.GetByUsername(ctx, candidate)
		if err != nil {
			return "", err
		}
		if existing == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("generar username: %w", domain.ErrConflict)
}
