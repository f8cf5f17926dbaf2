package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, username, email, password_hash, role, is_superuser, is_staff, is_active,
	first_name, last_name, manager_profile_id, customer_profile_id, last_login, created_at, updated_at`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL (usable con pool o tx).
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios. Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	query := `
		INSERT INTO users (id, username, email, password_hash, role, is_superuser, is_staff, is_active,
			first_name, last_name, manager_profile_id, customer_profile_id, last_login, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		u.ID, u.Username, u.Email, u.PasswordHash, string(u.Role), u.IsSuperuser, u.IsStaff, u.IsActive,
		u.FirstName, u.LastName, u.ManagerProfileID, u.CustomerProfileID, u.LastLogin, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		return wrapWrite("insert user", err)
	}
	return nil
}

// Update actualiza todos los campos editables del usuario.
func (r *UserRepo) Update(ctx context.Context, u *entity.User) error {
	query := `
		UPDATE users SET username = $2, email = $3, password_hash = $4, role = $5, is_superuser = $6,
			is_staff = $7, is_active = $8, first_name = $9, last_name = $10,
			manager_profile_id = $11, customer_profile_id = $12, updated_at = $13
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		u.ID, u.Username, u.Email, u.PasswordHash, string(u.Role), u.IsSuperuser,
		u.IsStaff, u.IsActive, u.FirstName, u.LastName,
		u.ManagerProfileID, u.CustomerProfileID, u.UpdatedAt,
	)
	if err != nil {
		return wrapWrite("update user", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.getOne(ctx, "get user", `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// GetByUsername obtiene un usuario por username (sensible a mayúsculas).
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.getOne(ctx, "get user by username", `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
}

// GetCustomerByEmail busca solo entre usuarios CUSTOMER; el email no distingue mayúsculas.
func (r *UserRepo) GetCustomerByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getOne(ctx, "get customer user by email",
		`SELECT `+userColumns+` FROM users WHERE role = 'CUSTOMER' AND lower(email) = $1 ORDER BY created_at LIMIT 1`,
		strings.ToLower(strings.TrimSpace(email)))
}

// ExistsByEmail indica si algún usuario tiene ese email.
func (r *UserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE lower(email) = $1)`,
		strings.ToLower(strings.TrimSpace(email))).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists user email: %w", err)
	}
	return exists, nil
}

// GetByManagerProfile usuario enlazado al perfil de manager.
func (r *UserRepo) GetByManagerProfile(ctx context.Context, managerID string) (*entity.User, error) {
	return r.getOne(ctx, "get user by manager", `SELECT `+userColumns+` FROM users WHERE manager_profile_id = $1`, managerID)
}

// GetByCustomerProfile usuario enlazado al perfil de cliente.
func (r *UserRepo) GetByCustomerProfile(ctx context.Context, customerID string) (*entity.User, error) {
	return r.getOne(ctx, "get user by customer", `SELECT `+userColumns+` FROM users WHERE customer_profile_id = $1`, customerID)
}

// UpdateLastLogin marca el último acceso.
func (r *UserRepo) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	if _, err := r.q.Exec(ctx, `UPDATE users SET last_login = $2 WHERE id = $1`, id, at); err != nil {
		return fmt.Errorf("update last login: %w", err)
	}
	return nil
}

func (r *UserRepo) getOne(ctx context.Context, op, query string, arg any) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	var role string
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &role, &u.IsSuperuser, &u.IsStaff, &u.IsActive,
		&u.FirstName, &u.LastName, &u.ManagerProfileID, &u.CustomerProfileID, &u.LastLogin, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	u.Role = entity.Role(role)
	return &u, nil
}
