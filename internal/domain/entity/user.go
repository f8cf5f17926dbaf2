package entity

import "time"

// Role rol de negocio de un User.
type Role string

// Roles válidos para User.
const (
	RoleAdmin    Role = "ADMIN"
	RoleManager  Role = "MANAGER"
	RoleCustomer Role = "CUSTOMER"
)

// Valid indica si r es uno de los roles conocidos.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleCustomer:
		return true
	}
	return false
}

// User cuenta de acceso. Puede enlazar como máximo un perfil Manager y un perfil Customer.
type User struct {
	ID                string
	Username          string
	Email             string
	PasswordHash      string // bcrypt hash, nunca plano
	Role              Role
	IsSuperuser       bool
	IsStaff           bool
	IsActive          bool
	FirstName         string
	LastName          string
	ManagerProfileID  *string
	CustomerProfileID *string
	LastLogin         *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// EnforceRoleInvariants un superusuario siempre es ADMIN.
func (u *User) EnforceRoleInvariants() {
	if u.IsSuperuser {
		u.Role = RoleAdmin
	}
}

// HasManagerProfile indica si el usuario tiene un perfil de manager enlazado.
func (u *User) HasManagerProfile() bool {
	return u.ManagerProfileID != nil && *u.ManagerProfileID != ""
}

// HasCustomerProfile indica si el usuario tiene un perfil de cliente enlazado.
func (u *User) HasCustomerProfile() bool {
	return u.CustomerProfileID != nil && *u.CustomerProfileID != ""
}
