package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/Tienda-api/internal/domain"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
)

// Constraints únicos con error de dominio propio; el resto se traduce a ErrDuplicate.
const (
	constraintUsername      = "users_username_key"
	constraintUserManager   = "users_manager_profile_id_key"
	constraintUserCustomer  = "users_customer_profile_id_key"
	constraintCustomerEmail = "customers_email_key"
	constraintUserEmail     = "users_customer_email_key"
)

func pgError(err error) *pgconn.PgError {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr
	}
	return nil
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	if pgErr := pgError(err); pgErr != nil {
		return pgErr.Code == codeUniqueViolation
	}
	return strings.Contains(err.Error(), codeUniqueViolation)
}

// mapWriteError traduce violaciones de constraints a errores de dominio. nil si no aplica.
func mapWriteError(err error) error {
	pgErr := pgError(err)
	if pgErr == nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return nil
	}
	switch pgErr.Code {
	case codeUniqueViolation:
		switch pgErr.ConstraintName {
		case constraintUsername:
			return domain.ErrUsernameTaken
		case constraintCustomerEmail, constraintUserEmail:
			return domain.ErrEmailAlreadyExists
		case constraintUserManager, constraintUserCustomer:
			return domain.ErrProfileAlreadyLinked
		}
		return domain.ErrDuplicate
	case codeForeignKeyViolation:
		return domain.ErrConflict
	case codeCheckViolation:
		return domain.ErrInvalidInput
	}
	return nil
}

// wrapWrite devuelve el error de dominio correspondiente o envuelve err con op.
func wrapWrite(op string, err error) error {
	if mapped := mapWriteError(err); mapped != nil {
		return mapped
	}
	return fmt.Errorf("%s: %w", op, err)
}

// escapeLike escapa los comodines de LIKE para buscar el texto literal.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
