// Package access decide, sin dependencias HTTP, si una petición puede llegar a su handler
// según el estado de autenticación del usuario y el prefijo de la ruta.
package access

import (
	"path"
	"strings"

	"github.com/jhoicas/Tienda-api/internal/domain/entity"
)

// Principal usuario autenticado de la petición (resuelto desde la sesión).
type Principal struct {
	UserID      string
	Role        entity.Role
	IsSuperuser bool
	SessionID   string
}

// State estado de autenticación usado por la política.
type State int

const (
	Unauthenticated State = iota
	AuthenticatedSuperuser
	AuthenticatedManager
	AuthenticatedCustomer
	AuthenticatedOtherRole
)

// StateOf clasifica al principal. nil = no autenticado.
func StateOf(p *Principal) State {
	switch {
	case p == nil || p.UserID == "":
		return Unauthenticated
	case p.IsSuperuser:
		return AuthenticatedSuperuser
	case p.Role == entity.RoleManager:
		return AuthenticatedManager
	case p.Role == entity.RoleCustomer:
		return AuthenticatedCustomer
	default:
		return AuthenticatedOtherRole
	}
}

// Decision resultado de la política.
type Decision int

const (
	Allow Decision = iota
	RedirectToLogin
	Forbidden
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case RedirectToLogin:
		return "redirect_to_login"
	case Forbidden:
		return "forbidden"
	}
	return "unknown"
}

// Policy reglas de acceso por prefijo de ruta. Las rutas se comparan normalizadas
// (minúsculas, limpias y con barra final).
type Policy struct {
	ExcludedPrefixes []string
	PublicPaths      []string // coincidencia exacta
	PublicPrefixes   []string
	ManagerPrefix    string
	CustomerPrefix   string
	LoginPath        string
}

// DefaultPolicy reglas de la tienda.
func DefaultPolicy() Policy {
	return Policy{
		ExcludedPrefixes: []string{"/static/", "/media/", "/admin/"},
		PublicPaths: []string{
			"/",
			"/login/",
			"/signup/",
			"/signup/customer/",
			"/signup/manager/",
			"/customer/signup/",
			"/manager/signup/",
			"/privacy/",
			"/contacts/",
		},
		PublicPrefixes: []string{"/product/", "/contacts/"},
		ManagerPrefix:  "/manager/",
		CustomerPrefix: "/customer/",
		LoginPath:      "/login/",
	}
}

// Decide aplica las reglas en orden: excluidas, anónimo, superusuario, /manager/, /customer/.
func (p Policy) Decide(principal *Principal, rawPath string) Decision {
	target := Normalize(rawPath)

	if hasAnyPrefix(target, p.ExcludedPrefixes) {
		return Allow
	}

	state := StateOf(principal)
	if state == Unauthenticated {
		if p.IsPublic(target) {
			return Allow
		}
		return RedirectToLogin
	}

	if state == AuthenticatedSuperuser {
		return Allow
	}
	if strings.HasPrefix(target, p.ManagerPrefix) && state != AuthenticatedManager {
		return Forbidden
	}
	if strings.HasPrefix(target, p.CustomerPrefix) && state != AuthenticatedCustomer {
		return Forbidden
	}
	return Allow
}

// IsPublic indica si una ruta ya normalizada es accesible sin sesión.
func (p Policy) IsPublic(target string) bool {
	for _, pp := range p.PublicPaths {
		if target == pp {
			return true
		}
	}
	return hasAnyPrefix(target, p.PublicPrefixes)
}

// LoginRedirect URL de login con el parámetro next.
func (p Policy) LoginRedirect(next string) string {
	return p.LoginPath + "?next=" + next
}

// Normalize limpia la ruta ("..", "//"), la pasa a minúsculas y asegura la barra final,
// de modo que "/Manager/dashboard" y "/manager/dashboard/" caen bajo el mismo prefijo.
func Normalize(raw string) string {
	if raw == "" {
		return "/"
	}
	if !strings.HasPrefix(raw, "/") {
		raw = "/" + raw
	}
	cleaned := path.Clean(strings.ToLower(raw))
	if !strings.HasSuffix(cleaned, "/") {
		cleaned += "/"
	}
	return cleaned
}

func hasAnyPrefix(target string, prefixes []string) bool {
	for _, pre := range prefixes {
		if strings.HasPrefix(target, pre) {
			return true
		}
	}
	return false
}

// HomeFor ruta de inicio según el rol, usada tras login y en GET /login/ con sesión.
func HomeFor(p *Principal) string {
	switch StateOf(p) {
	case AuthenticatedSuperuser:
		return "/admin/"
	case AuthenticatedManager:
		return "/manager/dashboard/"
	case AuthenticatedCustomer:
		return "/customer/dashboard/"
	default:
		return "/"
	}
}
