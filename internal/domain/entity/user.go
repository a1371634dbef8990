package entity

import (
	"strings"
	"time"
)

// Roles válidos para User.
const (
	RoleAdmin        = "ADMIN"
	RoleAsesor       = "ASESOR"
	RoleSpat         = "SPAT"
	RoleConsulta     = "CONSULTA"
	RoleOrganizacion = "ORGANIZACION"
)

// Estados válidos para User.
const (
	UserStatusActive   = "ACTIVE"
	UserStatusInactive = "INACTIVE"
)

// ParseUserRole normaliza y valida un rol recibido como texto libre.
// Devuelve ok=false si el valor no corresponde a ningún rol conocido.
func ParseUserRole(s string) (string, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case RoleAdmin:
		return RoleAdmin, true
	case RoleAsesor:
		return RoleAsesor, true
	case RoleSpat:
		return RoleSpat, true
	case RoleConsulta:
		return RoleConsulta, true
	case RoleOrganizacion:
		return RoleOrganizacion, true
	}
	return "", false
}

// User representa una cuenta del sistema.
type User struct {
	ID               string
	Name             string
	Email            string
	PasswordHash     string // bcrypt, nunca en texto plano después de persistir
	Role             string // ver constantes Role*
	Status           string // ACTIVE, INACTIVE
	AvatarColor      *string
	ProjectsAssigned int
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        *time.Time // soft delete; nil = vigente
}

// IsActive indica si la cuenta puede autenticarse.
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive && u.DeletedAt == nil
}
