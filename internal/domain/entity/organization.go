package entity

import (
	"strings"
	"time"
)

// Tipos válidos para Organization.
const (
	OrganizationTypeCompany = "COMPANY"
	OrganizationTypePerson  = "PERSON"
)

// Estados válidos para Organization.
const (
	OrganizationStatusActive   = "ACTIVE"
	OrganizationStatusInactive = "INACTIVE"
)

// ParseOrganizationType normaliza y valida el tipo de organización.
func ParseOrganizationType(s string) (string, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case OrganizationTypeCompany:
		return OrganizationTypeCompany, true
	case OrganizationTypePerson:
		return OrganizationTypePerson, true
	}
	return "", false
}

// Organization representa la organización dueña de uno o más proyectos.
// El Identifier (NIT) es la clave natural de deduplicación: el primer proyecto
// que referencia un NIT nuevo la crea, los siguientes la reutilizan sin cambios.
type Organization struct {
	ID           string
	Name         string
	Type         string // COMPANY, PERSON
	Identifier   string // NIT, único
	Email        string
	Municipality string
	Region       string
	ContactName  *string
	Description  *string
	Address      *string
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}
