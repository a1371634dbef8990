package entity

import (
	"strings"
	"time"
)

// Estados válidos para Project.
const (
	ProjectStatusActive      = "ACTIVE"
	ProjectStatusSuspended   = "SUSPENDED"
	ProjectStatusCertified   = "CERTIFIED"
	ProjectStatusBeneficiary = "BENEFICIARY"
)

// Escenarios de viabilidad válidos para Project.
const (
	ViabilityPreHabilitado   = "PRE_HABILITADO"
	ViabilityHabilitado      = "HABILITADO"
	ViabilityAltaPosibilidad = "ALTA_POSIBILIDAD"
	ViabilitySinPosibilidad  = "SIN_POSIBILIDAD"
)

// ParseProjectStatus normaliza y valida un estado de proyecto.
func ParseProjectStatus(s string) (string, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case ProjectStatusActive:
		return ProjectStatusActive, true
	case ProjectStatusSuspended:
		return ProjectStatusSuspended, true
	case ProjectStatusCertified:
		return ProjectStatusCertified, true
	case ProjectStatusBeneficiary:
		return ProjectStatusBeneficiary, true
	}
	return "", false
}

// ParseViabilityStatus normaliza y valida un escenario de viabilidad.
func ParseViabilityStatus(s string) (string, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case ViabilityPreHabilitado:
		return ViabilityPreHabilitado, true
	case ViabilityHabilitado:
		return ViabilityHabilitado, true
	case ViabilityAltaPosibilidad:
		return ViabilityAltaPosibilidad, true
	case ViabilitySinPosibilidad:
		return ViabilitySinPosibilidad, true
	}
	return "", false
}

// ProjectProgress avance del proyecto en los cuatro ejes de evaluación,
// cada uno como porcentaje 0-100.
type ProjectProgress struct {
	Technical int
	Legal     int
	Financial int
	Social    int
}

// Valid verifica que todos los ejes estén dentro de 0-100.
func (p ProjectProgress) Valid() bool {
	for _, v := range []int{p.Technical, p.Legal, p.Financial, p.Social} {
		if v < 0 || v > 100 {
			return false
		}
	}
	return true
}

// Project representa un proyecto organizacional.
// El código es inmutable después de la creación.
type Project struct {
	ID                 string
	Code               string
	Name               string
	OrganizationName   string // denormalizado desde Organization al crear
	Municipality       string
	Department         string
	Status             string // ver constantes ProjectStatus*
	ViabilityStatus    string // ver constantes Viability*
	AdvisorID          *string
	StartDate          time.Time
	EndDate            time.Time
	SubmissionDeadline time.Time
	CorrectionDeadline *time.Time
	Progress           ProjectProgress
	OrganizationID     string
	CreatedByID        *string
	CreatedAt          time.Time
	UpdatedAt          time.Time
	DeletedAt          *time.Time
}

// IsEditable indica si el proyecto admite modificaciones.
func (p *Project) IsEditable() bool {
	return p.Status == ProjectStatusActive
}
