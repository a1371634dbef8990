package dto

import "time"

// OrganizationRequest datos de la organización dentro de la creación de proyecto.
// Si el Identifier (NIT) ya existe, la organización almacenada gana y estos
// campos se descartan.
type OrganizationRequest struct {
	Name         string  `json:"name" validate:"required,max=200"`
	Type         string  `json:"type" validate:"required"` // COMPANY o PERSON (case-insensitive)
	Identifier   string  `json:"identifier" validate:"required,max=50"`
	Email        string  `json:"email" validate:"required,email"`
	Municipality string  `json:"municipality" validate:"required"`
	Region       string  `json:"region" validate:"required"`
	ContactName  *string `json:"contact_name,omitempty"`
	Description  *string `json:"description,omitempty"`
	Address      *string `json:"address,omitempty"`
}

// DatesRequest tripleta de fechas del proyecto. Se normalizan a UTC al crear.
type DatesRequest struct {
	Start              time.Time `json:"start" validate:"required"`
	End                time.Time `json:"end" validate:"required"`
	SubmissionDeadline time.Time `json:"submission_deadline" validate:"required"`
}

// TeamMemberRequest descriptor de un miembro del equipo de respuesta.
type TeamMemberRequest struct {
	Name           string  `json:"name" validate:"required"`
	Email          string  `json:"email" validate:"required,email"`
	RoleInProject  string  `json:"role_in_project" validate:"required"`
	Phone          *string `json:"phone,omitempty"`
	DocumentNumber *string `json:"document_number,omitempty"`
	DocumentType   *string `json:"document_type,omitempty"`
}

// CreateProjectRequest entrada para crear un proyecto con su organización y
// equipo de respuesta opcional.
type CreateProjectRequest struct {
	Name         string              `json:"name,omitempty"`
	Organization OrganizationRequest `json:"organization" validate:"required"`
	Department   string              `json:"department" validate:"required,max=100"`
	Municipality string              `json:"municipality" validate:"required,max=100"`
	Dates        DatesRequest        `json:"dates" validate:"required"`
	ResponseTeam []TeamMemberRequest `json:"response_team,omitempty"`
}

// ProgressRequest avance por eje para actualización (porcentajes 0-100).
type ProgressRequest struct {
	Technical int `json:"technical" validate:"min=0,max=100"`
	Legal     int `json:"legal" validate:"min=0,max=100"`
	Financial int `json:"financial" validate:"min=0,max=100"`
	Social    int `json:"social" validate:"min=0,max=100"`
}

// UpdateProjectRequest entrada para actualización parcial. Solo se aplican los
// campos presentes; las fechas van las tres juntas o ninguna.
type UpdateProjectRequest struct {
	Name            *string          `json:"name,omitempty"`
	Status          *string          `json:"status,omitempty"`
	ViabilityStatus *string          `json:"viability_status,omitempty"`
	AdvisorID       *string          `json:"advisor_id,omitempty"`
	Dates           *DatesRequest    `json:"dates,omitempty"`
	Progress        *ProgressRequest `json:"progress,omitempty"`
}

// OrganizationResponse salida de una organización.
type OrganizationResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Type         string  `json:"type"`
	Identifier   string  `json:"identifier"`
	Email        string  `json:"email"`
	Municipality string  `json:"municipality"`
	Region       string  `json:"region"`
	ContactName  *string `json:"contact_name,omitempty"`
	Description  *string `json:"description,omitempty"`
	Address      *string `json:"address,omitempty"`
	Status       string  `json:"status"`
}

// AdvisorResponse resumen del asesor asignado a un proyecto.
type AdvisorResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ProgressResponse avance del proyecto por eje (porcentajes 0-100).
type ProgressResponse struct {
	Technical int `json:"technical"`
	Legal     int `json:"legal"`
	Financial int `json:"financial"`
	Social    int `json:"social"`
}

// ProjectResponse salida de un proyecto con su organización embebida.
type ProjectResponse struct {
	ID                 string                `json:"id"`
	Code               string                `json:"code"`
	Name               string                `json:"name,omitempty"`
	OrganizationName   string                `json:"organization_name"`
	Municipality       string                `json:"municipality"`
	Department         string                `json:"department"`
	Status             string                `json:"status"`
	ViabilityStatus    string                `json:"viability_status"`
	StartDate          time.Time             `json:"start_date"`
	EndDate            time.Time             `json:"end_date"`
	SubmissionDeadline time.Time             `json:"submission_deadline"`
	CorrectionDeadline *time.Time            `json:"correction_deadline,omitempty"`
	Progress           ProgressResponse      `json:"progress"`
	Organization       *OrganizationResponse `json:"organization,omitempty"`
	Advisor            *AdvisorResponse      `json:"advisor,omitempty"`
	CreatedAt          time.Time             `json:"created_at"`
	UpdatedAt          time.Time             `json:"updated_at"`
}

// ProjectListResponse listado paginado de proyectos.
type ProjectListResponse struct {
	Items []ProjectResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// TeamMemberResponse salida de un miembro del equipo de respuesta.
type TeamMemberResponse struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	RoleInProject  string    `json:"role_in_project"`
	PhoneNumber    *string   `json:"phone_number,omitempty"`
	DocumentNumber *string   `json:"document_number,omitempty"`
	AssignedAt     time.Time `json:"assigned_at"`
}
