package entity

import "time"

// ProjectTeamMember asignación N:M entre Project y User con un rol libre
// dentro del proyecto (ej: "Líder Técnico", "Apoyo Jurídico").
// Invariante: a lo sumo una fila vigente por par (project, user).
type ProjectTeamMember struct {
	ID            string
	ProjectID     string
	UserID        string
	RoleInProject string
	AssignedAt    time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     *time.Time
}
