package entity

import "time"

// UserProfile perfil extendido de usuario (relación 1:1 con User).
// Se crea al aprovisionar miembros de equipo; si ya existe no se sobrescribe.
type UserProfile struct {
	ID             string
	UserID         string
	FullName       string
	DocumentType   *string // CC, NIT, CE, etc.
	DocumentNumber *string
	PhoneNumber    *string
	JobTitle       *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      *time.Time
}
