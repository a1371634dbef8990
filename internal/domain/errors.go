package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound                = errors.New("recurso no encontrado")
	ErrUserNotFound            = errors.New("usuario no encontrado")
	ErrProjectNotFound         = errors.New("proyecto no encontrado")
	ErrAdvisorNotFound         = errors.New("asesor no encontrado")
	ErrEmailAlreadyExists      = errors.New("el email ya está registrado")
	ErrDuplicate               = errors.New("recurso duplicado")
	ErrUnauthorized            = errors.New("no autorizado")
	ErrForbidden               = errors.New("acceso denegado")
	ErrInvalidDateRange        = errors.New("la fecha de inicio debe ser anterior a la fecha de fin")
	ErrInvalidDeadline         = errors.New("la fecha límite de envío debe estar entre la fecha de inicio y la fecha de fin")
	ErrInvalidOrganizationType = errors.New("tipo de organización inválido")
	ErrInvalidStatus           = errors.New("estado de proyecto inválido")
	ErrInvalidViability        = errors.New("estado de viabilidad inválido")
	ErrInvalidProgress         = errors.New("los avances deben estar entre 0 y 100")
	ErrProjectNotEditable      = errors.New("el proyecto no admite modificaciones en su estado actual")
	ErrCodeGenerationExhausted = errors.New("no se pudo generar un código único después de varios intentos")
)
