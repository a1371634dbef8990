package domain

import "context"

// Notifier servicio de correo transaccional. Los envíos son best-effort:
// quien llama decide si un fallo de entrega se propaga o solo se registra.
// Puede no estar configurado (IsConfigured=false), en cuyo caso las
// implementaciones no envían nada.
type Notifier interface {
	IsConfigured() bool
	SendWelcomeEmail(ctx context.Context, to, name, temporaryPassword string) error
	SendPasswordResetEmail(ctx context.Context, to, name, temporaryPassword string) error
}
