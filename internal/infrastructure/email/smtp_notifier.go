package email

import (
	"context"
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"github.com/sipahq/sipa-api/internal/domain"
	"github.com/sipahq/sipa-api/pkg/config"
	"github.com/sipahq/sipa-api/pkg/logger"
)

var _ domain.Notifier = (*SMTPNotifier)(nil)

// SMTPNotifier implementación del puerto Notifier sobre SMTP vía gomail.
// Con SMTP_HOST vacío queda no configurado: los envíos se omiten con warning
// y el flujo de negocio continúa sin correo.
type SMTPNotifier struct {
	cfg config.SMTPConfig
	log *logger.Logger
}

// NewSMTPNotifier construye el notificador de correo transaccional.
func NewSMTPNotifier(cfg config.SMTPConfig, log *logger.Logger) *SMTPNotifier {
	return &SMTPNotifier{cfg: cfg, log: log}
}

// IsConfigured indica si hay servidor SMTP configurado.
func (n *SMTPNotifier) IsConfigured() bool {
	return n.cfg.Host != ""
}

// SendWelcomeEmail envía las credenciales temporales a un usuario recién aprovisionado.
func (n *SMTPNotifier) SendWelcomeEmail(ctx context.Context, to, name, temporaryPassword string) error {
	subject := "Bienvenido a SIPA - Credenciales de acceso"
	body := fmt.Sprintf(
		"<p>Hola %s,</p>"+
			"<p>Se creó una cuenta para ti en la plataforma SIPA.</p>"+
			"<p>Tu contraseña temporal es: <strong>%s</strong></p>"+
			"<p>Por seguridad, cámbiala en tu primer ingreso.</p>",
		name, temporaryPassword,
	)
	return n.send(ctx, to, subject, body)
}

// SendPasswordResetEmail envía la contraseña temporal generada al restaurar acceso.
func (n *SMTPNotifier) SendPasswordResetEmail(ctx context.Context, to, name, temporaryPassword string) error {
	subject := "SIPA - Restauración de contraseña"
	body := fmt.Sprintf(
		"<p>Hola %s,</p>"+
			"<p>Recibimos una solicitud de restauración de contraseña.</p>"+
			"<p>Tu nueva contraseña temporal es: <strong>%s</strong></p>"+
			"<p>Si no solicitaste este cambio, contacta al administrador.</p>",
		name, temporaryPassword,
	)
	return n.send(ctx, to, subject, body)
}

func (n *SMTPNotifier) send(ctx context.Context, to, subject, htmlBody string) error {
	if !n.IsConfigured() {
		n.log.Warn().Str("to", to).Str("subject", subject).Msg("SMTP no configurado, correo omitido")
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", n.cfg.FromEmail, n.cfg.FromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(n.cfg.Host, n.cfg.Port, n.cfg.User, n.cfg.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("enviar correo: %w", err)
	}

	n.log.Info().Str("to", to).Str("subject", subject).Msg("correo enviado")
	return nil
}
