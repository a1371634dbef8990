package project

import (
	"context"

	"github.com/sipahq/sipa-api/internal/domain/entity"
)

// CredentialIssuer es el contrato mínimo que necesita el aprovisionamiento de
// equipos para crear cuentas con credencial hasheada. Lo implementa
// *auth.AuthUseCase; el uso de interfaz evita el import circular y permite
// fakes en tests.
type CredentialIssuer interface {
	Register(ctx context.Context, name, email, plainPassword, role string) (*entity.User, error)
	NewTemporaryPassword() string
}
