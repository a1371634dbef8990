package repository

import (
	"context"

	"github.com/sipahq/sipa-api/internal/domain/entity"
)

// OrganizationRepository puerto de persistencia para Organization.
// GetByIdentifier busca por NIT (clave natural de deduplicación).
type OrganizationRepository interface {
	Create(ctx context.Context, org *entity.Organization) error
	GetByID(ctx context.Context, id string) (*entity.Organization, error)
	GetByIdentifier(ctx context.Context, identifier string) (*entity.Organization, error)
}
