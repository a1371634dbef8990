package repository

import (
	"context"

	"github.com/sipahq/sipa-api/internal/domain/entity"
)

// UserProfileRepository puerto de persistencia para el perfil extendido (1:1 con User).
type UserProfileRepository interface {
	Create(ctx context.Context, profile *entity.UserProfile) error
	GetByUserID(ctx context.Context, userID string) (*entity.UserProfile, error)
}
