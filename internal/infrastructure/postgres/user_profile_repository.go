package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sipahq/sipa-api/internal/domain"
	"github.com/sipahq/sipa-api/internal/domain/entity"
	"github.com/sipahq/sipa-api/internal/domain/repository"
)

var _ repository.UserProfileRepository = (*UserProfileRepo)(nil)

// UserProfileRepo implementación del puerto UserProfileRepository sobre PostgreSQL.
type UserProfileRepo struct {
	pool *pgxpool.Pool
}

// NewUserProfileRepository construye el adaptador de persistencia para perfiles.
func NewUserProfileRepository(pool *pgxpool.Pool) *UserProfileRepo {
	return &UserProfileRepo{pool: pool}
}

// Create persiste un perfil nuevo. Perfil duplicado para el mismo usuario
// mapea a ErrDuplicate (índice único sobre user_id).
func (r *UserProfileRepo) Create(ctx context.Context, profile *entity.UserProfile) error {
	query := `
		INSERT INTO user_profiles (id, user_id, full_name, document_type, document_number, phone_number, job_title, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.pool.Exec(ctx, query,
		profile.ID, profile.UserID, profile.FullName, profile.DocumentType, profile.DocumentNumber,
		profile.PhoneNumber, profile.JobTitle, profile.CreatedAt, profile.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert user profile: %w", err)
	}
	return nil
}

// GetByUserID obtiene el perfil de un usuario. Devuelve (nil, nil) si no existe.
func (r *UserProfileRepo) GetByUserID(ctx context.Context, userID string) (*entity.UserProfile, error) {
	query := `
		SELECT id, user_id, full_name, document_type, document_number, phone_number, job_title, created_at, updated_at, deleted_at
		FROM user_profiles WHERE user_id = $1 AND deleted_at IS NULL LIMIT 1`
	var p entity.UserProfile
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&p.ID, &p.UserID, &p.FullName, &p.DocumentType, &p.DocumentNumber,
		&p.PhoneNumber, &p.JobTitle, &p.CreatedAt, &p.UpdatedAt, &p.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get profile by user: %w", err)
	}
	return &p, nil
}
