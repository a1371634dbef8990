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

var _ repository.OrganizationRepository = (*OrganizationRepo)(nil)

// OrganizationRepo implementación del puerto OrganizationRepository sobre PostgreSQL.
// El índice único sobre identifier resuelve la carrera de creación concurrente:
// el perdedor recibe ErrDuplicate y relee por NIT.
type OrganizationRepo struct {
	pool *pgxpool.Pool
}

// NewOrganizationRepository construye el adaptador de persistencia para organizaciones.
func NewOrganizationRepository(pool *pgxpool.Pool) *OrganizationRepo {
	return &OrganizationRepo{pool: pool}
}

const organizationColumns = `id, name, type, identifier, email, municipality, region, contact_name, description, address, status, created_at, updated_at, deleted_at`

// Create persiste una nueva organización. NIT duplicado mapea a ErrDuplicate.
func (r *OrganizationRepo) Create(ctx context.Context, org *entity.Organization) error {
	query := `
		INSERT INTO organizations (id, name, type, identifier, email, municipality, region, contact_name, description, address, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.pool.Exec(ctx, query,
		org.ID, org.Name, org.Type, org.Identifier, org.Email, org.Municipality, org.Region,
		org.ContactName, org.Description, org.Address, org.Status, org.CreatedAt, org.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert organization: %w", err)
	}
	return nil
}

// GetByID obtiene una organización por ID. Devuelve (nil, nil) si no existe.
func (r *OrganizationRepo) GetByID(ctx context.Context, id string) (*entity.Organization, error) {
	query := `SELECT ` + organizationColumns + ` FROM organizations WHERE id = $1 AND deleted_at IS NULL`
	return r.scanOne(r.pool.QueryRow(ctx, query, id), "get organization by id")
}

// GetByIdentifier obtiene una organización por NIT. Devuelve (nil, nil) si no existe.
func (r *OrganizationRepo) GetByIdentifier(ctx context.Context, identifier string) (*entity.Organization, error) {
	query := `SELECT ` + organizationColumns + ` FROM organizations WHERE identifier = $1 AND deleted_at IS NULL LIMIT 1`
	return r.scanOne(r.pool.QueryRow(ctx, query, identifier), "get organization by identifier")
}

func (r *OrganizationRepo) scanOne(row pgx.Row, op string) (*entity.Organization, error) {
	var o entity.Organization
	err := row.Scan(&o.ID, &o.Name, &o.Type, &o.Identifier, &o.Email, &o.Municipality, &o.Region,
		&o.ContactName, &o.Description, &o.Address, &o.Status, &o.CreatedAt, &o.UpdatedAt, &o.DeletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &o, nil
}
