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

var _ repository.ProjectTeamMemberRepository = (*ProjectTeamMemberRepo)(nil)

// ProjectTeamMemberRepo implementación del puerto ProjectTeamMemberRepository sobre PostgreSQL.
type ProjectTeamMemberRepo struct {
	pool *pgxpool.Pool
}

// NewProjectTeamMemberRepository construye el adaptador de persistencia para asignaciones de equipo.
func NewProjectTeamMemberRepository(pool *pgxpool.Pool) *ProjectTeamMemberRepo {
	return &ProjectTeamMemberRepo{pool: pool}
}

const teamMemberColumns = `id, project_id, user_id, role_in_project, assigned_at, created_at, updated_at, deleted_at`

// Create persiste una asignación nueva. El par (project, user) duplicado
// mapea a ErrDuplicate (índice único compuesto).
func (r *ProjectTeamMemberRepo) Create(ctx context.Context, member *entity.ProjectTeamMember) error {
	query := `
		INSERT INTO project_team_members (id, project_id, user_id, role_in_project, assigned_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.pool.Exec(ctx, query,
		member.ID, member.ProjectID, member.UserID, member.RoleInProject,
		member.AssignedAt, member.CreatedAt, member.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert team member: %w", err)
	}
	return nil
}

// GetByProjectAndUser obtiene la asignación vigente de un usuario en un proyecto.
// Devuelve (nil, nil) si no existe.
func (r *ProjectTeamMemberRepo) GetByProjectAndUser(ctx context.Context, projectID, userID string) (*entity.ProjectTeamMember, error) {
	query := `SELECT ` + teamMemberColumns + ` FROM project_team_members WHERE project_id = $1 AND user_id = $2 AND deleted_at IS NULL LIMIT 1`
	var m entity.ProjectTeamMember
	err := r.pool.QueryRow(ctx, query, projectID, userID).Scan(
		&m.ID, &m.ProjectID, &m.UserID, &m.RoleInProject,
		&m.AssignedAt, &m.CreatedAt, &m.UpdatedAt, &m.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get team member: %w", err)
	}
	return &m, nil
}

// ListByProject lista las asignaciones vigentes de un proyecto.
func (r *ProjectTeamMemberRepo) ListByProject(ctx context.Context, projectID string) ([]*entity.ProjectTeamMember, error) {
	query := `SELECT ` + teamMemberColumns + ` FROM project_team_members WHERE project_id = $1 AND deleted_at IS NULL ORDER BY assigned_at ASC`
	rows, err := r.pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("list team members: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProjectTeamMember
	for rows.Next() {
		var m entity.ProjectTeamMember
		if err := rows.Scan(&m.ID, &m.ProjectID, &m.UserID, &m.RoleInProject,
			&m.AssignedAt, &m.CreatedAt, &m.UpdatedAt, &m.DeletedAt); err != nil {
			return nil, fmt.Errorf("scan team member: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// Update actualiza una asignación (cambio de rol dentro del proyecto).
func (r *ProjectTeamMemberRepo) Update(ctx context.Context, member *entity.ProjectTeamMember) error {
	query := `UPDATE project_team_members SET role_in_project = $2, updated_at = $3 WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, member.ID, member.RoleInProject, member.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update team member: %w", err)
	}
	return nil
}
