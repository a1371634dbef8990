package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sipahq/sipa-api/internal/domain"
	"github.com/sipahq/sipa-api/internal/domain/entity"
	"github.com/sipahq/sipa-api/internal/domain/repository"
)

var _ repository.ProjectRepository = (*ProjectRepo)(nil)

// ProjectRepo implementación del puerto ProjectRepository sobre PostgreSQL.
type ProjectRepo struct {
	pool *pgxpool.Pool
}

// NewProjectRepository construye el adaptador de persistencia para proyectos.
func NewProjectRepository(pool *pgxpool.Pool) *ProjectRepo {
	return &ProjectRepo{pool: pool}
}

const projectColumns = `id, code, name, organization_name, municipality, department, status, viability_status, advisor_id,
		start_date, end_date, submission_deadline, correction_deadline,
		progress_technical, progress_legal, progress_financial, progress_social,
		organization_id, created_by_id, created_at, updated_at, deleted_at`

// Create persiste un proyecto nuevo. Código duplicado mapea a ErrDuplicate
// (índice único sobre code, el generador reintenta con otro código).
func (r *ProjectRepo) Create(ctx context.Context, project *entity.Project) error {
	query := `
		INSERT INTO projects (id, code, name, organization_name, municipality, department, status, viability_status, advisor_id,
			start_date, end_date, submission_deadline, correction_deadline,
			progress_technical, progress_legal, progress_financial, progress_social,
			organization_id, created_by_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`
	_, err := r.pool.Exec(ctx, query,
		project.ID, project.Code, project.Name, project.OrganizationName, project.Municipality,
		project.Department, project.Status, project.ViabilityStatus, project.AdvisorID,
		project.StartDate, project.EndDate, project.SubmissionDeadline, project.CorrectionDeadline,
		project.Progress.Technical, project.Progress.Legal, project.Progress.Financial, project.Progress.Social,
		project.OrganizationID, project.CreatedByID, project.CreatedAt, project.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert project: %w", err)
	}
	return nil
}

// GetByID obtiene un proyecto por ID. Devuelve (nil, nil) si no existe.
func (r *ProjectRepo) GetByID(ctx context.Context, id string) (*entity.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1 AND deleted_at IS NULL`
	var p entity.Project
	err := r.pool.QueryRow(ctx, query, id).Scan(scanTargets(&p)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get project by id: %w", err)
	}
	return &p, nil
}

// CodeExists verifica si un código ya está tomado (incluye borrados, el código
// nunca se recicla).
func (r *ProjectRepo) CodeExists(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM projects WHERE code = $1)`, code).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check project code: %w", err)
	}
	return exists, nil
}

// Update actualiza un proyecto existente. El código no se modifica.
func (r *ProjectRepo) Update(ctx context.Context, project *entity.Project) error {
	query := `
		UPDATE projects SET name = $2, status = $3, viability_status = $4, advisor_id = $5,
			start_date = $6, end_date = $7, submission_deadline = $8, correction_deadline = $9,
			progress_technical = $10, progress_legal = $11, progress_financial = $12, progress_social = $13,
			updated_at = $14
		WHERE id = $1`
	_, err := r.pool.Exec(ctx, query,
		project.ID, project.Name, project.Status, project.ViabilityStatus, project.AdvisorID,
		project.StartDate, project.EndDate, project.SubmissionDeadline, project.CorrectionDeadline,
		project.Progress.Technical, project.Progress.Legal, project.Progress.Financial, project.Progress.Social,
		project.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	return nil
}

// ListPaginated lista proyectos vigentes aplicando filtros opcionales y
// devuelve el total sin paginar para armar la respuesta de página.
func (r *ProjectRepo) ListPaginated(ctx context.Context, filter repository.ProjectFilter) ([]*entity.Project, int, error) {
	var conds []string
	var args []any

	conds = append(conds, "deleted_at IS NULL")
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := strconv.Itoa(len(args))
		conds = append(conds, "(code ILIKE $"+n+" OR organization_name ILIKE $"+n+")")
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conds = append(conds, "status = $"+strconv.Itoa(len(args)))
	}
	if filter.ViabilityStatus != "" {
		args = append(args, filter.ViabilityStatus)
		conds = append(conds, "viability_status = $"+strconv.Itoa(len(args)))
	}
	if filter.CreatorID != "" {
		args = append(args, filter.CreatorID)
		conds = append(conds, "created_by_id = $"+strconv.Itoa(len(args)))
	}
	where := " WHERE " + strings.Join(conds, " AND ")

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM projects`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count projects: %w", err)
	}

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	query := `SELECT ` + projectColumns + ` FROM projects` + where +
		` ORDER BY created_at DESC LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var list []*entity.Project
	for rows.Next() {
		var p entity.Project
		if err := rows.Scan(scanTargets(&p)...); err != nil {
			return nil, 0, fmt.Errorf("scan project: %w", err)
		}
		list = append(list, &p)
	}
	return list, total, rows.Err()
}

// scanTargets destinos de Scan en el mismo orden que projectColumns.
func scanTargets(p *entity.Project) []any {
	return []any{
		&p.ID, &p.Code, &p.Name, &p.OrganizationName, &p.Municipality, &p.Department,
		&p.Status, &p.ViabilityStatus, &p.AdvisorID,
		&p.StartDate, &p.EndDate, &p.SubmissionDeadline, &p.CorrectionDeadline,
		&p.Progress.Technical, &p.Progress.Legal, &p.Progress.Financial, &p.Progress.Social,
		&p.OrganizationID, &p.CreatedByID, &p.CreatedAt, &p.UpdatedAt, &p.DeletedAt,
	}
}
