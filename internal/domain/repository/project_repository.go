package repository

import (
	"context"

	"github.com/sipahq/sipa-api/internal/domain/entity"
)

// ProjectFilter filtros para el listado paginado de proyectos.
// Search aplica sobre código y nombre de organización. CreatorID limita a los
// proyectos creados por un usuario (flujo CONSULTA).
type ProjectFilter struct {
	Search          string
	Status          string
	ViabilityStatus string
	CreatorID       string
	Page            int
	Limit           int
}

// ProjectRepository puerto de persistencia para Project.
type ProjectRepository interface {
	Create(ctx context.Context, project *entity.Project) error
	GetByID(ctx context.Context, id string) (*entity.Project, error)
	CodeExists(ctx context.Context, code string) (bool, error)
	Update(ctx context.Context, project *entity.Project) error
	ListPaginated(ctx context.Context, filter ProjectFilter) ([]*entity.Project, int, error)
}
