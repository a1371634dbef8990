package repository

import (
	"context"

	"github.com/sipahq/sipa-api/internal/domain/entity"
)

// ProjectTeamMemberRepository puerto de persistencia para las asignaciones de equipo.
type ProjectTeamMemberRepository interface {
	Create(ctx context.Context, member *entity.ProjectTeamMember) error
	GetByProjectAndUser(ctx context.Context, projectID, userID string) (*entity.ProjectTeamMember, error)
	ListByProject(ctx context.Context, projectID string) ([]*entity.ProjectTeamMember, error)
	Update(ctx context.Context, member *entity.ProjectTeamMember) error
}
