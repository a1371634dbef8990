package project

import (
	"context"

	"github.com/sipahq/sipa-api/internal/application/dto"
	"github.com/sipahq/sipa-api/internal/domain"
	"github.com/sipahq/sipa-api/internal/domain/entity"
	"github.com/sipahq/sipa-api/internal/domain/repository"
)

// GetProjectByID obtiene un proyecto con su organización y asesor embebidos.
// Devuelve (nil, nil) si no existe.
func (s *ProjectService) GetProjectByID(ctx context.Context, id string) (*dto.ProjectResponse, error) {
	proj, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if proj == nil {
		return nil, nil
	}
	return s.expandProject(ctx, proj)
}

// ListFilter filtros del listado de proyectos expuestos al handler.
type ListFilter struct {
	Search          string
	Status          string
	ViabilityStatus string
	Page            dto.PageRequest
}

// ListProjects lista proyectos paginados. Los usuarios con rol CONSULTA solo
// ven los proyectos que ellos crearon.
func (s *ProjectService) ListProjects(ctx context.Context, f ListFilter, callerID, callerRole string) (*dto.ProjectListResponse, error) {
	f.Page.DefaultPage()
	filter := repository.ProjectFilter{
		Search:          f.Search,
		Status:          f.Status,
		ViabilityStatus: f.ViabilityStatus,
		Page:            f.Page.Page,
		Limit:           f.Page.Limit,
	}
	if callerRole == entity.RoleConsulta && callerID != "" {
		filter.CreatorID = callerID
	}

	projects, total, err := s.projectRepo.ListPaginated(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]dto.ProjectResponse, 0, len(projects))
	for _, p := range projects {
		expanded, err := s.expandProject(ctx, p)
		if err != nil {
			return nil, err
		}
		items = append(items, *expanded)
	}

	return &dto.ProjectListResponse{
		Items: items,
		Page:  dto.PageResponse{Page: f.Page.Page, Limit: f.Page.Limit, Total: total},
	}, nil
}

// GetProjectTeam devuelve el equipo de respuesta de un proyecto con los datos
// de usuario y perfil resueltos.
func (s *ProjectService) GetProjectTeam(ctx context.Context, projectID string) ([]dto.TeamMemberResponse, error) {
	proj, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if proj == nil {
		return nil, domain.ErrProjectNotFound
	}

	members, err := s.teamRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.TeamMemberResponse, 0, len(members))
	for _, m := range members {
		item := dto.TeamMemberResponse{
			ID:            m.ID,
			UserID:        m.UserID,
			RoleInProject: m.RoleInProject,
			AssignedAt:    m.AssignedAt,
		}
		user, err := s.userRepo.GetByID(ctx, m.UserID)
		if err != nil {
			return nil, err
		}
		if user != nil {
			item.Name = user.Name
			item.Email = user.Email
		}
		profile, err := s.profileRepo.GetByUserID(ctx, m.UserID)
		if err != nil {
			return nil, err
		}
		if profile != nil {
			item.PhoneNumber = profile.PhoneNumber
			item.DocumentNumber = profile.DocumentNumber
		}
		out = append(out, item)
	}
	return out, nil
}

// expandProject embebe organización y asesor en la respuesta del proyecto.
func (s *ProjectService) expandProject(ctx context.Context, p *entity.Project) (*dto.ProjectResponse, error) {
	out := toProjectResponse(p)

	org, err := s.orgRepo.GetByID(ctx, p.OrganizationID)
	if err != nil {
		return nil, err
	}
	out.Organization = toOrganizationResponse(org)

	if p.AdvisorID != nil {
		advisor, err := s.userRepo.GetByID(ctx, *p.AdvisorID)
		if err != nil {
			return nil, err
		}
		if advisor != nil {
			out.Advisor = &dto.AdvisorResponse{ID: advisor.ID, Name: advisor.Name, Email: advisor.Email}
		}
	}
	return out, nil
}
