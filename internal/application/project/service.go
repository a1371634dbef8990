package project

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sipahq/sipa-api/internal/application/dto"
	"github.com/sipahq/sipa-api/internal/domain"
	"github.com/sipahq/sipa-api/internal/domain/entity"
	"github.com/sipahq/sipa-api/internal/domain/repository"
	"github.com/sipahq/sipa-api/pkg/logger"
)

// ProjectService orquesta el flujo de aprovisionamiento de proyectos:
// resolución de organización, código único, creación del proyecto y alta del
// equipo de respuesta. No hay transacción multi-store: un fallo a mitad del
// alta de equipo deja el proyecto persistido sin (todos) sus miembros.
type ProjectService struct {
	projectRepo repository.ProjectRepository
	orgRepo     repository.OrganizationRepository
	userRepo    repository.UserRepository
	profileRepo repository.UserProfileRepository
	teamRepo    repository.ProjectTeamMemberRepository
	issuer      CredentialIssuer
	notifier    domain.Notifier
	log         *logger.Logger

	// rand.Rand no es seguro para uso concurrente; randMu serializa el acceso.
	randMu sync.Mutex
	rng    *rand.Rand
}

// NewProjectService construye el servicio con sus puertos de persistencia, el
// emisor de credenciales, el notificador y una fuente de aleatoriedad inyectada.
func NewProjectService(
	projectRepo repository.ProjectRepository,
	orgRepo repository.OrganizationRepository,
	userRepo repository.UserRepository,
	profileRepo repository.UserProfileRepository,
	teamRepo repository.ProjectTeamMemberRepository,
	issuer CredentialIssuer,
	notifier domain.Notifier,
	rng *rand.Rand,
	log *logger.Logger,
) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		orgRepo:     orgRepo,
		userRepo:    userRepo,
		profileRepo: profileRepo,
		teamRepo:    teamRepo,
		issuer:      issuer,
		notifier:    notifier,
		rng:         rng,
		log:         log,
	}
}

// CreateProject crea un proyecto con estado inicial ACTIVE y viabilidad
// PRE_HABILITADO. Si la organización ya existe (por NIT) la reutiliza sin
// cambios; si no, la crea. Aprovisiona el equipo de respuesta en orden de
// lista. requestingUserID puede ser vacío en llamadas del sistema.
func (s *ProjectService) CreateProject(ctx context.Context, in dto.CreateProjectRequest, requestingUserID string) (*dto.ProjectResponse, error) {
	if err := validateDates(in.Dates); err != nil {
		return nil, err
	}
	orgType, ok := entity.ParseOrganizationType(in.Organization.Type)
	if !ok {
		return nil, domain.ErrInvalidOrganizationType
	}

	org, err := s.resolveOrganization(ctx, in.Organization, orgType)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	proj := &entity.Project{
		ID:                 uuid.New().String(),
		Name:               in.Name,
		OrganizationName:   org.Name,
		Municipality:       in.Municipality,
		Department:         in.Department,
		Status:             entity.ProjectStatusActive,
		ViabilityStatus:    entity.ViabilityPreHabilitado,
		StartDate:          in.Dates.Start.UTC(),
		EndDate:            in.Dates.End.UTC(),
		SubmissionDeadline: in.Dates.SubmissionDeadline.UTC(),
		OrganizationID:     org.ID,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if requestingUserID != "" {
		proj.CreatedByID = &requestingUserID
	}
	if err := s.persistWithUniqueCode(ctx, proj); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("project_id", proj.ID).
		Str("code", proj.Code).
		Str("organization_id", org.ID).
		Msg("proyecto creado")

	if len(in.ResponseTeam) > 0 {
		if err := s.provisionTeam(ctx, proj.ID, in.ResponseTeam); err != nil {
			return nil, err
		}
	}

	out := toProjectResponse(proj)
	out.Organization = toOrganizationResponse(org)
	return out, nil
}

// resolveOrganization busca por identificador y reutiliza la fila existente sin
// cambios (los campos del request se descartan). Si no existe, crea una nueva.
// Ante una carrera de creación concurrente, el índice único del store decide y
// se relee la fila ganadora.
func (s *ProjectService) resolveOrganization(ctx context.Context, in dto.OrganizationRequest, orgType string) (*entity.Organization, error) {
	existing, err := s.orgRepo.GetByIdentifier(ctx, in.Identifier)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	now := time.Now().UTC()
	org := &entity.Organization{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Type:         orgType,
		Identifier:   in.Identifier,
		Email:        in.Email,
		Municipality: in.Municipality,
		Region:       in.Region,
		ContactName:  in.ContactName,
		Description:  in.Description,
		Address:      in.Address,
		Status:       entity.OrganizationStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.orgRepo.Create(ctx, org); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			// Otra petición creó la organización primero: reutilizar esa fila.
			return s.orgRepo.GetByIdentifier(ctx, in.Identifier)
		}
		return nil, err
	}
	return org, nil
}

// persistWithUniqueCode genera candidatos de código y persiste el proyecto,
// reintentando dentro del mismo tope cuando el candidato ya existe o cuando el
// índice único rechaza el insert (otra petición tomó el código entre la
// verificación y el insert).
func (s *ProjectService) persistWithUniqueCode(ctx context.Context, proj *entity.Project) error {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		candidate := s.nextCode()
		exists, err := s.projectRepo.CodeExists(ctx, candidate)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		proj.Code = candidate
		err = s.projectRepo.Create(ctx, proj)
		if errors.Is(err, domain.ErrDuplicate) {
			continue
		}
		return err
	}
	return domain.ErrCodeGenerationExhausted
}

func (s *ProjectService) nextCode() string {
	s.randMu.Lock()
	defer s.randMu.Unlock()
	return GenerateCode(s.rng)
}

func validateDates(d dto.DatesRequest) error {
	if !d.Start.Before(d.End) {
		return domain.ErrInvalidDateRange
	}
	if !d.SubmissionDeadline.After(d.Start) || d.SubmissionDeadline.After(d.End) {
		return domain.ErrInvalidDeadline
	}
	return nil
}

func toProjectResponse(p *entity.Project) *dto.ProjectResponse {
	if p == nil {
		return nil
	}
	return &dto.ProjectResponse{
		ID:                 p.ID,
		Code:               p.Code,
		Name:               p.Name,
		OrganizationName:   p.OrganizationName,
		Municipality:       p.Municipality,
		Department:         p.Department,
		Status:             p.Status,
		ViabilityStatus:    p.ViabilityStatus,
		StartDate:          p.StartDate,
		EndDate:            p.EndDate,
		SubmissionDeadline: p.SubmissionDeadline,
		CorrectionDeadline: p.CorrectionDeadline,
		Progress: dto.ProgressResponse{
			Technical: p.Progress.Technical,
			Legal:     p.Progress.Legal,
			Financial: p.Progress.Financial,
			Social:    p.Progress.Social,
		},
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func toOrganizationResponse(o *entity.Organization) *dto.OrganizationResponse {
	if o == nil {
		return nil
	}
	return &dto.OrganizationResponse{
		ID:           o.ID,
		Name:         o.Name,
		Type:         o.Type,
		Identifier:   o.Identifier,
		Email:        o.Email,
		Municipality: o.Municipality,
		Region:       o.Region,
		ContactName:  o.ContactName,
		Description:  o.Description,
		Address:      o.Address,
		Status:       o.Status,
	}
}
