package project

import (
	"context"
	"time"

	"github.com/sipahq/sipa-api/internal/application/dto"
	"github.com/sipahq/sipa-api/internal/domain"
	"github.com/sipahq/sipa-api/internal/domain/entity"
)

// UpdateProject aplica una actualización parcial. Las fechas se validan como
// tripleta completa (las tres o ninguna). Estados y viabilidades no
// reconocidos se rechazan, igual que el asesor inexistente.
func (s *ProjectService) UpdateProject(ctx context.Context, id string, in dto.UpdateProjectRequest) (*dto.ProjectResponse, error) {
	proj, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if proj == nil {
		return nil, domain.ErrProjectNotFound
	}

	// El contenido (nombre, fechas, avances) solo se edita con el proyecto
	// ACTIVE; estado, viabilidad y asesor se administran siempre, para poder
	// reactivar un proyecto suspendido.
	contentEdit := in.Name != nil || in.Dates != nil || in.Progress != nil
	if contentEdit && !proj.IsEditable() {
		return nil, domain.ErrProjectNotEditable
	}

	if in.Dates != nil {
		if err := validateDates(*in.Dates); err != nil {
			return nil, err
		}
		proj.StartDate = in.Dates.Start.UTC()
		proj.EndDate = in.Dates.End.UTC()
		proj.SubmissionDeadline = in.Dates.SubmissionDeadline.UTC()
	}

	if in.Name != nil && *in.Name != "" {
		proj.Name = *in.Name
	}

	if in.Progress != nil {
		progress := entity.ProjectProgress{
			Technical: in.Progress.Technical,
			Legal:     in.Progress.Legal,
			Financial: in.Progress.Financial,
			Social:    in.Progress.Social,
		}
		if !progress.Valid() {
			return nil, domain.ErrInvalidProgress
		}
		proj.Progress = progress
	}

	if in.Status != nil {
		status, ok := entity.ParseProjectStatus(*in.Status)
		if !ok {
			return nil, domain.ErrInvalidStatus
		}
		proj.Status = status
	}

	if in.ViabilityStatus != nil {
		viability, ok := entity.ParseViabilityStatus(*in.ViabilityStatus)
		if !ok {
			return nil, domain.ErrInvalidViability
		}
		proj.ViabilityStatus = viability
	}

	if in.AdvisorID != nil {
		advisor, err := s.userRepo.GetByID(ctx, *in.AdvisorID)
		if err != nil {
			return nil, err
		}
		if advisor == nil {
			return nil, domain.ErrAdvisorNotFound
		}
		proj.AdvisorID = in.AdvisorID
	}

	proj.UpdatedAt = time.Now().UTC()
	if err := s.projectRepo.Update(ctx, proj); err != nil {
		return nil, err
	}

	s.log.Info().Str("project_id", proj.ID).Msg("proyecto actualizado")
	return toProjectResponse(proj), nil
}
