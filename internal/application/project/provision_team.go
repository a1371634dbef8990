package project

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/sipahq/sipa-api/internal/application/dto"
	"github.com/sipahq/sipa-api/internal/domain/entity"
)

// provisionTeam da de alta cada miembro del equipo de respuesta, estrictamente
// en orden de lista. Los errores de persistencia o validación se propagan; los
// fallos de entrega del correo de bienvenida solo se registran.
func (s *ProjectService) provisionTeam(ctx context.Context, projectID string, members []dto.TeamMemberRequest) error {
	for _, m := range members {
		if err := s.provisionMember(ctx, projectID, m); err != nil {
			return err
		}
	}
	return nil
}

// provisionMember resuelve el usuario por email (creándolo con contraseña
// temporal y rol CONSULTA si no existe), garantiza su perfil extendido y hace
// el upsert de la asignación al proyecto.
func (s *ProjectService) provisionMember(ctx context.Context, projectID string, m dto.TeamMemberRequest) error {
	user, err := s.userRepo.GetByEmail(ctx, m.Email)
	if err != nil {
		return err
	}

	if user == nil {
		temp := s.issuer.NewTemporaryPassword()
		user, err = s.issuer.Register(ctx, m.Name, m.Email, temp, entity.RoleConsulta)
		if err != nil {
			return err
		}
		if err := s.createProfile(ctx, user.ID, m); err != nil {
			return err
		}
		s.log.Info().
			Str("user_id", user.ID).
			Str("project_id", projectID).
			Msg("usuario creado para equipo de respuesta")

		if s.notifier.IsConfigured() {
			if err := s.notifier.SendWelcomeEmail(ctx, user.Email, user.Name, temp); err != nil {
				// El correo es best-effort: no revierte la creación del miembro.
				s.log.Warn().Err(err).Str("email", user.Email).Msg("fallo al enviar correo de bienvenida")
			}
		}
	} else {
		profile, err := s.profileRepo.GetByUserID(ctx, user.ID)
		if err != nil {
			return err
		}
		if profile == nil {
			if err := s.createProfile(ctx, user.ID, m); err != nil {
				return err
			}
		}
		// Perfil existente: se deja intacto, sin merge.
	}

	return s.upsertAssignment(ctx, projectID, user.ID, m.RoleInProject)
}

func (s *ProjectService) createProfile(ctx context.Context, userID string, m dto.TeamMemberRequest) error {
	now := time.Now().UTC()
	return s.profileRepo.Create(ctx, &entity.UserProfile{
		ID:             uuid.New().String(),
		UserID:         userID,
		FullName:       m.Name,
		DocumentType:   m.DocumentType,
		DocumentNumber: m.DocumentNumber,
		PhoneNumber:    m.Phone,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
}

// upsertAssignment garantiza a lo sumo una fila por (project, user): crea la
// asignación si no existe y actualiza el rol si cambió.
func (s *ProjectService) upsertAssignment(ctx context.Context, projectID, userID, roleInProject string) error {
	existing, err := s.teamRepo.GetByProjectAndUser(ctx, projectID, userID)
	if err != nil {
		return err
	}
	if existing == nil {
		now := time.Now().UTC()
		return s.teamRepo.Create(ctx, &entity.ProjectTeamMember{
			ID:            uuid.New().String(),
			ProjectID:     projectID,
			UserID:        userID,
			RoleInProject: roleInProject,
			AssignedAt:    now,
			CreatedAt:     now,
			UpdatedAt:     now,
		})
	}
	if existing.RoleInProject != roleInProject {
		existing.RoleInProject = roleInProject
		existing.UpdatedAt = time.Now().UTC()
		return s.teamRepo.Update(ctx, existing)
	}
	return nil
}
