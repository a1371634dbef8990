package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sipahq/sipa-api/internal/application/dto"
	"github.com/sipahq/sipa-api/internal/application/project"
	"github.com/sipahq/sipa-api/internal/domain"
)

// ProjectHandler maneja el ciclo de vida de proyectos.
type ProjectHandler struct {
	svc *project.ProjectService
}

// NewProjectHandler construye el handler de proyectos.
func NewProjectHandler(svc *project.ProjectService) *ProjectHandler {
	return &ProjectHandler{svc: svc}
}

// Create godoc
// @Summary      Crear proyecto con organización y equipo de respuesta
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProjectRequest  true  "organización, fechas, equipo"
// @Success      201   {object}  dto.ProjectResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/projects [post]
func (h *ProjectHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProjectRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Organization.Name == "" || in.Organization.Identifier == "" || in.Organization.Type == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "organization.name, organization.identifier y organization.type son requeridos"})
	}
	if in.Department == "" || in.Municipality == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "department y municipality son requeridos"})
	}
	if in.Dates.Start.IsZero() || in.Dates.End.IsZero() || in.Dates.SubmissionDeadline.IsZero() {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "dates.start, dates.end y dates.submission_deadline son requeridos"})
	}

	out, err := h.svc.CreateProject(c.Context(), in, GetUserID(c))
	if err != nil {
		switch err {
		case domain.ErrInvalidDateRange, domain.ErrInvalidDeadline:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_DATES", Message: err.Error()})
		case domain.ErrInvalidOrganizationType:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ORGANIZATION_TYPE", Message: err.Error()})
		case domain.ErrCodeGenerationExhausted:
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CODE_GENERATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar proyecto (parcial)
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID del proyecto"
// @Param        body  body  dto.UpdateProjectRequest  true  "campos a actualizar"
// @Success      200   {object}  dto.ProjectResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/projects/{id} [patch]
func (h *ProjectHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProjectRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.svc.UpdateProject(c.Context(), c.Params("id"), in)
	if err != nil {
		switch err {
		case domain.ErrProjectNotFound:
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "PROJECT_NOT_FOUND", Message: err.Error()})
		case domain.ErrInvalidDateRange, domain.ErrInvalidDeadline:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_DATES", Message: err.Error()})
		case domain.ErrInvalidStatus:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_STATUS", Message: err.Error()})
		case domain.ErrInvalidViability:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_VIABILITY", Message: err.Error()})
		case domain.ErrInvalidProgress:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PROGRESS", Message: err.Error()})
		case domain.ErrProjectNotEditable:
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "PROJECT_NOT_EDITABLE", Message: err.Error()})
		case domain.ErrAdvisorNotFound:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "ADVISOR_NOT_FOUND", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener proyecto por ID
// @Tags         projects
// @Produce      json
// @Param        id  path  string  true  "ID del proyecto"
// @Success      200  {object}  dto.ProjectResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/projects/{id} [get]
func (h *ProjectHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.svc.GetProjectByID(c.Context(), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "PROJECT_NOT_FOUND", Message: "proyecto no encontrado"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar proyectos con filtros y paginación
// @Tags         projects
// @Produce      json
// @Param        search            query  string  false  "código u organización"
// @Param        status            query  string  false  "estado del proyecto"
// @Param        viability_status  query  string  false  "escenario de viabilidad"
// @Param        page              query  int     false  "página (1-indexada)"
// @Param        limit             query  int     false  "tamaño de página"
// @Success      200  {object}  dto.ProjectListResponse
// @Security     BearerAuth
// @Router       /api/projects [get]
func (h *ProjectHandler) List(c *fiber.Ctx) error {
	f := project.ListFilter{
		Search:          c.Query("search"),
		Status:          c.Query("status"),
		ViabilityStatus: c.Query("viability_status"),
		Page: dto.PageRequest{
			Page:  c.QueryInt("page", 1),
			Limit: c.QueryInt("limit", 10),
		},
	}
	out, err := h.svc.ListProjects(c.Context(), f, GetUserID(c), GetRole(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// GetTeam godoc
// @Summary      Equipo de respuesta de un proyecto
// @Tags         projects
// @Produce      json
// @Param        id  path  string  true  "ID del proyecto"
// @Success      200  {array}   dto.TeamMemberResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/projects/{id}/team [get]
func (h *ProjectHandler) GetTeam(c *fiber.Ctx) error {
	out, err := h.svc.GetProjectTeam(c.Context(), c.Params("id"))
	if err != nil {
		if err == domain.ErrProjectNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "PROJECT_NOT_FOUND", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
