package controller

import (
	"research-assistant-be/internal/dto"
	"research-assistant-be/internal/pkg/serverutils"
	"research-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IResearchController interface {
	RegisterRoutes(r fiber.Router)
	CreateSession(ctx *fiber.Ctx) error
	GetSession(ctx *fiber.Ctx) error
	DeleteSession(ctx *fiber.Ctx) error
	SelectQuestions(ctx *fiber.Ctx) error
	GetSelectedQuestions(ctx *fiber.Ctx) error
	Analyze(ctx *fiber.Ctx) error
	AnalyzeSelected(ctx *fiber.Ctx) error
	AnalysisStatus(ctx *fiber.Ctx) error
	IdentifyGaps(ctx *fiber.Ctx) error
	SearchLiterature(ctx *fiber.Ctx) error
	SearchLiteratureDirect(ctx *fiber.Ctx) error
	ProjectTemplates(ctx *fiber.Ctx) error
}

type researchController struct {
	service service.IResearchService
}

func NewResearchController(service service.IResearchService) IResearchController {
	return &researchController{service: service}
}

func (c *researchController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/research/v1")
	h.Post("/sessions", c.CreateSession)
	h.Get("/sessions/:id", c.GetSession)
	h.Delete("/sessions/:id", c.DeleteSession)
	h.Post("/sessions/:id/select-questions", c.SelectQuestions)
	h.Get("/sessions/:id/selected-questions", c.GetSelectedQuestions)
	h.Post("/sessions/:id/analyze", c.Analyze)
	h.Post("/sessions/:id/analyze-selected", c.AnalyzeSelected)
	h.Get("/sessions/:id/analysis-status", c.AnalysisStatus)
	h.Post("/sessions/:id/data-gaps", c.IdentifyGaps)
	h.Post("/sessions/:id/literature", c.SearchLiterature)
	h.Post("/literature/search", c.SearchLiteratureDirect)
	h.Get("/project-templates", c.ProjectTemplates)
}

func sessionIdParam(ctx *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "invalid session id")
	}
	return id, nil
}

func (c *researchController) CreateSession(ctx *fiber.Ctx) error {
	var req dto.CreateSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.CreateSession(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create research session", res))
}

func (c *researchController) GetSession(ctx *fiber.Ctx) error {
	id, err := sessionIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.GetSession(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get research session", res))
}

func (c *researchController) DeleteSession(ctx *fiber.Ctx) error {
	id, err := sessionIdParam(ctx)
	if err != nil {
		return err
	}

	if err := c.service.DeleteSession(ctx.Context(), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete research session", nil))
}

func (c *researchController) SelectQuestions(ctx *fiber.Ctx) error {
	id, err := sessionIdParam(ctx)
	if err != nil {
		return err
	}

	var req dto.SelectQuestionsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.SelectQuestions(ctx.Context(), id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success select questions", res))
}

func (c *researchController) GetSelectedQuestions(ctx *fiber.Ctx) error {
	id, err := sessionIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.GetSelectedQuestions(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get selected questions", res))
}

func (c *researchController) Analyze(ctx *fiber.Ctx) error {
	id, err := sessionIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.AnalyzeSubQuestions(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success analyze sub-questions", res))
}

func (c *researchController) AnalyzeSelected(ctx *fiber.Ctx) error {
	id, err := sessionIdParam(ctx)
	if err != nil {
		return err
	}

	var req dto.AnalyzeSelectedRequest
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&req); err != nil {
			return err
		}
	}

	res, err := c.service.AnalyzeSelected(ctx.Context(), id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success analyze selected sub-questions", res))
}

func (c *researchController) AnalysisStatus(ctx *fiber.Ctx) error {
	id, err := sessionIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.AnalysisStatus(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get analysis status", res))
}

func (c *researchController) IdentifyGaps(ctx *fiber.Ctx) error {
	id, err := sessionIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.IdentifyDataGaps(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success identify data gaps", res))
}

func (c *researchController) SearchLiterature(ctx *fiber.Ctx) error {
	id, err := sessionIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.SearchLiterature(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success search literature", res))
}

func (c *researchController) ProjectTemplates(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success get project templates", c.service.ProjectTemplates()))
}

func (c *researchController) SearchLiteratureDirect(ctx *fiber.Ctx) error {
	var req dto.SearchLiteratureDirectRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.SearchLiteratureDirect(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success search literature", res))
}
