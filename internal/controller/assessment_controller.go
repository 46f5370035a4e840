package controller

import (
	"adaptive-assessment-be/internal/dto"
	"adaptive-assessment-be/internal/pkg/serverutils"
	"adaptive-assessment-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAssessmentController interface {
	RegisterRoutes(r fiber.Router)
	StartSession(ctx *fiber.Ctx) error
	GenerateRound(ctx *fiber.Ctx) error
	ScoreAnswer(ctx *fiber.Ctx) error
	ScoreBatch(ctx *fiber.Ctx) error
	DrainQueue(ctx *fiber.Ctx) error
}

type assessmentController struct {
	assessmentService service.IAssessmentService
	drainService      service.IDrainService
}

func NewAssessmentController(assessmentService service.IAssessmentService, drainService service.IDrainService) IAssessmentController {
	return &assessmentController{
		assessmentService: assessmentService,
		drainService:      drainService,
	}
}

func (c *assessmentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/assessment/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("session", c.StartSession)
	h.Post("session/:id/round", c.GenerateRound)
	h.Post("score", c.ScoreAnswer)
	h.Post("score/batch", c.ScoreBatch)
	h.Post("admin/drain", c.DrainQueue)
}

func (c *assessmentController) StartSession(ctx *fiber.Ctx) error {
	var req dto.StartSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.assessmentService.StartSession(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success start assessment session", res))
}

func (c *assessmentController) GenerateRound(ctx *fiber.Ctx) error {
	sessionId := ctx.Params("id")

	var req dto.GenerateRoundRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.assessmentService.GenerateRound(ctx.Context(), sessionId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success generate assessment round", res))
}

func (c *assessmentController) ScoreAnswer(ctx *fiber.Ctx) error {
	var req dto.ScoreAnswerRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.assessmentService.ScoreAnswer(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success score answer", res))
}

func (c *assessmentController) ScoreBatch(ctx *fiber.Ctx) error {
	var req dto.BatchScoreRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.assessmentService.ScoreBatch(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success score answer batch", res))
}

func (c *assessmentController) DrainQueue(ctx *fiber.Ctx) error {
	res := c.drainService.DrainNow(ctx.Context())
	return ctx.JSON(serverutils.SuccessResponse("Success drain retry queue", res))
}
