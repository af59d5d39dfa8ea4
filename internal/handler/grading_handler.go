package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/cryptovlab/coursework-api/internal/dto"
	"github.com/cryptovlab/coursework-api/internal/service"
	"github.com/cryptovlab/coursework-api/internal/utils"
)

// GradingHandler wires grading HTTP routes.
type GradingHandler struct {
	service service.GradingService
	logger  zerolog.Logger
}

// NewGradingHandler constructs the handler.
func NewGradingHandler(service service.GradingService, logger zerolog.Logger) *GradingHandler {
	return &GradingHandler{
		service: service,
		logger:  logger.With().Str("component", "grading_handler").Logger(),
	}
}

// Register attaches grading endpoints to the submissions router group.
func (h *GradingHandler) Register(router fiber.Router) {
	router.Post("/bulk-grade", h.bulkGrade)
	router.Post("/bulk-approve", h.bulkApprove)
	router.Post("/:id/grade", h.grade)
}

func (h *GradingHandler) grade(c *fiber.Ctx) error {
	var payload dto.GradeRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	submission, err := h.service.Grade(c.Context(), c.Params("id"), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "submission graded", submission)
}

func (h *GradingHandler) bulkGrade(c *fiber.Ctx) error {
	var payload dto.BulkGradeRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.service.BulkGrade(c.Context(), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "bulk grade applied", result)
}

func (h *GradingHandler) bulkApprove(c *fiber.Ctx) error {
	var payload dto.BulkApproveRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.service.BulkApprove(c.Context(), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "bulk approval applied", result)
}

func (h *GradingHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrSubmissionNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "submission not found")
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		h.logger.Error().Err(err).Str("path", c.Path()).Msg("grading request failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
