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

// SubmissionHandler wires submission tracking HTTP routes.
type SubmissionHandler struct {
	service service.SubmissionService
	logger  zerolog.Logger
}

// NewSubmissionHandler constructs the handler.
func NewSubmissionHandler(service service.SubmissionService, logger zerolog.Logger) *SubmissionHandler {
	return &SubmissionHandler{
		service: service,
		logger:  logger.With().Str("component", "submission_handler").Logger(),
	}
}

// Register attaches submission endpoints to the router group.
func (h *SubmissionHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.submit)
	router.Get("/:id", h.get)
}

func (h *SubmissionHandler) submit(c *fiber.Ctx) error {
	var payload dto.SubmissionCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	submission, err := h.service.Submit(c.Context(), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "submission recorded", submission)
}

func (h *SubmissionHandler) get(c *fiber.Ctx) error {
	submission, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "submission retrieved", submission)
}

// list narrows by assignment_id and/or student_username query parameters.
// With both present the single matching submission is returned, matching the
// student pre-submission lookup.
func (h *SubmissionHandler) list(c *fiber.Ctx) error {
	ctx := c.Context()
	assignmentID := c.Query("assignment_id")
	student := c.Query("student_username")

	switch {
	case assignmentID != "" && student != "":
		submission, err := h.service.GetForStudent(ctx, assignmentID, student)
		if err != nil {
			return h.handleError(c, err)
		}
		return utils.SendSuccess(c, "submission retrieved", submission)
	case assignmentID != "":
		submissions, err := h.service.ListForAssignment(ctx, assignmentID)
		if err != nil {
			return h.handleError(c, err)
		}
		return utils.SendSuccess(c, "submissions retrieved", submissions)
	case student != "":
		submissions, err := h.service.ListForStudent(ctx, student)
		if err != nil {
			return h.handleError(c, err)
		}
		return utils.SendSuccess(c, "submissions retrieved", submissions)
	default:
		return utils.SendError(c, fiber.StatusBadRequest, "assignment_id or student_username is required")
	}
}

func (h *SubmissionHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrSubmissionNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "submission not found")
	case errors.Is(err, service.ErrAssignmentUnavailable):
		return utils.SendError(c, fiber.StatusBadRequest, "assignment not found or inactive")
	case errors.Is(err, service.ErrAlreadySubmitted):
		return utils.SendError(c, fiber.StatusConflict, "assignment already submitted")
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		h.logger.Error().Err(err).Str("path", c.Path()).Msg("submission request failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
