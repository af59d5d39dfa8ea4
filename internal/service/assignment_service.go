package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/cryptovlab/coursework-api/internal/dto"
	"github.com/cryptovlab/coursework-api/internal/models"
	"github.com/cryptovlab/coursework-api/internal/observability"
	"github.com/cryptovlab/coursework-api/internal/repository"
)

// ErrAssignmentNotFound indicates the requested assignment does not exist.
var ErrAssignmentNotFound = errors.New("assignment not found")

// AssignmentService exposes assignment directory use cases.
type AssignmentService interface {
	Create(ctx context.Context, payload dto.AssignmentCreateRequest) (dto.AssignmentResponse, error)
	Get(ctx context.Context, id string) (dto.AssignmentResponse, error)
	ListActive(ctx context.Context) ([]dto.AssignmentResponse, error)
	ListByModule(ctx context.Context, labModule string) ([]dto.AssignmentResponse, error)
	ListByCreator(ctx context.Context, username string) ([]dto.AssignmentResponse, error)
	Update(ctx context.Context, id string, payload dto.AssignmentUpdateRequest) (dto.AssignmentResponse, error)
	Deactivate(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type assignmentService struct {
	assignments repository.AssignmentRepository
	submissions repository.SubmissionRepository
	validator   *validator.Validate
	activity    ActivityRecorder
	logger      zerolog.Logger
	now         func() time.Time
}

// NewAssignmentService builds a new assignment service. The submission
// repository is needed for cascade deletion only.
func NewAssignmentService(assignments repository.AssignmentRepository, submissions repository.SubmissionRepository, validate *validator.Validate, activity ActivityRecorder, logger zerolog.Logger) AssignmentService {
	return &assignmentService{
		assignments: assignments,
		submissions: submissions,
		validator:   validate,
		activity:    activity,
		logger:      logger.With().Str("component", "assignment_service").Logger(),
		now:         time.Now,
	}
}

func (s *assignmentService) Create(ctx context.Context, payload dto.AssignmentCreateRequest) (dto.AssignmentResponse, error) {
	tracer := otel.Tracer("github.com/cryptovlab/coursework-api/internal/service/assignment")
	ctx, span := tracer.Start(ctx, "assignment.create")
	span.SetAttributes(attribute.String("assignment.lab_module", payload.LabModule))
	defer span.End()

	if err := s.validator.Struct(payload); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation_failed")
		return dto.AssignmentResponse{}, err
	}

	createdAt := s.now()
	assignment := models.Assignment{
		ID:           uuid.NewString(),
		Title:        payload.Title,
		Description:  payload.Description,
		LabModule:    payload.LabModule,
		Difficulty:   payload.Difficulty,
		Points:       payload.Points,
		DueDate:      createdAt.Add(time.Duration(payload.DueDays) * 24 * time.Hour),
		CreatedBy:    payload.CreatedBy,
		CreatedAt:    createdAt,
		Instructions: payload.Instructions,
		Resources:    payload.Resources,
		IsActive:     true,
	}

	if assignment.Resources == nil {
		assignment.Resources = []string{}
	}

	if err := s.assignments.Create(ctx, assignment); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "assignment_create_failed")
		return dto.AssignmentResponse{}, err
	}

	observability.AssignmentsCreated().Inc()
	s.recordActivity(ctx, ActivityEntry{
		Actor:      payload.CreatedBy,
		Action:     "assignment.created",
		EntityType: "assignment",
		EntityID:   assignment.ID,
		Detail:     assignment.Title,
	})

	s.logger.Info().Str("assignment_id", assignment.ID).Str("lab_module", assignment.LabModule).Msg("assignment created")

	return dto.NewAssignmentResponse(assignment), nil
}

func (s *assignmentService) Get(ctx context.Context, id string) (dto.AssignmentResponse, error) {
	assignment, err := s.assignments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.AssignmentResponse{}, ErrAssignmentNotFound
		}

		return dto.AssignmentResponse{}, err
	}

	return dto.NewAssignmentResponse(assignment), nil
}

func (s *assignmentService) ListActive(ctx context.Context) ([]dto.AssignmentResponse, error) {
	return s.list(ctx, func(a models.Assignment) bool {
		return a.IsActive
	})
}

func (s *assignmentService) ListByModule(ctx context.Context, labModule string) ([]dto.AssignmentResponse, error) {
	return s.list(ctx, func(a models.Assignment) bool {
		return a.IsActive && a.LabModule == labModule
	})
}

// ListByCreator includes deactivated assignments so faculty can review their
// full history.
func (s *assignmentService) ListByCreator(ctx context.Context, username string) ([]dto.AssignmentResponse, error) {
	return s.list(ctx, func(a models.Assignment) bool {
		return a.CreatedBy == username
	})
}

func (s *assignmentService) list(ctx context.Context, keep func(models.Assignment) bool) ([]dto.AssignmentResponse, error) {
	assignments, err := s.assignments.List(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]models.Assignment, 0, len(assignments))
	for _, assignment := range assignments {
		if keep(assignment) {
			matched = append(matched, assignment)
		}
	}

	return dto.NewAssignmentResponseSlice(matched), nil
}

func (s *assignmentService) Update(ctx context.Context, id string, payload dto.AssignmentUpdateRequest) (dto.AssignmentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AssignmentResponse{}, err
	}

	updated, err := s.assignments.Update(ctx, id, func(assignment *models.Assignment) {
		if payload.Title != nil {
			assignment.Title = *payload.Title
		}
		if payload.Description != nil {
			assignment.Description = *payload.Description
		}
		if payload.LabModule != nil {
			assignment.LabModule = *payload.LabModule
		}
		if payload.Difficulty != nil {
			assignment.Difficulty = *payload.Difficulty
		}
		if payload.Points != nil {
			assignment.Points = *payload.Points
		}
		if payload.DueDate != nil {
			assignment.DueDate = *payload.DueDate
		}
		if payload.Instructions != nil {
			assignment.Instructions = *payload.Instructions
		}
		if payload.Resources != nil {
			assignment.Resources = *payload.Resources
		}
		if payload.IsActive != nil {
			assignment.IsActive = *payload.IsActive
		}
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.AssignmentResponse{}, ErrAssignmentNotFound
		}

		return dto.AssignmentResponse{}, err
	}

	s.logger.Info().Str("assignment_id", id).Msg("assignment updated")

	return dto.NewAssignmentResponse(updated), nil
}

func (s *assignmentService) Deactivate(ctx context.Context, id string) error {
	inactive := false
	if _, err := s.Update(ctx, id, dto.AssignmentUpdateRequest{IsActive: &inactive}); err != nil {
		return err
	}

	s.recordActivity(ctx, ActivityEntry{
		Action:     "assignment.deactivated",
		EntityType: "assignment",
		EntityID:   id,
	})

	return nil
}

// Delete removes the assignment and cascades deletion of its submissions.
// When the assignment is missing the submissions are left untouched.
func (s *assignmentService) Delete(ctx context.Context, id string) error {
	if err := s.assignments.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrAssignmentNotFound
		}

		return err
	}

	removed, err := s.submissions.DeleteByAssignment(ctx, id)
	if err != nil {
		return fmt.Errorf("cascade submissions for assignment %s: %w", id, err)
	}

	observability.AssignmentsDeleted().Inc()
	s.recordActivity(ctx, ActivityEntry{
		Action:     "assignment.deleted",
		EntityType: "assignment",
		EntityID:   id,
	})

	s.logger.Info().Str("assignment_id", id).Int("submissions_removed", removed).Msg("assignment deleted")

	return nil
}

func (s *assignmentService) recordActivity(ctx context.Context, entry ActivityEntry) {
	if s.activity == nil {
		return
	}

	if err := s.activity.Record(ctx, entry); err != nil {
		s.logger.Warn().Err(err).Str("action", entry.Action).Msg("failed to record activity")
	}
}
