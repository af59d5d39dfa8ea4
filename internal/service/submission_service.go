package service

import (
	"context"
	"errors"
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

// ErrSubmissionNotFound indicates a submission could not be found.
var ErrSubmissionNotFound = errors.New("submission not found")

// ErrAssignmentUnavailable indicates the target assignment does not exist or
// has been deactivated.
var ErrAssignmentUnavailable = errors.New("assignment not found or inactive")

// ErrAlreadySubmitted indicates the student already has a submission for the
// assignment.
var ErrAlreadySubmitted = errors.New("assignment already submitted")

// SubmissionService orchestrates the submission tracking workflows.
type SubmissionService interface {
	Submit(ctx context.Context, payload dto.SubmissionCreateRequest) (dto.SubmissionResponse, error)
	Get(ctx context.Context, id string) (dto.SubmissionResponse, error)
	GetForStudent(ctx context.Context, assignmentID, studentUsername string) (dto.SubmissionResponse, error)
	ListForAssignment(ctx context.Context, assignmentID string) ([]dto.SubmissionResponse, error)
	ListForStudent(ctx context.Context, studentUsername string) ([]dto.SubmissionResponse, error)
}

type submissionService struct {
	submissions repository.SubmissionRepository
	assignments repository.AssignmentRepository
	validator   *validator.Validate
	activity    ActivityRecorder
	logger      zerolog.Logger
	now         func() time.Time
}

// NewSubmissionService constructs a SubmissionService instance.
func NewSubmissionService(submissions repository.SubmissionRepository, assignments repository.AssignmentRepository, validate *validator.Validate, activity ActivityRecorder, logger zerolog.Logger) SubmissionService {
	return &submissionService{
		submissions: submissions,
		assignments: assignments,
		validator:   validate,
		activity:    activity,
		logger:      logger.With().Str("component", "submission_service").Logger(),
		now:         time.Now,
	}
}

func (s *submissionService) Submit(ctx context.Context, payload dto.SubmissionCreateRequest) (dto.SubmissionResponse, error) {
	tracer := otel.Tracer("github.com/cryptovlab/coursework-api/internal/service/submission")
	ctx, span := tracer.Start(ctx, "submission.submit")
	span.SetAttributes(
		attribute.String("submission.assignment_id", payload.AssignmentID),
		attribute.String("submission.student", payload.StudentUsername),
	)
	defer span.End()

	if err := s.validator.Struct(payload); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation_failed")
		return dto.SubmissionResponse{}, err
	}

	assignment, err := s.assignments.GetByID(ctx, payload.AssignmentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			span.SetStatus(codes.Error, "assignment_unavailable")
			return dto.SubmissionResponse{}, ErrAssignmentUnavailable
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "assignment_lookup_failed")
		return dto.SubmissionResponse{}, err
	}

	if !assignment.IsActive {
		span.SetStatus(codes.Error, "assignment_unavailable")
		return dto.SubmissionResponse{}, ErrAssignmentUnavailable
	}

	submittedAt := s.now()
	status := models.SubmissionStatusSubmitted
	if assignment.IsPastDue(submittedAt) {
		status = models.SubmissionStatusLate
	}

	submission := models.Submission{
		ID:              uuid.NewString(),
		AssignmentID:    payload.AssignmentID,
		StudentUsername: payload.StudentUsername,
		SubmittedAt:     submittedAt,
		Content:         payload.Content,
		Files:           payload.Files,
		Status:          status,
	}

	if submission.Files == nil {
		submission.Files = []string{}
	}

	// The repository enforces the one-submission-per-pair rule inside the
	// collection's critical section, so a concurrent duplicate cannot slip
	// between the check and the append.
	if err := s.submissions.Create(ctx, submission); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			span.SetStatus(codes.Error, "already_submitted")
			return dto.SubmissionResponse{}, ErrAlreadySubmitted
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "submission_create_failed")
		return dto.SubmissionResponse{}, err
	}

	observability.SubmissionsRecorded().WithLabelValues(status).Inc()
	s.recordActivity(ctx, ActivityEntry{
		Actor:      payload.StudentUsername,
		Action:     "submission.received",
		EntityType: "submission",
		EntityID:   submission.ID,
		Detail:     assignment.Title,
	})

	span.SetAttributes(attribute.String("submission.status", status))
	s.logger.Info().
		Str("submission_id", submission.ID).
		Str("assignment_id", submission.AssignmentID).
		Str("status", status).
		Msg("submission recorded")

	return dto.NewSubmissionResponse(submission), nil
}

func (s *submissionService) Get(ctx context.Context, id string) (dto.SubmissionResponse, error) {
	submission, err := s.submissions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.SubmissionResponse{}, ErrSubmissionNotFound
		}

		return dto.SubmissionResponse{}, err
	}

	return dto.NewSubmissionResponse(submission), nil
}

func (s *submissionService) GetForStudent(ctx context.Context, assignmentID, studentUsername string) (dto.SubmissionResponse, error) {
	submission, err := s.submissions.GetByAssignmentAndStudent(ctx, assignmentID, studentUsername)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.SubmissionResponse{}, ErrSubmissionNotFound
		}

		return dto.SubmissionResponse{}, err
	}

	return dto.NewSubmissionResponse(submission), nil
}

func (s *submissionService) ListForAssignment(ctx context.Context, assignmentID string) ([]dto.SubmissionResponse, error) {
	submissions, err := s.submissions.List(ctx, repository.SubmissionFilter{AssignmentID: &assignmentID})
	if err != nil {
		return nil, err
	}

	return dto.NewSubmissionResponseSlice(submissions), nil
}

func (s *submissionService) ListForStudent(ctx context.Context, studentUsername string) ([]dto.SubmissionResponse, error) {
	submissions, err := s.submissions.List(ctx, repository.SubmissionFilter{StudentUsername: &studentUsername})
	if err != nil {
		return nil, err
	}

	return dto.NewSubmissionResponseSlice(submissions), nil
}

func (s *submissionService) recordActivity(ctx context.Context, entry ActivityEntry) {
	if s.activity == nil {
		return
	}

	if err := s.activity.Record(ctx, entry); err != nil {
		s.logger.Warn().Err(err).Str("action", entry.Action).Msg("failed to record activity")
	}
}
