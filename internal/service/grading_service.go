package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/cryptovlab/coursework-api/internal/dto"
	"github.com/cryptovlab/coursework-api/internal/models"
	"github.com/cryptovlab/coursework-api/internal/observability"
	"github.com/cryptovlab/coursework-api/internal/repository"
)

// GradingService encapsulates grading workflows for faculty.
//
// BulkApprove intentionally moves submissions to approved regardless of
// whether they were graded first; ungraded work can be accepted without a
// numeric grade.
type GradingService interface {
	Grade(ctx context.Context, submissionID string, payload dto.GradeRequest) (dto.SubmissionResponse, error)
	BulkGrade(ctx context.Context, payload dto.BulkGradeRequest) (dto.BulkResult, error)
	BulkApprove(ctx context.Context, payload dto.BulkApproveRequest) (dto.BulkResult, error)
}

type gradingService struct {
	submissions repository.SubmissionRepository
	validator   *validator.Validate
	activity    ActivityRecorder
	logger      zerolog.Logger
	now         func() time.Time
}

// NewGradingService constructs the grading service.
func NewGradingService(submissions repository.SubmissionRepository, validate *validator.Validate, activity ActivityRecorder, logger zerolog.Logger) GradingService {
	return &gradingService{
		submissions: submissions,
		validator:   validate,
		activity:    activity,
		logger:      logger.With().Str("component", "grading_service").Logger(),
		now:         time.Now,
	}
}

// Grade overwrites any previous grading on the submission; no history is
// retained.
func (s *gradingService) Grade(ctx context.Context, submissionID string, payload dto.GradeRequest) (dto.SubmissionResponse, error) {
	tracer := otel.Tracer("github.com/cryptovlab/coursework-api/internal/service/grading")
	ctx, span := tracer.Start(ctx, "grading.grade")
	span.SetAttributes(attribute.String("grading.submission_id", submissionID))
	defer span.End()

	if err := s.validator.Struct(payload); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation_failed")
		return dto.SubmissionResponse{}, err
	}

	gradedAt := s.now()
	updated, err := s.submissions.Update(ctx, submissionID, func(submission *models.Submission) {
		applyGrade(submission, payload.Grade, payload.Feedback, payload.GradedBy, gradedAt)
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			span.SetStatus(codes.Error, "submission_not_found")
			return dto.SubmissionResponse{}, ErrSubmissionNotFound
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "grade_update_failed")
		return dto.SubmissionResponse{}, err
	}

	observability.GradingsApplied().Inc()
	s.recordActivity(ctx, ActivityEntry{
		Actor:      payload.GradedBy,
		Action:     "submission.graded",
		EntityType: "submission",
		EntityID:   submissionID,
	})

	span.SetAttributes(attribute.Int("grading.grade", payload.Grade))
	s.logger.Info().
		Str("submission_id", submissionID).
		Int("grade", payload.Grade).
		Str("graded_by", payload.GradedBy).
		Msg("submission graded")

	return dto.NewSubmissionResponse(updated), nil
}

// BulkGrade applies the same grade and feedback to every listed submission.
// Best-effort: unresolved ids are reported in the result, never failed on.
func (s *gradingService) BulkGrade(ctx context.Context, payload dto.BulkGradeRequest) (dto.BulkResult, error) {
	tracer := otel.Tracer("github.com/cryptovlab/coursework-api/internal/service/grading")
	ctx, span := tracer.Start(ctx, "grading.bulk_grade")
	span.SetAttributes(attribute.Int("grading.batch_size", len(payload.SubmissionIDs)))
	defer span.End()

	if err := s.validator.Struct(payload); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation_failed")
		return dto.BulkResult{}, err
	}

	gradedAt := s.now()
	updated, missing, err := s.submissions.UpdateBatch(ctx, payload.SubmissionIDs, func(submission *models.Submission) {
		applyGrade(submission, payload.Grade, payload.Feedback, payload.GradedBy, gradedAt)
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "bulk_grade_failed")
		return dto.BulkResult{}, err
	}

	observability.GradingsApplied().Add(float64(updated))
	s.recordActivity(ctx, ActivityEntry{
		Actor:      payload.GradedBy,
		Action:     "submission.bulk_graded",
		EntityType: "submission",
	})

	span.SetAttributes(attribute.Int("grading.updated", updated))
	s.logger.Info().
		Int("updated", updated).
		Int("failed", len(missing)).
		Str("graded_by", payload.GradedBy).
		Msg("bulk grade applied")

	return dto.BulkResult{Updated: updated, FailedIDs: missing}, nil
}

// BulkApprove marks every listed submission as approved, independent of its
// current status.
func (s *gradingService) BulkApprove(ctx context.Context, payload dto.BulkApproveRequest) (dto.BulkResult, error) {
	tracer := otel.Tracer("github.com/cryptovlab/coursework-api/internal/service/grading")
	ctx, span := tracer.Start(ctx, "grading.bulk_approve")
	span.SetAttributes(attribute.Int("grading.batch_size", len(payload.SubmissionIDs)))
	defer span.End()

	if err := s.validator.Struct(payload); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation_failed")
		return dto.BulkResult{}, err
	}

	approvedAt := s.now()
	approvedBy := payload.ApprovedBy
	updated, missing, err := s.submissions.UpdateBatch(ctx, payload.SubmissionIDs, func(submission *models.Submission) {
		submission.Status = models.SubmissionStatusApproved
		submission.ApprovedBy = &approvedBy
		submission.ApprovedAt = &approvedAt
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "bulk_approve_failed")
		return dto.BulkResult{}, err
	}

	observability.ApprovalsApplied().Add(float64(updated))
	s.recordActivity(ctx, ActivityEntry{
		Actor:      payload.ApprovedBy,
		Action:     "submission.bulk_approved",
		EntityType: "submission",
	})

	span.SetAttributes(attribute.Int("grading.updated", updated))
	s.logger.Info().
		Int("updated", updated).
		Int("failed", len(missing)).
		Str("approved_by", payload.ApprovedBy).
		Msg("bulk approval applied")

	return dto.BulkResult{Updated: updated, FailedIDs: missing}, nil
}

func applyGrade(submission *models.Submission, grade int, feedback, gradedBy string, gradedAt time.Time) {
	submission.Grade = &grade
	submission.Feedback = &feedback
	submission.GradedBy = &gradedBy
	submission.GradedAt = &gradedAt
	submission.Status = models.SubmissionStatusGraded
}

func (s *gradingService) recordActivity(ctx context.Context, entry ActivityEntry) {
	if s.activity == nil {
		return
	}

	if err := s.activity.Record(ctx, entry); err != nil {
		s.logger.Warn().Err(err).Str("action", entry.Action).Msg("failed to record activity")
	}
}
