package service

import (
	"context"
	"sort"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/cryptovlab/coursework-api/internal/dto"
	"github.com/cryptovlab/coursework-api/internal/models"
	"github.com/cryptovlab/coursework-api/internal/repository"
)

// defaultRecentLimit caps the recent-submission feed in the overview.
const defaultRecentLimit = 5

// StatsService aggregates coursework statistics for dashboard consumers.
// Every call scans both collections; nothing is cached.
type StatsService interface {
	Overview(ctx context.Context) (dto.StatsResponse, error)
	RecentSubmissions(ctx context.Context, limit int) ([]dto.SubmissionResponse, error)
}

type statsService struct {
	assignments repository.AssignmentRepository
	submissions repository.SubmissionRepository
	recentLimit int
	logger      zerolog.Logger
}

// NewStatsService constructs the statistics service. A non-positive
// recentLimit falls back to the default feed size.
func NewStatsService(assignments repository.AssignmentRepository, submissions repository.SubmissionRepository, recentLimit int, logger zerolog.Logger) StatsService {
	if recentLimit <= 0 {
		recentLimit = defaultRecentLimit
	}

	return &statsService{
		assignments: assignments,
		submissions: submissions,
		recentLimit: recentLimit,
		logger:      logger.With().Str("component", "stats_service").Logger(),
	}
}

func (s *statsService) Overview(ctx context.Context) (dto.StatsResponse, error) {
	tracer := otel.Tracer("github.com/cryptovlab/coursework-api/internal/service/stats")
	ctx, span := tracer.Start(ctx, "stats.overview")
	defer span.End()

	assignments, err := s.assignments.List(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "assignment_scan_failed")
		return dto.StatsResponse{}, err
	}

	submissions, err := s.submissions.List(ctx, repository.SubmissionFilter{})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "submission_scan_failed")
		return dto.StatsResponse{}, err
	}

	byModule := map[string]int{}
	activeCount := 0
	for _, assignment := range assignments {
		if !assignment.IsActive {
			continue
		}
		activeCount++
		byModule[assignment.LabModule]++
	}

	gradedCount := 0
	for _, submission := range submissions {
		if submission.IsGraded() {
			gradedCount++
		}
	}

	recent := recentFirst(submissions, s.recentLimit)

	span.SetAttributes(
		attribute.Int("stats.active_assignments", activeCount),
		attribute.Int("stats.total_submissions", len(submissions)),
	)

	return dto.StatsResponse{
		TotalActiveAssignments: activeCount,
		TotalSubmissions:       len(submissions),
		GradedSubmissions:      gradedCount,
		PendingGrading:         len(submissions) - gradedCount,
		AssignmentsByModule:    byModule,
		RecentSubmissions:      dto.NewSubmissionResponseSlice(recent),
	}, nil
}

func (s *statsService) RecentSubmissions(ctx context.Context, limit int) ([]dto.SubmissionResponse, error) {
	if limit <= 0 {
		return []dto.SubmissionResponse{}, nil
	}

	submissions, err := s.submissions.List(ctx, repository.SubmissionFilter{})
	if err != nil {
		return nil, err
	}

	return dto.NewSubmissionResponseSlice(recentFirst(submissions, limit)), nil
}

func recentFirst(submissions []models.Submission, limit int) []models.Submission {
	sorted := make([]models.Submission, len(submissions))
	copy(sorted, submissions)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].SubmittedAt.After(sorted[j].SubmittedAt)
	})

	if len(sorted) > limit {
		sorted = sorted[:limit]
	}

	return sorted
}
