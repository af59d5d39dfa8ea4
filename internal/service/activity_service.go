package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cryptovlab/coursework-api/internal/dto"
	"github.com/cryptovlab/coursework-api/internal/models"
	"github.com/cryptovlab/coursework-api/internal/repository"
)

// ActivityEntry captures the details required to persist an audit event.
type ActivityEntry struct {
	Actor      string
	Action     string
	EntityType string
	EntityID   string
	Detail     string
}

// ActivityRecorder defines behaviour for recording audit events.
type ActivityRecorder interface {
	Record(ctx context.Context, entry ActivityEntry) error
}

// ActivityService exposes methods to persist and query the audit feed.
type ActivityService interface {
	ActivityRecorder
	Recent(ctx context.Context, limit int) ([]dto.ActivityResponse, error)
}

type activityService struct {
	repo   repository.ActivityLogRepository
	logger zerolog.Logger
	now    func() time.Time
}

// NewActivityService constructs the activity log service.
func NewActivityService(repo repository.ActivityLogRepository, logger zerolog.Logger) ActivityService {
	return &activityService{
		repo:   repo,
		logger: logger.With().Str("component", "activity_service").Logger(),
		now:    time.Now,
	}
}

func (s *activityService) Record(ctx context.Context, entry ActivityEntry) error {
	if strings.TrimSpace(entry.Action) == "" {
		return errors.New("action is required")
	}

	event := models.ActivityEvent{
		ID:         uuid.NewString(),
		Actor:      entry.Actor,
		Action:     strings.ToLower(strings.TrimSpace(entry.Action)),
		EntityType: entry.EntityType,
		EntityID:   entry.EntityID,
		Detail:     entry.Detail,
		CreatedAt:  s.now(),
	}

	if err := s.repo.Append(ctx, event); err != nil {
		return err
	}

	s.logger.Debug().Str("action", event.Action).Str("actor", event.Actor).Msg("activity recorded")

	return nil
}

func (s *activityService) Recent(ctx context.Context, limit int) ([]dto.ActivityResponse, error) {
	if limit <= 0 {
		return []dto.ActivityResponse{}, nil
	}

	events, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].CreatedAt.After(events[j].CreatedAt)
	})

	if len(events) > limit {
		events = events[:limit]
	}

	return dto.NewActivityResponseSlice(events), nil
}
