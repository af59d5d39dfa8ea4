package repository

import (
	"context"

	"github.com/cryptovlab/coursework-api/internal/models"
	"github.com/cryptovlab/coursework-api/internal/store"
)

// ActivityLogRepository persists audit events for coursework operations.
type ActivityLogRepository interface {
	Append(ctx context.Context, event models.ActivityEvent) error
	List(ctx context.Context) ([]models.ActivityEvent, error)
}

type activityLogRepository struct {
	collection *store.Collection[models.ActivityEvent]
}

// NewActivityLogRepository instantiates the repository.
func NewActivityLogRepository(collection *store.Collection[models.ActivityEvent]) ActivityLogRepository {
	return &activityLogRepository{collection: collection}
}

func (r *activityLogRepository) Append(ctx context.Context, event models.ActivityEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return r.collection.Update(func(items []models.ActivityEvent) ([]models.ActivityEvent, error) {
		return append(items, event), nil
	})
}

func (r *activityLogRepository) List(ctx context.Context) ([]models.ActivityEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return r.collection.Items()
}
