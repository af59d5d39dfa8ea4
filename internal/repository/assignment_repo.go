package repository

import (
	"context"

	"github.com/cryptovlab/coursework-api/internal/models"
	"github.com/cryptovlab/coursework-api/internal/store"
)

// AssignmentRepository defines persistence operations for assignments.
type AssignmentRepository interface {
	List(ctx context.Context) ([]models.Assignment, error)
	GetByID(ctx context.Context, id string) (models.Assignment, error)
	Create(ctx context.Context, assignment models.Assignment) error
	Update(ctx context.Context, id string, apply func(*models.Assignment)) (models.Assignment, error)
	Delete(ctx context.Context, id string) error
}

type assignmentRepository struct {
	collection *store.Collection[models.Assignment]
}

// NewAssignmentRepository instantiates a flat-file backed repository.
func NewAssignmentRepository(collection *store.Collection[models.Assignment]) AssignmentRepository {
	return &assignmentRepository{collection: collection}
}

func (r *assignmentRepository) List(ctx context.Context) ([]models.Assignment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return r.collection.Items()
}

func (r *assignmentRepository) GetByID(ctx context.Context, id string) (models.Assignment, error) {
	assignments, err := r.List(ctx)
	if err != nil {
		return models.Assignment{}, err
	}

	for _, assignment := range assignments {
		if assignment.ID == id {
			return assignment, nil
		}
	}

	return models.Assignment{}, ErrNotFound
}

func (r *assignmentRepository) Create(ctx context.Context, assignment models.Assignment) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return r.collection.Update(func(items []models.Assignment) ([]models.Assignment, error) {
		for _, existing := range items {
			if existing.ID == assignment.ID {
				return nil, ErrDuplicate
			}
		}

		return append(items, assignment), nil
	})
}

func (r *assignmentRepository) Update(ctx context.Context, id string, apply func(*models.Assignment)) (models.Assignment, error) {
	if err := ctx.Err(); err != nil {
		return models.Assignment{}, err
	}

	var updated models.Assignment
	err := r.collection.Update(func(items []models.Assignment) ([]models.Assignment, error) {
		for i := range items {
			if items[i].ID == id {
				apply(&items[i])
				updated = items[i]
				return items, nil
			}
		}

		return nil, ErrNotFound
	})
	if err != nil {
		return models.Assignment{}, err
	}

	return updated, nil
}

func (r *assignmentRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return r.collection.Update(func(items []models.Assignment) ([]models.Assignment, error) {
		remaining := make([]models.Assignment, 0, len(items))
		for _, assignment := range items {
			if assignment.ID != id {
				remaining = append(remaining, assignment)
			}
		}

		if len(remaining) == len(items) {
			return nil, ErrNotFound
		}

		return remaining, nil
	})
}
