package repository

import (
	"context"

	"github.com/cryptovlab/coursework-api/internal/models"
	"github.com/cryptovlab/coursework-api/internal/store"
)

// SubmissionFilter allows narrowing submission queries.
type SubmissionFilter struct {
	AssignmentID    *string
	StudentUsername *string
	Status          *string
}

// SubmissionRepository defines data operations for submissions.
type SubmissionRepository interface {
	List(ctx context.Context, filter SubmissionFilter) ([]models.Submission, error)
	GetByID(ctx context.Context, id string) (models.Submission, error)
	GetByAssignmentAndStudent(ctx context.Context, assignmentID, studentUsername string) (models.Submission, error)
	Create(ctx context.Context, submission models.Submission) error
	Update(ctx context.Context, id string, apply func(*models.Submission)) (models.Submission, error)
	UpdateBatch(ctx context.Context, ids []string, apply func(*models.Submission)) (int, []string, error)
	DeleteByAssignment(ctx context.Context, assignmentID string) (int, error)
}

type submissionRepository struct {
	collection *store.Collection[models.Submission]
}

// NewSubmissionRepository instantiates the repository.
func NewSubmissionRepository(collection *store.Collection[models.Submission]) SubmissionRepository {
	return &submissionRepository{collection: collection}
}

func (r *submissionRepository) List(ctx context.Context, filter SubmissionFilter) ([]models.Submission, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	submissions, err := r.collection.Items()
	if err != nil {
		return nil, err
	}

	matched := make([]models.Submission, 0, len(submissions))
	for _, submission := range submissions {
		if filter.AssignmentID != nil && submission.AssignmentID != *filter.AssignmentID {
			continue
		}
		if filter.StudentUsername != nil && submission.StudentUsername != *filter.StudentUsername {
			continue
		}
		if filter.Status != nil && submission.Status != *filter.Status {
			continue
		}
		matched = append(matched, submission)
	}

	return matched, nil
}

func (r *submissionRepository) GetByID(ctx context.Context, id string) (models.Submission, error) {
	submissions, err := r.List(ctx, SubmissionFilter{})
	if err != nil {
		return models.Submission{}, err
	}

	for _, submission := range submissions {
		if submission.ID == id {
			return submission, nil
		}
	}

	return models.Submission{}, ErrNotFound
}

func (r *submissionRepository) GetByAssignmentAndStudent(ctx context.Context, assignmentID, studentUsername string) (models.Submission, error) {
	submissions, err := r.List(ctx, SubmissionFilter{AssignmentID: &assignmentID, StudentUsername: &studentUsername})
	if err != nil {
		return models.Submission{}, err
	}

	if len(submissions) == 0 {
		return models.Submission{}, ErrNotFound
	}

	return submissions[0], nil
}

// Create appends the submission, enforcing at most one submission per
// (assignment, student) pair inside the collection's critical section.
func (r *submissionRepository) Create(ctx context.Context, submission models.Submission) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return r.collection.Update(func(items []models.Submission) ([]models.Submission, error) {
		for _, existing := range items {
			if existing.ID == submission.ID {
				return nil, ErrDuplicate
			}
			if existing.AssignmentID == submission.AssignmentID &&
				existing.StudentUsername == submission.StudentUsername {
				return nil, ErrDuplicate
			}
		}

		return append(items, submission), nil
	})
}

func (r *submissionRepository) Update(ctx context.Context, id string, apply func(*models.Submission)) (models.Submission, error) {
	if err := ctx.Err(); err != nil {
		return models.Submission{}, err
	}

	var updated models.Submission
	err := r.collection.Update(func(items []models.Submission) ([]models.Submission, error) {
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
		return models.Submission{}, err
	}

	return updated, nil
}

// UpdateBatch applies the mutation to every submission whose id is listed,
// in one load-save pass. Ids that do not resolve are reported, not failed.
func (r *submissionRepository) UpdateBatch(ctx context.Context, ids []string, apply func(*models.Submission)) (int, []string, error) {
	if err := ctx.Err(); err != nil {
		return 0, nil, err
	}

	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = false
	}

	updated := 0
	err := r.collection.Update(func(items []models.Submission) ([]models.Submission, error) {
		for i := range items {
			if _, ok := wanted[items[i].ID]; ok {
				apply(&items[i])
				wanted[items[i].ID] = true
				updated++
			}
		}

		return items, nil
	})
	if err != nil {
		return 0, nil, err
	}

	missing := make([]string, 0)
	for _, id := range ids {
		if !wanted[id] {
			missing = append(missing, id)
		}
	}

	return updated, missing, nil
}

func (r *submissionRepository) DeleteByAssignment(ctx context.Context, assignmentID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	removed := 0
	err := r.collection.Update(func(items []models.Submission) ([]models.Submission, error) {
		remaining := make([]models.Submission, 0, len(items))
		for _, submission := range items {
			if submission.AssignmentID == assignmentID {
				removed++
				continue
			}
			remaining = append(remaining, submission)
		}

		return remaining, nil
	})
	if err != nil {
		return 0, err
	}

	return removed, nil
}
