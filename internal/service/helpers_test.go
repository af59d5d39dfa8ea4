package service

import (
	"io"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/cryptovlab/coursework-api/internal/models"
	"github.com/cryptovlab/coursework-api/internal/repository"
	"github.com/cryptovlab/coursework-api/internal/store"
)

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

// testEnv provides real repositories backed by in-memory collections.
type testEnv struct {
	assignments repository.AssignmentRepository
	submissions repository.SubmissionRepository
	activities  repository.ActivityLogRepository
	validate    *validator.Validate
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	fs := afero.NewMemMapFs()

	assignmentCollection, err := store.NewCollection[models.Assignment](fs, "data/assignments.json", "assignments", store.AssignmentsSchema)
	require.NoError(t, err)

	submissionCollection, err := store.NewCollection[models.Submission](fs, "data/submissions.json", "submissions", store.SubmissionsSchema)
	require.NoError(t, err)

	activityCollection, err := store.NewCollection[models.ActivityEvent](fs, "data/activities.json", "activities", store.ActivitiesSchema)
	require.NoError(t, err)

	return &testEnv{
		assignments: repository.NewAssignmentRepository(assignmentCollection),
		submissions: repository.NewSubmissionRepository(submissionCollection),
		activities:  repository.NewActivityLogRepository(activityCollection),
		validate:    validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (e *testEnv) assignmentServiceAt(now time.Time) AssignmentService {
	svc := NewAssignmentService(e.assignments, e.submissions, e.validate, nil, testLogger())
	svc.(*assignmentService).now = func() time.Time { return now }
	return svc
}

func (e *testEnv) submissionServiceAt(now time.Time) SubmissionService {
	svc := NewSubmissionService(e.submissions, e.assignments, e.validate, nil, testLogger())
	svc.(*submissionService).now = func() time.Time { return now }
	return svc
}

func (e *testEnv) gradingServiceAt(now time.Time) GradingService {
	svc := NewGradingService(e.submissions, e.validate, nil, testLogger())
	svc.(*gradingService).now = func() time.Time { return now }
	return svc
}

func (e *testEnv) statsService(recentLimit int) StatsService {
	return NewStatsService(e.assignments, e.submissions, recentLimit, testLogger())
}
