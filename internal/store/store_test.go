package store

import (
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/cryptovlab/coursework-api/internal/models"
)

func TestNewCollectionCreatesEmptyDocument(t *testing.T) {
	fs := afero.NewMemMapFs()

	_, err := NewCollection[models.Assignment](fs, "data/assignments.json", "assignments", AssignmentsSchema)
	require.NoError(t, err)

	raw, err := afero.ReadFile(fs, "data/assignments.json")
	require.NoError(t, err)
	require.JSONEq(t, `{"assignments": []}`, string(raw))
}

func TestCollectionUpdateRoundTrip(t *testing.T) {
	fs := afero.NewMemMapFs()

	collection, err := NewCollection[models.ActivityEvent](fs, "data/activities.json", "activities", ActivitiesSchema)
	require.NoError(t, err)

	event := models.ActivityEvent{ID: "evt-1", Actor: "prof1", Action: "assignment.created"}
	require.NoError(t, collection.Update(func(items []models.ActivityEvent) ([]models.ActivityEvent, error) {
		return append(items, event), nil
	}))

	items, err := collection.Items()
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "evt-1", items[0].ID)
	require.Equal(t, "prof1", items[0].Actor)
}

func TestCollectionUpdateErrorLeavesFileUntouched(t *testing.T) {
	fs := afero.NewMemMapFs()

	collection, err := NewCollection[models.ActivityEvent](fs, "data/activities.json", "activities", ActivitiesSchema)
	require.NoError(t, err)

	require.NoError(t, collection.Update(func(items []models.ActivityEvent) ([]models.ActivityEvent, error) {
		return append(items, models.ActivityEvent{ID: "evt-1", Action: "submission.received"}), nil
	}))

	boom := errors.New("boom")
	err = collection.Update(func(items []models.ActivityEvent) ([]models.ActivityEvent, error) {
		return nil, boom
	})
	require.ErrorIs(t, err, boom)

	items, err := collection.Items()
	require.NoError(t, err)
	require.Len(t, items, 1)
}

func TestCollectionLoadRejectsSchemaDrift(t *testing.T) {
	fs := afero.NewMemMapFs()

	collection, err := NewCollection[models.Submission](fs, "data/submissions.json", "submissions", SubmissionsSchema)
	require.NoError(t, err)

	// A submission without its required status field must fail fast.
	drifted := `{"submissions": [{"id": "sub-1", "assignment_id": "a-1", "student_username": "alice", "submitted_at": "2026-01-01T00:00:00Z"}]}`
	require.NoError(t, afero.WriteFile(fs, "data/submissions.json", []byte(drifted), 0o644))

	_, err = collection.Items()
	require.Error(t, err)
	require.Contains(t, err.Error(), "schema")
}

func TestCollectionLoadRejectsMalformedJSON(t *testing.T) {
	fs := afero.NewMemMapFs()

	collection, err := NewCollection[models.Assignment](fs, "data/assignments.json", "assignments", AssignmentsSchema)
	require.NoError(t, err)

	require.NoError(t, afero.WriteFile(fs, "data/assignments.json", []byte("{not json"), 0o644))

	_, err = collection.Items()
	require.Error(t, err)
}
