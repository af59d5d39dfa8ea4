package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestActivityServiceRecordAndRecent(t *testing.T) {
	env := newTestEnv(t)
	svc := NewActivityService(env.activities, testLogger())

	actions := []string{"assignment.created", "submission.received", "submission.graded"}
	for i, action := range actions {
		at := baseTime.Add(time.Duration(i) * time.Minute)
		svc.(*activityService).now = func() time.Time { return at }
		require.NoError(t, svc.Record(context.Background(), ActivityEntry{
			Actor:      "prof1",
			Action:     action,
			EntityType: "assignment",
			EntityID:   "a-1",
		}))
	}

	recent, err := svc.Recent(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	require.Equal(t, "submission.graded", recent[0].Action)
	require.Equal(t, "submission.received", recent[1].Action)

	none, err := svc.Recent(context.Background(), 0)
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestActivityServiceRejectsEmptyAction(t *testing.T) {
	env := newTestEnv(t)
	svc := NewActivityService(env.activities, testLogger())

	require.Error(t, svc.Record(context.Background(), ActivityEntry{Actor: "prof1"}))
}
