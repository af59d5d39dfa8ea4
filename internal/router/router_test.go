package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/cryptovlab/coursework-api/internal/config"
	"github.com/cryptovlab/coursework-api/internal/handler"
	"github.com/cryptovlab/coursework-api/internal/middleware"
	"github.com/cryptovlab/coursework-api/internal/models"
	"github.com/cryptovlab/coursework-api/internal/repository"
	"github.com/cryptovlab/coursework-api/internal/router"
	"github.com/cryptovlab/coursework-api/internal/service"
	"github.com/cryptovlab/coursework-api/internal/store"
	"github.com/cryptovlab/coursework-api/internal/utils"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	cfg := config.Config{
		AppName: "Coursework API Test",
		AppEnv:  "test",
		DataDir: "data",
	}

	fs := afero.NewMemMapFs()
	logger := zerolog.New(io.Discard)

	assignmentCollection, err := store.NewCollection[models.Assignment](fs, cfg.AssignmentsFile(), "assignments", store.AssignmentsSchema)
	require.NoError(t, err)
	submissionCollection, err := store.NewCollection[models.Submission](fs, cfg.SubmissionsFile(), "submissions", store.SubmissionsSchema)
	require.NoError(t, err)
	activityCollection, err := store.NewCollection[models.ActivityEvent](fs, cfg.ActivitiesFile(), "activities", store.ActivitiesSchema)
	require.NoError(t, err)

	assignmentRepo := repository.NewAssignmentRepository(assignmentCollection)
	submissionRepo := repository.NewSubmissionRepository(submissionCollection)
	activityRepo := repository.NewActivityLogRepository(activityCollection)

	validate := validator.New(validator.WithRequiredStructEnabled())

	activityService := service.NewActivityService(activityRepo, logger)
	assignmentService := service.NewAssignmentService(assignmentRepo, submissionRepo, validate, activityService, logger)
	submissionService := service.NewSubmissionService(submissionRepo, assignmentRepo, validate, activityService, logger)
	gradingService := service.NewGradingService(submissionRepo, validate, activityService, logger)
	statsService := service.NewStatsService(assignmentRepo, submissionRepo, 5, logger)

	app := fiber.New()
	middleware.Register(app)
	router.Register(app, cfg, router.Dependencies{
		AssignmentHandler: handler.NewAssignmentHandler(assignmentService, logger),
		SubmissionHandler: handler.NewSubmissionHandler(submissionService, logger),
		GradingHandler:    handler.NewGradingHandler(gradingService, logger),
		StatsHandler:      handler.NewStatsHandler(statsService, activityService, logger),
	})

	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, utils.APIResponse) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var payload utils.APIResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	require.NoError(t, resp.Body.Close())

	return resp, payload
}

func dataAsMap(t *testing.T, payload utils.APIResponse) map[string]any {
	t.Helper()

	data, ok := payload.Data.(map[string]any)
	require.True(t, ok, "expected object data, got %T", payload.Data)
	return data
}

func TestHealthEndpoint(t *testing.T) {
	app := newTestApp(t)

	resp, payload := doJSON(t, app, http.MethodGet, "/api/v1/health", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, payload.Success)
}

func TestAssignmentLifecycleOverHTTP(t *testing.T) {
	app := newTestApp(t)

	create := map[string]any{
		"title":       "Caesar Cipher Analysis",
		"description": "Break a shift cipher",
		"lab_module":  "shift_cipher",
		"difficulty":  "easy",
		"points":      10,
		"due_days":    7,
		"created_by":  "prof1",
	}

	resp, payload := doJSON(t, app, http.MethodPost, "/api/v1/assignments", create)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, payload.Success)
	assignment := dataAsMap(t, payload)
	assignmentID, _ := assignment["id"].(string)
	require.NotEmpty(t, assignmentID)
	require.Equal(t, true, assignment["is_active"])

	// Invalid difficulty is rejected before anything is stored.
	bad := map[string]any{
		"title": "Bad", "difficulty": "impossible", "points": 10,
		"due_days": 7, "created_by": "prof1", "lab_module": "shift_cipher",
		"description": "x",
	}
	resp, payload = doJSON(t, app, http.MethodPost, "/api/v1/assignments", bad)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.False(t, payload.Success)

	resp, payload = doJSON(t, app, http.MethodGet, "/api/v1/assignments", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	listed, ok := payload.Data.([]any)
	require.True(t, ok)
	require.Len(t, listed, 1)

	resp, _ = doJSON(t, app, http.MethodGet, "/api/v1/assignments/"+assignmentID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodGet, "/api/v1/assignments/unknown", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, payload = doJSON(t, app, http.MethodPatch, "/api/v1/assignments/"+assignmentID, map[string]any{"points": 15})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, float64(15), dataAsMap(t, payload)["points"])
}

func TestSubmissionAndGradingFlowOverHTTP(t *testing.T) {
	app := newTestApp(t)

	_, payload := doJSON(t, app, http.MethodPost, "/api/v1/assignments", map[string]any{
		"title":       "Hash Function Security Analysis",
		"description": "Compare hash functions",
		"lab_module":  "hash_function",
		"difficulty":  "medium",
		"points":      20,
		"due_days":    12,
		"created_by":  "prof1",
	})
	assignmentID := dataAsMap(t, payload)["id"].(string)

	submit := map[string]any{
		"assignment_id":    assignmentID,
		"student_username": "alice",
		"content":          "my analysis",
	}

	resp, payload := doJSON(t, app, http.MethodPost, "/api/v1/submissions", submit)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	submission := dataAsMap(t, payload)
	submissionID := submission["id"].(string)
	require.Equal(t, "submitted", submission["status"])

	// Re-submitting the same pair conflicts.
	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/submissions", submit)
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	// Submitting against an unknown assignment is a bad request.
	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/submissions", map[string]any{
		"assignment_id":    "unknown",
		"student_username": "bob",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, payload = doJSON(t, app, http.MethodPost, "/api/v1/submissions/"+submissionID+"/grade", map[string]any{
		"grade":     18,
		"feedback":  "solid work",
		"graded_by": "prof1",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	graded := dataAsMap(t, payload)
	require.Equal(t, "graded", graded["status"])
	require.Equal(t, float64(18), graded["grade"])

	resp, payload = doJSON(t, app, http.MethodPost, "/api/v1/submissions/bulk-approve", map[string]any{
		"submission_ids": []string{submissionID, "ghost"},
		"approved_by":    "prof1",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	result := dataAsMap(t, payload)
	require.Equal(t, float64(1), result["updated"])
	require.Equal(t, []any{"ghost"}, result["failed_ids"])

	resp, payload = doJSON(t, app, http.MethodGet, "/api/v1/submissions?assignment_id="+assignmentID+"&student_username=alice", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "approved", dataAsMap(t, payload)["status"])
}

func TestStatsEndpointsOverHTTP(t *testing.T) {
	app := newTestApp(t)

	_, payload := doJSON(t, app, http.MethodPost, "/api/v1/assignments", map[string]any{
		"title":       "Mono-Alphabetic Cipher Challenge",
		"description": "Decrypt a substitution cipher",
		"lab_module":  "mono_alphabetic",
		"difficulty":  "medium",
		"points":      15,
		"due_days":    10,
		"created_by":  "prof1",
	})
	assignmentID := dataAsMap(t, payload)["id"].(string)

	for _, student := range []string{"alice", "bob"} {
		resp, _ := doJSON(t, app, http.MethodPost, "/api/v1/submissions", map[string]any{
			"assignment_id":    assignmentID,
			"student_username": student,
			"content":          "work",
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	resp, payload := doJSON(t, app, http.MethodGet, "/api/v1/stats", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	overview := dataAsMap(t, payload)
	require.Equal(t, float64(1), overview["total_active_assignments"])
	require.Equal(t, float64(2), overview["total_submissions"])
	require.Equal(t, float64(0), overview["graded_submissions"])
	require.Equal(t, float64(2), overview["pending_grading"])

	resp, payload = doJSON(t, app, http.MethodGet, "/api/v1/stats/recent-submissions?limit=1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	recent, ok := payload.Data.([]any)
	require.True(t, ok)
	require.Len(t, recent, 1)

	resp, payload = doJSON(t, app, http.MethodGet, "/api/v1/stats/activity", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	events, ok := payload.Data.([]any)
	require.True(t, ok)
	require.Len(t, events, 3)
}

func TestAssignmentDeleteCascadesOverHTTP(t *testing.T) {
	app := newTestApp(t)

	_, payload := doJSON(t, app, http.MethodPost, "/api/v1/assignments", map[string]any{
		"title":       "AES Implementation Project",
		"description": "Implement AES-128",
		"lab_module":  "aes_algorithm",
		"difficulty":  "hard",
		"points":      25,
		"due_days":    14,
		"created_by":  "prof1",
	})
	assignmentID := dataAsMap(t, payload)["id"].(string)

	resp, _ := doJSON(t, app, http.MethodPost, "/api/v1/submissions", map[string]any{
		"assignment_id":    assignmentID,
		"student_username": "alice",
		"content":          "cipher.go",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodDelete, "/api/v1/assignments/"+assignmentID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodGet, "/api/v1/assignments/"+assignmentID, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, payload = doJSON(t, app, http.MethodGet, "/api/v1/submissions?assignment_id="+assignmentID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	remaining, ok := payload.Data.([]any)
	require.True(t, ok)
	require.Empty(t, remaining)
}
