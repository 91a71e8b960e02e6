package sync

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"farmer-registry/core/jobs"
	"farmer-registry/core/middleware/auth"
	"farmer-registry/feature/farmer/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestApp(t *testing.T, engine Engine, opts jobs.Options) (*fiber.App, *Service) {
	t.Helper()
	svc, _ := newTestService(t, engine, nil, opts)
	app := fiber.New()
	app.Use(auth.New(auth.Config{}))
	NewHandler(svc, 2).RegisterRoutes(app)
	return app, svc
}

func postBatch(t *testing.T, app *fiber.App, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest("POST", "/api/sync/batch", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestHandleSubmit_Scenario(t *testing.T) {
	engine, _ := newEngine(t)
	app, _ := setupTestApp(t, engine, jobs.Options{Workers: 1, QueueSize: 4})

	status, body := postBatch(t, app, `{"farmers":[
		{"temp_id":"T1","personal_info":{"first_name":"Mwila","last_name":"Banda","phone_primary":"+260971234567","nrc":"123456/78/9"},"address":{"province":"LSK","district":"Chongwe"}},
		{"personal_info":{"phone_primary":"0000000000"},"address":{}}
	]}`)
	require.Equal(t, fiber.StatusAccepted, status)
	assert.Equal(t, "queued", body["status"])
	id, _ := body["job_id"].(string)
	require.NotEmpty(t, id)

	var job map[string]any
	require.Eventually(t, func() bool {
		resp, err := app.Test(httptest.NewRequest("GET", "/api/sync/status?job_id="+id, nil))
		if err != nil || resp.StatusCode != fiber.StatusOK {
			return false
		}
		job = nil
		_ = json.NewDecoder(resp.Body).Decode(&job)
		return job["state"] == "done"
	}, 2*time.Second, 10*time.Millisecond)

	results, ok := job["results"].([]any)
	require.True(t, ok)
	require.Len(t, results, 2)

	first := results[0].(map[string]any)
	assert.Equal(t, "T1", first["temp_id"])
	assert.Equal(t, "created", first["status"])
	assert.Regexp(t, `^ZM[0-9A-F]{8}$`, first["farmer_id"])

	second := results[1].(map[string]any)
	assert.Nil(t, second["temp_id"])
	assert.Equal(t, "error", second["status"])
	assert.Equal(t, []any{"Phone must start with country code +260"}, second["errors"])
}

func TestHandleSubmit_InvalidGPSIsARecordError(t *testing.T) {
	engine, _ := newEngine(t)
	svc, _ := newTestService(t, engine, nil, jobs.Options{Workers: 1, QueueSize: 1})
	app := fiber.New()
	NewHandler(svc, 0).RegisterRoutes(app)

	status, body := postBatch(t, app, `{"farmers":[{"personal_info":{"phone_primary":"+260971234567"},"address":{"gps_latitude":"north","gps_longitude":28.3}}]}`)
	require.Equal(t, fiber.StatusAccepted, status)

	job := waitTerminal(t, svc, body["job_id"].(string))
	require.Len(t, job.Results, 1)
	assert.Equal(t, []string{"Invalid GPS coordinates"}, job.Results[0].Errors)
}

func TestHandleSubmit_BadRequests(t *testing.T) {
	app, _ := setupTestApp(t, engineFunc(nil), jobs.Options{Workers: 1, QueueSize: 1})

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"farmers":`},
		{"missing farmers", `{}`},
		{"empty farmers", `{"farmers":[]}`},
		{"over max batch", `{"farmers":[{},{},{}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := postBatch(t, app, tt.body)
			assert.Equal(t, fiber.StatusBadRequest, status)
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestHandleSubmit_QueueFull(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	engine := engineFunc(func(ctx context.Context, _ []models.IncomingRecord, _ string) ([]Outcome, error) {
		select {
		case <-release:
		case <-ctx.Done():
		}
		return nil, nil
	})
	app, svc := setupTestApp(t, engine, jobs.Options{Workers: 1, QueueSize: 1})
	batch := `{"farmers":[{"personal_info":{"phone_primary":"+260971234567"}}]}`

	status, body := postBatch(t, app, batch)
	require.Equal(t, fiber.StatusAccepted, status)
	first := body["job_id"].(string)
	require.Eventually(t, func() bool {
		job, err := svc.Status(context.Background(), first)
		return err == nil && job.State == jobs.StateRunning
	}, 2*time.Second, 5*time.Millisecond)

	status, _ = postBatch(t, app, batch)
	require.Equal(t, fiber.StatusAccepted, status)

	status, body = postBatch(t, app, batch)
	assert.Equal(t, fiber.StatusServiceUnavailable, status)
	assert.Equal(t, jobs.ErrQueueFull.Error(), body["error"])
}

func TestHandleSubmit_UsesActor(t *testing.T) {
	actors := make(chan string, 1)
	engine := engineFunc(func(_ context.Context, _ []models.IncomingRecord, actor string) ([]Outcome, error) {
		actors <- actor
		return nil, nil
	})
	svc, _ := newTestService(t, engine, nil, jobs.Options{Workers: 1, QueueSize: 1})
	app := fiber.New()
	app.Use(auth.New(auth.Config{ApiKey: "k"}))
	NewHandler(svc, 0).RegisterRoutes(app)

	req := httptest.NewRequest("POST", "/api/sync/batch", strings.NewReader(`{"farmers":[{}]}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(auth.APIKeyHeader, "k")
	req.Header.Set(auth.ActorHeader, "agent@example.zm")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusAccepted, resp.StatusCode)

	select {
	case actor := <-actors:
		assert.Equal(t, "agent@example.zm", actor)
	case <-time.After(2 * time.Second):
		t.Fatal("batch was not reconciled")
	}
}

func TestHandleStatus(t *testing.T) {
	app, _ := setupTestApp(t, engineFunc(nil), jobs.Options{Workers: 1})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/sync/status", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/api/sync/status?job_id=nope", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
