package integration_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"launchpad_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type projectEnvelope struct {
	Project struct {
		ID          string `json:"id"`
		CurrentStep string `json:"currentStep"`
	} `json:"project"`
}

func createProject(t *testing.T, ts *helpers.TestServer, client *http.Client, title string) string {
	t.Helper()
	res, body := ts.SendRequest(t, client, http.MethodPost, "/api/projects", map[string]any{"title": title})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	var env projectEnvelope
	require.NoError(t, json.Unmarshal([]byte(body), &env))
	return env.Project.ID
}

func TestProjectWorkflow(t *testing.T) {
	ts := helpers.NewTestServer(t)
	client, _ := helpers.RegisterUser(t, ts, "builder")

	id := createProject(t, ts, client, "Cold storage for farmers")

	res, body := ts.SendRequest(t, client, http.MethodPut, "/api/projects/"+id+"/steps/idea", map[string]any{
		"data":      map[string]any{"title": "ColdChain", "summary": "Solar cold rooms"},
		"completed": true,
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var env projectEnvelope
	require.NoError(t, json.Unmarshal([]byte(body), &env))
	assert.Equal(t, "market", env.Project.CurrentStep)

	res, body = ts.SendRequest(t, client, http.MethodGet, "/api/projects/"+id+"/progress", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, `"percentage":10`)

	// генерация с сохранением черновика
	res, body = ts.SendRequest(t, client, http.MethodPost, "/api/generate/market", map[string]any{
		"idea": "Solar cold rooms for smallholder farmers", "projectId": id,
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, `"source":"fallback"`)
	assert.Contains(t, body, `"saved":true`)

	res, body = ts.SendRequest(t, client, http.MethodGet, "/api/projects/"+id+"/export?format=markdown", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, "# Cold storage for farmers")

	res, body = ts.SendRequest(t, client, http.MethodPost, "/api/projects/"+id+"/export", nil)
	require.Equal(t, http.StatusCreated, res.StatusCode, body)
	assert.Contains(t, body, "plan.html")

	// чужой проект не виден
	stranger, _ := helpers.RegisterUser(t, ts, "stranger")
	res, _ = ts.SendRequest(t, stranger, http.MethodGet, "/api/projects/"+id, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	res, _ = ts.SendRequest(t, client, http.MethodDelete, "/api/projects/"+id, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestFreeProjectLimit(t *testing.T) {
	ts := helpers.NewTestServer(t)
	client, _ := helpers.RegisterUser(t, ts, "limited")

	for i := 0; i < ts.Config.Payment.FreeProjectLimit; i++ {
		createProject(t, ts, client, fmt.Sprintf("Project %d", i+1))
	}

	res, body := ts.SendRequest(t, client, http.MethodPost, "/api/projects", map[string]any{"title": "One too many"})
	assert.Equal(t, http.StatusForbidden, res.StatusCode, body)
}
