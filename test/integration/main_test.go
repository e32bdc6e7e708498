package integration_test

import (
	"net/http"
	"testing"

	"launchpad_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthAndMatching(t *testing.T) {
	ts := helpers.NewTestServer(t)
	client := ts.Client(t)

	res, body := ts.SendRequest(t, client, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, `"ok"`)

	res, body = ts.SendRequest(t, client, http.MethodPost, "/api/cofounder-matches", map[string]any{
		"problemCategory": "EdTech",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, `"success":true`)
	assert.Contains(t, body, `"totalFound"`)
}
