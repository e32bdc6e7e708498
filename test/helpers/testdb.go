package helpers

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// UniqueEmail returns an address that will not collide across runs.
func UniqueEmail(prefix string) string {
	return fmt.Sprintf("%s_%d@launchpad.test", prefix, time.Now().UnixNano())
}

// RegisterUser registers a fresh account and returns a client carrying its
// session cookie.
func RegisterUser(t *testing.T, ts *TestServer, name string) (*http.Client, string) {
	t.Helper()

	client := ts.Client(t)
	email := UniqueEmail(name)
	res, body := ts.SendRequest(t, client, http.MethodPost, "/api/auth/register", map[string]any{
		"name":     name,
		"email":    email,
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)
	return client, email
}
