// Package helpers boots the full router against a real database for
// integration tests.
package helpers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"os"
	"testing"

	"launchpad_backend/database"
	"launchpad_backend/internal/app"
	"launchpad_backend/internal/config"
	"launchpad_backend/internal/storage"

	"gorm.io/gorm"
)

type TestServer struct {
	Server *httptest.Server
	DB     *gorm.DB
	Config *config.Config
}

// NewTestServer skips the test unless TEST_DATABASE_URL points at a
// disposable database.
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL is not set")
	}

	t.Setenv("SERVER_ENV", "test")
	t.Setenv("DATABASE_URL", dsn)
	t.Setenv("JWT_SECRET", "integration-secret")
	t.Setenv("PAYMENT_KEY_ID", "rzp_test_key")
	t.Setenv("PAYMENT_KEY_SECRET", "integration-payment-secret")
	t.Setenv("GEMINI_API_KEY", "")

	cfg, err := config.LoadConfig(os.DevNull)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	db, err := database.Open(context.Background(), cfg)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	store, err := storage.NewLocalStorage(storage.Config{Type: "local", BasePath: t.TempDir()})
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}

	router, err := app.SetupRouter(cfg, app.Dependencies{DB: db, Storage: store})
	if err != nil {
		t.Fatalf("failed to build router: %v", err)
	}

	ts := &TestServer{Server: httptest.NewServer(router), DB: db, Config: cfg}
	t.Cleanup(ts.Close)
	return ts
}

func (ts *TestServer) Close() {
	ts.Server.Close()
	if sqlDB, err := ts.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// Client returns an HTTP client with its own cookie jar, one per simulated user.
func (ts *TestServer) Client(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("failed to create cookie jar: %v", err)
	}
	client := ts.Server.Client()
	client.Jar = jar
	return client
}

// SendRequest sends a JSON request and returns the response and its body.
func (ts *TestServer) SendRequest(t *testing.T, client *http.Client, method, path string, body any) (*http.Response, string) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
		reqBody = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequest(method, ts.Server.URL+path, reqBody)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := client.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	return res, string(data)
}
