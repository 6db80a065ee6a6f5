package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/phrazzld/spending-api/internal/config"
	"github.com/phrazzld/spending-api/internal/platform/sqlite"
	"github.com/phrazzld/spending-api/internal/testdb"
	"github.com/phrazzld/spending-api/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: 0, LogLevel: "error", ShutdownTimeoutSeconds: 5},
		Database: config.DatabaseConfig{
			Driver: "sqlite",
			URL:    sqlite.MemoryDSN,
		},
		Auth: config.AuthConfig{
			JWTSecret:            "test-secret-that-is-at-least-32-characters-long",
			TokenLifetimeMinutes: 60,
			BCryptCost:           4,
		},
	}
}

func newTestApp(t *testing.T) *application {
	t.Helper()
	db := testdb.NewSQLite(t)
	log := slog.New(slog.NewJSONHandler(io.Discard, nil))
	app, err := newApplication(testConfig(), log, db, sqlite.Dialect{})
	require.NoError(t, err)
	return app
}

type client struct {
	t      *testing.T
	router http.Handler
}

func (c client) json(method, path, token, body string) (int, map[string]any) {
	c.t.Helper()
	return c.decode(testutils.DoJSON(c.t, c.router, method, path, token, body))
}

func (c client) signIn(email, password string) (int, map[string]any) {
	c.t.Helper()
	return c.decode(testutils.SignIn(c.t, c.router, email, password))
}

func (c client) decode(rec *httptest.ResponseRecorder) (int, map[string]any) {
	c.t.Helper()
	if !strings.HasPrefix(strings.TrimSpace(rec.Body.String()), "{") {
		return rec.Code, nil
	}
	return rec.Code, testutils.DecodeBody[map[string]any](c.t, rec)
}

func (c client) list(token string) []map[string]any {
	c.t.Helper()
	rec := testutils.DoJSON(c.t, c.router, http.MethodGet, "/spending/", token, "")
	require.Equal(c.t, http.StatusOK, rec.Code, rec.Body.String())
	return testutils.DecodeBody[[]map[string]any](c.t, rec)
}

func TestEndToEnd(t *testing.T) {
	app := newTestApp(t)
	c := client{t: t, router: app.setupRouter()}

	status, body := c.json(http.MethodPost, "/user/signup", "", `{"email":"alice@example.com","password":"s3cret"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "User created successfully!", body["message"])

	status, body = c.json(http.MethodPost, "/user/signup", "", `{"email":"alice@example.com","password":"other"}`)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "User with supplied username exists", body["detail"])

	status, body = c.signIn("alice@example.com", "s3cret")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Bearer", body["token_type"])
	alice, _ := body["access_token"].(string)
	require.NotEmpty(t, alice)

	status, body = c.signIn("alice@example.com", "wrong")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Invalid details passed.", body["detail"])

	status, body = c.signIn("ghost@example.com", "s3cret")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "User with supplied email does not exist", body["detail"])

	status, body = c.json(http.MethodPost, "/spending/new", alice,
		`{"date":"2024-06-01","food":10,"transport":2.5,"shopping":0,"total":12.5}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Record created successfully", body["message"])

	records := c.list(alice)
	require.Len(t, records, 1)
	id, _ := records[0]["_id"].(string)
	path := "/spending/" + id

	status, body = c.json(http.MethodGet, path, alice, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "alice@example.com", body["creator"])
	assert.Equal(t, 2.5, body["transport"])

	status, _ = c.json(http.MethodPost, "/user/signup", "", `{"email":"bob@example.com","password":"pw"}`)
	require.Equal(t, http.StatusOK, status)
	_, body = c.signIn("bob@example.com", "pw")
	bob, _ := body["access_token"].(string)

	status, body = c.json(http.MethodGet, path, bob, "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Operation not allowed", body["detail"])
	assert.Empty(t, c.list(bob))

	status, _ = c.json(http.MethodPut, path, bob, `{"food":99}`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = c.json(http.MethodPut, path, alice, `{"food":11}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 11.0, body["food"])
	assert.Equal(t, 12.5, body["total"])

	status, body = c.json(http.MethodPut, path, alice, `{}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 11.0, body["food"])

	status, _ = c.json(http.MethodDelete, path, bob, "")
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = c.json(http.MethodDelete, path, alice, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Record deleted successfully", body["message"])

	status, body = c.json(http.MethodDelete, path, alice, "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Record with supplied ID does not exist", body["detail"])
}

func TestSignUp_PasswordLength(t *testing.T) {
	app := newTestApp(t)
	router := app.setupRouter()

	signUp := func(email, password string) *httptest.ResponseRecorder {
		return testutils.DoJSON(t, router, http.MethodPost, "/user/signup", "",
			fmt.Sprintf(`{"email":%q,"password":%q}`, email, password))
	}

	longest := strings.Repeat("a", 72)
	testutils.AssertMessageResponse(t, signUp("max@example.com", longest), "User created successfully!")
	require.Equal(t, http.StatusOK, testutils.SignIn(t, router, "max@example.com", longest).Code)

	testutils.AssertErrorResponse(t, signUp("long@example.com", strings.Repeat("a", 80)),
		http.StatusBadRequest, "Invalid Password: is too long")
	testutils.AssertErrorResponse(t, signUp("wide@example.com", strings.Repeat("é", 40)),
		http.StatusBadRequest, "Invalid password: is too long")
	testutils.AssertErrorResponse(t, testutils.SignIn(t, router, "long@example.com", strings.Repeat("a", 80)),
		http.StatusNotFound, "User with supplied email does not exist")
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)
	server := testutils.CreateTestServer(t, app.setupRouter())

	resp, err := http.Get(server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", string(body))
}

func TestServe_GracefulShutdown(t *testing.T) {
	app := newTestApp(t)
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.serve(ctx, listener, app.setupRouter()) }()

	healthURL := fmt.Sprintf("http://%s/health", listener.Addr())
	require.Eventually(t, func() bool {
		resp, err := http.Get(healthURL)
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestRun_RejectsUnknownMigrationCommand(t *testing.T) {
	t.Setenv("SPEND_DATABASE_DRIVER", "sqlite")
	t.Setenv("SPEND_DATABASE_URL", sqlite.MemoryDSN)
	t.Setenv("SPEND_AUTH_JWT_SECRET", "test-secret-that-is-at-least-32-characters-long")

	err := run(context.Background(), "", "sideways")
	assert.ErrorContains(t, err, "unknown migration command")
}

func TestRun_MigrateUp(t *testing.T) {
	t.Setenv("SPEND_DATABASE_DRIVER", "sqlite")
	t.Setenv("SPEND_DATABASE_URL", sqlite.MemoryDSN)
	t.Setenv("SPEND_AUTH_JWT_SECRET", "test-secret-that-is-at-least-32-characters-long")

	assert.NoError(t, run(context.Background(), "", "up"))
}

func TestNewApplication_RejectsShortSecret(t *testing.T) {
	cfg := testConfig()
	cfg.Auth.JWTSecret = "short"
	_, err := newApplication(cfg, slog.New(slog.NewJSONHandler(io.Discard, nil)), nil, sqlite.Dialect{})
	assert.ErrorContains(t, err, "token service")
}
