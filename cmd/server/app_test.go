package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/libris-api/internal/config"
	"github.com/phrazzld/libris-api/internal/platform/logger"
	"github.com/phrazzld/libris-api/internal/service/auth"
	"github.com/phrazzld/libris-api/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:                   8080,
			LogLevel:               "debug",
			ShutdownTimeoutSeconds: 1,
		},
		Database: config.DatabaseConfig{
			Driver:       config.DriverSQLite,
			URL:          "unused",
			MaxOpenConns: 1,
		},
		Auth: auth.DefaultJWTConfig(),
		RateLimit: config.RateLimitConfig{
			Enabled:           true,
			RequestsPerSecond: 100,
			Burst:             100,
		},
	}
}

// newTestServer wires the real application against a migrated SQLite file.
func newTestServer(t *testing.T, cfg *config.Config) *httptest.Server {
	t.Helper()

	log, _ := logger.GetTestLogger(t)
	app, err := newApplication(cfg, log, testdb.NewSQLite(t))
	require.NoError(t, err)

	srv := httptest.NewServer(app.setupRouter())
	t.Cleanup(srv.Close)
	return srv
}

type client struct {
	t     *testing.T
	base  string
	token string
}

func (c *client) call(method, path string, body any) (int, []byte) {
	c.t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, c.base+path, reader)
	require.NoError(c.t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(c.t, err)
	defer func() { _ = resp.Body.Close() }()

	out, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)
	return resp.StatusCode, out
}

func (c *client) login(username, password string) {
	c.t.Helper()

	status, body := c.call(http.MethodPost, "/api/users/register",
		map[string]string{"username": username, "password": password})
	require.Equal(c.t, http.StatusCreated, status, string(body))

	status, body = c.call(http.MethodPost, "/api/users/login",
		map[string]string{"username": username, "password": password})
	require.Equal(c.t, http.StatusOK, status, string(body))

	var token struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	require.NoError(c.t, json.Unmarshal(body, &token))
	assert.Equal(c.t, "bearer", token.TokenType)
	c.token = token.AccessToken
}

func decode[T any](t *testing.T, body []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(body, &v), string(body))
	return v
}

func TestCatalogEndToEnd(t *testing.T) {
	srv := newTestServer(t, testConfig())
	c := &client{t: t, base: srv.URL}

	status, _ := c.call(http.MethodGet, "/api/authors", nil)
	require.Equal(t, http.StatusUnauthorized, status)

	c.login("librarian", "correct horse battery")

	status, body := c.call(http.MethodGet, "/api/users/profile", nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"message":"Welcome librarian"}`, string(body))

	status, body = c.call(http.MethodPost, "/api/authors", map[string]any{
		"name":        "Gabriel García Márquez",
		"nationality": "Colombian",
		"dob":         "1927-03-06",
	})
	require.Equal(t, http.StatusCreated, status, string(body))
	author := decode[map[string]any](t, body)
	authorID := int64(author["id"].(float64))
	assert.Equal(t, "1927-03-06", author["date_of_birth"])

	status, body = c.call(http.MethodPost, "/api/books", map[string]any{
		"title":          "Cien años de soledad",
		"isbn":           "978-84-376-0494-7",
		"author_id":      authorID,
		"published_year": 1967,
	})
	require.Equal(t, http.StatusCreated, status, string(body))
	book := decode[map[string]any](t, body)
	bookID := int64(book["id"].(float64))
	assert.Equal(t, true, book["isAvailable"])
	assert.Equal(t, "Gabriel García Márquez", book["author"].(map[string]any)["name"])

	status, _ = c.call(http.MethodPost, "/api/books", map[string]any{
		"title": "Duplicate", "isbn": "978-84-376-0494-7", "author_id": authorID,
	})
	assert.Equal(t, http.StatusConflict, status)

	status, _ = c.call(http.MethodPost, "/api/books", map[string]any{
		"title": "Orphan", "isbn": "000", "author_id": 999,
	})
	assert.Equal(t, http.StatusNotFound, status)

	status, body = c.call(http.MethodPatch, fmt.Sprintf("/api/books/%d", bookID), map[string]any{
		"is_available": false,
	})
	require.Equal(t, http.StatusOK, status, string(body))
	assert.Equal(t, false, decode[map[string]any](t, body)["isAvailable"])

	status, body = c.call(http.MethodGet, "/api/books?isAvailable=true", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, decode[[]map[string]any](t, body))

	status, body = c.call(http.MethodGet, "/api/books/?title=SOLEDAD", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]map[string]any](t, body), 1)

	status, body = c.call(http.MethodDelete, fmt.Sprintf("/api/authors/%d", authorID), nil)
	assert.Equal(t, http.StatusConflict, status)
	assert.Contains(t, string(body), "cannot delete; author has associated books")

	status, body = c.call(http.MethodDelete, fmt.Sprintf("/api/books/%d", bookID), nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Book deleted successfully", decode[map[string]any](t, body)["message"])

	status, body = c.call(http.MethodDelete, fmt.Sprintf("/api/authors/%d", authorID), nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Author deleted successfully", decode[map[string]any](t, body)["message"])

	status, _ = c.call(http.MethodGet, fmt.Sprintf("/api/authors/%d", authorID), nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestRegisterDuplicateAndBadLogin(t *testing.T) {
	srv := newTestServer(t, testConfig())
	c := &client{t: t, base: srv.URL}
	c.login("reader", "correct horse battery")

	status, _ := c.call(http.MethodPost, "/api/users/register",
		map[string]string{"username": "reader", "password": "another password"})
	assert.Equal(t, http.StatusConflict, status)

	status, _ = c.call(http.MethodPost, "/api/users/login",
		map[string]string{"username": "reader", "password": "wrong password"})
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = c.call(http.MethodPost, "/api/users/login",
		map[string]string{"username": "nobody", "password": "wrong password"})
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestRateLimitOnUserEndpoints(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit = config.RateLimitConfig{Enabled: true, RequestsPerSecond: 0.01, Burst: 2}
	srv := newTestServer(t, cfg)
	c := &client{t: t, base: srv.URL}

	creds := map[string]string{"username": "nobody", "password": "wrong password"}
	for i := 0; i < 2; i++ {
		status, _ := c.call(http.MethodPost, "/api/users/login", creds)
		require.Equal(t, http.StatusUnauthorized, status)
	}

	status, _ := c.call(http.MethodPost, "/api/users/login", creds)
	assert.Equal(t, http.StatusTooManyRequests, status)
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, testConfig())

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", string(body))
}
