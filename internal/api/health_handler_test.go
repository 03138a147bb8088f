package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/libris-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) PingContext(ctx context.Context) error { return f(ctx) }

func TestHealthHandler(t *testing.T) {
	log, _ := logger.GetTestLogger(t)

	t.Run("ok", func(t *testing.T) {
		h := NewHealthHandler(pingerFunc(func(ctx context.Context) error {
			_, hasDeadline := ctx.Deadline()
			assert.True(t, hasDeadline)
			return nil
		}), log)

		rr := httptest.NewRecorder()
		h.Health(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "OK", rr.Body.String())
	})

	t.Run("store unreachable", func(t *testing.T) {
		h := NewHealthHandler(pingerFunc(func(ctx context.Context) error {
			return errors.New("connection refused")
		}), log)

		rr := httptest.NewRecorder()
		h.Health(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	})
}

func TestNewHandlers_PanicWithoutLogger(t *testing.T) {
	assert.Panics(t, func() { NewAuthorHandler(nil, nil) })
	assert.Panics(t, func() { NewBookHandler(nil, nil) })
	assert.Panics(t, func() { NewUserHandler(nil, nil) })
	assert.Panics(t, func() { NewHealthHandler(nil, nil) })
}
