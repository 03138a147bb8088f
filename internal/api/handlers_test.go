package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/libris-api/internal/api/shared"
	"github.com/phrazzld/libris-api/internal/domain"
	"github.com/phrazzld/libris-api/internal/mocks"
	"github.com/phrazzld/libris-api/internal/platform/logger"
	"github.com/stretchr/testify/require"
)

var fixedTime = time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

// testRouter mounts every catalog handler on a chi router without auth.
type testRouter struct {
	authors *mocks.MockAuthorService
	books   *mocks.MockBookService
	users   *mocks.MockUserService
	router  chi.Router
}

func newTestRouter(t *testing.T) *testRouter {
	t.Helper()

	log, _ := logger.GetTestLogger(t)
	tr := &testRouter{
		authors: &mocks.MockAuthorService{},
		books:   &mocks.MockBookService{},
		users:   &mocks.MockUserService{},
	}

	authorHandler := NewAuthorHandler(tr.authors, log)
	bookHandler := NewBookHandler(tr.books, log)
	userHandler := NewUserHandler(tr.users, log)

	r := chi.NewRouter()
	r.Post("/users/register", userHandler.Register)
	r.Post("/users/login", userHandler.Login)
	r.With(fakeAuth).Get("/users/profile", userHandler.Profile)
	r.Get("/users/anonymous-profile", userHandler.Profile)

	r.Route("/authors", func(r chi.Router) {
		r.Get("/", authorHandler.ListAuthors)
		r.Post("/", authorHandler.CreateAuthor)
		r.Get("/{id}", authorHandler.GetAuthor)
		r.Put("/{id}", authorHandler.UpdateAuthor)
		r.Patch("/{id}", authorHandler.UpdateAuthor)
		r.Delete("/{id}", authorHandler.DeleteAuthor)
	})
	r.Route("/books", func(r chi.Router) {
		r.Get("/", bookHandler.ListBooks)
		r.Post("/", bookHandler.CreateBook)
		r.Get("/{id}", bookHandler.GetBook)
		r.Put("/{id}", bookHandler.UpdateBook)
		r.Patch("/{id}", bookHandler.UpdateBook)
		r.Delete("/{id}", bookHandler.DeleteBook)
	})

	tr.router = r
	return tr
}

// fakeAuth authenticates every request as user 1, "reader".
func fakeAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(shared.WithUser(r.Context(), 1, "reader")))
	})
}

func (tr *testRouter) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	tr.router.ServeHTTP(rr, req)
	return rr
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.NewDecoder(bytes.NewReader(rr.Body.Bytes())).Decode(&v), rr.Body.String())
	return v
}

func errorMessage(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	return decodeBody[shared.ErrorResponse](t, rr).Error
}

func sampleAuthor(id int64, name string) *domain.Author {
	return &domain.Author{ID: id, Name: name, CreatedAt: fixedTime, UpdatedAt: fixedTime}
}

func sampleBook(id int64, title, isbn string, author *domain.Author) *domain.Book {
	return &domain.Book{
		ID:          id,
		Title:       title,
		ISBN:        isbn,
		AuthorID:    author.ID,
		Author:      author,
		IsAvailable: true,
		CreatedAt:   fixedTime,
		UpdatedAt:   fixedTime,
	}
}

func ptr[T any](v T) *T {
	return &v
}
