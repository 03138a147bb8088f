package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/libris-api/internal/api/shared"
	"github.com/phrazzld/libris-api/internal/domain"
	"github.com/phrazzld/libris-api/internal/platform/logger"
	"github.com/phrazzld/libris-api/internal/service"
)

// AuthorHandler handles author-related HTTP requests
type AuthorHandler struct {
	authorService service.AuthorService
	logger        *slog.Logger
}

// NewAuthorHandler creates a new AuthorHandler
func NewAuthorHandler(authorService service.AuthorService, logger *slog.Logger) *AuthorHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for AuthorHandler")
	}

	return &AuthorHandler{
		authorService: authorService,
		logger:        logger.With(slog.String("component", "author_handler")),
	}
}

// CreateAuthor handles POST /authors requests
func (h *AuthorHandler) CreateAuthor(w http.ResponseWriter, r *http.Request) {
	var req CreateAuthorRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	author, err := h.authorService.Create(r.Context(), req.toInput())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create author")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, authorToResponse(author))
}

// ListAuthors handles GET /authors requests
func (h *AuthorHandler) ListAuthors(w http.ResponseWriter, r *http.Request) {
	authors, err := h.authorService.List(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list authors")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, authorsToResponse(authors))
}

// GetAuthor handles GET /authors/{id} requests
func (h *AuthorHandler) GetAuthor(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	author, found, err := h.authorService.GetByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get author")
		return
	}
	if !found {
		log.Debug("author not found", slog.Int64("author_id", id))
		HandleAPIError(w, r, domain.NewNotFoundError("author", id), "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, authorToResponse(author))
}

// UpdateAuthor handles PUT and PATCH /authors/{id} requests. Only the fields
// present in the body are changed.
func (h *AuthorHandler) UpdateAuthor(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req UpdateAuthorRequest
	if !decodeUpdate(w, r, &req) {
		return
	}

	patch := req.toPatch()
	if patch.IsEmpty() {
		shared.RespondWithError(w, r, http.StatusBadRequest, noUpdateDataMessage)
		return
	}

	author, err := h.authorService.Update(r.Context(), id, patch)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update author")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, authorToResponse(author))
}

// DeleteAuthor handles DELETE /authors/{id} requests
func (h *AuthorHandler) DeleteAuthor(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	author, err := h.authorService.Delete(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to delete author")
		return
	}

	log.Info("author deleted", slog.Int64("author_id", id))
	shared.RespondWithJSON(w, r, http.StatusOK, DeleteAuthorResponse{
		Message: "Author deleted successfully",
		Author:  authorToResponse(author),
	})
}
