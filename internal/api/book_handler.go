package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/libris-api/internal/api/shared"
	"github.com/phrazzld/libris-api/internal/domain"
	"github.com/phrazzld/libris-api/internal/platform/logger"
	"github.com/phrazzld/libris-api/internal/service"
)

// BookHandler handles book-related HTTP requests
type BookHandler struct {
	bookService service.BookService
	logger      *slog.Logger
}

// NewBookHandler creates a new BookHandler
func NewBookHandler(bookService service.BookService, logger *slog.Logger) *BookHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for BookHandler")
	}

	return &BookHandler{
		bookService: bookService,
		logger:      logger.With(slog.String("component", "book_handler")),
	}
}

// CreateBook handles POST /books requests
func (h *BookHandler) CreateBook(w http.ResponseWriter, r *http.Request) {
	var req CreateBookRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	book, err := h.bookService.Create(r.Context(), req.toInput())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create book")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, bookToResponse(book))
}

// ListBooks handles GET /books requests.
//
// Query parameters: page (default 1), limit (default 10, max 100),
// isAvailable (only available books when true) and title (case-insensitive
// substring).
func (h *BookHandler) ListBooks(w http.ResponseWriter, r *http.Request) {
	params, err := parseListBooksParams(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	books, err := h.bookService.List(r.Context(), params)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list books")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, booksToResponse(books))
}

// GetBook handles GET /books/{id} requests
func (h *BookHandler) GetBook(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	book, found, err := h.bookService.GetByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get book")
		return
	}
	if !found {
		log.Debug("book not found", slog.Int64("book_id", id))
		HandleAPIError(w, r, domain.NewNotFoundError("book", id), "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, bookToResponse(book))
}

// UpdateBook handles PUT and PATCH /books/{id} requests
func (h *BookHandler) UpdateBook(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req UpdateBookRequest
	if !decodeUpdate(w, r, &req) {
		return
	}

	patch := req.toPatch()
	if patch.IsEmpty() {
		shared.RespondWithError(w, r, http.StatusBadRequest, noUpdateDataMessage)
		return
	}

	book, err := h.bookService.Update(r.Context(), id, patch)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update book")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, bookToResponse(book))
}

// DeleteBook handles DELETE /books/{id} requests
func (h *BookHandler) DeleteBook(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	book, err := h.bookService.Delete(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to delete book")
		return
	}

	log.Info("book deleted", slog.Int64("book_id", id))
	shared.RespondWithJSON(w, r, http.StatusOK, DeleteBookResponse{
		Message: "Book deleted successfully",
		Book:    bookToResponse(book),
	})
}

func parseListBooksParams(r *http.Request) (service.ListBooksParams, error) {
	page, err := queryInt(r, "page", service.DefaultPage)
	if err != nil {
		return service.ListBooksParams{}, err
	}
	limit, err := queryInt(r, "limit", service.DefaultLimit)
	if err != nil {
		return service.ListBooksParams{}, err
	}
	availableOnly, err := queryBool(r, "isAvailable", false)
	if err != nil {
		return service.ListBooksParams{}, err
	}

	params := service.ListBooksParams{
		Page:          page,
		Limit:         limit,
		AvailableOnly: availableOnly,
		TitleContains: r.URL.Query().Get("title"),
	}
	return params, params.Validate()
}
