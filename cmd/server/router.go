package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/libris-api/internal/api"
	apiMiddleware "github.com/phrazzld/libris-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.StripSlashes)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))
	r.Use(middleware.Recoverer)

	authorHandler := api.NewAuthorHandler(app.authorService, app.logger)
	bookHandler := api.NewBookHandler(app.bookService, app.logger)
	userHandler := api.NewUserHandler(app.userService, app.logger)
	healthHandler := api.NewHealthHandler(app.db, app.logger)

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)
	rateLimiter := apiMiddleware.NewRateLimiter(app.config.RateLimit)

	r.Route("/api", func(r chi.Router) {
		// Public user endpoints
		r.Group(func(r chi.Router) {
			r.Use(rateLimiter.Limit)
			r.Post("/users/register", userHandler.Register)
			r.Post("/users/login", userHandler.Login)
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/users/profile", userHandler.Profile)

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
		})
	})

	r.Get("/health", healthHandler.Health)

	return r
}
