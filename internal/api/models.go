package api

import (
	"time"

	"github.com/phrazzld/libris-api/internal/domain"
	"github.com/phrazzld/libris-api/internal/service"
)

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,max=50"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse defines the successful response for the login endpoint.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// UserResponse is the public view of a user. It never includes the password.
type UserResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MessageResponse carries a single human-readable message.
type MessageResponse struct {
	Message string `json:"message"`
}

// CreateAuthorRequest defines the payload for creating an author. The legacy
// "dob" key is accepted when "date_of_birth" is absent.
type CreateAuthorRequest struct {
	Name        string  `json:"name"          validate:"required,max=255"`
	Nationality *string `json:"nationality"   validate:"omitempty,max=100"`
	DateOfBirth *string `json:"date_of_birth" validate:"omitempty,max=50"`
	LegacyDOB   *string `json:"dob"           validate:"omitempty,max=50"`
}

// UpdateAuthorRequest defines the payload for a partial author update. A
// null nationality or date_of_birth clears the stored value.
type UpdateAuthorRequest struct {
	Name        domain.Optional[string] `json:"name"          validate:"omitempty,max=255"`
	Nationality domain.Optional[string] `json:"nationality"   validate:"omitempty,max=100"`
	DateOfBirth domain.Optional[string] `json:"date_of_birth" validate:"omitempty,max=50"`
	LegacyDOB   domain.Optional[string] `json:"dob"           validate:"omitempty,max=50"`
}

// AuthorResponse is the public view of an author.
type AuthorResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Nationality *string   `json:"nationality"`
	DateOfBirth *string   `json:"date_of_birth"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DeleteAuthorResponse confirms a deletion and echoes the removed author.
type DeleteAuthorResponse struct {
	Message string         `json:"message"`
	Author  AuthorResponse `json:"author"`
}

// CreateBookRequest defines the payload for creating a book. Availability is
// named "isAvailable" externally; "is_available" is accepted as well.
type CreateBookRequest struct {
	Title         string  `json:"title"          validate:"required,max=255"`
	ISBN          string  `json:"isbn"           validate:"required,max=32"`
	AuthorID      int64   `json:"author_id"      validate:"required,gt=0"`
	PublishedYear *int    `json:"published_year" validate:"omitempty,gte=0,lte=9999"`
	Genre         *string `json:"genre"          validate:"omitempty,max=100"`
	IsAvailable   *bool   `json:"isAvailable"`
	StoredFlag    *bool   `json:"is_available"`
}

// UpdateBookRequest defines the payload for a partial book update. A null
// published_year or genre clears the stored value.
type UpdateBookRequest struct {
	Title         domain.Optional[string] `json:"title"          validate:"omitempty,max=255"`
	ISBN          domain.Optional[string] `json:"isbn"           validate:"omitempty,max=32"`
	AuthorID      domain.Optional[int64]  `json:"author_id"      validate:"omitempty,gt=0"`
	PublishedYear domain.Optional[int]    `json:"published_year" validate:"omitempty,gte=0,lte=9999"`
	Genre         domain.Optional[string] `json:"genre"          validate:"omitempty,max=100"`
	IsAvailable   domain.Optional[bool]   `json:"isAvailable"`
	StoredFlag    domain.Optional[bool]   `json:"is_available"`
}

// BookResponse is the public view of a book with its author embedded.
type BookResponse struct {
	ID            int64           `json:"id"`
	Title         string          `json:"title"`
	ISBN          string          `json:"isbn"`
	AuthorID      int64           `json:"author_id"`
	Author        *AuthorResponse `json:"author"`
	PublishedYear *int            `json:"published_year"`
	Genre         *string         `json:"genre"`
	IsAvailable   bool            `json:"isAvailable"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// DeleteBookResponse confirms a deletion and echoes the removed book.
type DeleteBookResponse struct {
	Message string       `json:"message"`
	Book    BookResponse `json:"book"`
}

func firstNonNil[T any](values ...*T) *T {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}

func (r CreateAuthorRequest) toInput() domain.AuthorInput {
	return domain.AuthorInput{
		Name:        r.Name,
		Nationality: r.Nationality,
		DateOfBirth: firstNonNil(r.DateOfBirth, r.LegacyDOB),
	}
}

func (r UpdateAuthorRequest) toPatch() domain.AuthorPatch {
	return domain.AuthorPatch{
		Name:        r.Name,
		Nationality: r.Nationality,
		DateOfBirth: domain.FirstSet(r.DateOfBirth, r.LegacyDOB),
	}
}

func (r CreateBookRequest) toInput() domain.BookInput {
	return domain.BookInput{
		Title:         r.Title,
		ISBN:          r.ISBN,
		AuthorID:      r.AuthorID,
		PublishedYear: r.PublishedYear,
		Genre:         r.Genre,
		IsAvailable:   firstNonNil(r.IsAvailable, r.StoredFlag),
	}
}

func (r UpdateBookRequest) toPatch() domain.BookPatch {
	return domain.BookPatch{
		Title:         r.Title,
		ISBN:          r.ISBN,
		AuthorID:      r.AuthorID,
		PublishedYear: r.PublishedYear,
		Genre:         r.Genre,
		IsAvailable:   domain.FirstSet(r.IsAvailable, r.StoredFlag),
	}
}

func userToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

func tokenToResponse(token *service.Token) TokenResponse {
	return TokenResponse{AccessToken: token.AccessToken, TokenType: token.TokenType}
}

func authorToResponse(author *domain.Author) AuthorResponse {
	return AuthorResponse{
		ID:          author.ID,
		Name:        author.Name,
		Nationality: author.Nationality,
		DateOfBirth: author.DateOfBirth,
		CreatedAt:   author.CreatedAt,
		UpdatedAt:   author.UpdatedAt,
	}
}

func authorsToResponse(authors []*domain.Author) []AuthorResponse {
	out := make([]AuthorResponse, 0, len(authors))
	for _, a := range authors {
		out = append(out, authorToResponse(a))
	}
	return out
}

func bookToResponse(book *domain.Book) BookResponse {
	resp := BookResponse{
		ID:            book.ID,
		Title:         book.Title,
		ISBN:          book.ISBN,
		AuthorID:      book.AuthorID,
		PublishedYear: book.PublishedYear,
		Genre:         book.Genre,
		IsAvailable:   book.IsAvailable,
		CreatedAt:     book.CreatedAt,
		UpdatedAt:     book.UpdatedAt,
	}
	if book.Author != nil {
		author := authorToResponse(book.Author)
		resp.Author = &author
	}
	return resp
}

func booksToResponse(books []*domain.Book) []BookResponse {
	out := make([]BookResponse, 0, len(books))
	for _, b := range books {
		out = append(out, bookToResponse(b))
	}
	return out
}
