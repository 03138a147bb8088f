package domain

import (
	"strings"
	"time"
)

// Book is a catalog entry. Every book references exactly one existing Author,
// and its ISBN is unique across the catalog.
type Book struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	ISBN          string    `json:"isbn"`
	AuthorID      int64     `json:"author_id"`
	Author        *Author   `json:"author,omitempty"`
	PublishedYear *int      `json:"published_year,omitempty"`
	Genre         *string   `json:"genre,omitempty"`
	IsAvailable   bool      `json:"isAvailable"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// BookInput carries the fields needed to create a book. A nil IsAvailable
// defaults to true.
type BookInput struct {
	Title         string
	ISBN          string
	AuthorID      int64
	PublishedYear *int
	Genre         *string
	IsAvailable   *bool
}

// BookPatch carries a partial book update. Absent fields are left untouched;
// an explicit null clears published_year or genre and is rejected for the
// other fields. IsAvailable is the externally named availability flag and is
// stored as the book's is_available attribute.
type BookPatch struct {
	Title         Optional[string]
	ISBN          Optional[string]
	AuthorID      Optional[int64]
	PublishedYear Optional[int]
	Genre         Optional[string]
	IsAvailable   Optional[bool]
}

// NewBook builds a validated Book from the input.
func NewBook(in BookInput) (*Book, error) {
	now := time.Now().UTC()
	available := true
	if in.IsAvailable != nil {
		available = *in.IsAvailable
	}

	book := &Book{
		Title:         strings.TrimSpace(in.Title),
		ISBN:          strings.TrimSpace(in.ISBN),
		AuthorID:      in.AuthorID,
		PublishedYear: in.PublishedYear,
		Genre:         in.Genre,
		IsAvailable:   available,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := book.Validate(); err != nil {
		return nil, err
	}

	return book, nil
}

// Validate checks if the Book has valid data.
func (b *Book) Validate() error {
	if strings.TrimSpace(b.Title) == "" {
		return NewValidationError("title", "is required to create a book")
	}
	if strings.TrimSpace(b.ISBN) == "" {
		return NewValidationError("isbn", "is required to create a book")
	}
	if b.AuthorID <= 0 {
		return NewValidationError("author_id", "is required to create a book")
	}
	return nil
}

// IsEmpty reports whether the patch carries no fields.
func (p BookPatch) IsEmpty() bool {
	return !p.Title.Set && !p.ISBN.Set && !p.AuthorID.Set &&
		!p.PublishedYear.Set && !p.Genre.Set && !p.IsAvailable.Set
}

// Apply merges the present fields of the patch into the book and refreshes
// UpdatedAt. When AuthorID changes, the embedded Author is cleared so that a
// stale author is never returned.
func (p BookPatch) Apply(b *Book) error {
	if p.Title.Set {
		if p.Title.Value == nil {
			return NewValidationError("title", "cannot be null")
		}
		title := strings.TrimSpace(*p.Title.Value)
		if title == "" {
			return NewValidationError("title", "cannot be blank")
		}
		b.Title = title
	}
	if p.ISBN.Set {
		if p.ISBN.Value == nil {
			return NewValidationError("isbn", "cannot be null")
		}
		isbn := strings.TrimSpace(*p.ISBN.Value)
		if isbn == "" {
			return NewValidationError("isbn", "cannot be blank")
		}
		b.ISBN = isbn
	}
	if p.AuthorID.Set {
		if p.AuthorID.Value == nil {
			return NewValidationError("author_id", "cannot be null")
		}
		authorID := *p.AuthorID.Value
		if authorID <= 0 {
			return NewValidationError("author_id", "must be a positive integer")
		}
		if authorID != b.AuthorID {
			b.Author = nil
		}
		b.AuthorID = authorID
	}
	if p.PublishedYear.Set {
		b.PublishedYear = p.PublishedYear.Value
	}
	if p.Genre.Set {
		b.Genre = p.Genre.Value
	}
	if p.IsAvailable.Set {
		if p.IsAvailable.Value == nil {
			return NewValidationError("isAvailable", "cannot be null")
		}
		b.IsAvailable = *p.IsAvailable.Value
	}
	b.UpdatedAt = time.Now().UTC()
	return nil
}
