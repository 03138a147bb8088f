package domain

import (
	"strings"
	"time"
)

// Author is a writer in the catalog. An author owns zero or more books but
// does not own their lifetime: an author with books cannot be deleted.
type Author struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Nationality *string   `json:"nationality,omitempty"`
	DateOfBirth *string   `json:"date_of_birth,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// AuthorInput carries the fields needed to create an author.
type AuthorInput struct {
	Name        string
	Nationality *string
	DateOfBirth *string
}

// AuthorPatch carries a partial author update. Absent fields are left
// untouched; an explicit null clears a nullable field.
type AuthorPatch struct {
	Name        Optional[string]
	Nationality Optional[string]
	DateOfBirth Optional[string]
}

// NewAuthor builds a validated Author from the input. The ID is assigned by
// the store on insert.
func NewAuthor(in AuthorInput) (*Author, error) {
	now := time.Now().UTC()
	author := &Author{
		Name:        strings.TrimSpace(in.Name),
		Nationality: in.Nationality,
		DateOfBirth: in.DateOfBirth,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := author.Validate(); err != nil {
		return nil, err
	}

	return author, nil
}

// Validate checks if the Author has valid data.
func (a *Author) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return NewValidationError("name", "is required to create an author")
	}
	return nil
}

// IsEmpty reports whether the patch carries no fields.
func (p AuthorPatch) IsEmpty() bool {
	return !p.Name.Set && !p.Nationality.Set && !p.DateOfBirth.Set
}

// Apply merges the present fields of the patch into the author and refreshes
// UpdatedAt, even for an empty patch.
func (p AuthorPatch) Apply(a *Author) error {
	if p.Name.Set {
		if p.Name.Value == nil {
			return NewValidationError("name", "cannot be null")
		}
		name := strings.TrimSpace(*p.Name.Value)
		if name == "" {
			return NewValidationError("name", "cannot be blank")
		}
		a.Name = name
	}
	if p.Nationality.Set {
		a.Nationality = p.Nationality.Value
	}
	if p.DateOfBirth.Set {
		a.DateOfBirth = p.DateOfBirth.Value
	}
	a.UpdatedAt = time.Now().UTC()
	return nil
}
