package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/phrazzld/libris-api/internal/domain"
	"github.com/phrazzld/libris-api/internal/service"
	"gopkg.in/yaml.v3"
)

// catalogFile is the YAML layout of an import file:
//
//	authors:
//	  - name: Gabriel García Márquez
//	    nationality: Colombian
//	    date_of_birth: "1927-03-06"
//	    books:
//	      - title: Cien años de soledad
//	        isbn: 978-84-376-0494-7
//	        published_year: 1967
type catalogFile struct {
	Authors []authorEntry `yaml:"authors"`
}

type authorEntry struct {
	Name        string      `yaml:"name"`
	Nationality *string     `yaml:"nationality"`
	DateOfBirth *string     `yaml:"date_of_birth"`
	Books       []bookEntry `yaml:"books"`
}

type bookEntry struct {
	Title         string  `yaml:"title"`
	ISBN          string  `yaml:"isbn"`
	PublishedYear *int    `yaml:"published_year"`
	Genre         *string `yaml:"genre"`
	IsAvailable   *bool   `yaml:"is_available"`
}

// parseCatalog decodes a catalog file. Unknown keys are rejected.
func parseCatalog(r io.Reader) (*catalogFile, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var cat catalogFile
	if err := dec.Decode(&cat); err != nil {
		if errors.Is(err, io.EOF) {
			return &cat, nil
		}
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	return &cat, nil
}

// report summarizes an import run.
type report struct {
	AuthorsCreated int
	BooksCreated   int
	// Skipped lists entries rejected by a catalog rule, such as a duplicate
	// ISBN or a missing title.
	Skipped []string
}

// importer creates catalog entries through the services so every catalog
// rule applies exactly as it does for the HTTP API.
type importer struct {
	authors service.AuthorService
	books   service.BookService
	logger  *slog.Logger
}

// Import creates every author and then its books. Entries rejected by a
// catalog rule are recorded in the report and skipped; any other error
// aborts the run.
func (im *importer) Import(ctx context.Context, cat *catalogFile) (*report, error) {
	rep := &report{}

	for i, a := range cat.Authors {
		author, err := im.authors.Create(ctx, domain.AuthorInput{
			Name:        a.Name,
			Nationality: a.Nationality,
			DateOfBirth: a.DateOfBirth,
		})
		if err != nil {
			if !isRuleViolation(err) {
				return rep, fmt.Errorf("creating author %q: %w", a.Name, err)
			}
			rep.skip(im.logger, fmt.Sprintf("author #%d %q: %v", i+1, a.Name, err))
			continue
		}
		rep.AuthorsCreated++

		for _, b := range a.Books {
			_, err := im.books.Create(ctx, domain.BookInput{
				Title:         b.Title,
				ISBN:          b.ISBN,
				AuthorID:      author.ID,
				PublishedYear: b.PublishedYear,
				Genre:         b.Genre,
				IsAvailable:   b.IsAvailable,
			})
			if err != nil {
				if !isRuleViolation(err) {
					return rep, fmt.Errorf("creating book %q: %w", b.ISBN, err)
				}
				rep.skip(im.logger, fmt.Sprintf("book %q (isbn %s): %v", b.Title, b.ISBN, err))
				continue
			}
			rep.BooksCreated++
		}
	}

	return rep, nil
}

func (r *report) skip(log *slog.Logger, reason string) {
	log.Warn("catalog entry skipped", slog.String("reason", reason))
	r.Skipped = append(r.Skipped, reason)
}

func isRuleViolation(err error) bool {
	return errors.Is(err, domain.ErrConflict) ||
		errors.Is(err, domain.ErrValidation) ||
		errors.Is(err, domain.ErrNotFound)
}
