package mocks

import (
	"context"
	"errors"

	"github.com/phrazzld/libris-api/internal/domain"
	"github.com/phrazzld/libris-api/internal/service"
)

// errNotConfigured is returned by service mocks whose function field is unset.
var errNotConfigured = errors.New("mock function not configured")

// MockAuthorService implements service.AuthorService for testing
type MockAuthorService struct {
	CreateFn  func(ctx context.Context, in domain.AuthorInput) (*domain.Author, error)
	ListFn    func(ctx context.Context) ([]*domain.Author, error)
	GetByIDFn func(ctx context.Context, id int64) (*domain.Author, bool, error)
	UpdateFn  func(ctx context.Context, id int64, patch domain.AuthorPatch) (*domain.Author, error)
	DeleteFn  func(ctx context.Context, id int64) (*domain.Author, error)
}

var _ service.AuthorService = (*MockAuthorService)(nil)

// Create implements service.AuthorService
func (m *MockAuthorService) Create(ctx context.Context, in domain.AuthorInput) (*domain.Author, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, in)
	}
	return nil, errNotConfigured
}

// List implements service.AuthorService
func (m *MockAuthorService) List(ctx context.Context) ([]*domain.Author, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, errNotConfigured
}

// GetByID implements service.AuthorService
func (m *MockAuthorService) GetByID(ctx context.Context, id int64) (*domain.Author, bool, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, false, errNotConfigured
}

// Update implements service.AuthorService
func (m *MockAuthorService) Update(
	ctx context.Context,
	id int64,
	patch domain.AuthorPatch,
) (*domain.Author, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, patch)
	}
	return nil, errNotConfigured
}

// Delete implements service.AuthorService
func (m *MockAuthorService) Delete(ctx context.Context, id int64) (*domain.Author, error) {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil, errNotConfigured
}

// MockBookService implements service.BookService for testing
type MockBookService struct {
	CreateFn  func(ctx context.Context, in domain.BookInput) (*domain.Book, error)
	ListFn    func(ctx context.Context, params service.ListBooksParams) ([]*domain.Book, error)
	GetByIDFn func(ctx context.Context, id int64) (*domain.Book, bool, error)
	UpdateFn  func(ctx context.Context, id int64, patch domain.BookPatch) (*domain.Book, error)
	DeleteFn  func(ctx context.Context, id int64) (*domain.Book, error)
}

var _ service.BookService = (*MockBookService)(nil)

// Create implements service.BookService
func (m *MockBookService) Create(ctx context.Context, in domain.BookInput) (*domain.Book, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, in)
	}
	return nil, errNotConfigured
}

// List implements service.BookService
func (m *MockBookService) List(ctx context.Context, params service.ListBooksParams) ([]*domain.Book, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, params)
	}
	return nil, errNotConfigured
}

// GetByID implements service.BookService
func (m *MockBookService) GetByID(ctx context.Context, id int64) (*domain.Book, bool, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, false, errNotConfigured
}

// Update implements service.BookService
func (m *MockBookService) Update(ctx context.Context, id int64, patch domain.BookPatch) (*domain.Book, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, patch)
	}
	return nil, errNotConfigured
}

// Delete implements service.BookService
func (m *MockBookService) Delete(ctx context.Context, id int64) (*domain.Book, error) {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil, errNotConfigured
}

// MockUserService implements service.UserService for testing
type MockUserService struct {
	RegisterFn func(ctx context.Context, username, password string) (*domain.User, error)
	LoginFn    func(ctx context.Context, username, password string) (*service.Token, error)
	GetByIDFn  func(ctx context.Context, id int64) (*domain.User, bool, error)
}

var _ service.UserService = (*MockUserService)(nil)

// Register implements service.UserService
func (m *MockUserService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	if m.RegisterFn != nil {
		return m.RegisterFn(ctx, username, password)
	}
	return nil, errNotConfigured
}

// Login implements service.UserService
func (m *MockUserService) Login(ctx context.Context, username, password string) (*service.Token, error) {
	if m.LoginFn != nil {
		return m.LoginFn(ctx, username, password)
	}
	return nil, errNotConfigured
}

// GetByID implements service.UserService
func (m *MockUserService) GetByID(ctx context.Context, id int64) (*domain.User, bool, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, false, errNotConfigured
}
