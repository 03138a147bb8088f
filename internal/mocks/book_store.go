package mocks

import (
	"context"
	"database/sql"

	"github.com/phrazzld/libris-api/internal/domain"
	"github.com/phrazzld/libris-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// MockBookStore is a mock of store.BookStore for use with testify/mock
type MockBookStore struct {
	mock.Mock
}

var _ store.BookStore = (*MockBookStore)(nil)

// Create is a mock implementation of store.BookStore.Create
func (m *MockBookStore) Create(ctx context.Context, book *domain.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

// GetByID is a mock implementation of store.BookStore.GetByID
func (m *MockBookStore) GetByID(ctx context.Context, id int64) (*domain.Book, error) {
	args := m.Called(ctx, id)
	if book, ok := args.Get(0).(*domain.Book); ok {
		return book, args.Error(1)
	}
	return nil, args.Error(1)
}

// List is a mock implementation of store.BookStore.List
func (m *MockBookStore) List(ctx context.Context, filter store.BookFilter) ([]*domain.Book, error) {
	args := m.Called(ctx, filter)
	if books, ok := args.Get(0).([]*domain.Book); ok {
		return books, args.Error(1)
	}
	return nil, args.Error(1)
}

// ExistsByISBN is a mock implementation of store.BookStore.ExistsByISBN
func (m *MockBookStore) ExistsByISBN(ctx context.Context, isbn string) (bool, error) {
	args := m.Called(ctx, isbn)
	return args.Bool(0), args.Error(1)
}

// Update is a mock implementation of store.BookStore.Update
func (m *MockBookStore) Update(ctx context.Context, book *domain.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

// Delete is a mock implementation of store.BookStore.Delete
func (m *MockBookStore) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// WithTx returns the mock itself.
func (m *MockBookStore) WithTx(_ *sql.Tx) store.BookStore {
	return m
}
