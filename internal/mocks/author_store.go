package mocks

import (
	"context"
	"database/sql"

	"github.com/phrazzld/libris-api/internal/domain"
	"github.com/phrazzld/libris-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// MockAuthorStore is a mock of store.AuthorStore for use with testify/mock
type MockAuthorStore struct {
	mock.Mock
}

var _ store.AuthorStore = (*MockAuthorStore)(nil)

// Create is a mock implementation of store.AuthorStore.Create
func (m *MockAuthorStore) Create(ctx context.Context, author *domain.Author) error {
	args := m.Called(ctx, author)
	return args.Error(0)
}

// GetByID is a mock implementation of store.AuthorStore.GetByID
func (m *MockAuthorStore) GetByID(ctx context.Context, id int64) (*domain.Author, error) {
	args := m.Called(ctx, id)
	if author, ok := args.Get(0).(*domain.Author); ok {
		return author, args.Error(1)
	}
	return nil, args.Error(1)
}

// List is a mock implementation of store.AuthorStore.List
func (m *MockAuthorStore) List(ctx context.Context) ([]*domain.Author, error) {
	args := m.Called(ctx)
	if authors, ok := args.Get(0).([]*domain.Author); ok {
		return authors, args.Error(1)
	}
	return nil, args.Error(1)
}

// Update is a mock implementation of store.AuthorStore.Update
func (m *MockAuthorStore) Update(ctx context.Context, author *domain.Author) error {
	args := m.Called(ctx, author)
	return args.Error(0)
}

// Delete is a mock implementation of store.AuthorStore.Delete
func (m *MockAuthorStore) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// CountBooks is a mock implementation of store.AuthorStore.CountBooks
func (m *MockAuthorStore) CountBooks(ctx context.Context, authorID int64) (int, error) {
	args := m.Called(ctx, authorID)
	return args.Int(0), args.Error(1)
}

// WithTx returns the mock itself.
func (m *MockAuthorStore) WithTx(_ *sql.Tx) store.AuthorStore {
	return m
}
