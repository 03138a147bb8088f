// Package mocks provides centralized mock implementations for testing.
//
// Store mocks are built on testify/mock so tests can assert the exact calls a
// service makes. Service, token and password mocks use function fields with
// simple defaults, which keeps handler tests short:
//
//	svc := &mocks.MockAuthorService{
//	    GetByIDFn: func(ctx context.Context, id int64) (*domain.Author, bool, error) {
//	        return nil, false, nil
//	    },
//	}
//
// The store mocks return themselves from WithTx, so expectations registered on
// a mock also cover calls made inside a transaction.
package mocks
