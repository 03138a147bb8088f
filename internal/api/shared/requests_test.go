package shared

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/phrazzld/libris-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Name  string `json:"name"  validate:"required"`
	Count int    `json:"count" validate:"gte=0"`
}

type selfValidating struct {
	called bool
}

func (s *selfValidating) Validate() error {
	s.called = true
	return nil
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr error
		fails   bool
	}{
		{name: "valid", body: `{"name":"x","count":2}`},
		{name: "empty", body: ``, wantErr: ErrEmptyBody},
		{name: "malformed", body: `{"name":`, fails: true},
		{name: "wrong type", body: `{"count":"two"}`, fails: true},
		{name: "two values", body: `{"name":"a"}{"name":"b"}`, fails: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var dst sampleRequest
			err := DecodeJSON(req, &dst)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.fails:
				assert.Error(t, err)
			default:
				require.NoError(t, err)
				assert.Equal(t, "x", dst.Name)
				assert.Equal(t, 2, dst.Count)
			}
		})
	}
}

func TestValidateRequest(t *testing.T) {
	assert.NoError(t, ValidateRequest(&sampleRequest{Name: "ok"}))
	assert.Error(t, ValidateRequest(&sampleRequest{}))
	assert.Error(t, ValidateRequest(&sampleRequest{Name: "ok", Count: -1}))

	custom := &selfValidating{}
	assert.NoError(t, ValidateRequest(custom))
	assert.True(t, custom.called)
}

type patchRequest struct {
	Genre domain.Optional[string] `json:"genre" validate:"omitempty,max=5"`
	Year  domain.Optional[int]    `json:"year"  validate:"omitempty,gte=0,lte=9999"`
}

func TestValidateRequest_OptionalFields(t *testing.T) {
	tests := []struct {
		name    string
		req     patchRequest
		wantErr bool
	}{
		{name: "absent", req: patchRequest{}},
		{name: "null", req: patchRequest{Genre: domain.Null[string](), Year: domain.Null[int]()}},
		{name: "within limits", req: patchRequest{Genre: domain.Some("Novel"), Year: domain.Some(1967)}},
		{name: "string too long", req: patchRequest{Genre: domain.Some("Science fiction")}, wantErr: true},
		{name: "year out of range", req: patchRequest{Year: domain.Some(12000)}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequest(&tt.req)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
