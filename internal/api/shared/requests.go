package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/libris-api/internal/domain"
)

// MaxBodyBytes caps the size of decoded request bodies.
const MaxBodyBytes = 1 << 20

// ErrEmptyBody is returned by DecodeJSON when the request has no body.
var ErrEmptyBody = errors.New("request body is empty")

// Global validator instance for reuse. Field errors report JSON names.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterCustomTypeFunc(optionalValue[string], domain.Optional[string]{})
	v.RegisterCustomTypeFunc(optionalValue[int], domain.Optional[int]{})
	v.RegisterCustomTypeFunc(optionalValue[int64], domain.Optional[int64]{})
	v.RegisterCustomTypeFunc(optionalValue[bool], domain.Optional[bool]{})
	return v
}

// optionalValue exposes the wrapped value of a domain.Optional to the
// validator. Absent and null fields validate as nil, so omitempty skips them.
func optionalValue[T any](field reflect.Value) interface{} {
	opt, ok := field.Interface().(domain.Optional[T])
	if !ok || opt.Value == nil {
		return nil
	}
	return *opt.Value
}

// DecodeJSON decodes the request body into the given struct. Exactly one
// JSON value is accepted.
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return ErrEmptyBody
	}

	dec := json.NewDecoder(io.LimitReader(r.Body, MaxBodyBytes))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyBody
		}
		return err
	}
	if dec.More() {
		return fmt.Errorf("request body must contain a single JSON value")
	}
	return nil
}

// ValidateRequest validates the given struct using the validator package.
func ValidateRequest(v interface{}) error {
	// Check if the object implements the Validate interface
	if validator, ok := v.(interface{ Validate() error }); ok {
		return validator.Validate()
	}

	// Otherwise, use the struct validator
	return validate.Struct(v)
}
