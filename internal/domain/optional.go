package domain

import "encoding/json"

// Optional is a partial-update field that tells an absent key apart from an
// explicit null. Set reports whether the key was present; Value is nil when
// it was present as null.
type Optional[T any] struct {
	Set   bool
	Value *T
}

// Some returns a present Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: &v}
}

// Null returns a present Optional without a value.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true}
}

// IsNull reports whether the field was present as an explicit null.
func (o Optional[T]) IsNull() bool {
	return o.Set && o.Value == nil
}

// UnmarshalJSON marks the field as present. encoding/json only calls it for
// keys that appear in the document, including a literal null.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

// FirstSet returns the first present option, or an absent one.
func FirstSet[T any](opts ...Optional[T]) Optional[T] {
	for _, o := range opts {
		if o.Set {
			return o
		}
	}
	return Optional[T]{}
}
