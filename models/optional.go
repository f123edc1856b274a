package models

import (
	"bytes"
	"encoding/json"
)

// Optional is a field of a partial update. Set is false when the key was
// absent from the request body; Null is true when it was sent as null.
type Optional[T any] struct {
	Set   bool
	Null  bool
	Value T
}

func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: v}
}

func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		o.Null = true
		return nil
	}
	return json.Unmarshal(b, &o.Value)
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || o.Null {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// Present reports whether the field carries a non-null value.
func (o Optional[T]) Present() bool {
	return o.Set && !o.Null
}

// ptr converts a nullable text field to the pointer form used by the models.
func (o Optional[T]) ptr() *T {
	if o.Null {
		return nil
	}
	v := o.Value
	return &v
}
