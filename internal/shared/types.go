package shared

import (
	"bytes"
	"encoding/json"
)

// Pagination defaults shared by author and book listings.
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Optional distinguishes "field absent" from "field set to null" in partial
// update payloads. Absent leaves the stored value unchanged; null clears it.
//
//	Set=false            → field was not in the JSON body
//	Set=true, Valid=false → field was explicit null
//	Set=true, Valid=true  → field carries Value
type Optional[T any] struct {
	Set   bool
	Valid bool
	Value T
}

var jsonNull = []byte("null")

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(data, jsonNull) {
		o.Valid = false
		var zero T
		o.Value = zero
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || !o.Valid {
		return jsonNull, nil
	}
	return json.Marshal(o.Value)
}

// Some wraps a present, non-null value. Test helper and handler convenience.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Valid: true, Value: v}
}

// Null marks a field as explicitly cleared.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true}
}
