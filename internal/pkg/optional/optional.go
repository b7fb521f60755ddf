package optional

import "encoding/json"

// Value holds a value together with whether it was explicitly provided.
// Decoding a JSON document marks a field as Set only when its key is present.
type Value[T any] struct {
	Value T
	Set   bool
}

// Of returns a provided value.
func Of[T any](v T) Value[T] {
	return Value[T]{Value: v, Set: true}
}

// None returns an absent value.
func None[T any]() Value[T] {
	return Value[T]{}
}

// Get returns the value and whether it was provided.
func (v Value[T]) Get() (T, bool) {
	return v.Value, v.Set
}

// UnmarshalJSON marks the value as provided. A JSON null leaves the zero value.
func (v *Value[T]) UnmarshalJSON(data []byte) error {
	v.Set = true
	if string(data) == "null" {
		var zero T
		v.Value = zero
		return nil
	}
	return json.Unmarshal(data, &v.Value)
}

// MarshalJSON encodes the wrapped value, or null when absent.
func (v Value[T]) MarshalJSON() ([]byte, error) {
	if !v.Set {
		return []byte("null"), nil
	}
	return json.Marshal(v.Value)
}
