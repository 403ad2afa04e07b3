package models

// Vector is an optional embedding. A failed batch embedding leaves Valid
// false so downstream similarity code cannot silently treat a missing
// embedding as a legitimate zero-similarity vector.
type Vector struct {
	Values []float32
	Valid  bool
}

// SomeVector wraps a present embedding
func SomeVector(values []float32) Vector {
	return Vector{Values: values, Valid: true}
}

// NoVector is the absent embedding
func NoVector() Vector {
	return Vector{}
}
