package domain

import "errors"

// Domain errors - used across all layers
var (
	// ErrNotFound indicates the requested document was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates the input is invalid (empty upload, bad id)
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates the file type is not accepted for upload
	ErrUnsupportedType = errors.New("unsupported file type")

	// ErrDimensionMismatch indicates a vector does not match the
	// dimensionality the semantic index was initialized with
	ErrDimensionMismatch = errors.New("vector dimension mismatch")

	// ErrIndexInconsistency indicates a document is present in the store
	// but missing from an index, or vice versa
	ErrIndexInconsistency = errors.New("index inconsistency")

	// ErrTaskNotFound indicates the background task does not exist
	ErrTaskNotFound = errors.New("task not found")

	// ErrTokenInvalid indicates the auth token is malformed or invalid
	ErrTokenInvalid = errors.New("token invalid")
)
