package keymgmt

import (
	"errors"
	"fmt"
)

// Sentinel errors for key-management operations.
// Use errors.Is() to check for these through the error chain.
var (
	// ErrNilKey indicates a required key handle was absent.
	ErrNilKey = errors.New("nil key")

	// ErrLengthMismatch indicates key material did not match the
	// descriptor's declared length exactly.
	ErrLengthMismatch = errors.New("key length mismatch")

	// ErrUnknownParam indicates an unrecognized field name.
	ErrUnknownParam = errors.New("unknown parameter")

	// ErrWrongType indicates a field held an unexpected value kind.
	ErrWrongType = errors.New("wrong parameter type")

	// ErrAlgorithmMismatch indicates two keys of different algorithms
	// were compared or combined.
	ErrAlgorithmMismatch = errors.New("algorithm mismatch")

	// ErrGenerationFailed indicates the algorithm backend could not
	// produce a key pair.
	ErrGenerationFailed = errors.New("key generation failed")

	// ErrContextSpent indicates a generation context was used after its
	// single generation attempt.
	ErrContextSpent = errors.New("generation context already used")

	// ErrRefSpent indicates an ownership reference was taken twice or
	// never held a key.
	ErrRefSpent = errors.New("key reference empty or already taken")

	// ErrComponentMissing indicates a requested key component is absent.
	ErrComponentMissing = errors.New("key component not present")
)

// OpError wraps a key-management failure with the operation and algorithm it
// occurred on. It supports errors.Is() and errors.As().
type OpError struct {
	Op  string // "import", "export", "generate", "match", ...
	Alg string // algorithm name, if bound
	Err error
}

// Error implements the error interface.
func (e *OpError) Error() string {
	if e.Alg != "" {
		return fmt.Sprintf("keymgmt %s [%s]: %v", e.Op, e.Alg, e.Err)
	}
	return fmt.Sprintf("keymgmt %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *OpError) Unwrap() error { return e.Err }

func opErr(op, alg string, err error) *OpError {
	return &OpError{Op: op, Alg: alg, Err: err}
}
