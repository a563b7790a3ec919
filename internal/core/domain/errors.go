package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrEmptyInput indicates a blank search query or chat message.
	// It is rejected locally and never reaches the network.
	ErrEmptyInput = errors.New("empty input")

	// ErrValidation is the umbrella for every *ValidationError.
	ErrValidation = errors.New("validation failed")

	// ErrTransport is the umbrella for every *TransportError.
	ErrTransport = errors.New("transport failed")

	// ErrMalformedPersistedState indicates the durable recent-document
	// record could not be decoded. Callers treat it as an empty history.
	ErrMalformedPersistedState = errors.New("malformed persisted state")

	// In-flight gating errors.

	// ErrUploadInProgress indicates a submit is already outstanding.
	ErrUploadInProgress = errors.New("upload in progress")

	// ErrNothingStaged indicates submit was requested with no staged file.
	ErrNothingStaged = errors.New("no file staged")

	// ErrSearchInProgress indicates a search is already outstanding.
	ErrSearchInProgress = errors.New("search in progress")

	// ErrChatInProgress indicates a message is already outstanding for the scope.
	ErrChatInProgress = errors.New("chat message in progress")
)

// ValidationKind identifies why a file was rejected.
type ValidationKind string

// Validation rejection kinds.
const (
	// ValidationUnsupportedType means neither the media type nor the
	// extension is on the allow-list.
	ValidationUnsupportedType ValidationKind = "unsupported_type"

	// ValidationTooLarge means the file exceeds MaxFileSize.
	ValidationTooLarge ValidationKind = "too_large"
)

// ValidationError rejects a file before any network call.
// It is terminal for that file; the user must pick another one.
type ValidationError struct {
	Kind     ValidationKind
	FileName string
	Size     int64
	MimeHint string
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case ValidationTooLarge:
		return fmt.Sprintf("%s: file is too large (%d bytes, max %d)", e.FileName, e.Size, MaxFileSize)
	case ValidationUnsupportedType:
		return fmt.Sprintf("%s: unsupported file type %q", e.FileName, e.MimeHint)
	default:
		return fmt.Sprintf("%s: invalid file", e.FileName)
	}
}

// Is lets errors.Is match ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// TransportError reports a network fault or a non-2xx response.
// It is recoverable by resubmission and is never retried automatically.
type TransportError struct {
	// Op is the remote operation, e.g. "process-document".
	Op string

	// StatusCode is the HTTP status, or 0 for faults before a response.
	StatusCode int

	// Detail is the server-supplied detail message, if any.
	Detail string

	// Err is the underlying cause, if any.
	Err error
}

func (e *TransportError) Error() string {
	switch {
	case e.Detail != "":
		return fmt.Sprintf("%s: %s", e.Op, e.Detail)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: unexpected status %d", e.Op, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	default:
		return e.Op + ": transport failed"
	}
}

// Unwrap returns the underlying cause.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match ErrTransport.
func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// TransportDetail extracts the server detail message from err, if any.
func TransportDetail(err error) string {
	var te *TransportError
	if errors.As(err, &te) {
		return te.Detail
	}
	return ""
}
