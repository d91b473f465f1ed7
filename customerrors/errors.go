package customerrors

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidAPIKey  = errors.New("invalid API key")
	ErrKeywordCount   = errors.New("keywords must contain between 1 and 5 items")
	ErrEmptyKeyword   = errors.New("keywords cannot contain empty strings")
	ErrInvalidGprop   = errors.New(`gprop must be one of "", news, images, youtube, froogle`)
	ErrPayloadMissing = errors.New("query payload has not been built")
	ErrWidgetMissing  = errors.New("provider response has no matching widget")
)

// UpstreamError wraps any failure raised by the trends provider client.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("trends provider %s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func NewUpstreamError(op string, err error) error {
	return &UpstreamError{Op: op, Err: err}
}

// IsValidation reports whether err is a request shape failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrKeywordCount) ||
		errors.Is(err, ErrEmptyKeyword) ||
		errors.Is(err, ErrInvalidGprop)
}
