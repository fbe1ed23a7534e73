package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError is the only error shape handlers are allowed to translate into a
// response body. Slug is the stable machine code from the HTTP contract
// (§6.1); Code only decides the HTTP status.
type AppError struct {
	Code    Code   `json:"-"`
	Slug    string `json:"error"`
	Message string `json:"-"`
	Cause   error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Cause }

// Constructors
func New(code Code, slug, message string) error {
	return &AppError{Code: code, Slug: slug, Message: message}
}

func Wrap(code Code, slug, message string, cause error) error {
	return &AppError{Code: code, Slug: slug, Message: message, Cause: cause}
}

func InvalidArg(slug, msg string) error {
	return New(CodeInvalidArgument, slug, msg)
}

func NotFound(slug, msg string) error {
	return New(CodeNotFound, slug, msg)
}

func AlreadyExists(slug, msg string) error {
	return New(CodeAlreadyExists, slug, msg)
}

func Unauthorized(slug, msg string) error {
	return New(CodeUnauthenticated, slug, msg)
}

func Forbidden(slug, msg string) error {
	return New(CodePermissionDenied, slug, msg)
}

func PayloadTooLarge(slug, msg string) error {
	return New(CodePayloadTooLarge, slug, msg)
}

func RateLimited(slug, msg string) error {
	return New(CodeRateLimited, slug, msg)
}

func Internal(msg string) error {
	return New(CodeInternal, "internal_error", msg)
}

func FailedPrecondition(slug, msg string) error {
	return New(CodeFailedPrecondition, slug, msg)
}

// As reports whether err is an *AppError, unwrapping through causes.
func As(err error) (*AppError, bool) {
	var ae *AppError
	if stderrors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}
