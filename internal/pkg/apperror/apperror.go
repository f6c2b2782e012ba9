package apperror

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Kind classifies errors returned to callers of the checkout workflow.
type Kind int

const (
	KindUnknown Kind = iota
	KindBadRequest
	KindNotFound
	KindConflict
	KindPayment
)

func (k Kind) String() string {
	switch k {
	case KindBadRequest:
		return "bad_request"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindPayment:
		return "payment_error"
	default:
		return "unknown"
	}
}

// HTTPStatus maps a kind to the status code an outer HTTP layer should use.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindBadRequest:
		return fiber.StatusBadRequest
	case KindNotFound:
		return fiber.StatusNotFound
	case KindConflict:
		return fiber.StatusConflict
	case KindPayment:
		return fiber.StatusPaymentRequired
	default:
		return fiber.StatusInternalServerError
	}
}

// Error is a classified error. None of the kinds are retried automatically.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// Sentinels for errors.Is matching on kind only.
var (
	ErrBadRequest = &Error{Kind: KindBadRequest}
	ErrNotFound   = &Error{Kind: KindNotFound}
	ErrConflict   = &Error{Kind: KindConflict}
	ErrPayment    = &Error{Kind: KindPayment}
)

func (e *Error) Error() string {
	switch {
	case e.Message != "" && e.Err != nil:
		return e.Message + ": " + e.Err.Error()
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return e.Err.Error()
	default:
		return e.Kind.String()
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches sentinels (no message, no cause) by kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Message == "" && t.Err == nil && t.Kind == e.Kind
}

// ToFiber converts the error for a fiber error handler.
func (e *Error) ToFiber() *fiber.Error {
	return fiber.NewError(e.Kind.HTTPStatus(), e.Error())
}

func BadRequest(format string, args ...interface{}) error {
	return &Error{Kind: KindBadRequest, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...interface{}) error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Conflict keeps the underlying constraint error as cause.
func Conflict(err error, format string, args ...interface{}) error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...), Err: err}
}

// Payment wraps a gateway or downstream dispatch failure raised inside a
// payment branch.
func Payment(err error, format string, args ...interface{}) error {
	return &Error{Kind: KindPayment, Message: fmt.Sprintf(format, args...), Err: err}
}

// KindOf returns the kind of the first *Error in the chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// NonFatalError marks the failure of a best-effort side effect. It is logged
// and never returned from the checkout workflow.
type NonFatalError struct {
	Op  string
	Err error
}

func NonFatal(op string, err error) error {
	if err == nil {
		return nil
	}
	return &NonFatalError{Op: op, Err: err}
}

func (e *NonFatalError) Error() string {
	return fmt.Sprintf("non-fatal %s: %v", e.Op, e.Err)
}

func (e *NonFatalError) Unwrap() error {
	return e.Err
}

func IsNonFatal(err error) bool {
	var nf *NonFatalError
	return errors.As(err, &nf)
}
