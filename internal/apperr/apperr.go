// Package apperr defines the error taxonomy surfaced by the HTTP API.
// Every failure carries a stable machine-readable kind next to the
// human-facing message, so clients never have to parse message text.
package apperr

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// Stable error kinds.
const (
	KindValidation     = "VALIDATION"
	KindAuthentication = "AUTHENTICATION"
	KindAuthorization  = "AUTHORIZATION"
	KindNotFound       = "NOT_FOUND"
	KindConflict       = "CONFLICT"
	KindInternal       = "INTERNAL"
)

// Error is an API failure with an HTTP status and a stable kind.
type Error struct {
	Status  int
	Kind    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Validation reports a missing or malformed request field.
func Validation(message string) *Error {
	return &Error{Status: fiber.StatusBadRequest, Kind: KindValidation, Message: message}
}

// Unauthenticated reports bad credentials or a missing, invalid or
// expired session token.
func Unauthenticated(message string) *Error {
	return &Error{Status: fiber.StatusUnauthorized, Kind: KindAuthentication, Message: message}
}

// Forbidden reports an account that is not allowed to perform the
// operation, e.g. an unverified admin attempting login.
func Forbidden(message string) *Error {
	return &Error{Status: fiber.StatusForbidden, Kind: KindAuthorization, Message: message}
}

// NotFound reports an absent entity.
func NotFound(message string) *Error {
	return &Error{Status: fiber.StatusNotFound, Kind: KindNotFound, Message: message}
}

// Conflict reports a state mismatch such as an OTP phone mismatch.
// Surfaced as HTTP 400, matching the original API contract.
func Conflict(message string) *Error {
	return &Error{Status: fiber.StatusBadRequest, Kind: KindConflict, Message: message}
}

// Handler is the fiber error handler: it maps every error escaping a
// handler to a JSON {error, code} body. Unknown errors become opaque
// 500 responses; their details only go to the log.
func Handler(c *fiber.Ctx, err error) error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return c.Status(appErr.Status).JSON(fiber.Map{
			"error": appErr.Message,
			"code":  appErr.Kind,
		})
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(fiber.Map{
			"error": fiberErr.Message,
			"code":  kindForStatus(fiberErr.Code),
		})
	}

	logrus.WithError(err).Error("unhandled error")
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "internal server error",
		"code":  KindInternal,
	})
}

func kindForStatus(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return KindValidation
	case fiber.StatusUnauthorized:
		return KindAuthentication
	case fiber.StatusForbidden:
		return KindAuthorization
	case fiber.StatusNotFound:
		return KindNotFound
	default:
		return KindInternal
	}
}
