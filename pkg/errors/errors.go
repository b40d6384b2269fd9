// Package errors provides structured error handling for the application.
// Every error that reaches an HTTP handler is an *AppError with a stable
// code, an HTTP status mapping and a user-facing message.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrorCode represents an error code
type ErrorCode string

const (
	// Client errors (4xx)
	CodeBadRequest       ErrorCode = "BAD_REQUEST"
	CodeUnauthorized     ErrorCode = "UNAUTHORIZED"
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeConflict         ErrorCode = "CONFLICT"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeTooManyRequests  ErrorCode = "TOO_MANY_REQUESTS"
	CodePayloadTooLarge  ErrorCode = "PAYLOAD_TOO_LARGE"

	// Server errors (5xx)
	CodeInternal      ErrorCode = "INTERNAL_ERROR"
	CodeDatabaseError ErrorCode = "DATABASE_ERROR"
	CodeStorageError  ErrorCode = "STORAGE_ERROR"

	// Business errors
	CodeRecipeNotFound     ErrorCode = "RECIPE_NOT_FOUND"
	CodeDraftNotFound      ErrorCode = "DRAFT_NOT_FOUND"
	CodeSlugTaken          ErrorCode = "SLUG_TAKEN"
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	CodeUnsupportedImage   ErrorCode = "UNSUPPORTED_IMAGE"
	CodeImageTooLarge      ErrorCode = "IMAGE_TOO_LARGE"
	CodeTooManyImages      ErrorCode = "TOO_MANY_IMAGES"
)

// AppError represents an application error with structured information
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
	Cause   error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// StatusCode returns the appropriate HTTP status code
func (e *AppError) StatusCode() int {
	switch e.Code {
	case CodeBadRequest, CodeValidationFailed, CodeUnsupportedImage, CodeTooManyImages:
		return http.StatusBadRequest
	case CodeUnauthorized, CodeInvalidCredentials:
		return http.StatusUnauthorized
	case CodeNotFound, CodeRecipeNotFound, CodeDraftNotFound:
		return http.StatusNotFound
	case CodeConflict, CodeSlugTaken:
		return http.StatusConflict
	case CodePayloadTooLarge, CodeImageTooLarge:
		return http.StatusRequestEntityTooLarge
	case CodeTooManyRequests:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// WithCause attaches the underlying error
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// New creates a new application error
func New(code ErrorCode, message, details string) *AppError {
	return &AppError{Code: code, Message: message, Details: details}
}

// AsAppError unwraps err into an *AppError, or wraps it as an internal
// error when it is something else.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return NewInternalError("").WithCause(err)
}

// Constructors for common scenarios

func NewBadRequestError(message string) *AppError {
	return New(CodeBadRequest, message, "")
}

func NewValidationError(details string) *AppError {
	return New(CodeValidationFailed, "Validation failed", details)
}

func NewUnauthorizedError(message string) *AppError {
	if message == "" {
		message = "Authentication required"
	}
	return New(CodeUnauthorized, message, "")
}

func NewInternalError(message string) *AppError {
	if message == "" {
		message = "An unexpected error occurred"
	}
	return New(CodeInternal, message, "")
}

func NewDatabaseError(operation string, cause error) *AppError {
	return New(
		CodeDatabaseError,
		"Database operation failed",
		fmt.Sprintf("Failed to %s", operation),
	).WithCause(cause)
}

func NewStorageError(operation string, cause error) *AppError {
	return New(
		CodeStorageError,
		"Storage operation failed",
		fmt.Sprintf("Failed to %s", operation),
	).WithCause(cause)
}

func NewRecipeNotFoundError(ref string) *AppError {
	return New(
		CodeRecipeNotFound,
		"Tarif bulunamadı",
		fmt.Sprintf("No recipe matches %q", ref),
	)
}

func NewDraftNotFoundError(ref string) *AppError {
	return New(
		CodeDraftNotFound,
		"Taslak bulunamadı",
		fmt.Sprintf("No draft matches %q", ref),
	)
}

func NewInvalidCredentialsError() *AppError {
	return New(CodeInvalidCredentials, "Kullanıcı adı veya şifre hatalı", "")
}

func NewUnsupportedImageError(filename string) *AppError {
	return New(
		CodeUnsupportedImage,
		"Geçersiz dosya formatı. PNG, JPG veya WEBP formatında olmalıdır.",
		filename,
	)
}

func NewImageTooLargeError(filename string, limitMB int) *AppError {
	return New(
		CodeImageTooLarge,
		fmt.Sprintf("Dosya boyutu çok büyük. Maksimum %dMB olmalıdır.", limitMB),
		filename,
	)
}

// TranslateStoreError maps known store failure substrings to user-facing
// messages, the way the admin panel translated raw backend errors. Unknown
// errors surface as a generic database error with the cause attached.
func TranslateStoreError(err error) *AppError {
	if err == nil {
		return nil
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "duplicate key value violates unique constraint"),
		strings.Contains(msg, "UNIQUE constraint failed"):
		return New(
			CodeSlugTaken,
			"Bu başlığa sahip bir tarif zaten mevcut. Lütfen tarif başlığını değiştirin.",
			"",
		).WithCause(err)
	case strings.Contains(msg, "NoSuchBucket"), strings.Contains(msg, "bucket not found"):
		return New(CodeStorageError, "Depolama alanı bulunamadı.", "").WithCause(err)
	case strings.Contains(msg, "AccessDenied"), strings.Contains(msg, "access denied"):
		return New(CodeStorageError, "Depolama erişim hatası. Lütfen erişim ayarlarını kontrol edin.", "").WithCause(err)
	default:
		return NewDatabaseError("write record", err)
	}
}
