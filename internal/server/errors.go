package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	blogdomain "github.com/podcastge/studio/internal/blog/domain"
	catalogdomain "github.com/podcastge/studio/internal/catalog/domain"
	leadsdomain "github.com/podcastge/studio/internal/leads/domain"
	"github.com/podcastge/studio/internal/media"
	submissiondomain "github.com/podcastge/studio/internal/submission/domain"
	"gorm.io/gorm"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrInternal       = errors.New("internal_error")
	ErrNotFound       = errors.New("not_found")
	ErrInvalidRequest = errors.New("invalid_request")
	ErrTooManyRequest = errors.New("too_many_requests")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	var missing *catalogdomain.MissingFieldsError
	if errors.As(err, &missing) {
		payload := errorPayload{
			Type:    "validation_error",
			Message: "validation error",
		}
		for _, field := range missing.Fields {
			payload.Errors = append(payload.Errors, ValidationError{
				Field:   field,
				Code:    "required",
				Message: field + " is required",
			})
		}
		return http.StatusBadRequest, payload
	}

	if localized := asLocalizedValidation(err); localized != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: localized.Message,
			Errors:  []ValidationError{*localized},
		}
	}

	if isValidationError(err) {
		code := err.Error()
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{Code: code, Message: "invalid value"},
			},
		}
	}

	switch {
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized, errorPayload{
			Type:    "unauthorized",
			Message: "unauthorized",
		}
	case errors.Is(err, ErrTooManyRequest):
		return http.StatusTooManyRequests, errorPayload{
			Type:    "too_many_requests",
			Message: "too many requests",
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

// asLocalizedValidation surfaces the Georgian form messages verbatim.
func asLocalizedValidation(err error) *ValidationError {
	var subErr *submissiondomain.ValidationError
	if errors.As(err, &subErr) {
		return &ValidationError{Field: subErr.Field, Code: "invalid", Message: subErr.Message}
	}
	var leadErr *leadsdomain.ValidationError
	if errors.As(err, &leadErr) {
		return &ValidationError{Field: leadErr.Field, Code: "invalid", Message: leadErr.Message}
	}
	return nil
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, catalogdomain.ErrInvalidID),
		errors.Is(err, catalogdomain.ErrMissingID),
		errors.Is(err, catalogdomain.ErrInvalidPrice),
		errors.Is(err, catalogdomain.ErrInvalidDiscount),
		errors.Is(err, catalogdomain.ErrInvalidMonths),
		errors.Is(err, catalogdomain.ErrInvalidCount),
		errors.Is(err, submissiondomain.ErrMissingID),
		errors.Is(err, submissiondomain.ErrInvalidID),
		errors.Is(err, blogdomain.ErrMissingID),
		errors.Is(err, blogdomain.ErrInvalidID),
		errors.Is(err, blogdomain.ErrMissingTitle),
		errors.Is(err, blogdomain.ErrMissingContent),
		errors.Is(err, media.ErrUnsupportedType),
		errors.Is(err, media.ErrForbiddenKey),
		errors.Is(err, media.ErrMissingKey),
		errors.Is(err, media.ErrEmptyPayload):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, catalogdomain.ErrNotFound),
		errors.Is(err, submissiondomain.ErrNotFound),
		errors.Is(err, blogdomain.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}
