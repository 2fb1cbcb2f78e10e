package errors

import (
	"errors"
	"net/http"

	"timecraft/internal/cache"
)

var (
	// ErrClientNotFound is returned when a billing client is not found.
	ErrClientNotFound = errors.New("client not found")
	// ErrClientExists is returned when creating a client with a taken ID.
	ErrClientExists = errors.New("client ID already exists")
	// ErrEntryNotFound is returned when a time entry is not found.
	ErrEntryNotFound = errors.New("time entry not found")
	// ErrRewriteNotFound is returned when a rewrite record is not found.
	ErrRewriteNotFound = errors.New("rewrite not found")
	// ErrVersionNotFound is returned when a rewrite version is not found.
	ErrVersionNotFound = errors.New("version not found")
	// ErrTemplateNotFound is returned when a template is not found.
	ErrTemplateNotFound = errors.New("template not found")
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrBatchNotFound is returned when a batch operation is not found.
	ErrBatchNotFound = errors.New("batch operation not found")
	// ErrClientAccessDenied is returned when a user lacks access to a client.
	ErrClientAccessDenied = errors.New("no access to this client")
	// ErrProtectedUser is returned on attempts to alter the built-in admin.
	ErrProtectedUser = errors.New("cannot modify built-in admin user")
	// ErrEmptyNarrative is returned when the original narrative is blank.
	ErrEmptyNarrative = errors.New("original narrative cannot be empty")

	// ErrTrackNotFound is returned when a learning track is not found.
	ErrTrackNotFound = errors.New("track not found")
	// ErrLessonNotFound is returned when a lesson is not found.
	ErrLessonNotFound = errors.New("lesson not found")
	// ErrStepNotFound is returned when a lesson step is not found.
	ErrStepNotFound = errors.New("lesson step not found")
	// ErrWrongAnswer is returned when a quiz or challenge answer fails validation.
	ErrWrongAnswer = errors.New("submitted answer does not pass validation")
	// ErrStepOutOfOrder is returned when completing a step ahead of progress.
	ErrStepOutOfOrder = errors.New("step is ahead of current progress")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch err {
	case ErrClientNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "CLIENT_NOT_FOUND")
	case ErrClientExists:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "CLIENT_EXISTS")
	case ErrEntryNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "ENTRY_NOT_FOUND")
	case ErrRewriteNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "REWRITE_NOT_FOUND")
	case ErrVersionNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "VERSION_NOT_FOUND")
	case ErrTemplateNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "TEMPLATE_NOT_FOUND")
	case ErrUserNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case ErrBatchNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "BATCH_NOT_FOUND")
	case ErrClientAccessDenied:
		return NewHTTPError(http.StatusForbidden, err.Error(), "CLIENT_ACCESS_DENIED")
	case ErrProtectedUser:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "PROTECTED_USER")
	case ErrEmptyNarrative:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "EMPTY_NARRATIVE")
	case ErrTrackNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "TRACK_NOT_FOUND")
	case ErrLessonNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "LESSON_NOT_FOUND")
	case ErrStepNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "STEP_NOT_FOUND")
	case ErrWrongAnswer:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "WRONG_ANSWER")
	case ErrStepOutOfOrder:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "STEP_OUT_OF_ORDER")
	case cache.ErrLeaderboardUnavailable:
		return NewHTTPError(http.StatusServiceUnavailable, err.Error(), "LEADERBOARD_UNAVAILABLE")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
