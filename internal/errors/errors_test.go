package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"timecraft/internal/cache"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"client not found", ErrClientNotFound, http.StatusNotFound, "CLIENT_NOT_FOUND"},
		{"access denied", ErrClientAccessDenied, http.StatusForbidden, "CLIENT_ACCESS_DENIED"},
		{"wrong answer", ErrWrongAnswer, http.StatusBadRequest, "WRONG_ANSWER"},
		{"leaderboard down", cache.ErrLeaderboardUnavailable, http.StatusServiceUnavailable, "LEADERBOARD_UNAVAILABLE"},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.wantStatus, httpErr.StatusCode)
			assert.Equal(t, tt.wantCode, httpErr.Code)
		})
	}
}

func TestHTTPErrorResponse(t *testing.T) {
	httpErr := NewHTTPError(http.StatusBadRequest, "bad input", "BAD_INPUT")

	assert.Equal(t, "bad input", httpErr.Error())
	assert.Equal(t, ErrorResponse{Error: "bad input", Code: "BAD_INPUT"}, httpErr.ToErrorResponse())
}
