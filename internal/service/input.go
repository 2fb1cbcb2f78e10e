package service

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	apperrors "timecraft/internal/errors"
)

const maxNarrativeLen = 10000

var (
	clientIDPattern = regexp.MustCompile(`^[A-Za-z0-9\-_]+$`)
	usernamePattern = regexp.MustCompile(`^[a-z0-9_\-]{3,30}$`)
)

// SanitizeText strips null bytes and trims whitespace. Text over the
// maximum length is rejected rather than truncated.
func SanitizeText(text string) (string, error) {
	text = strings.ReplaceAll(text, "\x00", "")
	if len(text) > maxNarrativeLen {
		return "", apperrors.NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("text input too long, maximum %d characters allowed", maxNarrativeLen), "TEXT_TOO_LONG")
	}
	return strings.TrimSpace(text), nil
}

// sanitizeFields sanitizes each field in place, failing on the first one
// that is too long.
func sanitizeFields(fields ...*string) error {
	for _, field := range fields {
		clean, err := SanitizeText(*field)
		if err != nil {
			return err
		}
		*field = clean
	}
	return nil
}

// ValidClientID reports whether id is a usable client identifier.
func ValidClientID(id string) bool {
	return id != "" && len(id) <= 50 && clientIDPattern.MatchString(id)
}

// ValidUsername reports whether name is a usable account name.
func ValidUsername(name string) bool {
	return usernamePattern.MatchString(name)
}

// NormalizeHours validates hours are within a single working day and rounds
// to two decimal places.
func NormalizeHours(hours decimal.Decimal) (decimal.Decimal, error) {
	if hours.IsNegative() || hours.GreaterThan(decimal.NewFromInt(24)) {
		return decimal.Zero, apperrors.NewHTTPError(http.StatusBadRequest, "hours must be between 0 and 24", "INVALID_HOURS")
	}
	return hours.Round(2), nil
}
