package service

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSanitizeText(t *testing.T) {
	got, err := SanitizeText("  hello  ")
	assert.NoError(t, err)
	assert.Equal(t, "hello", got)

	got, err = SanitizeText("a\x00b")
	assert.NoError(t, err)
	assert.Equal(t, "ab", got)

	got, err = SanitizeText("\x00")
	assert.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestSanitizeText_RejectsOverlongInput(t *testing.T) {
	long := strings.Repeat("x", maxNarrativeLen+1)
	_, err := SanitizeText(long)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "too long")

	// A multi-byte rune straddling the limit must not slip through as
	// truncated invalid UTF-8.
	straddle := strings.Repeat("a", maxNarrativeLen-1) + "é" + strings.Repeat("b", 100)
	_, err = SanitizeText(straddle)
	assert.Error(t, err)

	exact := strings.Repeat("x", maxNarrativeLen)
	got, err := SanitizeText(exact)
	assert.NoError(t, err)
	assert.True(t, utf8.ValidString(got))
	assert.Len(t, got, maxNarrativeLen)
}

func TestValidClientID(t *testing.T) {
	assert.True(t, ValidClientID("C001"))
	assert.True(t, ValidClientID("acme-west_2"))
	assert.False(t, ValidClientID(""))
	assert.False(t, ValidClientID("has space"))
	assert.False(t, ValidClientID("semi;colon"))
	assert.False(t, ValidClientID(strings.Repeat("a", 51)))
}

func TestValidUsername(t *testing.T) {
	assert.True(t, ValidUsername("demo"))
	assert.True(t, ValidUsername("jane_doe-1"))
	assert.False(t, ValidUsername("ab"))
	assert.False(t, ValidUsername("UpperCase"))
	assert.False(t, ValidUsername(strings.Repeat("a", 31)))
}

func TestNormalizeHours(t *testing.T) {
	got, err := NormalizeHours(decimal.NewFromFloat(1.555))
	assert.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromFloat(1.56)), "got %s", got)

	_, err = NormalizeHours(decimal.NewFromInt(-1))
	assert.Error(t, err)

	_, err = NormalizeHours(decimal.NewFromInt(25))
	assert.Error(t, err)

	got, err = NormalizeHours(decimal.NewFromInt(24))
	assert.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromInt(24)))
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantMsg  string
	}{
		{"valid", "Secret12", ""},
		{"too short", "Ab1", "at least 8 characters"},
		{"no uppercase", "alllowercase1", "uppercase letter"},
		{"no lowercase", "ALLUPPERCASE1", "lowercase letter"},
		{"no digit", "NoDigitsHere", "one number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}
