package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormat_DecorateText(t *testing.T) {
	assert.Equal(t, SuccessColor+"done"+DefaultColor, DecorateText("done", SuccessMessage))
	assert.Equal(t, ErrorColor+"failed"+DefaultColor, DecorateText("failed", ErrorMessage))
	assert.Equal(t, "plain", DecorateText("plain", MessageType(42)))
}

func TestFormat_FormatTime(t *testing.T) {
	testCases := []struct {
		d        time.Duration
		expected string
	}{
		{d: 1500 * time.Millisecond, expected: "1.50s"},
		{d: 2*time.Minute + 3*time.Second, expected: "2m 3.00s"},
		{d: time.Hour + 2*time.Minute + 3*time.Second, expected: "1h 2m 3.00s"},
		{d: 26*time.Hour + 3*time.Second, expected: "1d 2h 0m 3.00s"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, FormatTime(tc.d))
	}
}
