package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeXSS(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"plain text", "plain text"},
		{"no table please<script>alert(1)</script>", "no table please"},
		{`<SCRIPT src="evil.js">x</SCRIPT>extra sauce`, "extra sauce"},
		{"<iframe src='x'>y</iframe>window seat", "window seat"},
		{`<img onerror=alert(1) src=x>`, `<img alert(1) src=x>`},
		{"  padded  ", "padded"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, SanitizeXSS(tc.in), "input %q", tc.in)
	}
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("user@example.com"))
	assert.True(t, IsValidEmail("a.b+tag@sub.example.org"))

	assert.False(t, IsValidEmail(""))
	assert.False(t, IsValidEmail("not-an-email"))
	assert.False(t, IsValidEmail("User Name <user@example.com>"))
}

func TestSanitizePhoneNumber(t *testing.T) {
	assert.Equal(t, "+20 (10) 123-4567", SanitizePhoneNumber("+20 (10) 123-4567"))
	assert.Equal(t, "0101234567", SanitizePhoneNumber("0101234567ext"))
}
