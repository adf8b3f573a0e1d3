package utils

import (
	"net/mail"
	"regexp"
	"strings"
)

var (
	scriptTagRe    = regexp.MustCompile(`(?i)<script\b[^>]*>[\s\S]*?</script>`)
	iframeTagRe    = regexp.MustCompile(`(?i)<iframe\b[^>]*>[\s\S]*?</iframe>`)
	eventHandlerRe = regexp.MustCompile(`(?i)on\w+\s*=`)
	phoneCharsRe   = regexp.MustCompile(`[^0-9+\-()\s]`)
)

// SanitizeXSS strips script/iframe tags and inline event handlers from
// free-text input (notes, special requests, descriptions). Persistence is
// parameterized everywhere; this only guards stored markup.
func SanitizeXSS(input string) string {
	s := scriptTagRe.ReplaceAllString(input, "")
	s = iframeTagRe.ReplaceAllString(s, "")
	s = eventHandlerRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

func IsValidEmail(email string) bool {
	if email == "" {
		return false
	}
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

func SanitizePhoneNumber(phone string) string {
	return phoneCharsRe.ReplaceAllString(phone, "")
}
