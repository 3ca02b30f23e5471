package validate

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"lostfound/internal/domain"
)

var reEmail = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

// Title trims and enforces the 1-100 character bound. Bounds count
// characters, not bytes, so multibyte text gets the full budget.
func Title(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || utf8.RuneCountInString(s) > 100 {
		return "", false
	}
	return s, true
}

// Description enforces the 1-1000 character bound.
func Description(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || utf8.RuneCountInString(s) > 1000 {
		return "", false
	}
	return s, true
}

// Category checks membership in the closed category set.
func Category(s string) (string, bool) {
	s = strings.TrimSpace(s)
	for _, c := range domain.Categories {
		if s == c {
			return s, true
		}
	}
	return "", false
}

// ItemType checks the lost/found enum.
func ItemType(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s == domain.TypeLost || s == domain.TypeFound
}

// Status checks the lifecycle enum.
func Status(s string) (string, bool) {
	s = strings.TrimSpace(s)
	switch s {
	case domain.StatusActive, domain.StatusClaimed, domain.StatusResolved:
		return s, true
	}
	return "", false
}

// Location only requires non-empty text with a sane cap.
func Location(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || utf8.RuneCountInString(s) > 200 {
		return "", false
	}
	return s, true
}

// VerificationDetails is optional; empty passes, over 500 chars fails.
func VerificationDetails(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, utf8.RuneCountInString(s) <= 500
}

// Date accepts a plain date (2006-01-02) or RFC 3339 and reports whether it
// parses. The parsed time lets callers reject dates in the future.
func Date(s string) (string, time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", time.Time{}, false
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return s, t, true
		}
	}
	return "", time.Time{}, false
}

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 100 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// Name validates a displayable name with a reasonable max length.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || utf8.RuneCountInString(s) > 50 {
		return "", false
	}
	return s, true
}

// Phone is optional free-form text; cap only.
func Phone(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, len(s) <= 30
}

// Password enforces a length window plus character-class mix.
func Password(s string) bool {
	l := len(s)
	if l < 8 || l > 72 {
		return false
	}
	var hasLower, hasUpper, hasDigit bool
	for _, r := range s {
		switch {
		case 'a' <= r && r <= 'z':
			hasLower = true
		case 'A' <= r && r <= 'Z':
			hasUpper = true
		case '0' <= r && r <= '9':
			hasDigit = true
		}
	}
	return hasLower && hasUpper && hasDigit
}
