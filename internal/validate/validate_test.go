package validate_test

import (
	"strings"
	"testing"
	"time"

	"lostfound/internal/validate"
)

func TestTitle(t *testing.T) {
	if _, ok := validate.Title("  Black wallet  "); !ok {
		t.Error("trimmed title rejected")
	}
	if _, ok := validate.Title(""); ok {
		t.Error("empty title accepted")
	}
	if _, ok := validate.Title(strings.Repeat("a", 101)); ok {
		t.Error("101-char title accepted")
	}
}

func TestBoundsCountCharactersNotBytes(t *testing.T) {
	// 100 Cyrillic characters are 200 bytes but still within the bound.
	if _, ok := validate.Title(strings.Repeat("ю", 100)); !ok {
		t.Error("100-character multibyte title rejected")
	}
	if _, ok := validate.Title(strings.Repeat("ю", 101)); ok {
		t.Error("101-character multibyte title accepted")
	}
	if _, ok := validate.Description(strings.Repeat("日", 1000)); !ok {
		t.Error("1000-character multibyte description rejected")
	}
	if _, ok := validate.VerificationDetails(strings.Repeat("é", 500)); !ok {
		t.Error("500-character multibyte verification details rejected")
	}
	if _, ok := validate.VerificationDetails(strings.Repeat("é", 501)); ok {
		t.Error("501-character multibyte verification details accepted")
	}
	if _, ok := validate.Name(strings.Repeat("ö", 50)); !ok {
		t.Error("50-character multibyte name rejected")
	}
}

func TestCategory(t *testing.T) {
	if _, ok := validate.Category("Keys"); !ok {
		t.Error("Keys rejected")
	}
	if _, ok := validate.Category("keys"); ok {
		t.Error("category match must be exact")
	}
	if _, ok := validate.Category("Vehicles"); ok {
		t.Error("unknown category accepted")
	}
}

func TestItemType(t *testing.T) {
	for _, s := range []string{"lost", "found"} {
		if _, ok := validate.ItemType(s); !ok {
			t.Errorf("%q rejected", s)
		}
	}
	if _, ok := validate.ItemType("misplaced"); ok {
		t.Error("bad type accepted")
	}
}

func TestDate(t *testing.T) {
	if _, when, ok := validate.Date("2024-05-01"); !ok || when.Year() != 2024 {
		t.Errorf("plain date: ok=%v when=%v", ok, when)
	}
	if _, _, ok := validate.Date("2024-05-01T10:30:00Z"); !ok {
		t.Error("RFC3339 date rejected")
	}
	if _, _, ok := validate.Date("05/01/2024"); ok {
		t.Error("slash date accepted")
	}
	if _, when, ok := validate.Date(time.Now().AddDate(0, 0, 1).Format("2006-01-02")); !ok || !when.After(time.Now()) {
		t.Error("future date should parse and compare after now")
	}
}

func TestEmail(t *testing.T) {
	if _, ok := validate.Email("alice@example.com"); !ok {
		t.Error("valid email rejected")
	}
	if _, ok := validate.Email("nope"); ok {
		t.Error("bad email accepted")
	}
}

func TestPassword(t *testing.T) {
	if !validate.Password("Passw0rd") {
		t.Error("valid password rejected")
	}
	for _, s := range []string{"password", "PASSWORD1", "Pw0", "passw0rd"} {
		if validate.Password(s) {
			t.Errorf("%q accepted", s)
		}
	}
}
