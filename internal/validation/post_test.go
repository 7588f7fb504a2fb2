package validation

import (
	"strings"
	"testing"
)

func TestValidateTagName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		tag  string
		ok   bool
	}{
		{name: "valid simple", tag: "hiking", ok: true},
		{name: "valid with hyphen", tag: "solo-travel", ok: true},
		{name: "valid with number", tag: "top-10", ok: true},
		{name: "too short", tag: "a", ok: false},
		{name: "minimum length", tag: "nz", ok: true},
		{name: "too long", tag: strings.Repeat("a", 33), ok: false},
		{name: "uppercase", tag: "Hiking", ok: false},
		{name: "underscore", tag: "solo_travel", ok: false},
		{name: "space", tag: "solo travel", ok: false},
		{name: "leading hyphen", tag: "-hiking", ok: false},
		{name: "trailing hyphen", tag: "hiking-", ok: false},
		{name: "reserved feed", tag: "feed", ok: false},
		{name: "reserved api", tag: "api", ok: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateTagName(tc.tag)
			if tc.ok && err != nil {
				t.Fatalf("expected valid tag, got error: %v", err)
			}
			if !tc.ok && err == nil {
				t.Fatalf("expected invalid tag, got nil error")
			}
		})
	}
}

func TestValidatePostTitle(t *testing.T) {
	t.Parallel()

	if err := ValidatePostTitle("A week in Lisbon"); err != nil {
		t.Fatalf("expected valid title, got error: %v", err)
	}
	if err := ValidatePostTitle("   "); err == nil {
		t.Fatal("expected error for blank title")
	}
	if err := ValidatePostTitle(strings.Repeat("a", 201)); err == nil {
		t.Fatal("expected error for overlong title")
	}
}

func TestValidateCountryName(t *testing.T) {
	t.Parallel()

	if err := ValidateCountryName("Portugal"); err != nil {
		t.Fatalf("expected valid country, got error: %v", err)
	}
	if err := ValidateCountryName(""); err == nil {
		t.Fatal("expected error for empty country")
	}
	if err := ValidateCountryName(strings.Repeat("a", 101)); err == nil {
		t.Fatal("expected error for overlong country")
	}
}
