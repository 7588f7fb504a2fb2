package validation

import (
	"fmt"
	"regexp"
	"strings"
)

var tagNameRegex = regexp.MustCompile(`^[a-z0-9-]{2,32}$`)

var reservedTagNames = map[string]struct{}{
	"admin":    {},
	"api":      {},
	"auth":     {},
	"feed":     {},
	"posts":    {},
	"comments": {},
	"users":    {},
	"tags":     {},
	"swagger":  {},
	"metrics":  {},
	"login":    {},
	"register": {},
}

// ValidateTagName validates tag name format and reserved names. Tags are
// stored lowercase, so the caller normalizes before validating.
func ValidateTagName(name string) error {
	if !tagNameRegex.MatchString(name) {
		return fmt.Errorf("tag must be 2-32 characters and contain only lowercase letters, numbers, and hyphens")
	}

	if strings.HasPrefix(name, "-") || strings.HasSuffix(name, "-") {
		return fmt.Errorf("tag cannot start or end with a hyphen")
	}

	if _, exists := reservedTagNames[name]; exists {
		return fmt.Errorf("tag name is reserved")
	}

	return nil
}

// ValidatePostTitle checks post title length bounds.
func ValidatePostTitle(title string) error {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return fmt.Errorf("title is required")
	}
	if len(trimmed) > 200 {
		return fmt.Errorf("title must not exceed 200 characters")
	}
	return nil
}

// ValidateCountryName checks the country name attached to a post.
func ValidateCountryName(country string) error {
	trimmed := strings.TrimSpace(country)
	if trimmed == "" {
		return fmt.Errorf("country name is required")
	}
	if len(trimmed) > 100 {
		return fmt.Errorf("country name must not exceed 100 characters")
	}
	return nil
}
