// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scrap

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidSlug is returned when an input is neither a scrap URL nor a
// bare slug.
var ErrInvalidSlug = errors.New("invalid scrap URL or slug")

// slugPattern matches Zenn scrap slugs: "6f3f4d8c2a1b0e", "my_scrap-1".
var slugPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ExtractSlug returns the scrap slug from a URL such as
// "https://zenn.dev/user/scraps/abc123/" or from a bare slug. Query strings
// and fragments are ignored.
func ExtractSlug(input string) (string, error) {
	s := strings.TrimSpace(input)
	if i := strings.IndexAny(s, "?#"); i >= 0 {
		s = s[:i]
	}
	s = strings.TrimRight(s, "/")

	if _, rest, ok := strings.Cut(s, "/scraps/"); ok {
		s, _, _ = strings.Cut(rest, "/")
	}

	if !slugPattern.MatchString(s) {
		return "", fmt.Errorf("%w: %q", ErrInvalidSlug, input)
	}
	return s, nil
}

// IsURL reports whether input looks like a URL rather than a bare slug.
func IsURL(input string) bool {
	s := strings.TrimSpace(input)
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
