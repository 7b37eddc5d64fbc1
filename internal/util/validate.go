// Package util holds the small shared helpers: lookup-key
// normalization and image-reference validation.
package util

import (
	"fmt"
	"strings"
)

// NormalizeKey folds a user-supplied name (a config key, an asset host)
// into its canonical lookup form: trimmed and lowercased.
func NormalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ValidateImageRef checks that a string is usable as an image reference:
//   - non-empty after trimming
//   - no whitespace (it ends up inside a CSS url(...) token)
//   - either an absolute http(s) URL or a path
func ValidateImageRef(ref string) error {
	trimmed := strings.TrimSpace(ref)
	if trimmed == "" {
		return fmt.Errorf("image ref cannot be empty")
	}
	if strings.ContainsAny(trimmed, " \t\n") {
		return fmt.Errorf("image ref %q must not contain whitespace", ref)
	}

	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		rest := trimmed[strings.Index(trimmed, "://")+3:]
		if rest == "" || strings.HasPrefix(rest, "/") {
			return fmt.Errorf("image ref %q is missing a host", ref)
		}
		return nil
	}

	if strings.Contains(trimmed, "://") {
		return fmt.Errorf("image ref %q uses an unsupported scheme (only http and https)", ref)
	}

	return nil
}
