// Package patch applies optional request fields on top of stored values.
package patch

import "strings"

// Value returns *ptr, or current when the field was omitted.
func Value[T any](ptr *T, current T) T {
	if ptr == nil {
		return current
	}
	return *ptr
}

// Text is Value for free text. A blank string counts as omitted.
func Text(ptr *string, current string) string {
	if ptr == nil {
		return current
	}
	if s := strings.TrimSpace(*ptr); s != "" {
		return s
	}
	return current
}
