// Package strings provides small string and slice helpers shared by modules
package strings

import (
	"net/url"
	std "strings"
)

// IfEmpty returns def if in is empty, otherwise returns in
func IfEmpty[T any](in []T, def []T) []T {
	if len(in) == 0 {
		return def
	}
	return in
}

// MustString returns s if it has non whitespace content otherwise panics
// name is used in the panic message so you can tell what was missing
func MustString(s string, name string) string {
	if std.TrimSpace(s) == "" {
		panic(name + " is required")
	}
	return s
}

// MustPrefix normalizes and asserts a root path like /identify or /meta
// ensures a single leading slash and no trailing slash
// panics if the input is empty after trimming
func MustPrefix(s string) string {
	s = std.TrimSpace(s)
	s = "/" + std.Trim(s, " /")
	if s == "/" {
		panic("root path is required")
	}
	return s
}

// FirstNonEmpty returns the first argument with non whitespace content, trimmed
func FirstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v = std.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

// Ptr returns a pointer to s, or nil if s is empty
func Ptr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// SQLNull returns nil if s is blank/whitespace, else the original string
// Useful for query args where NULL is desired for blanks
func SQLNull(s string) any {
	if std.TrimSpace(s) == "" {
		return nil
	}
	return s
}

// URIComponent escapes s for use inside a URL path segment or query value
// Spaces become %20 rather than '+', which every provider search page accepts
func URIComponent(s string) string {
	return std.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
