package webserver

import "strings"

// matchPattern reports whether a servlet-style URL pattern matches path.
// Supported forms:
//
//	/*          everything
//	/static/*   prefix match on a path segment boundary
//	*.css       extension match
//	/exact      exact match
func matchPattern(pattern, path string) bool {
	switch {
	case pattern == "/*":
		return true
	case strings.HasSuffix(pattern, "/*"):
		prefix := strings.TrimSuffix(pattern, "/*")
		return path == prefix || strings.HasPrefix(path, prefix+"/")
	case strings.HasPrefix(pattern, "*."):
		return strings.HasSuffix(path, pattern[1:])
	default:
		return path == pattern
	}
}

// patternPrefix returns the literal prefix of a prefix pattern, or "" for
// patterns that carry no prefix (extension and /* patterns). The static
// servlet strips this prefix before resolving files.
func patternPrefix(pattern string) string {
	if pattern == "/*" {
		return ""
	}
	if strings.HasSuffix(pattern, "/*") {
		return strings.TrimSuffix(pattern, "/*")
	}
	return ""
}
