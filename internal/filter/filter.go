// Package filter provides the file selection rules shared by the copy
// planner and the duplicate detector.
package filter

import "strings"

// Patterns is a set of glob-style suffix patterns such as "*.pst" or
// "*.txt". A file is included when its name matches at least one pattern;
// the single pattern "*" includes everything. Matching is case-insensitive.
type Patterns []string

// Match reports whether name is included by the pattern set. An empty set
// matches nothing.
func (p Patterns) Match(name string) bool {
	lower := strings.ToLower(name)
	for _, pat := range p {
		if pat == "*" {
			return true
		}
		suffix := strings.ToLower(strings.TrimLeft(pat, "*"))
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}
	return false
}

// Extensions is a set of file name extensions such as ".jpg". An empty set
// matches every file. Matching is case-insensitive.
type Extensions []string

// Match reports whether name passes the extension filter.
func (e Extensions) Match(name string) bool {
	if len(e) == 0 {
		return true
	}
	lower := strings.ToLower(name)
	for _, ext := range e {
		if strings.HasSuffix(lower, strings.ToLower(ext)) {
			return true
		}
	}
	return false
}
