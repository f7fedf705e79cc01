package match

import (
	"fmt"
	"regexp"
	"strings"
)

// StringMatchKind selects how a StringMatch compares its pattern against
// input. The values double as the keys accepted in configuration files.
type StringMatchKind string

const (
	MatchIs         StringMatchKind = "is"
	MatchContains   StringMatchKind = "contains"
	MatchStartsWith StringMatchKind = "starts_with"
	MatchEndsWith   StringMatchKind = "ends_with"
	MatchRegex      StringMatchKind = "regex"
)

// StringMatch is a compiled predicate over strings. For MatchRegex the
// pattern is compiled once at construction.
type StringMatch struct {
	Kind    StringMatchKind
	Pattern string

	re *regexp.Regexp
}

// NewStringMatch builds a StringMatch of the given kind. Regex patterns that
// fail to compile return an error; every other kind cannot fail.
func NewStringMatch(kind StringMatchKind, pattern string) (*StringMatch, error) {
	m := &StringMatch{Kind: kind, Pattern: pattern}

	switch kind {
	case MatchIs, MatchContains, MatchStartsWith, MatchEndsWith:
	case MatchRegex:
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid regex %q: %w", pattern, err)
		}
		m.re = re
	default:
		return nil, fmt.Errorf("unknown string matcher kind %q", kind)
	}

	return m, nil
}

// Matches reports whether s satisfies the predicate.
func (m *StringMatch) Matches(s string) bool {
	switch m.Kind {
	case MatchIs:
		return s == m.Pattern
	case MatchContains:
		return strings.Contains(s, m.Pattern)
	case MatchStartsWith:
		return strings.HasPrefix(s, m.Pattern)
	case MatchEndsWith:
		return strings.HasSuffix(s, m.Pattern)
	case MatchRegex:
		return m.re.MatchString(s)
	}
	return false
}
