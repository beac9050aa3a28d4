// Package pathmatch implements the pattern matching used by find(1) -path.
//
// Patterns follow fnmatch(3) without FNM_PATHNAME, so wildcards cross
// directory separators:
//   - * matches any run of characters, including /
//   - ? matches exactly one character, including /
//   - [...] matches one character from the set, [!...] negates the set
//   - \ escapes the next character
//
// This differs from filepath.Match, where * stops at a separator.
package pathmatch

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
)

// Match reports whether path matches the pattern.
func Match(pattern, path string) (bool, error) {
	re, err := compile(pattern)
	if err != nil {
		return false, err
	}

	return re.MatchString(path), nil
}

// Matcher holds a set of pre-compiled patterns for reuse across many paths.
type Matcher struct {
	patterns []*regexp.Regexp
}

// NewMatcher compiles the given patterns into a reusable matcher.
func NewMatcher(patterns []string) (*Matcher, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))

	for _, pattern := range patterns {
		re, err := compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", pattern, err)
		}

		compiled = append(compiled, re)
	}

	return &Matcher{patterns: compiled}, nil
}

// MatchAny reports whether path matches at least one of the compiled patterns.
func (m *Matcher) MatchAny(path string) bool {
	for _, re := range m.patterns {
		if re.MatchString(path) {
			return true
		}
	}

	return false
}

//nolint:gochecknoglobals // shared cache of compiled patterns
var (
	cacheMu sync.RWMutex
	cache   = map[string]*regexp.Regexp{}
)

// compile translates and compiles a pattern, caching the result.
func compile(pattern string) (*regexp.Regexp, error) {
	cacheMu.RLock()
	re, ok := cache[pattern]
	cacheMu.RUnlock()

	if ok {
		return re, nil
	}

	expr, err := translate(pattern)
	if err != nil {
		return nil, err
	}

	re, err = regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("compiling pattern %q: %w", pattern, err)
	}

	cacheMu.Lock()
	cache[pattern] = re
	cacheMu.Unlock()

	return re, nil
}

// translate converts a glob pattern to an anchored regular expression.
func translate(pattern string) (string, error) {
	var out strings.Builder

	out.WriteString("^")

	for pos := 0; pos < len(pattern); {
		switch pattern[pos] {
		case '*':
			out.WriteString(".*")

			pos++

		case '?':
			out.WriteString(".")

			pos++

		case '[':
			end, err := classEnd(pattern, pos)
			if err != nil {
				return "", err
			}

			class := pattern[pos : end+1]
			if strings.HasPrefix(class, "[!") {
				class = "[^" + class[2:]
			}

			out.WriteString(class)

			pos = end + 1

		case '\\':
			if pos+1 >= len(pattern) {
				return "", fmt.Errorf("trailing backslash in pattern %q", pattern)
			}

			out.WriteString(regexp.QuoteMeta(pattern[pos+1 : pos+2]))

			pos += 2

		default:
			out.WriteString(regexp.QuoteMeta(pattern[pos : pos+1]))

			pos++
		}
	}

	out.WriteString("$")

	return out.String(), nil
}

// classEnd returns the index of the ] closing the character class that opens
// at start. A ! right after the [ negates the set, and a ] in the first
// position is a literal member rather than the terminator.
func classEnd(pattern string, start int) (int, error) {
	pos := start + 1

	if pos < len(pattern) && pattern[pos] == '!' {
		pos++
	}

	if pos < len(pattern) && pattern[pos] == ']' {
		pos++
	}

	for ; pos < len(pattern); pos++ {
		if pattern[pos] == ']' {
			return pos, nil
		}
	}

	return 0, fmt.Errorf("unclosed character class in pattern %q", pattern)
}
