package validator

import (
	"regexp"

	"github.com/dmitrymomot/mesto/pkg/cache"
)

// Compiled patterns keyed by the raw attribute value; nil marks a pattern that
// failed to compile.
var patterns = cache.NewLRUCache[string, *regexp.Regexp](256)

// MatchesPattern validates that a non-empty value matches pattern as a whole,
// the way the pattern attribute is applied. A pattern that does not compile
// imposes no constraint.
func MatchesPattern(field, value, pattern string) Rule {
	return Rule{
		Check: func() bool {
			if value == "" || pattern == "" {
				return true
			}
			re := compilePattern(pattern)
			if re == nil {
				return true
			}
			return re.MatchString(value)
		},
		Error: ValidationError{
			Field:          field,
			Message:        "Please match the requested format.",
			TranslationKey: "validation.pattern_mismatch",
			TranslationValues: map[string]any{
				"field":   field,
				"pattern": pattern,
			},
		},
	}
}

func compilePattern(pattern string) *regexp.Regexp {
	if re, ok := patterns.Get(pattern); ok {
		return re
	}
	re, err := regexp.Compile("^(?:" + pattern + ")$")
	if err != nil {
		re = nil
	}
	patterns.Put(pattern, re)
	return re
}
