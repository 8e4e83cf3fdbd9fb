package validator

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	// The valid e-mail address production of the HTML standard.
	emailRegex = regexp.MustCompile("^[a-zA-Z0-9.!#$%&'*+/=?^_`{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$")

	schemeRegex = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*$`)
)

// ValidURL validates that a non-empty value is an absolute URL. Hierarchical
// web schemes must carry a host.
func ValidURL(field, value string) Rule {
	return Rule{
		Check: func() bool {
			if value == "" {
				return true
			}
			return isAbsoluteURL(strings.TrimSpace(value))
		},
		Error: ValidationError{
			Field:          field,
			Message:        "Please enter a URL.",
			TranslationKey: "validation.type_url",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

// ValidEmail validates that a non-empty value is a single e-mail address.
func ValidEmail(field, value string) Rule {
	return Rule{
		Check: func() bool {
			if value == "" {
				return true
			}
			return emailRegex.MatchString(strings.TrimSpace(value))
		},
		Error: ValidationError{
			Field:          field,
			Message:        "Please enter an email address.",
			TranslationKey: "validation.type_email",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

func isAbsoluteURL(value string) bool {
	u, err := url.Parse(value)
	if err != nil || u.Scheme == "" || !schemeRegex.MatchString(u.Scheme) {
		return false
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https", "ftp", "ws", "wss":
		return u.Host != ""
	}
	return u.Opaque != "" || u.Host != "" || u.Path != ""
}
