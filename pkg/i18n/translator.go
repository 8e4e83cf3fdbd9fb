package i18n

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/language"
)

// DefaultLanguage is used when no language is configured or requested.
const DefaultLanguage = "en"

// Translator renders translated strings for the loaded languages.
type Translator struct {
	translations  map[string]map[string]any
	defaultLang   string
	fallbackToKey bool
	logger        *slog.Logger
	matcher       language.Matcher
	tags          []string
}

// Option configures a Translator.
type Option func(*Translator)

// WithDefaultLanguage sets the language used for unsupported requests.
func WithDefaultLanguage(lang string) Option {
	return func(t *Translator) {
		if lang != "" {
			t.defaultLang = NormalizeLang(lang)
		}
	}
}

// WithFallbackToKey determines whether T returns the key for missing
// translations. Default is true.
func WithFallbackToKey(fallback bool) Option {
	return func(t *Translator) {
		t.fallbackToKey = fallback
	}
}

// WithLogger sets the logger for load and missing-key records.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Translator) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// NewTranslator loads translations through adapter.
func NewTranslator(ctx context.Context, adapter TranslationAdapter, opts ...Option) (*Translator, error) {
	if adapter == nil {
		return nil, ErrNilAdapter
	}

	t := &Translator{
		defaultLang:   DefaultLanguage,
		fallbackToKey: true,
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(t)
	}

	loaded, err := adapter.Load(ctx)
	if err != nil {
		return nil, err
	}
	if len(loaded) == 0 {
		return nil, ErrNoTranslations
	}

	t.translations = make(map[string]map[string]any, len(loaded))
	for lang, table := range loaded {
		t.translations[NormalizeLang(lang)] = table
	}

	t.tags = make([]string, 0, len(t.translations))
	for lang := range t.translations {
		t.tags = append(t.tags, lang)
	}
	sort.Strings(t.tags)

	// The default language goes first: the matcher falls back to its first tag.
	supported := []language.Tag{language.Make(t.defaultLang)}
	for _, lang := range t.tags {
		if lang != t.defaultLang {
			supported = append(supported, language.Make(lang))
		}
	}
	t.matcher = language.NewMatcher(supported)

	t.logger.InfoContext(ctx, "translations loaded", slog.Any("languages", t.tags))
	return t, nil
}

// SupportedLanguages returns the loaded language codes, sorted.
func (t *Translator) SupportedLanguages() []string {
	return append([]string(nil), t.tags...)
}

// DefaultLanguage returns the fallback language code.
func (t *Translator) DefaultLanguage() string {
	return t.defaultLang
}

// Match returns the supported language that best fits an Accept-Language
// header value, or the default language.
func (t *Translator) Match(acceptLanguage string) string {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return t.defaultLang
	}
	_, idx, confidence := t.matcher.Match(tags...)
	if confidence == language.No {
		return t.defaultLang
	}
	if idx == 0 {
		return t.defaultLang
	}
	return t.matcherTag(idx)
}

func (t *Translator) matcherTag(idx int) string {
	n := 0
	for _, lang := range t.tags {
		if lang == t.defaultLang {
			continue
		}
		n++
		if n == idx {
			return lang
		}
	}
	return t.defaultLang
}

// Has reports whether lang has a string translation for key.
func (t *Translator) Has(lang, key string) bool {
	table, ok := t.translations[NormalizeLang(lang)]
	if !ok {
		return false
	}
	_, ok = lookup(table, key).(string)
	return ok
}

// T translates key for lang, substituting "%{name}" placeholders from args
// given as name, value pairs. Unsupported languages use the default
// language; missing keys return the key when fallback is enabled.
//
//	t.T("ru", "validation.too_short", "min", "2", "length", "1")
func (t *Translator) T(lang, key string, args ...string) string {
	lang = NormalizeLang(lang)
	table, ok := t.translations[lang]
	if !ok {
		table = t.translations[t.defaultLang]
	}

	if tmpl, ok := lookup(table, key).(string); ok {
		return substitute(tmpl, args)
	}

	t.logger.Debug("translation not found", slog.String("lang", lang), slog.String("key", key))
	if t.fallbackToKey {
		return substitute(key, args)
	}
	return ""
}

// NormalizeLang reduces a language tag to its lower-case base language,
// for example "ru-RU" to "ru". Unparseable input is lower-cased as is.
func NormalizeLang(lang string) string {
	tag, err := language.Parse(strings.TrimSpace(lang))
	if err != nil {
		return strings.ToLower(strings.TrimSpace(lang))
	}
	base, _ := tag.Base()
	return base.String()
}

// lookup traverses nested maps with a dot-separated key.
func lookup(table map[string]any, key string) any {
	var current any = table
	for part := range strings.SplitSeq(key, ".") {
		switch m := current.(type) {
		case map[string]any:
			current = m[part]
		case map[any]any:
			current = m[part]
		default:
			return nil
		}
	}
	return current
}

var paramRegex = regexp.MustCompile(`%\{([^}]+)\}`)

// substitute replaces "%{name}" placeholders; unknown names are kept.
func substitute(tmpl string, args []string) string {
	if len(args) < 2 {
		return tmpl
	}
	params := make(map[string]string, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		params[args[i]] = args[i+1]
	}
	return paramRegex.ReplaceAllStringFunc(tmpl, func(match string) string {
		if val, ok := params[match[2:len(match)-1]]; ok {
			return val
		}
		return match
	})
}

// Args flattens a map of values into name, value pairs for T.
func Args(values map[string]any) []string {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	args := make([]string, 0, len(values)*2)
	for _, name := range names {
		args = append(args, name, fmt.Sprint(values[name]))
	}
	return args
}
