// Package i18n loads translations from YAML sources and renders translated
// strings with named parameters.
//
// Translations are keyed by language, then by dot-separated keys that address
// nested maps:
//
//	ru:
//	  validation:
//	    too_short: "Минимальное количество символов: %{min}."
//
//	t, err := i18n.NewTranslator(ctx, i18n.NewFSAdapter(i18n.NewYAMLParser(), locales, "locales"))
//	msg := t.T("ru", "validation.too_short", "min", "2")
//
// Language tags are normalised with golang.org/x/text/language, so "ru-RU"
// resolves to the "ru" table when no regional table exists. Match picks the
// best supported language for an Accept-Language header.
package i18n
