package page

import (
	"log/slog"

	"github.com/dmitrymomot/mesto/pkg/i18n"
	"github.com/dmitrymomot/mesto/pkg/validation"
)

// Labels are shown on a submit button while its request is in flight.
type Labels struct {
	Saving   string
	Creating string
}

// DefaultLabels returns the Russian labels of the page.
func DefaultLabels() Labels {
	return Labels{Saving: "Сохранение...", Creating: "Создание..."}
}

// ErrorHook receives every failed request. It runs under the page lock and
// must not call Do.
type ErrorHook func(op string, err error)

// Option configures a Page.
type Option func(*Page)

func WithLogger(l *slog.Logger) Option {
	return func(p *Page) {
		if l != nil {
			p.logger = l
		}
	}
}

func WithErrorHook(hook ErrorHook) Option {
	return func(p *Page) {
		p.onError = hook
	}
}

// WithValidationConfig overrides the selectors and classes of the forms.
func WithValidationConfig(cfg validation.Config) Option {
	return func(p *Page) {
		p.cfg = cfg
	}
}

func WithLabels(l Labels) Option {
	return func(p *Page) {
		p.labels = l
	}
}

// WithTranslator takes the loading labels from t for lang. Missing keys keep
// the current labels.
func WithTranslator(t *i18n.Translator, lang string) Option {
	return func(p *Page) {
		if t == nil {
			return
		}
		if t.Has(lang, "button.saving") {
			p.labels.Saving = t.T(lang, "button.saving")
		}
		if t.Has(lang, "button.creating") {
			p.labels.Creating = t.T(lang, "button.creating")
		}
	}
}
