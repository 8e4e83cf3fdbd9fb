package validation

import (
	"log/slog"

	"github.com/dmitrymomot/mesto/pkg/logger"
)

// Validator holds the subscriptions made by Enable.
type Validator struct {
	cfg         Config
	logger      *slog.Logger
	forms       int
	unsubscribe []func()
}

// Option configures Enable.
type Option func(*Validator)

// WithLogger sets the logger for evaluation records, written at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(v *Validator) {
		if l != nil {
			v.logger = l
		}
	}
}

// Enable subscribes to value changes of every input of every form that root
// finds for cfg, and applies the initial submit state of each form. Inputs
// are discovered once; call Enable once per document, since a second call
// subscribes again.
func Enable(root Root, cfg Config, opts ...Option) *Validator {
	v := &Validator{
		cfg:    cfg,
		logger: logger.Discard(),
	}
	for _, opt := range opts {
		opt(v)
	}
	if root == nil {
		return v
	}

	for _, form := range root.Forms(cfg.FormSelector) {
		inputs := form.Inputs(cfg.InputSelector)
		for _, input := range inputs {
			v.unsubscribe = append(v.unsubscribe, input.OnInput(func() {
				checkInput(form, input, cfg)
				valid := toggleSubmit(form, inputs, cfg)
				v.logger.Debug("form evaluated",
					slog.Int("inputs", len(inputs)),
					slog.Bool("valid", valid),
				)
			}))
		}
		toggleSubmit(form, inputs, cfg)
		v.forms++
	}

	v.logger.Debug("validation enabled",
		slog.String("form_selector", cfg.FormSelector),
		slog.Int("forms", v.forms),
	)
	return v
}

// Forms returns the number of forms Enable attached to.
func (v *Validator) Forms() int {
	return v.forms
}

// Close removes every subscription. Displays keep their current state.
func (v *Validator) Close() {
	for _, unsubscribe := range v.unsubscribe {
		unsubscribe()
	}
	v.unsubscribe = nil
}

// Clear hides every error display of form, removes the invalid marker from
// its inputs, and applies the submit state computed from current validity.
func Clear(form Form, cfg Config) {
	inputs := form.Inputs(cfg.InputSelector)
	for _, input := range inputs {
		hideError(form, input, cfg)
	}
	toggleSubmit(form, inputs, cfg)
}

// Validate shows the error display of every input of form according to its
// validity, applies the submit state, and reports whether the form is valid.
func Validate(form Form, cfg Config) bool {
	inputs := form.Inputs(cfg.InputSelector)
	for _, input := range inputs {
		checkInput(form, input, cfg)
	}
	return toggleSubmit(form, inputs, cfg)
}

// IsValid reports whether every input of form is valid without changing
// anything.
func IsValid(form Form, cfg Config) bool {
	return allValid(form.Inputs(cfg.InputSelector))
}

func checkInput(form Form, input Input, cfg Config) {
	if msg := input.ValidationMessage(); msg != "" {
		showError(form, input, msg, cfg)
		return
	}
	hideError(form, input, cfg)
}

func showError(form Form, input Input, msg string, cfg Config) {
	input.AddClass(cfg.InputErrorClass)
	if display, ok := form.ErrorDisplay(input); ok {
		display.SetTextContent(msg)
		display.AddClass(cfg.ErrorClass)
	}
}

func hideError(form Form, input Input, cfg Config) {
	input.RemoveClass(cfg.InputErrorClass)
	if display, ok := form.ErrorDisplay(input); ok {
		display.RemoveClass(cfg.ErrorClass)
		display.SetTextContent("")
	}
}

// toggleSubmit disables the submit control unless every input is valid, and
// returns the form validity.
func toggleSubmit(form Form, inputs []Input, cfg Config) bool {
	valid := allValid(inputs)
	if control, ok := form.SubmitControl(cfg.SubmitButtonSelector); ok {
		control.SetDisabled(!valid)
		control.ToggleClass(cfg.InactiveButtonClass, !valid)
	}
	return valid
}

func allValid(inputs []Input) bool {
	for _, input := range inputs {
		if input.ValidationMessage() != "" {
			return false
		}
	}
	return true
}
