package validation

// Config names the elements and classes the engine works with.
type Config struct {
	FormSelector         string `json:"formSelector" yaml:"formSelector"`
	InputSelector        string `json:"inputSelector" yaml:"inputSelector"`
	SubmitButtonSelector string `json:"submitButtonSelector" yaml:"submitButtonSelector"`
	InactiveButtonClass  string `json:"inactiveButtonClass" yaml:"inactiveButtonClass"`
	InputErrorClass      string `json:"inputErrorClass" yaml:"inputErrorClass"`
	ErrorClass           string `json:"errorClass" yaml:"errorClass"`
}

// DefaultConfig returns the configuration of the gallery page.
func DefaultConfig() Config {
	return Config{
		FormSelector:         ".popup__form",
		InputSelector:        ".popup__input",
		SubmitButtonSelector: ".popup__button",
		InactiveButtonClass:  "popup__button_disabled",
		InputErrorClass:      "popup__input_type_error",
		ErrorClass:           "popup__error_visible",
	}
}
