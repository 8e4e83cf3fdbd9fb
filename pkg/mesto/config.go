package mesto

import "time"

// DefaultBaseURL is the public Mesto API.
const DefaultBaseURL = "https://mesto.nomoreparties.co/v1"

// Config holds the connection settings, loaded from the environment.
type Config struct {
	BaseURL string        `env:"MESTO_BASE_URL" envDefault:"https://mesto.nomoreparties.co/v1"`
	Cohort  string        `env:"MESTO_COHORT"`
	Token   string        `env:"MESTO_TOKEN,required"`
	Timeout time.Duration `env:"MESTO_TIMEOUT" envDefault:"10s"`
}
