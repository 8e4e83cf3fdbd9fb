package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/mesto/pkg/validator"
)

func TestValidURL(t *testing.T) {
	tests := []struct {
		value string
		valid bool
	}{
		{"", true},
		{"https://pictures.s3.yandex.net/frontend-developer/cards-compressed/arkhyz.jpg", true},
		{"http://localhost:8080/a.png", true},
		{"  https://example.com  ", true},
		{"data:image/png;base64,AAAA", true},
		{"not-a-url", false},
		{"https://", false},
		{"example.com/image.jpg", false},
		{"1http://example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.valid, validator.ValidURL("link", tt.value).Check())
		})
	}
}

func TestValidEmail(t *testing.T) {
	assert.True(t, validator.ValidEmail("email", "").Check())
	assert.True(t, validator.ValidEmail("email", "jacques@cousteau.fr").Check())
	assert.False(t, validator.ValidEmail("email", "jacques").Check())
	assert.False(t, validator.ValidEmail("email", "a@b@c").Check())
}
