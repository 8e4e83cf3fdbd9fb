package page

import (
	"bytes"
	"context"
	"embed"
	"errors"

	"github.com/dmitrymomot/mesto/pkg/dom"
	"github.com/dmitrymomot/mesto/pkg/i18n"
)

var (
	//go:embed templates/index.html
	indexHTML []byte

	//go:embed locales/*.yaml
	locales embed.FS
)

// NewDocument parses the bundled page markup.
func NewDocument(opts ...dom.Option) (*dom.Document, error) {
	doc, err := dom.Parse(bytes.NewReader(indexHTML), opts...)
	if err != nil {
		return nil, errors.Join(ErrTemplate, err)
	}
	return doc, nil
}

// NewTranslator loads the bundled en and ru translations.
func NewTranslator(ctx context.Context, opts ...i18n.Option) (*i18n.Translator, error) {
	return i18n.NewTranslator(ctx, i18n.NewFSAdapter(i18n.NewYAMLParser(), locales, "locales"), opts...)
}
