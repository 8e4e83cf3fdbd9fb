package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http/httptest"
	"sync"

	"github.com/dmitrymomot/mesto/pkg/config"
	"github.com/dmitrymomot/mesto/pkg/dom"
	"github.com/dmitrymomot/mesto/pkg/httpserver"
	"github.com/dmitrymomot/mesto/pkg/i18n"
	"github.com/dmitrymomot/mesto/pkg/logger"
	"github.com/dmitrymomot/mesto/pkg/mesto"
	"github.com/dmitrymomot/mesto/pkg/mesto/mestotest"
	"github.com/dmitrymomot/mesto/pkg/page"
	"github.com/dmitrymomot/mesto/pkg/requestid"
)

type appConfig struct {
	Env      string `env:"APP_ENV" envDefault:"development"`
	Lang     string `env:"APP_LANG" envDefault:"ru"`
	LogLevel string `env:"LOG_LEVEL"`
	HTTP     httpserver.Config
}

type app struct {
	cfg    appConfig
	log    *slog.Logger
	api    *mesto.Client
	tr     *i18n.Translator
	opts   runOptions
	fake   *httptest.Server
	failed failures
}

func newApp(ctx context.Context, fake bool, opts runOptions) (*app, error) {
	var loadOpts []config.Option
	if opts.env != nil {
		loadOpts = append(loadOpts, config.WithEnvironment(opts.env))
	}

	a := &app{opts: opts}
	if err := config.Load(&a.cfg, loadOpts...); err != nil {
		return nil, err
	}

	logOpts := []logger.Option{
		logger.WithEnvironment(a.cfg.Env, "mesto"),
		logger.WithOutput(opts.stderr),
		logger.WithContextExtractors(requestid.Extractor),
	}
	if a.cfg.LogLevel != "" {
		logOpts = append(logOpts, logger.WithLevelName(a.cfg.LogLevel))
	}
	a.log = logger.New(logOpts...)

	var mcfg mesto.Config
	if fake {
		f := opts.fake
		if f == nil {
			f = mestotest.New(mestotest.WithLogger(a.log))
		}
		a.fake = httptest.NewServer(f.Handle())
		mcfg = f.Config(a.fake.URL)
	} else if err := config.Load(&mcfg, loadOpts...); err != nil {
		return nil, err
	}

	api, err := mesto.New(mcfg, mesto.WithLogger(a.log))
	if err != nil {
		a.close()
		return nil, err
	}
	a.api = api

	tr, err := page.NewTranslator(ctx, i18n.WithDefaultLanguage("ru"), i18n.WithLogger(a.log))
	if err != nil {
		a.close()
		return nil, err
	}
	a.tr = tr
	return a, nil
}

func (a *app) close() {
	if a.fake != nil {
		a.fake.Close()
	}
}

// openPage builds a page for lang and loads it. The caller closes it. Failed
// requests go to onError when it is not nil.
func (a *app) openPage(ctx context.Context, lang string, onError page.ErrorHook) (*page.Page, error) {
	doc, err := page.NewDocument(dom.WithLocalizer(dom.TranslatorLocalizer(a.tr, lang)))
	if err != nil {
		return nil, err
	}
	p, err := page.New(doc, a.api,
		page.WithLogger(a.log),
		page.WithTranslator(a.tr, lang),
		page.WithErrorHook(onError),
	)
	if err != nil {
		return nil, err
	}
	if err := p.Load(ctx); err != nil {
		p.Close()
		return nil, err
	}
	return p, nil
}

// failures collects the request errors reported by pages.
type failures struct {
	mu   sync.Mutex
	errs []error
}

func (f *failures) add(_ string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs = append(f.errs, err)
}

func (f *failures) err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return errors.Join(f.errs...)
}
