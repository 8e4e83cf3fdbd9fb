package main

import (
	"bytes"
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/mesto/pkg/httpserver"
	"github.com/dmitrymomot/mesto/pkg/logger"
	"github.com/dmitrymomot/mesto/pkg/page"
	"github.com/dmitrymomot/mesto/pkg/requestid"
)

func serveCmd(ctx context.Context, a *app, args []string) error {
	if err := a.flags("serve").Parse(args); err != nil {
		return err
	}
	srv := httpserver.NewFromConfig(a.cfg.HTTP, httpserver.WithLogger(a.log))
	return srv.Run(ctx, a.routes())
}

func (a *app) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(requestid.Middleware)

	r.Get("/", a.index)
	r.Get("/healthz", httpserver.HealthHandler(a.log))
	r.Get("/readyz", httpserver.HealthHandler(a.log,
		httpserver.Check{Name: "template", Probe: func(context.Context) error {
			_, err := page.NewDocument()
			return err
		}},
		httpserver.Check{Name: "mesto", Probe: func(ctx context.Context) error {
			_, err := a.api.GetUserInfo(ctx)
			return err
		}},
	))
	return r
}

// index renders a freshly loaded page in the language the client prefers.
func (a *app) index(w http.ResponseWriter, r *http.Request) {
	lang := a.tr.Match(r.Header.Get("Accept-Language"))
	p, err := a.openPage(r.Context(), lang, nil)
	if err != nil {
		a.log.ErrorContext(r.Context(), "page not rendered", logger.Lang(lang), logger.Error(err))
		http.Error(w, http.StatusText(http.StatusBadGateway), http.StatusBadGateway)
		return
	}
	defer p.Close()

	var buf bytes.Buffer
	if err := p.Render(&buf); err != nil {
		a.log.ErrorContext(r.Context(), "page not rendered", logger.Lang(lang), logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Language", lang)
	_, _ = w.Write(buf.Bytes())
}
