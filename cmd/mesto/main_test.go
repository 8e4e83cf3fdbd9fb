package main

import (
	"bytes"
	"context"
	"flag"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mesto/pkg/mesto/mestotest"
	"github.com/dmitrymomot/mesto/pkg/requestid"
)

type result struct {
	err    error
	stdout string
	stderr string
}

func runFake(t *testing.T, fake *mestotest.Fake, args ...string) result {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), append([]string{"-fake"}, args...), runOptions{
		env:    map[string]string{"APP_ENV": "production", "LOG_LEVEL": "error"},
		stdout: &stdout,
		stderr: &stderr,
		fake:   fake,
	})
	return result{err: err, stdout: stdout.String(), stderr: stderr.String()}
}

func TestRun_Usage(t *testing.T) {
	var stderr bytes.Buffer
	opts := runOptions{env: map[string]string{}, stdout: &bytes.Buffer{}, stderr: &stderr}

	err := run(context.Background(), nil, opts)
	assert.ErrorIs(t, err, errUsage)
	assert.Contains(t, stderr.String(), "Usage:")

	err = run(context.Background(), []string{"frobnicate"}, opts)
	assert.ErrorIs(t, err, errUsage)
	assert.Contains(t, stderr.String(), `unknown command "frobnicate"`)

	err = run(context.Background(), []string{"-help"}, opts)
	assert.ErrorIs(t, err, flag.ErrHelp)
}

func TestRun_MissingToken(t *testing.T) {
	var stderr bytes.Buffer
	err := run(context.Background(), []string{"render"}, runOptions{
		env:    map[string]string{},
		stdout: &bytes.Buffer{},
		stderr: &stderr,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MESTO_TOKEN")
}

func TestRender(t *testing.T) {
	res := runFake(t, mestotest.New(), "render")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Жак-Ив Кусто")
	assert.Contains(t, res.stdout, "Архыз")
	assert.Contains(t, res.stdout, "Челябинская область")
	assert.Contains(t, res.stdout, `data-card-id=`)
}

func TestProfile(t *testing.T) {
	t.Run("updates the profile", func(t *testing.T) {
		fake := mestotest.New()
		res := runFake(t, fake, "profile", "-name", "Марина", "-about", "Фотограф")
		require.NoError(t, res.err, res.stderr)
		assert.Equal(t, "Марина\nФотограф\n", res.stdout)
		assert.Equal(t, "Марина", fake.User().Name)
		assert.Equal(t, "Фотограф", fake.User().About)
	})

	t.Run("omitted flags keep the current values", func(t *testing.T) {
		fake := mestotest.New()
		res := runFake(t, fake, "profile", "-about", "Капитан")
		require.NoError(t, res.err, res.stderr)
		assert.Equal(t, "Жак-Ив Кусто\nКапитан\n", res.stdout)
	})

	t.Run("invalid name is not sent", func(t *testing.T) {
		fake := mestotest.New()
		res := runFake(t, fake, "profile", "-name", "Ж")
		assert.ErrorIs(t, res.err, errInvalidForm)
		assert.Contains(t, res.stderr, "name: ")
		assert.Empty(t, res.stdout)
		assert.Equal(t, "Жак-Ив Кусто", fake.User().Name)
	})
}

func TestAvatar(t *testing.T) {
	t.Run("valid link", func(t *testing.T) {
		fake := mestotest.New()
		res := runFake(t, fake, "avatar", "-link", "https://example.com/me.png")
		require.NoError(t, res.err, res.stderr)
		assert.Equal(t, "url(https://example.com/me.png)\n", res.stdout)
		assert.Equal(t, "https://example.com/me.png", fake.User().Avatar)
	})

	t.Run("not a url", func(t *testing.T) {
		res := runFake(t, mestotest.New(), "avatar", "-link", "me.png")
		assert.ErrorIs(t, res.err, errInvalidForm)
		assert.Contains(t, res.stderr, "avatar: ")
	})
}

func TestAddCard(t *testing.T) {
	t.Run("adds a card", func(t *testing.T) {
		fake := mestotest.New()
		res := runFake(t, fake, "add-card", "-name", "Байкал", "-link", "https://example.com/baikal.jpg")
		require.NoError(t, res.err, res.stderr)

		cards := fake.Cards()
		require.Len(t, cards, 3)
		assert.Equal(t, "Байкал", cards[0].Name)
		assert.Equal(t, cards[0].ID+"\n", res.stdout)
	})

	t.Run("empty form", func(t *testing.T) {
		fake := mestotest.New()
		res := runFake(t, fake, "add-card")
		assert.ErrorIs(t, res.err, errInvalidForm)
		assert.Contains(t, res.stderr, "place-name: ")
		assert.Contains(t, res.stderr, "link: ")
		assert.Len(t, fake.Cards(), 2)
	})
}

func TestLike(t *testing.T) {
	fake := mestotest.New()
	id := fake.Cards()[1].ID

	res := runFake(t, fake, "like", "-id", id)
	require.NoError(t, res.err, res.stderr)
	assert.Equal(t, "liked "+id+", likes: 1\n", res.stdout)

	res = runFake(t, fake, "like", "-id", id)
	require.NoError(t, res.err, res.stderr)
	assert.Equal(t, "unliked "+id+", likes: 0\n", res.stdout)

	res = runFake(t, fake, "like", "-id", "missing")
	assert.ErrorIs(t, res.err, errCardNotFound)

	res = runFake(t, fake, "like")
	assert.ErrorIs(t, res.err, errMissingFlag)
}

func TestDelete(t *testing.T) {
	fake := mestotest.New()
	own, foreign := fake.Cards()[0].ID, fake.Cards()[1].ID

	res := runFake(t, fake, "delete", "-id", foreign)
	assert.ErrorIs(t, res.err, errForeignCard)

	res = runFake(t, fake, "delete", "-id", own)
	require.NoError(t, res.err, res.stderr)
	assert.Equal(t, "deleted "+own+"\n", res.stdout)
	assert.Len(t, fake.Cards(), 1)
}

func TestRequestFailure(t *testing.T) {
	fake := mestotest.New()
	res := runFake(t, fake, "render")
	require.NoError(t, res.err)

	fake.FailWith(http.StatusInternalServerError)
	res = runFake(t, fake, "render")
	assert.Error(t, res.err)
}

func newTestApp(t *testing.T, fake *mestotest.Fake) *app {
	t.Helper()
	a, err := newApp(context.Background(), true, runOptions{
		env:    map[string]string{"LOG_LEVEL": "error"},
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
		fake:   fake,
	})
	require.NoError(t, err)
	t.Cleanup(a.close)
	return a
}

func TestRoutes(t *testing.T) {
	fake := mestotest.New()
	h := newTestApp(t, fake).routes()

	get := func(path string, header http.Header) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		for k, v := range header {
			req.Header[k] = v
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	t.Run("index", func(t *testing.T) {
		rec := get("/", http.Header{"Accept-Language": {"en-US,en;q=0.9"}})
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
		assert.Equal(t, "en", rec.Header().Get("Content-Language"))
		assert.NotEmpty(t, rec.Header().Get(requestid.Header))
		assert.Contains(t, rec.Body.String(), "Архыз")
	})

	t.Run("default language", func(t *testing.T) {
		rec := get("/", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "ru", rec.Header().Get("Content-Language"))
	})

	t.Run("health", func(t *testing.T) {
		rec := get("/healthz", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "ALIVE", rec.Body.String())

		rec = get("/readyz", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "READY", rec.Body.String())
	})

	t.Run("upstream failure", func(t *testing.T) {
		fake.FailWith(http.StatusServiceUnavailable)
		defer fake.FailWith(0)

		rec := get("/", nil)
		assert.Equal(t, http.StatusBadGateway, rec.Code)

		rec = get("/readyz", nil)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Equal(t, "NOT_READY", rec.Body.String())
	})
}
