// Package mestotest provides an in-memory Mesto API for tests and local runs.
//
//	fake := mestotest.New()
//	srv := httptest.NewServer(fake.Handle())
//	defer srv.Close()
//	client, _ := mesto.New(fake.Config(srv.URL))
package mestotest

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dmitrymomot/mesto/pkg/logger"
	"github.com/dmitrymomot/mesto/pkg/mesto"
	"github.com/dmitrymomot/mesto/pkg/validator"
)

const (
	DefaultToken  = "test-token"
	DefaultCohort = "test-cohort"
)

// Fake is an in-memory Mesto API for a single authorised user. It is safe for
// concurrent use.
type Fake struct {
	mu      sync.Mutex
	token   string
	cohort  string
	user    mesto.User
	cards   []mesto.Card
	failure int
	now     func() time.Time
	logger  *slog.Logger
}

// Option configures a Fake.
type Option func(*Fake)

func WithToken(token string) Option {
	return func(f *Fake) { f.token = token }
}

func WithCohort(cohort string) Option {
	return func(f *Fake) { f.cohort = cohort }
}

// WithUser replaces the authorised user. An empty ID is generated.
func WithUser(u mesto.User) Option {
	return func(f *Fake) {
		if u.ID == "" {
			u.ID = uuid.NewString()
		}
		f.user = u
	}
}

// WithCards seeds the card list, newest first.
func WithCards(cards ...mesto.Card) Option {
	return func(f *Fake) { f.cards = slices.Clone(cards) }
}

// WithClock sets the source of card creation times.
func WithClock(now func() time.Time) Option {
	return func(f *Fake) {
		if now != nil {
			f.now = now
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(f *Fake) {
		if l != nil {
			f.logger = l
		}
	}
}

// New creates a Fake with a default user and two cards, one of them owned by
// the user.
func New(opts ...Option) *Fake {
	f := &Fake{
		token:  DefaultToken,
		cohort: DefaultCohort,
		now:    time.Now,
		logger: logger.Discard(),
	}
	f.user = mesto.User{
		ID:     uuid.NewString(),
		Name:   "Жак-Ив Кусто",
		About:  "Исследователь океана",
		Avatar: "https://pictures.s3.yandex.net/frontend-developer/common/ava.jpg",
		Cohort: f.cohort,
	}
	neighbour := mesto.User{
		ID:     uuid.NewString(),
		Name:   "Марина",
		About:  "Фотограф",
		Avatar: "https://pictures.s3.yandex.net/frontend-developer/common/ava.jpg",
		Cohort: f.cohort,
	}
	f.cards = []mesto.Card{
		{
			ID:        uuid.NewString(),
			Name:      "Архыз",
			Link:      "https://pictures.s3.yandex.net/frontend-developer/cards-compressed/arkhyz.jpg",
			Owner:     f.user,
			Likes:     []mesto.User{neighbour},
			CreatedAt: time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC),
		},
		{
			ID:        uuid.NewString(),
			Name:      "Челябинская область",
			Link:      "https://pictures.s3.yandex.net/frontend-developer/cards-compressed/chelyabinsk-oblast.jpg",
			Owner:     neighbour,
			Likes:     []mesto.User{},
			CreatedAt: time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
		},
	}

	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Config returns client settings pointing at the fake served from baseURL.
func (f *Fake) Config(baseURL string) mesto.Config {
	return mesto.Config{BaseURL: baseURL, Cohort: f.cohort, Token: f.token}
}

func (f *Fake) User() mesto.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.user
}

// Cards returns a copy of the card list, newest first.
func (f *Fake) Cards() []mesto.Card {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.cards)
}

// FailWith makes every following request fail with status until it is called
// with 0.
func (f *Fake) FailWith(status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failure = status
}

// Handle returns the API router, rooted at the base URL.
func (f *Fake) Handle() http.Handler {
	r := chi.NewRouter()
	r.Route("/{cohort}", func(r chi.Router) {
		r.Use(f.authorize)
		r.Get("/users/me", f.getUser)
		r.Patch("/users/me", f.patchUser)
		r.Patch("/users/me/avatar", f.patchAvatar)
		r.Get("/cards", f.getCards)
		r.Post("/cards", f.postCard)
		r.Delete("/cards/{id}", f.deleteCard)
		r.Put("/cards/likes/{id}", f.likeCard)
		r.Delete("/cards/likes/{id}", f.unlikeCard)
	})
	return r
}

func (f *Fake) authorize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		failure, token, cohort := f.failure, f.token, f.cohort
		f.mu.Unlock()

		f.logger.DebugContext(r.Context(), "fake mesto request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		)

		switch {
		case failure != 0:
			writeMessage(w, failure, http.StatusText(failure))
		case chi.URLParam(r, "cohort") != cohort:
			writeMessage(w, http.StatusNotFound, "Запрашиваемый ресурс не найден")
		case r.Header.Get("authorization") != token:
			writeMessage(w, http.StatusUnauthorized, "Необходима авторизация")
		default:
			next.ServeHTTP(w, r)
		}
	})
}

func (f *Fake) getUser(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, f.User())
}

func (f *Fake) patchUser(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Name  string `json:"name"`
		About string `json:"about"`
	}
	if !decode(w, r, &in, func() error {
		return validator.Apply(
			validator.Required("name", in.Name),
			validator.MinLen("name", in.Name, 2),
			validator.MaxLen("name", in.Name, 40),
			validator.Required("about", in.About),
			validator.MinLen("about", in.About, 2),
			validator.MaxLen("about", in.About, 200),
		)
	}) {
		return
	}

	f.mu.Lock()
	f.user.Name, f.user.About = in.Name, in.About
	f.syncUser()
	user := f.user
	f.mu.Unlock()

	writeJSON(w, http.StatusOK, user)
}

func (f *Fake) patchAvatar(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Avatar string `json:"avatar"`
	}
	if !decode(w, r, &in, func() error {
		return validator.Apply(
			validator.Required("avatar", in.Avatar),
			validator.ValidURL("avatar", in.Avatar),
		)
	}) {
		return
	}

	f.mu.Lock()
	f.user.Avatar = in.Avatar
	f.syncUser()
	user := f.user
	f.mu.Unlock()

	writeJSON(w, http.StatusOK, user)
}

func (f *Fake) getCards(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, f.Cards())
}

func (f *Fake) postCard(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Name string `json:"name"`
		Link string `json:"link"`
	}
	if !decode(w, r, &in, func() error {
		return validator.Apply(
			validator.Required("name", in.Name),
			validator.MinLen("name", in.Name, 2),
			validator.MaxLen("name", in.Name, 30),
			validator.Required("link", in.Link),
			validator.ValidURL("link", in.Link),
		)
	}) {
		return
	}

	f.mu.Lock()
	card := mesto.Card{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Link:      in.Link,
		Owner:     f.user,
		Likes:     []mesto.User{},
		CreatedAt: f.now().UTC(),
	}
	f.cards = slices.Insert(f.cards, 0, card)
	f.mu.Unlock()

	writeJSON(w, http.StatusCreated, card)
}

func (f *Fake) deleteCard(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	f.mu.Lock()
	i := f.indexOf(id)
	if i < 0 {
		f.mu.Unlock()
		writeMessage(w, http.StatusNotFound, "Карточка не найдена")
		return
	}
	if !f.cards[i].OwnedBy(f.user.ID) {
		f.mu.Unlock()
		writeMessage(w, http.StatusForbidden, "Нельзя удалить чужую карточку")
		return
	}
	f.cards = slices.Delete(f.cards, i, i+1)
	f.mu.Unlock()

	writeMessage(w, http.StatusOK, "Пост удалён")
}

func (f *Fake) likeCard(w http.ResponseWriter, r *http.Request) {
	f.updateLikes(w, chi.URLParam(r, "id"), true)
}

func (f *Fake) unlikeCard(w http.ResponseWriter, r *http.Request) {
	f.updateLikes(w, chi.URLParam(r, "id"), false)
}

func (f *Fake) updateLikes(w http.ResponseWriter, id string, like bool) {
	f.mu.Lock()
	i := f.indexOf(id)
	if i < 0 {
		f.mu.Unlock()
		writeMessage(w, http.StatusNotFound, "Карточка не найдена")
		return
	}
	card := &f.cards[i]
	likes := slices.DeleteFunc(slices.Clone(card.Likes), func(u mesto.User) bool { return u.ID == f.user.ID })
	if like {
		likes = append(likes, f.user)
	}
	card.Likes = likes
	out := *card
	f.mu.Unlock()

	writeJSON(w, http.StatusOK, out)
}

func (f *Fake) indexOf(id string) int {
	return slices.IndexFunc(f.cards, func(c mesto.Card) bool { return c.ID == id })
}

// syncUser copies the user into the owner and like lists of every card.
func (f *Fake) syncUser() {
	for i := range f.cards {
		if f.cards[i].Owner.ID == f.user.ID {
			f.cards[i].Owner = f.user
		}
		for j := range f.cards[i].Likes {
			if f.cards[i].Likes[j].ID == f.user.ID {
				f.cards[i].Likes[j] = f.user
			}
		}
	}
}

// decode reads a JSON body into dst and runs validate. It writes the error
// response and returns false on failure.
func decode(w http.ResponseWriter, r *http.Request, dst any, validate func() error) bool {
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(dst); err != nil {
		writeMessage(w, http.StatusBadRequest, "Переданы некорректные данные")
		return false
	}
	if err := validate(); err != nil {
		msg := "Переданы некорректные данные"
		if fields := validator.ExtractValidationErrors(err).Fields(); len(fields) > 0 {
			msg += ": " + strings.Join(fields, ", ")
		}
		writeMessage(w, http.StatusBadRequest, msg)
		return false
	}
	return true
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
