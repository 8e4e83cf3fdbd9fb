package page_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mesto/pkg/card"
	"github.com/dmitrymomot/mesto/pkg/dom"
	"github.com/dmitrymomot/mesto/pkg/mesto"
	"github.com/dmitrymomot/mesto/pkg/mesto/mestotest"
	"github.com/dmitrymomot/mesto/pkg/modal"
	"github.com/dmitrymomot/mesto/pkg/page"
	"github.com/dmitrymomot/mesto/pkg/validation"
)

var cfg = validation.DefaultConfig()

type failure struct {
	op  string
	err error
}

type hook struct {
	mu       sync.Mutex
	failures []failure
}

func (h *hook) record(op string, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.failures = append(h.failures, failure{op, err})
}

func (h *hook) all() []failure {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]failure(nil), h.failures...)
}

type fixture struct {
	page *page.Page
	fake *mestotest.Fake
	hook *hook
}

func setup(t *testing.T, opts ...page.Option) *fixture {
	t.Helper()
	fake := mestotest.New()
	srv := httptest.NewServer(fake.Handle())
	t.Cleanup(srv.Close)

	client, err := mesto.New(fake.Config(srv.URL))
	require.NoError(t, err)

	doc, err := page.NewDocument()
	require.NoError(t, err)

	h := &hook{}
	p, err := page.New(doc, client, append([]page.Option{page.WithErrorHook(h.record)}, opts...)...)
	require.NoError(t, err)
	t.Cleanup(p.Close)

	require.NoError(t, p.Load(context.Background()))
	return &fixture{page: p, fake: fake, hook: h}
}

func (f *fixture) wait(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, f.page.Wait(ctx))
}

func submitButton(doc *dom.Document, popup string) *dom.Element {
	return doc.QuerySelector(popup + " " + cfg.SubmitButtonSelector)
}

func TestNew(t *testing.T) {
	t.Run("bundled document", func(t *testing.T) {
		doc, err := page.NewDocument()
		require.NoError(t, err)
		p, err := page.New(doc, nil)
		require.NoError(t, err)
		p.Close()
	})

	t.Run("missing elements", func(t *testing.T) {
		doc, err := dom.ParseString(`<ul class="places__list"></ul>`)
		require.NoError(t, err)
		_, err = page.New(doc, nil)
		require.ErrorIs(t, err, page.ErrElementNotFound)
		assert.Contains(t, err.Error(), ".profile__title")
		assert.NotContains(t, err.Error(), ".places__list")
	})
}

func TestLoad(t *testing.T) {
	f := setup(t)
	me := f.fake.User()
	cards := f.fake.Cards()
	assert.Equal(t, page.Session{UserID: me.ID}, f.page.Session())

	f.page.Do(func(doc *dom.Document) {
		assert.Equal(t, me.Name, doc.QuerySelector(".profile__title").TextContent())
		assert.Equal(t, me.About, doc.QuerySelector(".profile__description").TextContent())
		assert.Equal(t, "url("+me.Avatar+")", doc.QuerySelector(".profile__image").Style("background-image"))

		rendered := doc.QuerySelectorAll(".places__list .card")
		require.Len(t, rendered, len(cards))
		for i, el := range rendered {
			assert.Equal(t, cards[i].Name, el.QuerySelector(card.TitleSelector).TextContent())
			assert.Equal(t, cards[i].OwnedBy(me.ID), el.QuerySelector(card.DeleteSelector) != nil)
		}
	})

	t.Run("reload replaces the list", func(t *testing.T) {
		require.NoError(t, f.page.Load(context.Background()))
		f.page.Do(func(doc *dom.Document) {
			assert.Len(t, doc.QuerySelectorAll(".places__list .card"), len(cards))
		})
	})

	t.Run("failure", func(t *testing.T) {
		f := setup(t)
		f.fake.FailWith(http.StatusInternalServerError)
		err := f.page.Load(context.Background())
		assert.True(t, mesto.IsStatus(err, http.StatusInternalServerError))

		failures := f.hook.all()
		require.Len(t, failures, 1)
		assert.Equal(t, "load", failures[0].op)
		f.page.Do(func(doc *dom.Document) {
			assert.NotEmpty(t, doc.QuerySelectorAll(".places__list .card"), "previous render is kept")
		})
	})
}

func TestProfileForm(t *testing.T) {
	f := setup(t)
	me := f.fake.User()

	f.page.Do(func(doc *dom.Document) {
		popup := doc.QuerySelector(".popup_type_edit")
		doc.QuerySelector(".profile__edit-button").Click()

		assert.True(t, popup.HasClass(modal.OpenedClass))
		assert.Equal(t, me.Name, doc.GetElementByID("name-input").Value())
		assert.Equal(t, me.About, doc.GetElementByID("description-input").Value())
		assert.False(t, submitButton(doc, ".popup_type_edit").Disabled())

		doc.GetElementByID("name-input").Input("Ж")
		assert.True(t, submitButton(doc, ".popup_type_edit").Disabled())
		assert.NotEmpty(t, doc.QuerySelector(".name-input-error").TextContent())

		doc.GetElementByID("name-input").Input("Марина")
		doc.GetElementByID("description-input").Input("Фотограф")
		button := submitButton(doc, ".popup_type_edit")
		button.Click()
		assert.Equal(t, "Сохранение...", button.TextContent())
	})
	f.wait(t)

	f.page.Do(func(doc *dom.Document) {
		assert.Equal(t, "Марина", doc.QuerySelector(".profile__title").TextContent())
		assert.Equal(t, "Фотограф", doc.QuerySelector(".profile__description").TextContent())
		assert.False(t, doc.QuerySelector(".popup_type_edit").HasClass(modal.OpenedClass))
		assert.Equal(t, "Сохранить", submitButton(doc, ".popup_type_edit").TextContent())
	})
	assert.Equal(t, "Марина", f.fake.User().Name)
	assert.Empty(t, f.hook.all())

	t.Run("reopen clears errors", func(t *testing.T) {
		f.page.Do(func(doc *dom.Document) {
			doc.QuerySelector(".profile__edit-button").Click()
			doc.GetElementByID("description-input").Input("")
			require.NotEmpty(t, doc.QuerySelector(".description-input-error").TextContent())

			doc.KeyDown("Escape")
			doc.QuerySelector(".profile__edit-button").Click()
			assert.Empty(t, doc.QuerySelector(".description-input-error").TextContent())
			assert.Equal(t, "Фотограф", doc.GetElementByID("description-input").Value())
			assert.False(t, submitButton(doc, ".popup_type_edit").Disabled())
		})
	})
}

func TestAvatarForm(t *testing.T) {
	f := setup(t)
	const link = "https://example.com/avatar.png"

	f.page.Do(func(doc *dom.Document) {
		doc.QuerySelector(".profile__image").Click()
		assert.True(t, doc.QuerySelector(".popup_type_edit-avatar").HasClass(modal.OpenedClass))
		assert.True(t, submitButton(doc, ".popup_type_edit-avatar").Disabled())

		input := doc.GetElementByID("avatar-input")
		input.Input("not-a-url")
		assert.Equal(t, "Please enter a URL.", doc.QuerySelector(".avatar-input-error").TextContent())
		assert.True(t, input.HasClass(cfg.InputErrorClass))
		assert.True(t, submitButton(doc, ".popup_type_edit-avatar").Disabled())

		input.Input(link)
		assert.False(t, input.HasClass(cfg.InputErrorClass))
		submitButton(doc, ".popup_type_edit-avatar").Click()
	})
	f.wait(t)

	f.page.Do(func(doc *dom.Document) {
		assert.Equal(t, "url("+link+")", doc.QuerySelector(".profile__image").Style("background-image"))
		assert.False(t, doc.QuerySelector(".popup_type_edit-avatar").HasClass(modal.OpenedClass))
		assert.Empty(t, doc.GetElementByID("avatar-input").Value(), "form is reset")
		assert.True(t, submitButton(doc, ".popup_type_edit-avatar").Disabled(), "reset form is invalid")
		assert.Empty(t, doc.QuerySelector(".avatar-input-error").TextContent())
	})
	assert.Equal(t, link, f.fake.User().Avatar)
}

func TestCardForm(t *testing.T) {
	f := setup(t)
	before := len(f.fake.Cards())

	f.page.Do(func(doc *dom.Document) {
		doc.QuerySelector(".profile__add-button").Click()
		assert.True(t, submitButton(doc, ".popup_type_new-card").Disabled())

		doc.GetElementByID("place-name-input").Input("Байкал")
		doc.GetElementByID("link-input").Input("https://example.com/baikal.jpg")
		button := submitButton(doc, ".popup_type_new-card")
		require.False(t, button.Disabled())
		button.Click()
		assert.Equal(t, "Создание...", button.TextContent())
	})
	f.wait(t)

	f.page.Do(func(doc *dom.Document) {
		first := doc.QuerySelector(".places__list .card")
		require.NotNil(t, first)
		assert.Equal(t, "Байкал", first.QuerySelector(card.TitleSelector).TextContent())
		assert.NotNil(t, first.QuerySelector(card.DeleteSelector))
		assert.False(t, doc.QuerySelector(".popup_type_new-card").HasClass(modal.OpenedClass))
		assert.Empty(t, doc.GetElementByID("place-name-input").Value())
		assert.Equal(t, "Создать", submitButton(doc, ".popup_type_new-card").TextContent())
		assert.True(t, submitButton(doc, ".popup_type_new-card").Disabled(), "reset form is invalid")
		assert.False(t, doc.GetElementByID("place-name-input").HasClass(cfg.InputErrorClass))
		assert.Len(t, doc.QuerySelectorAll(".places__list .card"), before+1)
	})
}

func TestCardActions(t *testing.T) {
	t.Run("like and unlike", func(t *testing.T) {
		f := setup(t)
		me := f.fake.User()
		target := f.fake.Cards()[1]

		like := func() {
			f.page.Do(func(doc *dom.Document) {
				doc.QuerySelectorAll(".places__list .card")[1].QuerySelector(card.LikeButtonSelector).Click()
			})
			f.wait(t)
		}

		like()
		f.page.Do(func(doc *dom.Document) {
			el := doc.QuerySelectorAll(".places__list .card")[1]
			assert.True(t, el.QuerySelector(card.LikeButtonSelector).HasClass(card.LikeActiveClass))
			assert.Equal(t, "1", el.QuerySelector(card.LikeCountSelector).TextContent())
		})
		assert.True(t, f.fake.Cards()[1].LikedBy(me.ID))

		like()
		f.page.Do(func(doc *dom.Document) {
			el := doc.QuerySelectorAll(".places__list .card")[1]
			assert.False(t, el.QuerySelector(card.LikeButtonSelector).HasClass(card.LikeActiveClass))
			assert.Equal(t, "0", el.QuerySelector(card.LikeCountSelector).TextContent())
		})
		assert.Equal(t, target.ID, f.fake.Cards()[1].ID)
		assert.False(t, f.fake.Cards()[1].LikedBy(me.ID))
	})

	t.Run("delete", func(t *testing.T) {
		f := setup(t)
		f.page.Do(func(doc *dom.Document) {
			doc.QuerySelector(".places__list " + card.DeleteSelector).Click()
		})
		f.wait(t)

		f.page.Do(func(doc *dom.Document) {
			assert.Len(t, doc.QuerySelectorAll(".places__list .card"), 1)
			assert.Nil(t, doc.QuerySelector(".places__list "+card.DeleteSelector))
		})
		assert.Len(t, f.fake.Cards(), 1)
	})

	t.Run("preview", func(t *testing.T) {
		f := setup(t)
		first := f.fake.Cards()[0]
		f.page.Do(func(doc *dom.Document) {
			doc.QuerySelector(".places__list " + card.ImageSelector).Click()
			popup := doc.QuerySelector(".popup_type_image")
			assert.True(t, popup.HasClass(modal.OpenedClass))
			assert.Equal(t, first.Link, popup.QuerySelector(".popup__image").Attr("src"))
			assert.Equal(t, first.Name, popup.QuerySelector(".popup__image").Attr("alt"))
			assert.Equal(t, first.Name, popup.QuerySelector(".popup__caption").TextContent())

			popup.Click()
			assert.False(t, popup.HasClass(modal.OpenedClass), "overlay click closes")
		})
	})
}

func TestRequestFailure(t *testing.T) {
	f := setup(t)
	f.fake.FailWith(http.StatusInternalServerError)

	f.page.Do(func(doc *dom.Document) {
		doc.QuerySelector(".profile__edit-button").Click()
		submitButton(doc, ".popup_type_edit").Click()
	})
	f.wait(t)

	failures := f.hook.all()
	require.Len(t, failures, 1)
	assert.Equal(t, "update profile", failures[0].op)
	assert.True(t, mesto.IsStatus(failures[0].err, http.StatusInternalServerError))

	f.page.Do(func(doc *dom.Document) {
		assert.True(t, doc.QuerySelector(".popup_type_edit").HasClass(modal.OpenedClass), "popup stays open")
		assert.Equal(t, "Сохранить", submitButton(doc, ".popup_type_edit").TextContent())
	})
}

func TestLocalisation(t *testing.T) {
	tr, err := page.NewTranslator(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"en", "ru"}, tr.SupportedLanguages())

	doc, err := page.NewDocument(dom.WithLocalizer(dom.TranslatorLocalizer(tr, "ru")))
	require.NoError(t, err)
	p, err := page.New(doc, nil, page.WithTranslator(tr, "en"))
	require.NoError(t, err)
	defer p.Close()

	p.Do(func(doc *dom.Document) {
		doc.QuerySelector(".profile__add-button").Click()
		doc.GetElementByID("place-name-input").Input("")
		assert.Equal(t, "Вы пропустили это поле.", doc.QuerySelector(".place-name-input-error").TextContent())

		doc.GetElementByID("place-name-input").Input("Б")
		msg := doc.QuerySelector(".place-name-input-error").TextContent()
		assert.True(t, strings.Contains(msg, "2") && strings.Contains(msg, "1"), msg)
	})
}

// blockingAPI answers nothing until the request context is done.
type blockingAPI struct {
	page.API
}

func (blockingAPI) AddCard(ctx context.Context, _, _ string) (mesto.Card, error) {
	<-ctx.Done()
	return mesto.Card{}, ctx.Err()
}

func (blockingAPI) SetUserAvatar(ctx context.Context, _ string) (mesto.User, error) {
	<-ctx.Done()
	return mesto.User{}, ctx.Err()
}

func TestLabels(t *testing.T) {
	tr, err := page.NewTranslator(context.Background())
	require.NoError(t, err)

	tests := []struct {
		name string
		opts []page.Option
		want string
	}{
		{"default", nil, "Создание..."},
		{"translated", []page.Option{page.WithTranslator(tr, "en")}, "Creating..."},
		{"custom", []page.Option{page.WithLabels(page.Labels{Creating: "..."})}, "..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := page.NewDocument()
			require.NoError(t, err)
			p, err := page.New(doc, blockingAPI{}, tt.opts...)
			require.NoError(t, err)

			p.Do(func(doc *dom.Document) {
				doc.QuerySelector(".profile__add-button").Click()
				doc.GetElementByID("place-name-input").Input("Байкал")
				doc.GetElementByID("link-input").Input("https://example.com/baikal.jpg")
				submitButton(doc, ".popup_type_new-card").Click()
				assert.Equal(t, tt.want, submitButton(doc, ".popup_type_new-card").TextContent())
			})

			p.Close()
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			require.NoError(t, p.Wait(ctx))
			p.Do(func(doc *dom.Document) {
				assert.Equal(t, "Создать", submitButton(doc, ".popup_type_new-card").TextContent())
			})
		})
	}
}

func TestCloseDuringRequest(t *testing.T) {
	doc, err := page.NewDocument()
	require.NoError(t, err)
	p, err := page.New(doc, blockingAPI{})
	require.NoError(t, err)

	p.Do(func(doc *dom.Document) {
		doc.QuerySelector(".profile__image").Click()
		doc.GetElementByID("avatar-input").Input("https://example.com/me.png")
		submitButton(doc, ".popup_type_edit-avatar").Click()
		assert.Equal(t, "Сохранение...", submitButton(doc, ".popup_type_edit-avatar").TextContent())
	})

	p.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, p.Wait(ctx))

	p.Do(func(doc *dom.Document) {
		assert.Equal(t, "Сохранить", submitButton(doc, ".popup_type_edit-avatar").TextContent())
		assert.Empty(t, doc.GetElementByID("avatar-input").Value(), "form is reset")
		assert.True(t, submitButton(doc, ".popup_type_edit-avatar").Disabled())
		assert.True(t, doc.QuerySelector(".popup_type_edit-avatar").HasClass(modal.OpenedClass), "result is dropped")
	})
}

func TestClose(t *testing.T) {
	f := setup(t)
	f.page.Close()

	f.page.Do(func(doc *dom.Document) {
		doc.QuerySelector(".profile__edit-button").Click()
		assert.False(t, doc.QuerySelector(".popup_type_edit").HasClass(modal.OpenedClass))
	})
}

func TestRender(t *testing.T) {
	f := setup(t)
	var b strings.Builder
	require.NoError(t, f.page.Render(&b))
	assert.Contains(t, b.String(), f.fake.User().Name)
	assert.Contains(t, b.String(), `class="places__item card"`)
}
