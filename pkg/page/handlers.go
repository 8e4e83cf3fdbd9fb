package page

import (
	"context"

	"github.com/dmitrymomot/mesto/pkg/card"
	"github.com/dmitrymomot/mesto/pkg/dom"
	"github.com/dmitrymomot/mesto/pkg/mesto"
	"github.com/dmitrymomot/mesto/pkg/validation"
)

func (p *Page) renderProfile(u mesto.User) {
	p.el.title.SetTextContent(u.Name)
	p.el.description.SetTextContent(u.About)
	p.el.avatar.SetStyle("background-image", "url("+u.Avatar+")")
}

func (p *Page) newCard(c mesto.Card) *dom.Element {
	return card.New(p.el.cardTemplate, c, p.session.UserID, card.Handlers{
		Preview:    p.preview,
		LikeToggle: p.toggleLike,
		Delete:     p.deleteCard,
	})
}

func (p *Page) openProfile() {
	e := &p.el
	e.nameInput.SetValue(e.title.TextContent())
	e.aboutInput.SetValue(e.description.TextContent())
	validation.Clear(dom.ValidationForm(e.profileForm), p.cfg)
	p.modals.Open(e.profilePopup)
}

func (p *Page) openAvatar() {
	p.el.avatarForm.Reset()
	validation.Clear(dom.ValidationForm(p.el.avatarForm), p.cfg)
	p.modals.Open(p.el.avatarPopup)
}

func (p *Page) openCardForm() {
	p.el.cardForm.Reset()
	validation.Clear(dom.ValidationForm(p.el.cardForm), p.cfg)
	p.modals.Open(p.el.cardPopup)
}

func (p *Page) preview(name, link string) {
	p.el.image.SetAttr("src", link)
	p.el.image.SetAttr("alt", name)
	p.el.caption.SetTextContent(name)
	p.modals.Open(p.el.imagePopup)
}

// resetForm restores the default values of form and recomputes its submit
// state without showing errors.
func (p *Page) resetForm(form *dom.Element) {
	form.Reset()
	validation.Clear(dom.ValidationForm(form), p.cfg)
}

// renderLoading shows label on the submit button of form and returns a
// function restoring the previous text.
func (p *Page) renderLoading(form *dom.Element, label string) func() {
	button := form.QuerySelector(p.cfg.SubmitButtonSelector)
	if button == nil {
		return func() {}
	}
	text := button.TextContent()
	button.SetTextContent(label)
	return func() { button.SetTextContent(text) }
}

func (p *Page) submitProfile(ev *dom.Event) {
	ev.PreventDefault()
	e := &p.el
	name, about := e.nameInput.Value(), e.aboutInput.Value()

	request(p, "update profile",
		func(ctx context.Context) (mesto.User, error) { return p.api.SetUserInfo(ctx, name, about) },
		func(u mesto.User) {
			e.title.SetTextContent(u.Name)
			e.description.SetTextContent(u.About)
			p.modals.Close(e.profilePopup)
		},
		p.renderLoading(e.profileForm, p.labels.Saving),
	)
}

func (p *Page) submitAvatar(ev *dom.Event) {
	ev.PreventDefault()
	e := &p.el
	link := e.avatarInput.Value()
	restore := p.renderLoading(e.avatarForm, p.labels.Saving)

	request(p, "update avatar",
		func(ctx context.Context) (mesto.User, error) { return p.api.SetUserAvatar(ctx, link) },
		func(u mesto.User) {
			e.avatar.SetStyle("background-image", "url("+u.Avatar+")")
			p.modals.Close(e.avatarPopup)
		},
		func() {
			restore()
			p.resetForm(e.avatarForm)
		},
	)
}

func (p *Page) submitCard(ev *dom.Event) {
	ev.PreventDefault()
	e := &p.el
	name, link := e.placeName.Value(), e.placeLink.Value()

	request(p, "add card",
		func(ctx context.Context) (mesto.Card, error) { return p.api.AddCard(ctx, name, link) },
		func(c mesto.Card) {
			if el := p.newCard(c); el != nil {
				e.places.Prepend(el)
			}
			p.modals.Close(e.cardPopup)
			p.resetForm(e.cardForm)
		},
		p.renderLoading(e.cardForm, p.labels.Creating),
	)
}

// toggleLike sends the like change shown before the click. Two quick clicks
// send two requests with the same direction.
func (p *Page) toggleLike(id string, likedNow bool, button, count *dom.Element) {
	request(p, "change like",
		func(ctx context.Context) (mesto.Card, error) { return p.api.ChangeLikeCardStatus(ctx, id, likedNow) },
		func(c mesto.Card) { card.Update(button, count, c, p.session.UserID) },
		nil,
	)
}

func (p *Page) deleteCard(id string, el *dom.Element) {
	request(p, "delete card",
		func(ctx context.Context) (struct{}, error) { return struct{}{}, p.api.DeleteCard(ctx, id) },
		func(struct{}) { el.Remove() },
		nil,
	)
}
