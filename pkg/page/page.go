package page

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/dmitrymomot/mesto/pkg/async"
	"github.com/dmitrymomot/mesto/pkg/dom"
	"github.com/dmitrymomot/mesto/pkg/logger"
	"github.com/dmitrymomot/mesto/pkg/mesto"
	"github.com/dmitrymomot/mesto/pkg/modal"
	"github.com/dmitrymomot/mesto/pkg/validation"
)

// API is the part of the Mesto service the page uses. *mesto.Client
// implements it.
type API interface {
	GetUserInfo(ctx context.Context) (mesto.User, error)
	GetCardList(ctx context.Context) ([]mesto.Card, error)
	SetUserInfo(ctx context.Context, name, about string) (mesto.User, error)
	SetUserAvatar(ctx context.Context, avatar string) (mesto.User, error)
	AddCard(ctx context.Context, name, link string) (mesto.Card, error)
	DeleteCard(ctx context.Context, id string) error
	ChangeLikeCardStatus(ctx context.Context, id string, isLiked bool) (mesto.Card, error)
}

// Session identifies the user the page shows. It is set by Load.
type Session struct {
	UserID string
}

// Page is the controller of one gallery document.
type Page struct {
	mu      sync.Mutex
	doc     *dom.Document
	api     API
	cfg     validation.Config
	labels  Labels
	logger  *slog.Logger
	onError ErrorHook

	session     Session
	modals      *modal.Controller
	validator   *validation.Validator
	requests    async.Group
	ctx         context.Context
	cancel      context.CancelFunc
	el          elements
	unsubscribe []func()
}

type elements struct {
	places       *dom.Element
	cardTemplate *dom.Element

	title       *dom.Element
	description *dom.Element
	avatar      *dom.Element
	editButton  *dom.Element
	addButton   *dom.Element

	profilePopup *dom.Element
	profileForm  *dom.Element
	nameInput    *dom.Element
	aboutInput   *dom.Element

	cardPopup *dom.Element
	cardForm  *dom.Element
	placeName *dom.Element
	placeLink *dom.Element

	avatarPopup *dom.Element
	avatarForm  *dom.Element
	avatarInput *dom.Element

	imagePopup *dom.Element
	image      *dom.Element
	caption    *dom.Element
}

// New wires doc to api. Every element the page drives must be present,
// otherwise ErrElementNotFound lists the missing selectors.
func New(doc *dom.Document, api API, opts ...Option) (*Page, error) {
	p := &Page{
		doc:    doc,
		api:    api,
		cfg:    validation.DefaultConfig(),
		labels: DefaultLabels(),
		logger: logger.Discard(),
		modals: modal.New(doc),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.With(logger.Component("page"))

	if err := p.resolve(); err != nil {
		return nil, err
	}

	p.ctx, p.cancel = context.WithCancel(context.Background())
	p.validator = validation.Enable(doc.ValidationRoot(), p.cfg, validation.WithLogger(p.logger))
	p.listen()
	return p, nil
}

// finder collects the selectors that matched nothing.
type finder struct {
	missing []string
}

type querier interface {
	QuerySelector(selector string) *dom.Element
}

func (f *finder) find(root querier, selector string) *dom.Element {
	if root == nil || root == (*dom.Element)(nil) {
		f.missing = append(f.missing, selector)
		return nil
	}
	el := root.QuerySelector(selector)
	if el == nil {
		f.missing = append(f.missing, selector)
	}
	return el
}

func (p *Page) resolve() error {
	var f finder
	d := p.doc
	e := &p.el

	e.places = f.find(d, ".places__list")
	e.cardTemplate = f.find(d, "#card-template")

	e.title = f.find(d, ".profile__title")
	e.description = f.find(d, ".profile__description")
	e.avatar = f.find(d, ".profile__image")
	e.editButton = f.find(d, ".profile__edit-button")
	e.addButton = f.find(d, ".profile__add-button")

	e.profilePopup = f.find(d, ".popup_type_edit")
	e.profileForm = f.find(e.profilePopup, p.cfg.FormSelector)
	e.nameInput = f.find(e.profileForm, ".popup__input_type_name")
	e.aboutInput = f.find(e.profileForm, ".popup__input_type_description")

	e.cardPopup = f.find(d, ".popup_type_new-card")
	e.cardForm = f.find(e.cardPopup, p.cfg.FormSelector)
	e.placeName = f.find(e.cardForm, ".popup__input_type_card-name")
	e.placeLink = f.find(e.cardForm, ".popup__input_type_url")

	e.avatarPopup = f.find(d, ".popup_type_edit-avatar")
	e.avatarForm = f.find(e.avatarPopup, p.cfg.FormSelector)
	e.avatarInput = f.find(e.avatarForm, p.cfg.InputSelector)

	e.imagePopup = f.find(d, ".popup_type_image")
	e.image = f.find(e.imagePopup, ".popup__image")
	e.caption = f.find(e.imagePopup, ".popup__caption")

	if len(f.missing) > 0 {
		return fmt.Errorf("%w: %s", ErrElementNotFound, strings.Join(f.missing, ", "))
	}
	return nil
}

func (p *Page) listen() {
	e := &p.el
	p.on(e.profileForm, dom.EventSubmit, p.submitProfile)
	p.on(e.cardForm, dom.EventSubmit, p.submitCard)
	p.on(e.avatarForm, dom.EventSubmit, p.submitAvatar)
	p.on(e.editButton, dom.EventClick, func(*dom.Event) { p.openProfile() })
	p.on(e.addButton, dom.EventClick, func(*dom.Event) { p.openCardForm() })
	p.on(e.avatar, dom.EventClick, func(*dom.Event) { p.openAvatar() })

	for _, popup := range p.doc.QuerySelectorAll(".popup") {
		p.unsubscribe = append(p.unsubscribe, p.modals.SetCloseListeners(popup))
	}
}

func (p *Page) on(el *dom.Element, eventType string, fn dom.Listener) {
	p.unsubscribe = append(p.unsubscribe, el.AddEventListener(eventType, fn))
}

// Load fetches the profile and the card list concurrently and renders both
// once both have arrived. The card list is replaced. On failure nothing is
// rendered. Load takes the page lock and must not be called from Do.
func (p *Page) Load(ctx context.Context) error {
	user := async.GoIn(ctx, &p.requests, p.api.GetUserInfo)
	cards := async.GoIn(ctx, &p.requests, p.api.GetCardList)

	u, list, err := async.Join2(ctx, user, cards)
	if err != nil {
		p.mu.Lock()
		defer p.mu.Unlock()
		p.fail(ctx, "load", err)
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.session = Session{UserID: u.ID}
	p.renderProfile(u)
	p.el.places.Clear()
	for _, c := range list {
		if el := p.newCard(c); el != nil {
			p.el.places.Append(el)
		}
	}

	p.logger.InfoContext(ctx, "page loaded", logger.UserID(u.ID), slog.Int("cards", len(list)))
	return nil
}

// Do runs fn under the page lock. User interaction with the document, such as
// clicks and typing, belongs in fn.
func (p *Page) Do(fn func(doc *dom.Document)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fn(p.doc)
}

// Wait blocks until every request started so far has completed and its
// result has been applied, or ctx is done.
func (p *Page) Wait(ctx context.Context) error {
	return p.requests.Wait(ctx)
}

func (p *Page) Session() Session {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.session
}

// Render writes the current document.
func (p *Page) Render(w io.Writer) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.doc.Render(w)
}

// Close cancels requests in flight and removes every listener the page
// added. Results that arrive afterwards are dropped.
func (p *Page) Close() {
	p.cancel()
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, unsubscribe := range p.unsubscribe {
		unsubscribe()
	}
	p.unsubscribe = nil
	p.validator.Close()
}

// fail logs err once and reports it to the error hook. The lock is held.
func (p *Page) fail(ctx context.Context, op string, err error) {
	p.logger.ErrorContext(ctx, "request failed", logger.Operation(op), logger.Error(err))
	if p.onError != nil {
		p.onError(op, err)
	}
}

// request runs call on its own goroutine. When it returns, apply or fail runs
// under the page lock, followed by finally. Nothing is retried. The wrapper
// runs even when the page is already closed, so finally always runs; call
// still sees the cancellation.
func request[T any](p *Page, op string, call func(context.Context) (T, error), apply func(T), finally func()) {
	async.GoIn(context.WithoutCancel(p.ctx), &p.requests, func(context.Context) (struct{}, error) {
		ctx := p.ctx
		result, err := call(ctx)

		p.mu.Lock()
		defer p.mu.Unlock()
		if finally != nil {
			defer finally()
		}
		if p.ctx.Err() != nil {
			return struct{}{}, ErrClosed
		}
		if err != nil {
			p.fail(ctx, op, err)
			return struct{}{}, err
		}
		apply(result)
		return struct{}{}, nil
	})
}
