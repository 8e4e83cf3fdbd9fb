// Package card renders gallery cards from the page's card template.
package card

import (
	"strconv"

	"github.com/dmitrymomot/mesto/pkg/dom"
	"github.com/dmitrymomot/mesto/pkg/mesto"
)

// Class names of the card template.
const (
	Selector           = ".card"
	ImageSelector      = ".card__image"
	TitleSelector      = ".card__title"
	LikeButtonSelector = ".card__like-button"
	LikeCountSelector  = ".card__like-count"
	DeleteSelector     = ".card__control-button_type_delete"
	LikeActiveClass    = "card__like-button_is-active"
)

// IDAttr holds the card id on the rendered element.
const IDAttr = "data-card-id"

// Handlers receive the user actions of a card. Nil handlers are skipped.
type Handlers struct {
	// Preview is called with the card name and image link on image click.
	Preview func(name, link string)
	// LikeToggle is called on like click; likedNow is the state shown before
	// the click.
	LikeToggle func(cardID string, likedNow bool, likeButton, likeCount *dom.Element)
	// Delete is called on delete click with the card element.
	Delete func(cardID string, cardEl *dom.Element)
}

// New clones the card element of template and fills it from data for the
// user with id userID. The delete button is kept only on the user's own cards.
// It returns nil when template holds no card element.
func New(template *dom.Element, data mesto.Card, userID string, h Handlers) *dom.Element {
	if template == nil {
		return nil
	}
	content := template.Content()
	if content == nil {
		content = template
	}
	src := content.QuerySelector(Selector)
	if src == nil {
		return nil
	}
	el := src.Clone()
	el.SetAttr(IDAttr, data.ID)

	image := el.QuerySelector(ImageSelector)
	title := el.QuerySelector(TitleSelector)
	likeButton := el.QuerySelector(LikeButtonSelector)
	likeCount := el.QuerySelector(LikeCountSelector)
	deleteButton := el.QuerySelector(DeleteSelector)

	if image != nil {
		image.SetAttr("src", data.Link)
		image.SetAttr("alt", data.Name)
		if h.Preview != nil {
			image.AddEventListener(dom.EventClick, func(*dom.Event) {
				h.Preview(data.Name, data.Link)
			})
		}
	}
	if title != nil {
		title.SetTextContent(data.Name)
	}
	Update(likeButton, likeCount, data, userID)

	if likeButton != nil && h.LikeToggle != nil {
		likeButton.AddEventListener(dom.EventClick, func(*dom.Event) {
			h.LikeToggle(data.ID, likeButton.HasClass(LikeActiveClass), likeButton, likeCount)
		})
	}

	if deleteButton != nil {
		if !data.OwnedBy(userID) {
			deleteButton.Remove()
		} else if h.Delete != nil {
			deleteButton.AddEventListener(dom.EventClick, func(*dom.Event) {
				h.Delete(data.ID, el)
			})
		}
	}

	return el
}

// Find returns the rendered card with the given id inside root, or nil.
func Find(root *dom.Element, id string) *dom.Element {
	if root == nil || id == "" {
		return nil
	}
	for _, el := range root.QuerySelectorAll(Selector) {
		if el.Attr(IDAttr) == id {
			return el
		}
	}
	return nil
}

// IsLikedBy reports whether likes contains the user with id userID.
func IsLikedBy(likes []mesto.User, userID string) bool {
	return mesto.Card{Likes: likes}.LikedBy(userID)
}

// Update shows the like state of data: the active class when the user likes
// the card and the number of likes. Nil elements are skipped.
func Update(likeButton, likeCount *dom.Element, data mesto.Card, userID string) {
	if likeButton != nil {
		likeButton.ToggleClass(LikeActiveClass, data.LikedBy(userID))
	}
	if likeCount != nil {
		likeCount.SetTextContent(strconv.Itoa(len(data.Likes)))
	}
}
