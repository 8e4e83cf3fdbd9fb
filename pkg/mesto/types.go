package mesto

import (
	"slices"
	"time"
)

type User struct {
	ID     string `json:"_id"`
	Name   string `json:"name"`
	About  string `json:"about"`
	Avatar string `json:"avatar"`
	Cohort string `json:"cohort,omitempty"`
}

type Card struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Link      string    `json:"link"`
	Owner     User      `json:"owner"`
	Likes     []User    `json:"likes"`
	CreatedAt time.Time `json:"createdAt"`
}

// LikedBy reports whether the user with id userID is among the likers.
func (c Card) LikedBy(userID string) bool {
	return slices.ContainsFunc(c.Likes, func(u User) bool { return u.ID == userID })
}

// OwnedBy reports whether the card was created by the user with id userID.
func (c Card) OwnedBy(userID string) bool {
	return c.Owner.ID == userID
}

type profileUpdate struct {
	Name  string `json:"name"`
	About string `json:"about"`
}

type avatarUpdate struct {
	Avatar string `json:"avatar"`
}

type newCard struct {
	Name string `json:"name"`
	Link string `json:"link"`
}

// message is the body of error responses and of card deletion.
type message struct {
	Message string `json:"message"`
}
