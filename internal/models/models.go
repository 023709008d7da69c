package models

import "time"

// Booking lifecycle statuses. A booking is created WAITING and is moved to
// APPROVED or REJECTED by the item owner.
const (
	StatusWaiting  = "WAITING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// State is a booking listing filter. Unlike a status it may also select a
// temporal slice relative to "now".
type State string

const (
	StateAll      State = "ALL"
	StateCurrent  State = "CURRENT"
	StatePast     State = "PAST"
	StateFuture   State = "FUTURE"
	StateWaiting  State = "WAITING"
	StateRejected State = "REJECTED"
)

type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Item struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	OwnerID     int64  `json:"ownerId"`
	RequestID   *int64 `json:"requestId,omitempty"`
}

type Booking struct {
	ID       int64     `json:"id"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	ItemID   int64     `json:"-"`
	BookerID int64     `json:"-"`
	Status   string    `json:"status"`
	Item     *Item     `json:"item,omitempty"`
	Booker   *User     `json:"booker,omitempty"`
}

type Comment struct {
	ID         int64     `json:"id"`
	Text       string    `json:"text"`
	ItemID     int64     `json:"-"`
	AuthorID   int64     `json:"-"`
	AuthorName string    `json:"authorName"`
	Created    time.Time `json:"created"`
}

type ItemRequest struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	Created     time.Time `json:"created"`
	OwnerID     int64     `json:"-"`
	Items       []Item    `json:"items"`
}

// BookingRef is the short booking view attached to an owner's item details.
type BookingRef struct {
	ID       int64     `json:"id"`
	BookerID int64     `json:"bookerId"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}

// ItemDetails is the canonical enriched item view. LastBooking and
// NextBooking are populated only when the viewer owns the item; comments are
// visible to everyone.
type ItemDetails struct {
	Item
	LastBooking *BookingRef `json:"lastBooking,omitempty"`
	NextBooking *BookingRef `json:"nextBooking,omitempty"`
	Comments    []Comment   `json:"comments"`
}
