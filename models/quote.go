// File: quotecompare/models/quote.go
package models

import (
	"strings"
	"time"
)

type QuoteStatus string

const (
	QuoteOpen      QuoteStatus = "open"
	QuoteResponded QuoteStatus = "responded"
	QuoteClosed    QuoteStatus = "closed"
)

// GuestBuyerID marks quotes submitted without an authenticated identity.
const GuestBuyerID = "guest"

// Quote is a buyer's service request. Responses are embedded, not separately addressable.
type Quote struct {
	ID           string      `json:"id" firestore:"-" bson:"id"`
	BuyerID      string      `json:"buyerId" firestore:"buyerId" bson:"buyerId"`
	ContactEmail string      `json:"contactEmail" firestore:"contactEmail" bson:"contactEmail"`
	ServiceType  string      `json:"serviceType" firestore:"serviceType" bson:"serviceType"`
	PostalCode   string      `json:"postalCode" firestore:"postalCode" bson:"postalCode"`
	Details      string      `json:"details" firestore:"details" bson:"details"`
	Status       QuoteStatus `json:"status" firestore:"status" bson:"status"`
	CreatedAt    time.Time   `json:"createdAt" firestore:"createdAt" bson:"createdAt"`
	Responses    []Response  `json:"responses" firestore:"responses" bson:"responses"`

	// Revision guards compare-and-swap writes in stores without transactions.
	Revision int64 `json:"-" firestore:"-" bson:"revision"`
}

// Response is a vendor's price submission against a quote.
type Response struct {
	VendorID   string             `json:"vendorId" firestore:"vendorId" bson:"vendorId"`
	VendorName string             `json:"vendorName" firestore:"vendorName" bson:"vendorName"`
	Price      float64            `json:"price" firestore:"price" bson:"price"`
	Message    string             `json:"message" firestore:"message" bson:"message"`
	CreatedAt  time.Time          `json:"createdAt" firestore:"createdAt" bson:"createdAt"`
	UpdatedAt  *time.Time         `json:"updatedAt,omitempty" firestore:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
	History    []ResponseRevision `json:"history,omitempty" firestore:"history,omitempty" bson:"history,omitempty"`
}

// ResponseRevision is an archived {price, message} pair from a previous edit.
type ResponseRevision struct {
	Price      float64   `json:"price" firestore:"price" bson:"price"`
	Message    string    `json:"message" firestore:"message" bson:"message"`
	ArchivedAt time.Time `json:"archivedAt" firestore:"archivedAt" bson:"archivedAt"`
}

// QuoteRequest is the submission payload for a new quote.
type QuoteRequest struct {
	ServiceType string `json:"serviceType"`
	PostalCode  string `json:"postalCode"`
	Details     string `json:"details"`
	Email       string `json:"email"`
}

// ResponseInput carries a vendor's price and message for create and edit.
type ResponseInput struct {
	Price   float64 `json:"price" binding:"required,gt=0"`
	Message string  `json:"message"`
}

// QuoteFilter narrows a listing. Zero values mean no constraint.
type QuoteFilter struct {
	BuyerID string
	From    time.Time
	To      time.Time
}

// Matches reports whether q satisfies the filter.
func (f QuoteFilter) Matches(q Quote) bool {
	if f.BuyerID != "" && q.BuyerID != f.BuyerID {
		return false
	}
	if !f.From.IsZero() && q.CreatedAt.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && q.CreatedAt.After(f.To) {
		return false
	}
	return true
}

// ResponseFrom returns the index of the vendor's response, or -1.
func (q *Quote) ResponseFrom(vendorID string) int {
	for i := range q.Responses {
		if q.Responses[i].VendorID == vendorID {
			return i
		}
	}
	return -1
}

// AddResponse appends a vendor response and marks the quote responded.
func (q *Quote) AddResponse(r Response) error {
	if q.Status == QuoteClosed {
		return ErrQuoteClosed
	}
	if q.ResponseFrom(r.VendorID) >= 0 {
		return ErrDuplicateResponse
	}
	q.Responses = append(q.Responses, r)
	q.Status = QuoteResponded
	return nil
}

// ReviseResponse archives the vendor's current price and message into its
// history and overwrites them. Concurrent edits are last-write-wins.
func (q *Quote) ReviseResponse(vendorID string, in ResponseInput, at time.Time) (*Response, error) {
	i := q.ResponseFrom(vendorID)
	if i < 0 {
		return nil, ErrResponseNotFound
	}
	r := &q.Responses[i]
	r.History = append(r.History, ResponseRevision{
		Price:      r.Price,
		Message:    r.Message,
		ArchivedAt: at,
	})
	r.Price = in.Price
	r.Message = in.Message
	r.UpdatedAt = &at
	out := *r
	return &out, nil
}

// HasResponseFrom reports whether the vendor already responded.
func (q *Quote) HasResponseFrom(vendorID string) bool {
	return q.ResponseFrom(vendorID) >= 0
}

// IsLocal reports whether the quote was created in the fallback store.
func (q *Quote) IsLocal() bool {
	return strings.HasPrefix(q.ID, LocalIDPrefix)
}

// LocalIDPrefix prefixes ids minted by the fallback file store.
const LocalIDPrefix = "local-"
