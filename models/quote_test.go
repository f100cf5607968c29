package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuote_AddResponseFlipsStatus(t *testing.T) {
	q := Quote{ID: "q1", Status: QuoteOpen}

	require.NoError(t, q.AddResponse(Response{VendorID: "v1", Price: 4500}))
	assert.Equal(t, QuoteResponded, q.Status)
	assert.Len(t, q.Responses, 1)

	err := q.AddResponse(Response{VendorID: "v1", Price: 100})
	assert.ErrorIs(t, err, ErrDuplicateResponse)
	assert.Len(t, q.Responses, 1)

	require.NoError(t, q.AddResponse(Response{VendorID: "v2", Price: 4300}))
	assert.Equal(t, QuoteResponded, q.Status)
	assert.Len(t, q.Responses, 2)
}

func TestQuote_AddResponseRejectsClosed(t *testing.T) {
	q := Quote{ID: "q1", Status: QuoteClosed}
	assert.ErrorIs(t, q.AddResponse(Response{VendorID: "v1"}), ErrQuoteClosed)
}

func TestQuote_ReviseResponseKeepsHistory(t *testing.T) {
	q := Quote{ID: "q1", Status: QuoteOpen}
	require.NoError(t, q.AddResponse(Response{VendorID: "v1", Price: 4500, Message: "first"}))

	t1 := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	r, err := q.ReviseResponse("v1", ResponseInput{Price: 4200, Message: "second"}, t1)
	require.NoError(t, err)
	assert.Equal(t, 4200.0, r.Price)
	require.Len(t, r.History, 1)
	assert.Equal(t, 4500.0, r.History[0].Price)
	assert.Equal(t, "first", r.History[0].Message)
	assert.Equal(t, t1, r.History[0].ArchivedAt)
	require.NotNil(t, r.UpdatedAt)

	t2 := t1.Add(time.Hour)
	r, err = q.ReviseResponse("v1", ResponseInput{Price: 4000, Message: "third"}, t2)
	require.NoError(t, err)
	require.Len(t, r.History, 2)
	assert.Equal(t, 4500.0, r.History[0].Price)
	assert.Equal(t, 4200.0, r.History[1].Price)
	assert.Equal(t, 4000.0, q.Responses[0].Price)

	_, err = q.ReviseResponse("nobody", ResponseInput{Price: 1}, t2)
	assert.ErrorIs(t, err, ErrResponseNotFound)
}

func TestQuoteFilter_Matches(t *testing.T) {
	day := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	q := Quote{BuyerID: "b1", CreatedAt: day}

	assert.True(t, QuoteFilter{}.Matches(q))
	assert.True(t, QuoteFilter{BuyerID: "b1"}.Matches(q))
	assert.False(t, QuoteFilter{BuyerID: "b2"}.Matches(q))
	assert.True(t, QuoteFilter{From: day.Add(-time.Hour), To: day.Add(time.Hour)}.Matches(q))
	assert.False(t, QuoteFilter{From: day.Add(time.Hour)}.Matches(q))
	assert.False(t, QuoteFilter{To: day.Add(-time.Hour)}.Matches(q))
}

func TestUser_Summary(t *testing.T) {
	s := User{UID: "u1", Role: RoleVendor, Disabled: true}.Summary()
	assert.Equal(t, PlanFree, s.Plan)
	assert.Equal(t, UserStatusBlocked, s.Status)
	assert.Nil(t, s.CreatedAt)

	s = User{UID: "u2", Plan: PlanPro, CreatedAt: time.Now()}.Summary()
	assert.Equal(t, PlanPro, s.Plan)
	assert.Equal(t, UserStatusActive, s.Status)
	assert.NotNil(t, s.CreatedAt)
}
