package admin

import (
	"context"
	"fmt"
	"strings"
	"time"

	"quotecompare/models"
)

// Mock plan pricing until a payments ledger exists.
var planRevenue = map[string]int{
	models.PlanBasic: 99,
	models.PlanPro:   199,
}

// PlatformStats scans every user and quote on each call.
func (a *DefaultAdminService) PlatformStats(ctx context.Context) (*models.PlatformStats, error) {
	users, err := a.Users.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}
	quotes, err := a.Quotes.List(ctx, models.QuoteFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch quotes: %w", err)
	}

	stats := &models.PlatformStats{TotalUsers: len(users), TotalQuotes: len(quotes)}
	for _, u := range users {
		// Every non-vendor counts as a buyer; admins are also broken out.
		if u.Role == models.RoleVendor {
			stats.Vendors++
		} else {
			stats.Buyers++
		}
		if u.Role == models.RoleAdmin {
			stats.Admins++
		}
		stats.Revenue += planRevenue[u.Plan]
	}
	for _, q := range quotes {
		if q.Status == models.QuoteResponded {
			stats.CompletedQuotes++
		}
	}
	return stats, nil
}

// UserStats computes a user's activity between start and end. Empty bounds
// mean the epoch and now; end always extends to the last millisecond of its day.
func (a *DefaultAdminService) UserStats(ctx context.Context, uid, start, end string) (*models.UserStats, error) {
	user, err := a.Users.GetByID(ctx, uid)
	if err != nil {
		return nil, err
	}

	from := time.Unix(0, 0).UTC()
	if start != "" {
		if from, err = parseDate(start); err != nil {
			return nil, err
		}
	}
	to := a.Now().UTC()
	if end != "" {
		if to, err = parseDate(end); err != nil {
			return nil, err
		}
	}
	to = endOfDay(to)

	out := &models.UserStats{UID: uid, Role: user.Role, Start: from, End: to}
	switch user.Role {
	case models.RoleBuyer:
		quotes, err := a.Quotes.List(ctx, models.QuoteFilter{BuyerID: uid, From: from, To: to})
		if err != nil {
			return nil, fmt.Errorf("failed to fetch quotes: %w", err)
		}
		out.Metrics.RequestsSent = len(quotes)
		for _, q := range quotes {
			out.Metrics.QuotesReceived += len(q.Responses)
		}
	case models.RoleVendor:
		quotes, err := a.Quotes.List(ctx, models.QuoteFilter{From: from, To: to})
		if err != nil {
			return nil, fmt.Errorf("failed to fetch quotes: %w", err)
		}
		for i := range quotes {
			if quotes[i].HasResponseFrom(uid) {
				out.Metrics.QuotesResponded++
			}
			if quotes[i].Status == models.QuoteOpen {
				out.Metrics.LeadsAvailableInPeriod++
			}
		}
	}
	return out, nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"2006-01-02", time.RFC3339Nano} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%q: %w", s, ErrInvalidDate)
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}
