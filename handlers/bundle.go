package handlers

import (
	"quotecompare/middleware"
)

// HandlerBundle groups the endpoint handlers and the middleware they share.
type HandlerBundle struct {
	Authenticator *middleware.Authenticator
	Metrics       *middleware.Metrics

	QuoteHandler  *QuoteHandler
	AdminHandler  *AdminHandler
	HealthHandler *HealthHandler
}
