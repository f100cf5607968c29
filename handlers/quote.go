package handlers

import (
	"net/http"

	"quotecompare/middleware"
	"quotecompare/models"
	"quotecompare/services/quote"

	"github.com/gin-gonic/gin"
)

// QuoteHandler serves the buyer and vendor quote endpoints.
type QuoteHandler struct {
	QuoteService quote.QuoteService
}

func NewQuoteHandler(qs quote.QuoteService) *QuoteHandler {
	return &QuoteHandler{QuoteService: qs}
}

// CreateQuoteHandler accepts submissions from guests and signed-in buyers.
func (h *QuoteHandler) CreateQuoteHandler(c *gin.Context) {
	var req models.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badInput(c, err)
		return
	}
	requester, _ := middleware.CurrentUser(c)

	q, err := h.QuoteService.CreateQuote(c.Request.Context(), req, requester)
	if err != nil {
		respondError(c, err, "Failed to create quote")
		return
	}
	c.JSON(http.StatusCreated, q)
}

func (h *QuoteHandler) ListQuotesHandler(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	quotes, err := h.QuoteService.ListQuotes(c.Request.Context(), *user)
	if err != nil {
		respondError(c, err, "Failed to fetch quotes")
		return
	}
	c.JSON(http.StatusOK, quotes)
}

// GetQuoteHandler backs public tracking links, so no identity is required.
func (h *QuoteHandler) GetQuoteHandler(c *gin.Context) {
	q, err := h.QuoteService.GetQuote(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to fetch quote")
		return
	}
	c.JSON(http.StatusOK, q)
}

func (h *QuoteHandler) RespondHandler(c *gin.Context) {
	var in models.ResponseInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badInput(c, err)
		return
	}
	vendor, _ := middleware.CurrentUser(c)

	resp, err := h.QuoteService.RespondToQuote(c.Request.Context(), c.Param("id"), *vendor, in)
	if err != nil {
		respondError(c, err, "Failed to submit response")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Quote response submitted", "response": resp})
}

func (h *QuoteHandler) UpdateResponseHandler(c *gin.Context) {
	var in models.ResponseInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badInput(c, err)
		return
	}
	vendor, _ := middleware.CurrentUser(c)

	resp, err := h.QuoteService.UpdateResponse(c.Request.Context(), c.Param("id"), *vendor, in)
	if err != nil {
		respondError(c, err, "Failed to update response")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Quote response updated", "response": resp})
}
