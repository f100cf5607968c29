package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"quotecompare/handlers/mocks"
	"quotecompare/models"
	"quotecompare/services/quote"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var testVendor = &models.AuthUser{UID: "v1", Name: "Acme", Role: models.RoleVendor}

// withUser stands in for the auth middleware.
func withUser(u *models.AuthUser) gin.HandlerFunc {
	return func(c *gin.Context) {
		if u != nil {
			c.Set("authUser", u)
		}
		c.Next()
	}
}

func serve(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestQuoteHandler_CreateQuote(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("invalid json", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		h := NewQuoteHandler(mocks.NewMockQuoteService(ctrl))
		r := gin.New()
		r.POST("/api/quotes", h.CreateQuoteHandler)

		w := serve(r, http.MethodPost, "/api/quotes", "{")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed email", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := mocks.NewMockQuoteService(ctrl)
		svc.EXPECT().CreateQuote(gomock.Any(), gomock.Any(), gomock.Nil()).Return(nil, quote.ErrInvalidContactEmail)
		h := NewQuoteHandler(svc)
		r := gin.New()
		r.POST("/api/quotes", h.CreateQuoteHandler)

		w := serve(r, http.MethodPost, "/api/quotes", `{"serviceType":"solar","email":"not-an-email"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "not a valid email")
	})

	t.Run("guest without email", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := mocks.NewMockQuoteService(ctrl)
		svc.EXPECT().CreateQuote(gomock.Any(), gomock.Any(), gomock.Nil()).Return(nil, quote.ErrContactEmailRequired)
		h := NewQuoteHandler(svc)
		r := gin.New()
		r.POST("/api/quotes", h.CreateQuoteHandler)

		w := serve(r, http.MethodPost, "/api/quotes", `{"serviceType":"solar"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "contact email is required")
	})

	t.Run("created", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := mocks.NewMockQuoteService(ctrl)
		svc.EXPECT().
			CreateQuote(gomock.Any(), models.QuoteRequest{ServiceType: "solar", PostalCode: "3000", Details: "6.6kW system", Email: "a@example.com"}, gomock.Nil()).
			Return(&models.Quote{ID: "q1", Status: models.QuoteOpen}, nil)
		h := NewQuoteHandler(svc)
		r := gin.New()
		r.POST("/api/quotes", h.CreateQuoteHandler)

		w := serve(r, http.MethodPost, "/api/quotes", `{"serviceType":"solar","postalCode":"3000","details":"6.6kW system","email":"a@example.com"}`)
		require.Equal(t, http.StatusCreated, w.Code)
		var got models.Quote
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, "q1", got.ID)
	})

	t.Run("store failure is generic", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := mocks.NewMockQuoteService(ctrl)
		svc.EXPECT().CreateQuote(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("disk full"))
		h := NewQuoteHandler(svc)
		r := gin.New()
		r.POST("/api/quotes", h.CreateQuoteHandler)

		w := serve(r, http.MethodPost, "/api/quotes", `{"email":"a@example.com"}`)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "disk full")
	})
}

func TestQuoteHandler_Respond(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		body   string
		err    error
		status int
	}{
		{"missing price", `{"message":"hi"}`, nil, http.StatusBadRequest},
		{"negative price", `{"price":-5}`, nil, http.StatusBadRequest},
		{"not found", `{"price":100}`, models.ErrQuoteNotFound, http.StatusNotFound},
		{"duplicate", `{"price":100}`, models.ErrDuplicateResponse, http.StatusConflict},
		{"closed", `{"price":100}`, models.ErrQuoteClosed, http.StatusConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc := mocks.NewMockQuoteService(ctrl)
			if tt.err != nil {
				svc.EXPECT().RespondToQuote(gomock.Any(), "q1", *testVendor, gomock.Any()).Return(nil, tt.err)
			}
			h := NewQuoteHandler(svc)
			r := gin.New()
			r.POST("/api/quotes/:id/respond", withUser(testVendor), h.RespondHandler)

			w := serve(r, http.MethodPost, "/api/quotes/q1/respond", tt.body)
			assert.Equal(t, tt.status, w.Code)
		})
	}

	t.Run("ok", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := mocks.NewMockQuoteService(ctrl)
		svc.EXPECT().
			RespondToQuote(gomock.Any(), "q1", *testVendor, models.ResponseInput{Price: 4500, Message: "hi"}).
			Return(&models.Response{VendorID: "v1", Price: 4500}, nil)
		h := NewQuoteHandler(svc)
		r := gin.New()
		r.POST("/api/quotes/:id/respond", withUser(testVendor), h.RespondHandler)

		w := serve(r, http.MethodPost, "/api/quotes/q1/respond", `{"price":4500,"message":"hi"}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"message":"Quote response submitted"`)
		assert.Contains(t, w.Body.String(), `"vendorId":"v1"`)
	})
}

func TestQuoteHandler_UpdateResponse(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockQuoteService(ctrl)
	svc.EXPECT().UpdateResponse(gomock.Any(), "q1", *testVendor, gomock.Any()).Return(nil, models.ErrResponseNotFound)
	h := NewQuoteHandler(svc)
	r := gin.New()
	r.PUT("/api/quotes/:id/respond", withUser(testVendor), h.UpdateResponseHandler)

	w := serve(r, http.MethodPut, "/api/quotes/q1/respond", `{"price":10}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestQuoteHandler_ListAndGet(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockQuoteService(ctrl)
	buyer := &models.AuthUser{UID: "b1", Role: models.RoleBuyer}
	svc.EXPECT().ListQuotes(gomock.Any(), *buyer).Return([]models.Quote{{ID: "q1", BuyerID: "b1"}}, nil)
	svc.EXPECT().GetQuote(gomock.Any(), "missing").Return(nil, models.ErrQuoteNotFound)
	h := NewQuoteHandler(svc)
	r := gin.New()
	r.GET("/api/quotes", withUser(buyer), h.ListQuotesHandler)
	r.GET("/api/quotes/:id", h.GetQuoteHandler)

	w := serve(r, http.MethodGet, "/api/quotes", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"buyerId":"b1"`)

	w = serve(r, http.MethodGet, "/api/quotes/missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"quote not found"}`, w.Body.String())
}
