package quoteRepo

import (
	"testing"

	"quotecompare/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseUpdatesTouchOnlyResponsesAndStatus(t *testing.T) {
	q := &models.Quote{ID: "q1", BuyerID: "b1", Details: "6.6kW system", Status: models.QuoteOpen}
	require.NoError(t, q.AddResponse(models.Response{VendorID: "v1", Price: 4500}))

	updates := responseUpdates(q)
	require.Len(t, updates, 2)

	paths := map[string]interface{}{}
	for _, u := range updates {
		paths[u.Path] = u.Value
	}
	assert.Equal(t, q.Responses, paths["responses"])
	assert.Equal(t, models.QuoteResponded, paths["status"])
}
