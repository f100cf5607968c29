package quoteRepo

import (
	"sort"

	"quotecompare/models"
)

func sortNewestFirst(quotes []models.Quote) {
	sort.SliceStable(quotes, func(i, j int) bool {
		return quotes[i].CreatedAt.After(quotes[j].CreatedAt)
	})
}
