package quoteRepo

import (
	"context"
	"path/filepath"
	"time"

	"quotecompare/database"
	"quotecompare/models"

	"github.com/google/uuid"
)

// LocalQuoteRepo implements QuoteRepository on a JSON file holding every quote.
type LocalQuoteRepo struct {
	file *database.JSONFile[models.Quote]
}

// NewLocalQuoteRepo opens (or creates) quotes.json under dir.
func NewLocalQuoteRepo(dir string) (*LocalQuoteRepo, error) {
	file, err := database.NewJSONFile[models.Quote](filepath.Join(dir, "quotes.json"))
	if err != nil {
		return nil, err
	}
	return &LocalQuoteRepo{file: file}, nil
}

func (r *LocalQuoteRepo) Create(_ context.Context, q *models.Quote) error {
	q.ID = models.LocalIDPrefix + uuid.NewString()
	return r.file.Update(func(quotes []models.Quote) ([]models.Quote, error) {
		return append(quotes, *q), nil
	})
}

func (r *LocalQuoteRepo) GetByID(_ context.Context, id string) (*models.Quote, error) {
	quotes, err := r.file.Read()
	if err != nil {
		return nil, err
	}
	for i := range quotes {
		if quotes[i].ID == id {
			return &quotes[i], nil
		}
	}
	return nil, models.ErrQuoteNotFound
}

func (r *LocalQuoteRepo) List(_ context.Context, filter models.QuoteFilter) ([]models.Quote, error) {
	quotes, err := r.file.Read()
	if err != nil {
		return nil, err
	}
	out := []models.Quote{}
	for _, q := range quotes {
		if filter.Matches(q) {
			out = append(out, q)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *LocalQuoteRepo) AppendResponse(_ context.Context, id string, resp models.Response) (*models.Quote, error) {
	var updated models.Quote
	err := r.file.Update(func(quotes []models.Quote) ([]models.Quote, error) {
		i := indexOf(quotes, id)
		if i < 0 {
			return nil, models.ErrQuoteNotFound
		}
		if err := quotes[i].AddResponse(resp); err != nil {
			return nil, err
		}
		updated = quotes[i]
		return quotes, nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *LocalQuoteRepo) ReviseResponse(_ context.Context, id, vendorID string, in models.ResponseInput, at time.Time) (*models.Response, error) {
	var revised *models.Response
	err := r.file.Update(func(quotes []models.Quote) ([]models.Quote, error) {
		i := indexOf(quotes, id)
		if i < 0 {
			return nil, models.ErrQuoteNotFound
		}
		resp, err := quotes[i].ReviseResponse(vendorID, in, at)
		if err != nil {
			return nil, err
		}
		revised = resp
		return quotes, nil
	})
	if err != nil {
		return nil, err
	}
	return revised, nil
}

func indexOf(quotes []models.Quote, id string) int {
	for i := range quotes {
		if quotes[i].ID == id {
			return i
		}
	}
	return -1
}
