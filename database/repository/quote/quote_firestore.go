package quoteRepo

import (
	"context"
	"fmt"
	"time"

	"quotecompare/config"
	"quotecompare/models"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FirestoreQuoteRepo implements QuoteRepository using Cloud Firestore.
type FirestoreQuoteRepo struct {
	client *firestore.Client
	coll   *firestore.CollectionRef
}

// NewFirestoreQuoteRepo creates a QuoteRepository backed by the quotes collection.
func NewFirestoreQuoteRepo(client *firestore.Client) QuoteRepository {
	return &FirestoreQuoteRepo{client: client, coll: client.Collection(config.QuotesCollection)}
}

func (r *FirestoreQuoteRepo) Create(ctx context.Context, q *models.Quote) error {
	ref := r.coll.NewDoc()
	if _, err := ref.Create(ctx, q); err != nil {
		return fmt.Errorf("failed to create quote: %w", err)
	}
	q.ID = ref.ID
	return nil
}

func (r *FirestoreQuoteRepo) GetByID(ctx context.Context, id string) (*models.Quote, error) {
	snap, err := r.coll.Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, models.ErrQuoteNotFound
		}
		return nil, fmt.Errorf("failed to fetch quote %s: %w", id, err)
	}
	return decodeQuote(snap)
}

// List filters server-side and orders in memory, avoiding a composite index
// on (buyerId, createdAt).
func (r *FirestoreQuoteRepo) List(ctx context.Context, filter models.QuoteFilter) ([]models.Quote, error) {
	query := r.coll.Query
	if filter.BuyerID != "" {
		query = query.Where("buyerId", "==", filter.BuyerID)
	}
	iter := query.Documents(ctx)
	defer iter.Stop()

	quotes := []models.Quote{}
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list quotes: %w", err)
		}
		q, err := decodeQuote(snap)
		if err != nil {
			return nil, err
		}
		if filter.Matches(*q) {
			quotes = append(quotes, *q)
		}
	}
	sortNewestFirst(quotes)
	return quotes, nil
}

func (r *FirestoreQuoteRepo) AppendResponse(ctx context.Context, id string, resp models.Response) (*models.Quote, error) {
	ref := r.coll.Doc(id)
	var updated *models.Quote
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		q, err := getInTx(tx, ref)
		if err != nil {
			return err
		}
		if err := q.AddResponse(resp); err != nil {
			return err
		}
		updated = q
		return tx.Update(ref, responseUpdates(q))
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *FirestoreQuoteRepo) ReviseResponse(ctx context.Context, id, vendorID string, in models.ResponseInput, at time.Time) (*models.Response, error) {
	ref := r.coll.Doc(id)
	var revised *models.Response
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		q, err := getInTx(tx, ref)
		if err != nil {
			return err
		}
		resp, err := q.ReviseResponse(vendorID, in, at)
		if err != nil {
			return err
		}
		revised = resp
		return tx.Update(ref, responseUpdates(q))
	})
	if err != nil {
		return nil, err
	}
	return revised, nil
}

// responseUpdates limits response writes to the fields they change, leaving
// any other document fields untouched.
func responseUpdates(q *models.Quote) []firestore.Update {
	return []firestore.Update{
		{Path: "responses", Value: q.Responses},
		{Path: "status", Value: q.Status},
	}
}

func getInTx(tx *firestore.Transaction, ref *firestore.DocumentRef) (*models.Quote, error) {
	snap, err := tx.Get(ref)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, models.ErrQuoteNotFound
		}
		return nil, fmt.Errorf("failed to read quote %s: %w", ref.ID, err)
	}
	return decodeQuote(snap)
}

func decodeQuote(snap *firestore.DocumentSnapshot) (*models.Quote, error) {
	var q models.Quote
	if err := snap.DataTo(&q); err != nil {
		return nil, fmt.Errorf("failed to decode quote %s: %w", snap.Ref.ID, err)
	}
	q.ID = snap.Ref.ID
	return &q, nil
}
