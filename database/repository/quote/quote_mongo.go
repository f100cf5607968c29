package quoteRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"quotecompare/config"
	"quotecompare/models"
	"quotecompare/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const maxCASAttempts = 5

// MongoQuoteRepo implements QuoteRepository using MongoDB. Response writes use
// compare-and-swap on the revision field.
type MongoQuoteRepo struct {
	coll *mongo.Collection
}

// NewMongoQuoteRepo creates a QuoteRepository using the given database.
func NewMongoQuoteRepo(db *mongo.Database) QuoteRepository {
	repo := &MongoQuoteRepo{coll: db.Collection(config.QuotesCollection)}
	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Warn("failed to create quote indexes", zap.Error(err))
	}
	return repo
}

func newContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout)
}

func (r *MongoQuoteRepo) ensureIndexes() error {
	ctx, cancel := newContext(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "buyerId", Value: 1}, {Key: "createdAt", Value: -1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoQuoteRepo) Create(ctx context.Context, q *models.Quote) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	q.ID = primitive.NewObjectID().Hex()
	q.Revision = 1
	if _, err := r.coll.InsertOne(ctx, q); err != nil {
		return fmt.Errorf("failed to create quote: %w", err)
	}
	return nil
}

func (r *MongoQuoteRepo) GetByID(ctx context.Context, id string) (*models.Quote, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var q models.Quote
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&q); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrQuoteNotFound
		}
		return nil, fmt.Errorf("failed to fetch quote %s: %w", id, err)
	}
	return &q, nil
}

func (r *MongoQuoteRepo) List(ctx context.Context, filter models.QuoteFilter) ([]models.Quote, error) {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	query := bson.M{}
	if filter.BuyerID != "" {
		query["buyerId"] = filter.BuyerID
	}
	created := bson.M{}
	if !filter.From.IsZero() {
		created["$gte"] = filter.From
	}
	if !filter.To.IsZero() {
		created["$lte"] = filter.To
	}
	if len(created) > 0 {
		query["createdAt"] = created
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list quotes: %w", err)
	}
	defer cursor.Close(ctx)

	quotes := []models.Quote{}
	if err := cursor.All(ctx, &quotes); err != nil {
		return nil, fmt.Errorf("failed to decode quotes: %w", err)
	}
	return quotes, nil
}

func (r *MongoQuoteRepo) AppendResponse(ctx context.Context, id string, resp models.Response) (*models.Quote, error) {
	var updated *models.Quote
	err := r.compareAndSwap(ctx, id, func(q *models.Quote) error {
		if err := q.AddResponse(resp); err != nil {
			return err
		}
		updated = q
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *MongoQuoteRepo) ReviseResponse(ctx context.Context, id, vendorID string, in models.ResponseInput, at time.Time) (*models.Response, error) {
	var revised *models.Response
	err := r.compareAndSwap(ctx, id, func(q *models.Quote) error {
		resp, err := q.ReviseResponse(vendorID, in, at)
		if err != nil {
			return err
		}
		revised = resp
		return nil
	})
	if err != nil {
		return nil, err
	}
	return revised, nil
}

// compareAndSwap reads the quote, applies mutate and replaces the document only
// if its revision is unchanged, retrying a bounded number of times.
func (r *MongoQuoteRepo) compareAndSwap(ctx context.Context, id string, mutate func(q *models.Quote) error) error {
	for attempt := 0; attempt < maxCASAttempts; attempt++ {
		q, err := r.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := mutate(q); err != nil {
			return err
		}

		expected := q.Revision
		q.Revision = expected + 1

		writeCtx, cancel := newContext(ctx, 5*time.Second)
		res, err := r.coll.ReplaceOne(writeCtx, bson.M{"id": id, "revision": expected}, q)
		cancel()
		if err != nil {
			return fmt.Errorf("failed to update quote %s: %w", id, err)
		}
		if res.MatchedCount == 1 {
			return nil
		}
		utils.GetLogger().Debug("quote revision conflict, retrying",
			zap.String("quoteId", id), zap.Int("attempt", attempt+1))
	}
	return fmt.Errorf("quote %s: %w", id, ErrConcurrentUpdate)
}
