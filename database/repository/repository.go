package repository

import (
	quoteRepo "quotecompare/database/repository/quote"
	userRepo "quotecompare/database/repository/user"

	"cloud.google.com/go/firestore"
	"go.mongodb.org/mongo-driver/mongo"
)

// Re-export the QuoteRepository interface and constructors.
type QuoteRepository = quoteRepo.QuoteRepository

var (
	NewFirestoreQuoteRepo = quoteRepo.NewFirestoreQuoteRepo
	NewMongoQuoteRepo     = quoteRepo.NewMongoQuoteRepo
	NewFallbackQuoteRepo  = quoteRepo.NewFallbackQuoteRepo
)

// Re-export the UserRepository interface and constructors.
type UserRepository = userRepo.UserRepository

var (
	NewFirestoreUserRepo = userRepo.NewFirestoreUserRepo
	NewMongoUserRepo     = userRepo.NewMongoUserRepo
)

const (
	ModeFirestore = "firestore"
	ModeMongo     = "mongo"
	ModeLocal     = "local"
)

// Stores bundles the repositories the services run on.
type Stores struct {
	Quotes QuoteRepository
	Users  UserRepository
	// Mode names the primary store, or "local" when only the file store is active.
	Mode string
}

// Backends carries whichever primary clients were successfully initialised.
type Backends struct {
	Firestore *firestore.Client
	Mongo     *mongo.Database
	LocalDir  string
}

// OpenStores wires the repositories: Firestore wins over Mongo, and quotes
// always sit in front of the local file store. With no primary client the
// local store serves everything.
func OpenStores(b Backends) (*Stores, error) {
	localQuotes, err := quoteRepo.NewLocalQuoteRepo(b.LocalDir)
	if err != nil {
		return nil, err
	}

	switch {
	case b.Firestore != nil:
		return &Stores{
			Quotes: NewFallbackQuoteRepo(NewFirestoreQuoteRepo(b.Firestore), localQuotes),
			Users:  NewFirestoreUserRepo(b.Firestore),
			Mode:   ModeFirestore,
		}, nil
	case b.Mongo != nil:
		return &Stores{
			Quotes: NewFallbackQuoteRepo(NewMongoQuoteRepo(b.Mongo), localQuotes),
			Users:  NewMongoUserRepo(b.Mongo),
			Mode:   ModeMongo,
		}, nil
	}

	localUsers, err := userRepo.NewLocalUserRepo(b.LocalDir)
	if err != nil {
		return nil, err
	}
	return &Stores{Quotes: localQuotes, Users: localUsers, Mode: ModeLocal}, nil
}
