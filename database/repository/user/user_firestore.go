package userRepo

import (
	"context"
	"fmt"

	"quotecompare/config"
	"quotecompare/models"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FirestoreUserRepo implements UserRepository on the users collection. The
// document id is the Firebase uid.
type FirestoreUserRepo struct {
	coll *firestore.CollectionRef
}

func NewFirestoreUserRepo(client *firestore.Client) UserRepository {
	return &FirestoreUserRepo{coll: client.Collection(config.UsersCollection)}
}

func (r *FirestoreUserRepo) GetByID(ctx context.Context, uid string) (*models.User, error) {
	snap, err := r.coll.Doc(uid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, models.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to fetch user with id %s: %w", uid, err)
	}
	return decodeUser(snap)
}

func (r *FirestoreUserRepo) GetAll(ctx context.Context) ([]models.User, error) {
	iter := r.coll.Documents(ctx)
	defer iter.Stop()

	users := []models.User{}
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list users: %w", err)
		}
		user, err := decodeUser(snap)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, nil
}

func (r *FirestoreUserRepo) SetDisabled(ctx context.Context, uid string, disabled bool) error {
	_, err := r.coll.Doc(uid).Set(ctx, map[string]interface{}{"disabled": disabled}, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("failed to update user %s: %w", uid, err)
	}
	return nil
}

func (r *FirestoreUserRepo) IncrementResponseCount(ctx context.Context, uid string) error {
	_, err := r.coll.Doc(uid).Set(ctx, map[string]interface{}{
		"quotesResponded": firestore.Increment(1),
	}, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("failed to increment response count for %s: %w", uid, err)
	}
	return nil
}

func (r *FirestoreUserRepo) Upsert(ctx context.Context, user *models.User) error {
	if _, err := r.coll.Doc(user.UID).Set(ctx, user); err != nil {
		return fmt.Errorf("failed to save user %s: %w", user.UID, err)
	}
	return nil
}

func decodeUser(snap *firestore.DocumentSnapshot) (*models.User, error) {
	var user models.User
	if err := snap.DataTo(&user); err != nil {
		return nil, fmt.Errorf("failed to decode user %s: %w", snap.Ref.ID, err)
	}
	user.UID = snap.Ref.ID
	return &user, nil
}
