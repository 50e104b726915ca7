package repository

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/fjod/go_storefront/internal/domain"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const usersCollection = "users"

type firestoreUserRepository struct {
	client *firestore.Client
}

func NewFirestoreUserRepository(client *firestore.Client) UserRepository {
	return &firestoreUserRepository{client: client}
}

func (r *firestoreUserRepository) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	snap, err := r.client.Collection(usersCollection).Doc(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return decodeUser(snap)
}

func (r *firestoreUserRepository) UpdateUser(ctx context.Context, userID string, fn UserMutation) (*domain.User, error) {
	return r.runUserTx(ctx, userID, false, fn)
}

func (r *firestoreUserRepository) UpsertUser(ctx context.Context, userID string, fn UserMutation) (*domain.User, error) {
	return r.runUserTx(ctx, userID, true, fn)
}

// runUserTx reads and rewrites cart and orders inside one Firestore
// transaction. Firestore may re-run the closure on contention, so fn sees
// a freshly decoded user on every attempt.
func (r *firestoreUserRepository) runUserTx(ctx context.Context, userID string, create bool, fn UserMutation) (*domain.User, error) {
	ref := r.client.Collection(usersCollection).Doc(userID)

	var result *domain.User
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		var u *domain.User
		snap, err := tx.Get(ref)
		switch {
		case err == nil:
			u, err = decodeUser(snap)
			if err != nil {
				return err
			}
		case status.Code(err) == codes.NotFound && create:
			u = domain.NewUser(userID)
		case status.Code(err) == codes.NotFound:
			return ErrUserNotFound
		default:
			return err
		}

		if err := fn(u); err != nil {
			return err
		}
		u.Normalize()
		u.Version++

		// merge keeps profile fields written by other services
		if err := tx.Set(ref, map[string]interface{}{
			"cart":    u.Cart,
			"orders":  u.Orders,
			"version": u.Version,
		}, firestore.MergeAll); err != nil {
			return err
		}
		result = u
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("user transaction failed: %w", err)
	}
	return result, nil
}

func decodeUser(snap *firestore.DocumentSnapshot) (*domain.User, error) {
	var u domain.User
	if err := snap.DataTo(&u); err != nil {
		return nil, fmt.Errorf("failed to decode user %s: %w", snap.Ref.ID, err)
	}
	u.ID = snap.Ref.ID
	u.Normalize()
	return &u, nil
}
