package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/fjod/go_storefront/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// maxCASAttempts bounds the optimistic retry loop of a user write.
const maxCASAttempts = 5

type mongoUserRepository struct {
	collection *mongo.Collection
}

func NewMongoUserRepository(db *mongo.Database) UserRepository {
	return &mongoUserRepository{
		collection: db.Collection(usersCollection),
	}
}

func (m *mongoUserRepository) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	var u domain.User
	err := m.collection.FindOne(ctx, bson.M{"_id": userID}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	u.Normalize()
	return &u, nil
}

func (m *mongoUserRepository) UpdateUser(ctx context.Context, userID string, fn UserMutation) (*domain.User, error) {
	return m.mutate(ctx, userID, false, fn)
}

func (m *mongoUserRepository) UpsertUser(ctx context.Context, userID string, fn UserMutation) (*domain.User, error) {
	return m.mutate(ctx, userID, true, fn)
}

// mutate is a compare-and-swap on the version field: the write only lands
// if nobody else bumped the version since the read.
func (m *mongoUserRepository) mutate(ctx context.Context, userID string, create bool, fn UserMutation) (*domain.User, error) {
	for attempt := 0; attempt < maxCASAttempts; attempt++ {
		u, err := m.GetUser(ctx, userID)
		exists := true
		if errors.Is(err, ErrUserNotFound) {
			if !create {
				return nil, ErrUserNotFound
			}
			u, exists = domain.NewUser(userID), false
		} else if err != nil {
			return nil, err
		}

		prev := u.Version
		if err := fn(u); err != nil {
			return nil, err
		}
		u.Normalize()
		u.Version = prev + 1

		if !exists {
			_, err := m.collection.InsertOne(ctx, u)
			if mongo.IsDuplicateKeyError(err) {
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("failed to insert user: %w", err)
			}
			return u, nil
		}

		update := bson.M{"$set": bson.M{
			"cart":    u.Cart,
			"orders":  u.Orders,
			"version": u.Version,
		}}
		res, err := m.collection.UpdateOne(ctx, versionFilter(userID, prev), update)
		if err != nil {
			return nil, fmt.Errorf("failed to update user: %w", err)
		}
		if res.MatchedCount == 1 {
			return u, nil
		}
	}
	return nil, ErrConflict
}

// versionFilter also matches documents written before versioning existed.
func versionFilter(userID string, version int64) bson.M {
	if version == 0 {
		return bson.M{
			"_id": userID,
			"$or": bson.A{
				bson.M{"version": 0},
				bson.M{"version": bson.M{"$exists": false}},
			},
		}
	}
	return bson.M{"_id": userID, "version": version}
}
