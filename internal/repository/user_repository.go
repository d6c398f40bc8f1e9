package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gamescorehub/backend/internal/database"
	"github.com/gamescorehub/backend/internal/models"
)

type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *database.Mongo) *UserRepository {
	return &UserRepository{coll: db.Users()}
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	var user models.User
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return &user, nil
}

// Create inserts the user, stamping both timestamps. The email must not
// already be registered.
func (r *UserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	err := r.coll.FindOne(ctx, bson.M{"email": user.Email}).Err()
	if err == nil {
		return nil, ErrDuplicateEmail
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("check email existence: %w", err)
	}

	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.Likes == nil {
		user.Likes = []models.LikeRef{}
	}

	result, err := r.coll.InsertOne(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	user.ID = result.InsertedID.(primitive.ObjectID)

	return user, nil
}

// AddLike pushes a like entry onto the user's like list. Single-document
// update, atomic at the store level. The entry gets a fresh ObjectID so
// the token snapshot can reference it.
func (r *UserRepository) AddLike(ctx context.Context, userID, gameID primitive.ObjectID) error {
	update := bson.M{"$push": bson.M{"likes": models.LikeRef{
		ID:   primitive.NewObjectID(),
		Game: gameID,
	}}}

	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": userID}, update)
	if err != nil {
		return fmt.Errorf("push like: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// RemoveLike pulls every like entry referencing the game from the user's
// like list.
func (r *UserRepository) RemoveLike(ctx context.Context, userID, gameID primitive.ObjectID) error {
	update := bson.M{"$pull": bson.M{"likes": bson.M{"game": gameID}}}

	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": userID}, update)
	if err != nil {
		return fmt.Errorf("pull like: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
