package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gamescorehub/backend/internal/database"
	"github.com/gamescorehub/backend/internal/models"
)

// searchResultLimit caps how many documents a text search pulls from the
// store before the client-side ranking pass.
const searchResultLimit = 100

type GameRepository struct {
	coll *mongo.Collection
}

func NewGameRepository(db *database.Mongo) *GameRepository {
	return &GameRepository{coll: db.Games()}
}

// ListRankedByLikes returns every game with a computed likesCount field,
// sorted by it descending. Ties keep the store's order.
func (r *GameRepository) ListRankedByLikes(ctx context.Context) ([]models.Game, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$addFields", Value: bson.D{
			{Key: "likesCount", Value: bson.D{{Key: "$size", Value: "$likesBy"}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "likesCount", Value: -1}}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate games: %w", err)
	}
	defer cursor.Close(ctx)

	games := []models.Game{}
	if err := cursor.All(ctx, &games); err != nil {
		return nil, fmt.Errorf("decode games: %w", err)
	}
	return games, nil
}

// Search matches the text case-insensitively as a substring of name,
// category or description. The input is quoted before it is compiled so
// regex metacharacters from clients cannot alter the filter.
func (r *GameRepository) Search(ctx context.Context, text string) ([]models.Game, error) {
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(text), Options: "i"}
	filter := bson.M{"$or": bson.A{
		bson.M{"name": pattern},
		bson.M{"category": pattern},
		bson.M{"description": pattern},
	}}

	cursor, err := r.coll.Find(ctx, filter, options.Find().SetLimit(searchResultLimit))
	if err != nil {
		return nil, fmt.Errorf("search games: %w", err)
	}
	defer cursor.Close(ctx)

	games := []models.Game{}
	if err := cursor.All(ctx, &games); err != nil {
		return nil, fmt.Errorf("decode games: %w", err)
	}

	// Rank by like count after the fetch; the store query has no ordering.
	sort.SliceStable(games, func(i, j int) bool {
		return len(games[i].LikesBy) > len(games[j].LikesBy)
	})

	return games, nil
}

func (r *GameRepository) GetByID(ctx context.Context, id string) (*models.Game, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	var game models.Game
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&game)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find game by id: %w", err)
	}
	return &game, nil
}

// Create inserts the game, stamping both timestamps. Names are unique
// across the catalog.
func (r *GameRepository) Create(ctx context.Context, game *models.Game) (*models.Game, error) {
	err := r.coll.FindOne(ctx, bson.M{"name": game.Name}).Err()
	if err == nil {
		return nil, ErrDuplicateName
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("check game name: %w", err)
	}

	if game.Image == "" {
		game.Image = models.DefaultGameImage
	}
	if game.LikesBy == nil {
		game.LikesBy = []models.LikedBy{}
	}
	now := time.Now().UTC()
	game.CreatedAt = now
	game.UpdatedAt = now

	result, err := r.coll.InsertOne(ctx, game)
	if err != nil {
		return nil, fmt.Errorf("insert game: %w", err)
	}
	game.ID = result.InsertedID.(primitive.ObjectID)

	return game, nil
}

// Update replaces the mutable fields of the game and bumps updatedAt.
// The liker list and timestamps are not client-writable.
func (r *GameRepository) Update(ctx context.Context, id string, game *models.Game) (*models.Game, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	if game.Image == "" {
		game.Image = models.DefaultGameImage
	}
	update := bson.M{"$set": bson.M{
		"name":        game.Name,
		"category":    game.Category,
		"description": game.Description,
		"image":       game.Image,
		"updatedAt":   time.Now().UTC(),
	}}

	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return nil, fmt.Errorf("update game: %w", err)
	}
	if result.MatchedCount == 0 {
		return nil, ErrNotFound
	}

	var updated models.Game
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&updated); err != nil {
		return nil, fmt.Errorf("reload game: %w", err)
	}
	return &updated, nil
}

func (r *GameRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete game: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// AddLiker pushes a liker entry onto the game's likesBy list.
func (r *GameRepository) AddLiker(ctx context.Context, gameID, userID primitive.ObjectID) error {
	update := bson.M{"$push": bson.M{"likesBy": models.LikedBy{
		ID:   primitive.NewObjectID(),
		User: userID,
	}}}

	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": gameID}, update)
	if err != nil {
		return fmt.Errorf("push liker: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// RemoveLiker pulls every liker entry referencing the user from the
// game's likesBy list.
func (r *GameRepository) RemoveLiker(ctx context.Context, gameID, userID primitive.ObjectID) error {
	update := bson.M{"$pull": bson.M{"likesBy": bson.M{"user": userID}}}

	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": gameID}, update)
	if err != nil {
		return fmt.Errorf("pull liker: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
