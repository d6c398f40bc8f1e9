package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultGameImage is used when a game is created without an image URL.
const DefaultGameImage = "https://res.cloudinary.com/dhtj3nd92/image/upload/v1688638386/GameScoreHub/images_leorfc.jpg"

// Field limits enforced before a game document is written.
const (
	MaxGameNameLen        = 100
	MaxGameCategoryLen    = 30
	MaxGameDescriptionLen = 300
)

// LikedBy is one entry of a game's liker list, pointing at a user.
type LikedBy struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	User primitive.ObjectID `bson:"user" json:"user"`
}

type Game struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Category    string             `bson:"category" json:"category"`
	Description string             `bson:"description" json:"description"`
	Image       string             `bson:"image" json:"image"`
	LikesBy     []LikedBy          `bson:"likesBy" json:"likesBy"`
	CreatedAt   time.Time          `bson:"createdAt" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updated_at"`

	// LikesCount is computed by the ranking aggregation ($size of likesBy);
	// zero unless the document came from ListRankedByLikes.
	LikesCount int `bson:"likesCount,omitempty" json:"likesCount,omitempty"`
}

// LikedByUser reports whether the game's liker list already references the user.
func (g *Game) LikedByUser(userID primitive.ObjectID) bool {
	for _, like := range g.LikesBy {
		if like.User == userID {
			return true
		}
	}
	return false
}
