package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// MaxLikes is the cap on distinct games a single user may like at once.
const MaxLikes = 5

// LikeRef is one entry of a user's like list, pointing at a game.
type LikeRef struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Game primitive.ObjectID `bson:"game" json:"game"`
}

type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username     string             `bson:"username" json:"username"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password" json:"-"` // Never expose password hash in JSON
	Role         Role               `bson:"role" json:"role"`
	Likes        []LikeRef          `bson:"likes" json:"likes"`
	CreatedAt    time.Time          `bson:"createdAt" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updated_at"`
}

// PublicUser is the client-facing view of a user, without credentials.
type PublicUser struct {
	ID        primitive.ObjectID `json:"id"`
	Username  string             `json:"username"`
	Email     string             `json:"email"`
	Role      Role               `json:"role"`
	Likes     []LikeRef          `json:"likes"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// Public strips the password hash from a user document.
func (u *User) Public() PublicUser {
	likes := u.Likes
	if likes == nil {
		likes = []LikeRef{}
	}
	return PublicUser{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		Likes:     likes,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// HasLiked reports whether the user's like list already references the game.
func (u *User) HasLiked(gameID primitive.ObjectID) bool {
	for _, like := range u.Likes {
		if like.Game == gameID {
			return true
		}
	}
	return false
}
