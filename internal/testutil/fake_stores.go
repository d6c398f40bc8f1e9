package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/gamescorehub/backend/internal/models"
	"github.com/gamescorehub/backend/internal/repository"
)

// FakeUserStore is an in-memory stand-in for the users collection.
// It mirrors the adapter's error contract (ErrInvalidID, ErrNotFound,
// ErrDuplicateEmail) so services behave identically under test.
type FakeUserStore struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*models.User

	// FailAddLike, when set, is returned by AddLike without mutating
	// state. Used to exercise partial-write scenarios.
	FailAddLike error
}

func NewFakeUserStore() *FakeUserStore {
	return &FakeUserStore{users: make(map[primitive.ObjectID]*models.User)}
}

// Put inserts a user directly, bypassing duplicate checks. Test setup only.
func (s *FakeUserStore) Put(user *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	s.users[user.ID] = user
}

func (s *FakeUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return copyUser(u), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *FakeUserStore) GetByID(_ context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[oid]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return copyUser(u), nil
}

func (s *FakeUserStore) Create(_ context.Context, user *models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email {
			return nil, repository.ErrDuplicateEmail
		}
	}
	user.ID = primitive.NewObjectID()
	if user.Likes == nil {
		user.Likes = []models.LikeRef{}
	}
	s.users[user.ID] = copyUser(user)
	return copyUser(user), nil
}

func (s *FakeUserStore) AddLike(_ context.Context, userID, gameID primitive.ObjectID) error {
	if s.FailAddLike != nil {
		return s.FailAddLike
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	u.Likes = append(u.Likes, models.LikeRef{ID: primitive.NewObjectID(), Game: gameID})
	return nil
}

func (s *FakeUserStore) RemoveLike(_ context.Context, userID, gameID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	likes := u.Likes[:0]
	for _, like := range u.Likes {
		if like.Game != gameID {
			likes = append(likes, like)
		}
	}
	u.Likes = likes
	return nil
}

// FakeGameStore is an in-memory stand-in for the games collection.
type FakeGameStore struct {
	mu    sync.Mutex
	games map[primitive.ObjectID]*models.Game
	order []primitive.ObjectID // insertion order, ranking tiebreak

	// FailAddLiker, when set, is returned by AddLiker without mutating
	// state. Simulates the second write of a like failing after the
	// first one succeeded.
	FailAddLiker error
}

func NewFakeGameStore() *FakeGameStore {
	return &FakeGameStore{games: make(map[primitive.ObjectID]*models.Game)}
}

// Put inserts a game directly, bypassing duplicate checks. Test setup only.
func (s *FakeGameStore) Put(game *models.Game) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if game.ID.IsZero() {
		game.ID = primitive.NewObjectID()
	}
	s.games[game.ID] = game
	s.order = append(s.order, game.ID)
}

func (s *FakeGameStore) ListRankedByLikes(_ context.Context) ([]models.Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	games := s.snapshot()
	for i := range games {
		games[i].LikesCount = len(games[i].LikesBy)
	}
	sort.SliceStable(games, func(i, j int) bool {
		return games[i].LikesCount > games[j].LikesCount
	})
	return games, nil
}

func (s *FakeGameStore) Search(_ context.Context, text string) ([]models.Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	needle := strings.ToLower(text)
	matched := []models.Game{}
	for _, g := range s.snapshot() {
		if strings.Contains(strings.ToLower(g.Name), needle) ||
			strings.Contains(strings.ToLower(g.Category), needle) ||
			strings.Contains(strings.ToLower(g.Description), needle) {
			matched = append(matched, g)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return len(matched[i].LikesBy) > len(matched[j].LikesBy)
	})
	return matched, nil
}

func (s *FakeGameStore) GetByID(_ context.Context, id string) (*models.Game, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.games[oid]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return copyGame(g), nil
}

func (s *FakeGameStore) Create(_ context.Context, game *models.Game) (*models.Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, g := range s.games {
		if g.Name == game.Name {
			return nil, repository.ErrDuplicateName
		}
	}
	game.ID = primitive.NewObjectID()
	if game.Image == "" {
		game.Image = models.DefaultGameImage
	}
	if game.LikesBy == nil {
		game.LikesBy = []models.LikedBy{}
	}
	s.games[game.ID] = copyGame(game)
	s.order = append(s.order, game.ID)
	return copyGame(game), nil
}

func (s *FakeGameStore) Update(_ context.Context, id string, game *models.Game) (*models.Game, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.games[oid]
	if !ok {
		return nil, repository.ErrNotFound
	}
	existing.Name = game.Name
	existing.Category = game.Category
	existing.Description = game.Description
	if game.Image != "" {
		existing.Image = game.Image
	} else {
		existing.Image = models.DefaultGameImage
	}
	existing.UpdatedAt = time.Now().UTC()
	return copyGame(existing), nil
}

func (s *FakeGameStore) Delete(_ context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.games[oid]; !ok {
		return repository.ErrNotFound
	}
	delete(s.games, oid)
	return nil
}

func (s *FakeGameStore) AddLiker(_ context.Context, gameID, userID primitive.ObjectID) error {
	if s.FailAddLiker != nil {
		return s.FailAddLiker
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.games[gameID]
	if !ok {
		return repository.ErrNotFound
	}
	g.LikesBy = append(g.LikesBy, models.LikedBy{ID: primitive.NewObjectID(), User: userID})
	return nil
}

func (s *FakeGameStore) RemoveLiker(_ context.Context, gameID, userID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.games[gameID]
	if !ok {
		return repository.ErrNotFound
	}
	likesBy := g.LikesBy[:0]
	for _, like := range g.LikesBy {
		if like.User != userID {
			likesBy = append(likesBy, like)
		}
	}
	g.LikesBy = likesBy
	return nil
}

func (s *FakeGameStore) snapshot() []models.Game {
	games := make([]models.Game, 0, len(s.order))
	for _, id := range s.order {
		if g, ok := s.games[id]; ok {
			games = append(games, *copyGame(g))
		}
	}
	return games
}

func copyUser(u *models.User) *models.User {
	c := *u
	c.Likes = append([]models.LikeRef(nil), u.Likes...)
	return &c
}

func copyGame(g *models.Game) *models.Game {
	c := *g
	c.LikesBy = append([]models.LikedBy(nil), g.LikesBy...)
	return &c
}
