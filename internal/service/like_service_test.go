package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/gamescorehub/backend/internal/models"
	"github.com/gamescorehub/backend/internal/service"
	"github.com/gamescorehub/backend/internal/testutil"
	"github.com/gamescorehub/backend/pkg/logger"
)

func init() {
	_ = logger.Init(false)
}

type likeFixture struct {
	users *testutil.FakeUserStore
	games *testutil.FakeGameStore
	svc   *service.LikeService
	user  *models.User
	game  *models.Game
}

func newLikeFixture(t *testing.T) *likeFixture {
	t.Helper()

	users := testutil.NewFakeUserStore()
	games := testutil.NewFakeGameStore()

	user, err := testutil.NewTestUser("mario", "mario@example.com", "1234", models.RoleUser)
	require.NoError(t, err)
	users.Put(user)

	game := testutil.NewTestGame("Super Mario", "Platformer", "Jump through the Mushroom Kingdom")
	games.Put(game)

	return &likeFixture{
		users: users,
		games: games,
		svc:   service.NewLikeService(users, games),
		user:  user,
		game:  game,
	}
}

// mustBeConsistent asserts the bidirectional rule: the user references
// the game iff the game references the user back.
func mustBeConsistent(t *testing.T, f *likeFixture, liked bool) {
	t.Helper()

	user, err := f.users.GetByID(context.Background(), f.user.ID.Hex())
	require.NoError(t, err)
	game, err := f.games.GetByID(context.Background(), f.game.ID.Hex())
	require.NoError(t, err)

	assert.Equal(t, liked, user.HasLiked(game.ID), "user side")
	assert.Equal(t, liked, game.LikedByUser(user.ID), "game side")
}

func TestToggleLike_RoundTrip(t *testing.T) {
	f := newLikeFixture(t)
	ctx := context.Background()

	// First toggle: like
	result, err := f.svc.ToggleLike(ctx, f.user.ID.Hex(), f.game.ID.Hex())
	require.NoError(t, err)
	assert.True(t, result.Liked)
	require.NotNil(t, result.User, "Liking should return the refreshed user")
	assert.Len(t, result.User.Likes, 1)
	assert.Equal(t, f.game.ID, result.User.Likes[0].Game)
	mustBeConsistent(t, f, true)

	// Second toggle: unlike, back to the initial state
	result, err = f.svc.ToggleLike(ctx, f.user.ID.Hex(), f.game.ID.Hex())
	require.NoError(t, err)
	assert.False(t, result.Liked)
	assert.Nil(t, result.User, "Unliking returns a plain acknowledgement")
	mustBeConsistent(t, f, false)
}

func TestToggleLike_CapReached(t *testing.T) {
	f := newLikeFixture(t)
	ctx := context.Background()

	// Fill the like list with other games
	for i := 0; i < models.MaxLikes; i++ {
		other := testutil.NewTestGame("Game "+string(rune('A'+i)), "Misc", "filler")
		f.games.Put(other)
		_, err := f.svc.ToggleLike(ctx, f.user.ID.Hex(), other.ID.Hex())
		require.NoError(t, err)
	}

	_, err := f.svc.ToggleLike(ctx, f.user.ID.Hex(), f.game.ID.Hex())

	assert.ErrorIs(t, err, service.ErrLikeCapExceeded)
	mustBeConsistent(t, f, false)

	user, err := f.users.GetByID(ctx, f.user.ID.Hex())
	require.NoError(t, err)
	assert.Len(t, user.Likes, models.MaxLikes, "Failed like must not change state")
}

func TestToggleLike_CapDoesNotBlockUnlike(t *testing.T) {
	f := newLikeFixture(t)
	ctx := context.Background()

	testutil.LikePair(f.user, f.game)
	for i := 0; i < models.MaxLikes-1; i++ {
		other := testutil.NewTestGame("Game "+string(rune('A'+i)), "Misc", "filler")
		f.games.Put(other)
		testutil.LikePair(f.user, other)
	}

	// At the cap, toggling an already-liked game still unlikes it
	result, err := f.svc.ToggleLike(ctx, f.user.ID.Hex(), f.game.ID.Hex())
	require.NoError(t, err)
	assert.False(t, result.Liked)
	mustBeConsistent(t, f, false)
}

func TestToggleLike_AlreadyLikedTogglesOff(t *testing.T) {
	f := newLikeFixture(t)
	ctx := context.Background()

	testutil.LikePair(f.user, f.game)

	result, err := f.svc.ToggleLike(ctx, f.user.ID.Hex(), f.game.ID.Hex())

	require.NoError(t, err)
	assert.False(t, result.Liked, "Liking an already-liked game removes the like")
	mustBeConsistent(t, f, false)
}

func TestToggleLike_MissingUserOrGame(t *testing.T) {
	f := newLikeFixture(t)
	ctx := context.Background()

	testCases := []struct {
		name   string
		userID string
		gameID string
	}{
		{name: "unknown_user", userID: primitive.NewObjectID().Hex(), gameID: f.game.ID.Hex()},
		{name: "unknown_game", userID: f.user.ID.Hex(), gameID: primitive.NewObjectID().Hex()},
		{name: "malformed_user_id", userID: "not-a-valid-id", gameID: f.game.ID.Hex()},
		{name: "malformed_game_id", userID: f.user.ID.Hex(), gameID: "not-a-valid-id"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.ToggleLike(ctx, tc.userID, tc.gameID)
			assert.ErrorIs(t, err, service.ErrUserOrGameMissing)
		})
	}

	mustBeConsistent(t, f, false)
}

// When the game-side write fails after the user-side write succeeded,
// the two collections disagree: the user references the game but not
// vice versa. The next toggle reads the game side, sees NOT_LIKED, and
// the user-side defensive check rejects the relike instead of pushing a
// duplicate reference.
func TestToggleLike_PartialWriteCaughtByDefensiveCheck(t *testing.T) {
	f := newLikeFixture(t)
	ctx := context.Background()

	f.games.FailAddLiker = errors.New("connection reset")
	_, err := f.svc.ToggleLike(ctx, f.user.ID.Hex(), f.game.ID.Hex())
	require.Error(t, err)

	// Drift: user side written, game side not
	user, err := f.users.GetByID(ctx, f.user.ID.Hex())
	require.NoError(t, err)
	game, err := f.games.GetByID(ctx, f.game.ID.Hex())
	require.NoError(t, err)
	assert.True(t, user.HasLiked(game.ID))
	assert.False(t, game.LikedByUser(user.ID))

	f.games.FailAddLiker = nil
	_, err = f.svc.ToggleLike(ctx, f.user.ID.Hex(), f.game.ID.Hex())

	assert.ErrorIs(t, err, service.ErrAlreadyLiked)
}

func TestToggleLike_TwoUsersSameGame(t *testing.T) {
	f := newLikeFixture(t)
	ctx := context.Background()

	luigi, err := testutil.NewTestUser("luigi", "luigi@example.com", "1234", models.RoleUser)
	require.NoError(t, err)
	f.users.Put(luigi)

	_, err = f.svc.ToggleLike(ctx, f.user.ID.Hex(), f.game.ID.Hex())
	require.NoError(t, err)
	_, err = f.svc.ToggleLike(ctx, luigi.ID.Hex(), f.game.ID.Hex())
	require.NoError(t, err)

	game, err := f.games.GetByID(ctx, f.game.ID.Hex())
	require.NoError(t, err)
	assert.Len(t, game.LikesBy, 2)

	// Unliking by one user leaves the other's reference intact
	_, err = f.svc.ToggleLike(ctx, f.user.ID.Hex(), f.game.ID.Hex())
	require.NoError(t, err)

	game, err = f.games.GetByID(ctx, f.game.ID.Hex())
	require.NoError(t, err)
	require.Len(t, game.LikesBy, 1)
	assert.Equal(t, luigi.ID, game.LikesBy[0].User)
}
