package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

var errRedisDown = errors.New("redis down")

type mockMatchRepo struct {
	mock.Mock
}

func (that *mockMatchRepo) Save(ctx context.Context, match *entity.Match) error {
	args := that.Called(ctx, match)
	return args.Error(0)
}

func newTestManager(t *testing.T) (*MatchManager, *mockMatchRepo) {
	t.Helper()

	repo := &mockMatchRepo{}
	t.Cleanup(func() { repo.AssertExpectations(t) })

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	return NewMatchManager(logger, repo), repo
}

func TestMatchManager_NewMatch(t *testing.T) {
	ctx := context.Background()

	t.Run("Human X waits on the initial board", func(t *testing.T) {
		manager, _ := newTestManager(t)

		// When: a match starts with the human as X
		match, err := manager.NewMatch(ctx, entity.PlayerX)

		// Then: the board is untouched and the human is due to move
		require.NoError(t, err)
		assert.NotEmpty(t, match.ID)
		assert.Equal(t, entity.InitialState(), match.Board)
		assert.Empty(t, match.Moves)
		assert.Equal(t, entity.PlayerX, tictactoe.Player(match.Board))
	})

	t.Run("Engine opens when the human is O", func(t *testing.T) {
		manager, _ := newTestManager(t)

		// When: a match starts with the human as O
		match, err := manager.NewMatch(ctx, entity.PlayerO)

		// Then: the engine has already placed an X
		require.NoError(t, err)
		require.Len(t, match.Moves, 1)
		assert.Equal(t, entity.PlayerX, match.Board.Cell(match.Moves[0]))
		assert.Equal(t, entity.PlayerO, tictactoe.Player(match.Board))
	})
}

func TestMatchManager_HumanTurn(t *testing.T) {
	ctx := context.Background()

	t.Run("Engine replies to the human move", func(t *testing.T) {
		manager, _ := newTestManager(t)
		match, err := manager.NewMatch(ctx, entity.PlayerX)
		require.NoError(t, err)

		// When: the human plays the center
		err = manager.HumanTurn(ctx, match, entity.Action{Row: 1, Col: 1})

		// Then: both moves are on the board and it is the human's turn again
		require.NoError(t, err)
		require.Len(t, match.Moves, 2)
		assert.Equal(t, entity.PlayerX, match.Board[1][1])
		assert.Equal(t, entity.PlayerO, match.Board.Cell(match.Moves[1]))
		assert.True(t, match.IsOngoing())
	})

	t.Run("Occupied cell returns ErrInvalidMove", func(t *testing.T) {
		manager, _ := newTestManager(t)
		match, err := manager.NewMatch(ctx, entity.PlayerO)
		require.NoError(t, err)
		before := match.Board

		// When: the human plays on the engine's cell
		err = manager.HumanTurn(ctx, match, match.Moves[0])

		// Then: the move is rejected and the board is unchanged
		require.ErrorIs(t, err, apperror.ErrInvalidMove)
		assert.Equal(t, before, match.Board)
		assert.Len(t, match.Moves, 1)
	})

	t.Run("Self-play match rejects human moves", func(t *testing.T) {
		manager, _ := newTestManager(t)
		match, err := manager.NewMatch(ctx, entity.Empty)
		require.NoError(t, err)

		err = manager.HumanTurn(ctx, match, entity.Action{Row: 0, Col: 0})

		assert.ErrorIs(t, err, apperror.ErrNotYourTurn)
	})

	t.Run("Finished match rejects moves", func(t *testing.T) {
		manager, _ := newTestManager(t)
		match := entity.NewMatch("123", entity.PlayerX, manager.now())
		match.Status = entity.StatusFinished

		err := manager.HumanTurn(ctx, match, entity.Action{Row: 0, Col: 0})

		assert.ErrorIs(t, err, apperror.ErrMatchFinished)
	})

	t.Run("Winning move finishes and records the match", func(t *testing.T) {
		manager, repo := newTestManager(t)

		// Given: the human as X one move away from the top row
		match := entity.NewMatch("123", entity.PlayerX, manager.now())
		match.Board = entity.Board{
			{entity.PlayerX, entity.PlayerX, entity.Empty},
			{entity.PlayerO, entity.PlayerO, entity.Empty},
			{entity.Empty, entity.Empty, entity.Empty},
		}

		repo.On("Save", mock.Anything, match).Return(nil).Once()

		// When: the human completes the row
		err := manager.HumanTurn(ctx, match, entity.Action{Row: 0, Col: 2})

		// Then: the match is finished with X winning and no engine reply
		require.NoError(t, err)
		assert.True(t, match.IsFinished())
		assert.Equal(t, "X", match.Winner)
		assert.Equal(t, 1, match.Score)
		assert.Len(t, match.Moves, 1)
	})

	t.Run("Recording failure does not fail the turn", func(t *testing.T) {
		manager, repo := newTestManager(t)

		// Given: the human as O, the engine one move from the top row
		match := entity.NewMatch("123", entity.PlayerO, manager.now())
		match.Board = entity.Board{
			{entity.PlayerX, entity.PlayerX, entity.Empty},
			{entity.PlayerO, entity.Empty, entity.Empty},
			{entity.Empty, entity.Empty, entity.Empty},
		}

		repo.On("Save", mock.Anything, match).Return(errRedisDown).Once()

		// When: the human does not block
		err := manager.HumanTurn(ctx, match, entity.Action{Row: 2, Col: 2})

		// Then: the engine wins and the error stays in the logs
		require.NoError(t, err)
		assert.True(t, match.IsFinished())
		assert.Equal(t, "X", match.Winner)
		assert.Equal(t, entity.Action{Row: 0, Col: 2}, match.Moves[len(match.Moves)-1])
	})
}

func TestMatchManager_SelfPlay(t *testing.T) {
	ctx := context.Background()
	manager, repo := newTestManager(t)

	match, err := manager.NewMatch(ctx, entity.Empty)
	require.NoError(t, err)

	repo.On("Save", mock.Anything, match).Return(nil).Once()

	// When: the engine plays both sides to the end
	for match.IsOngoing() {
		require.NoError(t, manager.EngineTurn(ctx, match))
	}

	// Then: perfect play is a draw on a full board
	assert.Equal(t, entity.PlayerTie, match.Winner)
	assert.Equal(t, 0, match.Score)
	assert.Len(t, match.Moves, 9)

	// Then: further engine turns are rejected
	assert.ErrorIs(t, manager.EngineTurn(ctx, match), apperror.ErrMatchFinished)
}

func TestMatchManager_Hint(t *testing.T) {
	manager, _ := newTestManager(t)

	match := entity.NewMatch("123", entity.PlayerX, manager.now())
	match.Board = entity.Board{
		{entity.PlayerX, entity.PlayerX, entity.Empty},
		{entity.PlayerO, entity.PlayerO, entity.Empty},
		{entity.Empty, entity.Empty, entity.Empty},
	}

	evaluation := manager.Hint(match)

	assert.Equal(t, 1, evaluation.Score)
	assert.Equal(t, entity.Action{Row: 0, Col: 2}, evaluation.Action)
}
