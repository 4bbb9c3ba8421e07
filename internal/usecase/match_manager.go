package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

type matchRepo interface {
	Save(ctx context.Context, match *entity.Match) error
}

// MatchManager plays matches between a human and the minimax engine, or the engine against itself.
type MatchManager struct {
	logger    *slog.Logger
	matchRepo matchRepo

	now func() time.Time
}

func NewMatchManager(logger *slog.Logger, matchRepo matchRepo) *MatchManager {
	return &MatchManager{
		logger:    logger.With("component", "match_manager"),
		matchRepo: matchRepo,
		now:       time.Now,
	}
}

// NewMatch starts a match. humanMark Empty means self-play.
// If the engine owns X it makes the opening move right away.
func (that *MatchManager) NewMatch(ctx context.Context, humanMark entity.Mark) (*entity.Match, error) {
	match := entity.NewMatch(uuid.NewString(), humanMark, that.now())

	that.logger.Info("match started", "matchID", match.ID, "humanMark", humanMark)

	if !match.IsSelfPlay() && tictactoe.Player(match.Board) != humanMark {
		if err := that.EngineTurn(ctx, match); err != nil {
			return nil, fmt.Errorf("engine failed to make first turn: %w", err)
		}
	}

	return match, nil
}

// HumanTurn applies the human's move and, unless the game is over, the engine's reply.
func (that *MatchManager) HumanTurn(ctx context.Context, match *entity.Match, action entity.Action) error {
	if err := match.ConfirmOngoingState(); err != nil {
		return err
	}

	if match.IsSelfPlay() || tictactoe.Player(match.Board) != match.HumanMark {
		return apperror.ErrNotYourTurn
	}

	if err := that.play(ctx, match, action); err != nil {
		return fmt.Errorf("failed make turn: %w", err)
	}

	if match.IsFinished() {
		return nil
	}

	return that.EngineTurn(ctx, match)
}

// EngineTurn plays the minimax move for whoever is due to move.
func (that *MatchManager) EngineTurn(ctx context.Context, match *entity.Match) error {
	if err := match.ConfirmOngoingState(); err != nil {
		return err
	}

	action, ok := tictactoe.Minimax(match.Board)
	if !ok {
		// only a hand-built match can be ongoing on a terminal board
		that.finish(ctx, match)
		return nil
	}

	that.logger.Debug("engine move", "matchID", match.ID, "row", action.Row, "col", action.Col)

	return that.play(ctx, match, action)
}

// Hint evaluates the current board for the player to move.
func (that *MatchManager) Hint(match *entity.Match) tictactoe.Evaluation {
	return tictactoe.Evaluate(match.Board)
}

func (that *MatchManager) play(ctx context.Context, match *entity.Match, action entity.Action) error {
	board, err := tictactoe.Result(match.Board, action)
	if err != nil {
		return err
	}

	match.Board = board
	match.Moves = append(match.Moves, action)

	if tictactoe.Terminal(match.Board) {
		that.finish(ctx, match)
	}

	return nil
}

func (that *MatchManager) finish(ctx context.Context, match *entity.Match) {
	log := that.logger.With("method", "finish", "matchID", match.ID)

	match.Finish(tictactoe.Winner(match.Board), tictactoe.Utility(match.Board), that.now())

	log.Info("match finished", "winner", match.Winner, "moves", len(match.Moves))

	if err := that.matchRepo.Save(ctx, match); err != nil {
		log.Error("failed to record match", "error", err)
	}
}
