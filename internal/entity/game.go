package entity

import (
	"fmt"
	"time"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"

	// PlayerTie is stored as the winner of a drawn match.
	PlayerTie = "-"
)

// Match is a single game played through the console harness.
type Match struct {
	ID         string    `json:"id"`
	Board      Board     `json:"board"`
	HumanMark  Mark      `json:"human_mark,omitempty"`
	Moves      []Action  `json:"moves"`
	Winner     string    `json:"winner"`
	Score      int       `json:"score"`
	Status     string    `json:"status"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at,omitempty"`
}

func NewMatch(id string, humanMark Mark, startedAt time.Time) *Match {
	return &Match{
		ID:        id,
		Board:     InitialState(),
		HumanMark: humanMark,
		Moves:     []Action{},
		Status:    StatusOngoing,
		StartedAt: startedAt,
	}
}

func (that *Match) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Match) IsOngoing() bool {
	return that.Status == StatusOngoing
}

// IsSelfPlay reports whether the engine plays both sides.
func (that *Match) IsSelfPlay() bool {
	return that.HumanMark == Empty
}

// Finish marks the match as finished with the given winner mark (Empty for a draw) and utility score.
func (that *Match) Finish(winner Mark, score int, finishedAt time.Time) {
	that.Status = StatusFinished
	that.Score = score
	that.FinishedAt = finishedAt

	if winner == Empty {
		that.Winner = PlayerTie
		return
	}

	that.Winner = string(winner)
}

func (that *Match) ConfirmOngoingState() error {
	switch {
	case that.IsFinished():
		return apperror.ErrMatchFinished
	case that.IsOngoing():
		return nil
	default:
		return fmt.Errorf("%w: %s", apperror.ErrUnknownMatchStatus, that.Status)
	}
}
