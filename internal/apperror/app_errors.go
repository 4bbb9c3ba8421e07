package apperror

import "errors"

var (
	// ErrInvalidMove is returned when a move targets an occupied or nonexistent cell.
	ErrInvalidMove = errors.New("invalid move")

	ErrMatchFinished      = errors.New("match is already finished")
	ErrNotYourTurn        = errors.New("it's not your turn")
	ErrMatchNotFound      = errors.New("match not found")
	ErrUnknownMatchStatus = errors.New("unknown match status")
	ErrInvalidInput       = errors.New("invalid input")
)
