package apperror

import "errors"

var (
	ErrCellOccupied = errors.New("cell is already occupied")
	ErrInvalidCell  = errors.New("invalid cell index")
	ErrNoLegalMoves = errors.New("no legal moves available")
)
