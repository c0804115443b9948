package game

import "errors"

var (
	ErrBoardShape       = errors.New("board must have tile rows of sizes 3,4,5,4,3")
	ErrRobberCount      = errors.New("board must have at most one robber")
	ErrOutOfRange       = errors.New("coordinate out of range")
	ErrInvalidAction    = errors.New("invalid action")
	ErrInvariant        = errors.New("ledger invariant violated")
	ErrInvalidDiscard   = errors.New("invalid discard selection")
	ErrInsufficientCard = errors.New("not enough cards")
	ErrNoSuchPlayer     = errors.New("no such player")
)
