package league

import "errors"

var (
	// ErrGroupNotFound is returned when a group lookup finds no row.
	ErrGroupNotFound = errors.New("group not found")
	// ErrPlayerNotFound is returned when a rating operation references a
	// player absent from the store. It indicates a referential-integrity
	// problem upstream (e.g. a stale participant row) and must abort the
	// enclosing rating update.
	ErrPlayerNotFound = errors.New("player not found")
	// ErrMatchNotFound is returned when a match lookup finds no row.
	ErrMatchNotFound = errors.New("match not found")
)
