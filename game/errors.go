package game

import "errors"

var (
	// ErrTerminalState reports a move played on a state with no rounds
	// remaining. Callers must check IsTerminal first.
	ErrTerminalState = errors.New("state is terminal")
	// ErrInvalidConfig reports an unusable game configuration.
	ErrInvalidConfig = errors.New("invalid game configuration")
)
