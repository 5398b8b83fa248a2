package jackpot

import "errors"

// Engine errors. All of them are local validation failures on function
// inputs; the engine refuses to compute on invalid data rather than
// defaulting it to zero.
var (
	ErrInvalidAmount   = errors.New("tip amount must be positive")
	ErrInvalidTier     = errors.New("unrecognized prize tier")
	ErrNegativePool    = errors.New("pool amount must not be negative")
	ErrUnknownCategory = errors.New("unknown compliance category")
)
