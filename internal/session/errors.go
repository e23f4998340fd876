package session

import (
	"errors"
	"fmt"
)

// ErrValidation is wrapped by every error caused by invalid caller input.
// No session or card state is mutated when it is returned.
var ErrValidation = errors.New("validation failed")

var (
	ErrEmptyAnswer     = fmt.Errorf("%w: enter an answer to submit", ErrValidation)
	ErrNotANumber      = fmt.Errorf("%w: the answer must be a number", ErrValidation)
	ErrNoTables        = fmt.Errorf("%w: choose at least one table", ErrValidation)
	ErrTableOutOfRange = fmt.Errorf("%w: tables must be between 1 and 10", ErrValidation)
	ErrNoLearner       = fmt.Errorf("%w: no active learner", ErrValidation)
	ErrNoHint          = fmt.Errorf("%w: no such hint option", ErrValidation)
)
