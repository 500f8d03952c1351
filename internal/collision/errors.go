package collision

import "errors"

// Precondition violations. Unknown actors and out-of-world cells are not
// errors — those queries answer "no match" instead.
var (
	ErrNegativeRadius   = errors.New("collision: negative radius")
	ErrNegativeDistance = errors.New("collision: negative distance")
	ErrNilActor         = errors.New("collision: nil actor")
)
