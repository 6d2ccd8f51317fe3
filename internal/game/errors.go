package game

import "errors"

// ErrIllegalAction is returned when a player action's preconditions do not
// hold. It is never retried.
var ErrIllegalAction = errors.New("illegal action")
