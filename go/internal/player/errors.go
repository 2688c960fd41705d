package player

import "errors"

// ErrInvalidInput marks malformed projection uploads; the whole batch rolls
// back and no player is touched.
var ErrInvalidInput = errors.New("invalid input")
