package draft

import "errors"

// ErrInvalidInput marks malformed pick submissions; callers map it to a
// client error and no mutation is applied.
var ErrInvalidInput = errors.New("invalid input")
