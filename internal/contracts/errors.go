package contracts

import "errors"

// ErrInvalidArgument marks a caller's bug: malformed direction strings,
// non-positive prices, negative trade values. Never retried.
var ErrInvalidArgument = errors.New("invalid argument")
