package cache

import "errors"

// ErrNotFound is the backend-neutral cache miss every adapter returns.
var ErrNotFound = errors.New("cache: not found")
