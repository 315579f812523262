package domain

import "errors"

// Sentinel errors used across layers. The parsing pipeline itself is
// total (every block stream yields some output), so errors surface
// only from configuration and export I/O.
var (
	ErrInvalidConfig = errors.New("invalid config")
)
