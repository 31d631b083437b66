package domain

import "errors"

// ErrInvalidInput marks malformed caller input (bad brand format, keyword too
// short, out-of-range parameters). Rejected at the boundary before any core
// logic runs.
var ErrInvalidInput = errors.New("invalid input")

// ErrStoreUnavailable means no registry partition could be reached. This is a
// service-level failure, not a detection result.
var ErrStoreUnavailable = errors.New("registry store unavailable")
