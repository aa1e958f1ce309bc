package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores return these (optionally
// wrapped) and services translate them into domain errors:
//   - ErrNotFound: row or document does not exist
//   - ErrConflict: unique key already taken
//   - ErrUnavailable: backing store not reachable
//   - ErrInvalidState: caller passed a value the store cannot persist
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnavailable  = errors.New("unavailable")
	ErrInvalidState = errors.New("invalid state")
)
