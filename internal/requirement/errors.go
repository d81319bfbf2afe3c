package requirement

import (
	"errors"
	"fmt"
)

// Setup failure kinds.  Match with errors.Is.
var (
	ErrNoData       = errors.New("no requirements found")
	ErrConnection   = errors.New("requirement store unavailable")
	ErrMalformedRow = errors.New("malformed requirement row")
)

// SetupError reports why requirements for a schema version could not be
// fetched or turned into a Cache.  It matches both Kind and the underlying
// cause under errors.Is.
type SetupError struct {
	Version int
	Kind    error
	Err     error
}

func (e *SetupError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("requirements version %d: %v", e.Version, e.Kind)
	}
	return fmt.Sprintf("requirements version %d: %v: %v", e.Version, e.Kind, e.Err)
}

func (e *SetupError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func noData(version int) error {
	return &SetupError{Version: version, Kind: ErrNoData}
}

func connection(version int, err error) error {
	return &SetupError{Version: version, Kind: ErrConnection, Err: err}
}
