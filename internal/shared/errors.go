package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Catalog resolution errors.
	//
	// ErrSongNotFound covers both unknown identifiers and structurally
	// incomplete upstream records. ErrCatalogUnavailable marks transport or
	// parse faults; callers fold both into the same user-facing message but
	// the distinction is preserved for logs.
	ErrSongNotFound       = fmt.Errorf("song not found")
	ErrCatalogUnavailable = fmt.Errorf("catalog unavailable")

	// Playlist validation errors
	ErrInvalidPlaylist = fmt.Errorf("at least one of the given identifiers is invalid")
	ErrEmptyPlaylist   = fmt.Errorf("please supply at least one identifier after the title")

	// Session errors
	ErrSessionTimeout   = fmt.Errorf("selection session timed out")
	ErrSessionCancelled = fmt.Errorf("selection session cancelled")
	ErrDuplicateSession = fmt.Errorf("a selection session is already active for this channel and requester")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
