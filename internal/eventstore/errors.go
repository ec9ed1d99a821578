package eventstore

import (
	"git.home.luguber.info/inful/policygen/internal/foundation/errors"
)

var (
	// ErrDatabaseOpenFailed indicates the SQLite database could not be opened.
	ErrDatabaseOpenFailed = errors.StorageError("could not open generation history database").Build()

	// ErrInitializeSchemaFailed indicates the history schema could not be created.
	ErrInitializeSchemaFailed = errors.StorageError("failed to initialize generation history schema").Build()

	ErrAppendFailed = errors.StorageError("failed to append generation record").Build()
	ErrQueryFailed  = errors.StorageError("failed to query generation history").Build()
	ErrPruneFailed  = errors.StorageError("failed to prune generation history").Build()

	// ErrInvalidRecord is returned when a record lacks an id or timestamp.
	ErrInvalidRecord = errors.ValidationError("generation record requires an id and a timestamp").Build()
)
