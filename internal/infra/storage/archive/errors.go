package archive

import "errors"

var (
	// ErrBuildQuery is returned when the SQL builder fails
	ErrBuildQuery = errors.New("archive.repository: failed to build query")

	// ErrExecQuery is returned when a SQL statement fails to execute
	ErrExecQuery = errors.New("archive.repository: failed to execute query")
)
