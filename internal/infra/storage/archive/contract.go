package archive

import (
	"context"
	"database/sql"
)

// DBExecutor is the subset of *sql.DB the repository needs. Declared here
// so tests can substitute sqlmock.
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}
