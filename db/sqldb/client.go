package sqldb

import (
	"context"
)

// Client is a SQL database connection pool
type Client interface {
	Init() error
	Close() error
	GetConf() *Conf
	GetDSN() string
	Ping(ctx context.Context) error

	// Exec executes SQL statement like INSERT, UPDATE, DELETE, CREATE.
	// Queries use '?' placeholders; impls rewrite them for their DB type.
	Exec(ctx context.Context, query string, args ...any) (Result, error)
	QueryRows(ctx context.Context, query string, args ...any) (Rows, error)
}
