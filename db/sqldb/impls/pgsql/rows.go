package pgsql

import (
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/veenu-wootz/qualityinspectionreport-vmerge/db/sqldb"
)

// rows adapts pgx.Rows. pgx reports some query errors only once the rows
// are closed, so Close returns them.
type rows struct {
	current pgx.Rows
}

var _ sqldb.Rows = rows{}

func (r rows) Next() bool {
	return r.current.Next()
}

func (r rows) Scan(dest ...any) error {
	if err := r.current.Scan(dest...); err != nil {
		return fmt.Errorf("pgsql: scan: %w", err)
	}
	return nil
}

func (r rows) Close() error {
	r.current.Close()
	if err := r.current.Err(); err != nil {
		return fmt.Errorf("pgsql: rows: %w", err)
	}
	return nil
}

func (r rows) Err() error {
	if err := r.current.Err(); err != nil {
		return fmt.Errorf("pgsql: rows: %w", err)
	}
	return nil
}

type commandTag pgconn.CommandTag

func (t commandTag) RowsAffected() (int64, error) {
	return pgconn.CommandTag(t).RowsAffected(), nil
}
