package sqldb

import (
	"errors"
	"log"
)

type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Close() error
	Err() error
}

type Result interface {
	RowsAffected() (int64, error)
}

// ErrSkipRow, returned by a Collect scan func, leaves the row out without failing
var ErrSkipRow = errors.New("sqldb: skip row")

// Collect drains rows through scan and closes them
func Collect[T any](rows Rows, scan func(Rows) (T, error)) ([]T, error) {
	defer func() {
		if err := rows.Close(); err != nil {
			log.Printf("[WARN] sqldb: closing rows: %v", err)
		}
	}()
	var out []T
	for rows.Next() {
		v, err := scan(rows)
		if errors.Is(err, ErrSkipRow) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
