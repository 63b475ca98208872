package mysql

import (
	"fmt"

	"github.com/veenu-wootz/qualityinspectionreport-vmerge/db/sqldb"
)

// rows labels scan and iteration errors with the driver so audit logs tell
// which backend failed. *sql.Rows is the usual source.
type rows struct {
	sqldb.Rows
}

func (r rows) Scan(dest ...any) error {
	if err := r.Rows.Scan(dest...); err != nil {
		return fmt.Errorf("mysql: scan: %w", err)
	}
	return nil
}

func (r rows) Err() error {
	if err := r.Rows.Err(); err != nil {
		return fmt.Errorf("mysql: rows: %w", err)
	}
	return nil
}
