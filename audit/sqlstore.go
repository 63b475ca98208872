package audit

import (
	"context"
	"fmt"
	"log"

	"github.com/veenu-wootz/qualityinspectionreport-vmerge/db/sqldb"
)

const table = "qir_merges"

// schema per database type; created_at is unix nanoseconds
var schema = map[string][]string{
	"pgsql": {
		`CREATE TABLE IF NOT EXISTS qir_merges (
			id         VARCHAR(64)  PRIMARY KEY,
			created_at BIGINT       NOT NULL,
			report_no  VARCHAR(255) NOT NULL,
			status     VARCHAR(16)  NOT NULL,
			payload    TEXT         NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_qir_merges_created_at ON qir_merges (created_at)`,
	},
	"mysql": {
		`CREATE TABLE IF NOT EXISTS qir_merges (
			id         VARCHAR(64)  PRIMARY KEY,
			created_at BIGINT       NOT NULL,
			report_no  VARCHAR(255) NOT NULL,
			status     VARCHAR(16)  NOT NULL,
			payload    TEXT         NOT NULL,
			INDEX idx_qir_merges_created_at (created_at)
		)`,
	},
}

// SQLStore writes one row per record and prunes rows beyond maxRecords
type SQLStore struct {
	client     sqldb.Client
	maxRecords int
	codec      codec
}

var _ Store = (*SQLStore)(nil)

func NewSQLStore(client sqldb.Client, maxRecords int, sealer Sealer) *SQLStore {
	if maxRecords <= 0 {
		maxRecords = DefaultMaxRecords
	}
	return &SQLStore{client: client, maxRecords: maxRecords, codec: codec{sealer: sealer}}
}

// EnsureSchema creates the audit table if missing
func (s *SQLStore) EnsureSchema(ctx context.Context) error {
	dbType := s.client.GetConf().Type
	stmts, ok := schema[dbType]
	if !ok {
		return fmt.Errorf("audit: no schema for database type %q", dbType)
	}
	for _, stmt := range stmts {
		if _, err := s.client.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("audit: ensure schema: %w", err)
		}
	}
	log.Printf("[INFO] audit table %s ready on %s", table, dbType)
	return nil
}

func (s *SQLStore) Record(ctx context.Context, rec Record) error {
	payload, err := s.codec.encode(rec)
	if err != nil {
		return fmt.Errorf("audit: encode: %w", err)
	}
	_, err = s.client.Exec(ctx,
		"INSERT INTO qir_merges (id, created_at, report_no, status, payload) VALUES (?, ?, ?, ?, ?)",
		rec.RequestID, rec.At.UnixNano(), rec.ReportNo, rec.Status, payload)
	if err != nil {
		return fmt.Errorf("audit: insert: %w", err)
	}
	return s.prune(ctx)
}

// prune deletes everything older than the maxRecords-th newest row
func (s *SQLStore) prune(ctx context.Context) error {
	rows, err := s.client.QueryRows(ctx,
		"SELECT created_at FROM qir_merges ORDER BY created_at DESC LIMIT 1 OFFSET ?", s.maxRecords-1)
	if err != nil {
		return fmt.Errorf("audit: prune: %w", err)
	}
	cutoffs, err := sqldb.Collect(rows, func(r sqldb.Rows) (int64, error) {
		var cutoff int64
		err := r.Scan(&cutoff)
		return cutoff, err
	})
	if err != nil {
		return fmt.Errorf("audit: prune: %w", err)
	}
	if len(cutoffs) == 0 {
		return nil
	}
	cutoff := cutoffs[0]
	if _, err = s.client.Exec(ctx, "DELETE FROM qir_merges WHERE created_at < ?", cutoff); err != nil {
		return fmt.Errorf("audit: prune: %w", err)
	}
	return nil
}

func (s *SQLStore) Recent(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		return []Record{}, nil
	}
	rows, err := s.client.QueryRows(ctx,
		"SELECT id, payload FROM qir_merges ORDER BY created_at DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("audit: query: %w", err)
	}
	records, err := sqldb.Collect(rows, func(r sqldb.Rows) (Record, error) {
		var id, payload string
		if err := r.Scan(&id, &payload); err != nil {
			return Record{}, err
		}
		rec, err := s.codec.decode(payload)
		if err != nil {
			log.Printf("[WARN] audit: skipping unreadable record %s: %v", id, err)
			return Record{}, sqldb.ErrSkipRow
		}
		return rec, nil
	})
	if err != nil {
		return nil, fmt.Errorf("audit: query: %w", err)
	}
	if records == nil {
		records = []Record{}
	}
	return records, nil
}
