package audit

import (
	"context"
	"fmt"
	"log"

	"github.com/veenu-wootz/qualityinspectionreport-vmerge/db/kvdb"
)

const DefaultKey = "qirmerge:audit"

// KVStore keeps the newest maxRecords records in a list, newest first
type KVStore struct {
	client     kvdb.Client
	key        string
	maxRecords int
	codec      codec
}

var _ Store = (*KVStore)(nil)

func NewKVStore(client kvdb.Client, key string, maxRecords int, sealer Sealer) *KVStore {
	if key == "" {
		key = DefaultKey
	}
	if maxRecords <= 0 {
		maxRecords = DefaultMaxRecords
	}
	return &KVStore{client: client, key: key, maxRecords: maxRecords, codec: codec{sealer: sealer}}
}

func (s *KVStore) Record(ctx context.Context, rec Record) error {
	payload, err := s.codec.encode(rec)
	if err != nil {
		return fmt.Errorf("audit: encode: %w", err)
	}
	if err = s.client.PushHead(ctx, s.key, payload); err != nil {
		return fmt.Errorf("audit: push: %w", err)
	}
	if err = s.client.Trim(ctx, s.key, 0, int64(s.maxRecords-1)); err != nil {
		return fmt.Errorf("audit: trim: %w", err)
	}
	return nil
}

func (s *KVStore) Recent(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		return []Record{}, nil
	}
	payloads, err := s.client.Range(ctx, s.key, 0, int64(limit-1))
	if err != nil {
		return nil, fmt.Errorf("audit: range: %w", err)
	}
	records := make([]Record, 0, len(payloads))
	for i, p := range payloads {
		rec, err := s.codec.decode(p)
		if err != nil {
			log.Printf("[WARN] audit: skipping unreadable record #%d in %s: %v", i, s.key, err)
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}
