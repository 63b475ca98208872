// Package audit keeps a bounded history of merge requests in a key-value or SQL store.
package audit

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

const (
	StatusOK    = "ok"
	StatusError = "error"

	DefaultMaxRecords = 1000
)

var ErrDisabled = errors.New("audit: no store configured")

// Record summarises one merge request. It never holds document bytes.
type Record struct {
	RequestID    string    `json:"request_id"`
	At           time.Time `json:"at"`
	Subject      string    `json:"subject,omitempty"` // authenticated caller, if any
	ReportNo     string    `json:"report_no"`
	PartName     string    `json:"part_name,omitempty"`
	Date         string    `json:"date,omitempty"`
	Status       string    `json:"status"`
	Error        string    `json:"error,omitempty"`
	Pages        int       `json:"pages"`
	Bytes        int64     `json:"bytes"`
	Certificates []string  `json:"certificates,omitempty"`
	Dropped      []Dropped `json:"dropped,omitempty"`
	DurationMS   int64     `json:"duration_ms"`
}

type Dropped struct {
	Label  string `json:"label"`
	Reason string `json:"reason"`
}

// Store persists records; Recent returns the newest first
type Store interface {
	Record(ctx context.Context, rec Record) error
	Recent(ctx context.Context, limit int) ([]Record, error)
}

// Sealer encrypts stored payloads. *sec.XChaCha20Poly1305Cipher satisfies it.
type Sealer interface {
	EncryptEncode(plaintext []byte) (string, error)
	DecodeDecrypt(encoded string) ([]byte, error)
}

// Nop is the store used when auditing is disabled
type Nop struct{}

func (Nop) Record(context.Context, Record) error {
	return nil
}

func (Nop) Recent(context.Context, int) ([]Record, error) {
	return nil, ErrDisabled
}

// codec turns records into stored strings and back, sealing them when a Sealer is set
type codec struct {
	sealer Sealer
}

func (c codec) encode(rec Record) (string, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return "", err
	}
	if c.sealer == nil {
		return string(data), nil
	}
	return c.sealer.EncryptEncode(data)
}

func (c codec) decode(payload string) (Record, error) {
	data := []byte(payload)
	if c.sealer != nil {
		var err error
		if data, err = c.sealer.DecodeDecrypt(payload); err != nil {
			return Record{}, err
		}
	}
	var rec Record
	err := json.Unmarshal(data, &rec)
	return rec, err
}
