package kvdb

import (
	"context"
	"errors"
)

// Client is the list-oriented subset of a key-value store the audit log needs
type Client interface {
	Init() error
	Close() error
	GetConf() *Conf
	Ping(ctx context.Context) error

	//---- List Ops ----

	PushHead(ctx context.Context, key string, value string) error // newest first
	Len(ctx context.Context, key string) (int64, error)
	Range(ctx context.Context, key string, start int64, stop int64) ([]string, error) // 0-basis, stop inclusive
	Trim(ctx context.Context, key string, start int64, stop int64) error              // 0-basis, stop inclusive
}

var ErrNotInitialized = errors.New("kvdb: client not initialized")
