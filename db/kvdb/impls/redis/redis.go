package redis

import (
	"context"
	"log"

	"github.com/veenu-wootz/qualityinspectionreport-vmerge/db/kvdb"

	lowimpl "github.com/redis/go-redis/v9"
)

type Client struct {
	Conf *kvdb.Conf

	// implementation details, not exported
	internal *lowimpl.Client
}

// Ensure redis.Client implements kvdb.Client interface
var _ kvdb.Client = (*Client)(nil)

func New(conf *kvdb.Conf) *Client {
	return &Client{Conf: conf}
}

func (c *Client) Init() error {
	c.internal = lowimpl.NewClient(&lowimpl.Options{
		Addr:     c.Conf.Addr(),
		Password: c.Conf.PW,
		DB:       c.Conf.DB,
	})
	log.Printf("[INFO] redis client initialized for %s db=%d", c.Conf.Addr(), c.Conf.DB)
	return nil
}

func (c *Client) Close() error {
	if c.internal == nil {
		return nil
	}
	return c.internal.Close()
}

func (c *Client) GetConf() *kvdb.Conf {
	return c.Conf
}

func (c *Client) Ping(ctx context.Context) error {
	if c.internal == nil {
		return kvdb.ErrNotInitialized
	}
	return c.internal.Ping(ctx).Err()
}

//---- List Ops ----

func (c *Client) PushHead(ctx context.Context, key string, value string) error {
	return c.internal.LPush(ctx, key, value).Err()
}

func (c *Client) Len(ctx context.Context, key string) (int64, error) {
	return c.internal.LLen(ctx, key).Result()
}

func (c *Client) Range(ctx context.Context, key string, start int64, stop int64) ([]string, error) {
	return c.internal.LRange(ctx, key, start, stop).Result()
}

func (c *Client) Trim(ctx context.Context, key string, start int64, stop int64) error {
	return c.internal.LTrim(ctx, key, start, stop).Err()
}
