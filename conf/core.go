package conf

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"golang.org/x/time/rate"

	"github.com/veenu-wootz/qualityinspectionreport-vmerge/audit"
	"github.com/veenu-wootz/qualityinspectionreport-vmerge/db"
	"github.com/veenu-wootz/qualityinspectionreport-vmerge/db/kvdb"
	"github.com/veenu-wootz/qualityinspectionreport-vmerge/db/kvdb/impls/redis"
	"github.com/veenu-wootz/qualityinspectionreport-vmerge/db/sqldb"
	_ "github.com/veenu-wootz/qualityinspectionreport-vmerge/db/sqldb/impls/mysql" // registers "mysql"
	_ "github.com/veenu-wootz/qualityinspectionreport-vmerge/db/sqldb/impls/pgsql" // registers "pgsql"
	"github.com/veenu-wootz/qualityinspectionreport-vmerge/qir"
	"github.com/veenu-wootz/qualityinspectionreport-vmerge/sec"
	"github.com/veenu-wootz/qualityinspectionreport-vmerge/svc"
	"github.com/veenu-wootz/qualityinspectionreport-vmerge/throttle"
)

const (
	DefaultAppName = "qirmerge"
	DefaultListen  = ":8080"

	ThrottleGroupMerge = "merge"
)

// Core - common config
type Core struct {
	AppName  string       `json:"app_name"`
	Version  string       `json:"version"`
	Listen   string       `json:"listen"` // HTTP Server Listen IP:PORT Address
	Compose  ComposeConf  `json:"compose"`
	Fetch    FetchConf    `json:"fetch"`
	Throttle ThrottleConf `json:"throttle"`
	Auth     AuthConf     `json:"auth"`

	AppRoot             string                        `json:"-"` // directory holding config/
	RootCtx             context.Context               `json:"-"` // Global Context with RootCancel
	RootCancel          context.CancelFunc            `json:"-"` // CancelFunc for RootCtx
	BackendHttpClient   *http.Client                  `json:"-"` // for fetching remote documents
	FetchLimiter        *rate.Limiter                 `json:"-"` // nil = unlimited
	ThrottleBucketStore *throttle.BucketStore[string] `json:"-"` // PrepareThrottleBucketStore
	AuditConf           AuditConf                     `json:"-"` // PrepareAuditStore
	AuditStore          audit.Store                   `json:"-"` // PrepareAuditStore
	BackendKVDBClient   kvdb.Client                   `json:"-"`
	BackendSQLDBClient  sqldb.Client                  `json:"-"`

	services []svc.Service // Services to Manage
	done     chan error
}

type ComposeConf struct {
	InspectionPage       int  `json:"inspection_page"`
	VisualInspectionPage int  `json:"visual_inspection_page"` // 0 = unassigned
	StampHeadings        bool `json:"stamp_headings"`
	Compress             bool `json:"compress"`
}

type FetchConf struct {
	TimeoutSec    int     `json:"timeout_sec"`
	MaxConcurrent int     `json:"max_concurrent"`
	RatePerSec    float64 `json:"rate_per_sec"` // 0 = unlimited
	RateBurst     int     `json:"rate_burst"`
}

type ThrottleConf struct {
	Enabled             bool `json:"enabled"`
	Burst               int  `json:"burst"`
	Increment           int  `json:"increment"`
	PeriodSec           int  `json:"period_sec"`
	CleanupCycleSec     int  `json:"cleanup_cycle_sec"`
	CleanupOlderThanSec int  `json:"cleanup_older_than_sec"`
}

func (t ThrottleConf) bucketConf() *throttle.BucketConf {
	return &throttle.BucketConf{
		Burst:     t.Burst,
		Increment: t.Increment,
		Period:    time.Duration(t.PeriodSec) * time.Second,
	}
}

type AuthConf struct {
	JWTSecret string `json:"jwt_secret"` // empty = no auth
	Issuer    string `json:"issuer"`
}

type AuditConf struct {
	Type          string     `json:"type"` // redis, pgsql, mysql
	KV            kvdb.Conf  `json:"kv"`
	SQL           sqldb.Conf `json:"sql"`
	MaxRecords    int        `json:"max_records"`
	EncryptionKey string     `json:"encryption_key"` // 32 bytes, optional
}

// Defaults is the configuration used for anything .core.json leaves out
func Defaults() Core {
	return Core{
		AppName: DefaultAppName,
		Listen:  DefaultListen,
		Compose: ComposeConf{
			InspectionPage: qir.DefaultInspectionPage,
			StampHeadings:  true,
			Compress:       true,
		},
		Fetch: FetchConf{
			TimeoutSec:    int(qir.DefaultFetchTimeout / time.Second),
			MaxConcurrent: qir.DefaultMaxConcurrentFetches,
			RateBurst:     1,
		},
		Throttle: ThrottleConf{
			Burst:               10,
			Increment:           1,
			PeriodSec:           6,
			CleanupCycleSec:     60,
			CleanupOlderThanSec: 600,
		},
	}
}

// BaseInit - 1st step for initialization
// 1. set AppRoot
// 2. load config/.core.json over the defaults (a missing file keeps the defaults)
// 3. apply the PORT environment override
// 4. prepare base fields
func (c *Core) BaseInit(appRoot string, rootCtx context.Context, rootCancel context.CancelFunc) error {
	*c = Defaults()
	c.AppRoot = appRoot
	found, err := readJSONFile(filepath.Join(appRoot, "config", ".core.json"), c)
	if err != nil {
		return err
	}
	if !found {
		log.Printf("[INFO] no config/.core.json under %q, using defaults", appRoot)
	}
	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
		host, _, splitErr := net.SplitHostPort(c.Listen)
		if splitErr != nil {
			host = ""
		}
		c.Listen = net.JoinHostPort(host, port)
	}
	if err = c.Validate(); err != nil {
		return err
	}
	c.RootCtx = rootCtx
	c.RootCancel = rootCancel
	c.prepareDefaultFeatures()
	return nil
}

// Validate checks values that would only fail later, in the middle of a request
func (c *Core) Validate() error {
	var errs []error
	if c.Compose.InspectionPage < 1 {
		errs = append(errs, fmt.Errorf("compose.inspection_page must be >= 1, got %d", c.Compose.InspectionPage))
	}
	if c.Compose.VisualInspectionPage < 0 {
		errs = append(errs, fmt.Errorf("compose.visual_inspection_page must be >= 0, got %d", c.Compose.VisualInspectionPage))
	}
	if c.Fetch.TimeoutSec < 0 || c.Fetch.MaxConcurrent < 0 || c.Fetch.RatePerSec < 0 || c.Fetch.RateBurst < 0 {
		errs = append(errs, errors.New("fetch values must not be negative"))
	}
	if c.Throttle.Enabled {
		if err := c.Throttle.bucketConf().Validate(); err != nil {
			errs = append(errs, fmt.Errorf("throttle: %w", err))
		}
		if c.Throttle.CleanupCycleSec < 1 {
			errs = append(errs, errors.New("throttle: cleanup_cycle_sec must be >= 1"))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

func (c *Core) prepareDefaultFeatures() {
	c.BackendHttpClient = &http.Client{}
	if c.Fetch.RatePerSec > 0 {
		burst := c.Fetch.RateBurst
		if burst < 1 {
			burst = 1
		}
		c.FetchLimiter = rate.NewLimiter(rate.Limit(c.Fetch.RatePerSec), burst)
	}
	c.AuditStore = audit.Nop{}
}

// readJSONFile decodes path into v. found is false when the file does not exist.
func readJSONFile(path string, v any) (found bool, err error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err = json.Unmarshal(data, v); err != nil {
		return true, fmt.Errorf("config: %s: %w", filepath.Base(path), err)
	}
	return true, nil
}

func (c *Core) AddService(s svc.Service) {
	log.Printf("[INFO] adding service: %s", s.Name())
	c.services = append(c.services, s)
}

func (c *Core) StartServices() error {
	c.done = make(chan error, len(c.services))
	for _, s := range c.services {
		if err := s.Start(); err != nil {
			return fmt.Errorf("starting %s: %w", s.Name(), err)
		}
		go func() {
			c.done <- <-s.Done()
		}()
	}
	return nil
}

func (c *Core) WaitServicesDone() error {
	for i := 0; i < len(c.services); i++ {
		if err := <-c.done; err != nil {
			return err
		}
	}
	return nil
}

func (c *Core) StopServices() {
	for _, s := range c.services {
		s.Stop()
	}
}

var once sync.Once

// ListenShutdownSignals cancels RootCtx on SIGINT/SIGTERM
func (c *Core) ListenShutdownSignals() {
	once.Do(func() {
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			sig := <-sigs
			log.Printf("[INFO] got signal [%s]. shutting down app [%s] ...", sig, c.AppName)
			c.RootCancel() // broadcast to all child services via Context.Done()
		}()
	})
	log.Printf("[INFO][CORE] shutdown signal listener started")
}

// PrepareThrottleBucketStore sets up per-client-IP limiting of merges when enabled
func (c *Core) PrepareThrottleBucketStore() {
	if !c.Throttle.Enabled {
		return
	}
	t := c.Throttle
	c.ThrottleBucketStore = throttle.NewBucketStore[string](c.RootCtx,
		time.Duration(t.CleanupCycleSec)*time.Second, time.Duration(t.CleanupOlderThanSec)*time.Second)
	c.ThrottleBucketStore.SetBucketGroup(ThrottleGroupMerge, t.bucketConf())
	c.AddService(c.ThrottleBucketStore)
}

// PrepareAuditStore connects the store described by config/.audit.json.
// Without the file, auditing stays disabled (audit.Nop).
func (c *Core) PrepareAuditStore() error {
	found, err := readJSONFile(filepath.Join(c.AppRoot, "config", ".audit.json"), &c.AuditConf)
	if err != nil {
		return err
	}
	if !found || c.AuditConf.Type == "" {
		log.Println("[INFO] audit disabled")
		return nil
	}

	var sealer audit.Sealer
	if c.AuditConf.EncryptionKey != "" {
		cipher, err := sec.NewXChaCha20Poly1305CipherBase64([]byte(c.AuditConf.EncryptionKey))
		if err != nil {
			return fmt.Errorf("audit encryption key: %w", err)
		}
		sealer = cipher
	}

	ctx, cancel := context.WithTimeout(c.RootCtx, 10*time.Second)
	defer cancel()

	switch c.AuditConf.Type {
	case "redis":
		client := redis.New(&c.AuditConf.KV)
		if err = client.Init(); err != nil {
			return err
		}
		c.BackendKVDBClient = client
		if err = client.Ping(ctx); err != nil {
			return fmt.Errorf("audit redis: %w", err)
		}
		c.AuditStore = audit.NewKVStore(client, c.AuditConf.KV.Key, c.AuditConf.MaxRecords, sealer)
	case "pgsql", "mysql":
		c.AuditConf.SQL.Type = c.AuditConf.Type
		if err = c.AuditConf.SQL.Validate(); err != nil {
			return fmt.Errorf("audit sql: %w", err)
		}
		client, err := sqldb.New(c.AuditConf.Type, &c.AuditConf.SQL)
		if err != nil {
			return err
		}
		if err = client.Init(); err != nil {
			return err
		}
		c.BackendSQLDBClient = client
		store := audit.NewSQLStore(client, c.AuditConf.MaxRecords, sealer)
		if err = store.EnsureSchema(ctx); err != nil {
			return err
		}
		c.AuditStore = store
	default:
		return fmt.Errorf("unsupported audit store type %q (supported: redis, %s)",
			c.AuditConf.Type, strings.Join(sqldb.Types(), ", "))
	}
	log.Printf("[INFO] audit records go to %s", c.AuditConf.Type)
	return nil
}

// MergerConfig maps the compose and fetch sections onto the merge engine
func (c *Core) MergerConfig() qir.Config {
	mc := qir.DefaultConfig()
	mc.InspectionPage = c.Compose.InspectionPage
	mc.VisualInspectionPage = c.Compose.VisualInspectionPage
	mc.StampHeadings = c.Compose.StampHeadings
	mc.Layout.Compress = c.Compose.Compress
	if c.Fetch.MaxConcurrent > 0 {
		mc.MaxConcurrentFetches = c.Fetch.MaxConcurrent
	}
	return mc
}

func (c *Core) NewResolver() *qir.Resolver {
	return qir.NewResolver(c.BackendHttpClient, time.Duration(c.Fetch.TimeoutSec)*time.Second, c.FetchLimiter)
}

func (c *Core) NewMerger() *qir.Merger {
	return qir.NewMerger(c.NewResolver(), c.MergerConfig())
}

func (c *Core) ResourceCleanUp() {
	log.Println("[INFO] App Resource Cleaning Up...")
	if c.BackendKVDBClient != nil {
		db.CloseClient("audit kvdb", c.BackendKVDBClient)
	}
	if c.BackendSQLDBClient != nil {
		db.CloseClient("audit sqldb", c.BackendSQLDBClient)
	}
	log.Println("[INFO] App Resource Cleanup Complete")
}
