package sqldb

import (
	"errors"
	"fmt"
)

type Conf struct {
	Type string `json:"type"` // mysql, pgsql
	Host string `json:"host"`
	Port int    `json:"port"`
	User string `json:"user"`
	PW   string `json:"pw"`
	DB   string `json:"db"`
	TZ   string `json:"tz"`  // Connection Timezone
	DSN  string `json:"dsn"` // To Overwrite Default DSN

	MaxConns int `json:"max_conns"` // 0 = driver default of the impl
}

// Validate reports every missing or malformed field at once.
// With DSN set, only the pool settings are checked.
func (c *Conf) Validate() error {
	var errs []error
	if c.DSN == "" {
		if c.Host == "" {
			errs = append(errs, errors.New("host is required without dsn"))
		}
		if c.DB == "" {
			errs = append(errs, errors.New("db is required without dsn"))
		}
		if c.Port < 0 || c.Port > 65535 {
			errs = append(errs, fmt.Errorf("port %d out of range", c.Port))
		}
	}
	if c.MaxConns < 0 {
		errs = append(errs, fmt.Errorf("max_conns must be >= 0, got %d", c.MaxConns))
	}
	return errors.Join(errs...)
}
