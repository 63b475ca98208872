package throttle

import (
	"errors"
	"time"
)

// BucketConf is shared by every bucket of a group
type BucketConf struct {
	Burst     int           // capacity; a new client starts with a full bucket
	Increment int           // tokens added per Period
	Period    time.Duration // refill interval
}

// Validate rejects settings under which a bucket would never admit or never refill
func (c *BucketConf) Validate() error {
	var errs []error
	if c.Burst < 1 {
		errs = append(errs, errors.New("burst must be >= 1"))
	}
	if c.Increment < 1 {
		errs = append(errs, errors.New("increment must be >= 1"))
	}
	if c.Period <= 0 {
		errs = append(errs, errors.New("period must be positive"))
	}
	return errors.Join(errs...)
}
