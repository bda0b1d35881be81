package config

import (
	"errors"
	"fmt"
	"time"
)

// Timeouts holds the per-call deadlines applied to Prism API requests.
//
// Environment Variables:
//   - PRISM_TIMEOUTS_REQUEST (default: 30s), inventory and cluster reads
//   - PRISM_TIMEOUTS_SUBMIT (default: 2m), the VM create call
type Timeouts struct {
	Request time.Duration `mapstructure:"request"`
	Submit  time.Duration `mapstructure:"submit"`
}

// Validate checks that every timeout is positive.
func (t Timeouts) Validate() error {
	var errs []error
	if t.Request <= 0 {
		errs = append(errs, fmt.Errorf("timeouts.request must be positive, got %v", t.Request))
	}
	if t.Submit <= 0 {
		errs = append(errs, fmt.Errorf("timeouts.submit must be positive, got %v", t.Submit))
	}
	return errors.Join(errs...)
}

// DefaultTimeouts returns the timeouts used when nothing is configured.
func DefaultTimeouts() Timeouts {
	return Timeouts{
		Request: 30 * time.Second,
		Submit:  2 * time.Minute,
	}
}

