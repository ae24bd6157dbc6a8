package job

import (
	"context"
	"errors"
)

// ErrHealthcheckFailed is returned when the job manager health check fails.
var ErrHealthcheckFailed = errors.New("job: healthcheck failed")

var (
	errManagerNil        = errors.New("manager is nil")
	errManagerNotStarted = errors.New("manager not started")
)

// Healthcheck reports whether the manager is ticking. Compatible with
// health.CheckFunc.
//
//	storefront.WithHealthChecks(
//	    storefront.WithReadinessCheck("jobs", job.Healthcheck(manager)),
//	)
func Healthcheck(m *Manager) func(ctx context.Context) error {
	return func(context.Context) error {
		if m == nil {
			return errors.Join(ErrHealthcheckFailed, errManagerNil)
		}
		if !m.isStarted() {
			return errors.Join(ErrHealthcheckFailed, errManagerNotStarted)
		}
		return nil
	}
}
