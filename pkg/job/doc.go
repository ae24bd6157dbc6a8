// Package job runs periodic maintenance tasks inside the process.
//
// Tasks are plain structs with Name, Schedule and Handle methods; no
// interface import is needed:
//
//	type SweepSessions struct{ store session.Store }
//
//	func (t *SweepSessions) Name() string     { return "sweep_sessions" }
//	func (t *SweepSessions) Schedule() string { return "@every 10m" }
//	func (t *SweepSessions) Handle(ctx context.Context) error {
//	    _, err := t.store.DeleteExpired(ctx)
//	    return err
//	}
//
// Schedules are standard 5-field cron expressions or descriptors such as
// "@hourly" and "@every 10m". A run that is still going when the next one
// is due makes the next one skip.
//
// Wire the manager into the app lifecycle:
//
//	jobs, err := job.NewManager(
//	    job.WithScheduledTask(&SweepSessions{store: store}),
//	    job.WithLogger(log),
//	)
//	...
//	app.Run(addr,
//	    storefront.StartupHook(jobs.StartFunc()),
//	    storefront.ShutdownHook(jobs.Shutdown()),
//	)
package job
