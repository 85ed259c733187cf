package sql

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// QueryStats holds round-trip statistics of a connection.
type QueryStats struct {
	// TotalQueries is the total number of queries executed.
	TotalQueries atomic.Int64
	// TotalExecs is the total number of exec statements executed.
	TotalExecs atomic.Int64
	// TotalDuration is the total time spent executing statements.
	TotalDuration atomic.Int64 // nanoseconds
	// SlowQueries is the count of statements exceeding the slow threshold.
	SlowQueries atomic.Int64
	// Errors is the count of failed statements.
	Errors atomic.Int64
}

// Stats returns a snapshot of the current statistics.
func (s *QueryStats) Stats() StatsSnapshot {
	return StatsSnapshot{
		TotalQueries:  s.TotalQueries.Load(),
		TotalExecs:    s.TotalExecs.Load(),
		TotalDuration: time.Duration(s.TotalDuration.Load()),
		SlowQueries:   s.SlowQueries.Load(),
		Errors:        s.Errors.Load(),
	}
}

// Reset resets all statistics to zero.
func (s *QueryStats) Reset() {
	s.TotalQueries.Store(0)
	s.TotalExecs.Store(0)
	s.TotalDuration.Store(0)
	s.SlowQueries.Store(0)
	s.Errors.Store(0)
}

// StatsSnapshot is a point-in-time snapshot of query statistics.
type StatsSnapshot struct {
	TotalQueries  int64
	TotalExecs    int64
	TotalDuration time.Duration
	SlowQueries   int64
	Errors        int64
}

// RoundTrips returns the number of statements sent to the server.
func (s StatsSnapshot) RoundTrips() int64 {
	return s.TotalQueries + s.TotalExecs
}

// String returns a human-readable summary of the statistics.
func (s StatsSnapshot) String() string {
	return fmt.Sprintf(
		"queries=%d execs=%d duration=%s slow=%d errors=%d",
		s.TotalQueries, s.TotalExecs, s.TotalDuration, s.SlowQueries, s.Errors,
	)
}

// StatsDriver wraps a Driver and records every statement that reaches the
// underlying connection, including statements issued by schema inspectors
// that talk to QueryContext/ExecContext directly.
type StatsDriver struct {
	*Driver
	base          *Driver
	stats         *QueryStats
	log           *zap.Logger
	slowThreshold time.Duration
	mu            sync.RWMutex
}

// StatsOption configures the StatsDriver.
type StatsOption func(*StatsDriver)

// WithSlowThreshold sets the threshold for slow statement detection.
// Default is 100ms.
func WithSlowThreshold(d time.Duration) StatsOption {
	return func(s *StatsDriver) {
		s.slowThreshold = d
	}
}

// WithQueryLogger logs every statement at debug level and slow
// statements at warn level.
func WithQueryLogger(log *zap.Logger) StatsOption {
	return func(s *StatsDriver) {
		s.log = log
	}
}

// NewStatsDriver wraps a Driver with statistics collection.
//
// Example:
//
//	drv, _ := sql.Open("postgres", dsn)
//	sd := sql.NewStatsDriver(drv, sql.WithQueryLogger(logger))
//	d, caps, err := introspect.LoadDescriber(ctx, sd, info, "")
//	fmt.Println(sd.QueryStats().Stats().RoundTrips())
func NewStatsDriver(drv *Driver, opts ...StatsOption) *StatsDriver {
	s := &StatsDriver{
		base:          drv,
		stats:         &QueryStats{},
		log:           zap.NewNop(),
		slowThreshold: 100 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Driver = NewDriver(drv.dialect, Conn{&statsExecQuerier{ExecQuerier: drv.ExecQuerier, driver: s}, drv.dialect})
	return s
}

// QueryStats returns the underlying QueryStats for reading statistics.
func (d *StatsDriver) QueryStats() *QueryStats {
	return d.stats
}

// SlowThreshold returns the current slow statement threshold.
func (d *StatsDriver) SlowThreshold() time.Duration {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.slowThreshold
}

// SetSlowThreshold updates the slow statement threshold.
func (d *StatsDriver) SetSlowThreshold(threshold time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.slowThreshold = threshold
}

// DB returns the underlying *sql.DB instance.
func (d *StatsDriver) DB() *sql.DB { return d.base.DB() }

// Close closes the underlying connection.
func (d *StatsDriver) Close() error { return d.base.Close() }

func (d *StatsDriver) record(query string, start time.Time, err error, isQuery bool) {
	duration := time.Since(start)
	if isQuery {
		d.stats.TotalQueries.Add(1)
	} else {
		d.stats.TotalExecs.Add(1)
	}
	d.stats.TotalDuration.Add(int64(duration))
	if err != nil {
		d.stats.Errors.Add(1)
	}
	d.log.Debug("statement", zap.String("query", query), zap.Duration("duration", duration), zap.Error(err))
	if duration > d.SlowThreshold() {
		d.stats.SlowQueries.Add(1)
		d.log.Warn("slow statement detected", zap.String("query", query), zap.Duration("duration", duration))
	}
}

// statsExecQuerier records statements before handing them to the wrapped
// ExecQuerier.
type statsExecQuerier struct {
	ExecQuerier
	driver *StatsDriver
}

func (e *statsExecQuerier) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	start := time.Now()
	res, err := e.ExecQuerier.ExecContext(ctx, query, args...)
	e.driver.record(query, start, err, false)
	return res, err
}

func (e *statsExecQuerier) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	start := time.Now()
	rows, err := e.ExecQuerier.QueryContext(ctx, query, args...)
	e.driver.record(query, start, err, true)
	return rows, err
}

// OpenWithStats opens a database connection with statistics collection enabled.
func OpenWithStats(driverName, source string, opts ...StatsOption) (*StatsDriver, error) {
	drv, err := Open(driverName, source)
	if err != nil {
		return nil, err
	}
	return NewStatsDriver(drv, opts...), nil
}

var _ interface {
	ExecQuerier
	Version(context.Context) (string, error)
} = (*StatsDriver)(nil)
