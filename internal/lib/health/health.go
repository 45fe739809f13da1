// Package health probes the service dependencies (Postgres, Redis).
//
// The same probes back the /status endpoint and a cron driven Monitor that
// re-runs them every health_checks.interval, logging and reporting every
// state change to New Relic.
package health

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/deppfellow/foodgram/internal/config"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
)

// Probe checks one dependency.
type Probe func(ctx context.Context) error

// Check is a named probe. Required checks make the whole service unhealthy
// when they fail; optional ones are only reported.
type Check struct {
	Name     string
	Probe    Probe
	Required bool
}

// Result is the outcome of a single check.
type Result struct {
	Status       string        `json:"status"`
	ResponseTime time.Duration `json:"-"`
	Elapsed      string        `json:"response_time"`
	Error        string        `json:"error,omitempty"`
	CheckedAt    time.Time     `json:"checked_at"`
}

// Report is the outcome of a full run.
type Report struct {
	Status string            `json:"status"`
	Checks map[string]Result `json:"checks"`
}

// Healthy reports whether every required check passed.
func (r Report) Healthy() bool {
	return r.Status == StatusHealthy
}

// Monitor owns the checks and, when started, a cron schedule running them.
type Monitor struct {
	checks  []Check
	timeout time.Duration
	logger  zerolog.Logger
	nrApp   *newrelic.Application

	cron *cron.Cron

	mu   sync.RWMutex
	last Report
}

// NewMonitor keeps only the checks enabled in cfg.Checks. An empty list enables all.
func NewMonitor(cfg config.HealthChecksConfig, logger *zerolog.Logger, nrApp *newrelic.Application, checks ...Check) *Monitor {
	enabled := make(map[string]bool, len(cfg.Checks))
	for _, name := range cfg.Checks {
		enabled[name] = true
	}

	var selected []Check
	for _, c := range checks {
		if len(enabled) == 0 || enabled[c.Name] {
			selected = append(selected, c)
		}
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &Monitor{
		checks:  selected,
		timeout: timeout,
		logger:  logger.With().Str("component", "health").Logger(),
		nrApp:   nrApp,
	}
}

// Names lists the checks in the order they run.
func (m *Monitor) Names() []string {
	names := make([]string, 0, len(m.checks))
	for _, c := range m.checks {
		names = append(names, c.Name)
	}
	return names
}

// Run executes every check concurrently, each bounded by the configured timeout.
func (m *Monitor) Run(ctx context.Context) Report {
	report := Report{Status: StatusHealthy, Checks: make(map[string]Result, len(m.checks))}

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	for _, c := range m.checks {
		wg.Add(1)
		go func(c Check) {
			defer wg.Done()
			res := m.runOne(ctx, c)

			mu.Lock()
			defer mu.Unlock()
			report.Checks[c.Name] = res
			if res.Status != StatusHealthy && c.Required {
				report.Status = StatusUnhealthy
			}
		}(c)
	}
	wg.Wait()

	m.mu.Lock()
	m.last = report
	m.mu.Unlock()

	return report
}

func (m *Monitor) runOne(ctx context.Context, c Check) Result {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	start := time.Now()
	err := c.Probe(ctx)
	elapsed := time.Since(start)

	res := Result{
		Status:       StatusHealthy,
		ResponseTime: elapsed,
		Elapsed:      elapsed.String(),
		CheckedAt:    start.UTC(),
	}
	if err != nil {
		res.Status = StatusUnhealthy
		res.Error = err.Error()
	}
	return res
}

// Last returns the report of the most recent run.
func (m *Monitor) Last() Report {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.last
}

// Start schedules Run every interval. It is a no-op when there is nothing to check.
func (m *Monitor) Start(interval time.Duration) error {
	if len(m.checks) == 0 {
		return nil
	}
	if interval < time.Second {
		return fmt.Errorf("health check interval %s is below 1s", interval)
	}

	m.cron = cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := m.cron.AddFunc(fmt.Sprintf("@every %s", interval), m.tick); err != nil {
		return fmt.Errorf("schedule health checks: %w", err)
	}
	m.cron.Start()

	m.logger.Info().
		Dur("interval", interval).
		Strs("checks", m.Names()).
		Msg("health monitor started")
	return nil
}

// Stop halts the schedule and waits for a running tick to finish.
func (m *Monitor) Stop() {
	if m.cron == nil {
		return
	}
	<-m.cron.Stop().Done()
	m.logger.Info().Msg("health monitor stopped")
}

func (m *Monitor) tick() {
	previous := m.Last()
	report := m.Run(context.Background())

	names := make([]string, 0, len(report.Checks))
	for name := range report.Checks {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		res := report.Checks[name]
		prev, seen := previous.Checks[name]
		if seen && prev.Status == res.Status {
			continue
		}

		if res.Status == StatusHealthy {
			m.logger.Info().Str("check", name).Dur("response_time", res.ResponseTime).Msg("dependency healthy")
			continue
		}

		m.logger.Error().
			Str("check", name).
			Str("error", res.Error).
			Dur("response_time", res.ResponseTime).
			Msg("dependency unhealthy")

		if m.nrApp != nil {
			m.nrApp.RecordCustomEvent("HealthCheckError", map[string]any{
				"check_type":       name,
				"operation":        "health_monitor",
				"error_type":       name + "_unhealthy",
				"response_time_ms": res.ResponseTime.Milliseconds(),
				"error_message":    res.Error,
			})
		}
	}
}
