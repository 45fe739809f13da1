package health

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/deppfellow/foodgram/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ok(context.Context) error   { return nil }
func fail(context.Context) error { return errors.New("connection refused") }

func newMonitor(checks []string, c ...Check) *Monitor {
	logger := zerolog.Nop()
	return NewMonitor(config.HealthChecksConfig{
		Enabled:  true,
		Interval: time.Second,
		Timeout:  time.Second,
		Checks:   checks,
	}, &logger, nil, c...)
}

func TestRunAllHealthy(t *testing.T) {
	m := newMonitor(nil,
		Check{Name: "database", Probe: ok, Required: true},
		Check{Name: "redis", Probe: ok},
	)

	report := m.Run(context.Background())
	assert.True(t, report.Healthy())
	assert.Len(t, report.Checks, 2)
	assert.Equal(t, StatusHealthy, report.Checks["database"].Status)
	assert.Equal(t, report, m.Last())
}

func TestRunRequiredFailure(t *testing.T) {
	m := newMonitor(nil,
		Check{Name: "database", Probe: fail, Required: true},
		Check{Name: "redis", Probe: ok},
	)

	report := m.Run(context.Background())
	assert.False(t, report.Healthy())
	assert.Equal(t, "connection refused", report.Checks["database"].Error)
}

func TestRunOptionalFailureStaysHealthy(t *testing.T) {
	m := newMonitor(nil,
		Check{Name: "database", Probe: ok, Required: true},
		Check{Name: "redis", Probe: fail},
	)

	report := m.Run(context.Background())
	assert.True(t, report.Healthy())
	assert.Equal(t, StatusUnhealthy, report.Checks["redis"].Status)
}

func TestChecksFilteredByConfig(t *testing.T) {
	m := newMonitor([]string{"redis"},
		Check{Name: "database", Probe: fail, Required: true},
		Check{Name: "redis", Probe: ok},
	)

	assert.Equal(t, []string{"redis"}, m.Names())
	assert.True(t, m.Run(context.Background()).Healthy())
}

func TestProbeTimeout(t *testing.T) {
	slow := func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}
	m := newMonitor(nil, Check{Name: "database", Probe: slow, Required: true})

	start := time.Now()
	report := m.Run(context.Background())
	assert.False(t, report.Healthy())
	assert.Less(t, time.Since(start), 3*time.Second)
}

func TestStartStop(t *testing.T) {
	m := newMonitor(nil, Check{Name: "database", Probe: ok, Required: true})
	require.Error(t, m.Start(10*time.Millisecond))
	require.NoError(t, m.Start(time.Second))
	m.Stop()

	empty := newMonitor(nil)
	require.NoError(t, empty.Start(time.Second))
	empty.Stop()
}
