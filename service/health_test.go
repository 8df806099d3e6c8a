package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"serviceregistry/domain"
	"serviceregistry/interfaces/mock"
)

// countingProber tracks total and concurrent in-flight probes.
type countingProber struct {
	mu       sync.Mutex
	inFlight int
	maxSeen  int
	total    int64
	delay    time.Duration
	fail     func(host, port string) bool
}

func (p *countingProber) Probe(ctx context.Context, host, port string) (map[string]any, error) {
	p.mu.Lock()
	p.inFlight++
	if p.inFlight > p.maxSeen {
		p.maxSeen = p.inFlight
	}
	p.mu.Unlock()
	atomic.AddInt64(&p.total, 1)

	if p.delay > 0 {
		select {
		case <-time.After(p.delay):
		case <-ctx.Done():
		}
	}

	p.mu.Lock()
	p.inFlight--
	p.mu.Unlock()

	if p.fail != nil && p.fail(host, port) {
		return nil, fmt.Errorf("probe %s:%s failed", host, port)
	}
	return map[string]any{}, nil
}

func (p *countingProber) max() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.maxSeen
}

func registerN(t *testing.T, r *Registry, serviceType string, n int) []string {
	t.Helper()
	ids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		result, err := r.Register(domain.RegistrationRequest{
			ServiceType: serviceType,
			Host:        "localhost",
			Port:        fmt.Sprintf("%d", 3000+i),
		}, testRegKey)
		require.NoError(t, err)
		ids = append(ids, result.ID)
	}
	return ids
}

func TestHealthMonitor_UnhealthyHidesFromListing(t *testing.T) {
	r := newTestRegistry(t)
	registerN(t, r, "users", 3)

	var passed, failed int
	r.Subscribe(domain.EventHealthCheckPassed, func(domain.Event) { passed++ })
	r.Subscribe(domain.EventHealthCheckFailed, func(domain.Event) { failed++ })

	prober := &countingProber{
		fail: func(host, port string) bool { return port == "3000" },
	}
	m := newHealthMonitor(HealthConfig{Enabled: true}.withDefaults(), r, prober, log.NewNopLogger())
	m.runCycle(context.Background())

	healthy := r.GetInstancesByType("users")
	assert.Len(t, healthy, 2)
	for _, rec := range healthy {
		assert.NotEqual(t, "3000", rec.Port)
	}

	// The failed instance still exists, just hidden.
	var hidden *domain.Instance
	for _, rec := range r.snapshotInstances() {
		if rec.Port == "3000" {
			hidden = &rec
			break
		}
	}
	require.NotNil(t, hidden)
	assert.False(t, hidden.Healthy)

	assert.Equal(t, 2, passed)
	assert.Equal(t, 1, failed)
}

func TestHealthMonitor_CycleProbesEveryInstanceOnce(t *testing.T) {
	r := newTestRegistry(t)
	registerN(t, r, "users", 25)

	prober := &countingProber{delay: 10 * time.Millisecond}
	m := newHealthMonitor(HealthConfig{
		Enabled:       true,
		Interval:      5000 * time.Millisecond,
		BatchSize:     100,
		MaxConcurrent: 10,
		TTL:           2000 * time.Millisecond,
	}, r, prober, log.NewNopLogger())
	m.runCycle(context.Background())

	assert.Equal(t, int64(25), atomic.LoadInt64(&prober.total), "one probe per instance per cycle")
	assert.LessOrEqual(t, prober.max(), 10, "at most MaxConcurrent probes in flight")
	assert.Greater(t, prober.max(), 1, "probes within a chunk run concurrently")
}

func TestHealthMonitor_SmallChunks(t *testing.T) {
	r := newTestRegistry(t)
	registerN(t, r, "users", 7)

	prober := &countingProber{delay: 5 * time.Millisecond}
	m := newHealthMonitor(HealthConfig{
		Enabled:       true,
		Interval:      time.Second,
		BatchSize:     3,
		MaxConcurrent: 2,
		TTL:           time.Second,
	}, r, prober, log.NewNopLogger())
	m.runCycle(context.Background())

	assert.Equal(t, int64(7), atomic.LoadInt64(&prober.total))
	assert.LessOrEqual(t, prober.max(), 2)
}

func TestHealthMonitor_RecoveryRejoinsListing(t *testing.T) {
	r := newTestRegistry(t)
	registerN(t, r, "users", 1)

	failing := true
	prober := &countingProber{
		fail: func(string, string) bool { return failing },
	}
	m := newHealthMonitor(HealthConfig{Enabled: true}.withDefaults(), r, prober, log.NewNopLogger())

	m.runCycle(context.Background())
	assert.Empty(t, r.GetInstancesByType("users"))

	failing = false
	m.runCycle(context.Background())
	assert.Len(t, r.GetInstancesByType("users"), 1)
}

func TestHealthMonitor_UnregisterMidCycleIsSafe(t *testing.T) {
	r := newTestRegistry(t)
	ids := registerN(t, r, "users", 2)

	// The first probe to run unregisters ids[1] while it is in flight, so
	// the snapshot holds a record that no longer exists by the time its
	// result is applied.
	var once sync.Once
	prober := &mock.HealthProberMock{
		ProbeFunc: func(ctx context.Context, host, port string) (map[string]any, error) {
			once.Do(func() {
				require.NoError(t, r.Unregister(ids[1]))
			})
			return map[string]any{}, nil
		},
	}
	m := newHealthMonitor(HealthConfig{
		Enabled:       true,
		Interval:      time.Second,
		BatchSize:     100,
		MaxConcurrent: 1,
		TTL:           time.Second,
	}, r, prober, log.NewNopLogger())
	m.runCycle(context.Background())

	list := r.GetInstancesByType("users")
	assert.Len(t, list, 1)
	assert.Equal(t, ids[0], list[0].ID)
}

func TestHealthMonitor_ProbeContextCarriesTTL(t *testing.T) {
	r := newTestRegistry(t)
	registerN(t, r, "users", 1)

	var hadDeadline bool
	prober := &mock.HealthProberMock{
		ProbeFunc: func(ctx context.Context, host, port string) (map[string]any, error) {
			_, hadDeadline = ctx.Deadline()
			return map[string]any{}, nil
		},
	}
	m := newHealthMonitor(HealthConfig{Enabled: true}.withDefaults(), r, prober, log.NewNopLogger())
	m.runCycle(context.Background())

	assert.True(t, hadDeadline)
}

func TestHealthMonitor_PeriodicCycles(t *testing.T) {
	prober := &countingProber{}
	r, err := NewRegistry(Config{
		RegistrationKey: testRegKey,
		Health: HealthConfig{
			Enabled:       true,
			Interval:      20 * time.Millisecond,
			BatchSize:     100,
			MaxConcurrent: 10,
			TTL:           time.Second,
		},
	}, prober, NewRealTimeProvider(), log.NewNopLogger())
	require.NoError(t, err)
	defer r.Dispose()

	registerN(t, r, "users", 1)

	assert.Eventually(t, func() bool {
		return atomic.LoadInt64(&prober.total) >= 2
	}, 2*time.Second, 10*time.Millisecond, "cycles must reschedule after completing")
}

func TestHealthMonitor_StopHaltsProbing(t *testing.T) {
	prober := &countingProber{}
	r, err := NewRegistry(Config{
		RegistrationKey: testRegKey,
		Health: HealthConfig{
			Enabled:       true,
			Interval:      10 * time.Millisecond,
			BatchSize:     100,
			MaxConcurrent: 10,
			TTL:           time.Second,
		},
	}, prober, NewRealTimeProvider(), log.NewNopLogger())
	require.NoError(t, err)

	registerN(t, r, "users", 1)
	assert.Eventually(t, func() bool {
		return atomic.LoadInt64(&prober.total) >= 1
	}, 2*time.Second, 5*time.Millisecond)

	r.Dispose()
	after := atomic.LoadInt64(&prober.total)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, after, atomic.LoadInt64(&prober.total), "no probes after dispose")
}

func TestHealthMonitor_DisabledNeverProbes(t *testing.T) {
	prober := &countingProber{}
	r, err := NewRegistry(Config{
		RegistrationKey: testRegKey,
		Health:          HealthConfig{Enabled: false, Interval: 5 * time.Millisecond},
	}, prober, NewRealTimeProvider(), log.NewNopLogger())
	require.NoError(t, err)
	defer r.Dispose()

	registerN(t, r, "users", 1)
	time.Sleep(30 * time.Millisecond)
	assert.Zero(t, atomic.LoadInt64(&prober.total))
}
