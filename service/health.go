package service

import (
	"context"
	"sync"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"serviceregistry/domain"
	"serviceregistry/interfaces"
)

// Health monitor defaults.
const (
	DefaultHealthInterval      = 5000 * time.Millisecond
	DefaultHealthBatchSize     = 100
	DefaultHealthMaxConcurrent = 10
	DefaultHealthTTL           = 2000 * time.Millisecond
)

// HealthConfig tunes the health monitor.
type HealthConfig struct {
	// Enabled is the master switch; disabled means never probe.
	Enabled bool
	// Interval is the wait between end-of-cycle and start-of-next.
	Interval time.Duration
	// BatchSize is the number of instances per outer batch.
	BatchSize int
	// MaxConcurrent is the number of in-flight probes per inner chunk.
	MaxConcurrent int
	// TTL is the per-probe timeout.
	TTL time.Duration
}

// DefaultHealthConfig returns the enabled monitor with default tuning.
func DefaultHealthConfig() HealthConfig {
	return HealthConfig{
		Enabled:       true,
		Interval:      DefaultHealthInterval,
		BatchSize:     DefaultHealthBatchSize,
		MaxConcurrent: DefaultHealthMaxConcurrent,
		TTL:           DefaultHealthTTL,
	}
}

func (c HealthConfig) withDefaults() HealthConfig {
	if c.Interval <= 0 {
		c.Interval = DefaultHealthInterval
	}
	if c.BatchSize <= 0 {
		c.BatchSize = DefaultHealthBatchSize
	}
	if c.MaxConcurrent <= 0 {
		c.MaxConcurrent = DefaultHealthMaxConcurrent
	}
	if c.TTL <= 0 {
		c.TTL = DefaultHealthTTL
	}
	return c
}

// HealthMonitor periodically probes every registered instance and feeds
// pass/fail back into the registry. One cycle snapshots the instance
// list, walks it in sequential batches, splits each batch into
// sequential chunks of MaxConcurrent, and probes each chunk
// concurrently. The next cycle starts Interval after the previous one
// finished.
type HealthMonitor struct {
	cfg      HealthConfig
	registry *Registry
	prober   interfaces.HealthProber
	logger   log.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func newHealthMonitor(cfg HealthConfig, registry *Registry, prober interfaces.HealthProber, logger log.Logger) *HealthMonitor {
	return &HealthMonitor{
		cfg:      cfg,
		registry: registry,
		prober:   prober,
		logger:   log.WithPrefix(logger, "component", "HealthMonitor"),
	}
}

// Start launches the monitor loop. No-op when disabled or already running.
func (m *HealthMonitor) Start() {
	if !m.cfg.Enabled {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	m.cancel = cancel
	m.done = done
	go m.run(ctx, done)

	level.Info(m.logger).Log(
		"msg", "health monitor started",
		"interval", m.cfg.Interval,
		"batch_size", m.cfg.BatchSize,
		"max_concurrent", m.cfg.MaxConcurrent,
		"ttl", m.cfg.TTL,
	)
}

// Stop cancels the pending timer and all in-flight probes, then waits
// for the loop to exit. No-op when not running.
func (m *HealthMonitor) Stop() {
	m.mu.Lock()
	cancel, done := m.cancel, m.done
	m.cancel, m.done = nil, nil
	m.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	level.Info(m.logger).Log("msg", "health monitor stopped")
}

func (m *HealthMonitor) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	timer := time.NewTimer(m.cfg.Interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}
		m.runCycle(ctx)
		if ctx.Err() != nil {
			return
		}
		timer.Reset(m.cfg.Interval)
	}
}

// runCycle performs one pass over the snapshot. A panic mid-cycle is
// logged and does not prevent rescheduling.
func (m *HealthMonitor) runCycle(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			level.Error(m.logger).Log("msg", "health cycle panic", "panic", r)
		}
	}()

	snapshot := m.registry.snapshotInstances()
	if len(snapshot) == 0 {
		return
	}

	level.Debug(m.logger).Log("msg", "health cycle started", "instances", len(snapshot))
	for start := 0; start < len(snapshot); start += m.cfg.BatchSize {
		if ctx.Err() != nil {
			return
		}
		m.probeBatch(ctx, snapshot[start:min(start+m.cfg.BatchSize, len(snapshot))])
	}
	level.Debug(m.logger).Log("msg", "health cycle finished", "instances", len(snapshot))
}

func (m *HealthMonitor) probeBatch(ctx context.Context, batch []domain.Instance) {
	for start := 0; start < len(batch); start += m.cfg.MaxConcurrent {
		if ctx.Err() != nil {
			return
		}
		chunk := batch[start:min(start+m.cfg.MaxConcurrent, len(batch))]

		var wg sync.WaitGroup
		for _, inst := range chunk {
			wg.Add(1)
			go func(inst domain.Instance) {
				defer wg.Done()
				defer func() {
					if r := recover(); r != nil {
						level.Error(m.logger).Log("msg", "health probe panic", "service_id", inst.ID, "panic", r)
					}
				}()
				m.probeOne(ctx, inst)
			}(inst)
		}
		wg.Wait()
	}
}

func (m *HealthMonitor) probeOne(ctx context.Context, inst domain.Instance) {
	probeCtx, cancel := context.WithTimeout(ctx, m.cfg.TTL)
	defer cancel()

	body, err := m.prober.Probe(probeCtx, inst.Host, inst.Port)
	if ctx.Err() != nil {
		// Monitor stopped while the probe was in flight; drop the result.
		return
	}
	m.registry.applyProbeResult(inst, body, err)
}
