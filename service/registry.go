package service

import (
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"serviceregistry/domain"
	"serviceregistry/interfaces"
)

// Ensure the engine satisfies the surface contract.
var _ interfaces.Registry = (*Registry)(nil)

// Config holds the registry engine configuration.
type Config struct {
	// RegistrationKey is the process-wide shared secret presented by
	// callers of Register. Required.
	RegistrationKey string
	Health          HealthConfig
}

// Registry is the registry engine: single owner of the dual index,
// issuer of instance credentials, and driver of lifecycle events. The
// embedded health monitor feeds probe outcomes back through it.
//
// Mutating operations are serialized by opMu; the index carries its own
// read lock so lookups (including lookups from event subscribers) see a
// consistent snapshot at any point.
type Registry struct {
	regKey       string
	bus          *EventBus
	timeProvider interfaces.TimeProvider
	logger       log.Logger
	monitor      *HealthMonitor

	opMu     sync.Mutex
	index    *instanceIndex
	disposed atomic.Bool
}

// NewRegistry creates a running registry engine and starts its health
// monitor. The registration key is required; an empty key is a
// configuration error.
func NewRegistry(cfg Config, prober interfaces.HealthProber, timeProvider interfaces.TimeProvider, logger log.Logger) (*Registry, error) {
	if strings.TrimSpace(cfg.RegistrationKey) == "" {
		return nil, NewBadParameterError("registration key is required", nil)
	}

	r := &Registry{
		regKey:       cfg.RegistrationKey,
		bus:          NewEventBus(logger),
		timeProvider: timeProvider,
		logger:       log.WithPrefix(logger, "component", "Registry"),
		index:        newInstanceIndex(),
	}
	r.monitor = newHealthMonitor(cfg.Health.withDefaults(), r, prober, logger)
	r.monitor.Start()
	return r, nil
}

// Subscribe attaches a lifecycle event handler. Expected at startup,
// before the engine starts serving.
func (r *Registry) Subscribe(t domain.EventType, h domain.EventHandler) {
	r.bus.Subscribe(t, h)
}

// Register mints credentials and stores a new healthy instance.
func (r *Registry) Register(req domain.RegistrationRequest, regKey string) (domain.RegistrationResult, error) {
	r.opMu.Lock()
	defer r.opMu.Unlock()

	if r.disposed.Load() {
		return domain.RegistrationResult{}, NewDisposedError("registry is disposed", nil)
	}
	if !SecretsEqual(regKey, r.regKey) {
		return domain.RegistrationResult{}, NewAuthenticationError("invalid registration key", nil)
	}
	if err := validateRegistration(req); err != nil {
		return domain.RegistrationResult{}, err
	}

	token, err := mintToken()
	if err != nil {
		return domain.RegistrationResult{}, NewInternalServerError("failed to mint instance token", err)
	}
	now := r.timeProvider.Now()
	rec := domain.Instance{
		ID:          mintID(),
		ServiceType: req.ServiceType,
		Host:        req.Host,
		Port:        req.Port,
		Created:     now,
		LastUpdated: now,
		Healthy:     true,
		Meta:        req.Meta,
		Token:       token,
	}
	if err := r.index.insert(rec); err != nil {
		return domain.RegistrationResult{}, NewInternalServerError("failed to store instance", err)
	}

	level.Info(r.logger).Log(
		"msg", "instance registered",
		"service_id", rec.ID,
		"service_type", rec.ServiceType,
		"host", rec.Host,
		"port", rec.Port,
	)
	r.bus.Publish(domain.Event{Type: domain.EventInstanceRegistered, Instance: scrubToken(rec)})

	return domain.RegistrationResult{ID: rec.ID, Token: token}, nil
}

// Unregister removes the instance. Absent ids are not an error.
func (r *Registry) Unregister(id string) error {
	r.opMu.Lock()
	defer r.opMu.Unlock()

	if r.disposed.Load() {
		return NewDisposedError("registry is disposed", nil)
	}

	rec, ok := r.index.remove(id)
	if !ok {
		return nil
	}

	level.Info(r.logger).Log(
		"msg", "instance removed",
		"service_id", rec.ID,
		"service_type", rec.ServiceType,
	)
	r.bus.Publish(domain.Event{Type: domain.EventInstanceRemoved, Instance: scrubToken(rec)})
	return nil
}

// GetInstanceByID returns the record regardless of health.
func (r *Registry) GetInstanceByID(id string) (domain.Instance, bool) {
	if r.disposed.Load() {
		return domain.Instance{}, false
	}
	rec, ok := r.index.getByID(id)
	if !ok {
		return domain.Instance{}, false
	}
	return scrubToken(rec), true
}

// GetInstancesByType returns a snapshot of the healthy instances of the type.
func (r *Registry) GetInstancesByType(serviceType string) []domain.Instance {
	if r.disposed.Load() {
		return []domain.Instance{}
	}
	recs := r.index.listByType(serviceType)
	for i := range recs {
		recs[i] = scrubToken(recs[i])
	}
	return recs
}

// HasServiceType reports whether any record of the type is registered.
func (r *Registry) HasServiceType(serviceType string) bool {
	if r.disposed.Load() {
		return false
	}
	return r.index.hasType(serviceType)
}

// ValidateInstanceAuth reports whether the record exists and its bound
// token equals the presented one.
func (r *Registry) ValidateInstanceAuth(id, presentedToken string) bool {
	if r.disposed.Load() {
		return false
	}
	rec, ok := r.index.getByID(id)
	if !ok {
		return false
	}
	return SecretsEqual(rec.Token, presentedToken)
}

// Counts returns the number of instances and of served service types.
func (r *Registry) Counts() (int, int) {
	if r.disposed.Load() {
		return 0, 0
	}
	return r.index.counts()
}

// Dispose stops the engine. Health checking halts, in-flight probes are
// cancelled, no further events fire after Dispose returns. Idempotent.
func (r *Registry) Dispose() {
	if !r.disposed.CompareAndSwap(false, true) {
		return
	}
	r.monitor.Stop()

	r.opMu.Lock()
	r.index.clear()
	r.opMu.Unlock()

	level.Info(r.logger).Log("msg", "registry disposed")
}

// Init rehydrates a disposed engine back to an empty running state.
func (r *Registry) Init() {
	if !r.disposed.CompareAndSwap(true, false) {
		return
	}
	r.monitor.Start()
	level.Info(r.logger).Log("msg", "registry initialized")
}

// snapshotInstances is the health monitor's view of the index.
func (r *Registry) snapshotInstances() []domain.Instance {
	return r.index.listAll()
}

// applyProbeResult feeds one probe outcome back into the index and
// publishes the matching event. A record unregistered between snapshot
// and completion is skipped; health marks are edge-triggered so repeated
// outcomes do not touch the record.
func (r *Registry) applyProbeResult(inst domain.Instance, body map[string]any, probeErr error) {
	r.opMu.Lock()
	defer r.opMu.Unlock()

	if r.disposed.Load() {
		return
	}

	rec, ok := r.index.getByID(inst.ID)
	if !ok {
		return
	}

	now := r.timeProvider.Now()
	if probeErr == nil {
		if updated, changed := r.index.markHealthy(inst.ID, now); changed {
			rec = updated
			level.Info(r.logger).Log(
				"msg", "instance recovered",
				"service_id", rec.ID,
				"service_type", rec.ServiceType,
			)
		}
		r.bus.Publish(domain.Event{Type: domain.EventHealthCheckPassed, Instance: scrubToken(rec), ProbeBody: body})
		return
	}

	if updated, changed := r.index.markUnhealthy(inst.ID, now); changed {
		rec = updated
		level.Warn(r.logger).Log(
			"msg", "instance unhealthy",
			"service_id", rec.ID,
			"service_type", rec.ServiceType,
			"err", probeErr,
		)
	}
	r.bus.Publish(domain.Event{Type: domain.EventHealthCheckFailed, Instance: scrubToken(rec)})
}

// validateRegistration checks the caller-supplied fields.
func validateRegistration(req domain.RegistrationRequest) error {
	if strings.TrimSpace(req.ServiceType) == "" {
		return NewBadParameterError("serviceType is required", nil)
	}
	if strings.TrimSpace(req.Host) == "" {
		return NewBadParameterError("host is required", nil)
	}
	port, err := strconv.Atoi(req.Port)
	if err != nil || port <= 0 || port > 65535 {
		return NewBadParameterError("port must be a valid port (1-65535)", nil)
	}
	return nil
}

// scrubToken strips the bound credential from copies handed to lookups
// and event subscribers.
func scrubToken(rec domain.Instance) domain.Instance {
	rec.Token = ""
	return rec
}
