package interfaces

import "serviceregistry/domain"

// Registry is the service registry engine as seen by the HTTP surface.
//
//go:generate moq -stub -out mock/registry.go -pkg mock . Registry
type Registry interface {
	// Register validates regKey, mints credentials and stores a new healthy
	// instance. Returns:
	// 1) (result, nil) on success;
	// 2) (zero, authentication) when regKey does not match the configured key;
	// 3) (zero, bad_parameter) on missing serviceType/host or non-numeric port;
	// 4) (zero, disposed) when the engine is stopped.
	Register(req domain.RegistrationRequest, regKey string) (domain.RegistrationResult, error)

	// Unregister removes the instance. Idempotent: absent id is not an error.
	// Returns disposed when the engine is stopped.
	Unregister(id string) error

	// GetInstanceByID returns the record regardless of health.
	GetInstanceByID(id string) (domain.Instance, bool)

	// GetInstancesByType returns a snapshot of the healthy instances of the
	// given type; empty when there are none.
	GetInstancesByType(serviceType string) []domain.Instance

	// HasServiceType reports whether any record (healthy or not) of the
	// given type is registered.
	HasServiceType(serviceType string) bool

	// ValidateInstanceAuth reports whether the record exists and its bound
	// token equals presentedToken (constant-time comparison).
	ValidateInstanceAuth(id, presentedToken string) bool

	// Counts returns the number of registered instances and the number of
	// service types with at least one healthy instance.
	Counts() (instances int, serviceTypes int)

	// Dispose stops the engine: health checking halts, mutating operations
	// fail with disposed, lookups behave as on an empty registry. Idempotent.
	Dispose()

	// Init rehydrates a disposed engine back to an empty running state.
	Init()
}
