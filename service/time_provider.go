package service

import (
	"time"

	"serviceregistry/interfaces"
)

// realTimeProvider implements interfaces.TimeProvider with the system clock.
type realTimeProvider struct{}

// NewRealTimeProvider creates a TimeProvider backed by time.Now().UTC().
func NewRealTimeProvider() interfaces.TimeProvider {
	return realTimeProvider{}
}

func (realTimeProvider) Now() time.Time {
	return time.Now().UTC()
}
