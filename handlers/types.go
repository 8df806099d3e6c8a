package handlers

import (
	"encoding/json"
	"fmt"
)

// PortNumber accepts a JSON number or a numeric string and normalizes
// both to the textual form stored on the record.
type PortNumber string

func (p *PortNumber) UnmarshalJSON(b []byte) error {
	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		*p = PortNumber(n.String())
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*p = PortNumber(s)
		return nil
	}
	return fmt.Errorf("port must be a number or a numeric string")
}

// RegisterRequest is the body of POST /service. The instance host is
// derived from the request, not the body.
type RegisterRequest struct {
	ServiceType string            `json:"serviceType" validate:"required"`
	Port        PortNumber        `json:"port" validate:"required"`
	Meta        map[string]string `json:"meta,omitempty"`
}

// RegisterResponse is the payload of a successful registration.
type RegisterResponse struct {
	ServiceID string `json:"serviceId"`
	Token     string `json:"token"`
}

// InstanceInfo is the lookup wire shape of one instance. Timestamps are
// epoch milliseconds. The bound token is never part of it.
type InstanceInfo struct {
	ServiceID   string            `json:"serviceId"`
	ServiceType string            `json:"serviceType"`
	Host        string            `json:"host"`
	Port        string            `json:"port"`
	Created     int64             `json:"created"`
	LastUpdated int64             `json:"lastUpdated"`
	Healthy     bool              `json:"healthy"`
	Meta        map[string]string `json:"meta,omitempty"`
}

// InstancesResponse is the payload of GET /services/:type.
type InstancesResponse struct {
	Instances []InstanceInfo `json:"instances"`
}

// UnregisterResponse is the payload of DELETE /service/:id.
type UnregisterResponse struct {
	ServiceID string `json:"serviceId"`
}

// AdminHealthResponse is the payload of GET /admin/health.
type AdminHealthResponse struct {
	Status        string `json:"status"`
	Timestamp     int64  `json:"timestamp"`
	InstanceCount int    `json:"instanceCount"`
	ServiceCount  int    `json:"serviceCount"`
}
