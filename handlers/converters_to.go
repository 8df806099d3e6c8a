package handlers

import (
	"serviceregistry/domain"
)

// toInstanceInfo converts a record snapshot to its wire shape.
func toInstanceInfo(rec domain.Instance) InstanceInfo {
	return InstanceInfo{
		ServiceID:   rec.ID,
		ServiceType: rec.ServiceType,
		Host:        rec.Host,
		Port:        rec.Port,
		Created:     rec.Created.UnixMilli(),
		LastUpdated: rec.LastUpdated.UnixMilli(),
		Healthy:     rec.Healthy,
		Meta:        rec.Meta,
	}
}

// toInstancesResponse converts registry snapshots to the API response.
func toInstancesResponse(instances []domain.Instance) InstancesResponse {
	out := make([]InstanceInfo, 0, len(instances))
	for _, i := range instances {
		out = append(out, toInstanceInfo(i))
	}
	return InstancesResponse{Instances: out}
}
