package interfaces

import "context"

// HealthProber performs one health probe against a single instance.
//
//go:generate moq -stub -out mock/prober.go -pkg mock . HealthProber
type HealthProber interface {
	// Probe issues the health check for host:port. Returns:
	// 1) (body, nil) when the endpoint answered 2xx with a JSON object body;
	// 2) (nil, error) on URL construction failure, transport error, timeout,
	//    non-2xx status or a body that is not a JSON object.
	// Cancellation of ctx aborts the probe I/O.
	Probe(ctx context.Context, host, port string) (map[string]any, error)
}
