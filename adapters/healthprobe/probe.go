// Package healthprobe is the outbound HTTP adapter the health monitor
// uses to check a single instance.
package healthprobe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"serviceregistry/interfaces"
)

// DefaultScheme is used when no scheme is configured. Local instances
// without TLS can set the scheme to http instead.
const DefaultScheme = "https"

// probeBodyLimit caps how much of a /health response is read.
const probeBodyLimit = 1 << 20

type httpProber struct {
	client *http.Client
	scheme string
}

// New creates an interfaces.HealthProber that performs
// GET {scheme}://host:port/health. An empty scheme falls back to
// DefaultScheme; a nil client falls back to http.DefaultClient. Per-probe
// deadlines come from the caller's context, not the client.
func New(client *http.Client, scheme string) interfaces.HealthProber {
	if client == nil {
		client = http.DefaultClient
	}
	scheme = strings.TrimSpace(scheme)
	if scheme == "" {
		scheme = DefaultScheme
	}
	return &httpProber{
		client: client,
		scheme: scheme,
	}
}

// Probe passes iff the endpoint answers 2xx and the body is a JSON
// object. A target that does not form a valid URL fails without any
// network contact.
func (p *httpProber) Probe(ctx context.Context, host, port string) (map[string]any, error) {
	probeURL, err := p.buildURL(host, port)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, probeURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("health endpoint returned %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, probeBodyLimit))
	if err != nil {
		return nil, err
	}

	// Decoding into a map rejects arrays, strings and other non-object
	// bodies, which the protocol counts as failures.
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, fmt.Errorf("health endpoint body is not a JSON object: %w", err)
	}
	// A literal null decodes without error into a nil map.
	if body == nil {
		return nil, fmt.Errorf("health endpoint body is not a JSON object: null")
	}
	return body, nil
}

func (p *httpProber) buildURL(host, port string) (string, error) {
	host = strings.TrimSpace(host)
	port = strings.TrimSpace(port)
	if host == "" {
		return "", fmt.Errorf("probe target host is empty")
	}
	portNum, err := strconv.Atoi(port)
	if err != nil || portNum <= 0 || portNum > 65535 {
		return "", fmt.Errorf("probe target port %q is not a valid port", port)
	}

	u := url.URL{
		Scheme: p.scheme,
		Host:   net.JoinHostPort(host, port),
		Path:   "/health",
	}
	parsed, err := url.Parse(u.String())
	if err != nil || parsed.Hostname() == "" {
		return "", fmt.Errorf("probe target %s:%s does not form a valid URL", host, port)
	}
	return u.String(), nil
}
