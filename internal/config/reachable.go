package config

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"
)

// ProbeResult describes the outcome of a reachability check.
type ProbeResult struct {
	URL        string
	StatusCode int
	Elapsed    time.Duration
}

// Reachable probes base with a TCP dial followed by an HTTP GET of the home
// page. It does not retry.
func Reachable(ctx context.Context, base string) (*ProbeResult, error) {
	start := time.Now()
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", base, err)
	}
	host := u.Host
	if u.Port() == "" {
		port := "80"
		if u.Scheme == "https" {
			port = "443"
		}
		host = net.JoinHostPort(u.Hostname(), port)
	}

	d := net.Dialer{Timeout: 2 * time.Second}
	conn, err := d.DialContext(ctx, "tcp", host)
	if err != nil {
		return nil, fmt.Errorf("tcp probe to %s failed: %w", host, err)
	}
	_ = conn.Close()

	target := base + "/index.htm"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http probe to %s failed: %w", target, err)
	}
	_ = resp.Body.Close()

	res := &ProbeResult{URL: target, StatusCode: resp.StatusCode, Elapsed: time.Since(start)}
	if resp.StatusCode >= http.StatusInternalServerError {
		return res, fmt.Errorf("http probe to %s returned %d", target, resp.StatusCode)
	}
	return res, nil
}
