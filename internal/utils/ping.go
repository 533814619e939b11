package utils

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"
)

// PingService checks if a service is reachable at the given URL
func PingService(serviceURL string, timeout time.Duration) error {
	parsedURL, err := url.Parse(serviceURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	host := parsedURL.Hostname()
	port := parsedURL.Port()

	// Default ports if not specified
	if port == "" {
		switch parsedURL.Scheme {
		case "https":
			port = "443"
		default:
			port = "80"
		}
	}

	address := net.JoinHostPort(host, port)

	conn, err := net.DialTimeout("tcp", address, timeout)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", address, err)
	}
	defer conn.Close()

	return nil
}

// HealthStatus is the subset of the /health body the probe reads
type HealthStatus struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error,omitempty"`
}

// ProbeHealth fetches a /health endpoint and fails unless it reports healthy
func ProbeHealth(healthURL string, timeout time.Duration) (HealthStatus, error) {
	var status HealthStatus

	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(healthURL)
	if err != nil {
		return status, fmt.Errorf("health request failed: %w", err)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return status, fmt.Errorf("invalid health response: %w", err)
	}
	if resp.StatusCode != http.StatusOK || status.Status != "healthy" {
		return status, fmt.Errorf("service unhealthy (%d): %s", resp.StatusCode, status.ErrorMessage)
	}
	return status, nil
}
