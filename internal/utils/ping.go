package utils

import (
	"fmt"
	"net"
	"net/url"
	"time"
)

// authzDialTimeout keeps the identity-provider probe short so auth paths
// fail fast when it is down.
const authzDialTimeout = 1500 * time.Millisecond

// PingService reports whether a TCP listener answers at the service URL.
func PingService(serviceURL string, timeout time.Duration) error {
	parsedURL, err := url.Parse(serviceURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	port := parsedURL.Port()
	if port == "" {
		if parsedURL.Scheme == "https" {
			port = "443"
		} else {
			port = "80"
		}
	}

	address := net.JoinHostPort(parsedURL.Hostname(), port)
	conn, err := net.DialTimeout("tcp", address, timeout)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", address, err)
	}
	defer conn.Close()

	return nil
}

// PingAuthorizer checks that the Authorizer service is reachable before the
// client singleton is initialized against it.
func PingAuthorizer(authzURL string) error {
	return PingService(authzURL, authzDialTimeout)
}
