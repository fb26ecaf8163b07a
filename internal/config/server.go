package config

import (
	"fmt"
	"net"
	"strings"
	"time"
)

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the bind host; empty means all interfaces.
	Host string
	// Port is the bind port, with or without a leading colon.
	Port string
	// ReadTimeout bounds reading of an entire request.
	ReadTimeout time.Duration
	// WriteTimeout bounds writing of a response.
	WriteTimeout time.Duration
	// IdleTimeout bounds keep-alive waits between requests.
	IdleTimeout time.Duration
	// ShutdownTimeout bounds the graceful-shutdown drain on exit.
	ShutdownTimeout time.Duration
}

// LoadServerConfigFromEnv reads server settings from the environment.
func LoadServerConfigFromEnv() ServerConfig {
	return ServerConfig{
		Host:            GetEnv("SERVER_HOST", ""),
		Port:            GetEnv("SERVER_PORT", ":8080"),
		ReadTimeout:     GetEnvDuration("SERVER_READ_TIMEOUT", 10*time.Second),
		WriteTimeout:    GetEnvDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
		IdleTimeout:     GetEnvDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
		ShutdownTimeout: GetEnvDuration("SERVER_SHUTDOWN_TIMEOUT", 15*time.Second),
	}
}

// GetAddress returns the host:port listen address. A bare port keeps its
// leading colon form so the empty-host default binds all interfaces.
func (c ServerConfig) GetAddress() string {
	if c.Host == "" {
		if strings.HasPrefix(c.Port, ":") {
			return c.Port
		}
		return ":" + c.Port
	}
	return net.JoinHostPort(c.Host, strings.TrimPrefix(c.Port, ":"))
}

// Validate checks that all timeouts are positive.
func (c ServerConfig) Validate() error {
	for _, tc := range []struct {
		name string
		d    time.Duration
	}{
		{"ReadTimeout", c.ReadTimeout},
		{"WriteTimeout", c.WriteTimeout},
		{"IdleTimeout", c.IdleTimeout},
		{"ShutdownTimeout", c.ShutdownTimeout},
	} {
		if tc.d <= 0 {
			return fmt.Errorf("%s must be greater than 0", tc.name)
		}
	}
	return nil
}
