package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/kilianp07/evsizer/auth"
)

// ReferenceConfig locates the authority reference workbook.
type ReferenceConfig struct {
	// Source is a local path or an http(s) URL.
	Source string `json:"source"`
	// Sheet defaults to the first sheet of the workbook.
	Sheet string `json:"sheet"`
	// RowOffset is added to the zero based sheet row index.
	RowOffset      int       `json:"row_offset"`
	TimeoutSeconds int       `json:"timeout_seconds"`
	Auth           auth.Conf `json:"auth"`
}

// SetDefaults applies sane defaults.
func (c *ReferenceConfig) SetDefaults() {
	if c.TimeoutSeconds == 0 {
		c.TimeoutSeconds = 30
	}
}

// Validate checks mandatory fields.
func (c ReferenceConfig) Validate() error {
	if c.RowOffset < 0 {
		return errors.New("row_offset must not be negative")
	}
	if c.TimeoutSeconds < 0 {
		return fmt.Errorf("invalid timeout_seconds %d", c.TimeoutSeconds)
	}
	return nil
}

// Timeout returns the fetch timeout.
func (c ReferenceConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ServerConfig defines the HTTP API listener.
type ServerConfig struct {
	Address            string `json:"address"`
	ReadTimeoutSeconds int    `json:"read_timeout_seconds"`
}

// SetDefaults applies sane defaults.
func (c *ServerConfig) SetDefaults() {
	if c.Address == "" {
		c.Address = ":8080"
	}
	if c.ReadTimeoutSeconds == 0 {
		c.ReadTimeoutSeconds = 10
	}
}

// Validate checks mandatory fields.
func (c ServerConfig) Validate() error {
	if c.ReadTimeoutSeconds < 0 {
		return fmt.Errorf("invalid read_timeout_seconds %d", c.ReadTimeoutSeconds)
	}
	return nil
}

// ReadTimeout returns the request read timeout.
func (c ServerConfig) ReadTimeout() time.Duration {
	return time.Duration(c.ReadTimeoutSeconds) * time.Second
}
