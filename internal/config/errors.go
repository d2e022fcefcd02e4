package config

import (
	"fmt"
	"time"
)

type MissingConfigError struct {
	Path string
}

func (e *MissingConfigError) Error() string {
	return fmt.Sprintf("config file not found: %s", e.Path)
}

type InvalidYAMLError struct {
	Path    string
	Wrapped error
}

func (e *InvalidYAMLError) Error() string {
	return fmt.Sprintf("%s is not a valid yaml document: %v", e.Path, e.Wrapped)
}

func (e *InvalidYAMLError) Unwrap() error {
	return e.Wrapped
}

type InvalidEnvError struct {
	Wrapped error
}

func (e *InvalidEnvError) Error() string {
	return fmt.Sprintf("invalid %s environment variable: %v", EnvPrefix+"*", e.Wrapped)
}

func (e *InvalidEnvError) Unwrap() error {
	return e.Wrapped
}

type MissingPropertyError struct {
	Property string
}

func (e *MissingPropertyError) Error() string {
	return fmt.Sprintf("configuration is missing required property: %s", e.Property)
}

type InvalidURLError struct {
	Wrapped  error
	Property string
	Value    string
}

func (e *InvalidURLError) Error() string {
	return fmt.Sprintf(
		"configuration property %s has invalid URL '%s': %v",
		e.Property,
		e.Value,
		e.Wrapped,
	)
}

func (e *InvalidURLError) Unwrap() error {
	return e.Wrapped
}

type InvalidDurationError struct {
	Property string
	Value    time.Duration
}

func (e *InvalidDurationError) Error() string {
	return fmt.Sprintf("configuration property %s must be a positive duration, got %s", e.Property, e.Value)
}
