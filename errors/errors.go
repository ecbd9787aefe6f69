/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	// ErrConfiguration is returned when an operation is built or prepared with
	// missing or invalid input
	ErrConfiguration = errors.New("invalid operation configuration")

	// ErrBackend is returned when the storage backend rejects or fails an operation
	ErrBackend = errors.New("backend operation failed")

	// ErrResolverContract is returned when a resolver produces a result that
	// violates its contract
	ErrResolverContract = errors.New("resolver contract violation")

	// ErrNoTypeMapping is returned when no type mapping is registered for a type
	// and none was supplied explicitly
	ErrNoTypeMapping = errors.New("no type mapping registered for type")
)

// ConfigurationError represents a fatal misconfiguration detected at build
// or prepare time
type ConfigurationError struct {
	Op     string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: invalid configuration: %s", e.Op, e.Reason)
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// BackendError wraps a failure reported by the storage backend
type BackendError struct {
	Op  string
	Err error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("%s: backend error: %v", e.Op, e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

func (e *BackendError) Is(target error) bool {
	return target == ErrBackend
}

// ResolverContractError represents a programming error in a resolver, such as
// reporting a successful mutation with an empty affected set
type ResolverContractError struct {
	Op     string
	Reason string
}

func (e *ResolverContractError) Error() string {
	return fmt.Sprintf("%s: resolver contract violation: %s", e.Op, e.Reason)
}

func (e *ResolverContractError) Is(target error) bool {
	return target == ErrResolverContract
}

// NoTypeMappingError represents a missing type mapping at prepare time.
// A missing mapping is a configuration fault, so it also matches ErrConfiguration.
type NoTypeMappingError struct {
	TypeName string
}

func (e *NoTypeMappingError) Error() string {
	return fmt.Sprintf("no type mapping registered for type %q and no resolver supplied", e.TypeName)
}

func (e *NoTypeMappingError) Is(target error) bool {
	return target == ErrNoTypeMapping || target == ErrConfiguration
}

// Helper functions for creating errors

// NewConfigurationError creates a new ConfigurationError
func NewConfigurationError(op, reason string) error {
	return &ConfigurationError{Op: op, Reason: reason}
}

// NewBackendError wraps err as a BackendError for the given operation
func NewBackendError(op string, err error) error {
	return &BackendError{Op: op, Err: err}
}

// NewResolverContractError creates a new ResolverContractError
func NewResolverContractError(op, reason string) error {
	return &ResolverContractError{Op: op, Reason: reason}
}

// NewNoTypeMappingError creates a new NoTypeMappingError
func NewNoTypeMappingError(typeName string) error {
	return &NoTypeMappingError{TypeName: typeName}
}

// IsConfiguration checks if an error is a configuration error
func IsConfiguration(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

// IsBackend checks if an error is a backend error
func IsBackend(err error) bool {
	return errors.Is(err, ErrBackend)
}

// IsResolverContract checks if an error is a resolver contract violation
func IsResolverContract(err error) bool {
	return errors.Is(err, ErrResolverContract)
}

// IsNoTypeMapping checks if an error is a missing type mapping error
func IsNoTypeMapping(err error) bool {
	return errors.Is(err, ErrNoTypeMapping)
}
