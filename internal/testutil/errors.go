// Package testutil provides testing utilities for judotimer.
//
// This package contains mock errors and test doubles used across test files.
// It should only be imported by test files (*_test.go).
package testutil

import "errors"

// Mock errors for testing purposes.
// These errors are used to simulate various failure scenarios in tests.
var (
	// ErrMockDiskFull simulates a storage write failure (used in tests).
	ErrMockDiskFull = errors.New("disk full")

	// ErrMockRedisDown simulates an unreachable Redis server.
	ErrMockRedisDown = errors.New("redis unavailable")

	// ErrMockTransport simulates a failed snapshot send (used in tests).
	ErrMockTransport = errors.New("transport failed")
)
