// SPDX-License-Identifier: GPL-3.0-or-later
package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrSourceUnavailable means the mailbox provider is not configured or
	// could not be reached; callers must not fall back to partial results.
	ErrSourceUnavailable = errors.New("mailbox provider not configured or unavailable")

	// ErrAIClientNotConfigured means no classifier was wired into the engine.
	ErrAIClientNotConfigured = errors.New("ai classifier not configured")

	// ErrNotFound means the id is absent from the queried source.
	ErrNotFound = errors.New("not found")

	// ErrNoValidInput means a holistic batch resolved to an empty working set.
	ErrNoValidInput = errors.New("no messages could be resolved for analysis")
)

type StoreReadError struct {
	Err error
}

func (e *StoreReadError) Error() string {
	return fmt.Sprintf("store read failed: %v", e.Err)
}

func (e *StoreReadError) Unwrap() error {
	return e.Err
}

type StoreWriteError struct {
	Err error
}

func (e *StoreWriteError) Error() string {
	return fmt.Sprintf("store write failed: %v", e.Err)
}

func (e *StoreWriteError) Unwrap() error {
	return e.Err
}

// AIResponseParseError carries the raw classifier output for diagnostics.
type AIResponseParseError struct {
	Raw string
	Err error
}

func (e *AIResponseParseError) Error() string {
	return fmt.Sprintf("could not parse classifier response: %v", e.Err)
}

func (e *AIResponseParseError) Unwrap() error {
	return e.Err
}
