// SPDX-License-Identifier: MIT
package outline

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration marks outlines that cannot be rendered as written
	ErrConfiguration = errors.New("invalid outline configuration")

	// ErrLevelOutOfRange is returned for heading levels outside 1-6
	ErrLevelOutOfRange = fmt.Errorf("%w: heading level out of range", ErrConfiguration)

	// ErrAnchorCollision is returned under AnchorReject when two headings share a slug
	ErrAnchorCollision = fmt.Errorf("%w: anchor collision", ErrConfiguration)
)

// LevelError reports the offending heading
type LevelError struct {
	Level int
	Title string
}

func (e *LevelError) Error() string {
	return fmt.Sprintf("heading %q: level %d out of range 1-6", e.Title, e.Level)
}

func (e *LevelError) Unwrap() error { return ErrLevelOutOfRange }

// CollisionError reports a duplicate anchor
type CollisionError struct {
	Slug  string
	Title string
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("heading %q: anchor %q already used on this page", e.Title, e.Slug)
}

func (e *CollisionError) Unwrap() error { return ErrAnchorCollision }

// ConfigError wraps any other outline problem (validation, bad policy, bad block)
type ConfigError struct {
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return e.Reason + ": " + e.Err.Error()
	}
	return e.Reason
}

func (e *ConfigError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrConfiguration, e.Err}
	}
	return []error{ErrConfiguration}
}
