// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// errors.go defines the domain error taxonomy. All of these are local,
// recoverable conditions: handlers map them to 4xx/5xx responses, and
// nothing here should ever crash the process.
package models

import (
	"fmt"
	"strings"
)

// ValidationError reports malformed input data: bad zone geometry,
// missing ids, or a slide-count mismatch. Never silently coerced.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s %s", e.Field, e.Reason)
}

// RenderError reports a failed composite for a single slide. It carries
// the slide index so a batch render can report per-slide outcomes
// without aborting siblings.
type RenderError struct {
	SlideIndex int
	Err        error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render slide %d: %v", e.SlideIndex, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// NotRenderedError is returned when an export is attempted before
// every slide carries a fresh rendered image. It lists the offending
// slide indices and never triggers a render on its own.
type NotRenderedError struct {
	Missing []int
}

func (e *NotRenderedError) Error() string {
	parts := make([]string, len(e.Missing))
	for i, idx := range e.Missing {
		parts[i] = fmt.Sprintf("%d", idx)
	}
	return fmt.Sprintf("slides not rendered: %s", strings.Join(parts, ", "))
}

// InvariantViolationError reports a mutation that would break a
// structural invariant (deleting the last slide, an out-of-range
// reorder). The mutation is rejected before any state changes.
type InvariantViolationError struct {
	Op     string
	Reason string
}

func (e *InvariantViolationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}
