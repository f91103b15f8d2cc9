// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the carousel domain aggregates: projects,
// reusable templates with their text zones, carousel outputs with
// their content slides, and the shared error taxonomy. These are plain
// typed values; (de)serialization to storage happens only at the store
// boundary.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Project owns one carousel and any number of templates. Its name
// feeds the export download filename.
type Project struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
