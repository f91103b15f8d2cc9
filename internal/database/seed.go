// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package database

import (
	"database/sql"
	"fmt"
	"log/slog"
)

// demoProjectName is the project seeded for local development.
const demoProjectName = "Demo Project"

// Seed inserts development fixtures. It is a no-op when data already
// exists, so repeated startups stay idempotent.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM projects`).Scan(&count); err != nil {
		return fmt.Errorf("seed count projects: %w", err)
	}
	if count > 0 {
		return nil
	}

	if _, err := db.Exec(`INSERT INTO projects (name) VALUES ($1)`, demoProjectName); err != nil {
		return fmt.Errorf("seed demo project: %w", err)
	}

	slog.Info("seeded development data", "project", demoProjectName)
	return nil
}
