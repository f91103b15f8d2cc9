// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"slidepress/internal/models"
)

// CarouselStore handles all carousel database operations. The carousel
// is persisted as one aggregate: slide mutations happen in memory and
// write back through ReplaceSlides in a single transaction, which
// serializes concurrent writers.
type CarouselStore struct {
	db *sql.DB
}

// NewCarouselStore creates a new CarouselStore with the given database connection.
func NewCarouselStore(db *sql.DB) *CarouselStore {
	return &CarouselStore{db: db}
}

// slideColumns lists the columns selected in carousel slide queries.
const slideColumns = `id, carousel_id, position, headline, body, cta,
	background_ref, background_color, visual_prompt`

// Create inserts a carousel and its slides in one transaction.
func (s *CarouselStore) Create(c *models.CarouselOutput) error {
	if err := c.Validate(); err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	err = tx.QueryRow(`
		INSERT INTO carousels (id, project_id, template_id)
		VALUES ($1, $2, $3)
		RETURNING created_at, updated_at
	`, c.ID, c.ProjectID, c.TemplateID).Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create carousel: %w", err)
	}

	if err := insertSlides(tx, c); err != nil {
		return err
	}
	return tx.Commit()
}

// FindByProject retrieves a project's carousel with slides in position
// order. Returns nil if the project has none yet.
func (s *CarouselStore) FindByProject(projectID uuid.UUID) (*models.CarouselOutput, error) {
	c := &models.CarouselOutput{}
	err := s.db.QueryRow(`
		SELECT id, project_id, template_id, created_at, updated_at
		FROM carousels WHERE project_id = $1
	`, projectID).Scan(&c.ID, &c.ProjectID, &c.TemplateID, &c.CreatedAt, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find carousel by project: %w", err)
	}
	if err := s.loadSlides(c); err != nil {
		return nil, err
	}
	return c, nil
}

// FindByID retrieves a carousel with its slides. Returns nil if not found.
func (s *CarouselStore) FindByID(id uuid.UUID) (*models.CarouselOutput, error) {
	c := &models.CarouselOutput{}
	err := s.db.QueryRow(`
		SELECT id, project_id, template_id, created_at, updated_at
		FROM carousels WHERE id = $1
	`, id).Scan(&c.ID, &c.ProjectID, &c.TemplateID, &c.CreatedAt, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find carousel by id: %w", err)
	}
	if err := s.loadSlides(c); err != nil {
		return nil, err
	}
	return c, nil
}

// ReplaceSlides writes the carousel's current slide list back to the
// database: delete-and-insert inside one transaction keeps the
// position uniqueness constraint happy across reorders.
func (s *CarouselStore) ReplaceSlides(c *models.CarouselOutput) error {
	if err := c.Validate(); err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM carousel_slides WHERE carousel_id = $1`, c.ID); err != nil {
		return fmt.Errorf("clear carousel slides: %w", err)
	}
	if err := insertSlides(tx, c); err != nil {
		return err
	}
	if _, err := tx.Exec(`UPDATE carousels SET updated_at = NOW() WHERE id = $1`, c.ID); err != nil {
		return fmt.Errorf("touch carousel: %w", err)
	}
	return tx.Commit()
}

// loadSlides fills the aggregate's slide list in position order.
// Rendered images are derived state and come from the render cache,
// not from here.
func (s *CarouselStore) loadSlides(c *models.CarouselOutput) error {
	rows, err := s.db.Query(`
		SELECT `+slideColumns+`
		FROM carousel_slides
		WHERE carousel_id = $1
		ORDER BY position
	`, c.ID)
	if err != nil {
		return fmt.Errorf("load carousel slides: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var sl models.CarouselSlide
		if err := rows.Scan(
			&sl.ID, &sl.CarouselID, &sl.Position, &sl.Headline, &sl.Body, &sl.CTA,
			&sl.BackgroundRef, &sl.BackgroundColor, &sl.VisualPrompt,
		); err != nil {
			return fmt.Errorf("scan carousel slide: %w", err)
		}
		c.Slides = append(c.Slides, sl)
	}
	return rows.Err()
}

// insertSlides bulk-inserts the aggregate's slides within tx.
func insertSlides(tx *sql.Tx, c *models.CarouselOutput) error {
	for i := range c.Slides {
		sl := &c.Slides[i]
		_, err := tx.Exec(`
			INSERT INTO carousel_slides (id, carousel_id, position, headline, body, cta,
				background_ref, background_color, visual_prompt)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`, sl.ID, c.ID, sl.Position, sl.Headline, sl.Body, sl.CTA,
			sl.BackgroundRef, sl.BackgroundColor, sl.VisualPrompt)
		if err != nil {
			return fmt.Errorf("insert carousel slide %d: %w", i, err)
		}
	}
	return nil
}
