// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"slidepress/internal/models"
)

// TemplateStore handles all carousel template database operations.
// Text zones are typed aggregates everywhere above this layer; they
// (de)serialize to the jsonb column only here.
type TemplateStore struct {
	db *sql.DB
}

// NewTemplateStore creates a new TemplateStore with the given database connection.
func NewTemplateStore(db *sql.DB) *TemplateStore {
	return &TemplateStore{db: db}
}

// Create inserts a template and all of its slides in one transaction.
// The aggregate arrives with ids already assigned by the import flow.
func (s *TemplateStore) Create(t *models.CarouselTemplate) error {
	if err := t.Validate(); err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	err = tx.QueryRow(`
		INSERT INTO carousel_templates (id, project_id, name, slide_count)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`, t.ID, t.ProjectID, t.Name, t.SlideCount).Scan(&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create template: %w", err)
	}

	for i := range t.Slides {
		sl := &t.Slides[i]
		zones, err := json.Marshal(sl.TextZones)
		if err != nil {
			return fmt.Errorf("marshal zones: %w", err)
		}
		_, err = tx.Exec(`
			INSERT INTO template_slides (id, template_id, position, background_key, preview_key, text_zones)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, sl.ID, t.ID, sl.Position, sl.BackgroundKey, sl.PreviewKey, zones)
		if err != nil {
			return fmt.Errorf("create template slide %d: %w", i, err)
		}
	}

	return tx.Commit()
}

// FindByID retrieves a template with its slides in position order.
// Returns nil if not found.
func (s *TemplateStore) FindByID(id uuid.UUID) (*models.CarouselTemplate, error) {
	t := &models.CarouselTemplate{}
	err := s.db.QueryRow(`
		SELECT id, project_id, name, slide_count, created_at, updated_at
		FROM carousel_templates WHERE id = $1
	`, id).Scan(&t.ID, &t.ProjectID, &t.Name, &t.SlideCount, &t.CreatedAt, &t.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find template by id: %w", err)
	}

	rows, err := s.db.Query(`
		SELECT id, template_id, position, background_key, preview_key, text_zones
		FROM template_slides
		WHERE template_id = $1
		ORDER BY position
	`, id)
	if err != nil {
		return nil, fmt.Errorf("load template slides: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var sl models.TemplateSlide
		var zones []byte
		if err := rows.Scan(&sl.ID, &sl.TemplateID, &sl.Position, &sl.BackgroundKey, &sl.PreviewKey, &zones); err != nil {
			return nil, fmt.Errorf("scan template slide: %w", err)
		}
		if err := json.Unmarshal(zones, &sl.TextZones); err != nil {
			return nil, fmt.Errorf("unmarshal zones: %w", err)
		}
		t.Slides = append(t.Slides, sl)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return t, nil
}

// ListByProject returns a project's templates without their slides,
// newest first.
func (s *TemplateStore) ListByProject(projectID uuid.UUID) ([]models.CarouselTemplate, error) {
	rows, err := s.db.Query(`
		SELECT id, project_id, name, slide_count, created_at, updated_at
		FROM carousel_templates
		WHERE project_id = $1
		ORDER BY created_at DESC
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()

	var items []models.CarouselTemplate
	for rows.Next() {
		var t models.CarouselTemplate
		if err := rows.Scan(&t.ID, &t.ProjectID, &t.Name, &t.SlideCount, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan template: %w", err)
		}
		items = append(items, t)
	}
	return items, rows.Err()
}

// UpdateSlideZones persists a replaced zone list for one template slide.
func (s *TemplateStore) UpdateSlideZones(templateID, slideID uuid.UUID, zones []models.TextZone) error {
	data, err := json.Marshal(zones)
	if err != nil {
		return fmt.Errorf("marshal zones: %w", err)
	}
	if zones == nil {
		data = []byte("[]")
	}

	result, err := s.db.Exec(`
		UPDATE template_slides SET text_zones = $1
		WHERE id = $2 AND template_id = $3
	`, data, slideID, templateID)
	if err != nil {
		return fmt.Errorf("update slide zones: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("template slide not found")
	}

	_, err = s.db.Exec(`UPDATE carousel_templates SET updated_at = NOW() WHERE id = $1`, templateID)
	if err != nil {
		return fmt.Errorf("touch template: %w", err)
	}
	return nil
}

// Rename updates a template's display name.
func (s *TemplateStore) Rename(id uuid.UUID, name string) error {
	_, err := s.db.Exec(`
		UPDATE carousel_templates SET name = $1, updated_at = NOW() WHERE id = $2
	`, name, id)
	if err != nil {
		return fmt.Errorf("rename template: %w", err)
	}
	return nil
}

// Delete removes a template. Slides cascade; bound carousels keep
// running with a NULL template binding.
func (s *TemplateStore) Delete(id uuid.UUID) error {
	if _, err := s.db.Exec(`DELETE FROM carousel_templates WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	return nil
}
