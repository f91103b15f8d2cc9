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

// AssetStore handles all asset-related database operations.
type AssetStore struct {
	db *sql.DB
}

// NewAssetStore creates a new AssetStore with the given database connection.
func NewAssetStore(db *sql.DB) *AssetStore {
	return &AssetStore{db: db}
}

// assetColumns lists the columns selected in asset queries.
const assetColumns = `id, project_id, filename, original_name, content_type,
	size_bytes, bucket, s3_key, preview_s3_key, created_at`

// scanAsset scans an asset row from the result set.
func scanAsset(scanner interface{ Scan(...any) error }) (*models.Asset, error) {
	var a models.Asset
	err := scanner.Scan(
		&a.ID, &a.ProjectID, &a.Filename, &a.OriginalName, &a.ContentType,
		&a.SizeBytes, &a.Bucket, &a.S3Key, &a.PreviewS3Key, &a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserts a new asset record and returns it with the generated ID.
func (s *AssetStore) Create(a *models.Asset) (*models.Asset, error) {
	err := s.db.QueryRow(`
		INSERT INTO assets (project_id, filename, original_name, content_type,
			size_bytes, bucket, s3_key, preview_s3_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+assetColumns,
		a.ProjectID, a.Filename, a.OriginalName, a.ContentType,
		a.SizeBytes, a.Bucket, a.S3Key, a.PreviewS3Key,
	).Scan(
		&a.ID, &a.ProjectID, &a.Filename, &a.OriginalName, &a.ContentType,
		&a.SizeBytes, &a.Bucket, &a.S3Key, &a.PreviewS3Key, &a.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create asset: %w", err)
	}
	return a, nil
}

// FindByID retrieves a single asset record by its UUID.
func (s *AssetStore) FindByID(id uuid.UUID) (*models.Asset, error) {
	row := s.db.QueryRow(`SELECT `+assetColumns+` FROM assets WHERE id = $1`, id)
	a, err := scanAsset(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find asset by id: %w", err)
	}
	return a, nil
}

// ListByProject returns a project's assets ordered by creation date.
func (s *AssetStore) ListByProject(projectID uuid.UUID) ([]models.Asset, error) {
	rows, err := s.db.Query(`
		SELECT `+assetColumns+`
		FROM assets
		WHERE project_id = $1
		ORDER BY created_at DESC
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	defer rows.Close()

	var items []models.Asset
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, fmt.Errorf("scan asset: %w", err)
		}
		items = append(items, *a)
	}
	return items, rows.Err()
}

// Delete removes an asset record and returns it so the caller can
// clean up the corresponding S3 objects.
func (s *AssetStore) Delete(id uuid.UUID) (*models.Asset, error) {
	row := s.db.QueryRow(`
		DELETE FROM assets WHERE id = $1
		RETURNING `+assetColumns, id)
	a, err := scanAsset(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("delete asset: %w", err)
	}
	return a, nil
}
