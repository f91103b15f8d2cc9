// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"slidepress/internal/storage"
	"slidepress/internal/store"
)

// StorageSource resolves render backgrounds from S3: template
// backgrounds directly by key, slide overrides through the asset
// record. With no storage configured, every lookup fails and the
// affected slides report render errors while solid-color slides keep
// working.
type StorageSource struct {
	storageClient *storage.Client
	assetStore    *store.AssetStore
}

// NewStorageSource builds the production background source.
func NewStorageSource(storageClient *storage.Client, assetStore *store.AssetStore) *StorageSource {
	return &StorageSource{storageClient: storageClient, assetStore: assetStore}
}

// TemplateBackground fetches a template background by object key.
func (s *StorageSource) TemplateBackground(ctx context.Context, key string) ([]byte, error) {
	if s.storageClient == nil {
		return nil, fmt.Errorf("object storage is not configured")
	}
	return s.storageClient.DownloadAsset(ctx, key)
}

// AssetBackground fetches a slide override image via its asset record.
func (s *StorageSource) AssetBackground(ctx context.Context, id uuid.UUID) ([]byte, error) {
	if s.storageClient == nil {
		return nil, fmt.Errorf("object storage is not configured")
	}
	asset, err := s.assetStore.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("find asset %s: %w", id, err)
	}
	if asset == nil {
		return nil, fmt.Errorf("asset %s not found", id)
	}
	return s.storageClient.DownloadAsset(ctx, asset.S3Key)
}
