// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package storage provides an S3-compatible object storage client for
// carousel backgrounds and export artifacts. It wraps the AWS SDK v2
// and is configured for path-style access (required by CEPH/Hetzner).
// Backgrounds and previews live in a public bucket so the editor can
// serve them directly; finished PDF/ZIP exports go to a private bucket
// and are handed out via pre-signed URLs.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// Client wraps an S3 client for operations on the two buckets.
type Client struct {
	s3            *s3.Client
	presigner     *s3.PresignClient
	assetsBucket  string
	exportsBucket string
	endpoint      string
	publicURL     string // optional CDN/direct URL for public assets
}

// New creates an S3 storage client configured for CEPH/Hetzner with
// path-style addressing. Returns (nil, nil) if endpoint or credentials
// are empty, allowing the app to start without storage.
func New(endpoint, region, accessKey, secretKey, assetsBucket, exportsBucket, publicURL string) (*Client, error) {
	if endpoint == "" || accessKey == "" || secretKey == "" {
		return nil, nil
	}

	// Strip trailing slash from endpoint for consistent URL building.
	endpoint = strings.TrimRight(endpoint, "/")

	// Build S3 client with static credentials and path-style access.
	s3Client := s3.New(s3.Options{
		Region:       region,
		BaseEndpoint: aws.String(endpoint),
		Credentials:  credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		UsePathStyle: true,
	})

	return &Client{
		s3:            s3Client,
		presigner:     s3.NewPresignClient(s3Client),
		assetsBucket:  assetsBucket,
		exportsBucket: exportsBucket,
		endpoint:      endpoint,
		publicURL:     strings.TrimRight(publicURL, "/"),
	}, nil
}

// UploadAsset stores a background or preview image in the assets
// bucket with public-read ACL so the editor can serve it directly.
func (c *Client) UploadAsset(ctx context.Context, key, contentType string, body io.Reader, size int64) error {
	_, err := c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(c.assetsBucket),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
		ACL:           s3types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return fmt.Errorf("s3 upload %s/%s: %w", c.assetsBucket, key, err)
	}
	return nil
}

// UploadExport stores a finished PDF or ZIP in the private exports
// bucket. Callers hand the object out via ExportURL.
func (c *Client) UploadExport(ctx context.Context, key, contentType string, data []byte) error {
	_, err := c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(c.exportsBucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("s3 upload %s/%s: %w", c.exportsBucket, key, err)
	}
	return nil
}

// DownloadAsset retrieves an object from the assets bucket. The
// renderer uses this to fetch template backgrounds and slide assets.
func (c *Client) DownloadAsset(ctx context.Context, key string) ([]byte, error) {
	output, err := c.s3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.assetsBucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("s3 download %s/%s: %w", c.assetsBucket, key, err)
	}
	defer output.Body.Close()
	data, err := io.ReadAll(output.Body)
	if err != nil {
		return nil, fmt.Errorf("s3 read body %s/%s: %w", c.assetsBucket, key, err)
	}
	return data, nil
}

// DeleteAsset removes an object from the assets bucket.
func (c *Client) DeleteAsset(ctx context.Context, key string) error {
	_, err := c.s3.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.assetsBucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("s3 delete %s/%s: %w", c.assetsBucket, key, err)
	}
	return nil
}

// AssetURL returns the public URL for an object in the assets bucket.
// Uses the configured public URL if set, otherwise builds a path-style URL.
func (c *Client) AssetURL(key string) string {
	if c.publicURL != "" {
		return c.publicURL + "/" + key
	}
	return c.endpoint + "/" + c.assetsBucket + "/" + key
}

// ExportURL generates a pre-signed GET URL for an object in the
// private exports bucket. The URL is valid for the specified duration
// (S3 caps this at 7 days).
func (c *Client) ExportURL(ctx context.Context, key string, expires time.Duration) (string, error) {
	req, err := c.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.exportsBucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expires))
	if err != nil {
		return "", fmt.Errorf("s3 presign %s/%s: %w", c.exportsBucket, key, err)
	}
	return req.URL, nil
}

// AssetsBucket returns the name of the public assets bucket.
func (c *Client) AssetsBucket() string {
	return c.assetsBucket
}

// ExportsBucket returns the name of the private exports bucket.
func (c *Client) ExportsBucket() string {
	return c.exportsBucket
}
