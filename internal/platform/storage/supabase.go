// Copyright (c) 2026 Nava. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	supabase "github.com/supabase-community/storage-go"
)

// SupabaseStore implements [Store] on Supabase Storage using the service key.
type SupabaseStore struct {
	client  *supabase.Client
	baseURL string
}

// NewSupabase creates a store for the project at projectURL.
func NewSupabase(projectURL, serviceKey string) *SupabaseStore {
	baseURL := strings.TrimRight(projectURL, "/") + "/storage/v1"
	return &SupabaseStore{
		client:  supabase.NewClient(baseURL, serviceKey, nil),
		baseURL: baseURL,
	}
}

// Upload writes the object with upsert enabled.
func (store *SupabaseStore) Upload(_ context.Context, bucket, objectPath string, body io.Reader, contentType string) error {
	upsert := true
	cacheControl := "3600"

	_, err := store.client.UploadFile(bucket, objectPath, body, supabase.FileOptions{
		ContentType:  &contentType,
		Upsert:       &upsert,
		CacheControl: &cacheControl,
	})
	if err != nil {
		return fmt.Errorf("supabase: upload %s/%s: %w", bucket, objectPath, err)
	}
	return nil
}

// Remove deletes the objects in a single request.
func (store *SupabaseStore) Remove(_ context.Context, bucket string, objectPaths ...string) error {
	if len(objectPaths) == 0 {
		return nil
	}
	if _, err := store.client.RemoveFile(bucket, objectPaths); err != nil {
		return fmt.Errorf("supabase: remove from %s: %w", bucket, err)
	}
	return nil
}

// PublicURL returns "<project>/storage/v1/object/public/<bucket>/<path>".
func (store *SupabaseStore) PublicURL(bucket, objectPath string) string {
	return store.client.GetPublicUrl(bucket, objectPath).SignedURL
}

// SignedURL asks Supabase for a signed download URL.
func (store *SupabaseStore) SignedURL(_ context.Context, bucket, objectPath string, ttl time.Duration) (string, error) {
	response, err := store.client.CreateSignedUrl(bucket, objectPath, int(ttl.Seconds()))
	if err != nil {
		return "", fmt.Errorf("supabase: sign %s/%s: %w", bucket, objectPath, err)
	}
	return response.SignedURL, nil
}
