// Copyright (c) 2026 Nava. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package storagetest provides an in-memory [storage.Store] for tests.
package storagetest

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"
)

// ErrUnavailable is returned by a failing [Memory] store.
var ErrUnavailable = errors.New("storage unavailable")

// Memory keeps objects in a map keyed by "bucket/path".
type Memory struct {
	mu      sync.Mutex
	objects map[string][]byte

	// Hooks, all optional.
	BeforeUpload func(bucket, objectPath string)
	FailUpload   func(bucket, objectPath string) bool
	FailRemove   bool

	Uploads int
	Removes int
}

// NewMemory returns a store pre-populated with empty objects at keys.
func NewMemory(keys ...string) *Memory {
	store := &Memory{objects: make(map[string][]byte)}
	for _, key := range keys {
		store.objects[key] = nil
	}
	return store
}

// Upload stores body under bucket/objectPath.
func (store *Memory) Upload(_ context.Context, bucket, objectPath string, body io.Reader, _ string) error {
	if store.BeforeUpload != nil {
		store.BeforeUpload(bucket, objectPath)
	}
	if store.FailUpload != nil && store.FailUpload(bucket, objectPath) {
		return ErrUnavailable
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}

	store.mu.Lock()
	defer store.mu.Unlock()
	store.Uploads++
	store.objects[bucket+"/"+objectPath] = data
	return nil
}

// Remove deletes objects, failing when FailRemove is set or context is done.
func (store *Memory) Remove(context context.Context, bucket string, objectPaths ...string) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.Removes++
	if err := context.Err(); err != nil {
		return err
	}
	if store.FailRemove {
		return ErrUnavailable
	}
	for _, objectPath := range objectPaths {
		delete(store.objects, bucket+"/"+objectPath)
	}
	return nil
}

// PublicURL returns a fake CDN URL.
func (store *Memory) PublicURL(bucket, objectPath string) string {
	return "https://cdn.test/storage/v1/object/public/" + bucket + "/" + objectPath
}

// SignedURL returns a fake signed URL.
func (store *Memory) SignedURL(_ context.Context, bucket, objectPath string, _ time.Duration) (string, error) {
	return "https://cdn.test/storage/v1/object/sign/" + bucket + "/" + objectPath + "?token=t", nil
}

// Has reports whether bucket/objectPath exists.
func (store *Memory) Has(bucket, objectPath string) bool {
	store.mu.Lock()
	defer store.mu.Unlock()
	_, ok := store.objects[bucket+"/"+objectPath]
	return ok
}

// Len returns the number of stored objects.
func (store *Memory) Len() int {
	store.mu.Lock()
	defer store.mu.Unlock()
	return len(store.objects)
}
