// Copyright (c) 2026 Nava. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package storage abstracts the object storage holding covers, audio, ebooks and
profile images.

Two providers implement [Store]:

  - Supabase Storage (default), through supabase-community/storage-go.
  - Any S3-compatible service, through aws-sdk-go-v2.

Objects that were uploaded but could not be linked to a database row are
handed to the [Janitor], which removes them best-effort and retries later.
*/
package storage

import (
	"bytes"
	"context"
	"io"
	"mime"
	"mime/multipart"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/taibuivan/navaadmin/internal/platform/apperr"
	"github.com/taibuivan/navaadmin/pkg/uuidv7"
)

// Store is the object storage used by the admin services.
type Store interface {
	// Upload writes body to bucket/path, replacing any existing object.
	Upload(context context.Context, bucket, objectPath string, body io.Reader, contentType string) error

	// Remove deletes the objects. Missing objects are not an error.
	Remove(context context.Context, bucket string, objectPaths ...string) error

	// PublicURL returns the public URL of an object in a public bucket.
	PublicURL(bucket, objectPath string) string

	// SignedURL returns a time-limited URL for an object in a private bucket.
	SignedURL(context context.Context, bucket, objectPath string, ttl time.Duration) (string, error)
}

// Buckets names the buckets used by the platform.
type Buckets struct {
	Covers        string
	Audio         string
	Ebooks        string
	ProfileImages string
}

// # Object Keys

// ObjectPath builds "<prefix>/<uuidv7><ext>" using the extension of filename.
//
// The original filename never becomes part of the key: Persian names with
// spaces and ZWNJ make poor URLs.
func ObjectPath(prefix, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	name := uuidv7.New() + ext
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return name
	}
	return prefix + "/" + name
}

// PathFromPublicURL extracts the object path from a public URL of bucket.
//
// It understands both Supabase ("/storage/v1/object/public/<bucket>/<path>")
// and plain "<base>/<bucket>/<path>" URLs. The second return value is false
// when the URL does not point into bucket.
func PathFromPublicURL(bucket, publicURL string) (string, bool) {
	if publicURL == "" || bucket == "" {
		return "", false
	}

	parsed, err := url.Parse(publicURL)
	if err != nil {
		return "", false
	}

	marker := "/" + bucket + "/"
	index := strings.Index(parsed.Path, marker)
	if index == -1 {
		return "", false
	}

	objectPath := parsed.Path[index+len(marker):]
	if objectPath == "" {
		return "", false
	}
	return objectPath, true
}

// # Content Types

var contentTypes = map[string]string{
	".mp3":  "audio/mpeg",
	".m4a":  "audio/mp4",
	".aac":  "audio/aac",
	".ogg":  "audio/ogg",
	".opus": "audio/opus",
	".wav":  "audio/wav",
	".flac": "audio/flac",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
	".pdf":  "application/pdf",
	".epub": "application/epub+zip",
}

// ContentTypeFor returns the MIME type for filename, preferring the declared
// type when the extension is unknown.
func ContentTypeFor(filename, declared string) string {
	ext := strings.ToLower(path.Ext(filename))
	if known, ok := contentTypes[ext]; ok {
		return known
	}
	if declared != "" {
		return declared
	}
	if guessed := mime.TypeByExtension(ext); guessed != "" {
		return guessed
	}
	return "application/octet-stream"
}

// HasPrefix reports whether contentType belongs to the given family ("audio/", "image/").
func HasPrefix(contentType, family string) bool {
	return strings.HasPrefix(strings.ToLower(contentType), family)
}

// # Uploaded Files

// File is an uploaded file whose bytes are read only when opened.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Open        func() (io.ReadSeekCloser, error)
}

// FileFromMultipart wraps a multipart file header. Large parts live in a
// temporary file until opened.
func FileFromMultipart(header *multipart.FileHeader) File {
	return File{
		Name:        header.Filename,
		ContentType: ContentTypeFor(header.Filename, header.Header.Get("Content-Type")),
		Size:        header.Size,
		Open: func() (io.ReadSeekCloser, error) {
			return header.Open()
		},
	}
}

// FileFromBytes wraps in-memory data, mostly for tests and small payloads.
func FileFromBytes(name string, data []byte) File {
	return File{
		Name:        name,
		ContentType: ContentTypeFor(name, ""),
		Size:        int64(len(data)),
		Open: func() (io.ReadSeekCloser, error) {
			return nopCloser{bytes.NewReader(data)}, nil
		},
	}
}

type nopCloser struct {
	*bytes.Reader
}

func (nopCloser) Close() error { return nil }

/*
Put uploads file to bucket under prefix and returns the new object path.

Returns:
  - string: The object path ("<prefix>/<uuidv7><ext>")
  - error: STORAGE_ERROR carrying the provider message
*/
func Put(context context.Context, store Store, bucket, prefix string, file File) (string, error) {
	reader, err := file.Open()
	if err != nil {
		return "", apperr.Storage(err)
	}
	defer reader.Close()

	objectPath := ObjectPath(prefix, file.Name)
	if err := store.Upload(context, bucket, objectPath, reader, file.ContentType); err != nil {
		return "", apperr.Storage(err)
	}
	return objectPath, nil
}
