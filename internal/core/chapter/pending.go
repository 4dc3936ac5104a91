// Copyright (c) 2026 Nava. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chapter

import (
	"io"

	"github.com/taibuivan/navaadmin/internal/platform/storage"
)

/*
PendingFile is an uploaded file waiting for its turn in a bulk upload.

Its bytes stay in the multipart spool until [PendingFile.Load] and are
dropped again by [PendingFile.Release], so a bulk upload holds at most one
file in memory at a time.
*/
type PendingFile struct {
	file storage.File
	data []byte
}

// NewPendingFile wraps an uploaded part without reading its bytes.
func NewPendingFile(file storage.File) *PendingFile {
	return &PendingFile{file: file}
}

// Name is the client-side file name.
func (pending *PendingFile) Name() string        { return pending.file.Name }
// ContentType is the MIME type sent by the client.
func (pending *PendingFile) ContentType() string { return pending.file.ContentType }
// Size is the declared size in bytes.
func (pending *PendingFile) Size() int64         { return pending.file.Size }

// Bytes returns the loaded content, or nil outside Load/Release.
func (pending *PendingFile) Bytes() []byte {
	return pending.data
}

// Load reads the whole file into memory.
func (pending *PendingFile) Load() error {
	if pending.data != nil {
		return nil
	}

	reader, err := pending.file.Open()
	if err != nil {
		return err
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	pending.data = data
	return nil
}

// Release drops the loaded bytes.
func (pending *PendingFile) Release() {
	pending.data = nil
}
