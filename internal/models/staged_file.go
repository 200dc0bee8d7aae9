package models

import "io"

// FileSource is an opaque handle to a staged file's bytes.
// Bytes are not read until encoding time.
type FileSource interface {
	Open() (io.ReadCloser, error)
}

// StagedFile represents one file selected for the next batch.
// Name is the unique key within the staging store.
type StagedFile struct {
	Name        string     `json:"name"`
	Size        int64      `json:"size"`
	ContentType string     `json:"contentType,omitempty"`
	Source      FileSource `json:"-"`
}

// EncodedFilePayload is the transport form of a staged file,
// produced per run and discarded after submission.
type EncodedFilePayload struct {
	FileName   string `json:"filename"`
	Base64Data string `json:"data"`
	Size       int64  `json:"size"`
}
