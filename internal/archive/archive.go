// Package archive optionally keeps the uploaded challan photographs in an
// S3-compatible bucket so the user can re-inspect the photo they extracted
// from. It is a review aid only: archive failures never block extraction and
// the sheet's Photo Links column is not populated from it.
package archive

import (
	"context"
	"io"
	"time"
)

// PutOptions define optional parameters for archiving a photo. Size should
// be the exact byte count if known, -1 otherwise.
type PutOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// PhotoInfo describes an archived photo.
type PhotoInfo struct {
	Key         string
	Size        int64
	ETag        string
	ContentType string
	UploadedAt  time.Time
}

// Store is the archival backend. Implementations stream the content; no
// local disk involved.
type Store interface {
	// Put stores the photo under the given key.
	Put(ctx context.Context, key string, r io.Reader, opt PutOptions) (PhotoInfo, error)
	// PresignGet returns a time-limited URL for viewing the photo without
	// credentials.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}
