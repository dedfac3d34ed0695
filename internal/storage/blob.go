package storage

import "io"

// BlobStore serves stored assets (cover images) by key. Covers land on disk
// out of band and the catalog references them read-only, so there is no Put.
type BlobStore interface {
	Get(key string) (io.ReadCloser, error)
}
