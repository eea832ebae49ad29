package storage

import "io"

// BlobStore archives uploaded exam documents before AI extraction.
type BlobStore interface {
	Put(key string, r io.Reader) (string, error) // returns canonical key
	Get(key string) (io.ReadCloser, error)
}
