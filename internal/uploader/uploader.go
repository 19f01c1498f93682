// Package uploader converts uploaded file payloads into durable, publicly
// addressable URLs on the media store.
package uploader

import "context"

// Result describes a completed upload.
type Result struct {
	// URL is the stable public address of the stored object.
	URL string
	// Key is the object key within the bucket.
	Key string
}

// Uploader stores a file payload and returns its public URL. Implementations
// must be safe for concurrent use.
type Uploader interface {
	Upload(ctx context.Context, data []byte, filename string) (*Result, error)
}
