package snapshot

import "context"

// Repository persists snapshot headers.
type Repository interface {
	Insert(ctx context.Context, s Snapshot) error
	GetLatest(ctx context.Context, name string) (Snapshot, bool, error)
	ListByName(ctx context.Context, name string, limit int) ([]Snapshot, error)
}

// BlobStore keeps serialized aggregates.
type BlobStore interface {
	Put(ctx context.Context, key string, body []byte, contentType string) error
	Get(ctx context.Context, key string) ([]byte, bool, error)
}
