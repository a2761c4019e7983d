package checkpoint

import "context"

// Store is the inner checkpointer this package wraps. Implementations own
// durable persistence; this package never assumes anything about it beyond
// these seven operations. Save must be idempotent under the same id.
type Store interface {
	Save(ctx context.Context, ckpt Checkpoint) error
	Load(ctx context.Context, id string) (Checkpoint, bool, error)
	GetLatest(ctx context.Context, threadID string) (Checkpoint, bool, error)
	List(ctx context.Context, threadID string) ([]Metadata, error)
	Delete(ctx context.Context, id string) error
	DeleteThread(ctx context.Context, threadID string) error
	ListThreads(ctx context.Context) ([]ThreadInfo, error)
}
