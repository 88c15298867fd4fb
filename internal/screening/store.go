package screening

import "context"

// DefaultHistoryLimit bounds history queries when the caller does not supply
// a limit. There is no cursor beyond the limit; entities with long version
// histories are truncated, a known scalability gap.
const DefaultHistoryLimit = 20

// Store persists profiles as an append-only log per entity. Implementations
// must be safe for concurrent writes to different entity IDs; a duplicate
// (EntityID, AsOfTs) pair fails with sentinel.ErrConflict and leaves stored
// state unchanged. No update or delete operation exists.
type Store interface {
	// Put appends a new immutable version.
	Put(ctx context.Context, profile Profile) error

	// GetLatest returns the most recent version by AsOfTs, or
	// sentinel.ErrNotFound when the entity has never been scored.
	GetLatest(ctx context.Context, entityID string) (Profile, error)

	// GetHistory returns versions in descending AsOfTs order, at most limit
	// entries. A non-positive limit means DefaultHistoryLimit.
	GetHistory(ctx context.Context, entityID string, limit int) ([]Profile, error)
}
