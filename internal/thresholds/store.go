package thresholds

import "context"

// Store persists threshold policy versions.
//
// Append returns the stored policy with its assigned version. Latest returns
// sentinel.ErrNotFound when no policy has ever been stored, in which case the
// shipped defaults apply.
type Store interface {
	Append(ctx context.Context, policy Policy) (Policy, error)
	Latest(ctx context.Context) (Policy, error)
}
