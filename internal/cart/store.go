package cart

import "context"

// Store keeps one cart per user. Update applies fn atomically: two updates
// for the same user never interleave, so no transition is lost.
type Store interface {
	Load(ctx context.Context, userID string) (State, error)
	Update(ctx context.Context, userID string, fn func(State) State) (State, error)
}
