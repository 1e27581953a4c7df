package post

import "context"

// Repository persists posts. Update, Patch and Delete match on both id and
// owner in a single statement, so a post owned by someone else behaves
// exactly like a missing one.
type Repository interface {
	Create(ctx context.Context, text string, ownerID int64) (*Post, error)
	Get(ctx context.Context, id int64) (*Post, error)
	ListPage(ctx context.Context, q PageQuery) (*Page, error)
	Update(ctx context.Context, id, ownerID int64, text string) (*Post, error)
	Patch(ctx context.Context, id, ownerID int64, fields Fields) (*Post, error)
	// Delete succeeds even when no row matched.
	Delete(ctx context.Context, id, ownerID int64) error
}

// HealthChecker is implemented by stores that can report backend liveness.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}
