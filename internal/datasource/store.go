package datasource

import (
	"context"

	"github.com/google/uuid"
)

// Store defines the persistence contract an entity repository must satisfy to
// sit behind an Adapter. Both the remote Postgres repositories and the
// embedded fallback dataset implement it.
type Store[T any] interface {
	List(ctx context.Context) ([]T, error)
	GetByID(ctx context.Context, id uuid.UUID) (*T, error)
	Create(ctx context.Context, record *T) (*T, error)
	Update(ctx context.Context, record *T) (*T, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
