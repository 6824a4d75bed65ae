package storage

import "context"

// UnitOfWork groups a multi-entity read-modify-write sequence into one atomic
// unit: other units observe it fully applied or not at all. The in-memory
// implementation serializes units with a lock; the sqlite implementation runs
// fn inside a single transaction carried on the context.
type UnitOfWork interface {
	WithinUnit(ctx context.Context, fn func(ctx context.Context) error) error
}
