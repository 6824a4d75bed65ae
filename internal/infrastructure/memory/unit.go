package memory

import (
	"context"
	"sync"
)

// UnitOfWork serializes multi-entity units with a single mutex. Settlement
// units are rare relative to reads, so one lock keeps the pairing of a payment
// transition with its order transition observable only as a whole.
type UnitOfWork struct {
	mu sync.Mutex
}

func NewUnitOfWork() *UnitOfWork { return &UnitOfWork{} }

// WithinUnit serializes fn but does not roll back: writes applied before fn
// fails stay applied. This relies on the settle/refund units' trailing order
// write being infallible once the payment write succeeded — the only failure
// mode is an absent order, and orders are never deleted by this engine. A
// unit whose trailing write could genuinely fail needs the sqlite store.
func (u *UnitOfWork) WithinUnit(ctx context.Context, fn func(ctx context.Context) error) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	return fn(ctx)
}
