package gateway

import (
	"context"
	"math/rand"
	"sync"
	"time"

	domain "github.com/ferrishop/commerce-core/internal/domain/payment"
)

const (
	// DefaultSuccessRate is the fallback when no valid rate is configured.
	DefaultSuccessRate = 0.9

	approvedResponse = "Payment processed successfully"
	declinedReason   = "Payment gateway declined the transaction"
)

// Simulated approves charges with a configurable probability. It stands in for
// the external gateway; there is no network wait and no retry inside a charge.
type Simulated struct {
	mu          sync.Mutex
	random      *rand.Rand
	successRate float64
}

func NewSimulated(successRate float64) *Simulated {
	if successRate < 0 || successRate > 1 {
		successRate = DefaultSuccessRate
	}
	return &Simulated{
		random:      rand.New(rand.NewSource(time.Now().UnixNano())),
		successRate: successRate,
	}
}

func (g *Simulated) Charge(ctx context.Context, p *domain.Payment) (domain.Outcome, error) {
	_ = ctx
	_ = p

	g.mu.Lock()
	approved := g.random.Float64() < g.successRate
	g.mu.Unlock()

	if approved {
		return domain.Outcome{Approved: true, Response: approvedResponse}, nil
	}
	return domain.Outcome{Approved: false, Reason: declinedReason}, nil
}

func (g *Simulated) SuccessRate() float64 { return g.successRate }
