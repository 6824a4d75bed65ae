package payment

import "context"

// Outcome is a gateway charge decision.
type Outcome struct {
	Approved bool
	// Response holds the gateway acknowledgement on approval, Reason the
	// decline text otherwise; the two are mutually exclusive.
	Response string
	Reason   string
}

// Gateway is the capability the processor charges through. The bundled
// implementation simulates a probabilistic decision; a real integration swaps
// in here without touching the state machine.
type Gateway interface {
	Charge(ctx context.Context, p *Payment) (Outcome, error)
}
