package payment

import "time"

// PaymentFailedEvent is emitted after a gateway decline has been persisted.
type PaymentFailedEvent struct {
	PaymentID  string
	OrderID    string
	Reason     string
	OccurredAt time.Time
}

func (PaymentFailedEvent) EventName() string { return "payment.failed" }

func NewPaymentFailedEvent(p *Payment) PaymentFailedEvent {
	return PaymentFailedEvent{
		PaymentID:  p.ID,
		OrderID:    p.OrderID,
		Reason:     p.FailureReason,
		OccurredAt: time.Now().UTC(),
	}
}
