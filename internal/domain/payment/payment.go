package payment

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound      = errors.New("payment: not found")
	ErrAlreadyExists = errors.New("payment: payment already exists for order")
	ErrInvalidState  = errors.New("payment: invalid state transition")
	ErrUnknownMethod = errors.New("payment: unknown payment method")
)

// InvalidStateError carries the offending status so callers can report which
// transition was rejected.
type InvalidStateError struct {
	PaymentID string
	Status    Status
	Attempted string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("payment %s: cannot %s while %s", e.PaymentID, e.Attempted, e.Status)
}

func (e *InvalidStateError) Unwrap() error { return ErrInvalidState }

type Status string

const (
	StatusPending    Status = "PENDING"
	StatusProcessing Status = "PROCESSING"
	StatusCompleted  Status = "COMPLETED"
	StatusFailed     Status = "FAILED"
	StatusRefunded   Status = "REFUNDED"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusProcessing, StatusCompleted, StatusFailed, StatusRefunded:
		return Status(s), nil
	default:
		return "", fmt.Errorf("payment: unknown status %q", s)
	}
}

type Method string

const (
	MethodCard         Method = "CREDIT_CARD"
	MethodDebitCard    Method = "DEBIT_CARD"
	MethodWallet       Method = "WALLET"
	MethodBankTransfer Method = "BANK_TRANSFER"
)

func ParseMethod(s string) (Method, error) {
	switch Method(s) {
	case MethodCard, MethodDebitCard, MethodWallet, MethodBankTransfer:
		return Method(s), nil
	default:
		return "", ErrUnknownMethod
	}
}

// Payment settles exactly one order. Amount is copied from the order total at
// creation and never diverges from it; TransactionID is assigned exactly once.
// The status lifecycle is PENDING -> PROCESSING -> {COMPLETED, FAILED} and
// COMPLETED -> REFUNDED; every other transition is rejected. FAILED is
// terminal: a fresh attempt needs a new payment, which the one-per-order rule
// deliberately forbids for the same order instance.
type Payment struct {
	ID              string
	OrderID         string
	Method          Method
	Amount          decimal.Decimal
	Status          Status
	TransactionID   string
	GatewayResponse string
	FailureReason   string
	CreatedAt       time.Time
	ProcessedAt     time.Time
	UpdatedAt       time.Time
}

func New(id, orderID string, method Method, amount decimal.Decimal, transactionID string) *Payment {
	now := time.Now().UTC()
	return &Payment{
		ID:            id,
		OrderID:       orderID,
		Method:        method,
		Amount:        amount,
		Status:        StatusPending,
		TransactionID: transactionID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// BeginProcessing moves PENDING -> PROCESSING. The caller persists this
// midpoint state before invoking the gateway.
func (p *Payment) BeginProcessing() error {
	if p.Status != StatusPending {
		return &InvalidStateError{PaymentID: p.ID, Status: p.Status, Attempted: "process"}
	}
	p.Status = StatusProcessing
	p.touch()
	return nil
}

// Complete moves PROCESSING -> COMPLETED and records the gateway response.
func (p *Payment) Complete(gatewayResponse string) error {
	if p.Status != StatusProcessing {
		return &InvalidStateError{PaymentID: p.ID, Status: p.Status, Attempted: "complete"}
	}
	p.Status = StatusCompleted
	p.GatewayResponse = gatewayResponse
	p.FailureReason = ""
	p.touch()
	return nil
}

// Fail moves PROCESSING -> FAILED and records the decline reason.
func (p *Payment) Fail(reason string) error {
	if p.Status != StatusProcessing {
		return &InvalidStateError{PaymentID: p.ID, Status: p.Status, Attempted: "fail"}
	}
	p.Status = StatusFailed
	p.FailureReason = reason
	p.touch()
	return nil
}

// Refund moves COMPLETED -> REFUNDED, recording the reason and the refund time.
func (p *Payment) Refund(reason string, at time.Time) error {
	if p.Status != StatusCompleted {
		return &InvalidStateError{PaymentID: p.ID, Status: p.Status, Attempted: "refund"}
	}
	p.Status = StatusRefunded
	p.FailureReason = reason
	p.ProcessedAt = at
	p.touch()
	return nil
}

func (p *Payment) Clone() *Payment {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}

func (p *Payment) touch() {
	p.UpdatedAt = time.Now().UTC()
}
