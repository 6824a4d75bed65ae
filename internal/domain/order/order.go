package order

import (
	"errors"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound      = errors.New("order: not found")
	ErrUserRequired  = errors.New("order: user id is required")
	ErrNoProducts    = errors.New("order: product ids must not be empty")
	ErrUnknownStatus = errors.New("order: unknown status")
	ErrInvalidStatus = errors.New("order: status is required")
)

type Status string

const (
	StatusCreated   Status = "CREATED"
	StatusConfirmed Status = "CONFIRMED"
	StatusShipped   Status = "SHIPPED"
	StatusDelivered Status = "DELIVERED"
	StatusCancelled Status = "CANCELLED"
	StatusRefunded  Status = "REFUNDED"
)

// ParseStatus maps a wire value onto the closed status set. It belongs to the
// boundary; the core only ever handles the typed values.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusCreated, StatusConfirmed, StatusShipped, StatusDelivered, StatusCancelled, StatusRefunded:
		return Status(s), nil
	case "":
		return "", ErrInvalidStatus
	default:
		return "", ErrUnknownStatus
	}
}

// Order is a frozen snapshot of a purchase: the product set and total amount
// are captured once at creation and never re-derived. Only Status and
// TrackingNumber are mutable afterwards.
type Order struct {
	ID             string
	UserID         string
	ProductIDs     []string
	TotalAmount    decimal.Decimal
	OrderDate      time.Time
	Status         Status
	TrackingNumber string
	UpdatedAt      time.Time
}

// New builds a CREATED order over a resolved product set. productIDs is
// deduplicated and stored sorted so the snapshot compares deterministically.
func New(id, userID string, productIDs []string, totalAmount decimal.Decimal) (*Order, error) {
	if userID == "" {
		return nil, ErrUserRequired
	}
	if len(productIDs) == 0 {
		return nil, ErrNoProducts
	}

	now := time.Now().UTC()
	return &Order{
		ID:          id,
		UserID:      userID,
		ProductIDs:  dedupe(productIDs),
		TotalAmount: totalAmount,
		OrderDate:   now,
		Status:      StatusCreated,
		UpdatedAt:   now,
	}, nil
}

// SetStatus overwrites the status directly. Transition legality is not
// enforced here; the payment processor drives the transitions that matter and
// operators may force any state through this entry point.
func (o *Order) SetStatus(status Status, trackingNumber string) {
	o.Status = status
	if trackingNumber != "" {
		o.TrackingNumber = trackingNumber
	}
	o.touch()
}

func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	clone := *o
	clone.ProductIDs = append([]string(nil), o.ProductIDs...)
	return &clone
}

func (o *Order) touch() {
	o.UpdatedAt = time.Now().UTC()
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
