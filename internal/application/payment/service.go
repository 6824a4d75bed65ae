// Package payment drives the payment lifecycle and pushes terminal outcomes
// into the order workflow. Status moves PENDING -> PROCESSING -> {COMPLETED,
// FAILED}, plus COMPLETED -> REFUNDED; FAILED is terminal for a payment
// instance, and the one-payment-per-order rule means a declined order is not
// retried through this engine.
package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	domorder "github.com/ferrishop/commerce-core/internal/domain/order"
	domoutbox "github.com/ferrishop/commerce-core/internal/domain/outbox"
	domain "github.com/ferrishop/commerce-core/internal/domain/payment"
	"github.com/ferrishop/commerce-core/internal/domain/storage"
	"github.com/ferrishop/commerce-core/internal/infrastructure/id"
	"github.com/ferrishop/commerce-core/internal/pkg/logging"
	"github.com/ferrishop/commerce-core/internal/pkg/token"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

const tracerName = "commerce-core/payment"

type Service struct {
	payments    domain.Repository
	orders      domorder.Repository
	gateway     domain.Gateway
	unit        storage.UnitOfWork
	idGenerator id.Generator
	publisher   domoutbox.Publisher

	// gatewayOutcomes counts charge decisions by outcome; optional.
	gatewayOutcomes *prometheus.CounterVec
}

func NewService(
	payments domain.Repository,
	orders domorder.Repository,
	gw domain.Gateway,
	unit storage.UnitOfWork,
	idGen id.Generator,
	publisher domoutbox.Publisher,
	gatewayOutcomes *prometheus.CounterVec,
) *Service {
	return &Service{
		payments:        payments,
		orders:          orders,
		gateway:         gw,
		unit:            unit,
		idGenerator:     idGen,
		publisher:       publisher,
		gatewayOutcomes: gatewayOutcomes,
	}
}

// CreatePayment creates the single payment for an order in PENDING state.
// The existence check and the insert run in one unit, and the repository
// additionally enforces order uniqueness, so concurrent duplicate creation
// cannot slip through.
func (s *Service) CreatePayment(ctx context.Context, orderID string, method domain.Method) (*domain.Payment, error) {
	var created *domain.Payment
	err := s.unit.WithinUnit(ctx, func(ctx context.Context) error {
		ord, err := s.orders.FindByID(ctx, orderID)
		if err != nil {
			return err
		}

		if _, err := s.payments.FindByOrder(ctx, orderID); err == nil {
			return domain.ErrAlreadyExists
		} else if !errors.Is(err, domain.ErrNotFound) {
			return err
		}

		transactionID, err := token.NewTransactionID()
		if err != nil {
			return err
		}

		created = domain.New(s.idGenerator.NewID(), ord.ID, method, ord.TotalAmount, transactionID)
		return s.payments.Insert(ctx, created)
	})
	if err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Info("payment_created",
		zap.String("component", "payment_service"),
		zap.String("payment_id", created.ID),
		zap.String("order_id", orderID),
		zap.String("transaction_id", created.TransactionID),
		zap.String("amount", created.Amount.String()),
	)
	return created, nil
}

// ProcessPayment runs a PENDING payment through the gateway. The PROCESSING
// midpoint is persisted before the charge; the terminal transition and, on
// approval, the order's move to CONFIRMED commit together in one unit. On
// decline only the payment changes.
func (s *Service) ProcessPayment(ctx context.Context, paymentID string) (_ *domain.Payment, err error) {
	logger := logging.FromContext(ctx).With(zap.String("component", "payment_service"))

	ctx, span := otel.Tracer(tracerName).Start(ctx, "ProcessPayment")
	span.SetAttributes(attribute.String("payment.id", paymentID))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "process_payment_failed")
		} else {
			span.SetStatus(codes.Ok, "")
		}
		span.End()
	}()

	processing, err := s.payments.Update(ctx, paymentID, func(p *domain.Payment) error {
		return p.BeginProcessing()
	})
	if err != nil {
		return nil, err
	}

	outcome, chargeErr := s.gateway.Charge(ctx, processing)
	if chargeErr != nil {
		// A transport failure is indistinguishable from a decline for this
		// payment instance; record it as the failure reason.
		outcome = domain.Outcome{Approved: false, Reason: chargeErr.Error()}
	}
	s.countOutcome(outcome.Approved)
	span.SetAttributes(attribute.Bool("payment.approved", outcome.Approved))

	var settled *domain.Payment
	if outcome.Approved {
		err = s.unit.WithinUnit(ctx, func(ctx context.Context) error {
			settled, err = s.payments.Update(ctx, paymentID, func(p *domain.Payment) error {
				return p.Complete(outcome.Response)
			})
			if err != nil {
				return err
			}
			_, err = s.orders.Update(ctx, settled.OrderID, func(o *domorder.Order) error {
				o.SetStatus(domorder.StatusConfirmed, "")
				return nil
			})
			return err
		})
		if err != nil {
			return nil, fmt.Errorf("payment: settle: %w", err)
		}
		logger.Info("payment_completed",
			zap.String("payment_id", settled.ID),
			zap.String("order_id", settled.OrderID),
		)
		return settled, nil
	}

	settled, err = s.payments.Update(ctx, paymentID, func(p *domain.Payment) error {
		return p.Fail(outcome.Reason)
	})
	if err != nil {
		return nil, err
	}
	if s.publisher != nil {
		if pubErr := s.publisher.Publish(ctx, domain.NewPaymentFailedEvent(settled)); pubErr != nil {
			logger.Warn("payment_failed_publish_failed", zap.String("payment_id", settled.ID), zap.Error(pubErr))
		}
	}
	logger.Info("payment_failed",
		zap.String("payment_id", settled.ID),
		zap.String("order_id", settled.OrderID),
		zap.String("reason", settled.FailureReason),
	)
	return settled, nil
}

// RefundPayment reverses a COMPLETED payment: the payment moves to REFUNDED
// with the reason and refund time recorded, and the order moves to REFUNDED
// in the same unit.
func (s *Service) RefundPayment(ctx context.Context, paymentID, reason string) (*domain.Payment, error) {
	var refunded *domain.Payment
	err := s.unit.WithinUnit(ctx, func(ctx context.Context) error {
		var err error
		refunded, err = s.payments.Update(ctx, paymentID, func(p *domain.Payment) error {
			return p.Refund(reason, time.Now().UTC())
		})
		if err != nil {
			return err
		}
		_, err = s.orders.Update(ctx, refunded.OrderID, func(o *domorder.Order) error {
			o.SetStatus(domorder.StatusRefunded, "")
			return nil
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Info("payment_refunded",
		zap.String("component", "payment_service"),
		zap.String("payment_id", refunded.ID),
		zap.String("order_id", refunded.OrderID),
		zap.String("reason", reason),
	)
	return refunded, nil
}

func (s *Service) GetPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	return s.payments.FindByID(ctx, paymentID)
}

func (s *Service) GetPaymentByOrder(ctx context.Context, orderID string) (*domain.Payment, error) {
	return s.payments.FindByOrder(ctx, orderID)
}

func (s *Service) GetPaymentsByStatus(ctx context.Context, status domain.Status) ([]*domain.Payment, error) {
	return s.payments.FindByStatus(ctx, status)
}

func (s *Service) GetPaymentByTransactionID(ctx context.Context, transactionID string) (*domain.Payment, error) {
	return s.payments.FindByTransactionID(ctx, transactionID)
}

func (s *Service) countOutcome(approved bool) {
	if s.gatewayOutcomes == nil {
		return
	}
	if approved {
		s.gatewayOutcomes.WithLabelValues("approved").Inc()
	} else {
		s.gatewayOutcomes.WithLabelValues("declined").Inc()
	}
}
