// Package alerts consumes advisory domain events and turns them into logs and
// metrics for operators. It never feeds state back into the engine.
package alerts

import (
	"context"

	"github.com/ferrishop/commerce-core/internal/domain/catalog"
	"github.com/ferrishop/commerce-core/internal/domain/order"
	domoutbox "github.com/ferrishop/commerce-core/internal/domain/outbox"
	"github.com/ferrishop/commerce-core/internal/domain/payment"
	"github.com/ferrishop/commerce-core/internal/pkg/logging"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

type Worker struct {
	subscriber domoutbox.Subscriber
	alertCount *prometheus.CounterVec
}

func New(subscriber domoutbox.Subscriber, alertCount *prometheus.CounterVec) *Worker {
	return &Worker{
		subscriber: subscriber,
		alertCount: alertCount,
	}
}

func (w *Worker) Start() {
	w.subscriber.Subscribe(catalog.StockLowEvent{}.EventName(), w.handleStockLow)
	w.subscriber.Subscribe(payment.PaymentFailedEvent{}.EventName(), w.handlePaymentFailed)
	w.subscriber.Subscribe(order.OrderCreatedEvent{}.EventName(), w.handleOrderCreated)
}

func (w *Worker) handleStockLow(ctx context.Context, e domoutbox.Event) error {
	evt, ok := e.(catalog.StockLowEvent)
	if !ok {
		return nil
	}

	logger := logging.FromContext(ctx).With(zap.String("component", "alerts_worker"))
	logger.Warn("stock_low",
		zap.String("product_id", evt.ProductID),
		zap.String("name", evt.Name),
		zap.Int("quantity", evt.Quantity),
		zap.Int("threshold", evt.Threshold),
	)
	if w.alertCount != nil {
		w.alertCount.WithLabelValues("stock_low").Inc()
	}
	return nil
}

func (w *Worker) handleOrderCreated(ctx context.Context, e domoutbox.Event) error {
	evt, ok := e.(order.OrderCreatedEvent)
	if !ok {
		return nil
	}

	logger := logging.FromContext(ctx).With(zap.String("component", "alerts_worker"))
	logger.Info("order_created",
		zap.String("order_id", evt.OrderID),
		zap.String("user_id", evt.UserID),
		zap.Int("product_count", len(evt.ProductIDs)),
		zap.String("total_amount", evt.TotalAmount.String()),
	)
	if w.alertCount != nil {
		w.alertCount.WithLabelValues("order_created").Inc()
	}
	return nil
}

func (w *Worker) handlePaymentFailed(ctx context.Context, e domoutbox.Event) error {
	evt, ok := e.(payment.PaymentFailedEvent)
	if !ok {
		return nil
	}

	logger := logging.FromContext(ctx).With(zap.String("component", "alerts_worker"))
	logger.Warn("payment_failed",
		zap.String("payment_id", evt.PaymentID),
		zap.String("order_id", evt.OrderID),
		zap.String("reason", evt.Reason),
	)
	if w.alertCount != nil {
		w.alertCount.WithLabelValues("payment_failed").Inc()
	}
	return nil
}
