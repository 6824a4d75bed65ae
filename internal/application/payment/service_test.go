package payment

import (
	"context"
	"errors"
	"sync"
	"testing"

	domcat "github.com/ferrishop/commerce-core/internal/domain/catalog"
	domorder "github.com/ferrishop/commerce-core/internal/domain/order"
	domain "github.com/ferrishop/commerce-core/internal/domain/payment"
	"github.com/ferrishop/commerce-core/internal/infrastructure/id"
	"github.com/ferrishop/commerce-core/internal/infrastructure/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGateway struct {
	approve bool
	err     error
}

func (g *stubGateway) Charge(_ context.Context, _ *domain.Payment) (domain.Outcome, error) {
	if g.err != nil {
		return domain.Outcome{}, g.err
	}
	if g.approve {
		return domain.Outcome{Approved: true, Response: "Payment processed successfully"}, nil
	}
	return domain.Outcome{Approved: false, Reason: "Payment gateway declined the transaction"}, nil
}

type paymentFixture struct {
	svc      *Service
	payments *memory.PaymentRepository
	orders   *memory.OrderRepository
	gateway  *stubGateway
}

func newFixture(t *testing.T, approve bool) *paymentFixture {
	t.Helper()
	f := &paymentFixture{
		payments: memory.NewPaymentRepository(),
		orders:   memory.NewOrderRepository(),
		gateway:  &stubGateway{approve: approve},
	}
	f.svc = NewService(f.payments, f.orders, f.gateway, memory.NewUnitOfWork(), id.NewUUIDGenerator(), nil, nil)
	return f
}

func (f *paymentFixture) seedOrder(t *testing.T, orderID, total string) {
	t.Helper()
	o, err := domorder.New(orderID, "u-1", []string{"p-1"}, decimal.RequireFromString(total))
	require.NoError(t, err)
	require.NoError(t, f.orders.Insert(context.Background(), o))
}

func TestCreatePayment(t *testing.T) {
	f := newFixture(t, true)
	f.seedOrder(t, "o-1", "99.99")
	ctx := context.Background()

	created, err := f.svc.CreatePayment(ctx, "o-1", domain.MethodCard)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusPending, created.Status)
	assert.Equal(t, "o-1", created.OrderID)
	assert.True(t, created.Amount.Equal(decimal.RequireFromString("99.99")), "amount copied from the order total")
	assert.Regexp(t, `^TXN_[0-9A-F]{12}$`, created.TransactionID)
}

func TestCreatePaymentUnknownOrder(t *testing.T) {
	f := newFixture(t, true)

	_, err := f.svc.CreatePayment(context.Background(), "missing", domain.MethodCard)
	assert.ErrorIs(t, err, domorder.ErrNotFound)
}

func TestCreatePaymentRejectsSecondForOrder(t *testing.T) {
	f := newFixture(t, true)
	f.seedOrder(t, "o-1", "50.00")
	ctx := context.Background()

	_, err := f.svc.CreatePayment(ctx, "o-1", domain.MethodCard)
	require.NoError(t, err)

	_, err = f.svc.CreatePayment(ctx, "o-1", domain.MethodWallet)
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestConcurrentCreatePaymentAdmitsExactlyOne(t *testing.T) {
	f := newFixture(t, true)
	f.seedOrder(t, "o-1", "50.00")
	ctx := context.Background()

	const attempts = 20
	var wg sync.WaitGroup
	var mu sync.Mutex
	var succeeded, duplicate int

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.CreatePayment(ctx, "o-1", domain.MethodCard)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				succeeded++
				return
			}
			assert.ErrorIs(t, err, domain.ErrAlreadyExists)
			duplicate++
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, attempts-1, duplicate)
}

func TestProcessPaymentApproved(t *testing.T) {
	f := newFixture(t, true)
	f.seedOrder(t, "o-1", "99.99")
	ctx := context.Background()

	created, err := f.svc.CreatePayment(ctx, "o-1", domain.MethodCard)
	require.NoError(t, err)

	settled, err := f.svc.ProcessPayment(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, settled.Status)
	assert.Equal(t, "Payment processed successfully", settled.GatewayResponse)
	assert.Empty(t, settled.FailureReason)

	ord, err := f.orders.FindByID(ctx, "o-1")
	require.NoError(t, err)
	assert.Equal(t, domorder.StatusConfirmed, ord.Status, "approval confirms the order in the same unit")
}

func TestProcessPaymentDeclined(t *testing.T) {
	f := newFixture(t, false)
	f.seedOrder(t, "o-1", "99.99")
	ctx := context.Background()

	created, err := f.svc.CreatePayment(ctx, "o-1", domain.MethodCard)
	require.NoError(t, err)

	settled, err := f.svc.ProcessPayment(ctx, created.ID)
	require.NoError(t, err, "a decline is a settled outcome, not a processing error")
	assert.Equal(t, domain.StatusFailed, settled.Status)
	assert.Equal(t, "Payment gateway declined the transaction", settled.FailureReason)

	ord, err := f.orders.FindByID(ctx, "o-1")
	require.NoError(t, err)
	assert.Equal(t, domorder.StatusCreated, ord.Status, "decline leaves the order untouched")
}

func TestProcessPaymentGatewayErrorFailsPayment(t *testing.T) {
	f := newFixture(t, true)
	f.gateway.err = errors.New("gateway unreachable")
	f.seedOrder(t, "o-1", "99.99")
	ctx := context.Background()

	created, err := f.svc.CreatePayment(ctx, "o-1", domain.MethodCard)
	require.NoError(t, err)

	settled, err := f.svc.ProcessPayment(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusFailed, settled.Status)
	assert.Equal(t, "gateway unreachable", settled.FailureReason)
}

func TestProcessPaymentInvalidStates(t *testing.T) {
	f := newFixture(t, true)
	f.seedOrder(t, "o-1", "99.99")
	ctx := context.Background()

	_, err := f.svc.ProcessPayment(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	created, err := f.svc.CreatePayment(ctx, "o-1", domain.MethodCard)
	require.NoError(t, err)

	_, err = f.svc.ProcessPayment(ctx, created.ID)
	require.NoError(t, err)

	_, err = f.svc.ProcessPayment(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState, "a settled payment cannot be processed again")
}

func TestRefundPayment(t *testing.T) {
	f := newFixture(t, true)
	f.seedOrder(t, "o-1", "99.99")
	ctx := context.Background()

	created, err := f.svc.CreatePayment(ctx, "o-1", domain.MethodCard)
	require.NoError(t, err)
	_, err = f.svc.ProcessPayment(ctx, created.ID)
	require.NoError(t, err)

	refunded, err := f.svc.RefundPayment(ctx, created.ID, "test")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRefunded, refunded.Status)
	assert.Equal(t, "test", refunded.FailureReason)
	assert.False(t, refunded.ProcessedAt.IsZero())

	ord, err := f.orders.FindByID(ctx, "o-1")
	require.NoError(t, err)
	assert.Equal(t, domorder.StatusRefunded, ord.Status)
}

func TestRefundRequiresCompleted(t *testing.T) {
	f := newFixture(t, false)
	f.seedOrder(t, "o-1", "99.99")
	ctx := context.Background()

	created, err := f.svc.CreatePayment(ctx, "o-1", domain.MethodCard)
	require.NoError(t, err)

	_, err = f.svc.RefundPayment(ctx, created.ID, "too early")
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	_, err = f.svc.ProcessPayment(ctx, created.ID)
	require.NoError(t, err)

	_, err = f.svc.RefundPayment(ctx, created.ID, "after decline")
	assert.ErrorIs(t, err, domain.ErrInvalidState, "failed payments cannot be refunded")

	_, err = f.svc.RefundPayment(ctx, "missing", "x")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFullLifecycleScenario(t *testing.T) {
	f := newFixture(t, true)

	product, err := domcat.New("p-1", "Widget", "", decimal.RequireFromString("99.99"), 100, 5)
	require.NoError(t, err)
	assert.Equal(t, 100, product.StockQuantity)

	ctx := context.Background()
	order, err := domorder.New("o-1", "u-1", []string{product.ID}, product.Price)
	require.NoError(t, err)
	require.NoError(t, f.orders.Insert(ctx, order))
	assert.Equal(t, domorder.StatusCreated, order.Status)

	created, err := f.svc.CreatePayment(ctx, order.ID, domain.MethodCard)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, created.Status)
	assert.True(t, created.Amount.Equal(decimal.RequireFromString("99.99")))

	settled, err := f.svc.ProcessPayment(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusCompleted, settled.Status)

	refunded, err := f.svc.RefundPayment(ctx, created.ID, "test")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRefunded, refunded.Status)
	assert.False(t, refunded.ProcessedAt.IsZero())

	ord, err := f.orders.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domorder.StatusRefunded, ord.Status)
}

func TestGetPaymentLookups(t *testing.T) {
	f := newFixture(t, true)
	f.seedOrder(t, "o-1", "10.00")
	ctx := context.Background()

	created, err := f.svc.CreatePayment(ctx, "o-1", domain.MethodWallet)
	require.NoError(t, err)

	byID, err := f.svc.GetPaymentByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, byID.ID)

	byOrder, err := f.svc.GetPaymentByOrder(ctx, "o-1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byOrder.ID)

	byTxn, err := f.svc.GetPaymentByTransactionID(ctx, created.TransactionID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, byTxn.ID)

	pending, err := f.svc.GetPaymentsByStatus(ctx, domain.StatusPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	_, err = f.svc.GetPaymentByOrder(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
