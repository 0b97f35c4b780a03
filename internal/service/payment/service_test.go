package payment

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamestorelab/gamestore/internal/domain"
	"github.com/gamestorelab/gamestore/internal/storage/memory"
)

type recordingPublisher struct {
	paid []domain.Payment
}

func (p *recordingPublisher) OrderCreated(domain.Order) error { return nil }

func (p *recordingPublisher) OrderPaid(_ domain.Order, payment domain.Payment) error {
	p.paid = append(p.paid, payment)
	return nil
}

func (p *recordingPublisher) OrderStatusChanged(domain.StatusChange) error { return nil }

type fixture struct {
	games     domain.GameRepository
	carts     domain.CartRepository
	orders    domain.OrderRepository
	checkout  domain.CheckoutRepository
	history   domain.OrderHistoryRepository
	payments  domain.PaymentRepository
	publisher *recordingPublisher
	service   *Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	games := memory.NewGameRepository()
	carts := memory.NewCartRepository(games)
	orders := memory.NewOrderRepository()

	f := &fixture{
		games:     games,
		carts:     carts,
		orders:    orders,
		checkout:  memory.NewCheckoutRepository(carts, orders),
		history:   memory.NewOrderHistoryRepository(),
		payments:  memory.NewPaymentRepository(orders),
		publisher: &recordingPublisher{},
	}
	f.service = NewService(f.payments, f.orders, f.history, f.publisher, log.New().WithField("component", "payment"))
	return f
}

// seedOrder создаёт заказ через обычный путь чекаута: игра в каталоге,
// позиция в корзине, атомарное создание заказа.
func (f *fixture) seedOrder(t *testing.T, userID, price string) domain.Order {
	t.Helper()

	gameID := uuid.NewString()
	require.NoError(t, f.games.Create(domain.Game{
		ID:    gameID,
		Title: "Seeded",
		Price: decimal.RequireFromString(price),
	}))
	cart, err := f.carts.EnsureForUser(userID)
	require.NoError(t, err)
	_, err = f.carts.AddItem(cart.ID, gameID)
	require.NoError(t, err)

	now := time.Now().UTC()
	order := domain.Order{
		ID:          uuid.NewString(),
		UserID:      userID,
		TotalAmount: decimal.RequireFromString(price),
		Status:      domain.OrderStatusDelivered,
		CreatedAt:   now,
		UpdatedAt:   now,
		Items: []domain.OrderItem{{
			ID:        uuid.NewString(),
			GameID:    gameID,
			Title:     "Seeded",
			UnitPrice: decimal.RequireFromString(price),
			CreatedAt: now,
		}},
	}
	created, err := f.checkout.CreateOrderFromCart(order, cart.ID, []string{gameID})
	require.NoError(t, err)
	return created
}

func TestCreateCompletedPaymentConfirmsOrder(t *testing.T) {
	f := newFixture(t)
	order := f.seedOrder(t, "user-1", "90")
	actor := domain.Actor{UserID: "user-1", Role: domain.UserRoleCustomer}

	payment, err := f.service.Create(actor, CreateInput{
		OrderID: order.ID,
		Method:  domain.PaymentMethodCreditCard,
		Amount:  decimal.RequireFromString("90.99"), // floor совпадает с floor(90)
		Status:  domain.PaymentStatusCompleted,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusCompleted, payment.Status)

	updated, err := f.orders.Get(order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusProcessing, updated.Status)

	changes, err := f.history.List(order.ID)
	require.NoError(t, err)
	require.Len(t, changes, 1)
	assert.Equal(t, domain.OrderStatusDelivered, changes[0].From)
	assert.Equal(t, domain.OrderStatusProcessing, changes[0].To)
	assert.Equal(t, "payment confirmed", changes[0].Reason)

	require.Len(t, f.publisher.paid, 1)
	assert.Equal(t, payment.ID, f.publisher.paid[0].ID)
}

func TestCreatePendingPaymentLeavesOrderAwaiting(t *testing.T) {
	f := newFixture(t)
	order := f.seedOrder(t, "user-1", "50")
	actor := domain.Actor{UserID: "user-1", Role: domain.UserRoleCustomer}

	payment, err := f.service.Create(actor, CreateInput{
		OrderID: order.ID,
		Method:  domain.PaymentMethodPaypal,
		Amount:  decimal.RequireFromString("50"),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusPending, payment.Status)

	updated, err := f.orders.Get(order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusDelivered, updated.Status)
	assert.Empty(t, f.publisher.paid)
}

func TestCreatePaymentAmountMismatch(t *testing.T) {
	f := newFixture(t)
	order := f.seedOrder(t, "user-1", "90")
	actor := domain.Actor{UserID: "user-1", Role: domain.UserRoleCustomer}

	_, err := f.service.Create(actor, CreateInput{
		OrderID: order.ID,
		Method:  domain.PaymentMethodCreditCard,
		Amount:  decimal.RequireFromString("89.99"),
		Status:  domain.PaymentStatusCompleted,
	})
	assert.ErrorIs(t, err, domain.ErrPaymentAmountMismatch)

	// Неуспешная проверка ничего не пишет.
	payments, err := f.payments.ListByUser("user-1")
	require.NoError(t, err)
	assert.Empty(t, payments)
}

func TestCreatePaymentOrderNotAwaiting(t *testing.T) {
	f := newFixture(t)
	order := f.seedOrder(t, "user-1", "50")
	require.NoError(t, f.orders.UpdateStatusNotes(order.ID, domain.OrderStatusProcessing, ""))
	actor := domain.Actor{UserID: "user-1", Role: domain.UserRoleCustomer}

	_, err := f.service.Create(actor, CreateInput{
		OrderID: order.ID,
		Method:  domain.PaymentMethodCreditCard,
		Amount:  decimal.RequireFromString("50"),
	})
	assert.ErrorIs(t, err, domain.ErrOrderNotAwaitingPayment)
}

func TestCreatePaymentForeignOrderDenied(t *testing.T) {
	f := newFixture(t)
	order := f.seedOrder(t, "user-1", "50")
	stranger := domain.Actor{UserID: "user-2", Role: domain.UserRoleCustomer}

	_, err := f.service.Create(stranger, CreateInput{
		OrderID: order.ID,
		Method:  domain.PaymentMethodCreditCard,
		Amount:  decimal.RequireFromString("50"),
	})
	assert.ErrorIs(t, err, domain.ErrAccessDenied)
}

func TestGetPaymentOwnerScoped(t *testing.T) {
	f := newFixture(t)
	order := f.seedOrder(t, "user-1", "50")
	owner := domain.Actor{UserID: "user-1", Role: domain.UserRoleCustomer}

	payment, err := f.service.Create(owner, CreateInput{
		OrderID: order.ID,
		Method:  domain.PaymentMethodCreditCard,
		Amount:  decimal.RequireFromString("50"),
	})
	require.NoError(t, err)

	got, err := f.service.Get(owner, payment.ID)
	require.NoError(t, err)
	assert.Equal(t, payment.ID, got.ID)

	admin := domain.Actor{UserID: "root", Role: domain.UserRoleAdmin}
	_, err = f.service.Get(admin, payment.ID)
	assert.NoError(t, err)

	stranger := domain.Actor{UserID: "user-2", Role: domain.UserRoleCustomer}
	_, err = f.service.Get(stranger, payment.ID)
	assert.ErrorIs(t, err, domain.ErrAccessDenied)
}

func TestListPaymentsAdminOnly(t *testing.T) {
	f := newFixture(t)
	customer := domain.Actor{UserID: "user-1", Role: domain.UserRoleCustomer}

	_, err := f.service.List(customer, 10)
	assert.ErrorIs(t, err, domain.ErrAdminOnly)

	admin := domain.Actor{UserID: "root", Role: domain.UserRoleAdmin}
	_, err = f.service.List(admin, 10)
	assert.NoError(t, err)
}
