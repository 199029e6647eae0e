package commands_test

import (
	"context"
	"testing"
	"time"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/model/changeset"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/orderid"
	"storefront/internal/core/domain/services"
	"storefront/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var fixedNow = time.Date(2024, time.March, 10, 9, 30, 0, 0, time.UTC)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) ApplyChanges(ctx context.Context, id kernel.UUID, cs changeset.ChangeSet) error {
	args := m.Called(ctx, id, cs)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetByIdentifier(ctx context.Context, id orderid.Identifier) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetAllViolatingDeliveryInvariant(ctx context.Context, limit int) ([]*order.Order, error) {
	args := m.Called(ctx, limit)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockCounterStore struct{ mock.Mock }

func (m *MockCounterStore) IncrementAndFetch(ctx context.Context, key string) (int64, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(int64), args.Error(1)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, event order.ChangedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func newPipeline(t *testing.T, store ports.CounterStore) *services.OrderConsistencyPipeline {
	t.Helper()

	allocator, err := services.NewSequenceAllocator(store, zap.NewNop(), services.NopMetrics{})
	require.NoError(t, err)

	pipeline, err := services.NewOrderConsistencyPipeline(
		allocator,
		zap.NewNop(),
		services.NopMetrics{},
		services.WithClock(func() time.Time { return fixedNow }),
	)
	require.NoError(t, err)
	return pipeline
}

func testItems() []order.Item {
	return []order.Item{{Product: kernel.NewUUID(), Name: "Nakshi Kantha", Quantity: 2, Image: "kantha.jpg", Price: 1200}}
}

func testPrices() order.Prices {
	return order.Prices{Items: 2400, Shipping: 80, Total: 2480}
}

func restoredOrder(t *testing.T, mutate func(*order.Snapshot)) *order.Order {
	t.Helper()

	s := order.Snapshot{
		ID:              kernel.NewUUID(),
		Identifier:      "DHA0001",
		User:            kernel.NewUUID(),
		Items:           testItems(),
		ShippingAddress: order.ShippingAddress{State: "Dhaka"},
		PaymentMethod:   order.Cash,
		Prices:          testPrices(),
		Status:          order.Processing,
		CreatedAt:       fixedNow.Add(-time.Hour),
		UpdatedAt:       fixedNow.Add(-time.Hour),
	}
	if mutate != nil {
		mutate(&s)
	}

	o, err := order.RestoreOrder(s)
	require.NoError(t, err)
	return o
}
