package commands_test

import (
	"errors"
	"testing"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/orderid"
	"storefront/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newCreateOrderCommand(t *testing.T, address order.ShippingAddress) commands.CreateOrderCommand {
	t.Helper()
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), kernel.NewUUID(), testItems(),
		address, order.Cash, testPrices())
	require.NoError(t, err)
	return cmd
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd := newCreateOrderCommand(t, order.ShippingAddress{State: "Dhaka"})

	store := new(MockCounterStore)
	store.On("IncrementAndFetch", ctx, "DHA").Return(int64(7), nil).Once()

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Add", ctx, mock.MatchedBy(func(o *order.Order) bool {
			return o.Identifier() == "DHA0007" && o.Status() == order.Processing && !o.IsPaid()
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)
	publisher.On("Publish", ctx, mock.MatchedBy(func(e order.ChangedEvent) bool {
		return e.Kind == order.EventCreated && e.CustomOrderID == "DHA0007"
	})).Return(nil).Once()

	h := commands.NewCreateOrderCommandHandler(factory, newPipeline(t, store), publisher, zap.NewNop())
	id, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, orderid.Identifier("DHA0007"), id)
	store.AssertExpectations(t)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_DeliveredOrderIsSavedPaid(t *testing.T) {
	ctx := t.Context()
	cmd := newCreateOrderCommand(t, order.ShippingAddress{}).WithPaymentState(false, true)

	store := new(MockCounterStore)
	store.On("IncrementAndFetch", ctx, "GEN").Return(int64(1), nil).Once()

	var saved *order.Order
	repo := new(MockOrderRepository)
	repo.On("Add", ctx, mock.AnythingOfType("*order.Order")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*order.Order) }).
		Return(nil).Once()

	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)
	publisher.On("Publish", ctx, mock.Anything).Return(nil).Once()

	h := commands.NewCreateOrderCommandHandler(factory, newPipeline(t, store), publisher, zap.NewNop())
	id, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, orderid.Identifier("GEN0001"), id)
	require.NotNil(t, saved)
	assert.True(t, saved.IsPaid())
	assert.NotNil(t, saved.PaidAt())
	assert.NotNil(t, saved.DeliveredAt())
	assert.Equal(t, order.Delivered, saved.Status())
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.CreateOrderCommand{}
	factory := new(MockOrderUoWFactory)
	store := new(MockCounterStore)

	h := commands.NewCreateOrderCommandHandler(factory, newPipeline(t, store), nil, zap.NewNop())
	_, err := h.Handle(ctx, cmd)

	require.Error(t, err)
	store.AssertNotCalled(t, "IncrementAndFetch", mock.Anything, mock.Anything)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateOrderCommandHandler_Handle_AllocationFailureWritesNothing(t *testing.T) {
	ctx := t.Context()
	cmd := newCreateOrderCommand(t, order.ShippingAddress{Division: "Chattogram"})

	storeErr := errors.New("connection refused")
	store := new(MockCounterStore)
	store.On("IncrementAndFetch", ctx, "CHA").Return(int64(0), storeErr).Once()

	factory := new(MockOrderUoWFactory)
	publisher := new(MockEventPublisher)

	h := commands.NewCreateOrderCommandHandler(factory, newPipeline(t, store), publisher, zap.NewNop())
	id, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, services.ErrAllocationFailed)
	require.ErrorIs(t, err, storeErr)
	assert.True(t, id.IsZero())
	factory.AssertNotCalled(t, "Create")
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestCreateOrderCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	cmd := newCreateOrderCommand(t, order.ShippingAddress{State: "Dhaka"})

	store := new(MockCounterStore)
	store.On("IncrementAndFetch", ctx, "DHA").Return(int64(1), nil).Once()

	uow := new(MockOrderUoW)
	factory := new(MockOrderUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	h := commands.NewCreateOrderCommandHandler(factory, newPipeline(t, store), nil, zap.NewNop())
	_, err := h.Handle(ctx, cmd)

	require.Error(t, err)
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_AddError(t *testing.T) {
	ctx := t.Context()
	cmd := newCreateOrderCommand(t, order.ShippingAddress{State: "Dhaka"})

	store := new(MockCounterStore)
	store.On("IncrementAndFetch", ctx, "DHA").Return(int64(3), nil).Once()

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(errors.New("duplicate key")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()
	publisher := new(MockEventPublisher)

	h := commands.NewCreateOrderCommandHandler(factory, newPipeline(t, store), publisher, zap.NewNop())
	_, err := h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "DHA0003")
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestCreateOrderCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()
	cmd := newCreateOrderCommand(t, order.ShippingAddress{State: "Dhaka"})

	store := new(MockCounterStore)
	store.On("IncrementAndFetch", ctx, "DHA").Return(int64(1), nil).Once()

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(errors.New("commit error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, newPipeline(t, store), nil, zap.NewNop())
	_, err := h.Handle(ctx, cmd)

	require.Error(t, err)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_PublishErrorIsNotReturned(t *testing.T) {
	ctx := t.Context()
	cmd := newCreateOrderCommand(t, order.ShippingAddress{City: "Khulna"})

	store := new(MockCounterStore)
	store.On("IncrementAndFetch", ctx, "KHU").Return(int64(12), nil).Once()

	repo := new(MockOrderRepository)
	repo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once()

	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)
	publisher.On("Publish", ctx, mock.Anything).Return(errors.New("broker down")).Once()

	h := commands.NewCreateOrderCommandHandler(factory, newPipeline(t, store), publisher, zap.NewNop())
	id, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, "KHU0012", id.String())
	publisher.AssertExpectations(t)
}
