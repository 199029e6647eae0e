package queries_test

import (
	"context"
	"testing"
	"time"

	"storefront/internal/adapters/out/postgres/orderrepo"
	"storefront/internal/adapters/out/postgres/pgtest"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/orderid"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

type OrderQueriesIntegrationTestSuite struct {
	suite.Suite
	database   *pgtest.Database
	repository *orderrepo.GormOrderRepository
	sequence   int64
}

func (suite *OrderQueriesIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
}

func (suite *OrderQueriesIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate("orders"))
	suite.repository = orderrepo.NewGormOrderRepository(suite.database.DB)
}

func (suite *OrderQueriesIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *OrderQueriesIntegrationTestSuite) TestGetOrder_ReturnsFullDocument() {
	ctx := context.Background()
	saved := suite.saveOrder(func(o *order.Order) {
		o.MarkPaid(time.Date(2024, time.May, 2, 10, 0, 0, 0, time.UTC), &order.PaymentResult{
			ID:     "pi_3P9",
			Status: "succeeded",
		})
	})
	query, err := queries.NewGetOrderQuery(saved.Identifier().String())
	suite.Require().NoError(err)

	result, err := queries.NewGetOrderQueryHandler(suite.database.DB).Handle(ctx, query)

	suite.Require().NoError(err)
	suite.True(result.ID.IsEqual(saved.ID()))
	suite.True(result.User.IsEqual(saved.User()))
	suite.Equal(saved.Identifier(), result.CustomOrderID)
	suite.Require().Len(result.Items, 1)
	suite.Equal("Jamdani saree", result.Items[0].Name)
	suite.Equal(2, result.Items[0].Quantity)
	suite.Equal("Dhaka", result.ShippingAddress.State)
	suite.Equal("1207", result.ShippingAddress.ZipCode)
	suite.Equal("card", result.PaymentMethod)
	suite.Require().NotNil(result.PaymentResult)
	suite.Equal("pi_3P9", result.PaymentResult.ID)
	suite.Equal(5060.0, result.TotalPrice)
	suite.True(result.IsPaid)
	suite.NotNil(result.PaidAt)
	suite.False(result.IsDelivered)
	suite.Nil(result.DeliveredAt)
	suite.Equal("Processing", result.OrderStatus)
}

func (suite *OrderQueriesIntegrationTestSuite) TestGetOrder_NotFound() {
	query, err := queries.NewGetOrderQuery("DHA9999")
	suite.Require().NoError(err)

	_, err = queries.NewGetOrderQueryHandler(suite.database.DB).Handle(context.Background(), query)

	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderQueriesIntegrationTestSuite) TestGetUndeliveredOrders_ExcludesDeliveredAndCancelled() {
	ctx := context.Background()
	pending := suite.saveOrder(nil)
	shipped := suite.saveOrder(func(o *order.Order) {
		suite.Require().NoError(o.ChangeStatus(order.Shipped))
	})
	suite.saveOrder(func(o *order.Order) {
		o.MarkDelivered(time.Now().UTC())
	})
	suite.saveOrder(func(o *order.Order) {
		suite.Require().NoError(o.ChangeStatus(order.Cancelled))
	})

	result, err := queries.NewGetUndeliveredOrdersQueryHandler(suite.database.DB).
		Handle(ctx, queries.NewGetUndeliveredOrdersQuery())

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)
	suite.Equal(pending.Identifier(), result[0].CustomOrderID)
	suite.Equal("Processing", result[0].OrderStatus)
	suite.Equal(shipped.Identifier(), result[1].CustomOrderID)
	suite.Equal("Shipped", result[1].OrderStatus)
}

func (suite *OrderQueriesIntegrationTestSuite) TestGetUndeliveredOrders_Empty() {
	result, err := queries.NewGetUndeliveredOrdersQueryHandler(suite.database.DB).
		Handle(context.Background(), queries.NewGetUndeliveredOrdersQuery())

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *OrderQueriesIntegrationTestSuite) saveOrder(mutate func(o *order.Order)) *order.Order {
	suite.sequence++
	o, err := order.NewOrder(
		kernel.NewUUID(),
		kernel.NewUUID(),
		[]order.Item{{Product: kernel.NewUUID(), Name: "Jamdani saree", Quantity: 2, Price: 2500}},
		order.ShippingAddress{Name: "Rahim Uddin", State: "Dhaka", City: "Dhaka", ZipCode: "1207"},
		order.Card,
		order.Prices{Items: 5000, Shipping: 60, Total: 5060},
	)
	suite.Require().NoError(err)
	if mutate != nil {
		mutate(o)
	}
	o.NormalizeDelivery(time.Now().UTC())

	seq, err := orderid.NewSequence(suite.sequence)
	suite.Require().NoError(err)
	id, err := orderid.NewIdentifier("DHA", seq)
	suite.Require().NoError(err)
	suite.Require().NoError(o.AssignIdentifier(id))
	suite.Require().NoError(suite.repository.Add(context.Background(), o))
	return o
}

func TestOrderQueriesIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderQueriesIntegrationTestSuite))
}
