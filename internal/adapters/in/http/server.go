// Package http exposes the order and upload use cases over echo.
package http

import (
	"context"
	"encoding/json"
	"net/http"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/changeset"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/orderid"
	"storefront/internal/core/ports"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type (
	OrderCreator interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) (orderid.Identifier, error)
	}
	OrderUpdater interface {
		Handle(ctx context.Context, cmd commands.UpdateOrderCommand) (*order.Order, error)
	}
	OrderDeliverer interface {
		Handle(ctx context.Context, cmd commands.MarkOrderDeliveredCommand) (*order.Order, error)
	}
	OrderFinder interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (queries.GetOrderQueryResponse, error)
	}
	UndeliveredOrdersFinder interface {
		Handle(ctx context.Context, query queries.GetUndeliveredOrdersQuery) ([]queries.GetUndeliveredOrdersQueryResponse, error)
	}
)

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	CreateOrder       OrderCreator
	UpdateOrder       OrderUpdater
	MarkDelivered     OrderDeliverer
	GetOrder          OrderFinder
	UndeliveredOrders UndeliveredOrdersFinder
	Images            ports.ImageStorage
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers Handlers
	logger   *zap.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(handlers Handlers, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		handlers: handlers,
		logger:   logger.With(zap.String("component", "http_server")),
	}
}

// CreateOrder handles POST /api/v1/orders. The response carries the
// allocated customOrderId.
func (s *Server) CreateOrder(c echo.Context) error {
	var body NewOrder
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	user, err := kernel.UUIDFromString(body.User)
	if err != nil {
		return s.fail(c, err, "Invalid user")
	}
	items, err := body.items()
	if err != nil {
		return s.fail(c, err, "Invalid order items")
	}
	method, err := order.ParsePaymentMethod(body.PaymentMethod)
	if err != nil {
		return s.fail(c, err, "Invalid payment method")
	}

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(),
		user,
		items,
		body.ShippingAddress.toDomain(),
		method,
		order.Prices{Items: body.ItemsPrice, Shipping: body.ShippingPrice, Total: body.TotalPrice},
	)
	if err != nil {
		return s.fail(c, err, "Invalid order data")
	}
	cmd = cmd.WithPaymentState(body.IsPaid, body.IsDelivered)

	identifier, err := s.handlers.CreateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err, "Failed to create order")
	}

	return c.JSON(http.StatusCreated, CreatedOrder{
		ID:            cmd.OrderID().String(),
		CustomOrderID: identifier.String(),
	})
}

// GetOrder handles GET /api/v1/orders/:identifier.
func (s *Server) GetOrder(c echo.Context) error {
	query, err := queries.NewGetOrderQuery(c.Param("identifier"))
	if err != nil {
		return s.fail(c, err, "Invalid order identifier")
	}

	view, err := s.handlers.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err, "Failed to retrieve order")
	}

	return c.JSON(http.StatusOK, orderFromView(view))
}

// GetUndeliveredOrders handles GET /api/v1/orders/pending.
func (s *Server) GetUndeliveredOrders(c echo.Context) error {
	orders, err := s.handlers.UndeliveredOrders.Handle(
		c.Request().Context(),
		queries.NewGetUndeliveredOrdersQuery(),
	)
	if err != nil {
		return s.fail(c, err, "Failed to retrieve orders")
	}

	response := make([]PendingOrder, len(orders))
	for i, o := range orders {
		response[i] = PendingOrder{
			ID:            o.ID.String(),
			CustomOrderID: o.CustomOrderID.String(),
			OrderStatus:   o.OrderStatus,
			IsPaid:        o.IsPaid,
			TotalPrice:    o.TotalPrice,
			CreatedAt:     o.CreatedAt,
		}
	}

	return c.JSON(http.StatusOK, response)
}

// UpdateOrder handles PATCH /api/v1/orders/:id. The body is a change-set,
// either flat ({"isDelivered": true}) or wrapped in $set.
func (s *Server) UpdateOrder(c echo.Context) error {
	id, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return s.fail(c, err, "Invalid order id")
	}

	var doc map[string]any
	decoder := json.NewDecoder(c.Request().Body)
	decoder.UseNumber()
	if err = decoder.Decode(&doc); err != nil {
		return badRequest(c, "Invalid request body")
	}

	changes, err := changeset.Parse(doc)
	if err != nil {
		return s.fail(c, err, "Invalid change-set")
	}
	cmd, err := commands.NewUpdateOrderCommand(id, changes)
	if err != nil {
		return s.fail(c, err, "Invalid change-set")
	}

	updated, err := s.handlers.UpdateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err, "Failed to update order")
	}

	return c.JSON(http.StatusOK, orderFromDomain(updated))
}

// MarkOrderDelivered handles POST /api/v1/orders/:id/deliver.
func (s *Server) MarkOrderDelivered(c echo.Context) error {
	id, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return s.fail(c, err, "Invalid order id")
	}

	cmd, err := commands.NewMarkOrderDeliveredCommand(id)
	if err != nil {
		return s.fail(c, err, "Invalid order id")
	}

	delivered, err := s.handlers.MarkDelivered.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err, "Failed to mark order delivered")
	}

	return c.JSON(http.StatusOK, orderFromDomain(delivered))
}
