package http

import (
	"net/http"
	"time"

	"deliveryportal/internal/core/application/usecases/commands"
	"deliveryportal/internal/core/application/usecases/queries"
	"deliveryportal/internal/core/domain/model/kernel"
	"deliveryportal/internal/core/domain/model/order"
	"deliveryportal/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler  commands.CreateOrderCommandHandler
	changeStatusHandler commands.ChangeOrderStatusCommandHandler

	// Query handlers
	estimateFeeHandler queries.EstimateFeeQueryHandler
	listOrdersHandler  queries.ListOrdersQueryHandler
	getOrderHandler    queries.GetOrderQueryHandler
	getStatsHandler    queries.GetOrderStatsQueryHandler

	metrics *metrics.Metrics
	clock   func() time.Time
}

var _ ServerInterface = (*Server)(nil)

// NewServer creates a new HTTP server with the required command and query handlers.
// clock drives the "today" of the stats endpoint; nil means time.Now.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	changeStatusHandler commands.ChangeOrderStatusCommandHandler,
	estimateFeeHandler queries.EstimateFeeQueryHandler,
	listOrdersHandler queries.ListOrdersQueryHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getStatsHandler queries.GetOrderStatsQueryHandler,
	m *metrics.Metrics,
	clock func() time.Time,
) *Server {
	if clock == nil {
		clock = time.Now
	}
	return &Server{
		createOrderHandler:  createOrderHandler,
		changeStatusHandler: changeStatusHandler,
		estimateFeeHandler:  estimateFeeHandler,
		listOrdersHandler:   listOrdersHandler,
		getOrderHandler:     getOrderHandler,
		getStatsHandler:     getStatsHandler,
		metrics:             m,
		clock:               clock,
	}
}

// EstimateFee handles POST /api/v1/fees/estimate.
func (s *Server) EstimateFee(ctx echo.Context) error {
	var req FeeEstimateRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	resp, err := s.estimateFeeHandler.Handle(ctx.Request().Context(),
		queries.NewEstimateFeeQuery(req.PickupCity, req.DropoffCity))
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, FeeEstimate{ShippingFee: resp.ShippingFee.String()})
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	principal, ok := companyPrincipal(ctx)
	if !ok {
		return forbidden(ctx)
	}

	var req NewOrder
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	productValue, err := optionalMoney(req.Product.Value)
	if err != nil {
		return badRequest(ctx, "Invalid product value: "+err.Error())
	}
	// A missing fee is left to the order invariants, which report it as
	// shipping_fee_not_computed.
	shippingFee, err := optionalMoney(req.ShippingFee)
	if err != nil {
		return badRequest(ctx, "Invalid shipping fee: "+err.Error())
	}

	cmd, err := commands.NewCreateOrderCommand(
		principal.ID,
		addressToDomain(req.Pickup),
		addressToDomain(req.Dropoff),
		order.Product{Description: req.Product.Description, Value: productValue},
		shippingFee,
		req.Notes,
	)
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}
	s.metrics.OrdersCreatedTotal.Inc()

	return ctx.JSON(http.StatusCreated, CreatedOrder{
		ID:          result.ID.Bytes(),
		OrderNumber: result.Number.String(),
		Status:      result.Status.String(),
		TotalValue:  result.TotalValue.String(),
		CreatedAt:   result.CreatedAt,
	})
}

// ListOrders handles GET /api/v1/orders.
func (s *Server) ListOrders(ctx echo.Context, params ListOrdersParams) error {
	principal, ok := companyPrincipal(ctx)
	if !ok {
		return forbidden(ctx)
	}

	status := ""
	if params.Status != nil {
		status = *params.Status
	}
	limit := 0
	if params.Limit != nil {
		limit = *params.Limit
	}

	query, err := queries.NewListOrdersQuery(principal.ID, status, limit)
	if err != nil {
		return respondError(ctx, err)
	}

	orders, err := s.listOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]Order, len(orders))
	for i, o := range orders {
		response[i] = orderToWire(o)
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrderStats handles GET /api/v1/orders/stats.
func (s *Server) GetOrderStats(ctx echo.Context) error {
	principal, ok := companyPrincipal(ctx)
	if !ok {
		return forbidden(ctx)
	}

	query, err := queries.NewGetOrderStatsQuery(principal.ID, s.clock())
	if err != nil {
		return respondError(ctx, err)
	}

	stats, err := s.getStatsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, OrderStats{
		Active:         stats.Active,
		DeliveredToday: stats.DeliveredToday,
		Total:          stats.Total,
	})
}

// GetOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrder(ctx echo.Context, orderID openapi_types.UUID) error {
	principal, ok := companyPrincipal(ctx)
	if !ok {
		return forbidden(ctx)
	}

	id, err := kernel.UUIDFromBytes(orderID[:])
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	query, err := queries.NewGetOrderQuery(principal.ID, id)
	if err != nil {
		return respondError(ctx, err)
	}

	o, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderToWire(o))
}

// ChangeOrderStatus handles PATCH /api/v1/operations/orders/{orderId}/status.
func (s *Server) ChangeOrderStatus(ctx echo.Context, orderID openapi_types.UUID) error {
	principal, ok := principalFrom(ctx)
	if !ok || principal.Role != RoleOperator {
		return forbidden(ctx)
	}

	var req StatusChange
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	target, err := order.ParseStatus(req.Status)
	if err != nil {
		return respondError(ctx, err)
	}

	id, err := kernel.UUIDFromBytes(orderID[:])
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var courierID *kernel.UUID
	if req.CourierID != nil {
		cID, cErr := kernel.UUIDFromBytes(req.CourierID[:])
		if cErr != nil {
			return badRequest(ctx, "Invalid courier id")
		}
		courierID = &cID
	}

	cmd, err := commands.NewChangeOrderStatusCommand(id, target, courierID)
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.changeStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}
	if result.Changed {
		s.metrics.StatusChangesTotal.WithLabelValues(target.String()).Inc()
	}

	return ctx.JSON(http.StatusOK, StatusChangeResult{
		Order:          orderToWire(queries.NewOrderResponse(result.Order)),
		PreviousStatus: result.Previous.String(),
		Changed:        result.Changed,
	})
}

func companyPrincipal(ctx echo.Context) (Principal, bool) {
	p, ok := principalFrom(ctx)
	if !ok || p.Role != RoleCompany {
		return Principal{}, false
	}
	return p, true
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: message})
}

func forbidden(ctx echo.Context) error {
	return ctx.JSON(http.StatusForbidden, Error{Code: http.StatusForbidden, Message: "forbidden"})
}

// optionalMoney treats an absent amount as zero.
func optionalMoney(s string) (kernel.Money, error) {
	if s == "" {
		return kernel.ZeroMoney(), nil
	}
	return kernel.MoneyFromString(s)
}

func addressToDomain(a Address) kernel.Address {
	return kernel.Address{
		Street:       a.Street,
		Neighborhood: a.Neighborhood,
		City:         a.City,
		PostalCode:   a.PostalCode,
		ContactName:  a.ContactName,
		ContactPhone: a.ContactPhone,
	}
}

func addressToWire(a kernel.Address) Address {
	return Address{
		Street:       a.Street,
		Neighborhood: a.Neighborhood,
		City:         a.City,
		PostalCode:   a.PostalCode,
		ContactName:  a.ContactName,
		ContactPhone: a.ContactPhone,
	}
}

func orderToWire(o queries.OrderResponse) Order {
	out := Order{
		ID:          o.ID.Bytes(),
		OrderNumber: o.Number.String(),
		Pickup:      addressToWire(o.Pickup),
		Dropoff:     addressToWire(o.Dropoff),
		Product:     Product{Description: o.ProductDescription, Value: o.ProductValue.String()},
		ShippingFee: o.ShippingFee.String(),
		TotalValue:  o.TotalValue.String(),
		Notes:       o.Notes,
		Status:      o.Status.String(),
		StatusLabel: o.Status.Label(),
		CreatedAt:   o.CreatedAt,
		AssignedAt:  o.AssignedAt,
		CompletedAt: o.CompletedAt,
	}
	if o.CourierID != nil {
		courier := openapi_types.UUID(o.CourierID.Bytes())
		out.CourierID = &courier
	}
	return out
}
