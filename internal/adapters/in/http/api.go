package http

import (
	"context"
	_ "embed"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/swaggo/swag"
)

//go:embed openapi.yaml
var openapiDocument []byte

// Address is the wire form of a pickup or drop-off address.
type Address struct {
	Street       string `json:"street,omitempty"`
	Neighborhood string `json:"neighborhood,omitempty"`
	City         string `json:"city,omitempty"`
	PostalCode   string `json:"postalCode,omitempty"`
	ContactName  string `json:"contactName,omitempty"`
	ContactPhone string `json:"contactPhone,omitempty"`
}

type Product struct {
	Description string `json:"description,omitempty"`
	Value       string `json:"value"`
}

type FeeEstimateRequest struct {
	PickupCity  string `json:"pickupCity"`
	DropoffCity string `json:"dropoffCity"`
}

type FeeEstimate struct {
	ShippingFee string `json:"shippingFee"`
}

type NewOrder struct {
	Pickup      Address `json:"pickup"`
	Dropoff     Address `json:"dropoff"`
	Product     Product `json:"product"`
	ShippingFee string  `json:"shippingFee"`
	Notes       string  `json:"notes,omitempty"`
}

type CreatedOrder struct {
	ID          openapi_types.UUID `json:"id"`
	OrderNumber string             `json:"orderNumber"`
	Status      string             `json:"status"`
	TotalValue  string             `json:"totalValue"`
	CreatedAt   time.Time          `json:"createdAt"`
}

type Order struct {
	ID          openapi_types.UUID  `json:"id"`
	OrderNumber string              `json:"orderNumber"`
	Pickup      Address             `json:"pickup"`
	Dropoff     Address             `json:"dropoff"`
	Product     Product             `json:"product"`
	ShippingFee string              `json:"shippingFee"`
	TotalValue  string              `json:"totalValue"`
	Notes       string              `json:"notes,omitempty"`
	Status      string              `json:"status"`
	StatusLabel string              `json:"statusLabel"`
	CreatedAt   time.Time           `json:"createdAt"`
	AssignedAt  *time.Time          `json:"assignedAt,omitempty"`
	CompletedAt *time.Time          `json:"completedAt,omitempty"`
	CourierID   *openapi_types.UUID `json:"courierId,omitempty"`
}

type OrderStats struct {
	Active         int64 `json:"active"`
	DeliveredToday int64 `json:"deliveredToday"`
	Total          int64 `json:"total"`
}

type StatusChange struct {
	Status    string              `json:"status"`
	CourierID *openapi_types.UUID `json:"courierId,omitempty"`
}

type StatusChangeResult struct {
	Order          Order  `json:"order"`
	PreviousStatus string `json:"previousStatus"`
	Changed        bool   `json:"changed"`
}

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Reason  string `json:"reason,omitempty"`
}

// ListOrdersParams defines parameters for ListOrders.
type ListOrdersParams struct {
	Status *string `form:"status,omitempty" json:"status,omitempty"`
	Limit  *int    `form:"limit,omitempty" json:"limit,omitempty"`
}

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// (POST /api/v1/fees/estimate)
	EstimateFee(ctx echo.Context) error
	// (POST /api/v1/orders)
	CreateOrder(ctx echo.Context) error
	// (GET /api/v1/orders)
	ListOrders(ctx echo.Context, params ListOrdersParams) error
	// (GET /api/v1/orders/stats)
	GetOrderStats(ctx echo.Context) error
	// (GET /api/v1/orders/{orderId})
	GetOrder(ctx echo.Context, orderID openapi_types.UUID) error
	// (PATCH /api/v1/operations/orders/{orderId}/status)
	ChangeOrderStatus(ctx echo.Context, orderID openapi_types.UUID) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) EstimateFee(ctx echo.Context) error {
	return w.Handler.EstimateFee(ctx)
}

func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	return w.Handler.CreateOrder(ctx)
}

func (w *ServerInterfaceWrapper) ListOrders(ctx echo.Context) error {
	var params ListOrdersParams

	err := runtime.BindQueryParameter("form", true, false, "status", ctx.QueryParams(), &params.Status)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter status: %s", err))
	}

	err = runtime.BindQueryParameter("form", true, false, "limit", ctx.QueryParams(), &params.Limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter limit: %s", err))
	}

	return w.Handler.ListOrders(ctx, params)
}

func (w *ServerInterfaceWrapper) GetOrderStats(ctx echo.Context) error {
	return w.Handler.GetOrderStats(ctx)
}

func (w *ServerInterfaceWrapper) GetOrder(ctx echo.Context) error {
	orderID, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.GetOrder(ctx, orderID)
}

func (w *ServerInterfaceWrapper) ChangeOrderStatus(ctx echo.Context) error {
	orderID, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.ChangeOrderStatus(ctx, orderID)
}

func bindOrderID(ctx echo.Context) (openapi_types.UUID, error) {
	var orderID openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "orderId", ctx.Param("orderId"), &orderID,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return orderID, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter orderId: %s", err))
	}
	return orderID, nil
}

// EchoRouter is the subset of *echo.Echo and *echo.Group used for registration.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface, m ...echo.MiddlewareFunc) {
	wrapper := ServerInterfaceWrapper{Handler: si}

	router.POST("/api/v1/fees/estimate", wrapper.EstimateFee, m...)
	router.POST("/api/v1/orders", wrapper.CreateOrder, m...)
	router.GET("/api/v1/orders", wrapper.ListOrders, m...)
	router.GET("/api/v1/orders/stats", wrapper.GetOrderStats, m...)
	router.GET("/api/v1/orders/:orderId", wrapper.GetOrder, m...)
	router.PATCH("/api/v1/operations/orders/:orderId/status", wrapper.ChangeOrderStatus, m...)
}

// GetSwagger loads and validates the embedded OpenAPI document.
func GetSwagger() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(openapiDocument)
	if err != nil {
		return nil, fmt.Errorf("error loading OpenAPI document: %w", err)
	}
	if err = doc.Validate(context.Background()); err != nil {
		return nil, fmt.Errorf("invalid OpenAPI document: %w", err)
	}
	return doc, nil
}

type swaggerDoc struct {
	json string
}

func (d swaggerDoc) ReadDoc() string {
	return d.json
}

var registerDocOnce sync.Once

// RegisterSwaggerDoc publishes the document to swag so that echo-swagger can
// serve it as doc.json. Only the first call has an effect.
func RegisterSwaggerDoc(doc *openapi3.T) error {
	raw, err := doc.MarshalJSON()
	if err != nil {
		return err
	}
	registerDocOnce.Do(func() {
		swag.Register(swag.Name, swaggerDoc{json: string(raw)})
	})
	return nil
}
