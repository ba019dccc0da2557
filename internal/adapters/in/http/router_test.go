package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	api "deliveryportal/internal/adapters/in/http"
	"deliveryportal/internal/adapters/out/inmemory"
	"deliveryportal/internal/core/application/usecases/commands"
	"deliveryportal/internal/core/application/usecases/queries"
	"deliveryportal/internal/core/domain/model/kernel"
	"deliveryportal/internal/core/domain/services"
	"deliveryportal/internal/pkg/metrics"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const secret = "test-secret"

var fixedNow = time.Date(2025, 5, 20, 14, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

type funcOrderUoWFactory func() commands.OrderUoW

func (f funcOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

func token(t *testing.T, sub, role string, key string) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  sub,
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(key))
	require.NoError(t, err)
	return signed
}

type RouterTestSuite struct {
	suite.Suite
	e        *echo.Echo
	company  kernel.UUID
	company2 kernel.UUID
	operator kernel.UUID
}

func (s *RouterTestSuite) SetupTest() {
	repo := inmemory.NewOrderRepository()
	uows := inmemory.NewUnitOfWorkFactory(repo)
	factory := funcOrderUoWFactory(func() commands.OrderUoW { return uows.Create() })

	estimator, err := services.NewRandomFeeEstimator(services.DefaultFeeBase, services.DefaultFeeVariableCeiling,
		func() float64 { return 0.5 })
	s.Require().NoError(err)

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	server := api.NewServer(
		commands.NewCreateOrderCommandHandler(factory, fixedClock),
		commands.NewChangeOrderStatusCommandHandler(factory, nil, fixedClock),
		queries.NewEstimateFeeQueryHandler(estimator),
		queries.NewListOrdersQueryHandler(repo),
		queries.NewGetOrderQueryHandler(repo),
		queries.NewGetOrderStatsQueryHandler(repo),
		m,
		fixedClock,
	)

	s.e, err = api.NewRouter(server, api.RouterConfig{
		JWTSecret: []byte(secret),
		Metrics:   m,
		Gatherer:  reg,
	})
	s.Require().NoError(err)

	s.company = kernel.NewUUID()
	s.company2 = kernel.NewUUID()
	s.operator = kernel.NewUUID()
}

func (s *RouterTestSuite) do(method, path, bearer, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if bearer != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *RouterTestSuite) companyToken(id kernel.UUID) string {
	return token(s.T(), id.String(), api.RoleCompany, secret)
}

func (s *RouterTestSuite) operatorToken() string {
	return token(s.T(), s.operator.String(), api.RoleOperator, secret)
}

const validOrder = `{
	"pickup": {"street": "Rua A, 1", "city": "São Paulo"},
	"dropoff": {"street": "Rua B, 2", "city": "Santos", "contactName": "Ana"},
	"product": {"description": "Livros", "value": "80.00"},
	"shippingFee": "22.50",
	"notes": "fragile"
}`

func (s *RouterTestSuite) createOrder(company kernel.UUID) api.CreatedOrder {
	rec := s.do(http.MethodPost, "/api/v1/orders", s.companyToken(company), validOrder)
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	var created api.CreatedOrder
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &created))
	return created
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) api.Error {
	t.Helper()
	var e api.Error
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &e))
	return e
}

func (s *RouterTestSuite) TestHealthIsPublic() {
	rec := s.do(http.MethodGet, "/health", "", "")

	s.Equal(http.StatusOK, rec.Code)
	s.Equal("Healthy", rec.Body.String())
}

func (s *RouterTestSuite) TestRejectsMissingOrForgedTokens() {
	s.Equal(http.StatusUnauthorized, s.do(http.MethodGet, "/api/v1/orders", "", "").Code)

	forged := token(s.T(), s.company.String(), api.RoleCompany, "other-secret")
	s.Equal(http.StatusUnauthorized, s.do(http.MethodGet, "/api/v1/orders", forged, "").Code)

	badSubject := token(s.T(), "acme", api.RoleCompany, secret)
	s.Equal(http.StatusUnauthorized, s.do(http.MethodGet, "/api/v1/orders", badSubject, "").Code)
}

func (s *RouterTestSuite) TestEstimateFee() {
	rec := s.do(http.MethodPost, "/api/v1/fees/estimate", s.companyToken(s.company),
		`{"pickupCity": "Campinas", "dropoffCity": "Jundiaí"}`)

	s.Require().Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"shippingFee": "25.00"}`, rec.Body.String())
}

func (s *RouterTestSuite) TestEstimateFee_BlankCity() {
	rec := s.do(http.MethodPost, "/api/v1/fees/estimate", s.companyToken(s.company),
		`{"pickupCity": "  ", "dropoffCity": "Jundiaí"}`)

	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *RouterTestSuite) TestCreateOrder() {
	created := s.createOrder(s.company)

	s.Equal("PED-000001", created.OrderNumber)
	s.Equal("received", created.Status)
	s.Equal("102.50", created.TotalValue)
	s.True(fixedNow.Equal(created.CreatedAt))
}

func (s *RouterTestSuite) TestCreateOrder_ValidationFailure() {
	body := strings.Replace(validOrder, `"street": "Rua A, 1", `, "", 1)

	rec := s.do(http.MethodPost, "/api/v1/orders", s.companyToken(s.company), body)

	s.Require().Equal(http.StatusUnprocessableEntity, rec.Code)
	e := decodeError(s.T(), rec)
	s.Contains(e.Message, "pickup street")
	s.Equal("pickup_street_missing", e.Reason)
}

func (s *RouterTestSuite) TestCreateOrder_WithoutProductDefaultsValueToZero() {
	body := `{
		"pickup": {"street": "Rua A, 1", "city": "São Paulo"},
		"dropoff": {"street": "Rua B, 2", "city": "Santos"},
		"shippingFee": "22.50"
	}`

	rec := s.do(http.MethodPost, "/api/v1/orders", s.companyToken(s.company), body)

	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	var created api.CreatedOrder
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &created))
	s.Equal("22.50", created.TotalValue)
}

func (s *RouterTestSuite) TestCreateOrder_ProductWithoutValue() {
	body := strings.Replace(validOrder, `, "value": "80.00"`, "", 1)

	rec := s.do(http.MethodPost, "/api/v1/orders", s.companyToken(s.company), body)

	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	s.Contains(rec.Body.String(), `"totalValue":"22.50"`)
}

func (s *RouterTestSuite) TestCreateOrder_MissingShippingFeeNamesReason() {
	body := strings.Replace(validOrder, `"shippingFee": "22.50",`, "", 1)

	rec := s.do(http.MethodPost, "/api/v1/orders", s.companyToken(s.company), body)

	s.Require().Equal(http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
	e := decodeError(s.T(), rec)
	s.Equal("shipping_fee_not_computed", e.Reason)
	s.Contains(e.Message, "shipping fee")
}

func (s *RouterTestSuite) TestCreateOrder_MalformedMoneyFailsSchema() {
	body := strings.Replace(validOrder, `"22.50"`, `"22,50"`, 1)

	rec := s.do(http.MethodPost, "/api/v1/orders", s.companyToken(s.company), body)

	s.Require().Equal(http.StatusBadRequest, rec.Code)
	msg := decodeError(s.T(), rec).Message
	s.Contains(msg, "/shippingFee")
	s.NotContains(msg, "22,50")
	s.NotContains(msg, "Schema:")
	s.NotContains(msg, "\n")
}

func (s *RouterTestSuite) TestCreateOrder_OperatorIsForbidden() {
	rec := s.do(http.MethodPost, "/api/v1/orders", s.operatorToken(), validOrder)

	s.Equal(http.StatusForbidden, rec.Code)
}

func (s *RouterTestSuite) TestListOrders() {
	first := s.createOrder(s.company)
	second := s.createOrder(s.company)
	s.createOrder(s.company2)

	rec := s.do(http.MethodGet, "/api/v1/orders?status=received&limit=10", s.companyToken(s.company), "")

	s.Require().Equal(http.StatusOK, rec.Code)
	var orders []api.Order
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &orders))
	s.Require().Len(orders, 2)
	s.Equal(second.OrderNumber, orders[0].OrderNumber)
	s.Equal(first.OrderNumber, orders[1].OrderNumber)
	s.Equal("Recebido", orders[0].StatusLabel)
	s.Equal("Ana", orders[0].Dropoff.ContactName)
}

func (s *RouterTestSuite) TestListOrders_InvalidParameters() {
	tok := s.companyToken(s.company)

	s.Equal(http.StatusBadRequest, s.do(http.MethodGet, "/api/v1/orders?status=lost", tok, "").Code)
	s.Equal(http.StatusBadRequest, s.do(http.MethodGet, "/api/v1/orders?limit=0", tok, "").Code)
	s.Equal(http.StatusBadRequest, s.do(http.MethodGet, "/api/v1/orders?limit=101", tok, "").Code)
}

func (s *RouterTestSuite) TestGetOrder_ScopedToCompany() {
	created := s.createOrder(s.company)
	path := "/api/v1/orders/" + created.ID.String()

	own := s.do(http.MethodGet, path, s.companyToken(s.company), "")
	s.Require().Equal(http.StatusOK, own.Code)

	foreign := s.do(http.MethodGet, path, s.companyToken(s.company2), "")
	s.Equal(http.StatusNotFound, foreign.Code)
}

func (s *RouterTestSuite) TestGetOrder_MalformedID() {
	rec := s.do(http.MethodGet, "/api/v1/orders/not-a-uuid", s.companyToken(s.company), "")

	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *RouterTestSuite) TestChangeOrderStatus() {
	created := s.createOrder(s.company)
	path := "/api/v1/operations/orders/" + created.ID.String() + "/status"
	courier := kernel.NewUUID()

	rec := s.do(http.MethodPatch, path, s.operatorToken(),
		`{"status": "sent", "courierId": "`+courier.String()+`"}`)

	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var result api.StatusChangeResult
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &result))
	s.True(result.Changed)
	s.Equal("received", result.PreviousStatus)
	s.Equal("sent", result.Order.Status)
	s.Require().NotNil(result.Order.CourierID)
	s.Equal(courier.String(), result.Order.CourierID.String())
	s.Require().NotNil(result.Order.AssignedAt)

	again := s.do(http.MethodPatch, path, s.operatorToken(), `{"status": "sent"}`)
	s.Require().Equal(http.StatusOK, again.Code)
	s.Contains(again.Body.String(), `"changed":false`)
}

func (s *RouterTestSuite) TestChangeOrderStatus_IllegalTransition() {
	created := s.createOrder(s.company)
	path := "/api/v1/operations/orders/" + created.ID.String() + "/status"

	rec := s.do(http.MethodPatch, path, s.operatorToken(), `{"status": "delivered"}`)

	s.Equal(http.StatusConflict, rec.Code)
	s.Contains(decodeError(s.T(), rec).Message, "received -> delivered")
}

func (s *RouterTestSuite) TestChangeOrderStatus_RequiresOperator() {
	created := s.createOrder(s.company)
	path := "/api/v1/operations/orders/" + created.ID.String() + "/status"

	rec := s.do(http.MethodPatch, path, s.companyToken(s.company), `{"status": "sent"}`)

	s.Equal(http.StatusForbidden, rec.Code)
}

func (s *RouterTestSuite) TestChangeOrderStatus_UnknownOrder() {
	path := "/api/v1/operations/orders/" + kernel.NewUUID().String() + "/status"

	rec := s.do(http.MethodPatch, path, s.operatorToken(), `{"status": "sent"}`)

	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *RouterTestSuite) TestGetOrderStats() {
	delivered := s.createOrder(s.company)
	s.createOrder(s.company)
	path := "/api/v1/operations/orders/" + delivered.ID.String() + "/status"
	for _, status := range []string{"sent", "in_transit", "delivered"} {
		s.Require().Equal(http.StatusOK,
			s.do(http.MethodPatch, path, s.operatorToken(), `{"status": "`+status+`"}`).Code)
	}

	rec := s.do(http.MethodGet, "/api/v1/orders/stats", s.companyToken(s.company), "")

	s.Require().Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"active": 1, "deliveredToday": 1, "total": 2}`, rec.Body.String())
}

func (s *RouterTestSuite) TestSwaggerAndMetricsArePublic() {
	s.createOrder(s.company)

	doc := s.do(http.MethodGet, "/swagger/doc.json", "", "")
	s.Require().Equal(http.StatusOK, doc.Code)
	s.Contains(doc.Body.String(), "Delivery Portal API")

	m := s.do(http.MethodGet, "/metrics", "", "")
	s.Require().Equal(http.StatusOK, m.Code)
	s.Contains(m.Body.String(), "delivery_portal_orders_created_total 1")
	s.Contains(m.Body.String(), `delivery_portal_http_requests_total{code="201",method="POST",route="/api/v1/orders"} 1`)
}

func (s *RouterTestSuite) TestUnknownRouteUsesErrorShape() {
	rec := s.do(http.MethodGet, "/api/v1/nowhere", "", "")

	s.Equal(http.StatusNotFound, rec.Code)
	assert.Equal(s.T(), http.StatusNotFound, decodeError(s.T(), rec).Code)
}

func TestRouterTestSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}
