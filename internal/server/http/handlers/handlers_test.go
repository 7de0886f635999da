package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mymedina/commerce/internal/adapter/biteship"
	domainErrors "github.com/mymedina/commerce/internal/domain/errors"
	"github.com/mymedina/commerce/internal/domain/model"
	"github.com/mymedina/commerce/internal/domain/repository"
	"github.com/mymedina/commerce/internal/server/http/dto"
	"github.com/mymedina/commerce/internal/server/http/middleware"
	testhelpers "github.com/mymedina/commerce/internal/test/facades"
	"github.com/mymedina/commerce/internal/usecase"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performRequest(t *testing.T, method, path, route string, handler gin.HandlerFunc, setup func(*gin.Context), body []byte) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	router.Handle(method, route, func(c *gin.Context) {
		if setup != nil {
			setup(c)
		}
		handler(c)
	})

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func asCustomer(userID uuid.UUID) func(*gin.Context) {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDContextKey, userID)
		c.Set(middleware.RoleContextKey, model.RoleCustomer)
	}
}

func TestCurrentUserID(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if got := CurrentUserID(c); got != uuid.Nil {
		t.Fatalf("expected nil id when not set, got %s", got)
	}

	id := uuid.New()
	c.Set(middleware.UserIDContextKey, id)
	if got := CurrentUserID(c); got != id {
		t.Fatalf("expected %s, got %s", id, got)
	}
}

func TestCurrentRole(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if got := CurrentRole(c); got != "" {
		t.Fatalf("expected empty role when not set, got %s", got)
	}

	c.Set(middleware.RoleContextKey, model.RoleAdmin)
	if got := CurrentRole(c); got != model.RoleAdmin {
		t.Fatalf("expected admin role, got %s", got)
	}
}

func TestAuthHandlerRegister(t *testing.T) {
	body, _ := json.Marshal(dto.RegisterRequest{Email: "siti@example.com", Password: "rahasia-123", Name: "Siti"})
	resp := performRequest(t, http.MethodPost, "/register", "/register", NewAuthHandler(testhelpers.AuthFacadeStub{}).Register, nil, body)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}
	if resp.Header().Get("Authorization") == "" {
		t.Fatalf("expected auth header to be set")
	}

	var decoded dto.AuthResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if decoded.Token == "" {
		t.Fatalf("expected token in response body")
	}
	if decoded.User.Email != "siti@example.com" {
		t.Fatalf("unexpected user in response: %+v", decoded.User)
	}

	result := resp.Result()
	t.Cleanup(func() {
		_ = result.Body.Close()
	})
	foundCookie := false
	for _, cookie := range result.Cookies() {
		if cookie.Name == "commerce_token" {
			foundCookie = true
		}
	}
	if !foundCookie {
		t.Fatal("expected auth cookie named commerce_token")
	}
}

func TestAuthHandlerRegisterFailures(t *testing.T) {
	tests := []struct {
		name   string
		facade testhelpers.AuthFacadeStub
		body   []byte
		status int
	}{
		{name: "bad json", body: []byte("not json"), status: http.StatusUnprocessableEntity},
		{name: "weak password", body: []byte(`{"email":"a@b.c","password":"short","name":"A"}`), facade: testhelpers.AuthFacadeStub{RegisterFn: func(context.Context, usecase.RegisterInput) (*model.User, string, error) {
			return nil, "", domainErrors.NewValidation("password must be at least 8 characters")
		}}, status: http.StatusBadRequest},
		{name: "duplicate email", body: []byte(`{"email":"a@b.c","password":"rahasia-123","name":"A"}`), facade: testhelpers.AuthFacadeStub{RegisterFn: func(context.Context, usecase.RegisterInput) (*model.User, string, error) {
			return nil, "", domainErrors.ErrAlreadyExists
		}}, status: http.StatusConflict},
		{name: "internal", body: []byte(`{"email":"a@b.c","password":"rahasia-123","name":"A"}`), facade: testhelpers.AuthFacadeStub{RegisterFn: func(context.Context, usecase.RegisterInput) (*model.User, string, error) {
			return nil, "", errors.New("boom")
		}}, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := performRequest(t, http.MethodPost, "/register", "/register", NewAuthHandler(tt.facade).Register, nil, tt.body)
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
		})
	}
}

func TestAuthHandlerLogin(t *testing.T) {
	body, _ := json.Marshal(dto.LoginRequest{Email: "siti@example.com", Password: "rahasia-123"})
	resp := performRequest(t, http.MethodPost, "/login", "/login", NewAuthHandler(testhelpers.AuthFacadeStub{}).Login, nil, body)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
}

func TestAuthHandlerLoginInvalidCredentials(t *testing.T) {
	facade := testhelpers.AuthFacadeStub{AuthenticateFn: func(context.Context, string, string) (*model.User, string, error) {
		return nil, "", domainErrors.ErrInvalidCredentials
	}}
	body := []byte(`{"email":"siti@example.com","password":"wrong-password"}`)
	resp := performRequest(t, http.MethodPost, "/login", "/login", NewAuthHandler(facade).Login, nil, body)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", resp.Code)
	}
}

func TestAuthHandlerAddAddress(t *testing.T) {
	userID := uuid.New()
	body := []byte(`{"recipient":"Siti","line1":"Jl. Merdeka 1","city":"Jakarta","postal_code":"12110"}`)
	resp := performRequest(t, http.MethodPost, "/addresses", "/addresses", NewAuthHandler(testhelpers.AuthFacadeStub{}).AddAddress, asCustomer(userID), body)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}
}

func TestCatalogHandlerCreateCategory(t *testing.T) {
	body := []byte(`{"name":"Hijab Segi Empat"}`)
	resp := performRequest(t, http.MethodPost, "/categories", "/categories", NewCatalogHandler(testhelpers.CatalogFacadeStub{}).CreateCategory, nil, body)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}
	var decoded dto.CategoryResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if decoded.Slug != "hijab-segi-empat" {
		t.Fatalf("unexpected slug %q", decoded.Slug)
	}
}

func TestCatalogHandlerCreateCategoryBadParent(t *testing.T) {
	body := []byte(`{"name":"Hijab","parent_id":"not-a-uuid"}`)
	resp := performRequest(t, http.MethodPost, "/categories", "/categories", NewCatalogHandler(testhelpers.CatalogFacadeStub{}).CreateCategory, nil, body)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestCatalogHandlerListProducts(t *testing.T) {
	facade := testhelpers.CatalogFacadeStub{ListProductsFn: func(ctx context.Context, filter repository.ProductFilter) ([]model.Product, int, error) {
		if filter.Page != 2 || filter.Limit != 5 {
			t.Fatalf("unexpected filter %+v", filter)
		}
		if filter.Search != "voal" {
			t.Fatalf("unexpected search %q", filter.Search)
		}
		return []model.Product{{ID: uuid.New(), Name: "Voal Premium"}}, 11, nil
	}}
	resp := performRequest(t, http.MethodGet, "/products?page=2&limit=5&search=voal", "/products", NewCatalogHandler(facade).ListProducts, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var decoded dto.ProductListResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if decoded.Total != 11 || decoded.Page != 2 || decoded.Limit != 5 {
		t.Fatalf("unexpected pagination %+v", decoded)
	}
}

func TestCatalogHandlerGetProductBadID(t *testing.T) {
	resp := performRequest(t, http.MethodGet, "/products/oops", "/products/:id", NewCatalogHandler(testhelpers.CatalogFacadeStub{}).GetProduct, nil, nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestCatalogHandlerGetProductNotFound(t *testing.T) {
	facade := testhelpers.CatalogFacadeStub{GetProductFn: func(context.Context, uuid.UUID) (*model.Product, error) {
		return nil, domainErrors.ErrNotFound
	}}
	resp := performRequest(t, http.MethodGet, "/products/"+uuid.NewString(), "/products/:id", NewCatalogHandler(facade).GetProduct, nil, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}

func TestOrderHandlerCreate(t *testing.T) {
	userID := uuid.New()
	variantID := uuid.New()
	facade := testhelpers.OrderFacadeStub{CreateFn: func(ctx context.Context, gotUser uuid.UUID, in usecase.CreateOrderInput) (*model.Order, error) {
		if gotUser != userID {
			t.Fatalf("unexpected user %s", gotUser)
		}
		if len(in.Items) != 1 || in.Items[0].VariantID != variantID || in.Items[0].Quantity != 2 {
			t.Fatalf("unexpected items %+v", in.Items)
		}
		return &model.Order{ID: uuid.New(), UserID: gotUser, Number: "ORD-20250101-00001", Status: model.OrderStatusPendingPayment}, nil
	}}

	body, _ := json.Marshal(dto.CreateOrderRequest{
		Items:   []dto.OrderItemRequest{{VariantID: variantID.String(), Quantity: 2}},
		Address: dto.ShippingAddressRequest{Recipient: "Siti", Line1: "Jl. Merdeka 1"},
	})
	resp := performRequest(t, http.MethodPost, "/orders", "/orders", NewOrderHandler(facade).Create, asCustomer(userID), body)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}
	var decoded dto.OrderResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if decoded.Number != "ORD-20250101-00001" {
		t.Fatalf("unexpected order number %q", decoded.Number)
	}
}

func TestOrderHandlerCreateFailures(t *testing.T) {
	userID := uuid.New()
	validBody := []byte(`{"items":[{"variant_id":"` + uuid.NewString() + `","quantity":1}],"address":{"recipient":"Siti","line1":"Jl. Merdeka 1"}}`)

	tests := []struct {
		name   string
		facade testhelpers.OrderFacadeStub
		body   []byte
		status int
	}{
		{name: "bad json", body: []byte("not json"), status: http.StatusUnprocessableEntity},
		{name: "bad variant id", body: []byte(`{"items":[{"variant_id":"oops","quantity":1}],"address":{"recipient":"Siti","line1":"Jl. Merdeka 1"}}`), status: http.StatusBadRequest},
		{name: "insufficient stock", body: validBody, facade: testhelpers.OrderFacadeStub{CreateFn: func(context.Context, uuid.UUID, usecase.CreateOrderInput) (*model.Order, error) {
			return nil, &domainErrors.InsufficientStockError{ProductName: "Voal", SKU: "VP-1", Requested: 5, Available: 1}
		}}, status: http.StatusBadRequest},
		{name: "internal", body: validBody, facade: testhelpers.OrderFacadeStub{CreateFn: func(context.Context, uuid.UUID, usecase.CreateOrderInput) (*model.Order, error) {
			return nil, errors.New("boom")
		}}, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := performRequest(t, http.MethodPost, "/orders", "/orders", NewOrderHandler(tt.facade).Create, asCustomer(userID), tt.body)
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
		})
	}
}

func TestOrderHandlerGetForbidden(t *testing.T) {
	facade := testhelpers.OrderFacadeStub{GetFn: func(context.Context, uuid.UUID, uuid.UUID, model.Role) (*model.Order, error) {
		return nil, domainErrors.ErrForbidden
	}}
	resp := performRequest(t, http.MethodGet, "/orders/"+uuid.NewString(), "/orders/:id", NewOrderHandler(facade).Get, asCustomer(uuid.New()), nil)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", resp.Code)
	}
}

func TestOrderHandlerUpdateStatusConflict(t *testing.T) {
	facade := testhelpers.OrderFacadeStub{UpdateStatusFn: func(context.Context, uuid.UUID, model.OrderStatus) (*model.Order, error) {
		return nil, &domainErrors.InvalidStateError{Entity: "order", State: "COMPLETED", Reason: "terminal status"}
	}}
	body := []byte(`{"status":"PROCESSING"}`)
	resp := performRequest(t, http.MethodPatch, "/orders/"+uuid.NewString()+"/status", "/orders/:id/status", NewOrderHandler(facade).UpdateStatus, nil, body)
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", resp.Code)
	}
}

func TestOrderHandlerCancel(t *testing.T) {
	resp := performRequest(t, http.MethodPost, "/orders/"+uuid.NewString()+"/cancel", "/orders/:id/cancel", NewOrderHandler(testhelpers.OrderFacadeStub{}).Cancel, asCustomer(uuid.New()), nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var decoded dto.OrderResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if decoded.Status != string(model.OrderStatusCancelled) {
		t.Fatalf("expected cancelled status, got %q", decoded.Status)
	}
}

func TestPaymentHandlerCreate(t *testing.T) {
	body := []byte(`{"method":"QRIS"}`)
	resp := performRequest(t, http.MethodPost, "/orders/"+uuid.NewString()+"/payments", "/orders/:id/payments", NewPaymentHandler(testhelpers.PaymentFacadeStub{}).Create, asCustomer(uuid.New()), body)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}
	var decoded dto.PaymentResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if decoded.RedirectURL == "" {
		t.Fatalf("expected redirect url in response")
	}
}

func TestPaymentHandlerCreateGatewayDown(t *testing.T) {
	facade := testhelpers.PaymentFacadeStub{CreateFn: func(context.Context, uuid.UUID, uuid.UUID, model.Role, model.PaymentMethod) (*model.Payment, error) {
		return nil, &domainErrors.GatewayError{Gateway: "midtrans", Message: "status 500"}
	}}
	body := []byte(`{"method":"QRIS"}`)
	resp := performRequest(t, http.MethodPost, "/orders/"+uuid.NewString()+"/payments", "/orders/:id/payments", NewPaymentHandler(facade).Create, asCustomer(uuid.New()), body)
	if resp.Code != http.StatusBadGateway {
		t.Fatalf("expected status 502, got %d", resp.Code)
	}
}

func TestPaymentHandlerWebhook(t *testing.T) {
	var captured usecase.WebhookNotification
	facade := testhelpers.PaymentFacadeStub{WebhookFn: func(ctx context.Context, n usecase.WebhookNotification) (*model.Payment, error) {
		captured = n
		return &model.Payment{ID: uuid.New(), TransactionID: n.TransactionID, Status: model.PaymentStatusSettlement}, nil
	}}
	body := []byte(`{"order_id":"TRX-20250101-00001","transaction_status":"settlement","status_code":"200","gross_amount":"100000.00","signature_key":"abc"}`)
	resp := performRequest(t, http.MethodPost, "/payments/webhook", "/payments/webhook", NewPaymentHandler(facade).Webhook, nil, body)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if captured.TransactionID != "TRX-20250101-00001" {
		t.Fatalf("unexpected transaction id %q", captured.TransactionID)
	}
	if captured.RawPayload != string(body) {
		t.Fatalf("expected raw payload to be preserved")
	}
}

func TestPaymentHandlerWebhookFailures(t *testing.T) {
	tests := []struct {
		name   string
		facade testhelpers.PaymentFacadeStub
		body   []byte
		status int
	}{
		{name: "bad json", body: []byte("not json"), status: http.StatusUnprocessableEntity},
		{name: "missing fields", body: []byte(`{"transaction_status":"settlement"}`), status: http.StatusUnprocessableEntity},
		{name: "bad signature", body: []byte(`{"order_id":"TRX-1","transaction_status":"settlement","status_code":"200","gross_amount":"1.00","signature_key":"bad"}`), facade: testhelpers.PaymentFacadeStub{WebhookFn: func(context.Context, usecase.WebhookNotification) (*model.Payment, error) {
			return nil, domainErrors.NewValidation("invalid webhook signature")
		}}, status: http.StatusBadRequest},
		{name: "unknown transaction", body: []byte(`{"order_id":"TRX-1","transaction_status":"settlement","status_code":"200","gross_amount":"1.00","signature_key":"abc"}`), facade: testhelpers.PaymentFacadeStub{WebhookFn: func(context.Context, usecase.WebhookNotification) (*model.Payment, error) {
			return nil, domainErrors.ErrNotFound
		}}, status: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := performRequest(t, http.MethodPost, "/payments/webhook", "/payments/webhook", NewPaymentHandler(tt.facade).Webhook, nil, tt.body)
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
		})
	}
}

func TestShipmentHandlerBook(t *testing.T) {
	orderID := uuid.New()
	facade := testhelpers.ShipmentFacadeStub{BookFn: func(ctx context.Context, in usecase.BookCourierInput) (*model.Shipment, error) {
		if in.OrderID != orderID || in.CourierCompany != "jne" {
			t.Fatalf("unexpected booking input %+v", in)
		}
		return &model.Shipment{ID: uuid.New(), OrderID: in.OrderID, Courier: in.CourierCompany, Waybill: "JNE123456", Status: model.ShipmentStatusConfirmed}, nil
	}}
	body := []byte(`{"order_id":"` + orderID.String() + `","courier_company":"jne","courier_type":"reg","origin_name":"Gudang","origin_phone":"0812","origin_address":"Jl. Gudang 1","origin_postal_code":"12110"}`)
	resp := performRequest(t, http.MethodPost, "/shipments/book", "/shipments/book", NewShipmentHandler(facade).Book, nil, body)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}
	var decoded dto.ShipmentResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if decoded.Waybill != "JNE123456" {
		t.Fatalf("unexpected waybill %q", decoded.Waybill)
	}
}

func TestShipmentHandlerBookUnpaidOrder(t *testing.T) {
	facade := testhelpers.ShipmentFacadeStub{BookFn: func(context.Context, usecase.BookCourierInput) (*model.Shipment, error) {
		return nil, &domainErrors.InvalidStateError{Entity: "order", State: "PENDING_PAYMENT", Reason: "not paid"}
	}}
	body := []byte(`{"order_id":"` + uuid.NewString() + `","courier_company":"jne","courier_type":"reg"}`)
	resp := performRequest(t, http.MethodPost, "/shipments/book", "/shipments/book", NewShipmentHandler(facade).Book, nil, body)
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", resp.Code)
	}
}

func TestShipmentHandlerRates(t *testing.T) {
	body := []byte(`{"origin_postal_code":"12110","destination_postal_code":"40111","items":[{"name":"Voal","quantity":1,"weight":200}]}`)
	resp := performRequest(t, http.MethodPost, "/shipments/rates", "/shipments/rates", NewShipmentHandler(testhelpers.ShipmentFacadeStub{}).Rates, nil, body)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
}

func TestShipmentHandlerTrackWithoutBooking(t *testing.T) {
	facade := testhelpers.ShipmentFacadeStub{TrackFn: func(context.Context, uuid.UUID, uuid.UUID, model.Role) (*biteship.Tracking, error) {
		return nil, &domainErrors.InvalidStateError{Entity: "shipment", State: "PENDING", Reason: "no courier booking"}
	}}
	resp := performRequest(t, http.MethodGet, "/orders/"+uuid.NewString()+"/shipment/tracking", "/orders/:id/shipment/tracking", NewShipmentHandler(facade).TrackByOrder, asCustomer(uuid.New()), nil)
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", resp.Code)
	}
}

func TestReportHandlerSales(t *testing.T) {
	resp := performRequest(t, http.MethodGet, "/reports/sales?from=2025-01-01&to=2025-01-31", "/reports/sales", NewReportHandler(testhelpers.ReportFacadeStub{}).Sales, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var decoded map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if decoded["from"] != "2025-01-01" {
		t.Fatalf("unexpected from value %v", decoded["from"])
	}
}

func TestReportHandlerSalesBadDate(t *testing.T) {
	resp := performRequest(t, http.MethodGet, "/reports/sales?from=January", "/reports/sales", NewReportHandler(testhelpers.ReportFacadeStub{}).Sales, nil, nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestReportHandlerExportCSV(t *testing.T) {
	resp := performRequest(t, http.MethodGet, "/reports/sales/export", "/reports/sales/export", NewReportHandler(testhelpers.ReportFacadeStub{}).ExportCSV, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if got := resp.Header().Get("Content-Disposition"); got == "" {
		t.Fatalf("expected content disposition header")
	}
	if !bytes.Contains(resp.Body.Bytes(), []byte("Total Transactions")) {
		t.Fatalf("expected csv body, got %q", resp.Body.String())
	}
}
