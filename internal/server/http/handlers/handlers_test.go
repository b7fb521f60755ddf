package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/laundry/internal/domain/errors"
	"github.com/polkiloo/laundry/internal/domain/model"
	"github.com/polkiloo/laundry/internal/pkg/optional"
	"github.com/polkiloo/laundry/internal/server/http/dto"
	"github.com/polkiloo/laundry/internal/server/http/middleware"
	testhelpers "github.com/polkiloo/laundry/internal/test"
)

var jsonHeaders = map[string]string{"Content-Type": "application/json"}

func init() {
	gin.SetMode(gin.TestMode)
}

func performRequest(t *testing.T, method, path string, handler gin.HandlerFunc, setup func(*gin.Context), body []byte, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	return performRouted(t, method, path, path, handler, setup, body, headers)
}

func performRouted(t *testing.T, method, route, target string, handler gin.HandlerFunc, setup func(*gin.Context), body []byte, headers map[string]string) *httptest.ResponseRecorder {
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
	req := httptest.NewRequest(method, target, reader)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, resp *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var body dto.ErrorResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode error body %q: %v", resp.Body.String(), err)
	}
	return body
}

func asUser(id int64) func(*gin.Context) {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDContextKey, id)
	}
}

func TestCurrentUserID(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if got := CurrentUserID(c); got != 0 {
		t.Fatalf("expected 0 when not set, got %d", got)
	}

	c.Set(middleware.UserIDContextKey, int64(42))
	if got := CurrentUserID(c); got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}
}

func TestWriteErrorMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
		kind   string
	}{
		{fmt.Errorf("%w: amount", domainErrors.ErrValidation), http.StatusBadRequest, "validation_error"},
		{domainErrors.ErrOrderNotFound, http.StatusNotFound, "order_not_found"},
		{domainErrors.ErrOwnerNotFound, http.StatusNotFound, "owner_not_found"},
		{fmt.Errorf("%w: %w", domainErrors.ErrStoreUnavailable, errors.New("dial")), http.StatusServiceUnavailable, "store_unavailable"},
		{domainErrors.ErrAllocationExhausted, http.StatusServiceUnavailable, "allocation_exhausted"},
		{domainErrors.ErrAlreadyExists, http.StatusConflict, "already_exists"},
		{errors.New("boom"), http.StatusInternalServerError, "internal"},
	}

	for _, tt := range tests {
		resp := performRequest(t, http.MethodGet, "/", func(c *gin.Context) { writeError(c, tt.err) }, nil, nil, nil)
		if resp.Code != tt.status {
			t.Fatalf("%v: expected status %d, got %d", tt.err, tt.status, resp.Code)
		}
		body := decodeError(t, resp)
		if body.Kind != tt.kind {
			t.Fatalf("%v: expected kind %q, got %q", tt.err, tt.kind, body.Kind)
		}
		if tt.status == http.StatusInternalServerError && body.Message != "internal error" {
			t.Fatalf("internal errors must not leak details, got %q", body.Message)
		}
	}
}

func TestAuthHandlerRegister(t *testing.T) {
	body, _ := json.Marshal(dto.RegisterRequest{Name: "Ann", PhoneNumber: "555-0100", Password: "pass"})
	resp := performRequest(t, http.MethodPost, "/register", NewAuthHandler(testhelpers.AuthFacadeStub{}).Register, nil, body, jsonHeaders)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if resp.Header().Get("Authorization") == "" {
		t.Fatalf("expected auth header to be set")
	}
	var token dto.TokenResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &token); err != nil || token.Token != "token" {
		t.Fatalf("unexpected token body %q err=%v", resp.Body.String(), err)
	}
}

func TestAuthHandlerRegisterPassesCredentials(t *testing.T) {
	name := testhelpers.RandomName(3, 10)
	phone := testhelpers.RandomPhone()
	password := testhelpers.RandomName(16, 32)
	body, _ := json.Marshal(dto.RegisterRequest{Name: name, PhoneNumber: phone, Password: password})
	handler := NewAuthHandler(testhelpers.AuthFacadeStub{RegisterFn: func(ctx context.Context, gotName, gotPhone, gotPassword string) (string, error) {
		if gotName != name || gotPhone != phone || gotPassword != password {
			t.Fatalf("unexpected credentials passed to facade: %q %q %q", gotName, gotPhone, gotPassword)
		}
		return "session-token", nil
	}})
	resp := performRequest(t, http.MethodPost, "/register", handler.Register, nil, body, jsonHeaders)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if got := resp.Header().Get("Authorization"); got != "Bearer session-token" {
		t.Fatalf("unexpected authorization header %q", got)
	}
	result := resp.Result()
	t.Cleanup(func() {
		_ = result.Body.Close()
	})
	foundCookie := false
	for _, cookie := range result.Cookies() {
		if cookie.Name == "laundry_token" {
			if cookie.Value != "session-token" {
				t.Fatalf("unexpected token stored in cookie: %q", cookie.Value)
			}
			foundCookie = true
		}
	}
	if !foundCookie {
		t.Fatal("expected auth cookie named laundry_token")
	}
}

func TestAuthHandlerRegisterFailures(t *testing.T) {
	body := []byte(`{"name":"a","phoneNumber":"1","password":"b"}`)
	tests := []struct {
		name   string
		facade testhelpers.AuthFacadeStub
		body   []byte
		status int
	}{
		{name: "bad json", body: []byte("not json"), status: http.StatusBadRequest},
		{name: "invalid credentials", body: []byte(`{}`), facade: testhelpers.AuthFacadeStub{RegisterFn: func(context.Context, string, string, string) (string, error) {
			return "", domainErrors.ErrInvalidCredentials
		}}, status: http.StatusBadRequest},
		{name: "already exists", body: body, facade: testhelpers.AuthFacadeStub{RegisterFn: func(context.Context, string, string, string) (string, error) {
			return "", domainErrors.ErrAlreadyExists
		}}, status: http.StatusConflict},
		{name: "store down", body: body, facade: testhelpers.AuthFacadeStub{RegisterFn: func(context.Context, string, string, string) (string, error) {
			return "", domainErrors.ErrStoreUnavailable
		}}, status: http.StatusServiceUnavailable},
		{name: "internal", body: body, facade: testhelpers.AuthFacadeStub{RegisterFn: func(context.Context, string, string, string) (string, error) {
			return "", errors.New("boom")
		}}, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := performRequest(t, http.MethodPost, "/register", NewAuthHandler(tt.facade).Register, nil, tt.body, jsonHeaders)
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
		})
	}
}

func TestAuthHandlerLogin(t *testing.T) {
	body, _ := json.Marshal(dto.LoginRequest{PhoneNumber: "555-0100", Password: "pass"})
	resp := performRequest(t, http.MethodPost, "/login", NewAuthHandler(testhelpers.AuthFacadeStub{}).Login, nil, body, jsonHeaders)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
}

func TestAuthHandlerLoginFailures(t *testing.T) {
	body := []byte(`{"phoneNumber":"a","password":"b"}`)
	tests := []struct {
		name   string
		facade testhelpers.AuthFacadeStub
		body   []byte
		status int
	}{
		{name: "bad json", body: []byte("not json"), status: http.StatusBadRequest},
		{name: "invalid", body: body, facade: testhelpers.AuthFacadeStub{AuthenticateFn: func(context.Context, string, string) (string, error) {
			return "", domainErrors.ErrInvalidCredentials
		}}, status: http.StatusUnauthorized},
		{name: "internal", body: body, facade: testhelpers.AuthFacadeStub{AuthenticateFn: func(context.Context, string, string) (string, error) {
			return "", errors.New("boom")
		}}, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := performRequest(t, http.MethodPost, "/login", NewAuthHandler(tt.facade).Login, nil, tt.body, jsonHeaders)
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
		})
	}
}

func TestAuthHandlerProfile(t *testing.T) {
	var gotID int64
	handler := NewAuthHandler(testhelpers.AuthFacadeStub{ProfileFn: func(_ context.Context, id int64) (*model.User, error) {
		gotID = id
		return &model.User{ID: id, Name: "Ann", PhoneNumber: "555-0100", PasswordHash: "secret-hash", Role: model.RoleCustomer}, nil
	}})
	resp := performRequest(t, http.MethodGet, "/profile", handler.Profile, asUser(7), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if gotID != 7 {
		t.Fatalf("expected profile of caller, got %d", gotID)
	}
	if bytes.Contains(resp.Body.Bytes(), []byte("secret-hash")) {
		t.Fatalf("password hash leaked: %s", resp.Body.String())
	}

	handler = NewAuthHandler(testhelpers.AuthFacadeStub{ProfileFn: func(context.Context, int64) (*model.User, error) {
		return nil, domainErrors.ErrNotFound
	}})
	resp = performRequest(t, http.MethodGet, "/profile", handler.Profile, asUser(7), nil, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}

func TestOrderHandlerCreate(t *testing.T) {
	var got model.OrderDraft
	facade := testhelpers.OrderFacadeStub{CreateFn: func(_ context.Context, draft model.OrderDraft) (*model.Order, error) {
		got = draft
		order := testhelpers.SampleOrder("ABC123")
		return &order, nil
	}}
	body := []byte(`{"phoneNumber":"555-0100","deliveryDate":"2024-05-01","amount":40,"weight":8}`)
	resp := performRequest(t, http.MethodPost, "/orders", NewOrderHandler(facade).Create, nil, body, jsonHeaders)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}
	if got.OwnerPhone != "555-0100" || got.Amount != 40 || got.Weight != 8 || got.CollectionDate != nil {
		t.Fatalf("unexpected draft %+v", got)
	}
	if !got.DeliveryDate.Equal(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected delivery date %v", got.DeliveryDate)
	}

	var decoded map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if decoded["code"] != "ABC123" || decoded["paymentStatus"] != false || decoded["wash_weight"] != nil {
		t.Fatalf("unexpected response %v", decoded)
	}
	if decoded["deliveryDate"] != "2024-05-01" {
		t.Fatalf("unexpected delivery date %v", decoded["deliveryDate"])
	}
}

func TestOrderHandlerCreateWithCollection(t *testing.T) {
	var got model.OrderDraft
	facade := testhelpers.OrderFacadeStub{CreateFn: func(_ context.Context, draft model.OrderDraft) (*model.Order, error) {
		got = draft
		order := testhelpers.SampleOrder("ABC123")
		return &order, nil
	}}
	body := []byte(`{"phoneNumber":"555-0100","collectionDate":"2024-04-29T09:00:00Z","collectionTime":"09:00-11:00","deliveryDate":"2024-05-01","deliveryTime":"18:00","amount":40,"weight":8}`)
	resp := performRequest(t, http.MethodPost, "/orders", NewOrderHandler(facade).Create, nil, body, jsonHeaders)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}
	if got.CollectionDate == nil || got.CollectionDate.Day() != 29 || got.CollectionTime != "09:00-11:00" || got.DeliveryTime != "18:00" {
		t.Fatalf("unexpected draft %+v", got)
	}
}

func TestOrderHandlerCreateFailures(t *testing.T) {
	body := []byte(`{"phoneNumber":"555-0100","deliveryDate":"2024-05-01","amount":40,"weight":8}`)
	failing := func(err error) testhelpers.OrderFacadeStub {
		return testhelpers.OrderFacadeStub{CreateFn: func(context.Context, model.OrderDraft) (*model.Order, error) {
			return nil, err
		}}
	}
	tests := []struct {
		name   string
		facade testhelpers.OrderFacadeStub
		body   []byte
		status int
		kind   string
	}{
		{name: "bad json", body: []byte("oops"), status: http.StatusBadRequest, kind: "validation_error"},
		{name: "bad date", body: []byte(`{"deliveryDate":"01/05/2024"}`), status: http.StatusBadRequest, kind: "validation_error"},
		{name: "validation", body: body, facade: failing(domainErrors.ErrValidation), status: http.StatusBadRequest, kind: "validation_error"},
		{name: "unknown owner", body: body, facade: failing(domainErrors.ErrOwnerNotFound), status: http.StatusBadRequest, kind: "owner_not_found"},
		{name: "exhausted", body: body, facade: failing(domainErrors.ErrAllocationExhausted), status: http.StatusServiceUnavailable, kind: "allocation_exhausted"},
		{name: "store down", body: body, facade: failing(domainErrors.ErrStoreUnavailable), status: http.StatusServiceUnavailable, kind: "store_unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := performRequest(t, http.MethodPost, "/orders", NewOrderHandler(tt.facade).Create, nil, tt.body, jsonHeaders)
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
			if kind := decodeError(t, resp).Kind; kind != tt.kind {
				t.Fatalf("expected kind %q, got %q", tt.kind, kind)
			}
		})
	}
}

func TestOrderHandlerList(t *testing.T) {
	orders := []model.Order{testhelpers.SampleOrder("AAA111"), testhelpers.SampleOrder("BBB222")}
	facade := testhelpers.OrderFacadeStub{OrdersFn: func(context.Context) ([]model.Order, error) {
		return orders, nil
	}}
	resp := performRequest(t, http.MethodGet, "/orders", NewOrderHandler(facade).List, nil, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var decoded []dto.OrderResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(decoded) != 2 || decoded[0].Code != "AAA111" {
		t.Fatalf("unexpected orders %+v", decoded)
	}

	facade.OrdersFn = func(context.Context) ([]model.Order, error) { return nil, domainErrors.ErrStoreUnavailable }
	resp = performRequest(t, http.MethodGet, "/orders", NewOrderHandler(facade).List, nil, nil, nil)
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", resp.Code)
	}
}

func TestOrderHandlerGet(t *testing.T) {
	handler := NewOrderHandler(testhelpers.OrderFacadeStub{})
	resp := performRouted(t, http.MethodGet, "/orders/:code", "/orders/ABC123", handler.Get, nil, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var decoded dto.OrderDetailsResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if decoded.Code != "ABC123" || decoded.OwnerName != "Ann" || decoded.OwnerPhone != "555-0100" {
		t.Fatalf("unexpected details %+v", decoded)
	}

	resp = performRouted(t, http.MethodGet, "/orders/:code", "/orders/abc", handler.Get, nil, nil, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 for malformed code, got %d", resp.Code)
	}

	for _, err := range []error{domainErrors.ErrOrderNotFound, domainErrors.ErrOwnerNotFound} {
		handler = NewOrderHandler(testhelpers.OrderFacadeStub{OrderFn: func(context.Context, string) (*model.OrderDetails, error) {
			return nil, err
		}})
		resp = performRouted(t, http.MethodGet, "/orders/:code", "/orders/ABC123", handler.Get, nil, nil, nil)
		if resp.Code != http.StatusNotFound {
			t.Fatalf("%v: expected status 404, got %d", err, resp.Code)
		}
	}
}

func TestOrderHandlerUpdate(t *testing.T) {
	var got model.OrderPatch
	facade := testhelpers.OrderFacadeStub{UpdateFn: func(_ context.Context, code string, patch model.OrderPatch) (*model.Order, error) {
		got = patch
		order := testhelpers.SampleOrder(code)
		return &order, nil
	}}
	body := []byte(`{"weight":12,"paymentStatus":false,"deliveryDate":""}`)
	resp := performRouted(t, http.MethodPatch, "/orders/:code", "/orders/ABC123", NewOrderHandler(facade).Update, nil, body, jsonHeaders)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if !got.Weight.Set || got.Weight.Value != 12 {
		t.Fatalf("weight not passed: %+v", got.Weight)
	}
	if !got.PaymentStatus.Set || got.PaymentStatus.Value {
		t.Fatalf("explicit false payment status not passed: %+v", got.PaymentStatus)
	}
	if got.Amount.Set || got.WashWeight.Set || got.CollectionDate.Set {
		t.Fatalf("absent fields must stay unset: %+v", got)
	}
	if !got.DeliveryDate.Set || !got.DeliveryDate.Value.IsZero() {
		t.Fatalf("empty delivery date should arrive as a zero value: %+v", got.DeliveryDate)
	}
}

func TestOrderHandlerUpdateFailures(t *testing.T) {
	tests := []struct {
		name   string
		target string
		body   []byte
		err    error
		status int
	}{
		{name: "bad json", target: "/orders/ABC123", body: []byte("{"), status: http.StatusBadRequest},
		{name: "bad code", target: "/orders/TOOLONG1", body: []byte(`{}`), status: http.StatusNotFound},
		{name: "not found", target: "/orders/ABC123", body: []byte(`{"weight":1}`), err: domainErrors.ErrOrderNotFound, status: http.StatusNotFound},
		{name: "negative", target: "/orders/ABC123", body: []byte(`{"amount":-1}`), err: domainErrors.ErrValidation, status: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			facade := testhelpers.OrderFacadeStub{UpdateFn: func(context.Context, string, model.OrderPatch) (*model.Order, error) {
				if tt.err == nil {
					t.Fatal("facade must not be reached")
				}
				return nil, tt.err
			}}
			resp := performRouted(t, http.MethodPatch, "/orders/:code", tt.target, NewOrderHandler(facade).Update, nil, tt.body, jsonHeaders)
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
		})
	}
}

func TestOrderHandlerUpdatePaymentStatus(t *testing.T) {
	var got optional.Value[bool]
	facade := testhelpers.OrderFacadeStub{PaymentFn: func(_ context.Context, code string, status optional.Value[bool]) (*model.Order, error) {
		got = status
		if !status.Set {
			return nil, domainErrors.ErrValidation
		}
		order := testhelpers.SampleOrder(code)
		order.PaymentStatus = status.Value
		return &order, nil
	}}
	handler := NewOrderHandler(facade)

	resp := performRouted(t, http.MethodPut, "/orders/:code/payment-status", "/orders/ABC123/payment-status", handler.UpdatePaymentStatus, nil, []byte(`{"paymentStatus":true}`), jsonHeaders)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if !got.Set || !got.Value {
		t.Fatalf("unexpected status passed %+v", got)
	}

	resp = performRouted(t, http.MethodPut, "/orders/:code/payment-status", "/orders/ABC123/payment-status", handler.UpdatePaymentStatus, nil, []byte(`{}`), jsonHeaders)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for missing status, got %d", resp.Code)
	}

	resp = performRouted(t, http.MethodPut, "/orders/:code/payment-status", "/orders/ABC123/payment-status", handler.UpdatePaymentStatus, nil, []byte(`{"paymentStatus":"yes"}`), jsonHeaders)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for wrong type, got %d", resp.Code)
	}
}

func TestOrderHandlerUpdateWashWeight(t *testing.T) {
	var got optional.Value[float64]
	facade := testhelpers.OrderFacadeStub{WashWeightFn: func(_ context.Context, code string, weight optional.Value[float64]) (*model.Order, error) {
		got = weight
		order := testhelpers.SampleOrder(code)
		order.WashWeight = &weight.Value
		return &order, nil
	}}
	handler := NewOrderHandler(facade)

	resp := performRouted(t, http.MethodPut, "/orders/:code/wash-weight", "/orders/ABC123/wash-weight", handler.UpdateWashWeight, nil, []byte(`{"wash_weight":0}`), jsonHeaders)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if !got.Set || got.Value != 0 {
		t.Fatalf("explicit zero wash weight must be passed, got %+v", got)
	}
	var decoded dto.OrderResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if decoded.WashWeight == nil || *decoded.WashWeight != 0 {
		t.Fatalf("unexpected wash weight %v", decoded.WashWeight)
	}

	facade.WashWeightFn = func(context.Context, string, optional.Value[float64]) (*model.Order, error) {
		return nil, domainErrors.ErrOrderNotFound
	}
	resp = performRouted(t, http.MethodPut, "/orders/:code/wash-weight", "/orders/ABC123/wash-weight", NewOrderHandler(facade).UpdateWashWeight, nil, []byte(`{"wash_weight":3}`), jsonHeaders)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}

func TestOrderHandlerCustomerOrders(t *testing.T) {
	var gotID int64
	facade := testhelpers.OrderFacadeStub{CustomerOrderFn: func(_ context.Context, id int64) ([]model.Order, error) {
		gotID = id
		return []model.Order{}, nil
	}}
	resp := performRequest(t, http.MethodGet, "/orders", NewOrderHandler(facade).CustomerOrders, asUser(5), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for empty list, got %d", resp.Code)
	}
	if gotID != 5 {
		t.Fatalf("expected orders of caller, got %d", gotID)
	}
	if body := resp.Body.String(); body != "[]" {
		t.Fatalf("expected empty JSON array, got %q", body)
	}
}

func TestOrderHandlerUsers(t *testing.T) {
	resp := performRequest(t, http.MethodGet, "/users", NewOrderHandler(testhelpers.OrderFacadeStub{}).Users, nil, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if bytes.Contains(resp.Body.Bytes(), []byte("secret-hash")) {
		t.Fatalf("password hash leaked: %s", resp.Body.String())
	}
	var decoded []dto.UserResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil || len(decoded) != 1 {
		t.Fatalf("unexpected users %s err=%v", resp.Body.String(), err)
	}

	facade := testhelpers.OrderFacadeStub{UsersFn: func(context.Context) ([]model.User, error) {
		return nil, domainErrors.ErrStoreUnavailable
	}}
	resp = performRequest(t, http.MethodGet, "/users", NewOrderHandler(facade).Users, nil, nil, nil)
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", resp.Code)
	}
}

func TestHealthHandler(t *testing.T) {
	resp := performRequest(t, http.MethodGet, "/health", NewHealthHandler(testhelpers.HealthFacadeStub{}).Check, nil, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	facade := testhelpers.HealthFacadeStub{HealthErr: fmt.Errorf("%w: ping", domainErrors.ErrStoreUnavailable)}
	resp = performRequest(t, http.MethodGet, "/health", NewHealthHandler(facade).Check, nil, nil, nil)
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", resp.Code)
	}
}
