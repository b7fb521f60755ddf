package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/laundry/internal/domain/errors"
	"github.com/polkiloo/laundry/internal/domain/model"
	"github.com/polkiloo/laundry/internal/pkg/optional"
	"github.com/polkiloo/laundry/internal/pkg/ordercode"
	"github.com/polkiloo/laundry/internal/server/http/dto"
)

// OrderHandler manages order-related endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Create handles POST /api/admin/orders.
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	draft := model.OrderDraft{
		OwnerPhone:     req.PhoneNumber,
		CollectionTime: req.CollectionTime,
		DeliveryDate:   req.DeliveryDate.Time,
		DeliveryTime:   req.DeliveryTime,
		Amount:         req.Amount,
		Weight:         req.Weight,
	}
	if req.CollectionDate != nil && !req.CollectionDate.IsZero() {
		collection := req.CollectionDate.Time
		draft.CollectionDate = &collection
	}

	order, err := h.facade.CreateOrder(c.Request.Context(), draft)
	if err != nil {
		// The phone comes from the request body, so an unknown owner is bad input here.
		if errors.Is(err, domainErrors.ErrOwnerNotFound) {
			writeErrorStatus(c, http.StatusBadRequest, domainErrors.KindOwnerNotFound, err)
			return
		}
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toOrderResponse(*order))
}

// List handles GET /api/admin/orders.
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.facade.Orders(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponses(orders))
}

// Get handles GET /api/admin/orders/:code.
func (h *OrderHandler) Get(c *gin.Context) {
	code, ok := orderCode(c)
	if !ok {
		return
	}

	details, err := h.facade.Order(c.Request.Context(), code)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OrderDetailsResponse{
		OrderResponse: toOrderResponse(details.Order),
		OwnerName:     details.OwnerName,
		OwnerPhone:    details.OwnerPhone,
	})
}

// Update handles PATCH /api/admin/orders/:code.
func (h *OrderHandler) Update(c *gin.Context) {
	code, ok := orderCode(c)
	if !ok {
		return
	}

	var req dto.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	patch := model.OrderPatch{
		CollectionDate: dateValue(req.CollectionDate),
		DeliveryDate:   dateValue(req.DeliveryDate),
		Amount:         req.Amount,
		Weight:         req.Weight,
		PaymentStatus:  req.PaymentStatus,
		WashWeight:     req.WashWeight,
	}

	order, err := h.facade.UpdateOrder(c.Request.Context(), code, patch)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// UpdatePaymentStatus handles PUT /api/admin/orders/:code/payment-status.
func (h *OrderHandler) UpdatePaymentStatus(c *gin.Context) {
	code, ok := orderCode(c)
	if !ok {
		return
	}

	var req dto.PaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	order, err := h.facade.UpdatePaymentStatus(c.Request.Context(), code, req.PaymentStatus)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// UpdateWashWeight handles PUT /api/admin/orders/:code/wash-weight.
func (h *OrderHandler) UpdateWashWeight(c *gin.Context) {
	code, ok := orderCode(c)
	if !ok {
		return
	}

	var req dto.WashWeightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	order, err := h.facade.UpdateWashWeight(c.Request.Context(), code, req.WashWeight)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// CustomerOrders handles GET /api/user/orders.
func (h *OrderHandler) CustomerOrders(c *gin.Context) {
	orders, err := h.facade.CustomerOrders(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponses(orders))
}

// Users handles GET /api/admin/users.
func (h *OrderHandler) Users(c *gin.Context) {
	users, err := h.facade.Users(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	resp := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, toUserResponse(u))
	}
	c.JSON(http.StatusOK, resp)
}

// orderCode reads the :code path parameter. A malformed code cannot match
// any order, so it is answered with order_not_found.
func orderCode(c *gin.Context) (string, bool) {
	code := c.Param("code")
	if !ordercode.Valid(code) {
		writeError(c, errors.Join(domainErrors.ErrOrderNotFound, errors.New("malformed order code "+code)))
		return "", false
	}
	return code, true
}

func dateValue(v optional.Value[dto.Date]) optional.Value[time.Time] {
	if !v.Set {
		return optional.None[time.Time]()
	}
	return optional.Of(v.Value.Time)
}
