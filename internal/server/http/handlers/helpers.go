package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/laundry/internal/domain/errors"
	"github.com/polkiloo/laundry/internal/domain/model"
	"github.com/polkiloo/laundry/internal/server/http/dto"
	"github.com/polkiloo/laundry/internal/server/http/middleware"
)

// CurrentUserID extracts authenticated user identifier from context.
func CurrentUserID(c *gin.Context) int64 {
	val, ok := c.Get(middleware.UserIDContextKey)
	if !ok {
		return 0
	}
	id, _ := val.(int64)
	return id
}

var statusByKind = map[domainErrors.Kind]int{
	domainErrors.KindValidation:          http.StatusBadRequest,
	domainErrors.KindOwnerNotFound:       http.StatusNotFound,
	domainErrors.KindOrderNotFound:       http.StatusNotFound,
	domainErrors.KindNotFound:            http.StatusNotFound,
	domainErrors.KindStoreUnavailable:    http.StatusServiceUnavailable,
	domainErrors.KindAllocationExhausted: http.StatusServiceUnavailable,
	domainErrors.KindInvalidCredentials:  http.StatusBadRequest,
	domainErrors.KindAlreadyExists:       http.StatusConflict,
}

// writeError renders err as {"kind","message"} with the status its kind maps to.
func writeError(c *gin.Context, err error) {
	kind := domainErrors.KindOf(err)
	status, ok := statusByKind[kind]
	if !ok {
		status = http.StatusInternalServerError
	}
	writeErrorStatus(c, status, kind, err)
}

func writeErrorStatus(c *gin.Context, status int, kind domainErrors.Kind, err error) {
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "internal error"
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, dto.ErrorResponse{Kind: string(kind), Message: message})
}

func badRequest(c *gin.Context, err error) {
	writeErrorStatus(c, http.StatusBadRequest, domainErrors.KindValidation, errors.Join(domainErrors.ErrValidation, err))
}

func toUserResponse(u model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:          u.ID,
		Name:        u.Name,
		PhoneNumber: u.PhoneNumber,
		Role:        string(u.Role),
		CreatedAt:   u.CreatedAt,
	}
}

func toOrderResponse(o model.Order) dto.OrderResponse {
	resp := dto.OrderResponse{
		Code:           o.Code,
		UserID:         o.UserID,
		CollectionTime: o.CollectionTime,
		DeliveryDate:   dto.Date{Time: o.DeliveryDate},
		DeliveryTime:   o.DeliveryTime,
		Amount:         o.Amount,
		Weight:         o.Weight,
		WashWeight:     o.WashWeight,
		PaymentStatus:  o.PaymentStatus,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
	if o.CollectionDate != nil {
		resp.CollectionDate = &dto.Date{Time: *o.CollectionDate}
	}
	return resp
}

func toOrderResponses(orders []model.Order) []dto.OrderResponse {
	resp := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		resp = append(resp, toOrderResponse(o))
	}
	return resp
}
