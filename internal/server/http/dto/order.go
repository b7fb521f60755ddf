package dto

import (
	"time"

	"github.com/polkiloo/laundry/internal/pkg/optional"
)

// CreateOrderRequest describes an order placed for a customer by phone.
type CreateOrderRequest struct {
	PhoneNumber    string  `json:"phoneNumber"`
	CollectionDate *Date   `json:"collectionDate"`
	CollectionTime string  `json:"collectionTime"`
	DeliveryDate   Date    `json:"deliveryDate"`
	DeliveryTime   string  `json:"deliveryTime"`
	Amount         float64 `json:"amount"`
	Weight         float64 `json:"weight"`
}

// UpdateOrderRequest is a sparse patch. Absent keys leave fields untouched.
type UpdateOrderRequest struct {
	CollectionDate optional.Value[Date]    `json:"collectionDate"`
	DeliveryDate   optional.Value[Date]    `json:"deliveryDate"`
	Amount         optional.Value[float64] `json:"amount"`
	Weight         optional.Value[float64] `json:"weight"`
	PaymentStatus  optional.Value[bool]    `json:"paymentStatus"`
	WashWeight     optional.Value[float64] `json:"wash_weight"`
}

// PaymentStatusRequest sets the payment flag.
type PaymentStatusRequest struct {
	PaymentStatus optional.Value[bool] `json:"paymentStatus"`
}

// WashWeightRequest records the measured weight.
type WashWeightRequest struct {
	WashWeight optional.Value[float64] `json:"wash_weight"`
}

// OrderResponse describes an order as exposed to clients.
type OrderResponse struct {
	Code           string    `json:"code"`
	UserID         int64     `json:"userId"`
	CollectionDate *Date     `json:"collectionDate"`
	CollectionTime string    `json:"collectionTime,omitempty"`
	DeliveryDate   Date      `json:"deliveryDate"`
	DeliveryTime   string    `json:"deliveryTime,omitempty"`
	Amount         float64   `json:"amount"`
	Weight         float64   `json:"weight"`
	WashWeight     *float64  `json:"wash_weight"`
	PaymentStatus  bool      `json:"paymentStatus"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// OrderDetailsResponse adds the owner's display fields.
type OrderDetailsResponse struct {
	OrderResponse
	OwnerName  string `json:"ownerName"`
	OwnerPhone string `json:"ownerPhone"`
}
