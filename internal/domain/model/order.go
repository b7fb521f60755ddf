package model

import (
	"time"

	"github.com/polkiloo/laundry/internal/pkg/optional"
)

// Order describes a laundry order. Code and UserID never change after creation.
type Order struct {
	ID             int64
	Code           string
	UserID         int64
	CollectionDate *time.Time
	CollectionTime string
	DeliveryDate   time.Time
	DeliveryTime   string
	Amount         float64
	Weight         float64
	WashWeight     *float64
	PaymentStatus  bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// OrderDetails is an order enriched with its owner's display fields.
type OrderDetails struct {
	Order
	OwnerName  string
	OwnerPhone string
}

// OrderDraft is the input for creating an order on behalf of a customer.
type OrderDraft struct {
	OwnerPhone     string
	CollectionDate *time.Time
	CollectionTime string
	DeliveryDate   time.Time
	DeliveryTime   string
	Amount         float64
	Weight         float64
}

// OrderPatch is a sparse update. Only Set fields are considered.
type OrderPatch struct {
	CollectionDate optional.Value[time.Time]
	DeliveryDate   optional.Value[time.Time]
	Amount         optional.Value[float64]
	Weight         optional.Value[float64]
	PaymentStatus  optional.Value[bool]
	WashWeight     optional.Value[float64]
}

// Normalize drops fields that must not be applied. Schedule and measure fields
// are only applied with a non-zero value; payment status and wash weight are
// applied whenever present.
func (p OrderPatch) Normalize() OrderPatch {
	out := OrderPatch{
		PaymentStatus: p.PaymentStatus,
		WashWeight:    p.WashWeight,
	}
	if p.CollectionDate.Set && !p.CollectionDate.Value.IsZero() {
		out.CollectionDate = p.CollectionDate
	}
	if p.DeliveryDate.Set && !p.DeliveryDate.Value.IsZero() {
		out.DeliveryDate = p.DeliveryDate
	}
	if p.Amount.Set && p.Amount.Value != 0 {
		out.Amount = p.Amount
	}
	if p.Weight.Set && p.Weight.Value != 0 {
		out.Weight = p.Weight
	}
	return out
}

// IsEmpty reports whether the patch changes nothing.
func (p OrderPatch) IsEmpty() bool {
	return !p.CollectionDate.Set && !p.DeliveryDate.Set && !p.Amount.Set &&
		!p.Weight.Set && !p.PaymentStatus.Set && !p.WashWeight.Set
}

// Apply writes the patch's set fields onto o. Callers normalise first.
func (o *Order) Apply(p OrderPatch) {
	if v, ok := p.CollectionDate.Get(); ok {
		o.CollectionDate = &v
	}
	if v, ok := p.DeliveryDate.Get(); ok {
		o.DeliveryDate = v
	}
	if v, ok := p.Amount.Get(); ok {
		o.Amount = v
	}
	if v, ok := p.Weight.Get(); ok {
		o.Weight = v
	}
	if v, ok := p.PaymentStatus.Get(); ok {
		o.PaymentStatus = v
	}
	if v, ok := p.WashWeight.Get(); ok {
		o.WashWeight = &v
	}
}
