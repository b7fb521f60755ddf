package usecase

import (
	"fmt"
	"strings"

	domainErrors "github.com/polkiloo/laundry/internal/domain/errors"
	"github.com/polkiloo/laundry/internal/domain/model"
)

// ValidateDraft checks the fields required to create an order.
func ValidateDraft(d model.OrderDraft) error {
	switch {
	case strings.TrimSpace(d.OwnerPhone) == "":
		return fmt.Errorf("%w: owner phone number is required", domainErrors.ErrValidation)
	case d.DeliveryDate.IsZero():
		return fmt.Errorf("%w: delivery date is required", domainErrors.ErrValidation)
	case d.Amount <= 0:
		return fmt.Errorf("%w: amount must be positive", domainErrors.ErrValidation)
	case d.Weight <= 0:
		return fmt.Errorf("%w: weight must be positive", domainErrors.ErrValidation)
	case d.CollectionDate != nil && d.CollectionDate.IsZero():
		return fmt.Errorf("%w: collection date is invalid", domainErrors.ErrValidation)
	}
	return nil
}

// ValidatePatch rejects negative measures. Zero values are not errors; they
// are dropped by normalisation where the field requires a non-zero value.
func ValidatePatch(p model.OrderPatch) error {
	if p.Amount.Set && p.Amount.Value < 0 {
		return fmt.Errorf("%w: amount must not be negative", domainErrors.ErrValidation)
	}
	if p.Weight.Set && p.Weight.Value < 0 {
		return fmt.Errorf("%w: weight must not be negative", domainErrors.ErrValidation)
	}
	if p.WashWeight.Set && p.WashWeight.Value < 0 {
		return fmt.Errorf("%w: wash weight must not be negative", domainErrors.ErrValidation)
	}
	return nil
}
