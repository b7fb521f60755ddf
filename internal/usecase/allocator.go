package usecase

import (
	"context"
	"fmt"

	domainErrors "github.com/polkiloo/laundry/internal/domain/errors"
	"github.com/polkiloo/laundry/internal/domain/repository"
)

// CodeGenerator produces candidate order codes.
type CodeGenerator func() (string, error)

// CodeAllocator finds order codes that are not yet taken. It never writes:
// the unique constraint on insert stays the authoritative guard.
type CodeAllocator struct {
	orders      repository.OrderRepository
	generate    CodeGenerator
	maxAttempts int
}

// NewCodeAllocator constructs CodeAllocator. maxAttempts below one means one attempt.
func NewCodeAllocator(orders repository.OrderRepository, generate CodeGenerator, maxAttempts int) *CodeAllocator {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &CodeAllocator{orders: orders, generate: generate, maxAttempts: maxAttempts}
}

// Allocate returns a code that no stored order uses at the time of the check.
func (a *CodeAllocator) Allocate(ctx context.Context) (string, error) {
	for i := 0; i < a.maxAttempts; i++ {
		code, err := a.generate()
		if err != nil {
			return "", fmt.Errorf("generate order code: %w", err)
		}

		exists, err := a.orders.CodeExists(ctx, code)
		if err != nil {
			return "", fmt.Errorf("%w: check order code: %w", domainErrors.ErrStoreUnavailable, err)
		}
		if !exists {
			return code, nil
		}
	}
	return "", fmt.Errorf("%w: %d candidates taken", domainErrors.ErrAllocationExhausted, a.maxAttempts)
}
