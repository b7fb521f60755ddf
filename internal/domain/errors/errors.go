package errors

import "errors"

var (
	ErrAlreadyExists       = errors.New("already exists")
	ErrNotFound            = errors.New("not found")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrValidation          = errors.New("validation error")
	ErrOwnerNotFound       = errors.New("owner not found")
	ErrOrderNotFound       = errors.New("order not found")
	ErrStoreUnavailable    = errors.New("store unavailable")
	ErrAllocationExhausted = errors.New("order code allocation exhausted")
)

// Kind names a failure class in a form clients can match on.
type Kind string

const (
	KindValidation          Kind = "validation_error"
	KindOwnerNotFound       Kind = "owner_not_found"
	KindOrderNotFound       Kind = "order_not_found"
	KindStoreUnavailable    Kind = "store_unavailable"
	KindAllocationExhausted Kind = "allocation_exhausted"
	KindInvalidCredentials  Kind = "invalid_credentials"
	KindAlreadyExists       Kind = "already_exists"
	KindNotFound            Kind = "not_found"
	KindInternal            Kind = "internal"
)

var kinds = []struct {
	err  error
	kind Kind
}{
	{ErrValidation, KindValidation},
	{ErrOwnerNotFound, KindOwnerNotFound},
	{ErrOrderNotFound, KindOrderNotFound},
	{ErrAllocationExhausted, KindAllocationExhausted},
	{ErrStoreUnavailable, KindStoreUnavailable},
	{ErrInvalidCredentials, KindInvalidCredentials},
	{ErrAlreadyExists, KindAlreadyExists},
	{ErrNotFound, KindNotFound},
}

// KindOf reports the first known failure class found in err's chain.
func KindOf(err error) Kind {
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return KindInternal
}
