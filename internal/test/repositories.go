package test

import (
	"context"
	"sort"
	"sync"
	"time"

	domainErrors "github.com/polkiloo/laundry/internal/domain/errors"
	"github.com/polkiloo/laundry/internal/domain/model"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	Users map[string]*model.User
	ByID  map[int64]*model.User
	Next  int64
	Err   error

	mu sync.Mutex
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users: make(map[string]*model.User),
		ByID:  make(map[int64]*model.User),
		Next:  1,
	}
}

// Create registers user unless the phone is taken or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, user model.NewUser) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.User)
	}
	if _, exists := s.Users[user.PhoneNumber]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	created := &model.User{
		ID:           s.Next,
		Name:         user.Name,
		PhoneNumber:  user.PhoneNumber,
		PasswordHash: user.PasswordHash,
		Role:         user.Role,
		CreatedAt:    time.Now(),
	}
	s.Next++
	s.Users[user.PhoneNumber] = created
	s.ByID[created.ID] = created
	return created, nil
}

// GetByPhone fetches user by phone number or returns not found.
func (s *UserRepositoryStub) GetByPhone(ctx context.Context, phone string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[phone]; ok {
		cp := *user
		return &cp, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		cp := *user
		return &cp, nil
	}
	return nil, domainErrors.ErrNotFound
}

// List returns users ordered by identifier.
func (s *UserRepositoryStub) List(ctx context.Context) ([]model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	users := make([]model.User, 0, len(s.ByID))
	for _, u := range s.ByID {
		users = append(users, *u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

// SetRole changes the stored role.
func (s *UserRepositoryStub) SetRole(ctx context.Context, id int64, role model.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	user, ok := s.ByID[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	user.Role = role
	return nil
}

// Delete removes a user, leaving any orders that reference it dangling.
func (s *UserRepositoryStub) Delete(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user, ok := s.ByID[id]; ok {
		delete(s.Users, user.PhoneNumber)
		delete(s.ByID, id)
	}
}

// OrderRepositoryStub keeps orders in memory and enforces code uniqueness
// the way the database constraint does. Fn fields override behaviour.
type OrderRepositoryStub struct {
	CreateFn     func(context.Context, *model.Order) error
	CodeExistsFn func(context.Context, string) (bool, error)
	GetByCodeFn  func(context.Context, string) (*model.Order, error)
	ListAllFn    func(context.Context) ([]model.Order, error)
	ListByUserFn func(context.Context, int64) ([]model.Order, error)
	UpdateFn     func(context.Context, string, model.OrderPatch) (*model.Order, error)

	Orders  map[string]*model.Order
	Updates []model.OrderPatch

	mu     sync.Mutex
	nextID int64
}

// NewOrderRepositoryStub constructs an empty in-memory order store.
func NewOrderRepositoryStub() *OrderRepositoryStub {
	return &OrderRepositoryStub{Orders: make(map[string]*model.Order)}
}

// Create inserts order or reports ErrAlreadyExists for a taken code.
func (s *OrderRepositoryStub) Create(ctx context.Context, order *model.Order) error {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, order)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Orders == nil {
		s.Orders = make(map[string]*model.Order)
	}
	if _, exists := s.Orders[order.Code]; exists {
		return domainErrors.ErrAlreadyExists
	}
	s.nextID++
	now := time.Now().Add(time.Duration(s.nextID) * time.Millisecond)
	order.ID = s.nextID
	order.PaymentStatus = false
	order.WashWeight = nil
	order.CreatedAt = now
	order.UpdatedAt = now
	stored := *order
	s.Orders[order.Code] = &stored
	return nil
}

// CodeExists reports whether code is taken.
func (s *OrderRepositoryStub) CodeExists(ctx context.Context, code string) (bool, error) {
	if s.CodeExistsFn != nil {
		return s.CodeExistsFn(ctx, code)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, exists := s.Orders[code]
	return exists, nil
}

// GetByCode returns a copy of the stored order.
func (s *OrderRepositoryStub) GetByCode(ctx context.Context, code string) (*model.Order, error) {
	if s.GetByCodeFn != nil {
		return s.GetByCodeFn(ctx, code)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.Orders[code]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	cp := *order
	return &cp, nil
}

// ListAll returns every order, newest first.
func (s *OrderRepositoryStub) ListAll(ctx context.Context) ([]model.Order, error) {
	if s.ListAllFn != nil {
		return s.ListAllFn(ctx)
	}
	return s.list(func(model.Order) bool { return true }), nil
}

// ListByUser returns the user's orders, newest first.
func (s *OrderRepositoryStub) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	if s.ListByUserFn != nil {
		return s.ListByUserFn(ctx, userID)
	}
	return s.list(func(o model.Order) bool { return o.UserID == userID }), nil
}

func (s *OrderRepositoryStub) list(keep func(model.Order) bool) []model.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Order, 0, len(s.Orders))
	for _, o := range s.Orders {
		if keep(*o) {
			out = append(out, *o)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// Update applies the patch to the stored order and records it.
func (s *OrderRepositoryStub) Update(ctx context.Context, code string, patch model.OrderPatch) (*model.Order, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, code, patch)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Updates = append(s.Updates, patch)
	order, ok := s.Orders[code]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	order.Apply(patch)
	order.UpdatedAt = time.Now()
	cp := *order
	return &cp, nil
}
