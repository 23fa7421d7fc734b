package tests

import (
	"context"
	"sync"
	"time"

	"github.com/nabeelmumtaz92/ReturnIt-sub009/internal/domain"
	"github.com/nabeelmumtaz92/ReturnIt-sub009/internal/pricing"
	"github.com/nabeelmumtaz92/ReturnIt-sub009/internal/redis"
	"github.com/nabeelmumtaz92/ReturnIt-sub009/internal/repository"
)

// MockOrderRepository is an in-memory repository.OrderRepository with
// call counters and error injection.
type MockOrderRepository struct {
	mu     sync.Mutex
	orders map[string]*domain.Order

	// Error injection.
	CreateErr error
	UpdateErr error
	ExistsErr error

	// OrderNumberCollisions and TrackingNumberCollisions make the first N
	// existence checks of that kind report the candidate as taken.
	OrderNumberCollisions    int
	TrackingNumberCollisions int

	// Call counters.
	CreateCalls           int
	UpdateCalls           int
	ExistsByOrderCalls    int
	ExistsByTrackingCalls int
}

// NewMockOrderRepository creates an empty in-memory repository.
func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{
		orders: make(map[string]*domain.Order),
	}
}

func (m *MockOrderRepository) Create(_ context.Context, order *domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CreateCalls++
	if m.CreateErr != nil {
		return m.CreateErr
	}

	m.orders[order.ID] = order
	return nil
}

func (m *MockOrderRepository) GetByID(_ context.Context, id string) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	order, ok := m.orders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}

	copied := *order
	return &copied, nil
}

func (m *MockOrderRepository) GetByOrderNumber(_ context.Context, orderNumber string) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, order := range m.orders {
		if order.OrderNumber == orderNumber {
			copied := *order
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockOrderRepository) GetByTrackingNumber(_ context.Context, trackingNumber string) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, order := range m.orders {
		if order.TrackingNumber == trackingNumber {
			copied := *order
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockOrderRepository) ExistsByOrderNumber(_ context.Context, orderNumber string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ExistsByOrderCalls++
	if m.ExistsErr != nil {
		return false, m.ExistsErr
	}
	if m.OrderNumberCollisions > 0 {
		m.OrderNumberCollisions--
		return true, nil
	}

	for _, order := range m.orders {
		if order.OrderNumber == orderNumber {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockOrderRepository) ExistsByTrackingNumber(_ context.Context, trackingNumber string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ExistsByTrackingCalls++
	if m.ExistsErr != nil {
		return false, m.ExistsErr
	}
	if m.TrackingNumberCollisions > 0 {
		m.TrackingNumberCollisions--
		return true, nil
	}

	for _, order := range m.orders {
		if order.TrackingNumber == trackingNumber {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockOrderRepository) GetAll(_ context.Context) ([]*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	orders := make([]*domain.Order, 0, len(m.orders))
	for _, order := range m.orders {
		copied := *order
		orders = append(orders, &copied)
	}
	return orders, nil
}

func (m *MockOrderRepository) Update(_ context.Context, order *domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.UpdateCalls++
	if m.UpdateErr != nil {
		return m.UpdateErr
	}

	if _, ok := m.orders[order.ID]; !ok {
		return repository.ErrNotFound
	}
	m.orders[order.ID] = order
	return nil
}

// Mutate applies fn to the stored order under the repository lock. Tests
// use it to backdate timestamps before exercising a transition.
func (m *MockOrderRepository) Mutate(id string, fn func(*domain.Order)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if order, ok := m.orders[id]; ok {
		fn(order)
	}
}

// MockClaimStore is an in-memory redis.ClaimStoreInterface.
type MockClaimStore struct {
	mu   sync.Mutex
	held map[string]bool

	AcquireErr error

	Acquires int
	Releases int
}

// NewMockClaimStore creates an empty in-memory claim store.
func NewMockClaimStore() *MockClaimStore {
	return &MockClaimStore{held: make(map[string]bool)}
}

func (m *MockClaimStore) AcquireOrderClaim(_ context.Context, orderID string, _ time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Acquires++
	if m.AcquireErr != nil {
		return false, m.AcquireErr
	}
	if m.held[orderID] {
		return false, nil
	}
	m.held[orderID] = true
	return true, nil
}

func (m *MockClaimStore) ReleaseOrderClaim(_ context.Context, orderID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Releases++
	delete(m.held, orderID)
	return nil
}

// MockQuoteCache is an in-memory redis.QuoteCacheInterface.
type MockQuoteCache struct {
	mu     sync.Mutex
	quotes map[string]*redis.CachedQuote

	GetErr error
	SetErr error

	GetCalls int
	SetCalls int
}

// NewMockQuoteCache creates an empty in-memory quote cache.
func NewMockQuoteCache() *MockQuoteCache {
	return &MockQuoteCache{quotes: make(map[string]*redis.CachedQuote)}
}

func (m *MockQuoteCache) Get(_ context.Context, key string) (*redis.CachedQuote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.GetCalls++
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	return m.quotes[key], nil
}

func (m *MockQuoteCache) Set(_ context.Context, key string, quote *redis.CachedQuote) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SetCalls++
	if m.SetErr != nil {
		return m.SetErr
	}
	m.quotes[key] = quote
	return nil
}

// MockOracle is a scriptable pricing.Oracle.
type MockOracle struct {
	mu sync.Mutex

	Quote *pricing.OracleQuote
	Err   error

	Calls   int
	LastReq pricing.OracleRequest
}

func (m *MockOracle) Calculate(_ context.Context, req pricing.OracleRequest) (*pricing.OracleQuote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls++
	m.LastReq = req
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Quote, nil
}

// Interface checks.
var (
	_ repository.OrderRepository = (*MockOrderRepository)(nil)
	_ redis.ClaimStoreInterface  = (*MockClaimStore)(nil)
	_ redis.QuoteCacheInterface  = (*MockQuoteCache)(nil)
	_ pricing.Oracle             = (*MockOracle)(nil)
)
