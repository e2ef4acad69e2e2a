package tests

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"carpool/internal/domain"
	"carpool/internal/repository"
)

// ──────────────────────────────────────────────
// MOCK USER REPOSITORY
// ──────────────────────────────────────────────

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User

	// Counters for verification
	CreateCallCount int32

	// Error injection
	CreateError error
	GetError    error
}

// NewMockUserRepository creates a new mock user repository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[string]*domain.User),
	}
}

// AddUser adds a user to the mock repository.
func (m *MockUserRepository) AddUser(user *domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == user.Username {
			return repository.ErrDuplicateUsername
		}
		if u.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	m.users[user.ID] = user
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *user
	return &copy, nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Email == email {
			copy := *u
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Username == username {
			copy := *u
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockUserRepository) GetAll(ctx context.Context) ([]*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.User, 0, len(m.users))
	for _, u := range m.users {
		copy := *u
		result = append(result, &copy)
	}
	return result, nil
}

// ──────────────────────────────────────────────
// MOCK CARPOOL REPOSITORY
// ──────────────────────────────────────────────

// MockCarpoolRepository is a mock implementation of CarpoolRepository.
type MockCarpoolRepository struct {
	mu       sync.RWMutex
	carpools map[string]*domain.Carpool

	// Counters for verification
	CreateCallCount  int32
	PromoteCallCount int32

	// Error injection
	CreateError  error
	GetError     error
	PromoteError error
}

// NewMockCarpoolRepository creates a new mock carpool repository.
func NewMockCarpoolRepository() *MockCarpoolRepository {
	return &MockCarpoolRepository{
		carpools: make(map[string]*domain.Carpool),
	}
}

// AddCarpool adds a carpool to the mock repository.
func (m *MockCarpoolRepository) AddCarpool(carpool *domain.Carpool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.carpools[carpool.ID] = carpool
}

func copyCarpool(c *domain.Carpool) *domain.Carpool {
	copy := *c
	copy.Confirmed = append([]string(nil), c.Confirmed...)
	copy.Pending = append([]string(nil), c.Pending...)
	return &copy
}

func (m *MockCarpoolRepository) Create(ctx context.Context, carpool *domain.Carpool) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.carpools[carpool.ID] = copyCarpool(carpool)
	return nil
}

func (m *MockCarpoolRepository) GetByID(ctx context.Context, id string) (*domain.Carpool, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	carpool, ok := m.carpools[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return copyCarpool(carpool), nil
}

func (m *MockCarpoolRepository) GetAll(ctx context.Context) ([]*domain.Carpool, error) {
	return m.Search(ctx, repository.SearchFilter{})
}

func (m *MockCarpoolRepository) Search(ctx context.Context, filter repository.SearchFilter) ([]*domain.Carpool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Carpool
	for _, c := range m.carpools {
		if filter.Destination != "" && !strings.Contains(c.Destination, filter.Destination) {
			continue
		}
		if filter.Origin != "" && !strings.Contains(c.Origin, filter.Origin) {
			continue
		}
		if filter.MinTime != nil && c.StartTime.Before(*filter.MinTime) {
			continue
		}
		if filter.MaxTime != nil && c.StartTime.After(*filter.MaxTime) {
			continue
		}
		result = append(result, copyCarpool(c))
	}
	return result, nil
}

func (m *MockCarpoolRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.carpools[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.carpools, id)
	return nil
}

func (m *MockCarpoolRepository) AddPending(ctx context.Context, carpoolID, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	carpool, ok := m.carpools[carpoolID]
	if !ok {
		return repository.ErrNotFound
	}
	carpool.Pending = append(carpool.Pending, userID)
	return nil
}

func (m *MockCarpoolRepository) RemovePending(ctx context.Context, carpoolID, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	carpool, ok := m.carpools[carpoolID]
	if !ok {
		return repository.ErrNotFound
	}
	carpool.Pending = removeID(carpool.Pending, userID)
	return nil
}

func (m *MockCarpoolRepository) RemoveConfirmed(ctx context.Context, carpoolID, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	carpool, ok := m.carpools[carpoolID]
	if !ok {
		return repository.ErrNotFound
	}
	carpool.Confirmed = removeID(carpool.Confirmed, userID)
	return nil
}

func (m *MockCarpoolRepository) PromoteToConfirmed(ctx context.Context, carpoolID, userID string) error {
	atomic.AddInt32(&m.PromoteCallCount, 1)
	if m.PromoteError != nil {
		return m.PromoteError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	carpool, ok := m.carpools[carpoolID]
	if !ok {
		return repository.ErrNotFound
	}
	found := false
	for _, id := range carpool.Pending {
		if id == userID {
			found = true
			break
		}
	}
	if !found {
		return repository.ErrNotFound
	}
	carpool.Pending = removeID(carpool.Pending, userID)
	carpool.Confirmed = append(carpool.Confirmed, userID)
	return nil
}

func (m *MockCarpoolRepository) GetByParticipant(ctx context.Context, userID string) ([]*domain.Carpool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Carpool
	for _, c := range m.carpools {
		if c.DriverID == userID || contains(c.Confirmed, userID) {
			result = append(result, copyCarpool(c))
		}
	}
	return result, nil
}

func (m *MockCarpoolRepository) GetUserRides(ctx context.Context, userID string) (*domain.UserRides, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rides := &domain.UserRides{}
	for _, c := range m.carpools {
		switch {
		case c.DriverID == userID:
			rides.Hosted = append(rides.Hosted, copyCarpool(c))
		case contains(c.Confirmed, userID):
			rides.Confirmed = append(rides.Confirmed, copyCarpool(c))
		case contains(c.Pending, userID):
			rides.Pending = append(rides.Pending, copyCarpool(c))
		}
	}
	return rides, nil
}

// GetCarpool returns the carpool by ID (for test assertions).
func (m *MockCarpoolRepository) GetCarpool(id string) *domain.Carpool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.carpools[id]
}

// CountCarpools returns the number of carpools.
func (m *MockCarpoolRepository) CountCarpools() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.carpools)
}

func removeID(ids []string, target string) []string {
	result := ids[:0]
	for _, id := range ids {
		if id != target {
			result = append(result, id)
		}
	}
	return result
}

func contains(ids []string, target string) bool {
	for _, id := range ids {
		if id == target {
			return true
		}
	}
	return false
}

// ──────────────────────────────────────────────
// MOCK LOCK STORE
// ──────────────────────────────────────────────

// MockLockStore is an in-process implementation of the carpool lock store.
type MockLockStore struct {
	mu    sync.Mutex
	held  map[string]bool
	Waits int32
}

// NewMockLockStore creates a new mock lock store.
func NewMockLockStore() *MockLockStore {
	return &MockLockStore{held: make(map[string]bool)}
}

func (m *MockLockStore) AcquireCarpoolLock(ctx context.Context, carpoolID string, ttl time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.held[carpoolID] {
		return false, nil
	}
	m.held[carpoolID] = true
	return true, nil
}

func (m *MockLockStore) WaitCarpoolLock(ctx context.Context, carpoolID string, ttl time.Duration) error {
	atomic.AddInt32(&m.Waits, 1)
	for {
		ok, err := m.AcquireCarpoolLock(ctx, carpoolID, ttl)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Millisecond):
		}
	}
}

func (m *MockLockStore) ReleaseCarpoolLock(ctx context.Context, carpoolID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.held, carpoolID)
	return nil
}

// ──────────────────────────────────────────────
// MOCK CACHE STORE
// ──────────────────────────────────────────────

// MockCacheStore is an in-process implementation of the carpool cache.
type MockCacheStore struct {
	mu      sync.RWMutex
	entries map[string]*domain.Carpool

	// Counters for verification
	GetCallCount int32
	SetCallCount int32

	// Error injection
	GetError error
}

// NewMockCacheStore creates a new mock cache store.
func NewMockCacheStore() *MockCacheStore {
	return &MockCacheStore{entries: make(map[string]*domain.Carpool)}
}

func (m *MockCacheStore) GetCarpool(ctx context.Context, carpoolID string) (*domain.Carpool, error) {
	atomic.AddInt32(&m.GetCallCount, 1)
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	carpool, ok := m.entries[carpoolID]
	if !ok {
		return nil, nil
	}
	return copyCarpool(carpool), nil
}

func (m *MockCacheStore) SetCarpool(ctx context.Context, carpool *domain.Carpool) error {
	atomic.AddInt32(&m.SetCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[carpool.ID] = copyCarpool(carpool)
	return nil
}

func (m *MockCacheStore) InvalidateCarpool(ctx context.Context, carpoolID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, carpoolID)
	return nil
}

// HasEntry reports whether the cache holds an entry for the carpool.
func (m *MockCacheStore) HasEntry(carpoolID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.entries[carpoolID]
	return ok
}

// ──────────────────────────────────────────────
// MOCK ASSET REPOSITORY
// ──────────────────────────────────────────────

// MockAssetRepository is a mock implementation of AssetRepository.
type MockAssetRepository struct {
	mu     sync.RWMutex
	assets map[string]*domain.Asset

	CreateError error
}

// NewMockAssetRepository creates a new mock asset repository.
func NewMockAssetRepository() *MockAssetRepository {
	return &MockAssetRepository{assets: make(map[string]*domain.Asset)}
}

func (m *MockAssetRepository) Create(ctx context.Context, asset *domain.Asset) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.assets[asset.ID] = asset
	return nil
}

func (m *MockAssetRepository) GetByID(ctx context.Context, id string) (*domain.Asset, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	asset, ok := m.assets[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *asset
	return &copy, nil
}
