// Package mocks provides hand-rolled in-memory fakes for unit tests.
package mocks

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// MockUserStore implements store.UserStore for testing.
// Each method can be overridden with a function field; otherwise a
// map-backed default implementation keyed by normalized email is used.
type MockUserStore struct {
	CreateFn      func(ctx context.Context, user *domain.User) error
	GetByIDFn     func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmailFn  func(ctx context.Context, email string) (*domain.User, error)
	EmailExistsFn func(ctx context.Context, email string) (bool, error)
	UpdateFn      func(ctx context.Context, user *domain.User) error
	DeleteFn      func(ctx context.Context, id uuid.UUID) error
	ListFn        func(ctx context.Context) ([]*domain.User, error)
	CountFn       func(ctx context.Context) (int, error)

	Users map[string]*domain.User
}

var _ store.UserStore = (*MockUserStore)(nil)

// NewMockUserStore creates a new mock store with initialized defaults.
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{
		Users: make(map[string]*domain.User),
	}
}

// Create implements the UserStore interface.
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}
	if _, exists := m.Users[user.Email]; exists {
		return store.ErrEmailExists
	}
	m.Users[user.Email] = user
	return nil
}

// GetByID implements the UserStore interface.
func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	for _, user := range m.Users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, store.ErrUserNotFound
}

// GetByEmail implements the UserStore interface.
func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}
	user, exists := m.Users[email]
	if !exists {
		return nil, store.ErrUserNotFound
	}
	return user, nil
}

// EmailExists implements the UserStore interface.
func (m *MockUserStore) EmailExists(ctx context.Context, email string) (bool, error) {
	if m.EmailExistsFn != nil {
		return m.EmailExistsFn(ctx, email)
	}
	_, exists := m.Users[email]
	return exists, nil
}

// Update implements the UserStore interface.
func (m *MockUserStore) Update(ctx context.Context, user *domain.User) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, user)
	}
	for email, existing := range m.Users {
		if existing.ID == user.ID {
			if email != user.Email {
				if _, taken := m.Users[user.Email]; taken {
					return store.ErrEmailExists
				}
				delete(m.Users, email)
			}
			m.Users[user.Email] = user
			return nil
		}
	}
	return store.ErrUserNotFound
}

// Delete implements the UserStore interface.
func (m *MockUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	for email, user := range m.Users {
		if user.ID == id {
			delete(m.Users, email)
			return nil
		}
	}
	return store.ErrUserNotFound
}

// List implements the UserStore interface.
func (m *MockUserStore) List(ctx context.Context) ([]*domain.User, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	users := make([]*domain.User, 0, len(m.Users))
	for _, user := range m.Users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.After(users[j].CreatedAt)
	})
	return users, nil
}

// Count implements the UserStore interface.
func (m *MockUserStore) Count(ctx context.Context) (int, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx)
	}
	return len(m.Users), nil
}
