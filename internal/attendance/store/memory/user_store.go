package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/proximark/server/internal/attendance/store"
)

type UserStore struct {
	mu      sync.Mutex
	byEmail map[string]store.User
}

func NewUserStore(users ...store.User) *UserStore {
	m := make(map[string]store.User, len(users))
	for _, u := range users {
		m[strings.ToLower(u.Email)] = u
	}
	return &UserStore{byEmail: m}
}

func (s *UserStore) GetByEmail(_ context.Context, email string) (store.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.byEmail[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return store.User{}, store.ErrUserNotFound
	}
	return u, nil
}
