package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	dom "usermgmt/internal/domain/user"
)

// MemoryUserRepository is the repository used when no database is configured.
// It keeps insertion order.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	order []string
	users map[string]dom.User
	newID func() string
	now   func() time.Time
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		users: map[string]dom.User{},
		newID: uuid.NewString,
		now:   time.Now,
	}
}

func (r *MemoryUserRepository) GetByID(ctx context.Context, id string) (*dom.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, dom.ErrNotFound
	}
	return &u, nil
}

func (r *MemoryUserRepository) List(ctx context.Context) ([]dom.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res := make([]dom.User, 0, len(r.order))
	for _, id := range r.order {
		res = append(res, r.users[id])
	}
	return res, nil
}

func (r *MemoryUserRepository) Create(ctx context.Context, u *dom.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u.ID = r.newID()
	u.CreatedAt = r.now().UTC()
	u.UpdatedAt = u.CreatedAt
	r.users[u.ID] = *u
	r.order = append(r.order, u.ID)
	return nil
}

func (r *MemoryUserRepository) Update(ctx context.Context, u *dom.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev, ok := r.users[u.ID]
	if !ok {
		return dom.ErrNotFound
	}
	u.CreatedAt = prev.CreatedAt
	u.UpdatedAt = r.now().UTC()
	r.users[u.ID] = *u
	return nil
}

func (r *MemoryUserRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return dom.ErrNotFound
	}
	delete(r.users, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
