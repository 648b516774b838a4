package repository

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/deppfellow/user-service/internal/model"
)

// MemoryUserRepository is an in-process substitute for UserRepository with
// the same contract. Ids start at 1 and are never reused.
type MemoryUserRepository struct {
	mu     sync.RWMutex
	users  map[int64]model.User
	nextID int64

	// writes counts successful Create/UpdateByID/DeleteByID calls.
	writes int
}

// NewMemoryUserRepository returns an empty store.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		users:  make(map[int64]model.User),
		nextID: 1,
	}
}

func (r *MemoryUserRepository) Create(_ context.Context, u *model.User) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := model.User{ID: r.nextID, Name: u.Name, Password: u.Password}
	r.users[stored.ID] = stored
	r.nextID++
	r.writes++

	return &stored, nil
}

func (r *MemoryUserRepository) FindByID(_ context.Context, id int64) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (r *MemoryUserRepository) FindAll(_ context.Context) ([]model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sorted(func(model.User) bool { return true }), nil
}

func (r *MemoryUserRepository) FindByName(_ context.Context, name string) ([]model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sorted(func(u model.User) bool { return u.Name == name }), nil
}

func (r *MemoryUserRepository) UpdateByID(_ context.Context, id int64, u *model.User) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}

	existing.Name = u.Name
	existing.Password = u.Password
	r.users[id] = existing
	r.writes++

	return &existing, nil
}

func (r *MemoryUserRepository) DeleteByID(_ context.Context, id int64) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}

	delete(r.users, id)
	r.writes++

	return &existing, nil
}

// Writes reports how many mutations succeeded.
func (r *MemoryUserRepository) Writes() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.writes
}

// sorted returns the users matching keep in ascending id order.
// Callers must hold the lock.
func (r *MemoryUserRepository) sorted(keep func(model.User) bool) []model.User {
	users := make([]model.User, 0, len(r.users))
	for _, u := range r.users {
		if keep(u) {
			users = append(users, u)
		}
	}

	slices.SortFunc(users, func(a, b model.User) int {
		return cmp.Compare(a.ID, b.ID)
	})

	return users
}
