package memory

import (
	"context"
	"sync"

	"github.com/felisterpaul/shecodes-blog/internal/domain/user"
)

// UsersRepo is the static in-process Credential Store variant. It
// satisfies the same lookup contract as the file-backed store, which
// keeps the login path identical regardless of where credentials live.
type UsersRepo struct {
	mu    sync.RWMutex
	items map[string]user.User
}

func NewUsersRepo(users ...user.User) *UsersRepo {
	items := make(map[string]user.User, len(users))

	for _, u := range users {
		items[u.Username] = u
	}

	return &UsersRepo{items: items}
}

func (r *UsersRepo) GetByUsername(ctx context.Context, username string) (user.User, error) {
	r.mu.RLock()
	u, ok := r.items[username]
	r.mu.RUnlock()

	if !ok {
		return user.User{}, user.ErrNotFound
	}

	return u, nil
}
