package file

import (
	"context"
	"sync"

	"github.com/felisterpaul/shecodes-blog/internal/domain/user"
	"github.com/felisterpaul/shecodes-blog/internal/observability"
	"github.com/felisterpaul/shecodes-blog/internal/storage"
)

// UsersRepo is the file-backed Credential Store. The API never mutates
// it, so the only writer is the first-run seeding path.
type UsersRepo struct {
	mu   sync.Mutex
	path string
	obs  *observability.Prom
}

func NewUsersRepo(path string, obs *observability.Prom) *UsersRepo {
	return &UsersRepo{
		path: path,
		obs:  obs,
	}
}

// GetByUsername looks one credential up. A failure to read the backing
// file means "no users", not a fatal error, so a broken or absent file
// degrades to every login being rejected.
func (r *UsersRepo) GetByUsername(ctx context.Context, username string) (user.User, error) {
	var found user.User

	err := r.obs.ObserveStore("users.get", func() error {
		r.mu.Lock()
		defer r.mu.Unlock()

		items, err := storage.Load[user.User](r.path)

		if err != nil {
			items = []user.User{}
		}

		for _, u := range items {
			if u.Username == username {
				found = u
				return nil
			}
		}

		return user.ErrNotFound
	})

	if err != nil {
		return user.User{}, err
	}

	return found, nil
}

func (r *UsersRepo) seed(users []user.User) error {
	return r.obs.ObserveStore("users.seed", func() error {
		r.mu.Lock()
		defer r.mu.Unlock()

		return storage.Save(r.path, users)
	})
}
