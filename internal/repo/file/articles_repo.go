package file

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/felisterpaul/shecodes-blog/internal/domain/article"
	"github.com/felisterpaul/shecodes-blog/internal/observability"
	"github.com/felisterpaul/shecodes-blog/internal/storage"
)

// ArticlesRepo is the flat-file Article Store. Every mutation is a
// read-modify-write of the whole collection behind one mutex, so a
// write can never observe a stale snapshot from within this process.
type ArticlesRepo struct {
	mu   sync.Mutex
	path string
	obs  *observability.Prom
}

func NewArticlesRepo(path string, obs *observability.Prom) *ArticlesRepo {
	return &ArticlesRepo{
		path: path,
		obs:  obs,
	}
}

func (r *ArticlesRepo) List(ctx context.Context) ([]article.Article, error) {
	var items []article.Article

	err := r.obs.ObserveStore("articles.list", func() error {
		r.mu.Lock()
		defer r.mu.Unlock()

		var err error
		items, err = storage.Load[article.Article](r.path)
		return err
	})

	if err != nil {
		return nil, err
	}

	// newest first, regardless of file order
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})

	return items, nil
}

func (r *ArticlesRepo) GetByID(ctx context.Context, id int) (article.Article, error) {
	var found article.Article

	err := r.obs.ObserveStore("articles.get", func() error {
		r.mu.Lock()
		defer r.mu.Unlock()

		items, err := storage.Load[article.Article](r.path)

		if err != nil {
			return err
		}

		for _, a := range items {
			if a.ID == id {
				found = a
				return nil
			}
		}

		return article.ErrNotFound
	})

	if err != nil {
		return article.Article{}, err
	}

	return found, nil
}

func (r *ArticlesRepo) Create(ctx context.Context, req article.CreateArticleRequest, author string) (article.Article, error) {
	title := strings.TrimSpace(req.Title)
	content := strings.TrimSpace(req.Content)

	if title == "" || content == "" {
		return article.Article{}, article.ErrEmptyField
	}

	now := time.Now().UTC()

	date := req.Date

	if date == "" {
		date = now.Format("2006-01-02")
	}

	var created article.Article

	err := r.obs.ObserveStore("articles.create", func() error {
		r.mu.Lock()
		defer r.mu.Unlock()

		items, err := storage.Load[article.Article](r.path)

		if err != nil {
			return err
		}

		created = article.Article{
			ID:        nextID(items),
			Title:     title,
			Content:   content,
			Date:      date,
			Author:    author,
			CreatedAt: now,
			UpdatedAt: now,
		}

		items = append(items, created)

		return storage.Save(r.path, items)
	})

	if err != nil {
		return article.Article{}, err
	}

	return created, nil
}

func (r *ArticlesRepo) Update(ctx context.Context, id int, req article.UpdateArticleRequest) (article.Article, error) {
	title := strings.TrimSpace(req.Title)
	content := strings.TrimSpace(req.Content)

	if title == "" || content == "" {
		return article.Article{}, article.ErrEmptyField
	}

	var updated article.Article

	err := r.obs.ObserveStore("articles.update", func() error {
		r.mu.Lock()
		defer r.mu.Unlock()

		items, err := storage.Load[article.Article](r.path)

		if err != nil {
			return err
		}

		for i := range items {
			if items[i].ID != id {
				continue
			}

			// id, author and createdAt survive every update
			items[i].Title = title
			items[i].Content = content
			items[i].UpdatedAt = time.Now().UTC()

			if req.Date != "" {
				items[i].Date = req.Date
			}

			updated = items[i]

			return storage.Save(r.path, items)
		}

		return article.ErrNotFound
	})

	if err != nil {
		return article.Article{}, err
	}

	return updated, nil
}

func (r *ArticlesRepo) Delete(ctx context.Context, id int) error {
	return r.obs.ObserveStore("articles.delete", func() error {
		r.mu.Lock()
		defer r.mu.Unlock()

		items, err := storage.Load[article.Article](r.path)

		if err != nil {
			return err
		}

		remaining := make([]article.Article, 0, len(items))

		for _, a := range items {
			if a.ID != id {
				remaining = append(remaining, a)
			}
		}

		// success is the collection having shrunk
		if len(remaining) == len(items) {
			return article.ErrNotFound
		}

		return storage.Save(r.path, remaining)
	})
}

func nextID(items []article.Article) int {
	max := 0

	for _, a := range items {
		if a.ID > max {
			max = a.ID
		}
	}

	return max + 1
}
