package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/felisterpaul/shecodes-blog/internal/config"
	"github.com/felisterpaul/shecodes-blog/internal/domain/article"
	"github.com/felisterpaul/shecodes-blog/internal/http/handlers"
	"github.com/gin-gonic/gin"
)

// Make sure Gin does not spam the console during the test

func init() {
	gin.SetMode(gin.TestMode)
}

// Fake store implementation of the handlers.ArticlesStore interface

type fakeArticlesStore struct {
	listFn   func(ctx context.Context) ([]article.Article, error)
	getFn    func(ctx context.Context, id int) (article.Article, error)
	createFn func(ctx context.Context, req article.CreateArticleRequest, author string) (article.Article, error)
	updateFn func(ctx context.Context, id int, req article.UpdateArticleRequest) (article.Article, error)
	deleteFn func(ctx context.Context, id int) error
}

func (f *fakeArticlesStore) List(ctx context.Context) ([]article.Article, error) {
	if f.listFn != nil {
		return f.listFn(ctx)
	}
	return []article.Article{}, nil
}

func (f *fakeArticlesStore) GetByID(ctx context.Context, id int) (article.Article, error) {
	if f.getFn != nil {
		return f.getFn(ctx, id)
	}
	return article.Article{}, nil
}

func (f *fakeArticlesStore) Create(ctx context.Context, req article.CreateArticleRequest, author string) (article.Article, error) {
	if f.createFn != nil {
		return f.createFn(ctx, req, author)
	}
	return article.Article{}, nil
}

func (f *fakeArticlesStore) Update(ctx context.Context, id int, req article.UpdateArticleRequest) (article.Article, error) {
	if f.updateFn != nil {
		return f.updateFn(ctx, id, req)
	}
	return article.Article{}, nil
}

func (f *fakeArticlesStore) Delete(ctx context.Context, id int) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

// small helper which returns the gin engine to mount one handler per test

func setupRouter(method, path string, h gin.HandlerFunc) *gin.Engine {
	r := gin.New()

	r.Handle(method, path, h)

	return r
}

// identityRouter mounts a handler behind a stub that stashes the
// authenticated username the way RequireAuth would.
func identityRouter(method, path, username string, h gin.HandlerFunc) *gin.Engine {
	r := gin.New()

	r.Handle(method, path, func(c *gin.Context) {
		c.Set("auth.userID", 1)
		c.Set("auth.username", username)
		c.Set("auth.role", "admin")
		c.Next()
	}, h)

	return r
}

func devConfig() config.Config {
	return config.Config{Env: "dev"}
}

func TestCreateArticleHandler(t *testing.T) {
	now := time.Now().UTC()

	tests := []struct {
		name           string
		body           string
		storeSetUp     func(*fakeArticlesStore)
		wantStatusCode int
	}{
		{
			name: "success",
			body: `{"title": "T", "content": "C"}`,
			storeSetUp: func(f *fakeArticlesStore) {
				f.createFn = func(ctx context.Context, req article.CreateArticleRequest, author string) (article.Article, error) {
					if author != "felister" {
						return article.Article{}, errors.New("author not taken from identity")
					}
					return article.Article{
						ID:        1,
						Title:     req.Title,
						Content:   req.Content,
						Author:    author,
						CreatedAt: now,
						UpdatedAt: now,
					}, nil
				}
			},
			wantStatusCode: http.StatusCreated,
		},
		{
			name: "missing_content",
			body: `{"title": "T"}`,
			storeSetUp: func(f *fakeArticlesStore) {
				// binding fails first, the store must stay untouched
				f.createFn = func(ctx context.Context, req article.CreateArticleRequest, author string) (article.Article, error) {
					t.Error("store called for invalid payload")
					return article.Article{}, nil
				}
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "whitespace_only_title",
			body: `{"title": "   ", "content": "C"}`,
			storeSetUp: func(f *fakeArticlesStore) {
				f.createFn = func(ctx context.Context, req article.CreateArticleRequest, author string) (article.Article, error) {
					return article.Article{}, article.ErrEmptyField
				}
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "store_error",
			body: `{"title": "T", "content": "C"}`,
			storeSetUp: func(f *fakeArticlesStore) {
				f.createFn = func(ctx context.Context, req article.CreateArticleRequest, author string) (article.Article, error) {
					return article.Article{}, errors.New("disk full")
				}
			},
			wantStatusCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeArticlesStore{}

			if tt.storeSetUp != nil {
				tt.storeSetUp(fake)
			}

			h := handlers.NewArticlesHandler(fake, devConfig())

			r := identityRouter(http.MethodPost, "/api/articles", "felister", h.CreateArticle)

			req := httptest.NewRequest(http.MethodPost, "/api/articles", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}
		})
	}
}

func TestGetArticleByIDHandler(t *testing.T) {
	tests := []struct {
		name           string
		url            string
		storeSetUp     func(*fakeArticlesStore)
		wantStatusCode int
	}{
		{
			name: "success",
			url:  "/api/articles/1",
			storeSetUp: func(f *fakeArticlesStore) {
				f.getFn = func(ctx context.Context, id int) (article.Article, error) {
					return article.Article{ID: id, Title: "T", Content: "C"}, nil
				}
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name: "unknown_id",
			url:  "/api/articles/42",
			storeSetUp: func(f *fakeArticlesStore) {
				f.getFn = func(ctx context.Context, id int) (article.Article, error) {
					return article.Article{}, article.ErrNotFound
				}
			},
			wantStatusCode: http.StatusNotFound,
		},
		{
			name: "non_numeric_id",
			url:  "/api/articles/abc",
			storeSetUp: func(f *fakeArticlesStore) {
				f.getFn = func(ctx context.Context, id int) (article.Article, error) {
					t.Error("store called for a non-numeric id")
					return article.Article{}, nil
				}
			},
			wantStatusCode: http.StatusNotFound,
		},
		{
			name: "store_error",
			url:  "/api/articles/1",
			storeSetUp: func(f *fakeArticlesStore) {
				f.getFn = func(ctx context.Context, id int) (article.Article, error) {
					return article.Article{}, errors.New("read failed")
				}
			},
			wantStatusCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeArticlesStore{}

			if tt.storeSetUp != nil {
				tt.storeSetUp(fake)
			}

			h := handlers.NewArticlesHandler(fake, devConfig())

			r := setupRouter(http.MethodGet, "/api/articles/:id", h.GetArticleByID)

			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}
		})
	}
}

func TestUpdateArticleHandler(t *testing.T) {
	tests := []struct {
		name           string
		url            string
		body           string
		storeSetUp     func(*fakeArticlesStore)
		wantStatusCode int
	}{
		{
			name: "success",
			url:  "/api/articles/1",
			body: `{"title": "T2", "content": "C2"}`,
			storeSetUp: func(f *fakeArticlesStore) {
				f.updateFn = func(ctx context.Context, id int, req article.UpdateArticleRequest) (article.Article, error) {
					return article.Article{ID: id, Title: req.Title, Content: req.Content, Author: "felister"}, nil
				}
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "missing_fields",
			url:            "/api/articles/1",
			body:           `{}`,
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "unknown_id",
			url:  "/api/articles/42",
			body: `{"title": "T", "content": "C"}`,
			storeSetUp: func(f *fakeArticlesStore) {
				f.updateFn = func(ctx context.Context, id int, req article.UpdateArticleRequest) (article.Article, error) {
					return article.Article{}, article.ErrNotFound
				}
			},
			wantStatusCode: http.StatusNotFound,
		},
		{
			name: "store_error",
			url:  "/api/articles/1",
			body: `{"title": "T", "content": "C"}`,
			storeSetUp: func(f *fakeArticlesStore) {
				f.updateFn = func(ctx context.Context, id int, req article.UpdateArticleRequest) (article.Article, error) {
					return article.Article{}, errors.New("write failed")
				}
			},
			wantStatusCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeArticlesStore{}

			if tt.storeSetUp != nil {
				tt.storeSetUp(fake)
			}

			h := handlers.NewArticlesHandler(fake, devConfig())

			r := setupRouter(http.MethodPut, "/api/articles/:id", h.UpdateArticle)

			req := httptest.NewRequest(http.MethodPut, tt.url, bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}
		})
	}
}

func TestDeleteArticleHandler(t *testing.T) {
	tests := []struct {
		name           string
		url            string
		storeSetUp     func(*fakeArticlesStore)
		wantStatusCode int
	}{
		{
			name:           "success",
			url:            "/api/articles/1",
			wantStatusCode: http.StatusOK,
		},
		{
			name: "unknown_id",
			url:  "/api/articles/42",
			storeSetUp: func(f *fakeArticlesStore) {
				f.deleteFn = func(ctx context.Context, id int) error {
					return article.ErrNotFound
				}
			},
			wantStatusCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeArticlesStore{}

			if tt.storeSetUp != nil {
				tt.storeSetUp(fake)
			}

			h := handlers.NewArticlesHandler(fake, devConfig())

			r := setupRouter(http.MethodDelete, "/api/articles/:id", h.DeleteArticle)

			req := httptest.NewRequest(http.MethodDelete, tt.url, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}

			if tt.wantStatusCode == http.StatusOK {
				var resp struct {
					Success bool   `json:"success"`
					Message string `json:"message"`
				}

				if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
					t.Fatalf("decode response: %v", err)
				}

				if !resp.Success || resp.Message == "" {
					t.Fatalf("unexpected delete response: %+v", resp)
				}
			}
		})
	}
}

func TestListArticlesHandler(t *testing.T) {
	now := time.Now().UTC()

	fake := &fakeArticlesStore{
		listFn: func(ctx context.Context) ([]article.Article, error) {
			return []article.Article{
				{ID: 2, Title: "newer", CreatedAt: now},
				{ID: 1, Title: "older", CreatedAt: now.Add(-time.Hour)},
			}, nil
		},
	}

	h := handlers.NewArticlesHandler(fake, devConfig())

	r := setupRouter(http.MethodGet, "/api/articles", h.ListArticles)

	req := httptest.NewRequest(http.MethodGet, "/api/articles", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200, body=%s", w.Code, w.Body.String())
	}

	etag := w.Header().Get("ETag")

	if etag == "" {
		t.Fatal("listing carries no ETag")
	}

	var items []article.Article

	if err := json.Unmarshal(w.Body.Bytes(), &items); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if len(items) != 2 || items[0].ID != 2 {
		t.Fatalf("unexpected listing: %+v", items)
	}

	// revalidation with the same tag short-circuits to 304
	req = httptest.NewRequest(http.MethodGet, "/api/articles", nil)
	req.Header.Set("If-None-Match", etag)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotModified {
		t.Fatalf("got status %d, want 304", w.Code)
	}
}

func TestListArticlesHandlerStoreError(t *testing.T) {
	fake := &fakeArticlesStore{
		listFn: func(ctx context.Context) ([]article.Article, error) {
			return nil, errors.New("read failed")
		},
	}

	h := handlers.NewArticlesHandler(fake, config.Config{Env: "prod"})

	r := setupRouter(http.MethodGet, "/api/articles", h.ListArticles)

	req := httptest.NewRequest(http.MethodGet, "/api/articles", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("got status %d, want 500", w.Code)
	}

	// outside dev mode the underlying error is redacted
	if bytes.Contains(w.Body.Bytes(), []byte("read failed")) {
		t.Fatalf("storage detail leaked outside dev mode: %s", w.Body.String())
	}
}
