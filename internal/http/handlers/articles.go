package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/felisterpaul/shecodes-blog/internal/config"
	"github.com/felisterpaul/shecodes-blog/internal/domain/article"
	"github.com/felisterpaul/shecodes-blog/internal/http/middlewares"
	"github.com/gin-gonic/gin"
)

type ArticlesStore interface {
	List(ctx context.Context) ([]article.Article, error)
	GetByID(ctx context.Context, id int) (article.Article, error)
	Create(ctx context.Context, req article.CreateArticleRequest, author string) (article.Article, error)
	Update(ctx context.Context, id int, req article.UpdateArticleRequest) (article.Article, error)
	Delete(ctx context.Context, id int) error
}

type ArticlesHandler struct {
	store ArticlesStore
	cfg   config.Config
}

func NewArticlesHandler(store ArticlesStore, cfg config.Config) *ArticlesHandler {
	return &ArticlesHandler{
		store: store,
		cfg:   cfg,
	}
}

func (h *ArticlesHandler) ListArticles(ctx *gin.Context) {
	articles, err := h.store.List(ctx.Request.Context())

	if err != nil {
		RespondStorageError(ctx, "Failed to fetch articles", err, h.cfg.IsDev())
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, articles)
}

func (h *ArticlesHandler) GetArticleByID(ctx *gin.Context) {
	id, ok := articleID(ctx)

	if !ok {
		return
	}

	a, err := h.store.GetByID(ctx.Request.Context(), id)

	if err != nil {
		if errors.Is(err, article.ErrNotFound) {
			RespondNotFound(ctx, "Article not found")
			return
		}
		RespondStorageError(ctx, "Failed to fetch article", err, h.cfg.IsDev())
		return
	}

	ctx.JSON(http.StatusOK, a)
}

func (h *ArticlesHandler) CreateArticle(ctx *gin.Context) {
	var req article.CreateArticleRequest

	if !BindJSON(ctx, &req) {
		return
	}

	author, ok := middlewares.UsernameFromContext(ctx)

	if !ok || author == "" {
		RespondUnAuthorized(ctx, "unauthorized", "Missing identity context")
		return
	}

	created, err := h.store.Create(ctx.Request.Context(), req, author)

	if err != nil {
		if errors.Is(err, article.ErrEmptyField) {
			RespondBadRequest(ctx, "Title and content are required", nil)
			return
		}
		RespondStorageError(ctx, "Failed to create article", err, h.cfg.IsDev())
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

func (h *ArticlesHandler) UpdateArticle(ctx *gin.Context) {
	id, ok := articleID(ctx)

	if !ok {
		return
	}

	var req article.UpdateArticleRequest

	if !BindJSON(ctx, &req) {
		return
	}

	updated, err := h.store.Update(ctx.Request.Context(), id, req)

	if err != nil {
		switch {
		case errors.Is(err, article.ErrEmptyField):
			RespondBadRequest(ctx, "Title and content are required", nil)
		case errors.Is(err, article.ErrNotFound):
			RespondNotFound(ctx, "Article not found")
		default:
			RespondStorageError(ctx, "Failed to update article", err, h.cfg.IsDev())
		}
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

func (h *ArticlesHandler) DeleteArticle(ctx *gin.Context) {
	id, ok := articleID(ctx)

	if !ok {
		return
	}

	err := h.store.Delete(ctx.Request.Context(), id)

	if err != nil {
		if errors.Is(err, article.ErrNotFound) {
			RespondNotFound(ctx, "Article not found")
			return
		}
		RespondStorageError(ctx, "Failed to delete article", err, h.cfg.IsDev())
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Article deleted successfully",
	})
}

// A non-numeric id can never match an article, so it reads as unknown.
func articleID(ctx *gin.Context) (int, bool) {
	id, err := strconv.Atoi(ctx.Param("id"))

	if err != nil {
		RespondNotFound(ctx, "Article not found")
		return 0, false
	}

	return id, true
}
