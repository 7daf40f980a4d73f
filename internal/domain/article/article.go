package article

import (
	"errors"
	"time"
)

type Article struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Date      string    `json:"date"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

var (
	ErrNotFound = errors.New("article not found")

	// returned when title or content is empty after trimming
	ErrEmptyField = errors.New("title and content are required")
)

type CreateArticleRequest struct {
	Title   string `json:"title" binding:"required,max=200"`
	Content string `json:"content" binding:"required,max=50000"`
	Date    string `json:"date" binding:"omitempty,datetime=2006-01-02"`
}

// a full update payload; author and id are never client-supplied.
type UpdateArticleRequest struct {
	Title   string `json:"title" binding:"required,max=200"`
	Content string `json:"content" binding:"required,max=50000"`
	Date    string `json:"date" binding:"omitempty,datetime=2006-01-02"`
}
