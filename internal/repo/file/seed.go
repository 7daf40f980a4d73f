package file

import (
	"context"
	"time"

	"github.com/felisterpaul/shecodes-blog/internal/config"
	"github.com/felisterpaul/shecodes-blog/internal/domain/article"
	"github.com/felisterpaul/shecodes-blog/internal/domain/user"
	"github.com/felisterpaul/shecodes-blog/internal/security"
	"github.com/felisterpaul/shecodes-blog/internal/storage"
)

// EnsureDefaultAdmin seeds the credential file with one admin record
// the first time the process runs. An existing file is left untouched,
// the exposed API has no way to manage users afterwards.
func EnsureDefaultAdmin(ctx context.Context, users *UsersRepo, cfg config.Config) error {
	if storage.Exists(cfg.UsersFile) {
		return nil
	}

	hash, err := security.HashPassword(cfg.AdminPassword)

	if err != nil {
		return err
	}

	admin := user.User{
		ID:           1,
		Username:     cfg.AdminUsername,
		PasswordHash: hash,
		Role:         cfg.AdminRole,
		CreatedAt:    time.Now().UTC(),
	}

	return users.seed([]user.User{admin})
}

// EnsureStarterArticles writes the two welcome posts on first run so a
// fresh install does not greet readers with an empty page.
func EnsureStarterArticles(ctx context.Context, articles *ArticlesRepo, cfg config.Config) error {
	if storage.Exists(cfg.ArticlesFile) {
		return nil
	}

	now := time.Now().UTC()

	starters := []article.Article{
		{
			ID:    1,
			Title: "My Journey into Software Engineering",
			Content: "She believed in herself that she can do it. She is a software engineer, she codes and she loves it!\n\n" +
				"The journey began with a simple \"Hello World\" program, but it quickly evolved into a passion for creating elegant solutions to complex problems. Every day brings new challenges and opportunities to learn.",
			Date:      "2025-08-01",
			Author:    "Felister Paul",
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:    2,
			Title: "The Power of Persistence in Coding",
			Content: "Debugging can be frustrating, but it's also where the most valuable learning happens. Each error message is a puzzle waiting to be solved, each bug a lesson in disguise.\n\n" +
				"Through persistence and dedication, what once seemed impossible becomes achievable. The key is to never stop learning and always believe in your capabilities.",
			Date:      "2025-07-28",
			Author:    "Felister Paul",
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	articles.mu.Lock()
	defer articles.mu.Unlock()

	return storage.Save(cfg.ArticlesFile, starters)
}
