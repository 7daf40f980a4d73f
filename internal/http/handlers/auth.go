package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/felisterpaul/shecodes-blog/internal/config"
	"github.com/felisterpaul/shecodes-blog/internal/domain/user"
	"github.com/felisterpaul/shecodes-blog/internal/http/middlewares"
	"github.com/felisterpaul/shecodes-blog/internal/security"
	"github.com/gin-gonic/gin"
)

type UserReader interface {
	GetByUsername(ctx context.Context, username string) (user.User, error)
}

type TokenIssuer interface {
	GenerateToken(userID int, username, role string) (string, error)
}

type AuthHandler struct {
	users UserReader
	jwt   TokenIssuer
	cfg   config.Config
}

func NewAuthHandler(users UserReader, jwt TokenIssuer, cfg config.Config) *AuthHandler {
	return &AuthHandler{
		users: users,
		jwt:   jwt,
		cfg:   cfg,
	}
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(ctx *gin.Context) {
	var req LoginRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	foundUser, err := h.users.GetByUsername(cctx, req.Username)
	if err != nil {
		RespondUnAuthorized(ctx, "invalid_credentials", "Username or password is incorrect.")
		return
	}

	err = security.CheckPassword(foundUser.PasswordHash, req.Password)

	if err != nil {
		RespondUnAuthorized(ctx, "invalid_credentials", "Username or password is incorrect.")
		return
	}

	token, err := h.jwt.GenerateToken(foundUser.ID, foundUser.Username, foundUser.Role)

	if err != nil {
		RespondInternal(ctx, "Could not generate token")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   token,
		"user":    foundUser.Public(),
	})
}

// Verify runs behind RequireAuth, so reaching it means the token held
// up. A token stays valid until expiry even if the identity behind it
// is gone; there is no server-side revocation.
func (h *AuthHandler) Verify(ctx *gin.Context) {
	id, _ := middlewares.UserIDFromContext(ctx)
	username, _ := middlewares.UsernameFromContext(ctx)
	role, _ := middlewares.RoleFromContext(ctx)

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"user": user.Public{
			ID:       id,
			Username: username,
			Role:     role,
		},
	})
}
