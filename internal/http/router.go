package http

import (
	"log/slog"
	"net/http"

	"github.com/felisterpaul/shecodes-blog/internal/auth"
	"github.com/felisterpaul/shecodes-blog/internal/config"
	"github.com/felisterpaul/shecodes-blog/internal/http/handlers"
	"github.com/felisterpaul/shecodes-blog/internal/http/middlewares"
	"github.com/felisterpaul/shecodes-blog/internal/observability"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const maxBodyBytes = 1 << 20 // 1 MiB, articles are text

func NewRouter(
	log *slog.Logger,
	cfg config.Config,
	users handlers.UserReader,
	articles handlers.ArticlesStore,
	jwtManager *auth.Manager,
	prom *observability.Prom,
	gatherer prometheus.Gatherer,
) *gin.Engine {
	if !cfg.IsDev() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// middleware

	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(RequestLogger(log))
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(cfg.CORSOrigins))
	r.Use(middlewares.MaxBodyBytes(maxBodyBytes))
	r.Use(middlewares.RequireJSON())

	if prom != nil {
		r.Use(prom.GinHandleMiddleware())
	}

	// wire up handlers

	authHandler := handlers.NewAuthHandler(users, jwtManager, cfg)
	articlesHandler := handlers.NewArticlesHandler(articles, cfg)
	healthHandler := handlers.NewHealthHandler()

	authMW := middlewares.NewAuthMiddleware(jwtManager)
	loginLimiter := middlewares.NewRateLimiter(cfg.LoginRateLimit, cfg.LoginRateWindow)

	api := r.Group("/api")

	api.POST("/login", loginLimiter.RateLimiterMiddleware(middlewares.KeyByIP), authHandler.Login)
	api.GET("/verify", authMW.RequireAuth(), authHandler.Verify)

	api.GET("/articles", articlesHandler.ListArticles)
	api.GET("/articles/:id", articlesHandler.GetArticleByID)

	protected := api.Group("")
	protected.Use(authMW.RequireAuth(), authMW.RequireRole("admin"))

	protected.POST("/articles", articlesHandler.CreateArticle)
	protected.PUT("/articles/:id", articlesHandler.UpdateArticle)
	protected.DELETE("/articles/:id", articlesHandler.DeleteArticle)

	api.GET("/health", healthHandler.Health)

	if gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	r.NoRoute(func(ctx *gin.Context) {
		handlers.RespondError(ctx, http.StatusNotFound, "not_found", "Route not found", nil)
	})

	return r
}
