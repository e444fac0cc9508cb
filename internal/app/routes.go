package app

import (
	"net/http"

	"blogapp/internal/auth"
	"blogapp/internal/cache"
	"blogapp/internal/config"
	"blogapp/internal/handlers"
	"blogapp/internal/repo"
	"blogapp/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Setup registers all routes on the given engine.
func Setup(r *gin.Engine, cfg config.Config, db *pgxpool.Pool, rdb *redis.Client) {
	r.GET("/", rootHandler(cfg))
	r.GET("/health", healthHandler(cfg))
	r.GET("/version", versionHandler(cfg))

	sessionStore := auth.NewStore(rdb, cfg.Redis.SessionTTL.Duration())
	userRepo := repo.NewPGUserRepo(db)
	userSvc := service.NewUserService(userRepo)
	authHandler := handlers.NewAuthHandler(sessionStore, userSvc)

	postRepo := repo.NewPGPostRepo(db)
	postCache := cache.NewPostCache(rdb, cfg.Redis.PostListTTL.Duration())
	postSvc := service.NewPostService(postRepo, postCache)
	freshness := cache.NewFreshnessCache(rdb)
	blogHandler := handlers.NewBlogHandler(postSvc, freshness)

	blog := r.Group("/blog", auth.WithUser(sessionStore, userRepo))
	RegisterBlogRoutes(r, blog, blogHandler)
	RegisterAuthRoutes(blog, authHandler)
}

// RegisterBlogRoutes wires the post pages and the JSON feed. The feed
// root lives outside the /blog group because its path has no slash.
func RegisterBlogRoutes(r *gin.Engine, blog *gin.RouterGroup, h *handlers.BlogHandler) {
	blog.GET("", h.Front)
	blog.GET("/newpost", h.NewPostForm)
	blog.POST("/newpost", h.CreatePost)
	blog.GET("/flush", h.Flush)
	blog.GET("/:id", h.PostPage) // also serves /blog/:id.json
	r.GET("/blog.json", h.Feed)
}

// RegisterAuthRoutes wires signup, login, logout and welcome.
func RegisterAuthRoutes(blog *gin.RouterGroup, h *handlers.AuthHandler) {
	blog.GET("/signup", h.SignupForm)
	blog.POST("/signup", h.Signup)
	blog.GET("/login", h.LoginForm)
	blog.POST("/login", h.Login)
	blog.GET("/logout", h.Logout)
	blog.GET("/welcome", h.Welcome)
}

func rootHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "Blog",
			"version": cfg.App.Version,
			"env":     cfg.App.Env,
			"blog":    "/blog",
			"feed":    "/blog.json",
			"health":  "/health",
		})
	}
}

func healthHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "env": cfg.App.Env})
	}
}

func versionHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"version": cfg.App.Version})
	}
}
