package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vgsantoni/registro/internal/app/controllers"
	"github.com/vgsantoni/registro/internal/app/models"
	"github.com/vgsantoni/registro/internal/db"
	"github.com/vgsantoni/registro/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	estudanteController *controllers.EstudanteController,
	reconhecimentoController *controllers.ReconhecimentoController,
	authMiddleware *middleware.AuthMiddleware,
	loginLimiter *middleware.TokenBucket,
	postgres *db.PostgresDB,
	redis *db.Redis,
	uploadsDir string,
) {
	// Stored photos are served straight from disk
	router.Static("/uploads", uploadsDir)

	router.GET("/health", func(c *gin.Context) {
		dbHealthy := postgres.Healthy(c.Request.Context())
		redisHealthy := redis.Healthy(c.Request.Context())
		status := http.StatusOK
		if !dbHealthy || !redisHealthy {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{"status": "ok", "db": dbHealthy, "redis": redisHealthy})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// --- Public auth routes ---
	auth := router.Group("/auth")
	{
		auth.POST("/login", loginLimiter.Handler(), authController.Login)
		auth.POST("/logout", authMiddleware.IdentifySession(), authController.Logout)
	}

	// --- Authenticated auth routes ---
	authProtected := router.Group("/auth")
	authProtected.Use(authMiddleware.Authenticate())
	{
		authProtected.GET("/verificar", authController.Verificar)

		adminOnly := authProtected.Group("")
		adminOnly.Use(authMiddleware.Authorize(models.TipoAdmin))
		{
			adminOnly.POST("/cadastrar", authController.Cadastrar)
			adminOnly.POST("/check-config-pass", authController.CheckConfigPass)
		}
	}

	// --- Estudante routes ---
	estudantes := router.Group("/estudantes")
	estudantes.Use(authMiddleware.Authenticate())
	{
		// listing and detail stay open to professor accounts
		estudantes.GET("", estudanteController.List)
		estudantes.GET("/:id", estudanteController.Get)

		mutations := estudantes.Group("")
		mutations.Use(authMiddleware.Authorize(models.TipoAdmin))
		{
			mutations.POST("", estudanteController.Create)
			mutations.PUT("/:id", estudanteController.Update)
			mutations.PATCH("/:id", estudanteController.Patch)
			mutations.PATCH("/:id/campo", estudanteController.UpdateCampo)
			mutations.DELETE("/:id", estudanteController.Delete)
		}
	}

	// --- Recognition ---
	reconhecer := router.Group("/reconhecer")
	reconhecer.Use(authMiddleware.Authenticate())
	{
		reconhecer.POST("", reconhecimentoController.Reconhecer)
	}
}
