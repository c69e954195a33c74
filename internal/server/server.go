package server

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/brian-hlbdg/wine-tasting-app-sub000/config"
	"github.com/brian-hlbdg/wine-tasting-app-sub000/internal/handlers"
	"github.com/brian-hlbdg/wine-tasting-app-sub000/internal/middleware"
)

func Start(log zerolog.Logger) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %v", err)
	}

	db, err := config.InitDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %v", err)
	}
	log.Info().Str("host", cfg.DBHost).Str("database", cfg.DBName).Msg("database connected")

	r := gin.Default()

	setupRoutes(r, db, log)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Info().Str("port", port).Msg("starting server")
	return r.Run(":" + port)
}

func setupRoutes(r *gin.Engine, db *gorm.DB, log zerolog.Logger) {
	r.Use(middleware.DatabaseMiddleware(db))
	r.Use(middleware.LoggerMiddleware(log))

	public := r.Group("/v1")
	{
		public.POST("/register", handlers.Register)
		public.POST("/login", handlers.Login)

		// Participant flow: no tokens, identity rides in the client-held
		// session blob returned by /join.
		public.POST("/join", handlers.Join)
		public.GET("/access-codes/:code", handlers.LookupEventByCode)
		public.GET("/events/:id/wines", handlers.ListEventWines)
		public.POST("/ratings", handlers.SubmitRating)
	}

	protected := r.Group("/v1")
	protected.Use(middleware.JWTAuthMiddleware())
	{
		eventProtected := protected.Group("/events")
		{
			eventProtected.POST("", handlers.CreateEvent)
			eventProtected.GET("", handlers.ListEvents)
			eventProtected.GET("/:id", handlers.GetEvent)
			eventProtected.PUT("/:id", handlers.UpdateEvent)
			eventProtected.DELETE("/:id", handlers.DeleteEvent)
			eventProtected.POST("/:id/restore", handlers.RestoreEvent)
			eventProtected.GET("/:id/analytics", handlers.GetEventAnalytics)
		}

		wineProtected := protected.Group("/wines")
		{
			wineProtected.POST("", handlers.CreateWine)
			wineProtected.PUT("/:id", handlers.UpdateWine)
			wineProtected.DELETE("/:id", handlers.DeleteWine)
		}

		locationProtected := protected.Group("/locations")
		{
			locationProtected.POST("", handlers.CreateLocation)
			locationProtected.PUT("/:id", handlers.UpdateLocation)
			locationProtected.DELETE("/:id", handlers.DeleteLocation)
		}
	}
}
