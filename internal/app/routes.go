package app

import (
	"github.com/Ashishchaubey550/Car-Dealer-Backend/internal/cache"
	"github.com/Ashishchaubey550/Car-Dealer-Backend/internal/config"
	"github.com/Ashishchaubey550/Car-Dealer-Backend/internal/handlers"
	"github.com/Ashishchaubey550/Car-Dealer-Backend/internal/repo"
	"github.com/Ashishchaubey550/Car-Dealer-Backend/internal/service"
	"github.com/Ashishchaubey550/Car-Dealer-Backend/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/swag"
	"go.uber.org/zap"
)

// Setup registers all routes on the given engine.
func Setup(r *gin.Engine, cfg config.Config, log *zap.Logger, db *pgxpool.Pool, rdb *redis.Client) error {
	r.GET("/", rootHandler(cfg))
	r.GET("/health", healthHandler(cfg))
	r.GET("/version", versionHandler(cfg))
	r.GET("/swagger-doc.json", swaggerDocHandler())
	r.GET("/swagger", func(c *gin.Context) { c.Redirect(302, "/swagger/index.html") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("/swagger-doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
	))

	// Stored image assets are exposed read-only; the paths returned at
	// creation time resolve here.
	r.Static("/uploads", cfg.Upload.Dir)

	userRepo := repo.NewPGUserRepo(db)
	userSvc := service.NewUserService(userRepo)
	authHandler := handlers.NewAuthHandler(userSvc, log)
	r.POST("/register", authHandler.Register)
	r.POST("/login", authHandler.Login)

	uploads, err := storage.NewDiskStore(cfg.Upload.Dir, cfg.Upload.MaxFileBytes)
	if err != nil {
		return err
	}
	productRepo := repo.NewPGProductRepo(db)
	productCache := cache.NewProductCache(rdb, cfg.Redis.DefaultTTL.Duration())
	productSvc := service.NewProductService(productRepo, productCache)
	productHandler := handlers.NewProductHandler(productSvc, uploads, cfg.Upload.MaxFiles, log)
	registerProductRoutes(r, productHandler)

	return nil
}

func rootHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service": "Car Dealer API",
			"version": cfg.App.Version,
			"env":     cfg.App.Env,
			"docs":    "/swagger/index.html",
			"spec":    "/swagger-doc.json",
			"health":  "/health",
		})
	}
}

func healthHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true, "env": cfg.App.Env})
	}
}

func versionHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"version": cfg.App.Version})
	}
}

func swaggerDocHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := swag.ReadDoc("swagger")
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.Data(200, "application/json; charset=utf-8", []byte(doc))
	}
}

func registerProductRoutes(r *gin.Engine, h *handlers.ProductHandler) {
	r.POST("/add", h.Add)
	r.GET("/product", h.List)
	r.GET("/product/:id", h.GetByID)
	r.PUT("/product/:id", h.Update)
	r.DELETE("/product/:id", h.Delete)
	r.GET("/search/:key", h.Search)

	// The upstream API exposed both filters under one route name, which
	// left only the body-type handler reachable. They are distinct
	// operations here.
	r.GET("/productlist", h.ListByCompany)
	r.GET("/cartype", h.ListByBodyType)
}
