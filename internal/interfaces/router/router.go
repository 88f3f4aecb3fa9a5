package router

import (
	"net/http"

	authsvc "lumina-backend/internal/application/auth"
	propsvc "lumina-backend/internal/application/properties"
	"lumina-backend/internal/config"
	"lumina-backend/internal/infrastructure/database"
	"lumina-backend/internal/infrastructure/storage"
	adminhandler "lumina-backend/internal/interfaces/handlers/admin"
	authhandler "lumina-backend/internal/interfaces/handlers/auth"
	healthhandler "lumina-backend/internal/interfaces/handlers/health"
	prophandler "lumina-backend/internal/interfaces/handlers/properties"
	"lumina-backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type gormDBPinger struct {
	db *gorm.DB
}

func (g *gormDBPinger) Ping() error {
	if g == nil || g.db == nil {
		return nil
	}
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// CreateApp builds the Fiber app with all global middleware and routes.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage:   true,
		ErrorHandler:            middleware.ErrorHandler,
		EnableTrustedProxyCheck: true,
		BodyLimit:               32 * 1024 * 1024, // room for multi-image multipart submits
	})

	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix: cfg.FrontendURLEndsWith,
		DevPassword:   cfg.DevPassword,
	}))

	sessionCfg := middleware.SessionConfig{
		Secret:            cfg.SessionSecret,
		RedisURL:          cfg.RedisURL,
		AllowCrossSiteDev: cfg.AllowCrossSiteDev,
		IsProduction:      cfg.Env == "production",
	}
	sessionHandler, rdb, err := middleware.Session(sessionCfg)
	if err != nil {
		return nil, nil, nil, err
	}
	app.Use(sessionHandler)
	app.Use(middleware.HealthMarker(rdb))
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	hh := &healthhandler.Handlers{Rdb: rdb}
	app.Get("/health/json", hh.JSON)

	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		var errDB error
		db, errDB = database.Open(cfg.DatabaseURL)
		if errDB != nil {
			return nil, nil, nil, errDB
		}
		if err := database.AutoMigrate(db); err != nil {
			return nil, nil, nil, err
		}
		if err := database.EnsureAdmin(db, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			return nil, nil, nil, err
		}
		hh.DB = &gormDBPinger{db: db}
	}

	// Auth routes (no guard)
	var userFinder authsvc.UserFinder
	if db != nil {
		userFinder = &authsvc.GormUserFinder{DB: db}
	}
	authHandlers := &authhandler.Handlers{
		UserFinder: userFinder,
		Rdb:        rdb,
		Config:     sessionCfg,
	}
	authGroup := app.Group("/api/v1/auth")
	authGroup.Post("/login", authHandlers.Login)
	authGroup.Get("/me", authHandlers.Me)
	authGroup.Delete("/logout", authHandlers.Logout)

	if db != nil {
		propService := &propsvc.Service{DB: db}

		// Public browse/detail routes
		propHandlers := &prophandler.Handlers{Service: propService}
		propGroup := app.Group("/api/v1/properties")
		propGroup.Get("/", propHandlers.List)
		propGroup.Get("/featured", propHandlers.Featured)
		propGroup.Get("/:id", propHandlers.Get)
		propGroup.Get("/:id/gallery", propHandlers.Gallery)

		// Admin console, behind the session guard
		storageClient := &storage.SupabaseClient{
			BaseURL:   cfg.SupabaseURL,
			SecretKey: cfg.SupabaseSecretKey,
		}
		adminHandlers := &adminhandler.Handlers{
			Service: propService,
			Storage: storageClient,
			Bucket:  cfg.StorageBucket,
		}
		adminGroup := app.Group("/api/v1/admin", middleware.RequireAuth())
		adminGroup.Get("/properties", adminHandlers.ListProperties)
		adminGroup.Get("/stats", adminHandlers.Stats)
		adminGroup.Post("/properties", adminHandlers.CreateProperty)
		adminGroup.Put("/properties/:id", adminHandlers.UpdateProperty)
		adminGroup.Delete("/properties/:id", adminHandlers.DeleteProperty)
	}

	return app, db, rdb, nil
}

// Handler returns an http.Handler for serverless deployment.
func Handler(app *fiber.App) http.Handler {
	return adaptor.FiberApp(app)
}
