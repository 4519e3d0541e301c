package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/marketsquare/marketplace-api/internal/api/handler"
	"github.com/marketsquare/marketplace-api/internal/core/service"
	"github.com/marketsquare/marketplace-api/internal/core/view"
	"github.com/marketsquare/marketplace-api/internal/infrastructure/config"
	mongostore "github.com/marketsquare/marketplace-api/internal/infrastructure/db/mongo"
	redisstore "github.com/marketsquare/marketplace-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("marketplace"))

	// --- Dependencies ---
	userRepo := mongostore.NewUserRepository(db, cfg.Cascade.UserDeletesProducts)
	roleRepo := mongostore.NewRoleRepository(db, cfg.Cascade.RoleDeletesUsers, cfg.Cascade.UserDeletesProducts)
	productRepo := mongostore.NewProductRepository(db)

	projector := view.NewProjector(service.NewStoreSource(userRepo, roleRepo, productRepo))
	guard := redisstore.NewAssignmentGuard(rdb)

	validator := service.NewRoleConstraintValidator(userRepo, roleRepo, log)
	userService := service.NewUserService(userRepo, roleRepo, log)
	roleService := service.NewRoleService(roleRepo, log)
	productService := service.NewProductService(productRepo, userRepo, validator, guard, log)
	assemblyService := service.NewProductAssemblyService(productRepo, userRepo, roleRepo, projector, log)

	userHandler := handler.NewUserHandler(userService, productService, projector)
	roleHandler := handler.NewRoleHandler(roleService, userService, projector)
	productHandler := handler.NewProductHandler(productService, assemblyService, projector)

	// --- User routes ---
	users := e.Group("/api/users")
	users.GET("", userHandler.List)
	users.POST("", userHandler.Create)
	users.GET("/basic", userHandler.ListBasic)
	users.GET("/summary", userHandler.ListSummary)
	users.GET("/list-view", userHandler.ListView)
	users.GET("/with-role", userHandler.ListSummary)
	users.GET("/role/:roleId", userHandler.ListByRole)
	users.GET("/entity/:id", userHandler.GetEntity)
	users.GET("/entity/:id/basic", userHandler.GetEntityBasic)
	users.GET("/:id", userHandler.Get)
	users.PUT("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete)
	users.GET("/:id/admin-products", userHandler.AdminProducts)
	users.GET("/:id/seller-products", userHandler.SellerProducts)
	users.GET("/:id/client-products", userHandler.ClientProducts)

	// --- Role routes ---
	roles := e.Group("/api/roles")
	roles.GET("", roleHandler.List)
	roles.POST("", roleHandler.Create)
	roles.GET("/:roleId/users", roleHandler.Users)
	roles.GET("/:id", roleHandler.Get)
	roles.PUT("/:id", roleHandler.Update)
	roles.DELETE("/:id", roleHandler.Delete)

	// --- Product routes ---
	products := e.Group("/api/products")
	products.GET("", productHandler.List)
	products.POST("", productHandler.Create)
	products.GET("/available", productHandler.Available)
	products.GET("/business-summary", productHandler.BusinessSummary)
	products.GET("/catalog", productHandler.ListCatalog)
	products.GET("/basic", productHandler.ListBasic)
	products.GET("/with-users", productHandler.ListWithUsers)
	products.GET("/role-view/:userId", productHandler.RoleView)
	products.GET("/admin/:userId", productHandler.ListByAdmin)
	products.GET("/seller/:userId", productHandler.ListBySeller)
	products.GET("/client/:userId", productHandler.ListByClient)
	products.GET("/entity/:id", productHandler.GetEntity)
	products.GET("/entity/:id/detail", productHandler.GetEntityDetail)
	products.GET("/:id", productHandler.Get)
	products.PUT("/:id", productHandler.Update)
	products.DELETE("/:id", productHandler.Delete)
	products.POST("/:id/assign-client", productHandler.AssignClient)
	products.POST("/:id/remove-client", productHandler.RemoveClient)

	// --- Health probes and metrics ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
