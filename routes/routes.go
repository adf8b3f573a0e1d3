package routes

import (
	"backend/configs"
	"backend/controllers"
	"backend/entity"
	"backend/middlewares"
	"backend/pkg/cache"
	"backend/repository"
	"backend/services"
	"backend/utils"
	"backend/ws"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *configs.Config) {
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	uow := repository.NewUnitOfWork(db)

	// Services
	auditSvc := services.NewAuditService(uow)
	settingsSvc := services.NewSettingsService(uow, cache.New())
	emailSvc := services.NewEmailService(settingsSvc)
	authSvc := services.NewAuthService(uow, emailSvc, auditSvc, utils.RealClock, cfg.JWTSecret, cfg.JWTTTL)
	menuSvc := services.NewMenuService(uow)
	tableSvc := services.NewTableService(uow)

	board := ws.NewOrderBoard()
	go board.Run()
	orderSvc := services.NewOrderService(uow, utils.RealClock, board, auditSvc)

	// Controllers
	authCtrl := controllers.NewAuthController(authSvc)
	menuCtrl := controllers.NewMenuController(menuSvc)
	tableCtrl := controllers.NewTableController(tableSvc)
	orderCtrl := controllers.NewOrderController(orderSvc)
	settingsCtrl := controllers.NewSettingsController(settingsSvc)
	auditCtrl := controllers.NewAuditController(auditSvc)

	authRequired := func(roles ...string) gin.HandlerFunc {
		return middlewares.AuthMiddleware(cfg.JWTSecret, roles...)
	}

	limiter := middlewares.NewRateLimiter(cfg.RateLimitMax, cfg.RateLimitWindow, utils.RealClock)

	api := r.Group("/api")

	// Auth (public, rate limited)
	a := api.Group("/auth", middlewares.RateLimitMiddleware(limiter))
	{
		a.POST("/login", authCtrl.Login)
		a.POST("/register", authCtrl.Register)
		a.POST("/forgot-password", authCtrl.ForgotPassword)
		a.POST("/reset-password", authCtrl.ResetPassword)
	}

	// Auth (protected)
	aAuth := api.Group("/auth", authRequired())
	{
		aAuth.GET("/me", authCtrl.Me)
		aAuth.POST("/change-password", authCtrl.ChangePassword)
	}

	// Menu
	menu := api.Group("/menu", authRequired())
	{
		menu.GET("/categories", menuCtrl.ListCategories)
		menu.GET("/categories/:id", menuCtrl.GetCategory)
		menu.GET("/items", menuCtrl.ListItems)
		menu.GET("/items/:id", menuCtrl.GetItem)
	}
	menuAdmin := api.Group("/menu", authRequired(entity.RoleAdmin))
	{
		menuAdmin.POST("/categories", menuCtrl.CreateCategory)
		menuAdmin.PUT("/categories/:id", menuCtrl.UpdateCategory)
		menuAdmin.DELETE("/categories/:id", menuCtrl.DeleteCategory)
		menuAdmin.POST("/items", menuCtrl.CreateItem)
		menuAdmin.PUT("/items/:id", menuCtrl.UpdateItem)
		menuAdmin.DELETE("/items/:id", menuCtrl.DeleteItem)
	}
	api.PATCH("/menu/items/:id/toggle-availability",
		authRequired(entity.RoleAdmin, entity.RoleKitchen), menuCtrl.ToggleAvailability)

	// Tables
	tables := api.Group("/tables", authRequired())
	{
		tables.GET("", tableCtrl.List)
		tables.GET("/available", tableCtrl.ListAvailable)
		tables.GET("/:id", tableCtrl.GetByID)
	}
	tablesAdmin := api.Group("/tables", authRequired(entity.RoleAdmin))
	{
		tablesAdmin.POST("", tableCtrl.Create)
		tablesAdmin.PUT("/:id", tableCtrl.Update)
		tablesAdmin.DELETE("/:id", tableCtrl.Delete)
	}

	// Orders
	orders := api.Group("/orders", authRequired())
	{
		orders.GET("", orderCtrl.List)
		orders.GET("/active", orderCtrl.ListActive)
		orders.GET("/:id", orderCtrl.GetByID)
	}
	api.POST("/orders", authRequired(entity.RoleAdmin, entity.RoleWaiter), orderCtrl.Create)
	api.PATCH("/orders/:id/status",
		authRequired(entity.RoleAdmin, entity.RoleWaiter, entity.RoleKitchen), orderCtrl.UpdateStatus)
	api.DELETE("/orders/:id", authRequired(entity.RoleAdmin, entity.RoleWaiter), orderCtrl.Cancel)

	// Settings (admin only)
	settings := api.Group("/settings", authRequired(entity.RoleAdmin))
	{
		settings.GET("", settingsCtrl.List)
		settings.PUT("/:key", settingsCtrl.Update)
		settings.GET("/email", settingsCtrl.GetEmail)
		settings.POST("/email", settingsCtrl.UpdateEmail)
	}

	// Audit trail (admin only)
	api.GET("/audit-logs", authRequired(entity.RoleAdmin), auditCtrl.Recent)

	// Kitchen order board
	r.GET("/ws/orders", middlewares.WSAuthMiddleware(cfg.JWTSecret), board.HandleWebSocket)
}
