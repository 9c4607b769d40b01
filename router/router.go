package router

import (
	"github.com/TyCGroup/serviciosgenerales/controllers"
	"github.com/TyCGroup/serviciosgenerales/middlewares"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	userCtrl := controllers.NewUserController(db)
	cleanLogCtrl := controllers.NewCleaningLogController(db)
	adminCtrl := controllers.NewAdminController(db)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/")
	auth.Use(middlewares.AuthMiddleware(db))
	{
		auth.POST("/logout", userCtrl.Logout)
		auth.GET("/profile", userCtrl.GetProfile)
		auth.GET("/locations", cleanLogCtrl.GetLocations)

		// Cleaning records (any active account)
		auth.POST("/cleaning-logs", cleanLogCtrl.CreateCleaningLog)
		auth.GET("/cleaning-logs", cleanLogCtrl.GetPersonalHistory)
		auth.GET("/cleaning-logs/:public_id", cleanLogCtrl.GetCleaningLogByID)
	}

	// ----------------------------------------------------------------
	//                      ADMIN ROUTES
	// ----------------------------------------------------------------
	admin := r.Group("/admin")
	admin.Use(middlewares.AuthMiddleware(db), middlewares.RequireAdmin())
	{
		admin.GET("/cleaning-logs", adminCtrl.GetGlobalHistory)
		admin.GET("/reports", adminCtrl.GetPendingReports)
		admin.POST("/reports/:public_id/review", adminCtrl.ReviewReport)
		admin.GET("/dashboard", adminCtrl.GetDashboard)
		admin.GET("/reports/export", adminCtrl.ExportData)

		admin.GET("/users", userCtrl.GetAllUsers)
		admin.POST("/users", userCtrl.CreateUser)
		admin.PATCH("/users/:user_id", userCtrl.UpdateUser)
		admin.PATCH("/users/:user_id/active", userCtrl.SetUserActive)
	}

	// Live updates over WebSocket
	ws := r.Group("/ws")
	ws.Use(middlewares.WebSocketAuthMiddleware(db))
	{
		ws.GET("", controllers.LiveHandler)
	}

	return r
}
