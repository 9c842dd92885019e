package routes

import (
	"time"

	"servicehub/handlers"
	"servicehub/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterHealthRoutes registers the health check and Prometheus scrape endpoints.
func RegisterHealthRoutes(r *gin.Engine) {
	r.GET("/health", handlers.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func RegisterAuthRoutes(api *gin.RouterGroup, h *handlers.AuthHandler) {
	g := api.Group("/auth/otp")
	{
		g.POST("/request", h.RequestOTP)
		g.POST("/verify", h.VerifyOTP)
	}
}

func RegisterCatalogRoutes(api *gin.RouterGroup, h *handlers.CatalogHandler) {
	g := api.Group("/catalog")
	{
		g.GET("/categories", h.ListCategories)
		g.GET("/categories/:id", h.GetCategory)
		g.GET("/categories/:id/subcategories", h.ListSubcategories)
		g.GET("/categories/:id/services", h.ListCategoryServices)
		g.GET("/services", h.ListServices)
		g.GET("/services/:id", h.GetService)
		g.GET("/explore", h.Explore)

		protected := g.Group("", middleware.JWTAuthMiddleware())
		protected.POST("/refresh", h.Refresh)
		protected.POST("/services", h.Publish)
	}
}

func RegisterCartRoutes(api *gin.RouterGroup, h *handlers.CartHandler) {
	g := api.Group("/cart", middleware.JWTAuthMiddleware())
	{
		g.GET("", h.Get)
		g.DELETE("", h.Clear)
		g.POST("/items", h.AddOrUpdate)
		g.PATCH("/items/:id/quantity", h.UpdateQuantity)
		g.DELETE("/items/:id", h.Remove)
	}
}

func RegisterScheduleRoutes(api *gin.RouterGroup, h *handlers.ScheduleHandler) {
	g := api.Group("/schedule")
	{
		g.GET("/dates", h.Dates)
		g.GET("/slots", h.Slots)
		g.POST("/state", h.State)
		g.POST("/confirm", middleware.JWTAuthMiddleware(), h.Confirm)
	}
}

func RegisterBookingRoutes(api *gin.RouterGroup, h *handlers.BookingHandler) {
	g := api.Group("/bookings", middleware.JWTAuthMiddleware())
	{
		g.POST("/checkout", h.Checkout)
		g.GET("", h.List)
		g.GET("/:id", h.Get)
		g.POST("/:id/:action", h.Transition)
	}
}

func RegisterRequestRoutes(api *gin.RouterGroup, h *handlers.RequestHandler) {
	g := api.Group("/requests", middleware.JWTAuthMiddleware())
	{
		g.POST("/voice", h.SubmitVoice)
		g.GET("", h.List)
		g.GET("/:id", h.Get)
	}
}

func RegisterAIRoutes(api *gin.RouterGroup, h *handlers.AIHandler) {
	api.POST("/ai/chat", h.Chat)
}

func RegisterConversationRoutes(api *gin.RouterGroup, h *handlers.ConversationHandler) {
	g := api.Group("/conversations", middleware.JWTAuthMiddleware())
	{
		g.POST("", h.Start)
		g.GET("", h.List)
		g.GET("/:id/messages", h.History)
		g.POST("/:id/messages", h.Send)
		g.GET("/:id/ws", h.Stream)
	}
}

func RegisterStorageRoutes(api *gin.RouterGroup, h *handlers.StorageHandler) {
	g := api.Group("/storage", middleware.JWTAuthMiddleware())
	{
		g.POST("/images", h.UploadImage)
		g.POST("/certificates", h.UploadCertificate)
	}
}

func RegisterDeviceRoutes(api *gin.RouterGroup, h *handlers.DeviceHandler) {
	api.POST("/devices/fcm", middleware.JWTAuthMiddleware(), h.RegisterFCM)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoutes(r)

	api := r.Group("/api")
	if hb.Auth != nil {
		RegisterAuthRoutes(api, hb.Auth)
	}
	if hb.Catalog != nil {
		RegisterCatalogRoutes(api, hb.Catalog)
	}
	if hb.Cart != nil {
		RegisterCartRoutes(api, hb.Cart)
	}
	if hb.Schedule != nil {
		RegisterScheduleRoutes(api, hb.Schedule)
	}
	if hb.Booking != nil {
		RegisterBookingRoutes(api, hb.Booking)
	}
	if hb.Requests != nil {
		RegisterRequestRoutes(api, hb.Requests)
	}
	if hb.AI != nil {
		RegisterAIRoutes(api, hb.AI)
	}
	if hb.Conversations != nil {
		RegisterConversationRoutes(api, hb.Conversations)
	}
	if hb.Storage != nil {
		RegisterStorageRoutes(api, hb.Storage)
	}
	if hb.Devices != nil {
		RegisterDeviceRoutes(api, hb.Devices)
	}
}
