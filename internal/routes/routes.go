package routes

import (
	"github.com/damoang/pcmall-backend/internal/config"
	"github.com/damoang/pcmall-backend/internal/handler"
	"github.com/damoang/pcmall-backend/internal/middleware"
	"github.com/damoang/pcmall-backend/pkg/jwt"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Handlers every HTTP handler the API mounts
type Handlers struct {
	Auth      *handler.AuthHandler
	Menu      *handler.MenuHandler
	Category  *handler.CategoryHandler
	Brand     *handler.BrandHandler
	Shop      *handler.ShopHandler
	Product   *handler.ProductHandler
	Order     *handler.OrderHandler
	Setting   *handler.SettingHandler
	Media     *handler.MediaHandler
	PCBuilder *handler.PCBuilderHandler
	Audit     *handler.AuditHandler
}

// Setup configures all API routes under /api.
// redisClient may be nil; rate limiting then falls away.
func Setup(
	router *gin.Engine,
	h *Handlers,
	jwtManager *jwt.Manager,
	redisClient *redis.Client,
	audit *middleware.AuditLogger,
	cfg *config.Config,
) {
	// 쿠키 또는 Bearer 토큰이 있으면 사용자 정보를 채움 (없어도 통과)
	api := router.Group("/api", middleware.CookieAuth(jwtManager, cfg.JWT.CookieName))

	// Authentication
	auth := api.Group("/auth")
	loginLimit := middleware.RateLimit(redisClient, middleware.LoginRateLimitConfig(cfg.RateLimit.LoginRequests, cfg.RateLimit.LoginWindow))
	auth.POST("/login", loginLimit, h.Auth.Login)
	auth.POST("/logout", h.Auth.Logout)
	auth.GET("/csrf", h.Auth.CSRFToken)
	auth.GET("/me", middleware.RequireAuth(), h.Auth.Me)

	// Storefront (공개)
	api.GET("/menus/:location", h.Menu.GetPublicMenu)

	api.GET("/categories", h.Category.GetTree)
	api.GET("/categories/:slug", h.Category.GetBySlug)

	api.GET("/brands", h.Brand.List)
	api.GET("/brands/:slug", h.Brand.GetBySlug)

	api.GET("/shops", h.Shop.List)
	api.GET("/shops/:slug", h.Shop.GetBySlug)

	api.GET("/products", h.Product.List)
	api.GET("/products/:slug", h.Product.GetBySlug)

	api.POST("/orders", h.Order.Create)
	api.GET("/orders/lookup", h.Order.Lookup)

	api.GET("/settings", h.Setting.GetPublic)
	api.GET("/pc-builder", h.PCBuilder.GetSlots)

	// Admin (admin, editor)
	// 쿠키 인증 요청은 CSRF 토큰 필수, 성공한 변경 요청은 감사 로그에 기록
	admin := api.Group("/admin",
		middleware.RequireStaff(),
		middleware.CSRFProtection(),
		middleware.AdminAudit(audit),
	)
	{
		menus := admin.Group("/menus")
		menus.GET("", h.Menu.ListMenus)
		menus.POST("", h.Menu.CreateMenu)
		menus.GET("/:id", h.Menu.GetMenu)
		menus.PUT("/:id", h.Menu.UpdateMenu)
		menus.DELETE("/:id", h.Menu.DeleteMenu)
		menus.POST("/:id/items", h.Menu.CreateItem)
		menus.PUT("/:id/items/:itemId", h.Menu.UpdateItem)
		menus.DELETE("/:id/items/:itemId", h.Menu.DeleteItem)
		menus.PUT("/:id/reorder", h.Menu.ReorderItems)

		categories := admin.Group("/categories")
		categories.GET("", h.Category.ListAll)
		categories.POST("", h.Category.Create)
		categories.PUT("/:id", h.Category.Update)
		categories.DELETE("/:id", h.Category.Delete)

		brands := admin.Group("/brands")
		brands.GET("", h.Brand.ListAll)
		brands.POST("", h.Brand.Create)
		brands.PUT("/:id", h.Brand.Update)
		brands.DELETE("/:id", h.Brand.Delete)

		shops := admin.Group("/shops")
		shops.GET("", h.Shop.ListAll)
		shops.POST("", h.Shop.Create)
		shops.PUT("/:id", h.Shop.Update)
		shops.DELETE("/:id", h.Shop.Delete)

		products := admin.Group("/products")
		products.GET("", h.Product.ListAll)
		products.POST("", h.Product.Create)
		products.GET("/:id", h.Product.GetByID)
		products.PUT("/:id", h.Product.Update)
		products.DELETE("/:id", h.Product.Delete)

		orders := admin.Group("/orders")
		orders.GET("", h.Order.List)
		orders.GET("/:id", h.Order.Get)
		orders.PATCH("/:id/status", h.Order.UpdateStatus)

		media := admin.Group("/media")
		media.POST("/images", h.Media.UploadImage)
		media.DELETE("/images", h.Media.DeleteImage)

		// 스토어 설정과 감사 로그는 admin 전용
		adminOnly := admin.Group("", middleware.RequireAdmin())
		adminOnly.GET("/settings", h.Setting.GetAll)
		adminOnly.PUT("/settings", h.Setting.Update)
		adminOnly.GET("/audit-logs", h.Audit.List)
	}
}
