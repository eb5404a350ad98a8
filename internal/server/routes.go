package server

import (
	"kommercio/internal/domain/model"
	"kommercio/internal/usecase"

	"github.com/labstack/echo/v4"

	appmw "kommercio/internal/middleware"
)

func registerRoutes(e *echo.Echo, authUsecase *usecase.AuthUsecase, h Handlers) {
	requireAuth := appmw.RequireAuth(authUsecase)
	requireVendor := appmw.RequireRole(model.RoleVendor, model.RoleAdmin)

	e.GET("/", h.Health.Root)
	e.GET("/health", h.Health.Health)

	//認証
	auth := e.Group("/auth")
	auth.POST("/signup", h.Auth.Signup)
	auth.POST("/token", h.Auth.Login)
	auth.POST("/refresh", h.Auth.Refresh)
	auth.GET("/me", h.Auth.Me, requireAuth)
	auth.PUT("/profile", h.Auth.UpdateProfile, requireAuth)
	auth.PUT("/password", h.Auth.UpdatePassword, requireAuth)

	//商品閲覧は公開
	e.GET("/products", h.Product.List)
	e.GET("/products/:id", h.Product.Get)

	//商品管理はvendor/admin
	vendor := e.Group("/vendor/products", requireAuth, requireVendor)
	vendor.POST("", h.Product.Create)
	vendor.PUT("/:id", h.Product.Update)
	vendor.DELETE("/:id", h.Product.Delete)

	//カート
	cart := e.Group("/cart", requireAuth)
	cart.GET("", h.Cart.Get)
	cart.POST("/items", h.Cart.AddItem)
	cart.PUT("/items/:id", h.Cart.UpdateItem)
	cart.DELETE("/items/:id", h.Cart.RemoveItem)

	//チェックアウトと決済。cancelはPayPalからのリダイレクト先なので認証なし。
	e.POST("/checkout", h.Order.Checkout, requireAuth)
	e.POST("/payment/execute", h.Order.ExecutePayment, requireAuth)
	e.GET("/payment/cancel", h.Order.PaymentCancelled)

	//注文
	orders := e.Group("/orders", requireAuth)
	orders.GET("", h.Order.List)
	orders.GET("/:id", h.Order.Get)
	orders.PUT("/:id/cancel", h.Order.Cancel)
	orders.PUT("/:id/status", h.Order.SetStatus, requireVendor)
}
