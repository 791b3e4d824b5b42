package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	middleware "github.com/Skotchmaster/storefront/pkg/middleware/auth"
)

type Deps struct {
	Orders    *OrderHTTP
	Reviews   *ReviewHTTP
	Catalog   *CatalogHTTP
	Coupons   *CouponHTTP
	Settings  *SettingsHTTP
	Admin     *AdminHTTP
	Auth      *AuthHTTP
	JWTSecret []byte
	Refresher middleware.Refresher
	Ready     func() error
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if d.Ready != nil {
			if err := d.Ready(); err != nil {
				return c.NoContent(http.StatusServiceUnavailable)
			}
		}
		return c.NoContent(http.StatusOK)
	})

	authMW := middleware.NewAutoRefreshMiddleware(d.JWTSecret, d.Refresher)
	api := e.Group("/api/v1")

	auth := api.Group("/auth")
	auth.POST("/register", d.Auth.Register)
	auth.POST("/login", d.Auth.Login)
	auth.POST("/refresh", d.Auth.Refresh)
	auth.POST("/logout", d.Auth.Logout)
	auth.GET("/me", d.Auth.Me, authMW.RequireAuth)

	orders := api.Group("/orders")
	orders.POST("", d.Orders.CreateOrder, authMW.OptionalAuth)
	orders.POST("/quote", d.Settings.Quote)
	orders.GET("/track/:trackingNumber", d.Orders.TrackOrder)
	orders.GET("/mine", d.Orders.MyOrders, authMW.RequireAuth)
	orders.GET("", d.Orders.ListOrders, authMW.RequireAdmin)
	orders.GET("/:id", d.Orders.GetOrder, authMW.RequireAdmin)
	orders.PATCH("/:id", d.Orders.UpdateStatus, authMW.RequireAdmin)
	orders.PATCH("/:id/payment", d.Orders.UpdatePaymentStatus, authMW.RequireAdmin)

	reviews := api.Group("/reviews")
	reviews.GET("", d.Reviews.ListReviews)
	reviews.POST("/summary", d.Reviews.Summary)
	reviews.POST("", d.Reviews.CreateReview, authMW.RequireAuth)
	reviews.GET("/check", d.Reviews.CheckReview, authMW.RequireAuth)

	products := api.Group("/products")
	products.GET("/search", d.Catalog.SearchProducts)
	products.GET("", d.Catalog.GetProducts)
	products.GET("/:id", d.Catalog.GetProduct)

	adminProducts := products.Group("", authMW.RequireAdmin)
	adminProducts.POST("", d.Catalog.CreateProduct)
	adminProducts.PATCH("/:id", d.Catalog.PatchProduct)
	adminProducts.DELETE("/:id", d.Catalog.DeleteProduct)

	categories := api.Group("/categories")
	categories.GET("", d.Catalog.ListCategories)
	categories.POST("", d.Catalog.CreateCategory, authMW.RequireAdmin)
	categories.DELETE("/:id", d.Catalog.DeleteCategory, authMW.RequireAdmin)

	coupons := api.Group("/coupons")
	coupons.POST("/validate", d.Coupons.ValidateCoupon)
	coupons.GET("", d.Coupons.ListCoupons, authMW.RequireAdmin)
	coupons.POST("", d.Coupons.CreateCoupon, authMW.RequireAdmin)
	coupons.PATCH("/:id", d.Coupons.PatchCoupon, authMW.RequireAdmin)
	coupons.DELETE("/:id", d.Coupons.DeleteCoupon, authMW.RequireAdmin)

	settings := api.Group("/settings")
	settings.GET("", d.Settings.GetSettings)
	settings.PUT("", d.Settings.UpdateSettings, authMW.RequireAdmin)

	admin := api.Group("/admin", authMW.RequireAdmin)
	admin.GET("/stats", d.Admin.Stats)
	admin.GET("/customers", d.Admin.Customers)
}
