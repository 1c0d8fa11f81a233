package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	mwauth "github.com/hairlyf/backend/internal/middleware/auth"
)

type Deps struct {
	Gate         *mwauth.Gate
	AccountHTTP  *AccountHTTP
	CatalogHTTP  *CatalogHTTP
	CartHTTP     *CartHTTP
	WishlistHTTP *WishlistHTTP
	OrderHTTP    *OrderHTTP
	SearchHTTP   *SearchHTTP
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	v1 := e.Group("/api/v1")

	users := v1.Group("/users")
	users.POST("/register", d.AccountHTTP.Register)
	users.GET("/verify/:token", d.AccountHTTP.VerifyEmail)
	users.POST("/login", d.AccountHTTP.Login)
	users.POST("/forgot-password", d.AccountHTTP.ForgotPassword)
	users.POST("/reset-password", d.AccountHTTP.ResetPassword)
	users.GET("/profile", d.AccountHTTP.GetProfile, d.Gate.RequireAuth)
	users.PUT("/profile", d.AccountHTTP.UpdateProfile, d.Gate.RequireAuth)

	products := v1.Group("/products")
	products.GET("", d.CatalogHTTP.GetProducts)
	products.GET("/search", d.CatalogHTTP.SearchProducts)
	products.GET("/pricerange", d.CatalogHTTP.GetByPriceRange)
	products.GET("/latest", d.CatalogHTTP.GetLatest)
	products.GET("/category/:category", d.CatalogHTTP.GetByCategory)
	products.GET("/:id", d.CatalogHTTP.GetProduct)
	products.GET("/:id/reviews", d.CatalogHTTP.GetReviews)
	products.POST("/:id/reviews", d.CatalogHTTP.AddReview, d.Gate.RequireAuth)

	admin := v1.Group("/products", d.Gate.RequireAuth, d.Gate.RequireAdmin)
	admin.POST("", d.CatalogHTTP.CreateProduct)
	admin.PUT("/:id", d.CatalogHTTP.UpdateProduct)
	admin.DELETE("/:id", d.CatalogHTTP.DeleteProduct)
	admin.PATCH("/:id/stock", d.CatalogHTTP.SetStock)

	if d.SearchHTTP != nil {
		v1.GET("/search", d.SearchHTTP.Search)
	}

	cart := v1.Group("/cart", d.Gate.RequireAuth)
	cart.GET("", d.CartHTTP.GetCart)
	cart.POST("/add", d.CartHTTP.AddToCart)
	cart.DELETE("/remove/:id", d.CartHTTP.RemoveFromCart)
	cart.PUT("/update", d.CartHTTP.UpdateQuantity)
	cart.DELETE("/clear", d.CartHTTP.ClearCart)

	wishlist := v1.Group("/wishlist", d.Gate.RequireAuth)
	wishlist.GET("", d.WishlistHTTP.GetWishlist)
	wishlist.POST("/add", d.WishlistHTTP.AddToWishlist)
	wishlist.DELETE("/remove/:id", d.WishlistHTTP.RemoveFromWishlist)
	wishlist.POST("/move-to-cart", d.WishlistHTTP.MoveToCart)

	orders := v1.Group("/orders", d.Gate.RequireAuth)
	orders.POST("/place", d.OrderHTTP.PlaceOrder)
	orders.GET("/user", d.OrderHTTP.GetUserOrders)
	orders.GET("", d.OrderHTTP.GetAllOrders, d.Gate.RequireAdmin)
	orders.PATCH("/update-status/:orderId", d.OrderHTTP.UpdateStatus, d.Gate.RequireAdmin)
}
