package http

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes mounts the API on e. Every route that changes state, and
// every read of user or order data, sits behind auth. The catalog reads are
// public and login goes through loginLimiter.
func (s *Server) RegisterRoutes(e *echo.Echo, auth, loginLimiter echo.MiddlewareFunc) {
	users := e.Group("/users")
	users.POST("", s.CreateUser)
	users.POST("/authenticate", s.Authenticate, loginLimiter)
	users.GET("", s.GetUsers, auth)
	users.GET("/:id", s.GetUser, auth)

	products := e.Group("/products")
	products.GET("", s.GetProducts)
	products.GET("/:id", s.GetProduct)
	products.GET("/category/:category", s.GetProducts)
	products.POST("", s.CreateProduct, auth)
	products.PUT("/:id", s.UpdateProduct, auth)
	products.DELETE("/:id", s.DeleteProduct, auth)

	orders := e.Group("/orders", auth)
	orders.GET("", s.GetOrders)
	orders.POST("", s.CreateOrder)
	orders.GET("/:id", s.GetOrder)
	orders.DELETE("/:id", s.DeleteOrder)
	orders.PUT("/:id/status", s.UpdateOrderStatus)
	orders.POST("/:id/products", s.AddProductToOrder)
	orders.GET("/:id/products", s.GetOrderProducts)
	orders.GET("/user/:userId", s.GetCurrentOrder)
	orders.GET("/user/:userId/closed", s.GetClosedOrders)
	orders.GET("/user/:userId/completed", s.GetClosedOrders)
}
