package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/Agent-cat/Midland/handlers"
	"github.com/Agent-cat/Midland/middleware"
)

func RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handlers.HealthCheck)

	authController := handlers.NewAuthController()
	propertyController := handlers.NewPropertyController()
	viewController := handlers.NewViewController()
	cartController := handlers.NewCartController()

	auth := e.Group("/auth")
	auth.POST("/signup", authController.Signup)
	auth.POST("/signin", authController.Signin)
	auth.POST("/send-otp", authController.SendOTP)
	auth.POST("/verify-otp", authController.VerifyOTP)
	auth.GET("/users", authController.ListUsers, middleware.JWTMiddleware())

	properties := e.Group("/properties")
	properties.GET("", propertyController.ListProperties)
	properties.POST("", propertyController.CreateProperty, middleware.JWTMiddleware())
	properties.GET("/all-views", viewController.AllViews, middleware.JWTMiddleware())
	properties.GET("/seller/:userId", propertyController.SellerProperties)
	properties.GET("/cart/:userId", cartController.GetCart, middleware.JWTMiddleware())
	properties.POST("/cart/add", cartController.AddToCart, middleware.JWTMiddleware())
	properties.POST("/cart/remove", cartController.RemoveFromCart, middleware.JWTMiddleware())
	properties.GET("/:id", propertyController.GetProperty)
	properties.PUT("/:id", propertyController.UpdateProperty, middleware.JWTMiddleware())
	properties.DELETE("/:id", propertyController.DeleteProperty, middleware.JWTMiddleware())
	properties.PUT("/:id/verify", propertyController.VerifyProperty, middleware.JWTMiddleware())
	properties.GET("/:id/views", viewController.ListPropertyViews, middleware.JWTMiddleware())
	properties.POST("/:id/views", viewController.RecordView, middleware.JWTMiddleware())

	e.PUT("/views/:id", viewController.UpdateView, middleware.JWTMiddleware())
}
