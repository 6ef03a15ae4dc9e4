// Package router contains routing setup for the HTTP delivery.
package router

import (
	"shoplocal/internal/delivery/http/middleware"
	"shoplocal/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	SessionHandler *handler.SessionHandler
	ListingHandler *handler.ListingHandler
	VendorHandler  *handler.VendorHandler
	CartHandler    *handler.CartHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	sessionHandler *handler.SessionHandler
	listingHandler *handler.ListingHandler
	vendorHandler  *handler.VendorHandler
	cartHandler    *handler.CartHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		sessionHandler: params.SessionHandler,
		listingHandler: params.ListingHandler,
		vendorHandler:  params.VendorHandler,
		cartHandler:    params.CartHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/social", r.authHandler.SocialLogin)
		authGroup.POST("/logout", r.authHandler.Logout)
	}

	// Session routes. Reading the snapshot is open so clients can poll the
	// hydration state before they hold a token.
	e.GET("/session", r.sessionHandler.Current)

	sessionGroup := e.Group("/session")
	sessionGroup.Use(r.authMiddleware.Authenticate)
	{
		sessionGroup.PATCH("/user", r.sessionHandler.UpdateUser)
		sessionGroup.PATCH("/profile", r.sessionHandler.UpdateProfile)
	}

	// Listing routes that require authentication
	listingGroup := e.Group("/listings")
	listingGroup.Use(r.authMiddleware.Authenticate)
	{
		listingGroup.GET("/mine", r.listingHandler.Mine)
		listingGroup.GET("/mine/stats", r.listingHandler.MineStats)
	}

	// Vendor directory routes, open to anonymous browsing
	vendorGroup := e.Group("/vendors")
	{
		vendorGroup.GET("/nearby", r.vendorHandler.Nearby)
		vendorGroup.GET("/:slug", r.vendorHandler.BySlug)
		vendorGroup.GET("/:slug/qrcode", r.vendorHandler.QRCode)
		vendorGroup.POST("/:id/visit", r.vendorHandler.RecordVisit)
	}

	// Cart routes, bound to the device store rather than an account
	cartGroup := e.Group("/cart")
	{
		cartGroup.GET("", r.cartHandler.Get)
		cartGroup.DELETE("", r.cartHandler.Clear)
		cartGroup.GET("/totals", r.cartHandler.Totals)
		cartGroup.POST("/items", r.cartHandler.AddItem)
		cartGroup.POST("/items/:id/increment", r.cartHandler.Increment)
		cartGroup.POST("/items/:id/decrement", r.cartHandler.Decrement)
		cartGroup.DELETE("/items/:id", r.cartHandler.Remove)
	}
}
