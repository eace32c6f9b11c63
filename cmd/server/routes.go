package main

import (
	"github.com/gin-gonic/gin"
	"seller-panel.backend/internal/config"
	"seller-panel.backend/internal/interfaces/http/handlers"
	"seller-panel.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	authHandler           *handlers.AuthHandler
	onboardingHandler     *handlers.OnboardingHandler
	categoryHandler       *handlers.CategoryHandler
	productHandler        *handlers.ProductHandler
	authMiddleware        gin.HandlerFunc
	idempotencyMiddleware gin.HandlerFunc
}

func newRouter(cfg *config.Config, d routeDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	applyCORSMiddleware(r, cfg.CORS.AllowedOrigins)
	registerHealthRoute(r)
	registerMetricsRoute(r)
	registerAPIV1Routes(r, d)
	return r
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", d.authHandler.Register)
			auth.POST("/verify-email", d.authHandler.VerifyEmail)
			auth.POST("/login/password", d.authHandler.LoginWithPassword)
			auth.POST("/login/otp-request", d.authHandler.RequestLoginOtp)
			auth.POST("/login/otp-verify", d.authHandler.VerifyLoginOtp)

			auth.GET("/check-auth", d.authMiddleware, d.authHandler.CheckAuth)
			auth.GET("/me", d.authMiddleware, d.authHandler.GetProfile)
			auth.GET("/dashboard-metrics", d.authMiddleware, d.authHandler.DashboardMetrics)

			// Registration wizard
			auth.PUT("/business-info", d.authMiddleware, d.onboardingHandler.SubmitBusinessInfo)
			auth.PUT("/bank-details", d.authMiddleware, d.onboardingHandler.SubmitBankDetails)
			auth.PUT("/documents", d.authMiddleware, d.onboardingHandler.SubmitDocuments)
			auth.PUT("/store-details", d.authMiddleware, d.onboardingHandler.SubmitStoreDetails)
		}

		// Profile editor (protected)
		profile := v1.Group("/profile")
		profile.Use(d.authMiddleware)
		{
			profile.GET("", d.authHandler.GetProfile)
			profile.PUT("/personal", d.onboardingHandler.UpdatePersonalDetails)
			profile.PUT("/business", d.onboardingHandler.SubmitBusinessInfo)
			profile.PUT("/bank", d.onboardingHandler.SubmitBankDetails)
			profile.PUT("/documents", d.onboardingHandler.SubmitDocuments)
			profile.PUT("/store-details", d.onboardingHandler.SubmitStoreDetails)
		}

		// Category routes (protected)
		categories := v1.Group("/categories")
		categories.Use(d.authMiddleware)
		{
			categories.POST("", d.categoryHandler.CreateCategory)
			categories.GET("", d.categoryHandler.ListCategories)
			categories.GET("/:id", d.categoryHandler.GetCategory)
			categories.PUT("/:id", d.categoryHandler.UpdateCategory)
			categories.DELETE("/:id", d.categoryHandler.DeleteCategory)
		}

		// Product routes (protected)
		products := v1.Group("/products")
		products.Use(d.authMiddleware)
		{
			products.POST("", d.idempotencyMiddleware, d.productHandler.CreateProduct)
			products.GET("", d.productHandler.ListProducts)
			products.GET("/:id", d.productHandler.GetProduct)
			products.PUT("/:id", d.productHandler.UpdateProduct)
			products.DELETE("/:id", d.productHandler.DeleteProduct)
			products.POST("/:id/variants", d.productHandler.AddVariant)
		}

		// Variant routes (protected)
		variants := v1.Group("/variants")
		variants.Use(d.authMiddleware)
		{
			variants.PUT("/:id", d.productHandler.UpdateVariant)
			variants.DELETE("/:id", d.productHandler.DeleteVariant)
		}
	}
}
