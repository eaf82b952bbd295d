package handler

import (
	"github.com/farmbook/farmbook-backend/internal/middleware"
	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, rateLimiter *middleware.RateLimiter, authHandler *AuthHandler, expenseHandler *ExpenseHandler, incomeHandler *IncomeHandler, soilHandler *SoilHandler, cropPlanHandler *CropPlanHandler, dashboardHandler *DashboardHandler, wsHandler *WebSocketHandler) {
	// API version 1
	api := e.Group("/api/v1")
	api.Use(authMiddleware.Authenticate())
	api.Use(middleware.RateLimitMiddleware(rateLimiter))

	// Auth routes
	auth := api.Group("/auth")
	auth.POST("/callback", authHandler.Callback)
	auth.GET("/me", authHandler.Me)
	auth.PUT("/profile", authHandler.UpdateProfile)
	auth.POST("/logout", authHandler.Logout)

	// Expense routes
	expenses := api.Group("/expenses")
	expenses.POST("", expenseHandler.CreateExpense)
	expenses.GET("", expenseHandler.GetExpenses)
	expenses.PUT("/:id", expenseHandler.UpdateExpense)
	expenses.DELETE("/:id", expenseHandler.DeleteExpense)

	// Income routes
	incomes := api.Group("/incomes")
	incomes.POST("", incomeHandler.CreateIncome)
	incomes.GET("", incomeHandler.GetIncomes)
	incomes.PUT("/:id", incomeHandler.UpdateIncome)
	incomes.DELETE("/:id", incomeHandler.DeleteIncome)

	// Soil test routes
	soilTests := api.Group("/soil-tests")
	soilTests.POST("", soilHandler.CreateSoilTest)
	soilTests.GET("", soilHandler.GetSoilTests)

	// Soil health summary
	api.GET("/soil-health", soilHandler.GetSoilHealth)

	// Crop plan routes
	cropPlans := api.Group("/crop-plans")
	cropPlans.POST("", cropPlanHandler.CreateCropPlan)
	cropPlans.GET("", cropPlanHandler.GetCropPlans)
	cropPlans.GET("/:id", cropPlanHandler.GetCropPlan)
	cropPlans.PUT("/:id", cropPlanHandler.UpdateCropPlan)
	cropPlans.DELETE("/:id", cropPlanHandler.DeleteCropPlan)

	// Dashboard routes
	dashboard := api.Group("/dashboard")
	dashboard.GET("/summary", dashboardHandler.GetSummary)

	// WebSocket endpoint authenticates via its own token query param
	e.GET("/ws", wsHandler.HandleWS)
}
