// Package server assembles the HTTP router from stores and telemetry.
package server

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/piyush-pb/Personal-Finance-Tracker/internal/docs" // Import swagger docs
	"github.com/piyush-pb/Personal-Finance-Tracker/internal/handlers"
	"github.com/piyush-pb/Personal-Finance-Tracker/internal/middleware"
	"github.com/piyush-pb/Personal-Finance-Tracker/internal/services"
	"github.com/piyush-pb/Personal-Finance-Tracker/internal/store"
	"github.com/piyush-pb/Personal-Finance-Tracker/internal/telemetry"
	"github.com/piyush-pb/Personal-Finance-Tracker/internal/validator"
)

// Deps are the collaborators the router needs.
type Deps struct {
	Stores          store.Stores
	Events          telemetry.Sink
	Reporter        telemetry.Reporter
	CORSAllowOrigin string
}

// NewRouter builds the Gin engine with every route registered.
func NewRouter(deps Deps) *gin.Engine {
	if deps.Events == nil {
		deps.Events = telemetry.Nop{}
	}
	if deps.Reporter == nil {
		deps.Reporter = telemetry.Nop{}
	}
	if deps.CORSAllowOrigin == "" {
		deps.CORSAllowOrigin = "*"
	}

	validator.Register()

	// Initialize services
	transactionService := services.NewTransactionService(deps.Stores.Transactions)
	budgetService := services.NewBudgetService(deps.Stores.Budgets)

	// Initialize handlers
	transactionHandler := handlers.NewTransactionHandler(transactionService, deps.Events)
	budgetHandler := handlers.NewBudgetHandler(budgetService, deps.Events)
	healthHandler := handlers.NewHealthHandler(deps.Stores.Health)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler(deps.Reporter))
	router.Use(middleware.CORS(deps.CORSAllowOrigin))

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", healthHandler.Health)

	// API v1 group
	v1 := router.Group("/api/v1")

	// Transaction routes
	transactions := v1.Group("/transactions")
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.PUT("", transactionHandler.UpdateTransaction)
	transactions.DELETE("", transactionHandler.DeleteTransaction)

	// Budget routes
	budgets := v1.Group("/budgets")
	budgets.GET("", budgetHandler.GetBudgets)
	budgets.POST("", budgetHandler.CreateBudget)
	budgets.PUT("", budgetHandler.UpdateBudget)
	budgets.DELETE("", budgetHandler.DeleteBudget)

	return router
}
