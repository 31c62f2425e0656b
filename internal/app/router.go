// internal/app/router.go
package app

import (
	authHandler "lenddesk-service/internal/handlers/auth"
	lendingHandler "lenddesk-service/internal/handlers/lending"
	wsHandler "lenddesk-service/internal/handlers/ws"
	"lenddesk-service/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Roles recognised by the route guard. Administrator always passes because
// the ERP grants it every permission anyway.
const (
	roleLoanManager   = "Loan Manager"
	roleLoanOfficer   = "Loan Officer"
	roleSystemManager = "System Manager"
	roleAdministrator = "Administrator"
)

type Handlers struct {
	AuthHandler    *authHandler.AuthHandler
	LendingHandler *lendingHandler.LendingHandler
	WSHandler      *wsHandler.WebSocketHandler
	Guard          *middleware.Guard
}

func SetupRouter(r *gin.Engine, logger *zap.Logger, h *Handlers) {
	api := r.Group("/api/v1")

	// ==================== Health Check ====================
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "version": "1.0.0"})
	})

	// ==================== WebSocket ====================
	r.GET("/ws", h.WSHandler.HandleConnection)

	// ==================== Public Auth Routes ====================
	authPublic := api.Group("/auth")
	{
		authPublic.POST("/login", h.AuthHandler.Login)
		authPublic.GET("/session", h.AuthHandler.Session)
	}

	// ==================== Authenticated Auth Routes ====================
	authProtected := api.Group("/auth")
	authProtected.Use(h.Guard.Protect())
	{
		authProtected.POST("/logout", h.AuthHandler.Logout)
		authProtected.GET("/me", h.AuthHandler.Me)
		authProtected.POST("/refresh", h.AuthHandler.Refresh)
	}

	// ==================== Dashboard ====================
	dashboard := api.Group("/dashboard")
	dashboard.Use(h.Guard.Protect())
	{
		dashboard.GET("/metrics", h.LendingHandler.Dashboard)
		dashboard.GET("/activities", h.LendingHandler.RecentActivities)
	}

	// ==================== Loan Applications ====================
	applications := api.Group("/applications")
	applications.Use(h.Guard.Protect())
	{
		applications.GET("", h.LendingHandler.ListApplications)
		applications.GET("/summary", h.LendingHandler.ApplicationsSummary)
		applications.GET("/:name", h.LendingHandler.GetApplication)
		applications.POST("", h.LendingHandler.CreateApplication)
		applications.PUT("/:name", h.LendingHandler.UpdateApplication)
		applications.POST("/:name/convert",
			h.Guard.Protect(roleLoanManager, roleSystemManager, roleAdministrator),
			h.LendingHandler.ConvertApplication)
	}

	// ==================== Loans ====================
	loans := api.Group("/loans")
	loans.Use(h.Guard.Protect())
	{
		loans.GET("", h.LendingHandler.ListLoans)
		loans.GET("/summary", h.LendingHandler.LoansSummary)
		loans.GET("/:name", h.LendingHandler.GetLoan)
		loans.GET("/:name/details", h.LendingHandler.LoanDetails)
		loans.GET("/:name/schedule", h.LendingHandler.RepaymentSchedule)
	}

	// ==================== Disbursements ====================
	disbursements := api.Group("/disbursements")
	disbursements.Use(h.Guard.Protect(roleLoanManager, roleLoanOfficer, roleSystemManager, roleAdministrator))
	{
		disbursements.GET("", h.LendingHandler.ListDisbursements)
		disbursements.GET("/summary", h.LendingHandler.DisbursementsSummary)
		disbursements.POST("", h.LendingHandler.CreateDisbursement)
	}

	// ==================== Repayments ====================
	repayments := api.Group("/repayments")
	repayments.Use(h.Guard.Protect())
	{
		repayments.GET("", h.LendingHandler.ListRepayments)
		repayments.GET("/summary", h.LendingHandler.RepaymentsSummary)
		repayments.POST("", h.LendingHandler.CreateRepayment)
	}

	// ==================== Borrowers ====================
	borrowers := api.Group("/borrowers")
	borrowers.Use(h.Guard.Protect())
	{
		borrowers.GET("", h.LendingHandler.ListBorrowers)
		borrowers.GET("/summary", h.LendingHandler.BorrowersSummary)
		borrowers.GET("/:name", h.LendingHandler.GetBorrower)
		borrowers.POST("", h.LendingHandler.CreateBorrower)
		borrowers.PUT("/:name", h.LendingHandler.UpdateBorrower)
	}

	// ==================== Securities & Products ====================
	securities := api.Group("/securities")
	securities.Use(h.Guard.Protect())
	{
		securities.GET("/summary", h.LendingHandler.SecuritiesSummary)
	}

	products := api.Group("/products")
	products.Use(h.Guard.Protect())
	{
		products.GET("", h.LendingHandler.ListProducts)
	}

	// ==================== Reports ====================
	reports := api.Group("/reports")
	reports.Use(h.Guard.Protect(roleLoanManager, roleSystemManager, roleAdministrator))
	{
		reports.GET("/repayments", h.LendingHandler.RepaymentReport)
		reports.GET("/security-status", h.LendingHandler.SecurityStatusReport)
		reports.GET("/interest", h.LendingHandler.InterestReport)
	}

	// ==================== Diagnostics ====================
	diagnostics := api.Group("/diagnostics")
	diagnostics.Use(h.Guard.Protect(roleSystemManager, roleAdministrator))
	{
		diagnostics.GET("/ws", h.WSHandler.GetStats)
	}

	logger.Info("router configured")
}
