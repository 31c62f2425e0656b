// internal/handlers/lending/lending_handler.go
package lending

import (
	"net/http"

	"lenddesk-service/internal/domain/lending"
	"lenddesk-service/internal/pkg/response"
	service "lenddesk-service/internal/service/lending"

	"github.com/gin-gonic/gin"
)

type LendingHandler struct {
	lendingService *service.LendingService
}

func NewLendingHandler(lendingService *service.LendingService) *LendingHandler {
	return &LendingHandler{
		lendingService: lendingService,
	}
}

// ========== Loan Applications ==========

func (h *LendingHandler) ListApplications(c *gin.Context) {
	apps, err := h.lendingService.ListApplications(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusBadGateway, "failed to list loan applications", err)
		return
	}
	response.Success(c, http.StatusOK, "loan applications retrieved", apps)
}

func (h *LendingHandler) GetApplication(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		response.Error(c, http.StatusBadRequest, "application name is required", nil)
		return
	}

	app, err := h.lendingService.GetApplication(c.Request.Context(), name)
	if err != nil {
		response.Error(c, http.StatusNotFound, "loan application not found", err)
		return
	}
	response.Success(c, http.StatusOK, "loan application retrieved", app)
}

func (h *LendingHandler) CreateApplication(c *gin.Context) {
	var form lending.LoanApplicationForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	app, err := h.lendingService.CreateApplication(c.Request.Context(), &form)
	if err != nil {
		response.Error(c, http.StatusBadGateway, "failed to create loan application", err)
		return
	}
	response.Success(c, http.StatusCreated, "loan application created", app)
}

func (h *LendingHandler) UpdateApplication(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		response.Error(c, http.StatusBadRequest, "application name is required", nil)
		return
	}

	var form lending.LoanApplicationForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	app, err := h.lendingService.UpdateApplication(c.Request.Context(), name, &form)
	if err != nil {
		response.Error(c, http.StatusBadGateway, "failed to update loan application", err)
		return
	}
	response.Success(c, http.StatusOK, "loan application updated", app)
}

func (h *LendingHandler) ApplicationsSummary(c *gin.Context) {
	summary := h.lendingService.ApplicationsSummary(c.Request.Context())
	response.Success(c, http.StatusOK, "applications summary retrieved", summary)
}

func (h *LendingHandler) ConvertApplication(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		response.Error(c, http.StatusBadRequest, "application name is required", nil)
		return
	}

	loanName, err := h.lendingService.ConvertApplicationToLoan(c.Request.Context(), name)
	if err != nil {
		response.Error(c, http.StatusBadGateway, "failed to convert application to loan", err)
		return
	}
	response.Success(c, http.StatusCreated, "loan created from application", gin.H{"loan": loanName})
}

// ========== Loans ==========

func (h *LendingHandler) ListLoans(c *gin.Context) {
	loans, err := h.lendingService.ListLoans(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusBadGateway, "failed to list loans", err)
		return
	}
	response.Success(c, http.StatusOK, "loans retrieved", loans)
}

func (h *LendingHandler) GetLoan(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		response.Error(c, http.StatusBadRequest, "loan name is required", nil)
		return
	}

	loan, err := h.lendingService.GetLoan(c.Request.Context(), name)
	if err != nil {
		response.Error(c, http.StatusNotFound, "loan not found", err)
		return
	}
	response.Success(c, http.StatusOK, "loan retrieved", loan)
}

func (h *LendingHandler) LoansSummary(c *gin.Context) {
	summary := h.lendingService.LoansSummary(c.Request.Context())
	response.Success(c, http.StatusOK, "loans summary retrieved", summary)
}

func (h *LendingHandler) LoanDetails(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		response.Error(c, http.StatusBadRequest, "loan name is required", nil)
		return
	}

	details, err := h.lendingService.LoanDetails(c.Request.Context(), name)
	if err != nil {
		response.Error(c, http.StatusNotFound, "loan details not found", err)
		return
	}
	response.Success(c, http.StatusOK, "loan details retrieved", details)
}

func (h *LendingHandler) RepaymentSchedule(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		response.Error(c, http.StatusBadRequest, "loan name is required", nil)
		return
	}

	schedule, err := h.lendingService.RepaymentSchedule(c.Request.Context(), name)
	if err != nil {
		response.Error(c, http.StatusNotFound, "repayment schedule not found", err)
		return
	}
	response.Success(c, http.StatusOK, "repayment schedule retrieved", schedule)
}

// ========== Disbursements ==========

func (h *LendingHandler) ListDisbursements(c *gin.Context) {
	rows, err := h.lendingService.ListDisbursements(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusBadGateway, "failed to list disbursements", err)
		return
	}
	response.Success(c, http.StatusOK, "disbursements retrieved", rows)
}

func (h *LendingHandler) CreateDisbursement(c *gin.Context) {
	var form lending.DisbursementForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	row, err := h.lendingService.CreateDisbursement(c.Request.Context(), &form)
	if err != nil {
		response.Error(c, http.StatusBadGateway, "failed to create disbursement", err)
		return
	}
	response.Success(c, http.StatusCreated, "disbursement created", row)
}

func (h *LendingHandler) DisbursementsSummary(c *gin.Context) {
	summary := h.lendingService.DisbursementsSummary(c.Request.Context())
	response.Success(c, http.StatusOK, "disbursements summary retrieved", summary)
}

// ========== Repayments ==========

func (h *LendingHandler) ListRepayments(c *gin.Context) {
	rows, err := h.lendingService.ListRepayments(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusBadGateway, "failed to list repayments", err)
		return
	}
	response.Success(c, http.StatusOK, "repayments retrieved", rows)
}

func (h *LendingHandler) CreateRepayment(c *gin.Context) {
	var form lending.RepaymentForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	row, err := h.lendingService.CreateRepayment(c.Request.Context(), &form)
	if err != nil {
		response.Error(c, http.StatusBadGateway, "failed to create repayment", err)
		return
	}
	response.Success(c, http.StatusCreated, "repayment created", row)
}

func (h *LendingHandler) RepaymentsSummary(c *gin.Context) {
	summary := h.lendingService.RepaymentsSummary(c.Request.Context())
	response.Success(c, http.StatusOK, "repayments summary retrieved", summary)
}

// ========== Borrowers ==========

func (h *LendingHandler) ListBorrowers(c *gin.Context) {
	rows, err := h.lendingService.ListBorrowers(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusBadGateway, "failed to list borrowers", err)
		return
	}
	response.Success(c, http.StatusOK, "borrowers retrieved", rows)
}

func (h *LendingHandler) GetBorrower(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		response.Error(c, http.StatusBadRequest, "borrower name is required", nil)
		return
	}

	row, err := h.lendingService.GetBorrower(c.Request.Context(), name)
	if err != nil {
		response.Error(c, http.StatusNotFound, "borrower not found", err)
		return
	}
	response.Success(c, http.StatusOK, "borrower retrieved", row)
}

func (h *LendingHandler) CreateBorrower(c *gin.Context) {
	var form lending.BorrowerForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	row, err := h.lendingService.CreateBorrower(c.Request.Context(), &form)
	if err != nil {
		response.Error(c, http.StatusBadGateway, "failed to create borrower", err)
		return
	}
	response.Success(c, http.StatusCreated, "borrower created", row)
}

func (h *LendingHandler) UpdateBorrower(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		response.Error(c, http.StatusBadRequest, "borrower name is required", nil)
		return
	}

	var form lending.BorrowerForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	row, err := h.lendingService.UpdateBorrower(c.Request.Context(), name, &form)
	if err != nil {
		response.Error(c, http.StatusBadGateway, "failed to update borrower", err)
		return
	}
	response.Success(c, http.StatusOK, "borrower updated", row)
}

func (h *LendingHandler) BorrowersSummary(c *gin.Context) {
	summary := h.lendingService.BorrowersSummary(c.Request.Context())
	response.Success(c, http.StatusOK, "borrowers summary retrieved", summary)
}

// ========== Securities & Products ==========

func (h *LendingHandler) SecuritiesSummary(c *gin.Context) {
	summary := h.lendingService.SecuritiesSummary(c.Request.Context())
	response.Success(c, http.StatusOK, "securities summary retrieved", summary)
}

func (h *LendingHandler) ListProducts(c *gin.Context) {
	rows, err := h.lendingService.ListProducts(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusBadGateway, "failed to list loan products", err)
		return
	}
	response.Success(c, http.StatusOK, "loan products retrieved", rows)
}

// ========== Dashboard ==========

func (h *LendingHandler) Dashboard(c *gin.Context) {
	metrics := h.lendingService.DashboardMetrics(c.Request.Context())
	response.Success(c, http.StatusOK, "dashboard metrics retrieved", metrics)
}

func (h *LendingHandler) RecentActivities(c *gin.Context) {
	rows := h.lendingService.RecentActivities(c.Request.Context())
	response.Success(c, http.StatusOK, "recent activities retrieved", rows)
}
