// internal/handlers/lending/reports_handler.go
package lending

import (
	"net/http"

	"lenddesk-service/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// reportFilters lifts the recognised query parameters into backend report
// filters. Absent parameters are omitted rather than sent empty.
func reportFilters(c *gin.Context) map[string]interface{} {
	filters := make(map[string]interface{})
	for _, key := range []string{"from_date", "to_date", "loan", "applicant", "status", "company"} {
		if v := c.Query(key); v != "" {
			filters[key] = v
		}
	}
	return filters
}

func (h *LendingHandler) RepaymentReport(c *gin.Context) {
	rep := h.lendingService.RepaymentReport(c.Request.Context(), reportFilters(c))
	response.Success(c, http.StatusOK, "repayment report retrieved", rep)
}

func (h *LendingHandler) SecurityStatusReport(c *gin.Context) {
	rep := h.lendingService.SecurityStatusReport(c.Request.Context(), reportFilters(c))
	response.Success(c, http.StatusOK, "security status report retrieved", rep)
}

func (h *LendingHandler) InterestReport(c *gin.Context) {
	rep := h.lendingService.InterestReport(c.Request.Context(), reportFilters(c))
	response.Success(c, http.StatusOK, "interest report retrieved", rep)
}
