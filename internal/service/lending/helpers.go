// internal/service/lending/helpers.go
package lending

import (
	"time"

	"github.com/shopspring/decimal"
)

// Page describes one slice of a paginated listing.
type Page struct {
	Number     int `json:"number"`
	Size       int `json:"size"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
	Start      int `json:"start"`
	End        int `json:"end"`
}

// Paginate computes the bounds of one page. Page numbers are 1-based and are
// clamped into range, so a stale page number after a shrinking list never
// produces an out-of-bounds slice.
func Paginate(totalItems, pageSize, pageNumber int) Page {
	if pageSize < 1 {
		pageSize = 1
	}
	if totalItems < 0 {
		totalItems = 0
	}

	totalPages := (totalItems + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	if pageNumber < 1 {
		pageNumber = 1
	}
	if pageNumber > totalPages {
		pageNumber = totalPages
	}

	start := (pageNumber - 1) * pageSize
	end := start + pageSize
	if end > totalItems {
		end = totalItems
	}
	if start > totalItems {
		start = totalItems
	}

	return Page{
		Number:     pageNumber,
		Size:       pageSize,
		TotalItems: totalItems,
		TotalPages: totalPages,
		Start:      start,
		End:        end,
	}
}

// RepaymentProgress returns how much of a loan has been repaid as a whole
// percentage, clamped to [0, 100]. A zero or negative total yields 0 rather
// than dividing by zero.
func RepaymentProgress(totalPayment, outstanding decimal.Decimal) int {
	if totalPayment.LessThanOrEqual(decimal.Zero) {
		return 0
	}

	paid := totalPayment.Sub(outstanding)
	percent := paid.Div(totalPayment).Mul(decimal.NewFromInt(100)).IntPart()

	if percent < 0 {
		return 0
	}
	if percent > 100 {
		return 100
	}
	return int(percent)
}

// NextPaymentDate projects the next due date from a reference date and a
// repayment schedule type. Unknown schedule types fall back to monthly.
func NextPaymentDate(from time.Time, scheduleType string) time.Time {
	switch scheduleType {
	case "Weekly":
		return from.AddDate(0, 0, 7)
	case "Quarterly":
		return from.AddDate(0, 3, 0)
	default:
		return from.AddDate(0, 1, 0)
	}
}
