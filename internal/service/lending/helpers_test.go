package lending

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

// Requirement: pagination clamps out-of-range page numbers and never divides
// by zero.
func TestPaginate(t *testing.T) {
	tests := []struct {
		name       string
		totalItems int
		pageSize   int
		pageNumber int
		wantNumber int
		wantPages  int
		wantStart  int
		wantEnd    int
	}{
		{
			name:       "first page of an even split",
			totalItems: 40, pageSize: 10, pageNumber: 1,
			wantNumber: 1, wantPages: 4, wantStart: 0, wantEnd: 10,
		},
		{
			name:       "ragged last page",
			totalItems: 45, pageSize: 10, pageNumber: 5,
			wantNumber: 5, wantPages: 5, wantStart: 40, wantEnd: 45,
		},
		{
			name:       "page past the end clamps to the last page",
			totalItems: 45, pageSize: 10, pageNumber: 99,
			wantNumber: 5, wantPages: 5, wantStart: 40, wantEnd: 45,
		},
		{
			name:       "page below one clamps to the first",
			totalItems: 45, pageSize: 10, pageNumber: 0,
			wantNumber: 1, wantPages: 5, wantStart: 0, wantEnd: 10,
		},
		{
			name:       "empty listing",
			totalItems: 0, pageSize: 10, pageNumber: 1,
			wantNumber: 1, wantPages: 1, wantStart: 0, wantEnd: 0,
		},
		{
			name:       "zero page size is treated as one",
			totalItems: 3, pageSize: 0, pageNumber: 2,
			wantNumber: 2, wantPages: 3, wantStart: 1, wantEnd: 2,
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			p := Paginate(test.totalItems, test.pageSize, test.pageNumber)
			if p.Number != test.wantNumber {
				t.Errorf("Paginate() number = %d, want %d", p.Number, test.wantNumber)
			}
			if p.TotalPages != test.wantPages {
				t.Errorf("Paginate() pages = %d, want %d", p.TotalPages, test.wantPages)
			}
			if p.Start != test.wantStart || p.End != test.wantEnd {
				t.Errorf("Paginate() bounds = [%d,%d), want [%d,%d)", p.Start, p.End, test.wantStart, test.wantEnd)
			}
		})
	}
}

// Requirement: repayment progress is a whole percentage clamped to [0, 100],
// with a zero total yielding 0.
func TestRepaymentProgress(t *testing.T) {
	tests := []struct {
		name        string
		total       string
		outstanding string
		want        int
	}{
		{name: "half repaid", total: "1000", outstanding: "500", want: 50},
		{name: "fully repaid", total: "1000", outstanding: "0", want: 100},
		{name: "nothing repaid", total: "1000", outstanding: "1000", want: 0},
		{name: "over-repaid clamps to 100", total: "1000", outstanding: "-50", want: 100},
		{name: "negative paid clamps to 0", total: "1000", outstanding: "1200", want: 0},
		{name: "zero total is 0, not a division error", total: "0", outstanding: "0", want: 0},
		{name: "fractional amounts truncate to a whole percent", total: "300", outstanding: "100", want: 66},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			total := decimal.RequireFromString(test.total)
			outstanding := decimal.RequireFromString(test.outstanding)
			if got := RepaymentProgress(total, outstanding); got != test.want {
				t.Errorf("RepaymentProgress(%s, %s) = %d, want %d", test.total, test.outstanding, got, test.want)
			}
		})
	}
}

// Requirement: the next due date follows the repayment schedule type, with
// unknown types treated as monthly.
func TestNextPaymentDate(t *testing.T) {
	from := time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		schedule string
		want     time.Time
	}{
		{name: "weekly", schedule: "Weekly", want: from.AddDate(0, 0, 7)},
		{name: "monthly", schedule: "Monthly", want: from.AddDate(0, 1, 0)},
		{name: "quarterly", schedule: "Quarterly", want: from.AddDate(0, 3, 0)},
		{name: "unknown falls back to monthly", schedule: "Fortnightly", want: from.AddDate(0, 1, 0)},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			if got := NextPaymentDate(from, test.schedule); !got.Equal(test.want) {
				t.Errorf("NextPaymentDate(%s) = %v, want %v", test.schedule, got, test.want)
			}
		})
	}
}
