// internal/domain/lending/entity.go
package lending

import "github.com/shopspring/decimal"

// Document status values used by the ERP's draft/submit workflow.
const (
	StatusDraft     = "Draft"
	StatusSubmitted = "Submitted"
	StatusApproved  = "Approved"
	StatusRejected  = "Rejected"
	StatusCancelled = "Cancelled"
)

// Repayment schedule types.
const (
	ScheduleWeekly    = "Weekly"
	ScheduleMonthly   = "Monthly"
	ScheduleQuarterly = "Quarterly"
)

// LoanApplication is a loan request in the approval workflow.
type LoanApplication struct {
	Name                  string           `json:"name"`
	ApplicantType         string           `json:"applicant_type"` // Employee or Borrower
	Applicant             string           `json:"applicant"`
	ApplicantName         string           `json:"applicant_name,omitempty"`
	LoanProduct           string           `json:"loan_product"`
	LoanAmount            decimal.Decimal  `json:"loan_amount"`
	RateOfInterest        decimal.Decimal  `json:"rate_of_interest"`
	RepaymentScheduleType string           `json:"repayment_schedule_type"`
	RepaymentPeriods      int              `json:"repayment_periods"`
	IsSecuredLoan         bool             `json:"is_secured_loan"`
	Status                string           `json:"status"`
	Creation              string           `json:"creation"`
	Modified              string           `json:"modified"`
	ProposedPledges       []SecurityPledge `json:"proposed_pledges,omitempty"`
}

// Loan is a sanctioned loan account. All computed balances come from the ERP;
// the gateway never derives ledger figures itself.
type Loan struct {
	Name                  string          `json:"name"`
	LoanApplication       string          `json:"loan_application"`
	ApplicantType         string          `json:"applicant_type"`
	Applicant             string          `json:"applicant"`
	ApplicantName         string          `json:"applicant_name,omitempty"`
	LoanProduct           string          `json:"loan_product"`
	LoanAmount            decimal.Decimal `json:"loan_amount"`
	DisbursedAmount       decimal.Decimal `json:"disbursed_amount"`
	RateOfInterest        decimal.Decimal `json:"rate_of_interest"`
	RepaymentScheduleType string          `json:"repayment_schedule_type"`
	RepaymentPeriods      int             `json:"repayment_periods"`
	IsSecuredLoan         bool            `json:"is_secured_loan"`
	Status                string          `json:"status"` // Sanctioned, Partially Disbursed, Fully Disbursed, Closed, Loan Closure Requested
	TotalPayment          decimal.Decimal `json:"total_payment"`
	TotalPrincipalPaid    decimal.Decimal `json:"total_principal_paid"`
	TotalInterestPayable  decimal.Decimal `json:"total_interest_payable"`
	WrittenOffAmount      decimal.Decimal `json:"written_off_amount"`
	Creation              string          `json:"creation"`
	Modified              string          `json:"modified"`
}

// LoanDisbursement is a payout against a loan.
type LoanDisbursement struct {
	Name             string          `json:"name"`
	AgainstLoan      string          `json:"against_loan"`
	DisbursementDate string          `json:"disbursement_date"`
	DisbursedAmount  decimal.Decimal `json:"disbursed_amount"`
	BankAccount      string          `json:"bank_account,omitempty"`
	ReferenceNumber  string          `json:"reference_number,omitempty"`
	Status           string          `json:"status"` // Draft, Submitted, Disbursed
	Creation         string          `json:"creation"`
	Modified         string          `json:"modified"`
}

// LoanRepayment is a payment received against a loan.
type LoanRepayment struct {
	Name            string          `json:"name"`
	AgainstLoan     string          `json:"against_loan"`
	PostingDate     string          `json:"posting_date"`
	AmountPaid      decimal.Decimal `json:"amount_paid"`
	ModeOfPayment   string          `json:"mode_of_payment,omitempty"`
	ReferenceNumber string          `json:"reference_number,omitempty"`
	RepaymentType   string          `json:"repayment_type,omitempty"` // Normal Repayment, Prepayment, Charges Waiver
	Status          string          `json:"status"`
	Creation        string          `json:"creation"`
	Modified        string          `json:"modified"`
}

// LoanProduct is an offered loan type and its terms.
type LoanProduct struct {
	Name                       string          `json:"name"`
	ProductName                string          `json:"product_name"`
	IsTermLoan                 bool            `json:"is_term_loan"`
	MaximumLoanAmount          decimal.Decimal `json:"maximum_loan_amount"`
	RateOfInterest             decimal.Decimal `json:"rate_of_interest"`
	PenaltyInterestRate        decimal.Decimal `json:"penalty_interest_rate"`
	GracePeriodInDays          int             `json:"grace_period_in_days"`
	AutoCreateRepaymentPeriods bool            `json:"auto_create_repayment_periods"`
	Status                     string          `json:"status"` // Active, Disabled
	Creation                   string          `json:"creation"`
	Modified                   string          `json:"modified"`
}

// Borrower is a lending customer.
type Borrower struct {
	Name          string `json:"name"`
	CustomerName  string `json:"customer_name"`
	CustomerType  string `json:"customer_type"` // Individual, Company
	CustomerGroup string `json:"customer_group,omitempty"`
	Territory     string `json:"territory,omitempty"`
	MobileNo      string `json:"mobile_no,omitempty"`
	EmailID       string `json:"email_id,omitempty"`
	Status        string `json:"status"` // Active, Disabled
	Creation      string `json:"creation"`
	Modified      string `json:"modified"`
}

// SecurityPledge is collateral pledged against a loan.
type SecurityPledge struct {
	Name              string          `json:"name"`
	Loan              string          `json:"loan,omitempty"`
	LoanSecurity      string          `json:"loan_security"`
	LoanSecurityType  string          `json:"loan_security_type,omitempty"`
	Qty               decimal.Decimal `json:"qty"`
	LoanSecurityPrice decimal.Decimal `json:"loan_security_price"`
	Amount            decimal.Decimal `json:"amount"`
	Haircut           decimal.Decimal `json:"haircut"`
	Status            string          `json:"status"` // Pledged, Unpledged
	Creation          string          `json:"creation,omitempty"`
	Modified          string          `json:"modified,omitempty"`
}

// ChartData is one point of a dashboard chart.
type ChartData struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
	Count int             `json:"count,omitempty"`
	Label string          `json:"label,omitempty"`
}

// DashboardMetrics are the summary cards and charts on the landing page.
type DashboardMetrics struct {
	TotalActiveLoans     int             `json:"total_active_loans"`
	TotalDisbursed       decimal.Decimal `json:"total_disbursed"`
	PendingApplications  int             `json:"pending_applications"`
	OverdueLoans         int             `json:"overdue_loans"`
	TotalPortfolioValue  decimal.Decimal `json:"total_portfolio_value"`
	AverageInterestRate  decimal.Decimal `json:"average_interest_rate"`
	MonthlyDisbursements []ChartData     `json:"monthly_disbursements"`
	PortfolioByStatus    []ChartData     `json:"portfolio_by_status"`
}

// RecentActivity is one row of the dashboard activity feed.
type RecentActivity struct {
	Doctype     string `json:"doctype"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Timestamp   string `json:"timestamp"`
}
