// internal/domain/lending/dto.go
package lending

import "github.com/shopspring/decimal"

// LoanApplicationForm creates or updates a loan application.
type LoanApplicationForm struct {
	ApplicantType         string           `json:"applicant_type" binding:"required,oneof=Employee Borrower"`
	Applicant             string           `json:"applicant" binding:"required"`
	LoanProduct           string           `json:"loan_product" binding:"required"`
	LoanAmount            decimal.Decimal  `json:"loan_amount" binding:"required"`
	RateOfInterest        decimal.Decimal  `json:"rate_of_interest"`
	RepaymentScheduleType string           `json:"repayment_schedule_type" binding:"required,oneof=Weekly Monthly Quarterly"`
	RepaymentPeriods      int              `json:"repayment_periods" binding:"required,min=1"`
	IsSecuredLoan         bool             `json:"is_secured_loan"`
	ProposedPledges       []SecurityPledge `json:"proposed_pledges,omitempty"`
}

// DisbursementForm creates a disbursement against a loan.
type DisbursementForm struct {
	AgainstLoan      string          `json:"against_loan" binding:"required"`
	DisbursementDate string          `json:"disbursement_date" binding:"required"`
	DisbursedAmount  decimal.Decimal `json:"disbursed_amount" binding:"required"`
	BankAccount      string          `json:"bank_account"`
	ReferenceNumber  string          `json:"reference_number"`
}

// RepaymentForm records a repayment against a loan.
type RepaymentForm struct {
	AgainstLoan     string          `json:"against_loan" binding:"required"`
	PostingDate     string          `json:"posting_date" binding:"required"`
	AmountPaid      decimal.Decimal `json:"amount_paid" binding:"required"`
	ModeOfPayment   string          `json:"mode_of_payment"`
	ReferenceNumber string          `json:"reference_number"`
	RepaymentType   string          `json:"repayment_type"`
}

// BorrowerForm creates or updates a borrower.
type BorrowerForm struct {
	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerType  string `json:"customer_type" binding:"required,oneof=Individual Company"`
	CustomerGroup string `json:"customer_group"`
	Territory     string `json:"territory"`
	MobileNo      string `json:"mobile_no"`
	EmailID       string `json:"email_id"`
}

// ApplicationsSummary is the applications page summary payload.
type ApplicationsSummary struct {
	Applications []LoanApplication `json:"applications"`
	TotalCount   int               `json:"total_count"`
}

// LoansSummary is the loans page summary payload.
type LoansSummary struct {
	Loans      []Loan `json:"loans"`
	TotalCount int    `json:"total_count"`
}

// DisbursementsSummary is the disbursements page summary payload.
type DisbursementsSummary struct {
	Disbursements []LoanDisbursement `json:"disbursements"`
	TotalCount    int                `json:"total_count"`
	PendingCount  int                `json:"pending_count"`
	PendingAmount decimal.Decimal    `json:"pending_amount"`
}

// RepaymentsSummary is the repayments page summary payload.
type RepaymentsSummary struct {
	Repayments   []LoanRepayment `json:"repayments"`
	TotalCount   int             `json:"total_count"`
	OverdueCount int             `json:"overdue_count"`
}

// BorrowersSummary is the borrowers page summary payload.
type BorrowersSummary struct {
	Borrowers   []Borrower `json:"borrowers"`
	TotalCount  int        `json:"total_count"`
	ActiveCount int        `json:"active_count"`
}

// SecuritiesSummary is the securities page summary payload.
type SecuritiesSummary struct {
	Securities         []SecurityPledge `json:"securities"`
	ActivePledges      []SecurityPledge `json:"active_pledges"`
	TotalSecurities    int              `json:"total_securities"`
	ActivePledgesCount int              `json:"active_pledges_count"`
}

// LoanDetails bundles a loan with its schedule and transaction history.
type LoanDetails struct {
	Loan              *Loan              `json:"loan"`
	RepaymentSchedule []ScheduleRow      `json:"repayment_schedule"`
	Disbursements     []LoanDisbursement `json:"disbursements"`
	Repayments        []LoanRepayment    `json:"repayments"`
}

// ScheduleRow is one installment of a repayment schedule.
type ScheduleRow struct {
	PaymentDate       string          `json:"payment_date"`
	PrincipalAmount   decimal.Decimal `json:"principal_amount"`
	InterestAmount    decimal.Decimal `json:"interest_amount"`
	TotalPayment      decimal.Decimal `json:"total_payment"`
	BalanceLoanAmount decimal.Decimal `json:"balance_loan_amount"`
	IsPaid            bool            `json:"is_paid"`
}

// Report is a generic tabular report payload.
type Report struct {
	Columns    []ReportColumn           `json:"columns"`
	Data       []map[string]interface{} `json:"data"`
	TotalCount int                      `json:"total_count"`
}

// ReportColumn describes one report column.
type ReportColumn struct {
	Fieldname string `json:"fieldname"`
	Label     string `json:"label"`
	Fieldtype string `json:"fieldtype,omitempty"`
}
