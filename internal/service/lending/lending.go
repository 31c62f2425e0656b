// internal/service/lending/lending.go
package lending

import (
	"context"
	"encoding/json"
	"fmt"

	"lenddesk-service/internal/domain/lending"
	"lenddesk-service/internal/erp"

	"go.uber.org/zap"
)

// ERP doctypes owned by the lending backend.
const (
	doctypeApplication  = "Loan Application"
	doctypeLoan         = "Loan"
	doctypeDisbursement = "Loan Disbursement"
	doctypeRepayment    = "Loan Repayment"
	doctypeProduct      = "Loan Product"
	doctypeBorrower     = "Borrower"
)

// LendingService is a thin proxy over the ERP's lending module. All domain
// logic (interest, scheduling, ledger postings, document workflow) lives
// server-side; this service only shapes requests and responses.
//
// Summary and dashboard reads degrade to empty payloads on backend failure so
// a flaky report endpoint never blanks a whole page; writes always propagate
// their errors.
type LendingService struct {
	erp    *erp.Client
	logger *zap.Logger
}

func NewLendingService(erpClient *erp.Client, logger *zap.Logger) *LendingService {
	return &LendingService{
		erp:    erpClient,
		logger: logger,
	}
}

// ========== Loan Applications ==========

func (s *LendingService) ListApplications(ctx context.Context) ([]lending.LoanApplication, error) {
	var apps []lending.LoanApplication
	err := s.erp.GetList(ctx, doctypeApplication, erp.ListOptions{
		Fields: []string{
			"name", "applicant_type", "applicant", "applicant_name",
			"loan_product", "loan_amount", "rate_of_interest",
			"repayment_periods", "repayment_schedule_type", "status", "creation",
		},
		OrderBy: "creation desc",
	}, &apps)
	if err != nil {
		return nil, fmt.Errorf("failed to list loan applications: %w", err)
	}
	return apps, nil
}

func (s *LendingService) GetApplication(ctx context.Context, name string) (*lending.LoanApplication, error) {
	var app lending.LoanApplication
	if err := s.erp.GetResource(ctx, doctypeApplication, name, &app); err != nil {
		return nil, fmt.Errorf("failed to get loan application %s: %w", name, err)
	}
	return &app, nil
}

// CreateApplication goes through the backend's safe creation method, which
// owns validation and workflow placement.
func (s *LendingService) CreateApplication(ctx context.Context, form *lending.LoanApplicationForm) (*lending.LoanApplication, error) {
	payload, err := json.Marshal(form)
	if err != nil {
		return nil, fmt.Errorf("failed to encode application: %w", err)
	}

	var app lending.LoanApplication
	err = s.erp.CallMethod(ctx, "lending.api.create_loan_application_safe", map[string]string{
		"application_data": string(payload),
	}, &app)
	if err != nil {
		return nil, fmt.Errorf("failed to create loan application: %w", err)
	}
	return &app, nil
}

func (s *LendingService) UpdateApplication(ctx context.Context, name string, form *lending.LoanApplicationForm) (*lending.LoanApplication, error) {
	var app lending.LoanApplication
	if err := s.erp.UpdateResource(ctx, doctypeApplication, name, form, &app); err != nil {
		return nil, fmt.Errorf("failed to update loan application %s: %w", name, err)
	}
	return &app, nil
}

func (s *LendingService) ApplicationsSummary(ctx context.Context) *lending.ApplicationsSummary {
	var summary lending.ApplicationsSummary
	if err := s.erp.CallMethod(ctx, "lending.api.get_loan_applications_summary", nil, &summary); err != nil {
		s.logger.Warn("failed to load applications summary", zap.Error(err))
		return &lending.ApplicationsSummary{Applications: []lending.LoanApplication{}}
	}
	return &summary
}

// ConvertApplicationToLoan promotes an approved application into a loan.
func (s *LendingService) ConvertApplicationToLoan(ctx context.Context, applicationName string) (string, error) {
	var loanName string
	err := s.erp.CallMethod(ctx,
		"lending.loan_management.doctype.loan_application.loan_application.create_loan",
		map[string]string{"loan_application": applicationName},
		&loanName,
	)
	if err != nil {
		return "", fmt.Errorf("failed to convert application %s to loan: %w", applicationName, err)
	}
	return loanName, nil
}

// ========== Loans ==========

func (s *LendingService) ListLoans(ctx context.Context) ([]lending.Loan, error) {
	var loans []lending.Loan
	err := s.erp.GetList(ctx, doctypeLoan, erp.ListOptions{
		Fields: []string{
			"name", "applicant_type", "applicant", "applicant_name",
			"loan_product", "loan_amount", "disbursed_amount", "rate_of_interest",
			"repayment_periods", "repayment_schedule_type", "status", "creation",
		},
		OrderBy: "creation desc",
	}, &loans)
	if err != nil {
		return nil, fmt.Errorf("failed to list loans: %w", err)
	}
	return loans, nil
}

func (s *LendingService) GetLoan(ctx context.Context, name string) (*lending.Loan, error) {
	var loan lending.Loan
	if err := s.erp.GetResource(ctx, doctypeLoan, name, &loan); err != nil {
		return nil, fmt.Errorf("failed to get loan %s: %w", name, err)
	}
	return &loan, nil
}

func (s *LendingService) LoansSummary(ctx context.Context) *lending.LoansSummary {
	var summary lending.LoansSummary
	if err := s.erp.CallMethod(ctx, "lending.api.get_loans_summary", nil, &summary); err != nil {
		s.logger.Warn("failed to load loans summary", zap.Error(err))
		return &lending.LoansSummary{Loans: []lending.Loan{}}
	}
	return &summary
}

func (s *LendingService) LoanDetails(ctx context.Context, loanID string) (*lending.LoanDetails, error) {
	var details lending.LoanDetails
	err := s.erp.CallMethod(ctx, "lending.api.get_loan_details", map[string]string{
		"loan_id": loanID,
	}, &details)
	if err != nil {
		return nil, fmt.Errorf("failed to get loan details for %s: %w", loanID, err)
	}
	return &details, nil
}

func (s *LendingService) RepaymentSchedule(ctx context.Context, loanID string) ([]lending.ScheduleRow, error) {
	var payload struct {
		Schedule []lending.ScheduleRow `json:"schedule"`
	}
	err := s.erp.CallMethod(ctx, "lending.api.get_repayment_schedule", map[string]string{
		"loan_id": loanID,
	}, &payload)
	if err != nil {
		return nil, fmt.Errorf("failed to get repayment schedule for %s: %w", loanID, err)
	}
	return payload.Schedule, nil
}

// ========== Disbursements ==========

func (s *LendingService) ListDisbursements(ctx context.Context) ([]lending.LoanDisbursement, error) {
	var rows []lending.LoanDisbursement
	err := s.erp.GetList(ctx, doctypeDisbursement, erp.ListOptions{
		Fields:  []string{"name", "against_loan", "disbursement_date", "disbursed_amount", "status"},
		OrderBy: "disbursement_date desc",
	}, &rows)
	if err != nil {
		return nil, fmt.Errorf("failed to list disbursements: %w", err)
	}
	return rows, nil
}

func (s *LendingService) CreateDisbursement(ctx context.Context, form *lending.DisbursementForm) (*lending.LoanDisbursement, error) {
	var row lending.LoanDisbursement
	if err := s.erp.CallMethod(ctx, "lending.api.create_loan_disbursement", form, &row); err != nil {
		return nil, fmt.Errorf("failed to create disbursement: %w", err)
	}
	return &row, nil
}

func (s *LendingService) DisbursementsSummary(ctx context.Context) *lending.DisbursementsSummary {
	var summary lending.DisbursementsSummary
	if err := s.erp.CallMethod(ctx, "lending.api.get_disbursements_summary", nil, &summary); err != nil {
		s.logger.Warn("failed to load disbursements summary", zap.Error(err))
		return &lending.DisbursementsSummary{Disbursements: []lending.LoanDisbursement{}}
	}
	return &summary
}

// ========== Repayments ==========

func (s *LendingService) ListRepayments(ctx context.Context) ([]lending.LoanRepayment, error) {
	var rows []lending.LoanRepayment
	err := s.erp.GetList(ctx, doctypeRepayment, erp.ListOptions{
		Fields:  []string{"name", "against_loan", "posting_date", "amount_paid", "status"},
		OrderBy: "posting_date desc",
	}, &rows)
	if err != nil {
		return nil, fmt.Errorf("failed to list repayments: %w", err)
	}
	return rows, nil
}

func (s *LendingService) CreateRepayment(ctx context.Context, form *lending.RepaymentForm) (*lending.LoanRepayment, error) {
	var row lending.LoanRepayment
	if err := s.erp.CallMethod(ctx, "lending.api.create_loan_repayment", form, &row); err != nil {
		return nil, fmt.Errorf("failed to create repayment: %w", err)
	}
	return &row, nil
}

func (s *LendingService) RepaymentsSummary(ctx context.Context) *lending.RepaymentsSummary {
	var summary lending.RepaymentsSummary
	if err := s.erp.CallMethod(ctx, "lending.api.get_repayments_summary", nil, &summary); err != nil {
		s.logger.Warn("failed to load repayments summary", zap.Error(err))
		return &lending.RepaymentsSummary{Repayments: []lending.LoanRepayment{}}
	}
	return &summary
}

// ========== Borrowers ==========

func (s *LendingService) ListBorrowers(ctx context.Context) ([]lending.Borrower, error) {
	var rows []lending.Borrower
	err := s.erp.GetList(ctx, doctypeBorrower, erp.ListOptions{
		Fields:  []string{"name", "customer_name", "customer_type", "mobile_no", "email_id", "status"},
		OrderBy: "customer_name",
	}, &rows)
	if err != nil {
		return nil, fmt.Errorf("failed to list borrowers: %w", err)
	}
	return rows, nil
}

func (s *LendingService) GetBorrower(ctx context.Context, name string) (*lending.Borrower, error) {
	var row lending.Borrower
	if err := s.erp.GetResource(ctx, doctypeBorrower, name, &row); err != nil {
		return nil, fmt.Errorf("failed to get borrower %s: %w", name, err)
	}
	return &row, nil
}

func (s *LendingService) CreateBorrower(ctx context.Context, form *lending.BorrowerForm) (*lending.Borrower, error) {
	payload, err := json.Marshal(form)
	if err != nil {
		return nil, fmt.Errorf("failed to encode borrower: %w", err)
	}

	var row lending.Borrower
	err = s.erp.CallMethod(ctx, "lending.api.create_borrower", map[string]string{
		"borrower_data": string(payload),
	}, &row)
	if err != nil {
		return nil, fmt.Errorf("failed to create borrower: %w", err)
	}
	return &row, nil
}

func (s *LendingService) UpdateBorrower(ctx context.Context, name string, form *lending.BorrowerForm) (*lending.Borrower, error) {
	var row lending.Borrower
	if err := s.erp.UpdateResource(ctx, doctypeBorrower, name, form, &row); err != nil {
		return nil, fmt.Errorf("failed to update borrower %s: %w", name, err)
	}
	return &row, nil
}

func (s *LendingService) BorrowersSummary(ctx context.Context) *lending.BorrowersSummary {
	var summary lending.BorrowersSummary
	if err := s.erp.CallMethod(ctx, "lending.api.get_borrowers_summary", nil, &summary); err != nil {
		s.logger.Warn("failed to load borrowers summary", zap.Error(err))
		return &lending.BorrowersSummary{Borrowers: []lending.Borrower{}}
	}
	return &summary
}

// ========== Securities ==========

func (s *LendingService) SecuritiesSummary(ctx context.Context) *lending.SecuritiesSummary {
	var summary lending.SecuritiesSummary
	if err := s.erp.CallMethod(ctx, "lending.api.get_securities_summary", nil, &summary); err != nil {
		s.logger.Warn("failed to load securities summary", zap.Error(err))
		return &lending.SecuritiesSummary{
			Securities:    []lending.SecurityPledge{},
			ActivePledges: []lending.SecurityPledge{},
		}
	}
	return &summary
}

// ========== Loan Products ==========

func (s *LendingService) ListProducts(ctx context.Context) ([]lending.LoanProduct, error) {
	var rows []lending.LoanProduct
	err := s.erp.GetList(ctx, doctypeProduct, erp.ListOptions{
		Fields: []string{"name", "product_name", "maximum_loan_amount", "rate_of_interest", "status"},
	}, &rows)
	if err != nil {
		return nil, fmt.Errorf("failed to list loan products: %w", err)
	}
	return rows, nil
}

// ========== Dashboard ==========

func (s *LendingService) DashboardMetrics(ctx context.Context) *lending.DashboardMetrics {
	var metrics lending.DashboardMetrics
	if err := s.erp.CallMethod(ctx, "lending.api.get_dashboard_metrics", nil, &metrics); err != nil {
		s.logger.Warn("failed to load dashboard metrics", zap.Error(err))
		return &lending.DashboardMetrics{
			MonthlyDisbursements: []lending.ChartData{},
			PortfolioByStatus:    []lending.ChartData{},
		}
	}
	return &metrics
}

func (s *LendingService) RecentActivities(ctx context.Context) []lending.RecentActivity {
	var rows []lending.RecentActivity
	if err := s.erp.CallMethod(ctx, "lending.api.get_recent_activities", nil, &rows); err != nil {
		s.logger.Warn("failed to load recent activities", zap.Error(err))
		return []lending.RecentActivity{}
	}
	return rows
}

// ========== Reports ==========

func (s *LendingService) report(ctx context.Context, method string, filters map[string]interface{}) *lending.Report {
	encoded, err := json.Marshal(filters)
	if err != nil {
		s.logger.Warn("failed to encode report filters", zap.String("method", method), zap.Error(err))
		encoded = []byte("{}")
	}

	var rep lending.Report
	err = s.erp.CallMethod(ctx, method, map[string]string{"filters": string(encoded)}, &rep)
	if err != nil {
		s.logger.Warn("failed to load report", zap.String("method", method), zap.Error(err))
		return &lending.Report{Columns: []lending.ReportColumn{}, Data: []map[string]interface{}{}}
	}
	return &rep
}

func (s *LendingService) RepaymentReport(ctx context.Context, filters map[string]interface{}) *lending.Report {
	return s.report(ctx, "lending.api.get_loan_repayment_report", filters)
}

func (s *LendingService) SecurityStatusReport(ctx context.Context, filters map[string]interface{}) *lending.Report {
	return s.report(ctx, "lending.api.get_loan_security_status_report", filters)
}

func (s *LendingService) InterestReport(ctx context.Context, filters map[string]interface{}) *lending.Report {
	return s.report(ctx, "lending.api.get_loan_interest_report", filters)
}
