package models

// Document type constants for the eleven supported tax document kinds
const (
	DocTypeSalarySlip        = "salary_slip"
	DocTypeForm16            = "form_16"
	DocTypeForm26AS          = "form_26as"
	DocTypeBankInterestCert  = "bank_interest_certificate"
	DocTypeInvestmentProof   = "investment_proof"
	DocTypeHomeLoanStatement = "home_loan_statement"
	DocTypeRentReceipt       = "rent_receipt"
	DocTypeCapitalGains      = "capital_gains"
	DocTypeDonationReceipt   = "donation_receipt"
	DocTypeMedicalBill       = "medical_bill"
	DocTypeEducationLoan     = "education_loan"
)

// Insight type constants
const (
	InsightTypeOpportunity  = "opportunity"
	InsightTypeRisk         = "risk"
	InsightTypeDeadline     = "deadline"
	InsightTypeOptimization = "optimization"
)

// Priority constants, ordered critical > high > medium > low
const (
	PriorityCritical = "critical"
	PriorityHigh     = "high"
	PriorityMedium   = "medium"
	PriorityLow      = "low"
)

// Severity constants for consistency findings
const (
	SeverityHigh   = "high"
	SeverityMedium = "medium"
	SeverityLow    = "low"
)

// Consistency report status constants
const (
	ConsistencyStatusClean  = "clean"
	ConsistencyStatusIssues = "issues_found"
)

// Gap analysis status constants
const (
	GapStatusReady      = "ready"
	GapStatusIncomplete = "incomplete"
)

// Health level constants
const (
	HealthExcellent        = "excellent"
	HealthGood             = "good"
	HealthFair             = "fair"
	HealthNeedsImprovement = "needs_improvement"
)

// Document processing status constants
const (
	DocumentStatusProcessed = "processed"
)

// Tax regime constants
const (
	RegimeOld = "old"
	RegimeNew = "new"
)

// PriorityRank maps a priority to its sort rank (lower sorts first).
func PriorityRank(priority string) int {
	switch priority {
	case PriorityCritical:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	default:
		return 3
	}
}
