package tax

import "github.com/taxpilot/tax-assistant/internal/models"

// CatalogEntry describes one document type: whether the filing flow
// requires it, a human description, and the metadata fields the
// extraction pipeline should produce for it.
type CatalogEntry struct {
	Type           string
	Required       bool
	Description    string
	RequiredFields []string
	OptionalFields []string
}

// DocumentCatalog is the fixed catalog of supported document types,
// ordered for deterministic iteration. It is immutable configuration
// injected into the components that need it.
type DocumentCatalog []CatalogEntry

// DefaultDocumentCatalog returns the catalog for individual ITR filing:
// Form 16 and Form 26AS are required, the remaining nine types are
// optional evidence.
func DefaultDocumentCatalog() DocumentCatalog {
	return DocumentCatalog{
		{
			Type:           models.DocTypeForm16,
			Required:       true,
			Description:    "Form 16 (Part A & B) - Salary certificate from employer",
			RequiredFields: []string{"financial_year", "source"},
			OptionalFields: []string{"employer_name", "employee_id", "total_income", "tds"},
		},
		{
			Type:           models.DocTypeForm26AS,
			Required:       true,
			Description:    "Form 26AS/AIS - Tax credit statement",
			RequiredFields: []string{"financial_year"},
			OptionalFields: []string{"pan", "total_income", "total_tds"},
		},
		{
			Type:           models.DocTypeSalarySlip,
			Description:    "Salary slips for all months",
			RequiredFields: []string{"month", "year", "employer"},
			OptionalFields: []string{"employee_id", "gross_salary", "net_salary", "tds"},
		},
		{
			Type:           models.DocTypeBankInterestCert,
			Description:    "Bank interest certificates",
			RequiredFields: []string{"bank_name", "financial_year"},
			OptionalFields: []string{"account_number", "interest_amount", "account_type"},
		},
		{
			Type:           models.DocTypeInvestmentProof,
			Description:    "Investment proofs for deductions",
			RequiredFields: []string{"investment_type", "section", "financial_year"},
			OptionalFields: []string{"amount", "institution", "policy_number"},
		},
		{
			Type:           models.DocTypeHomeLoanStatement,
			Description:    "Home loan interest certificate",
			RequiredFields: []string{"lender", "component", "financial_year"},
			OptionalFields: []string{"loan_account_number", "amount", "property_address"},
		},
		{
			Type:           models.DocTypeRentReceipt,
			Description:    "Rent receipts for HRA claim",
			RequiredFields: []string{"period"},
			OptionalFields: []string{"landlord_pan", "monthly_rent", "property_address"},
		},
		{
			Type:           models.DocTypeCapitalGains,
			Description:    "Capital gains statements from brokers",
			RequiredFields: []string{"asset_type", "broker", "financial_year"},
			OptionalFields: []string{"gains_amount", "transaction_type", "asset_name"},
		},
		{
			Type:           models.DocTypeDonationReceipt,
			Description:    "Donation receipts for Section 80G",
			RequiredFields: []string{"trust_name", "deduction_rate", "financial_year"},
			OptionalFields: []string{"amount", "trust_pan", "donation_type"},
		},
		{
			Type:           models.DocTypeMedicalBill,
			Description:    "Medical bills for Section 80D claims",
			RequiredFields: []string{"relation", "section"},
			OptionalFields: []string{"patient_name", "hospital", "amount", "illness_type"},
		},
		{
			Type:           models.DocTypeEducationLoan,
			Description:    "Education loan interest certificate",
			RequiredFields: []string{"lender", "student", "financial_year"},
			OptionalFields: []string{"loan_account_number", "interest_amount", "institution"},
		},
	}
}

// Lookup returns the entry for a document type.
func (c DocumentCatalog) Lookup(docType string) (CatalogEntry, bool) {
	for _, entry := range c {
		if entry.Type == docType {
			return entry, true
		}
	}
	return CatalogEntry{}, false
}

// ValidType reports whether the document type is in the catalog.
func (c DocumentCatalog) ValidType(docType string) bool {
	_, ok := c.Lookup(docType)
	return ok
}

// RequiredCount returns the number of required document types.
func (c DocumentCatalog) RequiredCount() int {
	n := 0
	for _, entry := range c {
		if entry.Required {
			n++
		}
	}
	return n
}

// FieldSpecs returns the per-type metadata field requirements, keyed by
// document type, for the API surface and the extraction prompt.
func (c DocumentCatalog) FieldSpecs() map[string]models.DocumentTypeSpec {
	specs := make(map[string]models.DocumentTypeSpec, len(c))
	for _, entry := range c {
		specs[entry.Type] = models.DocumentTypeSpec{
			RequiredFields: entry.RequiredFields,
			OptionalFields: entry.OptionalFields,
		}
	}
	return specs
}
