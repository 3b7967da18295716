package tax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taxpilot/tax-assistant/internal/models"
)

func TestDefaultDocumentCatalog(t *testing.T) {
	catalog := DefaultDocumentCatalog()

	assert.Len(t, catalog, 11)
	assert.Equal(t, 2, catalog.RequiredCount())

	entry, ok := catalog.Lookup(models.DocTypeForm16)
	require.True(t, ok)
	assert.True(t, entry.Required)
	assert.Contains(t, entry.RequiredFields, "financial_year")
	assert.Contains(t, entry.OptionalFields, "tds")

	entry, ok = catalog.Lookup(models.DocTypeSalarySlip)
	require.True(t, ok)
	assert.False(t, entry.Required)

	_, ok = catalog.Lookup("passport")
	assert.False(t, ok)
}

func TestCatalogValidType(t *testing.T) {
	catalog := DefaultDocumentCatalog()

	assert.True(t, catalog.ValidType(models.DocTypeRentReceipt))
	assert.True(t, catalog.ValidType(models.DocTypeMedicalBill))
	assert.False(t, catalog.ValidType("passport"))
	assert.False(t, catalog.ValidType(""))
}

func TestCatalogFieldSpecs(t *testing.T) {
	specs := DefaultDocumentCatalog().FieldSpecs()

	require.Len(t, specs, 11)
	assert.Contains(t, specs[models.DocTypeSalarySlip].RequiredFields, "month")
	assert.Contains(t, specs[models.DocTypeRentReceipt].OptionalFields, "monthly_rent")
}
