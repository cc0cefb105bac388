package schema

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"discountocr/internal/extract"
	"discountocr/pkg/models"
)

func TestMap_MatchesGolden(t *testing.T) {
	record := extract.FieldRecord{
		extract.FieldNomor:           "CP/2025/0001",
		extract.FieldProductCategory: "MILA FLOUR BAG @1KG",
		extract.FieldBrand:           "Tepung Mila <Ré & Co>",
		extract.FieldDistributor:     "123 Some Co",
		extract.FieldPeriodeCP:       "01/03/2025 - 15/03/2025",
	}
	customers := []models.CustomerRef{{CBPartnerID: 4521}}

	got, err := Marshal(Map(record, customers))
	require.NoError(t, err)

	want, err := os.ReadFile(filepath.Join("testdata", "scheme.golden.json"))
	require.NoError(t, err)
	assert.Equal(t, string(want), string(got))
}

func TestMap_IsIdempotent(t *testing.T) {
	record := extract.FieldRecord{extract.FieldNomor: "X", extract.FieldDistributor: "D 77"}
	customers := []models.CustomerRef{{CBPartnerID: 1}, {CBPartnerID: 1}}

	first, err := Marshal(Map(record, customers))
	require.NoError(t, err)
	second, err := Marshal(Map(record, customers))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestMap_EmptyRecord(t *testing.T) {
	doc := Map(extract.FieldRecord{}, nil)

	assert.Equal(t, "", doc.Name)
	assert.Equal(t, "", doc.Description)
	assert.Zero(t, doc.VendorID)
	assert.Equal(t, DefaultValidFrom, doc.ValidFrom)
	assert.Equal(t, DefaultValidTo, doc.ValidTo)
	require.Len(t, doc.Breaks, 1)
	assert.Zero(t, doc.Breaks[0].MProductID)
	assert.Nil(t, doc.Breaks[0].MProductCategoryID)

	data, err := Marshal(doc)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, []any{}, decoded["list_customer"], "no customers must encode as []")

	br := decoded["list_break"].([]any)[0].(map[string]any)
	for _, key := range []string{"list_product", "list_customer", "list_bonus", "list_budget"} {
		assert.Equal(t, []any{}, br[key], key)
	}
	assert.Contains(t, br, "m_product_category_id")
	assert.Nil(t, br["m_product_category_id"])
}

func TestVendorID(t *testing.T) {
	tests := []struct {
		name        string
		distributor string
		want        int64
	}{
		{name: "leading_digits", distributor: "123 Some Co", want: 123},
		{name: "first_run_wins", distributor: "PT ABC 42 / 7", want: 42},
		{name: "absent", distributor: "", want: 0},
		{name: "no_digits", distributor: "PT SUMBER", want: 0},
		{name: "overflow", distributor: "99999999999999999999", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VendorID(tt.distributor))
		})
	}
}

func TestValidityPeriod(t *testing.T) {
	tests := []struct {
		name     string
		periode  string
		from, to string
	}{
		{name: "range", periode: "01/03/2025 - 15/03/2025", from: "01032025", to: "15032025"},
		{name: "absent", periode: "", from: DefaultValidFrom, to: DefaultValidTo},
		{name: "no_separator", periode: "01/03/2025-15/03/2025", from: DefaultValidFrom, to: DefaultValidTo},
		{name: "extra_parts_ignored", periode: "a - b - c", from: "a", to: "b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, to := ValidityPeriod(tt.periode)
			assert.Equal(t, tt.from, from)
			assert.Equal(t, tt.to, to)
		})
	}
}

func TestProductID(t *testing.T) {
	assert.Equal(t, int64(1002979), ProductID("MILA FLOUR BAG @1KG"))
	assert.Zero(t, ProductID("mila flour bag @1kg"))
	assert.Zero(t, ProductID(""))
}

func TestMarshal_NoTrailingNewlineNoHTMLEscape(t *testing.T) {
	data, err := Marshal(map[string]string{"k": "<a & b>"})
	require.NoError(t, err)
	assert.Equal(t, "{\n    \"k\": \"<a & b>\"\n}", string(data))
}
