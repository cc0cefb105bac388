package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const headerPage = `DISCOUNT SCHEME FORM
NOMOR : CP/2025/0001
PRODUCT CATEGORY : FLOUR REF DOC : RD-17
BRAND : MILA REF CP NO : 889
CHANNEL : GT PERIODE CP : 2025/03/06 - 2025/03/15
REGION : WEST JAVA GROUP OUTLET : RETAIL SUB REGION : BANDUNG
DISTRIBUTOR : 1000123 PT SUMBER
PROMO TYPE : DISCOUNT COMPENSATION : OFF INVOICE SUB PROMO TYPE : VOLUME
COST CATEGORY ☑ TRADE ☐ CONSUMER
TIPE CP ☐ NATIONAL ☑ REGIONAL
TIPE CLAIM ☑ CASH ☑ PRODUCT
CLAIM BASED ☐ INVOICE
MECHANISM : Buy 100 bags
get 5% off
DISCOUNT PROMOTION
ID OUTLET : 700101`

func TestFieldExtractor_Extract(t *testing.T) {
	fe := MustFieldExtractor(DefaultGlyphs)

	got := fe.Extract(headerPage)

	assert.Equal(t, FieldRecord{
		FieldNomor:           "CP/2025/0001",
		FieldProductCategory: "FLOUR",
		FieldRefDoc:          "RD-17",
		FieldBrand:           "MILA",
		FieldRefCPNo:         "889",
		FieldChannel:         "GT",
		FieldPeriodeCP:       "2025/03/06 - 2025/03/15",
		FieldRegion:          "WEST JAVA",
		FieldGroupOutlet:     "RETAIL",
		FieldSubRegion:       "BANDUNG",
		FieldDistributor:     "1000123 PT SUMBER",
		FieldPromoType:       "DISCOUNT",
		FieldCompensation:    "OFF INVOICE",
		FieldSubPromoType:    "VOLUME",
		FieldCostCategory:    "TRADE",
		FieldTipeCP:          "REGIONAL",
		FieldTipeClaim:       "CASH, PRODUCT",
		FieldMechanism:       "Buy 100 bags\nget 5% off",
	}, got)

	_, ok := got[FieldClaimBased]
	assert.False(t, ok, "groups without a checked item are omitted")
}

func TestFieldExtractor_LabelsAreCaseInsensitive(t *testing.T) {
	fe := MustFieldExtractor(DefaultGlyphs)

	got := fe.Extract("nomor:  X-1  \nBrand: Mila ref cp no: 1")

	assert.Equal(t, "X-1", got[FieldNomor])
	assert.Equal(t, "Mila", got[FieldBrand])
}

func TestFieldExtractor_FirstOccurrenceWins(t *testing.T) {
	fe := MustFieldExtractor(DefaultGlyphs)

	got := fe.Extract("NOMOR : A\nNOMOR : B")

	assert.Equal(t, "A", got[FieldNomor])
}

func TestFieldExtractor_MissingLabels(t *testing.T) {
	fe := MustFieldExtractor(DefaultGlyphs)

	assert.Empty(t, fe.Extract(""))
	assert.Empty(t, fe.Extract("nothing to see here"))

	got := fe.Extract("BRAND : MILA")
	_, ok := got[FieldBrand]
	assert.False(t, ok, "a bounded field needs its boundary label")
}

func TestFieldExtractor_MechanismRunsToEndOfText(t *testing.T) {
	fe := MustFieldExtractor(DefaultGlyphs)

	got := fe.Extract("MECHANISM :\n  line one\n  line two  \n")

	assert.Equal(t, "line one\n  line two", got[FieldMechanism])
}

func TestFieldExtractor_LastGroupRunsToEndOfText(t *testing.T) {
	fe := MustFieldExtractor(DefaultGlyphs)

	got := fe.Extract("CLAIM BASED ☐ INVOICE ☑ SALES OUT ☑  ")

	assert.Equal(t, "SALES OUT", got[FieldClaimBased])
}

func TestFieldExtractor_CustomGlyphs(t *testing.T) {
	tests := []struct {
		name   string
		glyphs Glyphs
		text   string
		want   string
	}{
		{
			name:   "several_checked_glyphs",
			glyphs: Glyphs{Checked: "✔☑", Unchecked: "☐✘"},
			text:   "COST CATEGORY ✔ TRADE ✘ CONSUMER ☑ OTHER",
			want:   "TRADE, OTHER",
		},
		{
			name:   "class_metacharacters",
			glyphs: Glyphs{Checked: "+-", Unchecked: "~"},
			text:   "COST CATEGORY + TRADE ~ CONSUMER - OTHER",
			want:   "TRADE, OTHER",
		},
		{
			name:   "no_unchecked_glyphs",
			glyphs: Glyphs{Checked: "*"},
			text:   "COST CATEGORY * TRADE * OTHER",
			want:   "TRADE, OTHER",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fe, err := NewFieldExtractor(tt.glyphs)
			require.NoError(t, err)
			assert.Equal(t, tt.want, fe.Extract(tt.text)[FieldCostCategory])
		})
	}
}

func TestNewFieldExtractor_RequiresCheckedGlyph(t *testing.T) {
	fe, err := NewFieldExtractor(Glyphs{Unchecked: "☐"})
	assert.Nil(t, fe)
	assert.Error(t, err)
}

func TestFieldRecord_Merge(t *testing.T) {
	record := FieldRecord{FieldNomor: "A", FieldBrand: "MILA"}

	record.Merge(FieldRecord{FieldNomor: "B", FieldRegion: "WEST"})

	assert.Equal(t, FieldRecord{FieldNomor: "B", FieldBrand: "MILA", FieldRegion: "WEST"}, record)
	assert.Equal(t, "", record.Get(FieldChannel))
}

func TestFieldRecord_KeysInCatalogueOrder(t *testing.T) {
	record := FieldRecord{
		FieldClaimBased:  "Sell In",
		"ZONE":           "1",
		FieldRefDoc:      "RD-1",
		FieldNomor:       "A",
		"AREA":           "2",
		FieldDistributor: "55",
	}

	assert.Equal(t, []string{FieldNomor, FieldDistributor, FieldRefDoc, FieldClaimBased, "AREA", "ZONE"}, record.Keys())
	assert.Empty(t, FieldRecord{}.Keys())
}

func TestRulePatterns(t *testing.T) {
	assert.Equal(t, `(?i)A\.B\s*:\s*(.*)`, LabelRule{Label: "A.B"}.Pattern())
	assert.Equal(t, `(?i)A\s*:\s*(.*?)\s*B C`, LabelRule{Label: "A", Until: "B C"}.Pattern())
	assert.Equal(t, `(?is)A\s*(.*?)\s*(?:B|\z)`, GroupRule{Label: "A", Until: "B"}.Pattern())

	rules := LabelRules()
	require.Len(t, rules, 15)
	rules[0].Label = "changed"
	assert.Equal(t, "NOMOR", LabelRules()[0].Label, "catalogue is returned by copy")
	assert.Len(t, GroupRules(), 4)
}
