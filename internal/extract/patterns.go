package extract

import (
	"regexp"
	"strings"
)

// Field names of the labelled header block. They double as the keys of a
// FieldRecord.
const (
	FieldNomor           = "NOMOR"
	FieldProductCategory = "PRODUCT CATEGORY"
	FieldBrand           = "BRAND"
	FieldChannel         = "CHANNEL"
	FieldRegion          = "REGION"
	FieldSubRegion       = "SUB REGION"
	FieldDistributor     = "DISTRIBUTOR"
	FieldPromoType       = "PROMO TYPE"
	FieldSubPromoType    = "SUB PROMO TYPE"
	FieldMechanism       = "MECHANISM"
	FieldRefDoc          = "REF DOC"
	FieldRefCPNo         = "REF CP NO"
	FieldPeriodeCP       = "PERIODE CP"
	FieldGroupOutlet     = "GROUP OUTLET"
	FieldCompensation    = "COMPENSATION"
)

// Checkbox group names.
const (
	FieldCostCategory = "COST CATEGORY"
	FieldTipeCP       = "TIPE CP"
	FieldTipeClaim    = "TIPE CLAIM"
	FieldClaimBased   = "CLAIM BASED"
)

// LabelRule describes one labelled field. The value starts after the label
// and its colon and ends at Until, the label printed next on the same line
// in the form layout. An empty Until captures to the end of the line.
type LabelRule struct {
	Field string
	Label string
	Until string

	// Multiline lets the value span lines. It ends at Until or at the end
	// of the text.
	Multiline bool
}

// GroupRule describes one checkbox group. The group's span runs from Label
// to Until (the next group's label) or to the end of the text.
type GroupRule struct {
	Field string
	Label string
	Until string
}

// The boundaries below follow the two-column layout of the form: each
// label's value stops where the label to its right begins. They depend on
// that order. A document that moves a label, or prints a value containing
// the next label, will truncate or over-capture the field.
var labelRules = []LabelRule{
	{Field: FieldNomor, Label: "NOMOR"},
	{Field: FieldProductCategory, Label: "PRODUCT CATEGORY", Until: "REF DOC"},
	{Field: FieldBrand, Label: "BRAND", Until: "REF CP NO"},
	{Field: FieldChannel, Label: "CHANNEL", Until: "PERIODE CP"},
	{Field: FieldRegion, Label: "REGION", Until: "GROUP OUTLET"},
	{Field: FieldSubRegion, Label: "SUB REGION"},
	{Field: FieldDistributor, Label: "DISTRIBUTOR"},
	{Field: FieldPromoType, Label: "PROMO TYPE", Until: "COMPENSATION"},
	{Field: FieldSubPromoType, Label: "SUB PROMO TYPE"},
	{Field: FieldMechanism, Label: "MECHANISM", Until: "DISCOUNT PROMOTION", Multiline: true},
	{Field: FieldRefDoc, Label: "REF DOC"},
	{Field: FieldRefCPNo, Label: "REF CP NO"},
	{Field: FieldPeriodeCP, Label: "PERIODE CP"},
	{Field: FieldGroupOutlet, Label: "GROUP OUTLET", Until: "SUB REGION"},
	{Field: FieldCompensation, Label: "COMPENSATION", Until: "SUB PROMO TYPE"},
}

// Checkbox groups appear in this order; each span ends at the next label.
var groupRules = []GroupRule{
	{Field: FieldCostCategory, Label: "COST CATEGORY", Until: "TIPE CP"},
	{Field: FieldTipeCP, Label: "TIPE CP", Until: "TIPE CLAIM"},
	{Field: FieldTipeClaim, Label: "TIPE CLAIM", Until: "CLAIM BASED"},
	{Field: FieldClaimBased, Label: "CLAIM BASED", Until: "MECHANISM"},
}

// LabelRules returns a copy of the labelled-field catalogue.
func LabelRules() []LabelRule {
	return append([]LabelRule(nil), labelRules...)
}

// GroupRules returns a copy of the checkbox-group catalogue.
func GroupRules() []GroupRule {
	return append([]GroupRule(nil), groupRules...)
}

// Pattern returns the expression matching the rule's value in its first
// capture group.
func (r LabelRule) Pattern() string {
	label := regexp.QuoteMeta(r.Label)
	switch {
	case r.Multiline:
		return `(?is)` + label + `\s*:\s*(.*?)(?:\s*` + regexp.QuoteMeta(r.Until) + `|\z)`
	case r.Until == "":
		return `(?i)` + label + `\s*:\s*(.*)`
	default:
		return `(?i)` + label + `\s*:\s*(.*?)\s*` + regexp.QuoteMeta(r.Until)
	}
}

// Pattern returns the expression matching the group's span in its first
// capture group.
func (g GroupRule) Pattern() string {
	return `(?is)` + regexp.QuoteMeta(g.Label) + `\s*(.*?)\s*(?:` + regexp.QuoteMeta(g.Until) + `|\z)`
}

// Glyphs are the characters that mark checkbox states in the text layer.
type Glyphs struct {
	Checked   string
	Unchecked string
}

// DefaultGlyphs are the ballot-box characters used by the current forms.
var DefaultGlyphs = Glyphs{Checked: "☑", Unchecked: "☐"}

// itemPattern matches a checked glyph followed by its item text, which runs
// up to the next glyph of either kind.
func (g Glyphs) itemPattern() string {
	checked := classOf(g.Checked)
	return `[` + checked + `]\s*([^` + checked + classOf(g.Unchecked) + `]+)`
}

func classOf(glyphs string) string {
	var b strings.Builder
	for _, r := range glyphs {
		if r == '-' {
			// QuoteMeta leaves '-' alone but it forms ranges inside a class.
			b.WriteString(`\-`)
			continue
		}
		b.WriteString(regexp.QuoteMeta(string(r)))
	}
	return b.String()
}
