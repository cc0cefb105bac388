package schema

// Fixed values of the ERP import format.
const (
	Token = "76af514b-a280-47b8-b5c1-95d8229e9408"

	DocTypeID = 1000134
	OrgID     = 1000006
	UOMID     = 1000020

	DefaultValidFrom = "20250306"
	DefaultValidTo   = "20250315"

	periodSeparator = " - "
)

// Placeholder tier written for every scheme. The source forms do not carry
// break ranges in a parseable form yet.
const (
	placeholderBreakValue    = 100
	placeholderBreakValueTo  = 299
	placeholderQtyAllocated  = 500
	placeholderBreakDiscount = 5.04
)

// productIDs maps the PRODUCT CATEGORY text of a form to the ERP product id.
var productIDs = map[string]int64{
	"MILA FLOUR BAG @1KG": 1002979,
}

// ProductID returns the ERP product id for a PRODUCT CATEGORY value, or 0
// when the product is not mapped.
func ProductID(category string) int64 {
	return productIDs[category]
}
