package models

// TableRow is one normalized row of a price/discount table. The last two
// columns are optional in the source layout and marshal as null when absent.
type TableRow struct {
	Product        string  `json:"product"`
	UOM            string  `json:"UOM"`
	PriceList      string  `json:"price_list"`
	DiscReg        string  `json:"DISC % REG"`
	DiscIOM        string  `json:"DISC % IOM"`
	RBPDist        string  `json:"RBP DIST"`
	AdditionalDisc *string `json:"Additional Disc % D 1"`
	CutPriceOTB    *string `json:"CUT PRICE OTB"`
}

// RawExtraction is the tables-mode output: the flat field record and the
// table rows of every page that produced at least one row.
type RawExtraction struct {
	Metadata Metadata     `json:"metadata"`
	Tables   [][]TableRow `json:"tables"`
}

// Metadata is the flat field record. Keys keep the order in which the
// fields were first found in the document.
type Metadata struct {
	Keys   []string
	Values map[string]string
}

// Get returns the value of field, or "" when it is absent.
func (m Metadata) Get(field string) string {
	return m.Values[field]
}

// MarshalJSON writes the record as an object in key order.
func (m Metadata) MarshalJSON() ([]byte, error) {
	return marshalOrdered(m.Keys, func(key string) any { return m.Values[key] })
}
