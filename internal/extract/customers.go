package extract

import (
	"regexp"
	"strconv"

	"discountocr/pkg/models"
)

// customerPattern is case-sensitive: lower-case "id outlet" is a different
// label on the form.
var customerPattern = regexp.MustCompile(`ID OUTLET\s*:\s*(\d+)`)

// ExtractCustomers returns one CustomerRef per "ID OUTLET: <digits>" in
// text, in text order. Duplicates are kept. Ids that overflow int64 are
// skipped.
func ExtractCustomers(text string) []models.CustomerRef {
	var refs []models.CustomerRef
	for _, m := range customerPattern.FindAllStringSubmatch(text, -1) {
		id, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			continue
		}
		refs = append(refs, models.CustomerRef{CBPartnerID: id})
	}
	return refs
}
