// Package schema maps extracted discount-scheme fields onto the ERP import
// document and serializes it.
package schema

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"discountocr/internal/extract"
	"discountocr/pkg/models"
)

var digitRun = regexp.MustCompile(`\d+`)

// Map builds the import document from the merged field record and the
// customer references of all pages. Missing or malformed fields fall back
// to defaults; Map never fails.
func Map(record extract.FieldRecord, customers []models.CustomerRef) *models.DiscountSchema {
	validFrom, validTo := ValidityPeriod(record.Get(extract.FieldPeriodeCP))
	nomor := record.Get(extract.FieldNomor)

	if customers == nil {
		customers = []models.CustomerRef{}
	}

	return &models.DiscountSchema{
		Token:                       Token,
		CDocTypeID:                  DocTypeID,
		Name:                        record.Get(extract.FieldProductCategory),
		Description:                 record.Get(extract.FieldBrand),
		DiscountType:                "B",
		VendorID:                    VendorID(record.Get(extract.FieldDistributor)),
		RequirementType:             "MS",
		FlatDiscountType:            "P",
		CumulativeLevel:             "L",
		ValidFrom:                   validFrom,
		ValidTo:                     validTo,
		SelectionType:               "ESC",
		BudgetType:                  "NB",
		OrganizationalEffectiveness: "ISO",
		IsBirthdayDiscount:          "N",
		IsIncludingSubordinate:      "N",
		IsSOTrx:                     "Y",
		IsPickup:                    "N",
		AllowMultipleDiscount:       "N",
		IsActive:                    "Y",
		Orgs: []models.DiscountOrg{{
			SeqNo:      10,
			ADOrgID:    OrgID,
			ADOrgTrxID: OrgID,
			IsActive:   "Y",
		}},
		Customers: customers,
		Breaks:    []models.DiscountBreak{placeholderBreak(nomor, ProductID(record.Get(extract.FieldProductCategory)))},
	}
}

func placeholderBreak(name string, productID int64) models.DiscountBreak {
	return models.DiscountBreak{
		SeqNo:                  10,
		TargetBreak:            "EP",
		DiscountType:           "PVD",
		BreakType:              "M",
		CalculationType:        "Q",
		Name:                   name,
		RequirementType:        "MS",
		ProductSelection:       "IOP",
		CUOMID:                 UOMID,
		MProductID:             productID,
		BudgetType:             "GB",
		BudgetCalculation:      "QTY",
		QtyAllocated:           placeholderQtyAllocated,
		IsSharedDiscount:       "Y",
		IsIncludingSubordinate: "N",
		IsBirthdayDiscount:     "N",
		IsOnlyCountMaxRange:    "Y",
		IsMix:                  "N",
		IsDiscountedBonus:      "N",
		IsStrictStrata:         "Y",
		IsVendorCashback:       "N",
		IsMixRequired:          "N",
		IsStrataBudget:         "Y",
		IsActive:               "Y",
		Products:               []any{},
		Customers:              []models.CustomerRef{},
		Bonuses:                []any{},
		Budgets:                []any{},
		Lines: []models.DiscountLine{{
			Name:          name,
			BreakValue:    placeholderBreakValue,
			BreakValueTo:  placeholderBreakValueTo,
			QtyAllocated:  placeholderQtyAllocated,
			BreakDiscount: placeholderBreakDiscount,
			IsActive:      "Y",
			Bonuses:       []any{},
			Budgets:       []any{},
		}},
	}
}

// VendorID returns the first run of digits in a DISTRIBUTOR value, or 0
// when there is none or it does not fit an int64.
func VendorID(distributor string) int64 {
	digits := digitRun.FindString(distributor)
	if digits == "" {
		return 0
	}
	id, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// ValidityPeriod splits a PERIODE CP value such as "01/03/2025 - 15/03/2025"
// into compact start and end dates. Values without the separator yield the
// default period.
func ValidityPeriod(periode string) (from, to string) {
	parts := strings.Split(periode, periodSeparator)
	if len(parts) < 2 {
		return DefaultValidFrom, DefaultValidTo
	}
	return compactDate(parts[0]), compactDate(parts[1])
}

func compactDate(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "/", ""))
}

// Marshal encodes v as UTF-8 JSON with four-space indentation, without HTML
// escaping and without a trailing newline.
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
