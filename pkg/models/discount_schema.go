package models

// DiscountSchema is the discount-scheme document consumed by the downstream
// ERP import. Field order, names and JSON types are part of the import
// contract and must not change.
type DiscountSchema struct {
	MDiscountSchemaID           int64           `json:"m_discountschema_id"`
	Token                       string          `json:"token"`
	ADOrgID                     int64           `json:"ad_org_id"`
	CDocTypeID                  int64           `json:"c_doctype_id"`
	Name                        string          `json:"name"`
	Description                 string          `json:"description"`
	DiscountType                string          `json:"discounttype"`
	VendorID                    int64           `json:"vendor_id"`
	RequirementType             string          `json:"requirementtype"`
	FlatDiscountType            string          `json:"flatdiscounttype"`
	CumulativeLevel             string          `json:"cumulativelevel"`
	ValidFrom                   string          `json:"validfrom"`
	ValidTo                     string          `json:"validto"`
	SelectionType               string          `json:"selectiontype"`
	BudgetType                  string          `json:"budgettype"`
	OrganizationalEffectiveness string          `json:"organizationaleffectiveness"`
	IsBirthdayDiscount          string          `json:"isbirthdaydiscount"`
	IsIncludingSubordinate      string          `json:"isincludingsubordinate"`
	QtyAllocated                int64           `json:"qtyallocated"`
	IsSOTrx                     string          `json:"issotrx"`
	IsPickup                    string          `json:"ispickup"`
	AllowMultipleDiscount       string          `json:"fl_isallowmultiplediscount"`
	IsActive                    string          `json:"isactive"`
	Orgs                        []DiscountOrg   `json:"list_org"`
	Customers                   []CustomerRef   `json:"list_customer"`
	Breaks                      []DiscountBreak `json:"list_break"`
}

// DiscountOrg assigns the scheme to an organization.
type DiscountOrg struct {
	MDiscountSchemaID int64  `json:"m_discountschema_id"`
	DiscountOrgID     int64  `json:"uns_discount_org_id"`
	SeqNo             int    `json:"seqno"`
	ADOrgID           int64  `json:"ad_org_id"`
	ADOrgTrxID        int64  `json:"ad_orgtrx_id"`
	IsActive          string `json:"isactive"`
}

// CustomerRef is one outlet the scheme applies to.
type CustomerRef struct {
	MDiscountSchemaID      int64 `json:"m_discountschema_id"`
	DiscountCustomerID     int64 `json:"uns_discount_customer_id"`
	MDiscountSchemaBreakID int64 `json:"m_discountschemabreak_id"`
	ADOrgID                int64 `json:"ad_org_id"`
	CBPartnerID            int64 `json:"c_bpartner_id"`
}

// DiscountBreak is a volume-discount tier of the scheme.
type DiscountBreak struct {
	MDiscountSchemaID      int64          `json:"m_discountschema_id"`
	MDiscountSchemaBreakID int64          `json:"m_discountschemabreak_id"`
	ADOrgID                int64          `json:"ad_org_id"`
	SeqNo                  int            `json:"seqno"`
	TargetBreak            string         `json:"targetbreak"`
	DiscountType           string         `json:"discounttype"`
	BreakType              string         `json:"breaktype"`
	CalculationType        string         `json:"calculationtype"`
	Name                   string         `json:"name"`
	RequirementType        string         `json:"requirementtype"`
	ProductSelection       string         `json:"productselection"`
	CUOMID                 int64          `json:"c_uom_id"`
	MProductID             int64          `json:"m_product_id"`
	MProductCategoryID     *int64         `json:"m_product_category_id"`
	BudgetType             string         `json:"budgettype"`
	BudgetCalculation      string         `json:"budgetcalculation"`
	QtyAllocated           int64          `json:"qtyallocated"`
	BreakValue             int64          `json:"breakvalue"`
	BreakDiscount          int64          `json:"breakdiscount"`
	IsSharedDiscount       string         `json:"isshareddiscount"`
	IsIncludingSubordinate string         `json:"isincludingsubordinate"`
	IsBirthdayDiscount     string         `json:"isbirthdaydiscount"`
	IsOnlyCountMaxRange    string         `json:"isonlycountmaxrange"`
	IsMix                  string         `json:"ismix"`
	IsDiscountedBonus      string         `json:"isdiscountedbonus"`
	IsStrictStrata         string         `json:"isstrictstrata"`
	IsVendorCashback       string         `json:"isvendorcashback"`
	IsMixRequired          string         `json:"ismixrequired"`
	IsStrataBudget         string         `json:"isstratabudget"`
	IsActive               string         `json:"isactive"`
	Products               []any          `json:"list_product"`
	Customers              []CustomerRef  `json:"list_customer"`
	Bonuses                []any          `json:"list_bonus"`
	Budgets                []any          `json:"list_budget"`
	Lines                  []DiscountLine `json:"list_line"`
}

// DiscountLine holds the discount values of one break range.
type DiscountLine struct {
	MDiscountSchemaBreakID int64   `json:"m_discountschemabreak_id"`
	DSBreakLineID          int64   `json:"uns_dsbreakline_id"`
	Name                   string  `json:"name"`
	BreakValue             int64   `json:"breakvalue"`
	BreakValueTo           int64   `json:"breakvalueto"`
	QtyAllocated           int64   `json:"qtyallocated"`
	BreakDiscount          float64 `json:"breakdiscount"`
	SecondDiscount         int64   `json:"seconddiscount"`
	ThirdDiscount          int64   `json:"thirddiscount"`
	FourthDiscount         int64   `json:"fourthdiscount"`
	FifthDiscount          int64   `json:"fifthdiscount"`
	IsActive               string  `json:"isactive"`
	Bonuses                []any   `json:"list_bonus"`
	Budgets                []any   `json:"list_budget"`
}
