package model

import "github.com/google/uuid"

// SectionCategory is the pricing category a section name classifies into.
type SectionCategory string

const (
	CategoryMaterial      SectionCategory = "MATERIAL"
	CategoryLabour        SectionCategory = "LABOUR"
	CategorySubContractor SectionCategory = "SUB_CONTRACTOR"
	CategoryShop          SectionCategory = "SHOP"
	CategoryMiscellaneous SectionCategory = "MISCELLANEOUS"
)

// LabourLike reports whether labour items in this category price by
// journey/crew instead of plain quantity.
func (c SectionCategory) LabourLike() bool {
	return c != CategoryMaterial
}

// CostSummary is the output of the cost waterfall. All fields are finite;
// the engine coerces bad inputs to zero rather than propagating NaN.
type CostSummary struct {
	ProductsTotal      float64 `json:"products_total"`
	LabourTotal        float64 `json:"labour_total"`
	SubcontractorTotal float64 `json:"subcontractor_total"`
	ShopTotal          float64 `json:"shop_total"`
	MiscTotal          float64 `json:"misc_total"`
	DirectCosts        float64 `json:"direct_costs"`
	MarkupAmount       float64 `json:"markup_amount"`
	MarkupPct          float64 `json:"markup_pct"`
	TaxableTotal       float64 `json:"taxable_total"`
	PST                float64 `json:"pst"`
	Subtotal           float64 `json:"subtotal"`
	Profit             float64 `json:"profit"`
	FinalTotal         float64 `json:"final_total"`
	GST                float64 `json:"gst"`
	GrandTotal         float64 `json:"grand_total"`
}

// PricedItem is one estimate line after pricing and markup.
type PricedItem struct {
	ItemID             uuid.UUID       `json:"item_id"`
	Description        string          `json:"description"`
	Unit               string          `json:"unit"`
	Quantity           float64         `json:"quantity"`
	UnitPrice          float64         `json:"unit_price"`
	SupplierName       string          `json:"supplier_name,omitempty"`
	Category           SectionCategory `json:"category"`
	EffectiveMarkupPct float64         `json:"effective_markup_pct"`
	PreMarkupSubtotal  float64         `json:"pre_markup_subtotal"`
	PostMarkupSubtotal float64         `json:"post_markup_subtotal"`
	Taxable            bool            `json:"taxable"`
}

// SectionGroup is a display grouping of priced items, ordered by the
// estimate's section order.
type SectionGroup struct {
	Key      string          `json:"key"`
	Label    string          `json:"label"`
	Category SectionCategory `json:"category"`
	Subtotal float64         `json:"subtotal"`
	Items    []PricedItem    `json:"items"`
}

// SummaryDocument bundles everything the export generators need.
type SummaryDocument struct {
	Estimate Estimate
	Sections []SectionGroup
	Summary  CostSummary
}
