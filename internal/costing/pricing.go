package costing

import (
	"math"

	"github.com/ledgewood/estimates/internal/model"
)

// PreMarkupSubtotal computes an item's raw monetary subtotal before markup.
// Material-classified items always price as quantity * unit_price. Labour
// items in a labour-like section switch to journey pricing only when the
// override carries a journey type: a contract rate multiplies the journey
// alone, an hourly rate multiplies journey by crew size. Missing numbers are
// zero, never an error.
func PreMarkupSubtotal(item model.EstimateItem, ov ItemOverride, category model.SectionCategory) float64 {
	if category.LabourLike() && item.ItemType == model.ItemTypeLabour && ov.LabourJourneyType != nil {
		journey := firstNumber(ov.LabourJourney, item.LabourJourney)
		if *ov.LabourJourneyType == model.JourneyTypeContract {
			return journey * finite(item.UnitPrice)
		}
		men := firstNumber(ov.LabourMen, item.LabourMen)
		return journey * men * finite(item.UnitPrice)
	}
	return finite(item.Quantity) * finite(item.UnitPrice)
}

// EffectiveMarkupPct resolves the markup for one item: the override when
// present (an explicit 0 wins over the global rate), else the estimate's
// global markup, else 0.
func EffectiveMarkupPct(ov ItemOverride, globalPct *float64) float64 {
	if ov.MarkupPct != nil {
		return finite(*ov.MarkupPct)
	}
	return numOrZero(globalPct)
}

// ApplyMarkup returns the post-markup subtotal.
func ApplyMarkup(pre, markupPct float64) float64 {
	return pre * (1 + markupPct/100)
}

// PriceItem runs classification, pricing and markup for a single item.
func PriceItem(item model.EstimateItem, ov ItemOverride, globalMarkupPct *float64) model.PricedItem {
	category := ClassifySection(item.Section)
	pre := PreMarkupSubtotal(item, ov, category)
	pct := EffectiveMarkupPct(ov, globalMarkupPct)

	taxable := true
	if ov.Taxable != nil {
		taxable = *ov.Taxable
	} else if item.Taxable != nil {
		taxable = *item.Taxable
	}

	supplier := ""
	if item.SupplierName != nil {
		supplier = *item.SupplierName
	}

	return model.PricedItem{
		ItemID:             item.ID,
		Description:        item.Description,
		Unit:               item.Unit,
		Quantity:           finite(item.Quantity),
		UnitPrice:          finite(item.UnitPrice),
		SupplierName:       supplier,
		Category:           category,
		EffectiveMarkupPct: pct,
		PreMarkupSubtotal:  pre,
		PostMarkupSubtotal: ApplyMarkup(pre, pct),
		Taxable:            taxable,
	}
}

// finite coerces NaN and infinities to 0 so bad inputs degrade to a
// deterministic zero instead of poisoning the totals.
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func numOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return finite(*v)
}

// firstNumber prefers the override value over the item's own field.
func firstNumber(override, own *float64) float64 {
	if override != nil {
		return finite(*override)
	}
	return numOrZero(own)
}

// rateOrZero resolves a tax or profit rate: missing or negative means 0.
func rateOrZero(v *float64) float64 {
	r := numOrZero(v)
	if r < 0 {
		return 0
	}
	return r
}
