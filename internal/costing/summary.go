package costing

import (
	"github.com/ledgewood/estimates/internal/model"
)

// Compute runs the full cost waterfall over an estimate snapshot. It never
// fails; bad inputs degrade to zeros per the pricing rules.
func Compute(est model.Estimate, items []model.EstimateItem) model.CostSummary {
	overrides := ParseOverrides(est.OverridesBlob)

	var sum model.CostSummary
	var totalWithoutMarkup float64
	for _, item := range items {
		p := PriceItem(item, overrides.For(item.ID), est.GlobalMarkupPct)
		totalWithoutMarkup += p.PreMarkupSubtotal

		switch p.Category {
		case model.CategoryLabour:
			sum.LabourTotal += p.PostMarkupSubtotal
		case model.CategorySubContractor:
			sum.SubcontractorTotal += p.PostMarkupSubtotal
		case model.CategoryShop:
			sum.ShopTotal += p.PostMarkupSubtotal
		case model.CategoryMiscellaneous:
			sum.MiscTotal += p.PostMarkupSubtotal
		default:
			sum.ProductsTotal += p.PostMarkupSubtotal
		}
		if p.Taxable {
			sum.TaxableTotal += p.PostMarkupSubtotal
		}
	}

	sum.DirectCosts = sum.ProductsTotal + sum.LabourTotal + sum.SubcontractorTotal +
		sum.ShopTotal + sum.MiscTotal
	sum.MarkupAmount = sum.DirectCosts - totalWithoutMarkup
	if sum.DirectCosts != 0 {
		sum.MarkupPct = sum.MarkupAmount / sum.DirectCosts * 100
	}

	// The stage order is fixed. PST applies to the taxable base only; GST
	// applies to the whole post-profit total regardless of taxable flags.
	// That asymmetry matches how the business invoices and must not be
	// reordered or "corrected" here.
	sum.PST = sum.TaxableTotal * rateOrZero(est.PSTRatePct) / 100
	sum.Subtotal = sum.DirectCosts + sum.PST
	sum.Profit = sum.Subtotal * rateOrZero(est.ProfitRatePct) / 100
	sum.FinalTotal = sum.Subtotal + sum.Profit
	sum.GST = sum.FinalTotal * rateOrZero(est.GSTRatePct) / 100
	sum.GrandTotal = sum.FinalTotal + sum.GST
	return sum
}

// Breakdown prices every item and groups the result by section for display:
// sections listed in the estimate's section order come first, anything else
// follows in first-seen order. Grouping and labels are cosmetic; the summary
// totals are identical to Compute on the same snapshot.
func Breakdown(est model.Estimate, items []model.EstimateItem) model.SummaryDocument {
	overrides := ParseOverrides(est.OverridesBlob)

	groups := make([]model.SectionGroup, 0, len(est.SectionOrder))
	index := make(map[string]int, len(est.SectionOrder))
	appendGroup := func(key string) int {
		index[key] = len(groups)
		groups = append(groups, model.SectionGroup{
			Key:      key,
			Label:    sectionLabel(est, key),
			Category: ClassifySection(key),
		})
		return index[key]
	}
	for _, key := range est.SectionOrder {
		if _, ok := index[key]; !ok {
			appendGroup(key)
		}
	}

	for _, item := range items {
		pos, ok := index[item.Section]
		if !ok {
			pos = appendGroup(item.Section)
		}
		p := PriceItem(item, overrides.For(item.ID), est.GlobalMarkupPct)
		groups[pos].Items = append(groups[pos].Items, p)
		groups[pos].Subtotal += p.PostMarkupSubtotal
	}

	return model.SummaryDocument{
		Estimate: est,
		Sections: groups,
		Summary:  Compute(est, items),
	}
}

func sectionLabel(est model.Estimate, key string) string {
	if label, ok := est.SectionNames[key]; ok && label != "" {
		return label
	}
	return key
}
