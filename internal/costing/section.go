// Package costing implements the estimate cost-aggregation waterfall: the
// pure computation that turns a flat per-line-item price list into a
// categorized financial summary (category totals, markup, PST, profit, GST,
// grand total). Nothing here touches storage or mutates its inputs; every
// call recomputes from the snapshot it is given.
package costing

import (
	"strings"

	"github.com/ledgewood/estimates/internal/model"
)

// Canonical labour-like section names. A section matches either the exact
// name or the name followed by the literal " Section" suffix, which covers
// numbered repeats like "Labour Section 2". Matching is case-sensitive.
var labourLikeSections = []struct {
	name     string
	category model.SectionCategory
}{
	{"Labour", model.CategoryLabour},
	{"Sub-Contractor", model.CategorySubContractor},
	{"Shop", model.CategoryShop},
	{"Miscellaneous", model.CategoryMiscellaneous},
}

// ClassifySection maps a section name to its pricing category. Unrecognized
// names fall through to Material; there is no error case.
func ClassifySection(name string) model.SectionCategory {
	for _, s := range labourLikeSections {
		if name == s.name || strings.HasPrefix(name, s.name+" Section") {
			return s.category
		}
	}
	return model.CategoryMaterial
}
