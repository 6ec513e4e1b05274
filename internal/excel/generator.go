package excel

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ledgewood/estimates/internal/model"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate renders the cost summary workbook: one summary sheet with the
// waterfall, plus a detail sheet per non-empty section.
func (g *Generator) Generate(doc model.SummaryDocument) ([]byte, error) {
	file := excelize.NewFile()

	summarySheet := "Summary"
	file.SetSheetName("Sheet1", summarySheet)
	if err := g.writeSummary(file, summarySheet, doc); err != nil {
		return nil, err
	}

	usedNames := map[string]struct{}{summarySheet: {}}
	for _, section := range doc.Sections {
		if len(section.Items) == 0 {
			continue
		}
		sheetName := buildSheetName(section.Label, usedNames)
		usedNames[sheetName] = struct{}{}

		if _, err := file.NewSheet(sheetName); err != nil {
			return nil, err
		}
		if err := g.writeSection(file, sheetName, section); err != nil {
			return nil, err
		}
	}

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) writeSummary(file *excelize.File, sheet string, doc model.SummaryDocument) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "Project")
	set("B1", doc.Estimate.ProjectName)
	set("A2", "Client")
	set("B2", doc.Estimate.ClientName)

	sum := doc.Summary
	lines := []struct {
		label string
		value float64
	}{
		{"Products", sum.ProductsTotal},
		{"Labour", sum.LabourTotal},
		{"Sub-Contractor", sum.SubcontractorTotal},
		{"Shop", sum.ShopTotal},
		{"Miscellaneous", sum.MiscTotal},
		{"Direct costs", sum.DirectCosts},
		{"Markup", sum.MarkupAmount},
		{"Markup %", sum.MarkupPct},
		{"Taxable total", sum.TaxableTotal},
		{"PST", sum.PST},
		{"Subtotal", sum.Subtotal},
		{"Profit", sum.Profit},
		{"Total before GST", sum.FinalTotal},
		{"GST", sum.GST},
		{"Grand total", sum.GrandTotal},
	}
	row := 4
	for _, line := range lines {
		set(fmt.Sprintf("A%d", row), line.label)
		set(fmt.Sprintf("B%d", row), line.value)
		row++
	}

	_ = file.SetColWidth(sheet, "A", "A", 24)
	_ = file.SetColWidth(sheet, "B", "B", 18)
	return nil
}

func (g *Generator) writeSection(file *excelize.File, sheet string, section model.SectionGroup) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "Section")
	set("B1", section.Label)
	set("A2", "Category")
	set("B2", string(section.Category))
	set("A3", "Subtotal")
	set("B3", section.Subtotal)

	tableRow := 5
	headers := []string{
		"Description",
		"Unit",
		"Quantity",
		"Unit price",
		"Markup %",
		"Subtotal",
		"Taxable",
		"Supplier",
	}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, tableRow)
		set(cell, header)
	}

	for i, item := range section.Items {
		row := tableRow + 1 + i
		values := []interface{}{
			item.Description,
			item.Unit,
			item.Quantity,
			item.UnitPrice,
			item.EffectiveMarkupPct,
			item.PostMarkupSubtotal,
			item.Taxable,
			item.SupplierName,
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			set(cell, value)
		}
	}

	_ = file.SetColWidth(sheet, "A", "A", 45)
	_ = file.SetColWidth(sheet, "B", "H", 14)
	return nil
}

// buildSheetName fits a section label into Excel's sheet-name rules (31 chars,
// no \ / ? * : [ ]) and keeps names unique within the workbook.
func buildSheetName(label string, used map[string]struct{}) string {
	name := sanitizeSheetName(label)
	if name == "" {
		name = "Section"
	}
	if len(name) > 28 {
		name = name[:28]
	}

	candidate := name
	for i := 2; ; i++ {
		if _, taken := used[candidate]; !taken {
			return candidate
		}
		candidate = fmt.Sprintf("%s %d", name, i)
	}
}

func sanitizeSheetName(input string) string {
	replacer := strings.NewReplacer("\\", " ", "/", " ", "?", " ", "*", " ", ":", " ", "[", " ", "]", " ")
	return strings.TrimSpace(replacer.Replace(input))
}
