package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/ledgewood/estimates/internal/model"
)

type Generator struct {
	fontName string
}

func NewGenerator() *Generator {
	return &Generator{fontName: "Helvetica"}
}

// Generate renders the cost summary as a one-page document: section
// subtotals followed by the tax/profit waterfall down to the grand total.
func (g *Generator) Generate(doc model.SummaryDocument) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.SetFont(g.fontName, "B", 14)
	pdf.CellFormat(0, 10, "Estimate Cost Summary", "", 1, "C", false, 0, "")

	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Project: %s", doc.Estimate.ProjectName), "", 1, "C", false, 0, "")
	if doc.Estimate.ClientName != "" {
		pdf.CellFormat(0, 6, fmt.Sprintf("Client: %s", doc.Estimate.ClientName), "", 1, "C", false, 0, "")
	}
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated %s", time.Now().Format("2006-01-02")), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, "Sections", "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 10)

	headers := []string{"Section", "Category", "Items", "Subtotal"}
	colWidths := []float64{80, 40, 20, 40}
	drawTableRow(pdf, g.fontName, headers, colWidths, true)
	for _, section := range doc.Sections {
		if len(section.Items) == 0 {
			continue
		}
		row := []string{
			section.Label,
			string(section.Category),
			fmt.Sprintf("%d", len(section.Items)),
			formatAmount(section.Subtotal),
		}
		drawTableRow(pdf, g.fontName, row, colWidths, false)
	}
	pdf.Ln(4)

	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, "Totals", "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)

	sum := doc.Summary
	totals := []struct {
		label string
		value float64
	}{
		{"Direct costs", sum.DirectCosts},
		{fmt.Sprintf("Markup (%.2f%%)", sum.MarkupPct), sum.MarkupAmount},
		{"Taxable total", sum.TaxableTotal},
		{"PST", sum.PST},
		{"Subtotal", sum.Subtotal},
		{"Profit", sum.Profit},
		{"Total before GST", sum.FinalTotal},
		{"GST", sum.GST},
	}
	for _, line := range totals {
		pdf.CellFormat(120, 6, line.label, "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, formatAmount(line.value), "", 1, "R", false, 0, "")
	}

	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(120, 8, "Grand total", "T", 0, "L", false, 0, "")
	pdf.CellFormat(0, 8, formatAmount(sum.GrandTotal), "T", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func drawTableRow(pdf *gofpdf.Fpdf, fontName string, cells []string, widths []float64, header bool) {
	style := ""
	if header {
		style = "B"
	}
	pdf.SetFont(fontName, style, 10)
	for i, cell := range cells {
		align := "L"
		if i == len(cells)-1 {
			align = "R"
		}
		pdf.CellFormat(widths[i], 7, cell, "1", 0, align, false, 0, "")
	}
	pdf.Ln(-1)
}

func formatAmount(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
