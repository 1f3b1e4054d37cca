package export

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/malonic/quotehub-backend/internal/sketch"
	"github.com/malonic/quotehub-backend/pkg/config"
	"github.com/malonic/quotehub-backend/pkg/db/models"
	"github.com/malonic/quotehub-backend/pkg/errors"
)

const (
	pageBreakAt  = 262.0
	cardImageW   = 58.0
	cardImageH   = 44.0
	cardPadding  = 4.0
)

// DocumentBuilder lays out quotation PDFs with the company letterhead.
type DocumentBuilder struct {
	company config.CompanyConfig
	adapter *Adapter
}

// NewDocumentBuilder wires the builder with letterhead details and the
// raster adapter used for per-item sketch images.
func NewDocumentBuilder(company config.CompanyConfig, adapter *Adapter) *DocumentBuilder {
	return &DocumentBuilder{company: company, adapter: adapter}
}

// Build produces the quotation PDF. Items with a sketch get an
// embedded raster plus a textual summary; items whose raster fails
// keep the summary only.
func (b *DocumentBuilder) Build(quotation *models.Quotation, images map[int][]byte) ([]byte, error) {
	if quotation == nil {
		return nil, errors.New(errors.CodeValidation, "quotation is required")
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Quotation %s", quotation.Number), false)
	pdf.SetAutoPageBreak(false, 18)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-14)
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(120, 120, 120)
		footer := b.company.Footer
		if footer == "" {
			footer = b.company.Name
		}
		pdf.CellFormat(0, 5, footer, "", 1, "C", false, 0, "")
		pdf.CellFormat(0, 5, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	b.header(pdf, quotation)
	b.clientBlock(pdf, quotation)

	for i := range quotation.Items {
		b.itemCard(pdf, &quotation.Items[i], images[i])
	}

	b.totals(pdf, quotation)
	b.signatures(pdf)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "writing pdf")
	}
	return buf.Bytes(), nil
}

func (b *DocumentBuilder) header(pdf *fpdf.Fpdf, quotation *models.Quotation) {
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetTextColor(31, 41, 55)
	pdf.CellFormat(110, 10, b.company.Name, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, fmt.Sprintf("Quotation %s", quotation.Number), "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(90, 90, 90)
	for _, line := range []string{b.company.Address, b.company.Phone, b.company.Email, b.company.TaxID} {
		if line == "" {
			continue
		}
		pdf.CellFormat(110, 4.5, line, "", 1, "L", false, 0, "")
	}

	pdf.SetXY(130, 22)
	pdf.CellFormat(0, 4.5, fmt.Sprintf("Date: %s", quotation.CreatedAt.Format("2006-01-02")), "", 1, "R", false, 0, "")
	pdf.SetX(130)
	pdf.CellFormat(0, 4.5, fmt.Sprintf("Status: %s", quotation.Status), "", 1, "R", false, 0, "")
	if quotation.ValidUntil != nil {
		pdf.SetX(130)
		pdf.CellFormat(0, 4.5, fmt.Sprintf("Valid until: %s", quotation.ValidUntil.Format("2006-01-02")), "", 1, "R", false, 0, "")
	}
	pdf.Ln(6)
}

func (b *DocumentBuilder) clientBlock(pdf *fpdf.Fpdf, quotation *models.Quotation) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetTextColor(31, 41, 55)
	pdf.CellFormat(0, 6, "Client", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(60, 60, 60)

	if quotation.Client == nil {
		pdf.CellFormat(0, 5, "-", "", 1, "L", false, 0, "")
		pdf.Ln(4)
		return
	}

	pdf.CellFormat(0, 5, quotation.Client.Name, "", 1, "L", false, 0, "")
	for _, ptr := range []*string{quotation.Client.Address, quotation.Client.Email, quotation.Client.Phone} {
		if ptr == nil || *ptr == "" {
			continue
		}
		pdf.CellFormat(0, 4.5, *ptr, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)
}

func (b *DocumentBuilder) itemCard(pdf *fpdf.Fpdf, item *models.QuotationItem, image []byte) {
	cardH := cardImageH + 2*cardPadding
	if pdf.GetY()+cardH > pageBreakAt {
		pdf.AddPage()
	}

	top := pdf.GetY()
	left := 10.0
	pdf.SetDrawColor(200, 200, 200)
	pdf.Rect(left, top, 190, cardH, "D")

	textX := left + cardPadding
	if image != nil {
		name := fmt.Sprintf("sketch-%d", item.Position)
		opts := fpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(image))
		pdf.ImageOptions(name, left+cardPadding, top+cardPadding, cardImageW, cardImageH, false, opts, 0, "")
		if item.Sketch != nil {
			simplifiedDimensions(pdf, item.Sketch, left+cardPadding, top+cardPadding)
		}
		textX = left + cardPadding + cardImageW + 6
	}

	pdf.SetXY(textX, top+cardPadding)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetTextColor(31, 41, 55)
	pdf.CellFormat(0, 5, item.Name, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(60, 60, 60)
	if item.Description != nil && *item.Description != "" {
		pdf.SetX(textX)
		pdf.CellFormat(0, 4.5, *item.Description, "", 1, "L", false, 0, "")
	}
	if item.Sketch != nil {
		for _, line := range sketchSummary(item.Sketch) {
			pdf.SetX(textX)
			pdf.CellFormat(0, 4.5, line, "", 1, "L", false, 0, "")
		}
	}

	pdf.SetX(textX)
	pdf.CellFormat(0, 4.5, fmt.Sprintf("Quantity: %d    Unit price: %s    Line total: %s",
		item.Quantity, item.UnitPrice.StringFixed(2), item.LineTotal.StringFixed(2)), "", 1, "L", false, 0, "")

	pdf.SetY(top + cardH + 3)
}

// simplifiedDimensions draws width/height callouts directly against
// the embedded raster, independent of the renderer's own lines.
func simplifiedDimensions(pdf *fpdf.Fpdf, cfg *sketch.Configuration, x, y float64) {
	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(55, 65, 81)
	width := sketch.FormatDimension(cfg.Width, cfg.Unit)
	height := sketch.FormatDimension(cfg.Height, cfg.Unit)
	pdf.Text(x+cardImageW/2-6, y+cardImageH+2.5, width)
	pdf.TransformBegin()
	pdf.TransformRotate(90, x-1, y+cardImageH/2)
	pdf.Text(x-1, y+cardImageH/2, height)
	pdf.TransformEnd()
}

func sketchSummary(cfg *sketch.Configuration) []string {
	openings := len(cfg.OpeningPanels) + len(cfg.OpeningPanes)
	divided := 0
	for _, d := range cfg.PanelDivisions {
		if d.Rows > 1 || d.Cols > 1 {
			divided++
		}
	}
	glass := string(cfg.GlassType)
	if cfg.GlassType.String() == "custom-tint" && cfg.CustomGlassTint != "" {
		glass = fmt.Sprintf("custom tint %s", cfg.CustomGlassTint)
	}

	return []string{
		fmt.Sprintf("%s, %s x %s", cfg.Kind, sketch.FormatDimension(cfg.Width, cfg.Unit), sketch.FormatDimension(cfg.Height, cfg.Unit)),
		fmt.Sprintf("Panels: %d    Openings: %d    Divided panels: %d", cfg.PanelCount, openings, divided),
		fmt.Sprintf("Frame: %s    Glass: %s", cfg.FrameColor, glass),
	}
}

func (b *DocumentBuilder) totals(pdf *fpdf.Fpdf, quotation *models.Quotation) {
	if pdf.GetY()+34 > pageBreakAt {
		pdf.AddPage()
	}
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(31, 41, 55)

	row := func(label, value string, bold bool) {
		if bold {
			pdf.SetFont("Helvetica", "B", 11)
		} else {
			pdf.SetFont("Helvetica", "", 10)
		}
		pdf.SetX(120)
		pdf.CellFormat(45, 6, label, "", 0, "R", false, 0, "")
		pdf.CellFormat(35, 6, value, "", 1, "R", false, 0, "")
	}

	row("Subtotal", quotation.Subtotal.StringFixed(2), false)
	if !quotation.DiscountPct.IsZero() {
		row(fmt.Sprintf("Discount (%s%%)", quotation.DiscountPct.StringFixed(0)), quotation.Subtotal.Sub(quotation.Total.Sub(quotation.TaxAmount)).Neg().StringFixed(2), false)
	}
	row(fmt.Sprintf("Tax (%s%%)", quotation.TaxRatePct.StringFixed(0)), quotation.TaxAmount.StringFixed(2), false)
	row(fmt.Sprintf("Total (%s)", quotation.Currency), quotation.Total.StringFixed(2), true)
}

func (b *DocumentBuilder) signatures(pdf *fpdf.Fpdf) {
	if pdf.GetY()+40 > pageBreakAt {
		pdf.AddPage()
	}
	y := pdf.GetY() + 24
	pdf.SetDrawColor(120, 120, 120)
	pdf.Line(20, y, 85, y)
	pdf.Line(115, y, 180, y)
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(90, 90, 90)
	pdf.SetXY(20, y+1)
	pdf.CellFormat(65, 5, b.company.Name, "", 0, "C", false, 0, "")
	pdf.SetXY(115, y+1)
	pdf.CellFormat(65, 5, "Client acceptance", "", 0, "C", false, 0, "")
	pdf.SetY(y + 10)
}
