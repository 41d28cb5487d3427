// Package export provides functionality for exporting packed shipments to
// various file formats.
package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/StowPlan/internal/model"
)

// cargoColor represents an RGB colour assigned to a cargo spec.
type cargoColor struct {
	R, G, B int
}

var cargoColors = []cargoColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	viewGap      = 8.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// colorIndex assigns a stable colour slot per cargo spec in order of first
// appearance across the shipment.
func colorIndex(sh model.Shipment) map[string]int {
	idx := make(map[string]int)
	for _, r := range sh.Results {
		for _, p := range r.Placements {
			if _, ok := idx[p.SpecID]; !ok {
				idx[p.SpecID] = len(idx)
			}
		}
	}
	return idx
}

// ExportPDF generates a load-plan PDF: one page per container with a plan
// view and a door-end elevation, followed by a shipment summary page.
func ExportPDF(path string, sh model.Shipment) error {
	if len(sh.Results) == 0 {
		return fmt.Errorf("no containers to export")
	}

	colors := colorIndex(sh)

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	for i, result := range sh.Results {
		pdf.AddPage()
		renderContainerPage(pdf, result, i+1, colors)
	}

	pdf.AddPage()
	renderSummaryPage(pdf, sh)

	return pdf.OutputFileAndClose(path)
}

// renderContainerPage draws one container on the current page: plan view
// (length x width, door on the right) above a door-end elevation
// (width x height).
func renderContainerPage(pdf *fpdf.Fpdf, result model.PackResult, num int, colors map[string]int) {
	c := result.Container

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Container %d: %s (%d x %d x %d cm)", num, c.Type, c.Length, c.Width, c.Height)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Items: %d | Volume: %.2f m3 (%.1f%%) | Weight: %.0f kg (%.1f%%)",
		len(result.Placements), result.UsedVolume, result.VolumeUtilization,
		result.TotalWeight, result.WeightUtilization)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := (pageHeight - drawAreaTop - marginBottom - viewGap) / 2

	// Plan view: x across the page, z down.
	planScale := math.Min(drawWidth/float64(c.Length), drawHeight/float64(c.Width))
	planW := float64(c.Length) * planScale
	planH := float64(c.Width) * planScale
	planX := marginLeft + (drawWidth-planW)/2
	planY := drawAreaTop

	pdf.SetFillColor(235, 235, 235)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(planX, planY, planW, planH, "FD")
	labelView(pdf, planX, planY, "Plan view (door right)")

	for _, p := range result.Placements {
		col := cargoColors[colors[p.SpecID]%len(cargoColors)]
		bx := planX + float64(p.X)*planScale
		by := planY + float64(p.Z)*planScale
		bw := float64(p.Length) * planScale
		bh := float64(p.Width) * planScale
		drawCargoRect(pdf, bx, by, bw, bh, col, p.Sequence)
	}

	// Door-end elevation: z across, y up (flipped so the floor is at the
	// bottom of the drawing).
	elevY := planY + planH + viewGap
	elevScale := math.Min(drawWidth/float64(c.Width), drawHeight/float64(c.Height))
	elevW := float64(c.Width) * elevScale
	elevH := float64(c.Height) * elevScale
	elevX := marginLeft + (drawWidth-elevW)/2

	pdf.SetFillColor(235, 235, 235)
	pdf.SetDrawColor(100, 100, 100)
	pdf.Rect(elevX, elevY, elevW, elevH, "FD")
	labelView(pdf, elevX, elevY, "Door-end elevation")

	for _, p := range result.Placements {
		col := cargoColors[colors[p.SpecID]%len(cargoColors)]
		bx := elevX + float64(p.Z)*elevScale
		by := elevY + elevH - float64(p.Y+p.Height)*elevScale
		bw := float64(p.Width) * elevScale
		bh := float64(p.Height) * elevScale
		drawCargoRect(pdf, bx, by, bw, bh, col, p.Sequence)
	}
}

func labelView(pdf *fpdf.Fpdf, x, y float64, label string) {
	pdf.SetFont("Helvetica", "I", 7)
	pdf.SetTextColor(90, 90, 90)
	pdf.SetXY(x, y-3.5)
	pdf.CellFormat(60, 3, label, "", 0, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// drawCargoRect draws one placement rectangle with its loading sequence
// number when the rectangle is large enough to carry text.
func drawCargoRect(pdf *fpdf.Fpdf, x, y, w, h float64, col cargoColor, seq int) {
	pdf.SetFillColor(col.R, col.G, col.B)
	pdf.SetDrawColor(30, 30, 30)
	pdf.SetLineWidth(0.2)
	pdf.Rect(x, y, w, h, "FD")

	if w > 6 && h > 4 {
		pdf.SetFont("Helvetica", "", 6)
		pdf.SetTextColor(0, 0, 0)
		label := fmt.Sprintf("%d", seq)
		lw := pdf.GetStringWidth(label)
		pdf.SetXY(x+(w-lw)/2, y+h/2-1.5)
		pdf.CellFormat(lw, 3, label, "", 0, "C", false, 0, "")
	}
}

// renderSummaryPage draws the shipment totals and any residual cargo.
func renderSummaryPage(pdf *fpdf.Fpdf, sh model.Shipment) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, "Shipment Summary", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	y := marginTop + headerHeight + 4
	for i, r := range sh.Results {
		pdf.SetXY(marginLeft, y)
		line := fmt.Sprintf("Container %d  %-5s  items: %-4d  volume: %6.2f m3 (%5.1f%%)  weight: %7.0f kg (%5.1f%%)",
			i+1, r.Container.Type, len(r.Placements), r.UsedVolume, r.VolumeUtilization, r.TotalWeight, r.WeightUtilization)
		pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, line, "", 1, "L", false, 0, "")
		y += 6
	}

	y += 4
	pdf.SetXY(marginLeft, y)
	pdf.SetFont("Helvetica", "B", 10)
	totals := fmt.Sprintf("Total: %d containers, %d items placed, %.1f%% volume, %.0f kg",
		len(sh.Results), sh.PlacedCount(), sh.TotalVolumeUtilization(), sh.TotalWeight())
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, totals, "", 1, "L", false, 0, "")
	y += 8

	if residual := sh.Residual(); len(residual) > 0 {
		pdf.SetXY(marginLeft, y)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetTextColor(180, 40, 40)
		pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, fmt.Sprintf("Unplaced cargo (%d items):", len(residual)), "", 1, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.SetFont("Helvetica", "", 9)
		y += 6
		for _, b := range residual {
			pdf.SetXY(marginLeft, y)
			pdf.CellFormat(pageWidth-marginLeft-marginRight, 4.5,
				fmt.Sprintf("  %s  (%dx%dx%d cm, %.0f kg)", b.Name, b.Length, b.Width, b.Height, b.Weight),
				"", 1, "L", false, 0, "")
			y += 5
			if y > pageHeight-marginBottom-5 {
				pdf.AddPage()
				y = marginTop
			}
		}
	}
}
