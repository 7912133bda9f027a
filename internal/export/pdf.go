// Package export writes arena configurations to shareable file formats.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"
	"github.com/skip2/go-qrcode"

	"github.com/tcoles/arenaforge/internal/engine"
	"github.com/tcoles/arenaforge/internal/model"
)

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	tableHeight  = 52.0
	drawAreaTop  = marginTop + headerHeight + 5.0

	qrSize = 28.0
)

// arenaSummary is the metadata encoded into the QR code on each arena page.
type arenaSummary struct {
	Arena     int     `json:"arena"`
	Items     int     `json:"items"`
	Overlaps  int     `json:"overlaps"`
	PassMark  float64 `json:"passMark"`
	TimeLimit float64 `json:"timeLimit"`
}

// ExportPDF renders every arena in the configuration as a top-down diagram,
// one page per arena, with an item table and overlap annotations.
func ExportPDF(path string, config *model.ArenaConfig, arenaWidth, arenaDepth float64) error {
	if config == nil || len(config.Arenas) == 0 {
		return fmt.Errorf("no arenas to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	for i, arena := range config.Arenas {
		pdf.AddPage()
		if err := renderArenaPage(pdf, arena, i, arenaWidth, arenaDepth); err != nil {
			return fmt.Errorf("failed to render arena %d: %w", i, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderArenaPage draws a single arena on the current PDF page.
func renderArenaPage(pdf *fpdf.Fpdf, arena *model.Arena, index int, arenaWidth, arenaDepth float64) error {
	overlaps := engine.FindOverlaps(arena.Items)
	overlapping := engine.CheckOverlaps(arena.Items)

	// Title
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Arena %d (%.0f x %.0f)", index, arenaWidth, arenaDepth)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	// Stats line
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Items: %d | Overlapping pairs: %d | Pass mark: %g | Time limit: %g",
		len(arena.Items), len(overlaps), arena.PassMark, arena.TimeLimit)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	// Drawing area, minus room for the item table at the bottom
	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - tableHeight

	scale := math.Min(drawWidth/arenaWidth, drawHeight/arenaDepth)
	canvasW := arenaWidth * scale
	canvasH := arenaDepth * scale

	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	// Arena floor
	pdf.SetFillColor(235, 235, 225)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	for _, item := range arena.Items {
		drawFootprint(pdf, item, overlapping[item.Name], scale, offsetX, offsetY, canvasH)
	}

	drawItemTable(pdf, arena.Items, overlapping, offsetY+canvasH+5)

	summary := arenaSummary{
		Arena:     index,
		Items:     len(arena.Items),
		Overlaps:  len(overlaps),
		PassMark:  arena.PassMark,
		TimeLimit: arena.TimeLimit,
	}
	if err := drawSummaryQR(pdf, summary); err != nil {
		return err
	}
	return nil
}

// drawFootprint renders one item's base polygon. Overlapping items get a thick
// red outline instead of the normal thin dark one.
func drawFootprint(pdf *fpdf.Fpdf, item *model.Footprint, overlapping bool, scale, offsetX, offsetY, canvasH float64) {
	verts := item.BaseVertices()
	points := make([]fpdf.PointType, len(verts))
	for i, v := range verts {
		// Arena z grows away from the viewer; page y grows downward.
		points[i] = fpdf.PointType{
			X: offsetX + v.X()*scale,
			Y: offsetY + canvasH - v.Y()*scale,
		}
	}

	r, g, b := 128, 128, 128
	if item.Color != nil {
		r = int(item.Color.R)
		g = int(item.Color.G)
		b = int(item.Color.B)
	}
	pdf.SetFillColor(r, g, b)

	if overlapping {
		pdf.SetDrawColor(220, 0, 0)
		pdf.SetLineWidth(0.8)
	} else {
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
	}
	pdf.Polygon(points, "FD")

	// Name label at the footprint centre, if there is room
	c := item.Center2D()
	label := item.Name
	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(0, 0, 0)
	labelW := pdf.GetStringWidth(label)
	if labelW < item.Length*scale {
		pdf.SetXY(offsetX+c.X()*scale-labelW/2, offsetY+canvasH-c.Y()*scale-2)
		pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
	}
}

// drawItemTable renders a compact listing of the arena items below the diagram.
func drawItemTable(pdf *fpdf.Fpdf, items []*model.Footprint, overlapping map[string]bool, y float64) {
	colWidths := []float64{50, 30, 45, 40, 20, 25}
	headers := []string{"Name", "Type", "Position", "Size", "Rot", "Overlap"}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(220, 220, 220)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, y)
	for i, h := range headers {
		pdf.CellFormat(colWidths[i], 5, h, "1", 0, "L", true, 0, "")
	}

	pdf.SetFont("Helvetica", "", 7)
	rowY := y + 5
	for _, item := range items {
		if rowY > pageHeight-marginBottom-5 {
			break
		}
		flag := ""
		if overlapping[item.Name] {
			flag = "yes"
		}
		cells := []string{
			item.Name,
			item.Type,
			fmt.Sprintf("(%.2f, %.2f, %.2f)", item.X, item.Y, item.Z),
			fmt.Sprintf("%.2f x %.2f x %.2f", item.Length, item.Width, item.Height),
			fmt.Sprintf("%.0f", item.Rotation),
			flag,
		}
		pdf.SetXY(marginLeft, rowY)
		for i, c := range cells {
			pdf.CellFormat(colWidths[i], 4, c, "1", 0, "L", false, 0, "")
		}
		rowY += 4
	}
}

// drawSummaryQR places a QR code with the arena metadata in the top-right corner.
func drawSummaryQR(pdf *fpdf.Fpdf, summary arenaSummary) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to marshal arena summary: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(data), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_arena_%d", summary.Arena)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))
	pdf.ImageOptions(imgName, pageWidth-marginRight-qrSize, marginTop, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	return nil
}
