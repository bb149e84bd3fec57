package report

import (
	"fmt"
	"time"

	"codeberg.org/go-pdf/fpdf"
)

// WritePDF writes a one-page summary: beam data, governing values per
// quantity, the optional capacity check and the optional diagram.
func WritePDF(r *Report, path string) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, tr(fmt.Sprintf("Beam analysis: %s", r.Beam.Name)))
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", time.Now().Format("2006-01-02")))
	pdf.Ln(6)
	if r.TableName != "" {
		pdf.Cell(0, 6, tr(fmt.Sprintf("Load combinations: %s", r.TableName)))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	heading := func(s string) {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, tr(s))
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 10)
	}
	row := func(widths []float64, cells ...string) {
		for i, c := range cells {
			pdf.CellFormat(widths[i], 6, tr(c), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	heading("Properties")
	props := []float64{30, 50}
	for _, p := range propertyRows(r.Beam.Properties) {
		row(props, p[0], p[1])
	}
	pdf.Ln(4)

	heading("Supports and loads")
	for _, s := range r.Beam.Supports {
		pdf.Cell(0, 6, tr(fmt.Sprintf("%s support at %g", s.Kind, s.Location)))
		pdf.Ln(6)
	}
	for _, l := range r.Beam.Loads {
		pdf.Cell(0, 6, tr(describeLoad(l)))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	heading("Governing values")
	cols := []float64{28, 14, 32, 20, 28, 32, 20, 28}
	pdf.SetFont("Helvetica", "B", 9)
	row(cols, "Quantity", "Dir", "Max", "x", "Combination", "Min", "x", "Combination")
	pdf.SetFont("Helvetica", "", 9)
	for _, s := range r.Summary {
		row(cols, string(s.Quantity), s.Direction,
			fmt.Sprintf("%.4g %s", s.Max.Value, s.Unit), fmt.Sprintf("%g", s.Max.X), s.Max.Combination,
			fmt.Sprintf("%.4g %s", s.Min.Value, s.Unit), fmt.Sprintf("%g", s.Min.X), s.Min.Combination)
	}
	pdf.Ln(4)

	if c := r.Capacity; c != nil {
		heading("Capacity check")
		status := "ADEQUATE"
		if !c.Adequate {
			status = "NOT ADEQUATE"
		}
		pdf.MultiCell(0, 6, tr(fmt.Sprintf(
			"Resistance %.4g N·mm against demand %.4g N·mm (%s at x = %g).\nUtilization %.3f: %s",
			c.Resistance, c.Demand.Value, c.Demand.Combination, c.Demand.X, c.Utilization, status)), "", "L", false)
		pdf.Ln(4)
	}

	if r.Image != "" {
		pdf.ImageOptions(r.Image, 10, pdf.GetY(), 190, 0, false,
			fpdf.ImageOptions{ReadDpi: true}, 0, "")
	}

	return pdf.OutputFileAndClose(path)
}
