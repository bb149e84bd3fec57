package report

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/alexiusacademia/gobeam/internal/mesh"
)

const (
	beamSheet    = "Beam"
	summarySheet = "Summary"
)

// WriteWorkbook writes the report as an .xlsx workbook: a beam sheet, a
// summary sheet and one sheet per enveloped quantity.
func WriteWorkbook(r *Report, path string) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetSheetName("Sheet1", beamSheet); err != nil {
		return err
	}
	if err := writeBeamSheet(f, r, bold); err != nil {
		return err
	}
	if err := writeSummarySheet(f, r, bold); err != nil {
		return err
	}
	for _, s := range r.Sections {
		if err := writeSectionSheet(f, s, bold); err != nil {
			return fmt.Errorf("sheet %q: %w", s.Title(), err)
		}
	}
	return f.SaveAs(path)
}

type sheetWriter struct {
	f     *excelize.File
	sheet string
	row   int
	err   error
}

func (w *sheetWriter) add(values ...any) {
	if w.err != nil {
		return
	}
	w.row++
	cell, err := excelize.CoordinatesToCellName(1, w.row)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetSheetRow(w.sheet, cell, &values)
}

func (w *sheetWriter) header(style int, values ...any) {
	w.add(values...)
	if w.err != nil || len(values) == 0 {
		return
	}
	last, err := excelize.CoordinatesToCellName(len(values), w.row)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetCellStyle(w.sheet, fmt.Sprintf("A%d", w.row), last, style)
}

func (w *sheetWriter) blank() {
	w.row++
}

func writeBeamSheet(f *excelize.File, r *Report, bold int) error {
	w := &sheetWriter{f: f, sheet: beamSheet}
	w.header(bold, "Beam", r.Beam.Name)
	w.blank()
	w.header(bold, "Property", "Value")
	for _, row := range propertyRows(r.Beam.Properties) {
		w.add(row[0], row[1])
	}
	w.blank()
	w.header(bold, "Node", "x", "Support")
	for _, n := range r.Nodes {
		support := ""
		if s, ok := r.Beam.SupportAt(n.X, mesh.DefaultTolerance); ok {
			support = s.Kind.String()
		}
		w.add(n.Name, n.X, support)
	}
	w.blank()
	w.header(bold, "Loads")
	for _, l := range r.Beam.Loads {
		w.add(describeLoad(l))
	}
	if w.err != nil {
		return w.err
	}
	return f.SetColWidth(beamSheet, "A", "A", 40)
}

func writeSummarySheet(f *excelize.File, r *Report, bold int) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return err
	}
	w := &sheetWriter{f: f, sheet: summarySheet}
	if r.TableName != "" {
		w.header(bold, "Combination table", r.TableName)
		w.blank()
	}
	w.header(bold, "Quantity", "Direction", "Unit", "Max", "x", "Combination", "Min", "x", "Combination")
	for _, s := range r.Summary {
		w.add(string(s.Quantity), s.Direction, s.Unit,
			s.Max.Value, s.Max.X, s.Max.Combination,
			s.Min.Value, s.Min.X, s.Min.Combination)
	}
	if c := r.Capacity; c != nil {
		w.blank()
		w.header(bold, "Capacity check")
		w.add("Resistance", c.Resistance)
		w.add("Demand", c.Demand.Value, c.Demand.X, c.Demand.Combination)
		w.add("Utilization", c.Utilization)
		w.add("Adequate", c.Adequate)
	}
	if w.err != nil {
		return w.err
	}
	return f.SetColWidth(summarySheet, "A", "I", 14)
}

func writeSectionSheet(f *excelize.File, s Section, bold int) error {
	name := sheetName(s.Title())
	if _, err := f.NewSheet(name); err != nil {
		return err
	}
	w := &sheetWriter{f: f, sheet: name}

	head := []any{"x", "Max", "Max combination", "Min", "Min combination"}
	for _, c := range s.Combos {
		head = append(head, c.Name)
	}
	w.header(bold, head...)

	env := s.Envelope
	for i := range env.X {
		row := []any{env.X[i], env.Max[i], env.MaxCombo[i], env.Min[i], env.MinCombo[i]}
		for _, c := range s.Combos {
			row = append(row, c.Y[i])
		}
		w.add(row...)
	}
	return w.err
}

// sheetName strips characters Excel rejects and truncates to 31 runes.
func sheetName(s string) string {
	s = strings.Map(func(r rune) rune {
		if strings.ContainsRune(`:\/?*[]`, r) {
			return '_'
		}
		return r
	}, s)
	if r := []rune(s); len(r) > 31 {
		s = string(r[:31])
	}
	return s
}
