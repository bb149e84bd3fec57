package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/alexiusacademia/gobeam/internal/analysis"
	"github.com/alexiusacademia/gobeam/internal/beam"
	"github.com/alexiusacademia/gobeam/internal/capacity"
	"github.com/alexiusacademia/gobeam/internal/diagram"
	"github.com/alexiusacademia/gobeam/internal/fe"
	"github.com/alexiusacademia/gobeam/internal/loadcombo"
)

func testReport(t *testing.T) *Report {
	t.Helper()
	props := beam.DefaultProperties()
	props.L, props.E, props.Iz = 6000, 200000, 8e7
	b := &beam.Beam{
		Name:       "Roof purlin",
		Properties: props,
		Supports: []beam.Support{
			{Location: 0, Kind: beam.Pinned},
			{Location: 6000, Kind: beam.Roller},
		},
		Loads: []beam.Load{
			beam.DistLoad{Direction: beam.Fy, StartMagnitude: -1.5, EndMagnitude: -1.5, EndLocation: 6000, Case: "Dead"},
			beam.PointLoad{Direction: beam.Fy, Magnitude: -2000, Location: 3000, Case: "Snow"},
		},
	}
	table, err := loadcombo.Builtin("eurocode")
	if err != nil {
		t.Fatal(err)
	}
	m, err := analysis.NewModel(b, table, analysis.Options{Points: 25})
	if err != nil {
		t.Fatal(err)
	}
	r, err := FromModel(m, fe.Moment, fe.Shear)
	if err != nil {
		t.Fatalf("FromModel() error: %v", err)
	}
	check, err := capacity.CheckEnvelope(r.Sections[0].Envelope, 50e6)
	if err != nil {
		t.Fatal(err)
	}
	r.Capacity = &check
	return r
}

func TestFromModel(t *testing.T) {
	r := testReport(t)
	if r.TableName != "eurocode" {
		t.Errorf("TableName = %q", r.TableName)
	}
	if len(r.Sections) != 2 || r.Sections[0].Title() != "Moment Mz" || r.Sections[1].Title() != "Shear Fy" {
		t.Errorf("sections = %v", r.Sections)
	}
	if len(r.Summary) != len(fe.Quantities) {
		t.Errorf("len(Summary) = %d", len(r.Summary))
	}
}

func TestWriteWorkbook(t *testing.T) {
	r := testReport(t)
	path := filepath.Join(t.TempDir(), "report.xlsx")
	if err := WriteWorkbook(r, path); err != nil {
		t.Fatalf("WriteWorkbook() error: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	want := []string{"Beam", "Summary", "Moment Mz", "Shear Fy"}
	got := f.GetSheetList()
	if len(got) != len(want) {
		t.Fatalf("sheets = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sheet %d = %q, want %q", i, got[i], want[i])
		}
	}

	rows, err := f.GetRows("Moment Mz")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1+25 {
		t.Errorf("moment sheet has %d rows, want 26", len(rows))
	}
	if rows[0][0] != "x" || rows[0][5] != "LC1" {
		t.Errorf("header = %v", rows[0])
	}

	name, _ := f.GetCellValue("Beam", "B1")
	if name != "Roof purlin" {
		t.Errorf("beam name cell = %q", name)
	}
}

func TestWritePDF(t *testing.T) {
	r := testReport(t)
	dir := t.TempDir()
	r.Image = filepath.Join(dir, "moment.png")
	if err := diagram.ExportEnvelope(r.Sections[0].Envelope, diagram.PlotOptions{Title: "Moment"}, r.Image); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(dir, "report.pdf")
	if err := WritePDF(r, path); err != nil {
		t.Fatalf("WritePDF() error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("output does not start with a PDF header")
	}
}

func TestSheetName(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Moment Mz", "Moment Mz"},
		{"a/b:c", "a_b_c"},
		{"0123456789012345678901234567890123", "0123456789012345678901234567890"},
	}
	for _, tt := range tests {
		if got := sheetName(tt.in); got != tt.want {
			t.Errorf("sheetName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
