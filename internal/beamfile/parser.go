// Package beamfile reads the line-oriented beam file format and assembles it
// into a beam.Beam.
//
// File layout:
//
//	<beam name>
//	<L>,<E>,<Iz>[,<Iy>,<A>,<J>,<nu>,<rho>]
//	<loc1>:<code1>,<loc2>:<code2>[,...]
//	POINT:<dir>,<magnitude>,<location>,case:<case>
//	DIST:<dir>,<start_mag>,<end_mag>,<start_loc>,<end_loc>,case:<case>
//
// The name line is taken as written. After it, blank lines and lines
// starting with '#' are ignored.
package beamfile

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Kind is the type a token was converted to.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindFloat
)

// Token is one comma-separated field, converted opportunistically to a number.
// A field that fails conversion keeps its literal text and KindString.
type Token struct {
	Raw   string
	Kind  Kind
	Float float64
	Int   int
}

// ParseToken trims s and tries a float conversion.
func ParseToken(s string) Token {
	s = strings.TrimSpace(s)
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return Token{Raw: s, Kind: KindFloat, Float: f}
	}
	return Token{Raw: s, Kind: KindString}
}

// ParseIdentToken trims s and tries an int conversion, for identifier-like
// fields such as "1000:P" or "case:Live".
func ParseIdentToken(s string) Token {
	s = strings.TrimSpace(s)
	if i, err := strconv.Atoi(s); err == nil {
		return Token{Raw: s, Kind: KindInt, Int: i, Float: float64(i)}
	}
	return Token{Raw: s, Kind: KindString}
}

// Number returns the numeric value of the token.
func (t Token) Number() (float64, bool) {
	switch t.Kind {
	case KindFloat, KindInt:
		return t.Float, true
	}
	return 0, false
}

func (t Token) String() string { return t.Raw }

// Line is the tokenized content of one source line.
type Line struct {
	Number int // 1-based line number in the source
	Tokens []Token
}

// File is a tokenized beam file: the name line plus all following lines.
type File struct {
	Name  string
	Lines []Line
}

// Tokenize converts raw lines (already split on commas) into a File. The first
// record is the beam name and is never converted.
func Tokenize(records [][]string, lineNumbers []int) (*File, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: empty file", ErrMalformedBeamFile)
	}
	number := func(i int) int {
		if i < len(lineNumbers) {
			return lineNumbers[i]
		}
		return i + 1
	}

	parts := make([]string, 0, len(records[0]))
	for _, p := range records[0] {
		parts = append(parts, strings.TrimSpace(p))
	}
	f := &File{Name: strings.Join(parts, ", ")}
	if f.Name == "" {
		return nil, lineErr(number(0), 0, nil, "beam name is empty")
	}

	for i, rec := range records[1:] {
		line := Line{Number: number(i + 1), Tokens: make([]Token, 0, len(rec))}
		for _, field := range rec {
			line.Tokens = append(line.Tokens, tokenize(field))
		}
		f.Lines = append(f.Lines, line)
	}
	return f, nil
}

// tokenize treats fields carrying a ':' tag as identifiers.
func tokenize(field string) Token {
	if strings.Contains(field, ":") {
		return ParseIdentToken(field)
	}
	return ParseToken(field)
}

// Read tokenizes comma-separated beam file content. The first non-blank line
// is the beam name and is taken verbatim apart from surrounding space, so it
// may contain commas, quotes or a leading '#'.
func Read(r io.Reader) (*File, error) {
	br := bufio.NewReader(r)
	var name string
	offset := 0
	for {
		raw, err := br.ReadString('\n')
		if raw != "" {
			offset++
			name = strings.TrimSpace(raw)
		}
		if name != "" {
			break
		}
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty file", ErrMalformedBeamFile)
		}
		if err != nil {
			return nil, err
		}
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	records := [][]string{{name}}
	numbers := []int{offset}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				return nil, lineErr(pe.Line+offset, 0, pe.Err, "column %d", pe.Column)
			}
			return nil, fmt.Errorf("%w: %w", ErrMalformedBeamFile, err)
		}
		if isBlank(rec) {
			continue
		}
		line, _ := cr.FieldPos(0)
		records = append(records, rec)
		numbers = append(numbers, line+offset)
	}
	return Tokenize(records, numbers)
}

// ReadFile tokenizes a beam file from disk. Files with an .xlsx extension are
// read as workbooks, one row per line.
func ReadFile(path string) (*File, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return ReadWorkbook(path, "")
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening beam file: %w", err)
	}
	defer fh.Close()
	return Read(fh)
}

func isBlank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
