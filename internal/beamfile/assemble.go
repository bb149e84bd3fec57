package beamfile

import (
	"fmt"
	"math"
	"strings"

	"github.com/alexiusacademia/gobeam/internal/beam"
)

// Options controls how strictly a tokenized file is assembled.
type Options struct {
	// Strict rejects a property line that stops between the required and the
	// full key list, and non-numeric optional properties. When false such
	// properties fall back to beam.DefaultProperty.
	Strict bool
	// Sheet names the worksheet read from an .xlsx file. Empty means the first.
	Sheet string
}

const (
	pointTag = "POINT"
	distTag  = "DIST"
	caseTag  = "case"
)

// Assemble turns a tokenized file into a validated beam record.
// Lines after the name are, in order: properties, supports, then loads.
func Assemble(f *File, opts Options) (*beam.Beam, error) {
	if f == nil {
		return nil, fmt.Errorf("%w: nothing to assemble", ErrMalformedBeamFile)
	}
	if len(f.Lines) < 2 {
		return nil, fmt.Errorf("%w: beam %q needs a property line and a support line", ErrMalformedBeamFile, f.Name)
	}

	props, err := parseProperties(f.Lines[0], opts)
	if err != nil {
		return nil, err
	}
	supports, err := parseSupports(f.Lines[1])
	if err != nil {
		return nil, err
	}

	b := &beam.Beam{
		Name:       f.Name,
		Properties: props,
		Supports:   supports,
	}
	for _, line := range f.Lines[2:] {
		load, err := parseLoad(line)
		if err != nil {
			return nil, err
		}
		b.Loads = append(b.Loads, load)
	}

	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedBeamFile, err)
	}
	return b, nil
}

// Parse reads and assembles a beam file in one step.
func Parse(path string, opts Options) (*beam.Beam, error) {
	var (
		f   *File
		err error
	)
	if opts.Sheet != "" {
		f, err = ReadWorkbook(path, opts.Sheet)
	} else {
		f, err = ReadFile(path)
	}
	if err != nil {
		return nil, err
	}
	return Assemble(f, opts)
}

// parseProperties assigns tokens positionally against beam.PropertyKeys.
func parseProperties(line Line, opts Options) (beam.Properties, error) {
	p := beam.DefaultProperties()
	n := len(line.Tokens)
	keys := beam.PropertyKeys

	if n < beam.RequiredProperties {
		return p, lineErr(line.Number, 0, nil, "property line has %d fields, need at least %d (%s)",
			n, beam.RequiredProperties, strings.Join(keys[:beam.RequiredProperties], ", "))
	}
	if n > len(keys) {
		return p, lineErr(line.Number, 0, nil, "property line has %d fields, at most %d allowed", n, len(keys))
	}
	if opts.Strict && n > beam.RequiredProperties && n < len(keys) {
		return p, lineErr(line.Number, 0, nil, "property line stops after %s; give all of %s or only %s",
			keys[n-1], strings.Join(keys, ", "), strings.Join(keys[:beam.RequiredProperties], ", "))
	}

	for i, key := range keys {
		if i >= n {
			p.Defaulted = append(p.Defaulted, key)
			continue
		}
		v, ok := line.Tokens[i].Number()
		if !ok {
			if i < beam.RequiredProperties || opts.Strict {
				return p, lineErr(line.Number, i+1, nil, "property %s is not numeric: %q", key, line.Tokens[i].Raw)
			}
			p.Defaulted = append(p.Defaulted, key)
			continue
		}
		if !isFinite(v) {
			return p, lineErr(line.Number, i+1, nil, "property %s is not finite: %q", key, line.Tokens[i].Raw)
		}
		if err := p.Set(key, v); err != nil {
			return p, lineErr(line.Number, i+1, err, "assigning property")
		}
	}
	return p, nil
}

// parseSupports reads "<location>:<code>" tokens. A repeated location keeps
// its first position and takes the last code given.
func parseSupports(line Line) ([]beam.Support, error) {
	var supports []beam.Support
	index := make(map[float64]int)

	for i, tok := range line.Tokens {
		loc, code, ok := strings.Cut(tok.Raw, ":")
		if !ok {
			return nil, lineErr(line.Number, i+1, nil, "support %q is not <location>:<code>", tok.Raw)
		}
		x, isNum := ParseToken(loc).Number()
		if !isNum || !isFinite(x) {
			return nil, lineErr(line.Number, i+1, nil, "support location %q is not a finite number", loc)
		}
		kind, err := beam.ParseSupportCode(code)
		if err != nil {
			return nil, lineErr(line.Number, i+1, err, "invalid support")
		}

		if j, seen := index[x]; seen {
			supports[j].Kind = kind
			continue
		}
		index[x] = len(supports)
		supports = append(supports, beam.Support{Location: x, Kind: kind})
	}
	return supports, nil
}

// parseLoad reads a POINT or DIST line.
func parseLoad(line Line) (beam.Load, error) {
	toks := line.Tokens
	if len(toks) == 0 {
		return nil, lineErr(line.Number, 0, nil, "empty load line")
	}

	tag, dirText, ok := strings.Cut(toks[0].Raw, ":")
	if !ok {
		return nil, lineErr(line.Number, 1, nil, "load discriminator %q is not POINT:<dir> or DIST:<dir>", toks[0].Raw)
	}
	dir, err := beam.ParseDirection(dirText)
	if err != nil {
		return nil, lineErr(line.Number, 1, err, "invalid load direction")
	}

	var want int
	switch strings.ToUpper(tag) {
	case pointTag:
		want = 4
	case distTag:
		want = 6
	default:
		return nil, lineErr(line.Number, 1, nil, "unknown load type %q", tag)
	}
	if len(toks) != want {
		return nil, lineErr(line.Number, 0, nil, "%s load has %d fields, want %d", strings.ToUpper(tag), len(toks), want)
	}

	loadCase, err := parseCase(line, toks[want-1], want)
	if err != nil {
		return nil, err
	}
	nums := make([]float64, want-2)
	for i := range nums {
		v, ok := toks[i+1].Number()
		if !ok || !isFinite(v) {
			return nil, lineErr(line.Number, i+2, nil, "load value %q is not a finite number", toks[i+1].Raw)
		}
		nums[i] = v
	}

	if want == 4 {
		return beam.PointLoad{
			Direction: dir,
			Magnitude: nums[0],
			Location:  nums[1],
			Case:      loadCase,
		}, nil
	}
	if !dir.IsForce() {
		return nil, lineErr(line.Number, 1, nil, "distributed load direction must be Fx, Fy or Fz, got %s", dir)
	}
	return beam.DistLoad{
		Direction:      dir,
		StartMagnitude: nums[0],
		EndMagnitude:   nums[1],
		StartLocation:  nums[2],
		EndLocation:    nums[3],
		Case:           loadCase,
	}, nil
}

func parseCase(line Line, tok Token, field int) (string, error) {
	tag, name, ok := strings.Cut(tok.Raw, ":")
	if !ok || tag != caseTag {
		return "", lineErr(line.Number, field, nil, "expected case:<name>, got %q", tok.Raw)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", lineErr(line.Number, field, nil, "load case name is empty")
	}
	return name, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
