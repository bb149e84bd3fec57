package loadcombo

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

//go:embed tables/*.toml
var builtinFS embed.FS

// DefaultTableName is the built-in table used when none is requested.
const DefaultTableName = "eurocode"

// Parse decodes a table from TOML.
func Parse(data []byte) (*Table, error) {
	var t Table
	md, err := toml.Decode(string(data), &t)
	if err != nil {
		return nil, fmt.Errorf("decoding load combination table: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("load combination table has unknown keys: %s", strings.Join(keys, ", "))
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// LoadFile reads a table from a TOML file. A table without a name takes the
// file's base name.
func LoadFile(filename string) (*Table, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading load combination table: %w", err)
	}
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	if t.Name == "" {
		t.Name = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	}
	return t, nil
}

// Builtin returns a fresh copy of a built-in table.
func Builtin(name string) (*Table, error) {
	data, err := builtinFS.ReadFile("tables/" + name + ".toml")
	if err != nil {
		return nil, fmt.Errorf("no built-in load combination table %q (have %s)", name, strings.Join(BuiltinNames(), ", "))
	}
	return Parse(data)
}

// BuiltinNames lists the built-in tables in alphabetical order.
func BuiltinNames() []string {
	entries, err := builtinFS.ReadDir("tables")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".toml"))
	}
	sort.Strings(names)
	return names
}

// Resolve returns a table from a file path when one is given, otherwise the
// named built-in table.
func Resolve(file, name string) (*Table, error) {
	if file != "" {
		return LoadFile(file)
	}
	if name == "" {
		name = DefaultTableName
	}
	return Builtin(name)
}
