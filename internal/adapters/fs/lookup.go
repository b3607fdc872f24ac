package fs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/alma-imf/contsel/internal/domain"
)

// LookupTable implements ports.SelectionLookup over the survey's
// "<field><band>" -> path JSON table.
type LookupTable struct {
	entries map[string]string
}

// LookupOverride is a named partial replacement of lookup entries. An empty
// path removes the entry.
type LookupOverride struct {
	Name    string
	Entries map[string]string
}

// LookupKey builds the table key for field in band, e.g. "G010.62B3".
func LookupKey(field string, band domain.BandID) string {
	return field + string(band)
}

// NewLookupTable copies entries into a table.
func NewLookupTable(entries map[string]string) *LookupTable {
	t := &LookupTable{entries: make(map[string]string, len(entries))}
	for k, v := range entries {
		t.entries[k] = v
	}
	return t
}

// LoadLookupTable reads a JSON object mapping keys to selection file paths.
// Relative paths are resolved against baseDir.
func LoadLookupTable(path, baseDir string) (*LookupTable, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw map[string]string
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("%w: lookup table %s: %v", domain.ErrConfiguration, path, err)
	}
	t := &LookupTable{entries: make(map[string]string, len(raw))}
	for k, v := range raw {
		if v == "" {
			continue
		}
		t.entries[k] = rootify(v, baseDir)
	}
	return t, nil
}

// WithOverrides returns a new table with overrides applied in order. The
// receiver is left untouched.
func (t *LookupTable) WithOverrides(baseDir string, overrides ...LookupOverride) *LookupTable {
	out := NewLookupTable(t.entries)
	for _, o := range overrides {
		keys := make([]string, 0, len(o.Entries))
		for k := range o.Entries {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if v := o.Entries[k]; v == "" {
				delete(out.entries, k)
			} else {
				out.entries[k] = rootify(v, baseDir)
			}
		}
	}
	return out
}

// Lookup returns the selection file for field in band.
func (t *LookupTable) Lookup(field string, band domain.BandID) (string, bool) {
	p, ok := t.entries[LookupKey(field, band)]
	return p, ok
}

// Paths lists every distinct selection file path, sorted.
func (t *LookupTable) Paths() []string {
	seen := make(map[string]bool, len(t.entries))
	paths := make([]string, 0, len(t.entries))
	for _, p := range t.entries {
		if !seen[p] {
			seen[p] = true
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)
	return paths
}

// Len returns the number of entries.
func (t *LookupTable) Len() int { return len(t.entries) }

// rootify returns path unchanged if absolute or baseDir is empty, otherwise
// it joins baseDir and path.
func rootify(path, baseDir string) string {
	if filepath.IsAbs(path) || baseDir == "" {
		return path
	}
	return filepath.Join(baseDir, path)
}
