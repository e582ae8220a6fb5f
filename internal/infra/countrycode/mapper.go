// Package countrycode maps ISO 3166-1 alpha-3 country codes to the lower-case
// alpha-2 form used by news sources.
package countrycode

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed codes.yaml
var embeddedCodes []byte

// Mapper is an immutable alpha-3 to alpha-2 lookup table. Safe for concurrent use.
type Mapper struct {
	codes map[string]string
}

// New returns a Mapper over the embedded ISO table.
func New() (*Mapper, error) {
	codes, err := parse(embeddedCodes)
	if err != nil {
		return nil, fmt.Errorf("parse embedded country codes: %w", err)
	}
	return &Mapper{codes: codes}, nil
}

// NewWithOverrides returns a Mapper over the embedded table with the entries of
// the YAML file at path merged on top. An empty path is the same as New.
func NewWithOverrides(path string) (*Mapper, error) {
	m, err := New()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return m, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read country code overrides: %w", err)
	}
	overrides, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse country code overrides %s: %w", path, err)
	}
	for k, v := range overrides {
		m.codes[k] = v
	}
	return m, nil
}

// Alpha2 returns the lower-case alpha-2 code for alpha3, matched case-insensitively.
// The second result is false for codes absent from the table.
func (m *Mapper) Alpha2(alpha3 string) (string, bool) {
	v, ok := m.codes[strings.ToUpper(strings.TrimSpace(alpha3))]
	return v, ok
}

// Len returns the number of mapped codes.
func (m *Mapper) Len() int {
	return len(m.codes)
}

func parse(data []byte) (map[string]string, error) {
	var raw map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	codes := make(map[string]string, len(raw))
	for k, v := range raw {
		a3 := strings.ToUpper(strings.TrimSpace(k))
		a2 := strings.ToLower(strings.TrimSpace(v))
		if len(a3) != 3 || len(a2) != 2 {
			return nil, fmt.Errorf("invalid mapping %q: %q", k, v)
		}
		codes[a3] = a2
	}
	return codes, nil
}
