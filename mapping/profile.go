package mapping

import (
	"fmt"
	"os"
	"sort"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DefaultSeparator is used when a profile does not name one.
const DefaultSeparator = ','

var validate = validator.New()

// Profile is a reusable, file-backed description of how to read one CSV layout.
type Profile struct {
	// Separator is the single character between cells. Empty means ",".
	Separator string `mapstructure:"separator" validate:"omitempty,len=1" yaml:"separator,omitempty"`
	// Header reports whether the first line holds column names. Nil means true.
	Header *bool `mapstructure:"header" yaml:"header,omitempty"`
	// AutoSet infers the mapping from the header line. It implies Header.
	AutoSet bool `mapstructure:"autoset" yaml:"autoset,omitempty"`
	// TimeLayouts replace the default time layouts when non-empty.
	TimeLayouts []string `mapstructure:"time_layouts" validate:"dive,required" yaml:"time_layouts,omitempty"`
	// Fields maps record field identifiers to zero-based column positions.
	Fields map[string]int `mapstructure:"fields" validate:"dive,keys,required,endkeys,gte=0" yaml:"fields,omitempty"`
}

// LoadProfile reads and validates a YAML profile from path.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile %s: %w", path, err)
	}

	return ParseProfile(data)
}

// ParseProfile parses and validates YAML profile data.
func ParseProfile(data []byte) (*Profile, error) {
	var p Profile

	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse profile YAML: %w", err)
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	return &p, nil
}

// DecodeProfile builds a profile from loosely typed settings, such as a
// sub-tree read by viper.
func DecodeProfile(settings map[string]any) (*Profile, error) {
	var p Profile

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &p,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create profile decoder: %w", err)
	}

	if err := decoder.Decode(settings); err != nil {
		return nil, fmt.Errorf("failed to decode profile: %w", err)
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	return &p, nil
}

// Validate checks field constraints.
func (p *Profile) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("invalid profile: %w", err)
	}

	return nil
}

// SeparatorRune returns the configured separator or DefaultSeparator.
func (p *Profile) SeparatorRune() rune {
	if p.Separator == "" {
		return DefaultSeparator
	}

	r, _ := utf8.DecodeRuneInString(p.Separator)

	return r
}

// HasHeader reports whether the first line is a header. AutoSet forces true.
func (p *Profile) HasHeader() bool {
	if p.AutoSet || p.Header == nil {
		return true
	}

	return *p.Header
}

// Table builds a mapping table from Fields, ordered by position then name.
func (p *Profile) Table() (*Table, error) {
	names := make([]string, 0, len(p.Fields))
	for name := range p.Fields {
		names = append(names, name)
	}

	sort.Slice(names, func(i, j int) bool {
		pi, pj := p.Fields[names[i]], p.Fields[names[j]]
		if pi != pj {
			return pi < pj
		}

		return names[i] < names[j]
	})

	t := NewTable()
	for _, name := range names {
		if err := t.Set(name, p.Fields[name]); err != nil {
			return nil, err
		}
	}

	return t, nil
}

// MarshalProfile serializes a profile to YAML.
func MarshalProfile(p *Profile) ([]byte, error) {
	return yaml.Marshal(p)
}

// WriteProfile writes a profile to path.
func WriteProfile(p *Profile, path string) error {
	data, err := MarshalProfile(p)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write profile %s: %w", path, err)
	}

	return nil
}

// ProfileFromTable captures a table and reader settings as a profile.
func ProfileFromTable(t *Table, separator rune, header bool) *Profile {
	p := &Profile{
		Fields: make(map[string]int, t.Len()),
		Header: &header,
	}

	if separator != DefaultSeparator {
		p.Separator = string(separator)
	}

	for field, pos := range t.All() {
		p.Fields[field] = pos
	}

	return p
}
