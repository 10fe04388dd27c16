package csvmapper

import (
	"fmt"

	"csv-mapper/mapping"
	"csv-mapper/record"
)

// NewFromProfile creates a Mapper configured by a profile. The profile's
// separator, header, autoset and time layouts replace those of base. Its
// explicit fields are applied after header inference and take precedence.
func NewFromProfile[T any](path string, schema *record.Schema[T], profile *mapping.Profile, base Config) (*Mapper[T], error) {
	if profile == nil {
		return nil, fmt.Errorf("%w: nil profile", ErrConfiguration)
	}

	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	cfg := base
	cfg.Separator = profile.SeparatorRune()
	cfg.HasHeader = profile.HasHeader()
	cfg.AutoSet = profile.AutoSet

	if len(profile.TimeLayouts) > 0 {
		cfg.TimeLayouts = profile.TimeLayouts
	}

	m, err := New(path, schema, cfg)
	if err != nil {
		return nil, err
	}

	table, err := profile.Table()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	for field, pos := range table.All() {
		m.SetFieldByName(field, pos)
	}

	if err := m.Err(); err != nil {
		return nil, err
	}

	return m, nil
}

// Profile captures the mapper's current settings and mapping, for saving
// with mapping.WriteProfile.
func (m *Mapper[T]) Profile() *mapping.Profile {
	p := mapping.ProfileFromTable(m.table, m.cfg.Separator, m.cfg.HasHeader)
	p.TimeLayouts = m.cfg.TimeLayouts

	return p
}
