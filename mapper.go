package csvmapper

import (
	"fmt"
	"iter"

	"github.com/rs/zerolog"

	"csv-mapper/internal/header"
	"csv-mapper/internal/stream"
	"csv-mapper/mapping"
	"csv-mapper/record"
)

// Mapper reads one CSV file into records of type T.
//
// The mapping is set up with SetField calls, inferred from the header line
// (Config.AutoSet), or both. A Mapper is not safe for concurrent mutation.
type Mapper[T any] struct {
	path   string
	schema *record.Schema[T]
	cfg    Config
	table  *mapping.Table
	err    error
	logger zerolog.Logger
}

// New creates a Mapper for path. With Config.AutoSet the header line is read
// here, so a missing file fails with ErrFileNotFound.
func New[T any](path string, schema *record.Schema[T], cfg Config) (*Mapper[T], error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty file path", ErrConfiguration)
	}

	if schema == nil {
		return nil, fmt.Errorf("%w: nil schema", ErrConfiguration)
	}

	cfg, err := cfg.normalized()
	if err != nil {
		return nil, err
	}

	m := &Mapper[T]{
		path:   path,
		schema: schema,
		cfg:    cfg,
		table:  mapping.NewTable(),
		logger: cfg.logger().With().Str("path", path).Logger(),
	}

	if cfg.AutoSet {
		if err := m.autoSet(); err != nil {
			return nil, err
		}
	}

	return m, nil
}

func (m *Mapper[T]) autoSet() error {
	line, err := stream.ReadHeader(m.cfg.Opener, m.path, m.cfg.MaxLineSize)
	if err != nil {
		return err
	}

	m.table = header.Infer(line, m.cfg.Separator, m.schema.Names(), m.cfg.Diagnostics)

	m.logger.Debug().
		Int("mapped", m.table.Len()).
		Strs("fields", m.table.Fields()).
		Msg("inferred mapping from header")

	return nil
}

// SetField maps column to the zero-based cell position, replacing any
// previous position. A column outside the schema or a negative position
// records a sticky error returned by Err, Open and Load.
func (m *Mapper[T]) SetField(column *record.Column[T], position int) *Mapper[T] {
	if m.err != nil {
		return m
	}

	if !m.schema.Contains(column) {
		m.err = fmt.Errorf("%w: column %s is not part of the schema", ErrMapping, columnName(column))
		return m
	}

	return m.set(column.Name(), position)
}

// SetFieldByName is SetField for a field identifier.
func (m *Mapper[T]) SetFieldByName(name string, position int) *Mapper[T] {
	if m.err != nil {
		return m
	}

	if _, ok := m.schema.Lookup(name); !ok {
		m.err = fmt.Errorf("%w: %w: %q", ErrMapping, ErrFieldNotFound, name)
		return m
	}

	return m.set(name, position)
}

func (m *Mapper[T]) set(name string, position int) *Mapper[T] {
	if err := m.table.Set(name, position); err != nil {
		m.err = fmt.Errorf("%w: %w", ErrMapping, err)
		return m
	}

	return m
}

// RemoveField drops the mapping of column. Removing an unmapped column is a no-op.
func (m *Mapper[T]) RemoveField(column *record.Column[T]) *Mapper[T] {
	if m.err != nil {
		return m
	}

	if !m.schema.Contains(column) {
		m.err = fmt.Errorf("%w: column %s is not part of the schema", ErrMapping, columnName(column))
		return m
	}

	m.table.Remove(column.Name())

	return m
}

// RemoveFieldByName is RemoveField for a field identifier.
func (m *Mapper[T]) RemoveFieldByName(name string) *Mapper[T] {
	if m.err != nil {
		return m
	}

	if _, ok := m.schema.Lookup(name); !ok {
		m.err = fmt.Errorf("%w: %w: %q", ErrMapping, ErrFieldNotFound, name)
		return m
	}

	m.table.Remove(name)

	return m
}

// Err returns the first error recorded by a mapping call.
func (m *Mapper[T]) Err() error {
	return m.err
}

// Path returns the input file path.
func (m *Mapper[T]) Path() string {
	return m.path
}

// Table returns a copy of the current mapping.
func (m *Mapper[T]) Table() *mapping.Table {
	return m.table.Clone()
}

// Config returns the effective configuration.
func (m *Mapper[T]) Config() Config {
	return m.cfg
}

// Open starts a single pass over the file. The mapping is frozen into the
// returned Rows; later SetField calls do not affect it.
func (m *Mapper[T]) Open() (*Rows[T], error) {
	if m.err != nil {
		return nil, m.err
	}

	plan, err := m.schema.Bind(m.table, m.cfg.convertOptions())
	if err != nil {
		return nil, err
	}

	r, err := stream.Open(m.cfg.Opener, m.path, m.cfg.streamOptions())
	if err != nil {
		return nil, err
	}

	m.logger.Debug().Int("mapped", m.table.Len()).Int("width", plan.Width()).Msg("reading records")

	return &Rows[T]{reader: r, plan: plan}, nil
}

// Load returns the records of the file as a lazy single pass sequence.
// The file is opened when iteration starts and closed when it ends, when the
// consumer stops early, or after the first error, which is yielded with the
// zero T and ends the sequence.
func (m *Mapper[T]) Load() iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		rows, err := m.Open()
		if err != nil {
			var zero T
			yield(zero, err)

			return
		}
		defer func() { _ = rows.Close() }()

		for rows.Next() {
			if !yield(rows.Record(), nil) {
				return
			}
		}

		if err := rows.Err(); err != nil {
			var zero T
			yield(zero, err)
		}
	}
}

// Collect reads every record into a slice. On error the records read so far
// are returned with it.
func (m *Mapper[T]) Collect() ([]T, error) {
	var out []T

	for rec, err := range m.Load() {
		if err != nil {
			return out, err
		}

		out = append(out, rec)
	}

	return out, nil
}

func columnName[T any](c *record.Column[T]) string {
	if c == nil {
		return "<nil>"
	}

	return fmt.Sprintf("%q", c.Name())
}
