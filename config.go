package csvmapper

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"csv-mapper/convert"
	"csv-mapper/diagnostic"
	"csv-mapper/internal/stream"
	"csv-mapper/primitive"
)

// DefaultSeparator is the cell separator used when none is configured.
const DefaultSeparator = ','

// Opener opens the input file. The default is os.Open.
type Opener = stream.Opener

// Config holds the settings of a Mapper. It is copied at construction and
// never changes afterwards.
type Config struct {
	// Separator delimits cells. Zero means DefaultSeparator.
	Separator rune
	// HasHeader skips the first line of the file.
	HasHeader bool
	// AutoSet infers the mapping from the header line and forces HasHeader.
	AutoSet bool

	// TimeLayouts are tried in order for time.Time fields.
	// Empty means convert.DefaultTimeLayouts.
	TimeLayouts []string
	// Categories enables textual forms such as "yes"/"no" booleans.
	// Zero means primitive.CategoryStandard.
	Categories primitive.CategoryEnum
	// Location applies to times without a zone. Nil means UTC.
	Location *time.Location
	// MaxLineSize bounds a single line in bytes. Zero means
	// stream.DefaultMaxLineSize (1 MiB). A longer line stops the load with an
	// error wrapping bufio.ErrTooLong. Lines end at "\n" with an optional
	// preceding "\r"; a lone "\r" does not end a line and stays in the cell.
	MaxLineSize int

	// Diagnostics receives non-fatal notices such as unmatched header columns.
	// Nil means warnings are logged to stderr.
	Diagnostics diagnostic.Sink
	// Opener opens the input file. Nil means os.Open.
	Opener Opener
	// Logger receives debug events. Nil disables library logging.
	Logger *zerolog.Logger
}

// DefaultConfig returns a comma separated configuration with a header line
// and no header inference.
func DefaultConfig() Config {
	return Config{
		Separator: DefaultSeparator,
		HasHeader: true,
	}
}

// AutoSetConfig returns DefaultConfig with header inference enabled.
func AutoSetConfig() Config {
	cfg := DefaultConfig()
	cfg.AutoSet = true

	return cfg
}

func (c Config) normalized() (Config, error) {
	if c.Separator == 0 {
		c.Separator = DefaultSeparator
	}

	if c.Separator == '\n' || c.Separator == '\r' || c.Separator == utf8.RuneError || !utf8.ValidRune(c.Separator) {
		return c, fmt.Errorf("%w: invalid separator %q", ErrConfiguration, c.Separator)
	}

	if c.MaxLineSize < 0 {
		return c, fmt.Errorf("%w: negative max line size %d", ErrConfiguration, c.MaxLineSize)
	}

	if c.AutoSet {
		c.HasHeader = true
	}

	if c.Diagnostics == nil {
		c.Diagnostics = diagnostic.NewStderrSink()
	}

	if c.Opener == nil {
		c.Opener = stream.OpenFile
	}

	return c, nil
}

func (c Config) convertOptions() convert.Options {
	return convert.Options{
		Categories:  c.Categories,
		TimeLayouts: c.TimeLayouts,
		Location:    c.Location,
	}
}

func (c Config) streamOptions() stream.Options {
	return stream.Options{
		Separator:   c.Separator,
		SkipHeader:  c.HasHeader,
		MaxLineSize: c.MaxLineSize,
		Logger:      c.Logger,
	}
}

func (c Config) logger() zerolog.Logger {
	if c.Logger == nil {
		return zerolog.Nop()
	}

	return *c.Logger
}
