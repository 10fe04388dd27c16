package stream

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"csv-mapper/internal/match"
)

// DefaultMaxLineSize bounds a single line, in bytes.
// Lines end at "\n" or "\r\n"; a lone "\r" is kept in the line.
const DefaultMaxLineSize = 1 << 20

// ErrFileNotFound is returned when the input path does not exist.
var ErrFileNotFound = errors.New("file not found")

// Opener opens a file for reading.
type Opener func(path string) (io.ReadCloser, error)

// OpenFile is the default Opener, backed by os.Open.
func OpenFile(path string) (io.ReadCloser, error) {
	return os.Open(path)
}

// Options configure a Reader.
type Options struct {
	// Separator splits a line into cells.
	Separator rune
	// SkipHeader consumes the first line before the first Next.
	SkipHeader bool
	// MaxLineSize bounds a line; zero means DefaultMaxLineSize.
	// Longer lines fail with an error wrapping bufio.ErrTooLong.
	MaxLineSize int
	// Logger receives debug events; nil disables them.
	Logger *zerolog.Logger
}

// Reader yields the cells of one line per Next call.
// It is single pass; reading again requires a new Reader.
type Reader struct {
	path    string
	file    io.ReadCloser
	scanner *bufio.Scanner
	sep     string
	logger  zerolog.Logger

	cells  []string
	line   int
	rows   int
	err    error
	closed bool
}

// Open opens path and positions the reader before the first data line.
func Open(open Opener, path string, opts Options) (*Reader, error) {
	if open == nil {
		open = OpenFile
	}

	f, err := openPath(open, path)
	if err != nil {
		return nil, err
	}

	r := &Reader{
		path:    path,
		file:    f,
		scanner: newScanner(f, opts.MaxLineSize),
		sep:     string(opts.Separator),
		logger:  loggerOrNop(opts.Logger),
	}

	r.logger.Debug().Str("path", path).Msg("opened csv file")

	if opts.SkipHeader {
		if r.scanner.Scan() {
			r.line++
		} else if err := r.scanner.Err(); err != nil {
			r.fail(fmt.Errorf("read header of %s: %w", path, err))
			return nil, r.err
		}
	}

	return r, nil
}

// Next advances to the next line. It returns false at end of file or on
// error; in both cases the file has been closed.
func (r *Reader) Next() bool {
	if r.closed {
		return false
	}

	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			r.fail(fmt.Errorf("read %s line %d: %w", r.path, r.line+1, err))
			return false
		}

		_ = r.Close()

		return false
	}

	r.line++
	r.rows++

	text := r.scanner.Text()
	if r.line == 1 {
		text = match.StripBOM(text)
	}

	r.cells = strings.Split(text, r.sep)

	return true
}

// Cells returns the cells of the current line.
func (r *Reader) Cells() []string {
	return r.cells
}

// Line returns the one-based line number of the current line, header included.
func (r *Reader) Line() int {
	return r.line
}

// Err returns the first read error, if any. End of file is not an error.
func (r *Reader) Err() error {
	return r.err
}

// Close releases the file. It is safe to call more than once.
func (r *Reader) Close() error {
	if r.closed {
		return nil
	}

	r.closed = true
	r.cells = nil

	err := r.file.Close()

	r.logger.Debug().Str("path", r.path).Int("rows", r.rows).Msg("closed csv file")

	return err
}

func (r *Reader) fail(err error) {
	r.err = err
	_ = r.Close()
}

// ReadHeader returns the first line of path, or "" for an empty file.
func ReadHeader(open Opener, path string, maxLineSize int) (string, error) {
	if open == nil {
		open = OpenFile
	}

	f, err := openPath(open, path)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	scanner := newScanner(f, maxLineSize)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", fmt.Errorf("read header of %s: %w", path, err)
		}

		return "", nil
	}

	return match.StripBOM(scanner.Text()), nil
}

func openPath(open Opener, path string) (io.ReadCloser, error) {
	f, err := open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s: %w", ErrFileNotFound, path, err)
		}

		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	return f, nil
}

func newScanner(r io.Reader, maxLineSize int) *bufio.Scanner {
	if maxLineSize <= 0 {
		maxLineSize = DefaultMaxLineSize
	}

	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, min(maxLineSize, 64*1024)), maxLineSize)

	return s
}

func loggerOrNop(l *zerolog.Logger) zerolog.Logger {
	if l == nil {
		return zerolog.Nop()
	}

	return *l
}
