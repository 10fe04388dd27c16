package csvmapper

import (
	"errors"

	"csv-mapper/convert"
	"csv-mapper/internal/stream"
	"csv-mapper/record"
)

var (
	// ErrConfiguration is returned by New for an empty path, a nil schema or
	// an invalid Config.
	ErrConfiguration = errors.New("invalid configuration")
	// ErrFileNotFound is returned when the input path does not exist.
	ErrFileNotFound = stream.ErrFileNotFound
	// ErrMapping is the sticky error of SetField and RemoveField calls that
	// name a field outside the schema.
	ErrMapping = errors.New("invalid field mapping")
	// ErrConversion is returned when a cell cannot be parsed into its field type.
	ErrConversion = convert.ErrConversion
	// ErrRowShape is returned when a row has fewer cells than the mapping needs.
	ErrRowShape = record.ErrRowShape
	// ErrFieldNotFound is returned when the mapping names a field the schema lacks.
	ErrFieldNotFound = record.ErrFieldNotFound
)
