package convert

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"csv-mapper/optional"
	"csv-mapper/primitive"
)

// DefaultTimeLayouts are tried in order for time.Time cells.
var DefaultTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

var (
	errNoCategory = errors.New("no enabled conversion category accepts this kind")
	errNoLayout   = errors.New("text matches none of the configured time layouts")
	errBool       = errors.New("not a recognised boolean")
	errDuration   = errors.New("seconds out of the time.Duration range")
)

// Options tune how text is interpreted.
type Options struct {
	// Categories enables textual forms per kind.
	Categories primitive.CategoryEnum
	// TimeLayouts are tried in order by CategoryDatetime.
	TimeLayouts []string
	// Location is used for layouts without a zone and for Unix timestamps.
	Location *time.Location
}

// DefaultOptions returns the standard categories, DefaultTimeLayouts and UTC.
func DefaultOptions() Options {
	return Options{
		Categories:  primitive.CategoryStandard,
		TimeLayouts: DefaultTimeLayouts,
		Location:    time.UTC,
	}
}

func (o Options) normalized() Options {
	if o.Categories == primitive.CategoryNone {
		o.Categories = primitive.CategoryStandard
	}

	if len(o.TimeLayouts) == 0 {
		o.TimeLayouts = DefaultTimeLayouts
	}

	if o.Location == nil {
		o.Location = time.UTC
	}

	return o
}

// Parse converts text into V. An empty text yields the zero value of V.
// Text is never trimmed: "  " is not empty.
func Parse[V primitive.Scalar](text string, opts Options) (V, error) {
	var zero V
	if text == "" {
		return zero, nil
	}

	v, err := ParseKind(text, primitive.KindOf[V](), opts)
	if err != nil {
		return zero, err
	}

	return v.(V), nil
}

// ParseOptional converts text into an optional V. An empty text yields None.
func ParseOptional[V primitive.Scalar](text string, opts Options) (optional.Value[V], error) {
	if text == "" {
		return optional.None[V](), nil
	}

	v, err := Parse[V](text, opts)
	if err != nil {
		return optional.None[V](), err
	}

	return optional.Some(v), nil
}

// ParsePointer converts text into a *V. An empty text yields nil.
func ParsePointer[V primitive.Scalar](text string, opts Options) (*V, error) {
	if text == "" {
		return nil, nil
	}

	v, err := Parse[V](text, opts)
	if err != nil {
		return nil, err
	}

	return &v, nil
}

// ParseKind converts a non-empty text into the Go value of kind.
// The dynamic type of the result is exactly the scalar type of kind.
func ParseKind(text string, kind primitive.KindEnum, opts Options) (any, error) {
	opts = opts.normalized()

	if !opts.Categories.Accepts(kind) {
		return nil, &Error{Text: text, Kind: kind, Err: errNoCategory}
	}

	var (
		v   any
		err error
	)

	switch {
	case kind == primitive.KindString:
		v = text
	case kind.IsSigned():
		v, err = parseSigned(text, kind)
	case kind.IsUnsigned():
		v, err = parseUnsigned(text, kind)
	case kind.IsFloat():
		v, err = parseFloat(text, kind)
	case kind == primitive.KindBool:
		v, err = parseBool(text, opts.Categories)
	case kind == primitive.KindTime:
		v, err = parseTime(text, opts)
	case kind == primitive.KindDuration:
		v, err = parseDuration(text, opts.Categories)
	default:
		err = fmt.Errorf("unsupported kind %s", kind)
	}

	if err != nil {
		return nil, &Error{Text: text, Kind: kind, Err: err}
	}

	return v, nil
}

func parseSigned(text string, kind primitive.KindEnum) (any, error) {
	n, err := strconv.ParseInt(text, 10, kind.Bits())
	if err != nil {
		return nil, err
	}

	switch kind {
	case primitive.KindInt8:
		return int8(n), nil
	case primitive.KindInt16:
		return int16(n), nil
	case primitive.KindInt32:
		return int32(n), nil
	case primitive.KindInt64:
		return n, nil
	default:
		return int(n), nil
	}
}

func parseUnsigned(text string, kind primitive.KindEnum) (any, error) {
	n, err := strconv.ParseUint(text, 10, kind.Bits())
	if err != nil {
		return nil, err
	}

	switch kind {
	case primitive.KindUint8:
		return uint8(n), nil
	case primitive.KindUint16:
		return uint16(n), nil
	case primitive.KindUint32:
		return uint32(n), nil
	case primitive.KindUint64:
		return n, nil
	default:
		return uint(n), nil
	}
}

func parseFloat(text string, kind primitive.KindEnum) (any, error) {
	f, err := strconv.ParseFloat(text, kind.Bits())
	if err != nil {
		return nil, err
	}

	if kind == primitive.KindFloat32 {
		return float32(f), nil
	}

	return f, nil
}

func parseBool(text string, categories primitive.CategoryEnum) (any, error) {
	if categories.Has(primitive.CategoryStrictBool) {
		if b, err := strconv.ParseBool(text); err == nil {
			return b, nil
		}
	}

	if categories.Has(primitive.CategoryTextualBool) {
		switch strings.ToLower(text) {
		case "yes", "y", "on", "true":
			return true, nil
		case "no", "n", "off", "false":
			return false, nil
		}
	}

	return nil, errBool
}

func parseTime(text string, opts Options) (any, error) {
	if opts.Categories.Has(primitive.CategoryDatetime) {
		for _, layout := range opts.TimeLayouts {
			if t, err := time.ParseInLocation(layout, text, opts.Location); err == nil {
				return t, nil
			}
		}
	}

	if opts.Categories.Has(primitive.CategoryTimestamp) {
		if sec, err := strconv.ParseInt(text, 10, 64); err == nil {
			return time.Unix(sec, 0).In(opts.Location), nil
		}
	}

	return nil, errNoLayout
}

func parseDuration(text string, categories primitive.CategoryEnum) (any, error) {
	var firstErr error

	if categories.Has(primitive.CategoryDuration) {
		d, err := time.ParseDuration(text)
		if err == nil {
			return d, nil
		}

		firstErr = err
	}

	if categories.Has(primitive.CategorySeconds) {
		f, err := strconv.ParseFloat(text, 64)
		if err == nil {
			return secondsToDuration(f)
		}

		if firstErr == nil {
			firstErr = err
		}
	}

	return nil, firstErr
}

func secondsToDuration(sec float64) (any, error) {
	ns := sec * float64(time.Second)
	if math.IsNaN(ns) || ns >= math.MaxInt64 || ns < math.MinInt64 {
		return nil, errDuration
	}

	return time.Duration(ns), nil
}
