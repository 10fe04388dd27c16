package primitive

import (
	"math"
	"time"
)

//go:generate go tool stringer -type=KindEnum -output=kind_string.go

type KindEnum int

const (
	_ KindEnum = iota // skip zero value, use it as a default (invalid) value for KindEnum

	KindInt
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUint
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindFloat32
	KindFloat64
	KindBool
	KindString
	KindTime
	KindDuration
	KindCustom // any other type, converted by a caller supplied parser

	// KindTotal is a constant that represents the total number of kinds defined
	KindTotal = int(iota)
)

// Scalar is the set of Go types a cell can be converted into without a custom parser.
type Scalar interface {
	int | int8 | int16 | int32 | int64 |
		uint | uint8 | uint16 | uint32 | uint64 |
		float32 | float64 |
		bool | string | time.Time | time.Duration
}

func (k KindEnum) IsNumber() bool {
	switch k {
	default:
		return false
	case KindInt, KindInt8, KindInt16, KindInt32, KindInt64,
		KindUint, KindUint8, KindUint16, KindUint32, KindUint64,
		KindFloat32, KindFloat64:
		return true
	}
}

func (k KindEnum) IsInteger() bool {
	switch k {
	default:
		return false
	case KindInt, KindInt8, KindInt16, KindInt32, KindInt64,
		KindUint, KindUint8, KindUint16, KindUint32, KindUint64:
		return true
	}
}

func (k KindEnum) IsFloat() bool {
	switch k {
	default:
		return false
	case KindFloat32, KindFloat64:
		return true
	}
}

func (k KindEnum) IsSigned() bool {
	switch k {
	default:
		return false
	case KindInt, KindInt8, KindInt16, KindInt32, KindInt64:
		return true
	}
}

func (k KindEnum) IsUnsigned() bool {
	switch k {
	default:
		return false
	case KindUint, KindUint8, KindUint16, KindUint32, KindUint64:
		return true
	}
}

// IsValid reports whether k names one of the declared kinds.
func (k KindEnum) IsValid() bool {
	return k > 0 && int(k) < KindTotal
}

func (k KindEnum) Bits() int {
	switch k {
	default:
		panic("only number kinds has meaningful bits amount, but requested for: " + k.String())
	case KindInt, KindUint:
		power := 0
		for n := uint(math.MaxUint); n > 0; n >>= 1 {
			power++
		}
		return power
	case KindInt8, KindUint8:
		return 8
	case KindInt16, KindUint16:
		return 16
	case KindInt32, KindUint32:
		return 32
	case KindInt64, KindUint64:
		return 64
	case KindFloat32:
		return 32
	case KindFloat64:
		return 64
	}
}

// KindOf returns the kind of the scalar type V.
func KindOf[V Scalar]() KindEnum {
	var zero V

	switch any(zero).(type) {
	case int:
		return KindInt
	case int8:
		return KindInt8
	case int16:
		return KindInt16
	case int32:
		return KindInt32
	case int64:
		return KindInt64
	case uint:
		return KindUint
	case uint8:
		return KindUint8
	case uint16:
		return KindUint16
	case uint32:
		return KindUint32
	case uint64:
		return KindUint64
	case float32:
		return KindFloat32
	case float64:
		return KindFloat64
	case bool:
		return KindBool
	case string:
		return KindString
	case time.Time:
		return KindTime
	case time.Duration:
		return KindDuration
	}

	return 0
}

// FromName maps a Go type name as written in source ("int64", "time.Time")
// to its kind. It returns 0 for names outside the scalar set.
func FromName(name string) KindEnum {
	switch name {
	case "int":
		return KindInt
	case "int8":
		return KindInt8
	case "int16":
		return KindInt16
	case "int32", "rune":
		return KindInt32
	case "int64":
		return KindInt64
	case "uint":
		return KindUint
	case "uint8", "byte":
		return KindUint8
	case "uint16":
		return KindUint16
	case "uint32":
		return KindUint32
	case "uint64":
		return KindUint64
	case "float32":
		return KindFloat32
	case "float64":
		return KindFloat64
	case "bool":
		return KindBool
	case "string":
		return KindString
	case "time.Time":
		return KindTime
	case "time.Duration":
		return KindDuration
	}

	return 0
}
