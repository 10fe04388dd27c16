package analyze

import (
	"go/types"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"

	"csv-mapper/primitive"
)

func reflectTag(s string) reflect.StructTag {
	return reflect.StructTag(s)
}

func TestClassify(t *testing.T) {
	timePkg := types.NewPackage("time", "time")
	timeType := types.NewNamed(types.NewTypeName(0, timePkg, "Time", nil), types.NewStruct(nil, nil), nil)
	durationType := types.NewNamed(types.NewTypeName(0, timePkg, "Duration", nil), types.Typ[types.Int64], nil)

	userPkg := types.NewPackage("example/models", "models")
	level := types.NewNamed(types.NewTypeName(0, userPkg, "Level", nil), types.Typ[types.Int], nil)
	nested := types.NewNamed(types.NewTypeName(0, userPkg, "Address", nil), types.NewStruct(nil, nil), nil)

	tests := []struct {
		name      string
		typ       types.Type
		wantShape FieldShape
		wantKind  primitive.KindEnum
	}{
		{"int", types.Typ[types.Int], ShapeScalar, primitive.KindInt},
		{"byte", types.Universe.Lookup("byte").Type(), ShapeScalar, primitive.KindUint8},
		{"float32", types.Typ[types.Float32], ShapeScalar, primitive.KindFloat32},
		{"string", types.Typ[types.String], ShapeScalar, primitive.KindString},
		{"time.Time", timeType, ShapeScalar, primitive.KindTime},
		{"time.Duration", durationType, ShapeScalar, primitive.KindDuration},
		{"*bool", types.NewPointer(types.Typ[types.Bool]), ShapePointer, primitive.KindBool},
		{"*time.Time", types.NewPointer(timeType), ShapePointer, primitive.KindTime},
		{"named int", level, ShapeNamed, primitive.KindInt},
		{"*named int", types.NewPointer(level), ShapeUnsupported, 0},
		{"complex", types.Typ[types.Complex128], ShapeUnsupported, 0},
		{"slice", types.NewSlice(types.Typ[types.String]), ShapeUnsupported, 0},
		{"map", types.NewMap(types.Typ[types.String], types.Typ[types.Int]), ShapeUnsupported, 0},
		{"struct", nested, ShapeUnsupported, 0},
		{"**int", types.NewPointer(types.NewPointer(types.Typ[types.Int])), ShapeUnsupported, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shape, kind := classify(tt.typ)
			assert.Equal(t, tt.wantShape, shape)
			assert.Equal(t, tt.wantKind, kind)
		})
	}
}
