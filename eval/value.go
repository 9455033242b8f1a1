package eval

import (
	"math"
	"strconv"

	"github.com/tetratelabs/wazero/api"
)

// Type is a scalar result type, encoded as its wazero value type.
type Type api.ValueType

const (
	I32 = Type(api.ValueTypeI32)
	I64 = Type(api.ValueTypeI64)
	F32 = Type(api.ValueTypeF32)
	F64 = Type(api.ValueTypeF64)
)

// ParseType maps "i32", "i64", "f32" and "f64" to a Type.
func ParseType(s string) (Type, bool) {
	switch s {
	case "i32":
		return I32, true
	case "i64":
		return I64, true
	case "f32":
		return F32, true
	case "f64":
		return F64, true
	}
	return 0, false
}

func (t Type) valid() bool {
	return t == I32 || t == I64 || t == F32 || t == F64
}

func (t Type) String() string {
	return api.ValueTypeName(api.ValueType(t))
}

// Value is a scalar returned by an evaluation, as raw wazero stack bits.
type Value struct {
	Type Type
	Bits uint64
}

// Int64 returns the value of an integer result, sign-extending i32.
func (v Value) Int64() int64 {
	if v.Type == I32 {
		return int64(int32(uint32(v.Bits)))
	}
	return int64(v.Bits)
}

// Float64 returns the value of a float result.
func (v Value) Float64() float64 {
	if v.Type == F32 {
		return float64(api.DecodeF32(v.Bits))
	}
	return api.DecodeF64(v.Bits)
}

// String formats the value as a literal accepted by the matching
// <type>.const instruction: signed decimal for integers, shortest decimal
// for floats, and nan/inf for special floats.
func (v Value) String() string {
	switch v.Type {
	case I32, I64:
		return strconv.FormatInt(v.Int64(), 10)
	case F32, F64:
		f := v.Float64()
		switch {
		case math.IsNaN(f):
			return "nan"
		case math.IsInf(f, 1):
			return "inf"
		case math.IsInf(f, -1):
			return "-inf"
		}
		bits := 64
		if v.Type == F32 {
			bits = 32
		}
		return strconv.FormatFloat(f, 'f', -1, bits)
	}
	return strconv.FormatUint(v.Bits, 10)
}
