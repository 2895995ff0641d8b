// Package fixedpoint implements the Q11.5 signed fixed-point scalar the
// simulation runs on. No floating point appears anywhere in this package;
// that is a hard requirement, not a style choice (see TrigTables in trig.go
// for atan2 and the trig tables).
package fixedpoint

import "math"

// FractionalBits is the number of bits below the binary point.
const FractionalBits = 5

// Fixed is a Q11.5 fixed-point scalar backed by a signed 16-bit integer.
// One represented unit equals 32 raw units.
type Fixed int16

const (
	Zero Fixed = 0
	One  Fixed = 1 << FractionalBits
	Max  Fixed = math.MaxInt16
	Min  Fixed = math.MinInt16
)

// FromInt builds a Fixed from an integer, shifting into the fractional range.
func FromInt(v int16) Fixed {
	return Fixed(v << FractionalBits)
}

// FromRaw wraps a raw Q11.5 representation directly.
func FromRaw(raw int16) Fixed {
	return Fixed(raw)
}

// Raw returns the underlying Q11.5 representation.
func (f Fixed) Raw() int16 {
	return int16(f)
}

// ToInt drops the fractional bits with an arithmetic shift, so it rounds
// toward negative infinity (-0.5 becomes -1).
func (f Fixed) ToInt() int32 {
	return int32(int16(f) >> FractionalBits)
}

// Frac returns the fractional part as a value in [0,31].
func (f Fixed) Frac() uint8 {
	return uint8(int16(f) & ((1 << FractionalBits) - 1))
}

func clampToInt16(v int32) int16 {
	if v > math.MaxInt16 {
		return math.MaxInt16
	}
	if v < math.MinInt16 {
		return math.MinInt16
	}
	return int16(v)
}

// Add saturates at the signed 16-bit bounds.
func (f Fixed) Add(other Fixed) Fixed {
	sum := int32(f) + int32(other)
	return Fixed(clampToInt16(sum))
}

// Sub saturates at the signed 16-bit bounds.
func (f Fixed) Sub(other Fixed) Fixed {
	diff := int32(f) - int32(other)
	return Fixed(clampToInt16(diff))
}

// Mul widens to 32 bits, shifts right by the fractional width, then clamps.
func (f Fixed) Mul(other Fixed) Fixed {
	result := (int32(f) * int32(other)) >> FractionalBits
	return Fixed(clampToInt16(result))
}

// Div returns Max for a positive (or zero) dividend and Min for a negative
// dividend when dividing by zero, matching the sign-of-dividend contract.
func (f Fixed) Div(other Fixed) Fixed {
	if other == 0 {
		if f >= 0 {
			return Max
		}
		return Min
	}
	result := (int32(f) << FractionalBits) / int32(other)
	return Fixed(clampToInt16(result))
}

// Neg negates the value.
func (f Fixed) Neg() Fixed {
	return Fixed(-int16(f))
}

// Abs returns the absolute value.
func (f Fixed) Abs() Fixed {
	v := int16(f)
	if v < 0 {
		return Fixed(-v)
	}
	return f
}

func (f Fixed) IsPositive() bool { return int16(f) > 0 }
func (f Fixed) IsNegative() bool { return int16(f) < 0 }
func (f Fixed) IsZero() bool     { return int16(f) == 0 }

// Vec2 is a pair of Fixed coordinates.
type Vec2 struct {
	X, Y Fixed
}

func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{X: v.X.Add(other.X), Y: v.Y.Add(other.Y)}
}
