package fixedpoint

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConstants(t *testing.T) {
	require.EqualValues(t, 0, Zero.Raw())
	require.EqualValues(t, 32, One.Raw())
}

func TestFromInt(t *testing.T) {
	require.Equal(t, Zero, FromInt(0))
	require.Equal(t, One, FromInt(1))
	require.EqualValues(t, 160, FromInt(5).Raw())
	require.EqualValues(t, -96, FromInt(-3).Raw())
}

func TestToInt(t *testing.T) {
	require.EqualValues(t, 0, Zero.ToInt())
	require.EqualValues(t, 1, One.ToInt())
	require.EqualValues(t, 5, FromInt(5).ToInt())
	require.EqualValues(t, -3, FromInt(-3).ToInt())
}

func TestAddSaturates(t *testing.T) {
	require.Equal(t, Max, Max.Add(One))
	require.Equal(t, Min, Min.Add(FromRaw(-1)))
}

func TestAddIdentityAndCommutativity(t *testing.T) {
	vals := []Fixed{FromInt(-50), FromInt(0), FromInt(3), FromInt(100)}
	for _, a := range vals {
		require.Equal(t, a, a.Add(Zero))
		for _, b := range vals {
			require.Equal(t, a.Add(b), b.Add(a))
		}
	}
}

func TestMul(t *testing.T) {
	require.Equal(t, Zero, FromInt(10).Mul(Zero))
	require.Equal(t, FromInt(10), FromInt(10).Mul(One))
	require.Equal(t, FromInt(6), FromInt(2).Mul(FromInt(3)))
}

func TestMulOverflowClamps(t *testing.T) {
	big := FromInt(1000)
	require.Equal(t, Max, big.Mul(FromInt(1000)))
}

func TestDivByZero(t *testing.T) {
	require.Equal(t, Max, FromInt(5).Div(Zero))
	require.Equal(t, Min, FromInt(-5).Div(Zero))
	require.Equal(t, Max, Zero.Div(Zero))
}

func TestDiv(t *testing.T) {
	require.Equal(t, FromInt(2), FromInt(10).Div(FromInt(5)))
}

func TestAbsNeg(t *testing.T) {
	require.Equal(t, FromInt(5), FromInt(-5).Abs())
	require.Equal(t, FromInt(-5), FromInt(5).Neg())
}

func TestPredicates(t *testing.T) {
	require.True(t, FromInt(1).IsPositive())
	require.True(t, FromInt(-1).IsNegative())
	require.True(t, Zero.IsZero())
}
