package prng

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDeterministicSequence(t *testing.T) {
	a := New(12345)
	b := New(12345)
	for i := 0; i < 100; i++ {
		require.Equal(t, a.NextU16(), b.NextU16())
	}
}

func TestDifferentSeedsDiverge(t *testing.T) {
	a := New(12345)
	b := New(54321)
	diffs := 0
	for i := 0; i < 100; i++ {
		if a.NextU16() != b.NextU16() {
			diffs++
		}
	}
	require.Greater(t, diffs, 80)
}

func TestReset(t *testing.T) {
	g := New(12345)
	first := g.NextU16()
	second := g.NextU16()
	g.Reset()
	require.Equal(t, first, g.NextU16())
	require.Equal(t, second, g.NextU16())
}

func TestRangeGeneration(t *testing.T) {
	g := New(12345)
	for i := 0; i < 100; i++ {
		v := g.NextRange(10)
		require.Less(t, v, uint16(10))
	}
	require.EqualValues(t, 0, g.NextRange(0))
}

func TestStateTracking(t *testing.T) {
	g := New(12345)
	require.EqualValues(t, 12345, g.InitialSeed())
	require.EqualValues(t, 12345, g.State())
	g.NextU16()
	require.NotEqual(t, uint16(12345), g.State())
	require.EqualValues(t, 12345, g.InitialSeed())
}
