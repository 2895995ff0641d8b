package fixedpoint

// TrigTables holds precomputed sin/cos/atan2 lookups. The construction
// algorithm (piecewise-linear quarter-wave sine, octant-based atan2) is
// fixed by the simulation's determinism contract: every implementation
// must reproduce these tables byte-for-byte, so the generation code below
// is not an approximation choice but part of the wire contract.
type TrigTables struct {
	sin   [360]Fixed
	cos   [360]Fixed
	atan2 [256][256]uint8
}

// NewTrigTables builds and populates a fresh table set.
func NewTrigTables() *TrigTables {
	t := &TrigTables{}
	t.populateSinCos()
	t.populateAtan2()
	return t
}

func (t *TrigTables) populateSinCos() {
	for i := 0; i < 360; i++ {
		angle := int16(i)
		var sinVal int16
		switch {
		case angle <= 90:
			sinVal = (angle * 32) / 90
		case angle <= 180:
			mirrored := 180 - angle
			sinVal = (mirrored * 32) / 90
		case angle <= 270:
			mirrored := angle - 180
			sinVal = -((mirrored * 32) / 90)
		default:
			mirrored := 360 - angle
			sinVal = -((mirrored * 32) / 90)
		}
		t.sin[i] = FromRaw(sinVal)
	}
	for i := 0; i < 360; i++ {
		t.cos[i] = t.sin[(i+90)%360]
	}
}

func (t *TrigTables) populateAtan2() {
	for y := 0; y < 256; y++ {
		for x := 0; x < 256; x++ {
			yVal := int16(y) - 128
			xVal := int16(x) - 128

			var angle int16
			switch {
			case xVal == 0 && yVal == 0:
				angle = 0
			case xVal == 0:
				if yVal > 0 {
					angle = 90
				} else {
					angle = 270
				}
			case yVal == 0:
				if xVal > 0 {
					angle = 0
				} else {
					angle = 180
				}
			default:
				absY, absX := abs16(yVal), abs16(xVal)
				var base int16
				if absX >= absY {
					ratio := (absY * 45) / absX
					base = min16(ratio, 45)
				} else {
					ratio := (absX * 45) / absY
					base = 90 - min16(ratio, 45)
				}
				switch {
				case xVal > 0 && yVal > 0:
					angle = base // Q1
				case xVal < 0 && yVal > 0:
					angle = 180 - base // Q2
				case xVal < 0 && yVal < 0:
					angle = 180 + base // Q3
				default:
					angle = 360 - base // Q4
				}
			}
			t.atan2[y][x] = uint8(angle % 360)
		}
	}
}

func abs16(v int16) int16 {
	if v < 0 {
		return -v
	}
	return v
}

func min16(a, b int16) int16 {
	if a < b {
		return a
	}
	return b
}

func clampIndex(v int32) int {
	if v > 127 {
		v = 127
	}
	if v < -128 {
		v = -128
	}
	idx := int(v) + 128
	if idx > 255 {
		idx = 255
	}
	return idx
}

// Sin returns sin(degrees), wrapping the input modulo 360.
func (t *TrigTables) Sin(degrees uint16) Fixed {
	return t.sin[degrees%360]
}

// Cos returns cos(degrees), wrapping the input modulo 360.
func (t *TrigTables) Cos(degrees uint16) Fixed {
	return t.cos[degrees%360]
}

// Atan2 returns the angle in degrees for (y,x), truncated to a byte. Callers
// must tolerate the resulting 8-bit wraparound — this is an observable part
// of the contract, not a bug (spec §9, "atan2 truncation at 256").
func (t *TrigTables) Atan2(y, x Fixed) uint8 {
	yIdx := clampIndex(y.ToInt())
	xIdx := clampIndex(x.ToInt())
	return t.atan2[yIdx][xIdx]
}
