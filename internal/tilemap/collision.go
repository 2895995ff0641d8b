package tilemap

import "github.com/robotmasters/engine/internal/fixedpoint"

// CollisionResult carries the outcome of a static or swept collision test.
type CollisionResult struct {
	Hit      bool
	Normal   fixedpoint.Vec2
	Distance fixedpoint.Fixed // static: MTV magnitude; swept: time fraction [0,1]
	Point    fixedpoint.Vec2
	MTV      fixedpoint.Vec2
}

func tileAABB(tileX, tileY int) AABB {
	size := fixedpoint.FromInt(TileSize)
	return AABB{
		X:      fixedpoint.FromInt(int16(tileX * TileSize)),
		Y:      fixedpoint.FromInt(int16(tileY * TileSize)),
		Width:  size,
		Height: size,
	}
}

func tileSpan(lo, hi fixedpoint.Fixed, axisLen int) (int, int) {
	left := int(maxInt32(lo.ToInt(), 0)) / TileSize
	right := int(maxInt32(hi.ToInt()-1, 0)) / TileSize
	if right > axisLen-1 {
		right = axisLen - 1
	}
	return left, right
}

// CheckTilemapCollision resolves static overlap between entityAABB and the
// grid, accumulating MTV component-wise across every overlapping Block tile.
func CheckTilemapCollision(grid *Grid, entityAABB AABB) CollisionResult {
	leftTile, rightTile := tileSpan(entityAABB.X, entityAABB.Right(), Width)
	topTile, bottomTile := tileSpan(entityAABB.Y, entityAABB.Bottom(), Height)

	var totalMTV fixedpoint.Vec2
	hit := false

	for ty := topTile; ty <= bottomTile; ty++ {
		for tx := leftTile; tx <= rightTile; tx++ {
			if grid.GetTile(tx, ty) != Block {
				continue
			}
			tile := tileAABB(tx, ty)
			if !entityAABB.Overlaps(tile) {
				continue
			}
			hit = true
			mtvX, mtvY := entityAABB.CalculateMTV(tile)
			if mtvX.Abs().Raw() > totalMTV.X.Abs().Raw() {
				totalMTV.X = mtvX
			}
			if mtvY.Abs().Raw() > totalMTV.Y.Abs().Raw() {
				totalMTV.Y = mtvY
			}
		}
	}

	result := CollisionResult{Hit: hit}
	if !hit {
		cx, cy := entityAABB.Center()
		result.Point = fixedpoint.Vec2{X: cx, Y: cy}
		return result
	}

	if totalMTV.X.Abs().Raw() > totalMTV.Y.Abs().Raw() {
		if totalMTV.X.IsPositive() {
			result.Normal = fixedpoint.Vec2{X: fixedpoint.One}
		} else {
			result.Normal = fixedpoint.Vec2{X: fixedpoint.One.Neg()}
		}
	} else {
		if totalMTV.Y.IsPositive() {
			result.Normal = fixedpoint.Vec2{Y: fixedpoint.One}
		} else {
			result.Normal = fixedpoint.Vec2{Y: fixedpoint.One.Neg()}
		}
	}
	result.Distance = fixedpoint.FromInt(int16(totalMTV.X.Abs().ToInt() + totalMTV.Y.Abs().ToInt()))
	cx, cy := entityAABB.Center()
	result.Point = fixedpoint.Vec2{X: cx, Y: cy}
	result.MTV = totalMTV
	return result
}

// SweepAABB performs a Minkowski-sum ray-box intersection of moving against
// stationary along velocity, returning the time of impact in [0,1] if any.
func SweepAABB(moving AABB, velocity fixedpoint.Vec2, stationary AABB) (fixedpoint.Fixed, bool) {
	expanded := AABB{
		X:      stationary.X.Sub(moving.Width),
		Y:      stationary.Y.Sub(moving.Height),
		Width:  stationary.Width.Add(moving.Width.Mul(fixedpoint.FromInt(2))),
		Height: stationary.Height.Add(moving.Height.Mul(fixedpoint.FromInt(2))),
	}
	cx, cy := moving.Center()
	return rayBoxIntersection(fixedpoint.Vec2{X: cx, Y: cy}, velocity, expanded)
}

func rayBoxIntersection(origin, direction fixedpoint.Vec2, box AABB) (fixedpoint.Fixed, bool) {
	if direction.X.IsZero() && direction.Y.IsZero() {
		return fixedpoint.Zero, false
	}

	tMin := fixedpoint.Zero
	tMax := fixedpoint.FromInt(1000)

	if !direction.X.IsZero() {
		t1 := box.X.Sub(origin.X).Div(direction.X)
		t2 := box.Right().Sub(origin.X).Div(direction.X)
		tMinX := fixedpoint.FromInt(int16(minInt32(t1.ToInt(), t2.ToInt())))
		tMaxX := fixedpoint.FromInt(int16(maxInt32(t1.ToInt(), t2.ToInt())))
		tMin = fixedpoint.FromInt(int16(maxInt32(tMin.ToInt(), tMinX.ToInt())))
		tMax = fixedpoint.FromInt(int16(minInt32(tMax.ToInt(), tMaxX.ToInt())))
	} else if origin.X.Raw() < box.X.Raw() || origin.X.Raw() > box.Right().Raw() {
		return fixedpoint.Zero, false
	}

	if !direction.Y.IsZero() {
		t1 := box.Y.Sub(origin.Y).Div(direction.Y)
		t2 := box.Bottom().Sub(origin.Y).Div(direction.Y)
		tMinY := fixedpoint.FromInt(int16(minInt32(t1.ToInt(), t2.ToInt())))
		tMaxY := fixedpoint.FromInt(int16(maxInt32(t1.ToInt(), t2.ToInt())))
		tMin = fixedpoint.FromInt(int16(maxInt32(tMin.ToInt(), tMinY.ToInt())))
		tMax = fixedpoint.FromInt(int16(minInt32(tMax.ToInt(), tMaxY.ToInt())))
	} else if origin.Y.Raw() < box.Y.Raw() || origin.Y.Raw() > box.Bottom().Raw() {
		return fixedpoint.Zero, false
	}

	if tMax.Raw() < fixedpoint.Zero.Raw() || tMin.Raw() > tMax.Raw() {
		return fixedpoint.Zero, false
	}

	t := tMax
	if tMin.Raw() >= fixedpoint.Zero.Raw() {
		t = tMin
	}
	if t.Raw() >= fixedpoint.Zero.Raw() && t.Raw() <= fixedpoint.One.Raw() {
		return t, true
	}
	return fixedpoint.Zero, false
}

// SweepTilemapCollision finds the earliest grid collision along velocity,
// row-major tile iteration order breaking ties (spec's determinism contract).
func SweepTilemapCollision(grid *Grid, entityAABB AABB, velocity fixedpoint.Vec2) CollisionResult {
	if velocity.X.IsZero() && velocity.Y.IsZero() {
		return CheckTilemapCollision(grid, entityAABB)
	}

	sweptX := entityAABB.X
	if velocity.X.IsNegative() {
		sweptX = entityAABB.X.Add(velocity.X)
	}
	sweptY := entityAABB.Y
	if velocity.Y.IsNegative() {
		sweptY = entityAABB.Y.Add(velocity.Y)
	}
	swept := AABB{
		X:      sweptX,
		Y:      sweptY,
		Width:  entityAABB.Width.Add(velocity.X.Abs()),
		Height: entityAABB.Height.Add(velocity.Y.Abs()),
	}

	leftTile, rightTile := tileSpan(swept.X, swept.Right(), Width)
	topTile, bottomTile := tileSpan(swept.Y, swept.Bottom(), Height)

	found := false
	var bestT fixedpoint.Fixed
	var best CollisionResult

	for ty := topTile; ty <= bottomTile; ty++ {
		for tx := leftTile; tx <= rightTile; tx++ {
			if grid.GetTile(tx, ty) != Block {
				continue
			}
			tile := tileAABB(tx, ty)
			t, ok := SweepAABB(entityAABB, velocity, tile)
			if !ok {
				continue
			}
			if found && t.Raw() >= bestT.Raw() {
				continue
			}
			cx, cy := entityAABB.Center()
			point := fixedpoint.Vec2{X: cx.Add(velocity.X.Mul(t)), Y: cy.Add(velocity.Y.Mul(t))}
			normal := collisionNormal(velocity)
			found = true
			bestT = t
			best = CollisionResult{Hit: true, Normal: normal, Distance: t, Point: point}
		}
	}

	if !found {
		return CollisionResult{}
	}
	return best
}

func collisionNormal(velocity fixedpoint.Vec2) fixedpoint.Vec2 {
	if velocity.X.Abs().Raw() > velocity.Y.Abs().Raw() {
		if velocity.X.IsPositive() {
			return fixedpoint.Vec2{X: fixedpoint.One.Neg()}
		}
		return fixedpoint.Vec2{X: fixedpoint.One}
	}
	if velocity.Y.IsPositive() {
		return fixedpoint.Vec2{Y: fixedpoint.One.Neg()}
	}
	return fixedpoint.Vec2{Y: fixedpoint.One}
}

// CheckCollision reports whether rect overlaps any Block tile.
func (g *Grid) CheckCollision(rect Rect) bool {
	leftTile := int(maxInt32(rect.X.ToInt(), 0)) / TileSize
	rightEdge := rect.X.ToInt() + int32(rect.Width) - 1
	rightTile := minInt(int(maxInt32(rightEdge, 0))/TileSize, Width-1)
	topTile := int(maxInt32(rect.Y.ToInt(), 0)) / TileSize
	bottomEdge := rect.Y.ToInt() + int32(rect.Height) - 1
	bottomTile := minInt(int(maxInt32(bottomEdge, 0))/TileSize, Height-1)

	for ty := topTile; ty <= bottomTile; ty++ {
		for tx := leftTile; tx <= rightTile; tx++ {
			if g.GetTile(tx, ty) == Block {
				return true
			}
		}
	}
	return false
}

// CheckHorizontalMovement steps pixel-by-pixel toward deltaX and returns the
// largest displacement that does not collide.
func (g *Grid) CheckHorizontalMovement(rect Rect, deltaX fixedpoint.Fixed) fixedpoint.Fixed {
	return g.clampAxis(rect, deltaX, true)
}

// CheckVerticalMovement steps pixel-by-pixel toward deltaY and returns the
// largest displacement that does not collide.
func (g *Grid) CheckVerticalMovement(rect Rect, deltaY fixedpoint.Fixed) fixedpoint.Fixed {
	return g.clampAxis(rect, deltaY, false)
}

func (g *Grid) clampAxis(rect Rect, delta fixedpoint.Fixed, horizontal bool) fixedpoint.Fixed {
	if delta.IsZero() {
		return delta
	}

	direction := fixedpoint.One
	if delta.IsNegative() {
		direction = direction.Neg()
	}

	current := fixedpoint.Zero
	for current.Abs().Raw() < delta.Abs().Raw() {
		next := current.Add(direction)

		var testDelta fixedpoint.Fixed
		if delta.IsPositive() {
			if next.Raw() > delta.Raw() {
				testDelta = delta
			} else {
				testDelta = next
			}
		} else {
			if next.Raw() < delta.Raw() {
				testDelta = delta
			} else {
				testDelta = next
			}
		}

		testRect := rect
		if horizontal {
			testRect.X = rect.X.Add(testDelta)
		} else {
			testRect.Y = rect.Y.Add(testDelta)
		}

		if g.CheckCollision(testRect) {
			return current
		}

		current = testDelta
		if current.Raw() == delta.Raw() {
			break
		}
	}

	return current
}

// IsOnGround probes a one-pixel-tall strip directly beneath rect.
func (g *Grid) IsOnGround(rect Rect) bool {
	probe := Rect{
		X:      rect.X,
		Y:      rect.Y.Add(fixedpoint.FromInt(int16(rect.Height))),
		Width:  rect.Width,
		Height: 1,
	}
	return g.CheckCollision(probe)
}
