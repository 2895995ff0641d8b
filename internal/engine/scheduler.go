package engine

import (
	"github.com/robotmasters/engine/internal/behavior"
	"github.com/robotmasters/engine/internal/entity"
	"github.com/robotmasters/engine/internal/fixedpoint"
	"github.com/robotmasters/engine/internal/spawn"
	"github.com/robotmasters/engine/internal/status"
	"github.com/robotmasters/engine/internal/tilemap"
)

// AdvanceFrame runs one simulation tick in the scheduler's fixed order:
// behavior scan, status-effect tick, spawn lifecycle, physics
// integration, expired-spawn removal, frame increment. A match already
// Ended or at the frame limit is a no-op past recording Ended.
func (g *GameState) AdvanceFrame() {
	if g.Status == Ended {
		return
	}
	if g.Frame >= MaxFrames {
		g.Status = Ended
		return
	}

	var spawnQueue []entity.SpawnRequest

	behaviorDefs := behavior.Definitions{Actions: g.Defs.Actions, Conditions: g.Defs.Conditions}
	for _, c := range g.Characters {
		behavior.ProcessCharacter(c, g.Frame, behaviorDefs, g.RNG, &spawnQueue)
	}

	statusDefs := status.Definitions{Effects: g.Defs.StatusEffects}
	for _, c := range g.Characters {
		status.ProcessFrame(c, g.Frame, statusDefs, g.RNG, &spawnQueue)
	}

	owners := make(map[uint8]*entity.Character, len(g.Characters))
	for _, c := range g.Characters {
		owners[c.Core.ID] = c
	}
	spawnDefs := spawn.Definitions{Spawns: g.Defs.Spawns}
	g.Spawns = spawn.ProcessFrame(g.Spawns, spawnDefs, owners, g.Frame, g.RNG)

	g.appendRequestedSpawns(spawnQueue)

	for _, c := range g.Characters {
		integrateEntity(&c.Core, g.Grid)
	}
	for i := range g.Spawns {
		integrateEntity(&g.Spawns[i].Core, g.Grid)
	}

	g.removeExpiredSpawns()

	g.Frame++
}

// appendRequestedSpawns turns spawns requested by behavior/status scripts
// this frame into instances, added after the spawn engine's own pass so
// they never act on their creation frame.
func (g *GameState) appendRequestedSpawns(requests []entity.SpawnRequest) {
	for _, req := range requests {
		def := g.Defs.Spawns[req.SpawnID]
		if def == nil || def.Duration == 0 {
			continue
		}
		core := entity.NewEntityCore(req.SpawnID, 0)
		core.Pos = req.Position
		elem := entity.Element(0)
		if def.HasElement {
			elem = def.Element
		}
		g.Spawns = append(g.Spawns, entity.SpawnInstance{
			Core:       core,
			SpawnID:    req.SpawnID,
			OwnerID:    req.OwnerID,
			DamageBase: def.DamageBase,
			Lifespan:   def.Duration,
			Element:    elem,
			Vars:       req.Vars,
		})
	}
}

// removeExpiredSpawns drops spawns whose lifespan is zero after this
// frame's spawn processing (stable-order deletion).
func (g *GameState) removeExpiredSpawns() {
	kept := g.Spawns[:0:0]
	for _, s := range g.Spawns {
		if s.Lifespan == 0 {
			continue
		}
		kept = append(kept, s)
	}
	g.Spawns = kept
}

// integrateEntity is the scheduler's only source of motion: it clamps
// horizontal then vertical displacement against the tilemap using the
// pixel-by-pixel trial-placement primitive, updates position, and
// refreshes collision flags by probing just outside the entity's new
// bounds on each side. Scripts produce velocity; nothing here applies
// gravity or any other force.
func integrateEntity(core *entity.EntityCore, grid *tilemap.Grid) {
	rect := tilemap.RectFromEntity(core.Pos, core.Width, core.Height)

	if !core.Vel.X.IsZero() {
		core.Pos.X = core.Pos.X.Add(grid.CheckHorizontalMovement(rect, core.Vel.X))
		rect.X = core.Pos.X
	}
	if !core.Vel.Y.IsZero() {
		core.Pos.Y = core.Pos.Y.Add(grid.CheckVerticalMovement(rect, core.Vel.Y))
		rect.Y = core.Pos.Y
	}

	core.Collision = probeCollisionFlags(grid, tilemap.AABBFromRect(rect))
}

// probeCollisionFlags checks a thin strip just outside each side of aabb
// for a solid tile.
func probeCollisionFlags(grid *tilemap.Grid, aabb tilemap.AABB) entity.CollisionFlags {
	probe := fixedpoint.One
	top := tilemap.AABB{X: aabb.X, Y: aabb.Y.Sub(probe), Width: aabb.Width, Height: probe}
	bottom := tilemap.AABB{X: aabb.X, Y: aabb.Bottom(), Width: aabb.Width, Height: probe}
	left := tilemap.AABB{X: aabb.X.Sub(probe), Y: aabb.Y, Width: probe, Height: aabb.Height}
	right := tilemap.AABB{X: aabb.Right(), Y: aabb.Y, Width: probe, Height: aabb.Height}
	return entity.CollisionFlags{
		Top:    tilemap.CheckTilemapCollision(grid, top).Hit,
		Bottom: tilemap.CheckTilemapCollision(grid, bottom).Hit,
		Left:   tilemap.CheckTilemapCollision(grid, left).Hit,
		Right:  tilemap.CheckTilemapCollision(grid, right).Hit,
	}
}
