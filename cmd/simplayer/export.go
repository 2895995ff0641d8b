package main

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/robotmasters/engine/internal/engine"
	"github.com/robotmasters/engine/internal/snapshot"
)

// exportFrames advances game from its current frame through end, capturing
// a Snapshot at every frame in [start, end], then rasterizes each captured
// frame to a PNG under dir concurrently. The simulation itself is advanced
// strictly sequentially (the engine has no concurrency story of its own);
// only the read-only rasterization of already-computed snapshots runs in
// parallel, via golang.org/x/sync/errgroup.
func exportFrames(game *engine.GameState, start, end int, dir string) error {
	if start < 0 || end < start {
		return fmt.Errorf("invalid frame range [%d, %d]", start, end)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating export dir: %w", err)
	}

	captured := make(map[int]snapshot.Snapshot, end-start+1)
	for frame := int(game.Frame); frame <= end; frame++ {
		if frame >= start {
			captured[frame] = snapshot.ToSnapshot(game)
		}
		if game.Status == engine.Ended {
			break
		}
		game.AdvanceFrame()
	}

	var g errgroup.Group
	for frame, snap := range captured {
		frame, snap := frame, snap
		g.Go(func() error {
			path := filepath.Join(dir, fmt.Sprintf("frame_%04d.png", frame))
			if err := os.WriteFile(path, rasterizeFrame(snap), 0644); err != nil {
				return fmt.Errorf("writing %s: %w", path, err)
			}
			return nil
		})
	}
	return g.Wait()
}
