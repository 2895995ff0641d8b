package main

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/robotmasters/engine/internal/engine"
	"github.com/robotmasters/engine/internal/snapshot"
)

// runInteractive steps game one frame at a time under single-keypress raw
// mode, the same role golang.org/x/term plays in the reference engine's
// debug_monitor.go (raw-mode stepping of a CPU core). Unlike the reference
// engine, which feeds keypresses into a background MMIO device while a CPU
// runs independently, simplayer's "CPU" only moves when told to: a single
// foreground blocking read per keypress is enough, with no goroutine or
// non-blocking stdin needed.
func runInteractive(game *engine.GameState) error {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("entering raw mode: %w", err)
	}
	defer term.Restore(fd, oldState)

	printHelp()
	buf := make([]byte, 1)
	for {
		n, err := os.Stdin.Read(buf)
		if err != nil || n == 0 {
			return nil
		}
		switch buf[0] {
		case 'n', ' ':
			game.AdvanceFrame()
			printSummary(game)
		case 'p':
			printSnapshot(game)
		case 's':
			if err := saveSnapshotFile(game); err != nil {
				fmt.Fprintf(os.Stderr, "\r\nsave failed: %v\r\n", err)
			}
		case 'h', '?':
			printHelp()
		case 'q', 0x03: // q or Ctrl-C
			fmt.Print("\r\n")
			return nil
		}
	}
}

func printHelp() {
	fmt.Print("simplayer -- n/space: advance frame, p: print state, s: save snapshot, q: quit\r\n")
}

func printSummary(game *engine.GameState) {
	fmt.Printf("\r\nframe %d (%s)\r\n", game.Frame, game.Status)
	for _, c := range game.Characters {
		fmt.Printf("  char %d: pos=(%d,%d) hp=%d energy=%d\r\n",
			c.Core.ID, c.Core.Pos.X.ToInt(), c.Core.Pos.Y.ToInt(), c.Health, c.Energy)
	}
}

func printSnapshot(game *engine.GameState) {
	data, err := snapshot.EncodeJSON(game)
	if err != nil {
		fmt.Fprintf(os.Stderr, "\r\nencode failed: %v\r\n", err)
		return
	}
	fmt.Printf("\r\n%s\r\n", data)
}

func saveSnapshotFile(game *engine.GameState) error {
	data, err := snapshot.EncodeBinary(game)
	if err != nil {
		return err
	}
	path := fmt.Sprintf("snapshot_frame_%04d.bin", game.Frame)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return err
	}
	fmt.Printf("\r\nsaved %s (%d bytes)\r\n", path, len(data))
	return nil
}
