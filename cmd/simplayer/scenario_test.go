package main

import "testing"

func TestBuildDemoScenarioProducesTwoOpposingWalkers(t *testing.T) {
	game, err := buildDemoScenario(1)
	if err != nil {
		t.Fatalf("buildDemoScenario returned error: %v", err)
	}
	if len(game.Characters) != 2 {
		t.Fatalf("got %d characters, want 2", len(game.Characters))
	}

	startLeftX := game.Characters[0].Core.Pos.X.ToInt()
	startRightX := game.Characters[1].Core.Pos.X.ToInt()

	game.AdvanceFrame()

	if got := game.Characters[0].Core.Pos.X.ToInt(); got <= startLeftX {
		t.Errorf("left fighter should move right: got x=%d, started at %d", got, startLeftX)
	}
	if got := game.Characters[1].Core.Pos.X.ToInt(); got >= startRightX {
		t.Errorf("right fighter should move left: got x=%d, started at %d", got, startRightX)
	}
}

func TestParseFrameRange(t *testing.T) {
	start, end, err := parseFrameRange("10-40")
	if err != nil {
		t.Fatalf("parseFrameRange returned error: %v", err)
	}
	if start != 10 || end != 40 {
		t.Errorf("got (%d, %d), want (10, 40)", start, end)
	}

	if _, _, err := parseFrameRange("garbage"); err == nil {
		t.Error("expected error for malformed range")
	}
}

func TestExportFramesWritesPNGFiles(t *testing.T) {
	game, err := buildDemoScenario(1)
	if err != nil {
		t.Fatalf("buildDemoScenario returned error: %v", err)
	}
	dir := t.TempDir()
	if err := exportFrames(game, 0, 3, dir); err != nil {
		t.Fatalf("exportFrames returned error: %v", err)
	}
}
