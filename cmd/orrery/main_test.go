package main

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"

	"github.com/levinmathewabraham/orrery/internal/clock"
	"github.com/levinmathewabraham/orrery/internal/config"
	"github.com/levinmathewabraham/orrery/internal/logging"
	"github.com/levinmathewabraham/orrery/internal/scene"
)

func TestParseSize(t *testing.T) {
	tests := []struct {
		in      string
		w, h    int
		wantErr bool
	}{
		{"120x40", 120, 40, false},
		{"1x1", 1, 1, false},
		{"0x40", 0, 0, true},
		{"120", 0, 0, true},
		{"axb", 0, 0, true},
	}
	for _, tt := range tests {
		w, h, err := parseSize(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseSize(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if w != tt.w || h != tt.h {
			t.Errorf("parseSize(%q) = %dx%d, want %dx%d", tt.in, w, h, tt.w, tt.h)
		}
	}
}

func TestParsePoint(t *testing.T) {
	x, y, err := parsePoint("60,20")
	if err != nil || x != 60 || y != 20 {
		t.Errorf("parsePoint = %d,%d %v", x, y, err)
	}
	if _, _, err := parsePoint("60"); err == nil {
		t.Error("parsePoint(60) should fail")
	}
}

func TestRunHeadless(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Scene.Starfield.Count = 0
	system, err := scene.BuildSolarSystem(cfg.Scene, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("BuildSolarSystem: %v", err)
	}
	clk, err := clock.FromSolarSystem(system, cfg.Scene)
	if err != nil {
		t.Fatalf("FromSolarSystem: %v", err)
	}

	summaryMode, snapshotPath, frameMode = true, "-", false
	pickAt, viewSize, headlessTick = "60,20", "121x41", 5
	t.Cleanup(func() {
		summaryMode, snapshotPath, pickAt, viewSize, headlessTick = false, "", "", "120x40", 0
	})

	var buf bytes.Buffer
	if err := runHeadless(&buf, &cfg, system, clk, logging.Discard()); err != nil {
		t.Fatalf("runHeadless: %v", err)
	}
	out := buf.String()

	for _, want := range []string{`"tick": 5`, "Orrery @ tick 5", "Total: 20 bodies", "60,20: Sun (star)"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if clk.Ticks() != 5 {
		t.Errorf("Ticks = %d, want 5", clk.Ticks())
	}
}

func TestRunHeadless_PickOutsideViewport(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Scene.Starfield.Count = 0
	system, _ := scene.BuildSolarSystem(cfg.Scene, rand.New(rand.NewSource(1)))
	clk, _ := clock.FromSolarSystem(system, cfg.Scene)

	pickAt, viewSize = "500,20", "121x41"
	t.Cleanup(func() { pickAt, viewSize = "", "120x40" })

	if err := runHeadless(&bytes.Buffer{}, &cfg, system, clk, logging.Discard()); err == nil {
		t.Error("expected an error for a pick outside the viewport")
	}
}
