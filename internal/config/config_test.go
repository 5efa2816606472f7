package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rcdrive/rcdrive/internal/sink"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.ListenAddr != DefaultListenAddr {
		t.Errorf("ListenAddr = %q, want %q", cfg.ListenAddr, DefaultListenAddr)
	}
	if cfg.PollHz != DefaultPollHz {
		t.Errorf("PollHz = %d, want %d", cfg.PollHz, DefaultPollHz)
	}
	if cfg.Pipeline.Deadzone != DefaultDeadzone {
		t.Errorf("Deadzone = %d, want %d", cfg.Pipeline.Deadzone, DefaultDeadzone)
	}
	if cfg.Pipeline.BlendMin != DefaultBlendMin || cfg.Pipeline.BlendMax != DefaultBlendMax {
		t.Errorf("blend endpoints = %v..%v, want %v..%v",
			cfg.Pipeline.BlendMin, cfg.Pipeline.BlendMax, DefaultBlendMin, DefaultBlendMax)
	}

	toggles := cfg.CurveToggles()
	if !toggles.SteeringExpo || !toggles.AcceleratorCurve || !toggles.BrakeCurve {
		t.Errorf("default toggles = %+v, want all enabled", toggles)
	}

	if len(cfg.Pipeline.Buttons) != 2 {
		t.Fatalf("default buttons = %d, want 2", len(cfg.Pipeline.Buttons))
	}
	if cfg.Pipeline.Buttons[0].Key != sink.KeySpace {
		t.Errorf("button 0 key = %q, want %q", cfg.Pipeline.Buttons[0].Key, sink.KeySpace)
	}
}

func TestLoadFlagOverrides(t *testing.T) {
	cfg, err := Load([]string{"--deadzone", "40", "--steering-exponent", "2.0", "--debug"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Pipeline.Deadzone != 40 {
		t.Errorf("Deadzone = %d, want flag override 40", cfg.Pipeline.Deadzone)
	}
	if cfg.Pipeline.SteeringExponent != 2.0 {
		t.Errorf("SteeringExponent = %v, want 2.0", cfg.Pipeline.SteeringExponent)
	}
	if !cfg.Debug {
		t.Error("Debug flag not applied")
	}
}

func TestLoadRejectsUnknownFlag(t *testing.T) {
	if _, err := Load([]string{"--no-such-flag"}); err == nil {
		t.Error("unknown flag accepted")
	}
}

func TestLoadRejectsNonPositiveSteeringExponent(t *testing.T) {
	// Pow(0, 0) == 1, so an exponent of 0 would turn a centered wheel
	// into full lock. Load must refuse it outright.
	for _, arg := range []string{"0", "-1"} {
		if _, err := Load([]string{"--steering-exponent", arg}); err == nil {
			t.Errorf("steering-exponent %s accepted, want error", arg)
		}
	}
}

func TestLoadRejectsUnknownButtonKey(t *testing.T) {
	dir := t.TempDir()
	yaml := "buttons:\n  - channel: 4\n    index: 0\n    key: spacebar\n    threshold: 500\n"
	if err := os.WriteFile(filepath.Join(dir, "rcdrive.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)

	if _, err := Load(nil); err == nil {
		t.Error("button key \"spacebar\" accepted, want error naming the bad key")
	}
}

func TestLoadAcceptsConfiguredButtons(t *testing.T) {
	dir := t.TempDir()
	yaml := "buttons:\n  - channel: 6\n    index: 2\n    key: up\n    threshold: 400\n"
	if err := os.WriteFile(filepath.Join(dir, "rcdrive.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.Pipeline.Buttons) != 1 {
		t.Fatalf("buttons = %d, want 1 from config file", len(cfg.Pipeline.Buttons))
	}
	b := cfg.Pipeline.Buttons[0]
	if b.Key != sink.KeyUp || b.Index != 2 || b.Threshold != 400 {
		t.Errorf("button = %+v, want key=up index=2 threshold=400", b)
	}
}

func TestLoadRejectsNonPositivePollRate(t *testing.T) {
	cfg, err := Load([]string{"--poll-hz", "0"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.PollHz != DefaultPollHz {
		t.Errorf("PollHz = %d, want fallback to default", cfg.PollHz)
	}
}
