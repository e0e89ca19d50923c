package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := LoadBreakout("")
	if err != nil {
		t.Fatalf("LoadBreakout: %v", err)
	}
	if cfg != DefaultBreakoutConfig() {
		t.Errorf("embedded breakout default diverged: %+v", cfg)
	}

	sq, err := LoadSeaquest("")
	if err != nil {
		t.Fatalf("LoadSeaquest: %v", err)
	}
	if sq.Oxygen.Max != 20 || sq.Oxygen.DecayEvery != 10 {
		t.Errorf("seaquest oxygen defaults = %+v", sq.Oxygen)
	}
	if sq.Divers.CarryMax != 6 {
		t.Errorf("seaquest carry_max = %d", sq.Divers.CarryMax)
	}

	fw, err := LoadFreeway("")
	if err != nil {
		t.Fatalf("LoadFreeway: %v", err)
	}
	if fw != DefaultFreewayConfig() {
		t.Errorf("embedded freeway default diverged: %+v", fw)
	}
}

func TestCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "freeway.yaml")
	data := []byte("cars:\n  period: 5\n  period_range: 1\n  min_period: 2\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFreeway(path)
	if err != nil {
		t.Fatalf("LoadFreeway(%s): %v", path, err)
	}
	if cfg.Cars.Period != 5 || cfg.Cars.PeriodRange != 1 || cfg.Cars.MinPeriod != 2 {
		t.Errorf("custom config not applied: %+v", cfg.Cars)
	}
}

func TestCustomPathErrors(t *testing.T) {
	if _, err := LoadAsterix("/does/not/exist.yaml"); err == nil {
		t.Error("missing custom path did not error")
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("{not yaml"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSpaceInvaders(path); err == nil {
		t.Error("unparseable custom path did not error")
	}
}
