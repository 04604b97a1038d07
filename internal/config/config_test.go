package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/flapsim/internal/kinematics"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if cfg.Duration <= 0 {
		t.Error("duration should be positive")
	}
	if cfg.Dumps.VizInterval <= 0 {
		t.Error("viz interval should be enabled by default")
	}
}

func TestLoad(t *testing.T) {
	yml := `
duration: 2.5
dt: 0.01
dumps:
  viz_interval: 10
  restart_interval: 25
  diagnostic_interval: 5
bodies:
  - name: foil
    kind: flapping_foil
    frequency: 1.5
    heave_amplitude: 0.25
    pitch_amplitude: 15.0
    phase_offset: 90.0
`
	path := filepath.Join(t.TempDir(), "run.yaml")
	if err := os.WriteFile(path, []byte(yml), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Duration != 2.5 {
		t.Errorf("expected duration 2.5, got %g", cfg.Duration)
	}
	if len(cfg.Bodies) != 1 {
		t.Fatalf("expected 1 body, got %d", len(cfg.Bodies))
	}

	b := cfg.Bodies[0]
	if b.Name != "foil" {
		t.Errorf("expected body name foil, got %s", b.Name)
	}
	// Motion keys land in the inline parameter map.
	if b.Params["frequency"] != 1.5 {
		t.Errorf("expected frequency 1.5, got %g", b.Params["frequency"])
	}

	plan := cfg.Plan()
	if plan.VizInterval != 10 || plan.RestartInterval != 25 || plan.DiagnosticInterval != 5 {
		t.Errorf("unexpected plan: %+v", plan)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		yml  string
	}{
		{"negative dt", "duration: 1.0\ndt: -0.1\nbodies: [{name: a, frequency: 1, heave_amplitude: 0.1, pitch_amplitude: 5}]"},
		{"no bodies", "duration: 1.0\ndt: 0.01\nbodies: []"},
		{"unnamed body", "duration: 1.0\ndt: 0.01\nbodies: [{frequency: 1, heave_amplitude: 0.1, pitch_amplitude: 5}]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "run.yaml")
			if err := os.WriteFile(path, []byte(tt.yml), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestBuildRegistry(t *testing.T) {
	cfg := GetPreset("fish_school")
	if cfg == nil {
		t.Fatal("expected fish_school preset")
	}

	reg, err := cfg.BuildRegistry()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if reg.Len() != 4 {
		t.Errorf("expected 4 bodies, got %d", reg.Len())
	}

	names := reg.Names()
	want := []string{"eel2d_1", "eel2d_2", "eel2d_3", "eel2d_4"}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], names[i])
		}
	}
}

func TestBuildRegistryMissingKey(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Bodies = []BodyConfig{
		{
			Name: "foil",
			Kind: KindFlappingFoil,
			Params: map[string]float64{
				"frequency":       1.0,
				"heave_amplitude": 0.25,
				// pitch_amplitude intentionally absent
			},
		},
	}

	_, err := cfg.BuildRegistry()
	if err == nil {
		t.Fatal("expected error for missing pitch_amplitude")
	}
	if !errors.Is(err, kinematics.ErrMissingParameter) {
		t.Errorf("expected ErrMissingParameter, got %v", err)
	}

	var cfgErr *kinematics.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigError, got %T", err)
	}
	if cfgErr.Key != "pitch_amplitude" || cfgErr.Body != "foil" {
		t.Errorf("error should name key and body, got %+v", cfgErr)
	}
}

func TestBuildRegistryUnknownKind(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Bodies = []BodyConfig{{Name: "x", Kind: "levitating_brick", Params: map[string]float64{}}}

	if _, err := cfg.BuildRegistry(); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestGetPreset(t *testing.T) {
	if GetPreset("lei2021") == nil {
		t.Error("expected lei2021 preset")
	}
	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if len(ListPresets()) == 0 {
		t.Error("expected presets to be listed")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	cfg := GetPreset("lei2021")
	path := filepath.Join(t.TempDir(), "out.yaml")

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if loaded.Duration != cfg.Duration || loaded.Dt != cfg.Dt {
		t.Error("round trip changed run settings")
	}
	if loaded.Bodies[0].Params["phase_offset"] != 90.0 {
		t.Error("round trip changed phase offset")
	}
}
