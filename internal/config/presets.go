package config

// Presets are ready-made run configurations for common cases.
var Presets = map[string]*Config{
	// Single heaving/pitching foil at the Lei et al. (2021) operating
	// point: St ~ 0.5 for unit freestream.
	"lei2021": {
		Duration: 10.0, Dt: 0.001, MaxSteps: 100000,
		Dumps: DumpConfig{VizInterval: 100, RestartInterval: 500, DiagnosticInterval: 50},
		Bodies: []BodyConfig{
			{
				Name: "foil", Kind: KindFlappingFoil,
				Params: map[string]float64{
					"frequency":       1.0,
					"heave_amplitude": 0.25,
					"pitch_amplitude": 15.0,
					"phase_offset":    90.0,
				},
			},
		},
	},

	// Aggressive flapping for thrust studies.
	"high_strouhal": {
		Duration: 5.0, Dt: 0.0005, MaxSteps: 100000,
		Dumps: DumpConfig{VizInterval: 200, RestartInterval: 1000, DiagnosticInterval: 100},
		Bodies: []BodyConfig{
			{
				Name: "foil", Kind: KindFlappingFoil,
				Params: map[string]float64{
					"frequency":       2.0,
					"heave_amplitude": 0.3,
					"pitch_amplitude": 25.0,
					"phase_offset":    75.0,
				},
			},
		},
	},

	// Four undulating fish in a diamond formation (dx=2.0L, dy=0.4L).
	"fish_school": {
		Duration: 12.0, Dt: 0.001, MaxSteps: 200000,
		Dumps: DumpConfig{VizInterval: 100, RestartInterval: 500, DiagnosticInterval: 50},
		Bodies: []BodyConfig{
			{
				Name: "eel2d_1", Kind: KindUndulator,
				Params: map[string]float64{
					"frequency": 1.0, "initial_offset_x": 0.0, "initial_offset_y": -0.2,
				},
			},
			{
				Name: "eel2d_2", Kind: KindUndulator,
				Params: map[string]float64{
					"frequency": 1.0, "initial_offset_x": 2.0, "initial_offset_y": -0.2,
				},
			},
			{
				Name: "eel2d_3", Kind: KindUndulator,
				Params: map[string]float64{
					"frequency": 1.0, "initial_offset_x": 0.0, "initial_offset_y": 0.2,
				},
			},
			{
				Name: "eel2d_4", Kind: KindUndulator,
				Params: map[string]float64{
					"frequency": 1.0, "initial_offset_x": 2.0, "initial_offset_y": 0.2,
				},
			},
		},
	},
}

func GetPreset(name string) *Config {
	return Presets[name]
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
