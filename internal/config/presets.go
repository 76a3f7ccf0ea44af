package config

var Presets = map[string]map[string]*Config{
	"track": {
		"stop": {
			Surface: SurfaceConfig{Family: "track", Amplitude: 1.0, Frequency: 1.0},
			Physics: PhysicsConfig{Gravity: 9.81, Mass: 1.0, Mu: 0.3, X0: -4.0, V0: 3.0},
			Domain:  DomainConfig{XMin: -4.0, XMax: 5.0, Dx: 0.01},
		},
		"coast": {
			Surface: SurfaceConfig{Family: "track", Amplitude: 1.0, Frequency: 1.0},
			Physics: PhysicsConfig{Gravity: 9.81, Mass: 1.0, Mu: 0.0, X0: -4.0, V0: 6.0},
			Domain:  DomainConfig{XMin: -4.0, XMax: 5.0, Dx: 0.01},
		},
		"wavy_friction": {
			Surface: SurfaceConfig{Family: "track", Amplitude: 1.0, Frequency: 1.0},
			Physics: PhysicsConfig{Gravity: 9.81, Mass: 1.0, MuExpr: "0.3 + 0.1*sin(x)", X0: -4.0, V0: 5.0},
			Domain:  DomainConfig{XMin: -4.0, XMax: 5.0, Dx: 0.01},
		},
	},
	"circle": {
		"liftoff": {
			Surface: SurfaceConfig{Family: "circle", Radius: 5.0},
			Physics: PhysicsConfig{Gravity: 9.81, Mass: 1.0, Mu: 0.0, X0: 0.0, V0: 4.0},
			Domain:  DomainConfig{XMin: -4.9, XMax: 4.9, Dx: 0.01},
		},
		"grip": {
			Surface: SurfaceConfig{Family: "circle", Radius: 5.0},
			Physics: PhysicsConfig{Gravity: 9.81, Mass: 1.0, Mu: 0.4, X0: 0.0, V0: 2.0},
			Domain:  DomainConfig{XMin: -4.9, XMax: 4.9, Dx: 0.01},
		},
	},
	"ellipse": {
		"gentle": {
			Surface: SurfaceConfig{Family: "ellipse", SemiMajor: 3.0, SemiMinor: 2.0},
			Physics: PhysicsConfig{Gravity: 9.81, Mass: 1.0, Mu: 0.1, X0: 0.0, V0: 1.0},
			Domain:  DomainConfig{XMin: -2.9, XMax: 2.9, Dx: 0.005},
		},
	},
	"expr": {
		"valley": {
			Surface: SurfaceConfig{Family: "expr", Expr: "0.25*x*x"},
			Physics: PhysicsConfig{Gravity: 9.81, Mass: 1.0, Mu: 0.05, X0: -3.0, V0: 0.5},
			Domain:  DomainConfig{XMin: -3.0, XMax: 3.0, Dx: 0.01},
		},
		"swell": {
			Surface: SurfaceConfig{Family: "expr", Expr: "sin(x) + 0.2*x"},
			Physics: PhysicsConfig{Gravity: 9.81, Mass: 1.0, Mu: 0.15, X0: -4.0, V0: 4.0},
			Domain:  DomainConfig{XMin: -4.0, XMax: 6.0, Dx: 0.01},
		},
	},
}

func GetPreset(family, preset string) *Config {
	familyPresets, ok := Presets[family]
	if !ok {
		return nil
	}
	cfg, ok := familyPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(family string) []string {
	familyPresets, ok := Presets[family]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(familyPresets))
	for name := range familyPresets {
		names = append(names, name)
	}
	return names
}
