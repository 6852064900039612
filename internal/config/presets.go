package config

import "sort"

var Presets = map[string]map[string]*Config{
	"stack": {
		"small": {
			Scene: "stack", Dt: DefaultDt, Duration: 10.0, Seed: 1,
			Params: SceneParams{Count: 5, Size: 1.0},
		},
		"tall": {
			Scene: "stack", Dt: 1.0 / 120, Duration: 15.0, Seed: 1,
			Params: SceneParams{Count: 12, Size: 0.8},
		},
	},
	"billiards": {
		"break": {
			Scene: "billiards", Dt: 1.0 / 120, Duration: 10.0, Seed: 1,
			Params: SceneParams{Count: 15, Size: 0.5, Speed: 12},
		},
		"gentle": {
			Scene: "billiards", Dt: DefaultDt, Duration: 10.0, Seed: 1,
			Params: SceneParams{Count: 6, Size: 0.5, Speed: 4},
		},
	},
	"chain": {
		"rope": {
			Scene: "chain", Dt: DefaultDt, Duration: 10.0, Seed: 1,
			Params: SceneParams{Count: 8, Spacing: 1.0},
		},
		"long": {
			Scene: "chain", Dt: 1.0 / 120, Duration: 20.0, Seed: 1,
			Params: SceneParams{Count: 20, Spacing: 0.5},
		},
	},
	"fountain": {
		"steady": {
			Scene: "fountain", Dt: DefaultDt, Duration: 10.0, Seed: 1,
			Params: SceneParams{Count: 40, Speed: 8},
		},
		"burst": {
			Scene: "fountain", Dt: DefaultDt, Duration: 5.0, Seed: 7,
			Params: SceneParams{Count: 200, Speed: 14},
		},
	},
	"pendulum": {
		"single": {
			Scene: "pendulum", Dt: DefaultDt, Duration: 20.0, Seed: 1,
			Params: SceneParams{Count: 1, Spacing: 4, Size: 0.5},
		},
		"cradle": {
			Scene: "pendulum", Dt: 1.0 / 120, Duration: 20.0, Seed: 1,
			Params: SceneParams{Count: 5, Spacing: 4, Size: 0.5},
		},
	},
	"bridge": {
		"planks": {
			Scene: "bridge", Dt: 1.0 / 120, Duration: 10.0, Seed: 1,
			Params: SceneParams{Count: 8, Size: 1.5},
		},
		"heavy": {
			Scene: "bridge", Dt: 1.0 / 120, Duration: 10.0, Seed: 1,
			Params: SceneParams{Count: 6, Size: 2.0, Speed: 3},
		},
	},
}

// GetPreset returns a copy of the preset with the default world filled in,
// or nil if it does not exist.
func GetPreset(scene, preset string) *Config {
	scenePresets, ok := Presets[scene]
	if !ok {
		return nil
	}
	cfg, ok := scenePresets[preset]
	if !ok {
		return nil
	}
	out := cfg.Clone()
	out.World = DefaultWorld()
	return out
}

func ListPresets(scene string) []string {
	scenePresets, ok := Presets[scene]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(scenePresets))
	for name := range scenePresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
