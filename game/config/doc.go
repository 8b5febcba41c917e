// Package config provides the pattern definition library for the tile pattern game.
//
// The config package handles:
//   - Loading pattern definitions from JSON files
//   - Definition validation against the engine's shape rules
//   - Default definition management
//   - Definition discovery and listing
//
// Definition Format:
//
// Pattern definitions are stored as JSON files in the configs directory:
//
//	{
//	  "name": "cubes",
//	  "description": "Three-face cube pieces",
//	  "triangle_type": "up_down",
//	  "tile_kind": "cube",
//	  "shapes": [[ [[0,0],[1,0]], [[2,0],[2,1]], [[1,1],[0,1]] ]]
//	}
//
// shapes is a list of tile shapes; each shape is a list of colour groups; each
// colour group is a list of [x, y] triangle coordinates. Every shape must have
// the same number of colour groups.
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	patternConfig, err := manager.LoadConfig("cubes")
//	defaultConfig := manager.GetDefault()
//	configs, err := manager.ListConfigs()
package config
