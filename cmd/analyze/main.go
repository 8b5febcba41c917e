// Command analyze prints quick, human-readable heuristics about the pattern
// definitions in the project's configs directory (or the first argument). It
// summarizes shape sizes and bounds, counts triangles per orientation, reports
// the widest colour group, and lists which tile kinds match the colour groups.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/wricardo/tile-pattern-game/game/engine"
)

// AnalysisConfig is a light struct for reading pattern definitions used by analysis.
type AnalysisConfig struct {
	Name         string              `json:"name"`
	Description  string              `json:"description"`
	TriangleType engine.TriangleType `json:"triangle_type"`
	TileKind     engine.TileKind     `json:"tile_kind"`
	Shapes       []engine.TileShape  `json:"shapes"`
}

// ShapeAnalysis holds the numbers reported for one shape
type ShapeAnalysis struct {
	Triangles    int
	Orientations map[engine.Orientation]int
	Width        int
	Height       int
	WidestGroup  int
	GroupSpread  int
}

func main() {
	configDir := "configs"
	if len(os.Args) > 1 {
		configDir = os.Args[1]
	}

	files, err := filepath.Glob(filepath.Join(configDir, "*.json"))
	if err != nil || len(files) == 0 {
		fmt.Printf("No pattern definitions found in %s\n", configDir)
		os.Exit(1)
	}

	for _, file := range files {
		fmt.Printf("\n=== Analyzing %s ===\n", filepath.Base(file))
		analyzeConfig(file, os.Stdout)
	}
}

func analyzeConfig(path string, w io.Writer) {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(w, "Error reading file: %v\n", err)
		return
	}

	var config AnalysisConfig
	if err := json.Unmarshal(data, &config); err != nil {
		fmt.Fprintf(w, "Error parsing JSON: %v\n", err)
		return
	}
	if !config.TriangleType.Valid() {
		fmt.Fprintf(w, "Unknown triangle type %q\n", config.TriangleType)
		return
	}

	pattern, err := engine.NewPattern(config.TriangleType, config.Shapes)
	if err != nil {
		fmt.Fprintf(w, "Invalid pattern: %v\n", err)
		return
	}
	groups := pattern.NumColorGroups()

	fmt.Fprintf(w, "Name: %s\n", config.Name)
	fmt.Fprintf(w, "Triangle Type: %s\n", config.TriangleType)
	fmt.Fprintf(w, "Shapes: %d, colour groups per shape: %d\n", len(config.Shapes), groups)

	// Translation keeps orientation, so only a balanced set of shapes can
	// cover the lattice without gaps.
	orientations := config.TriangleType.Orientations()
	totals := make(map[engine.Orientation]int)

	for i, shape := range config.Shapes {
		a := analyzeShape(config.TriangleType, shape)
		for o, n := range a.Orientations {
			totals[o] += n
		}

		fmt.Fprintf(w, "Shape %d: %d triangles in a %d x %d box (%d %s, %d %s)\n",
			i+1, a.Triangles, a.Width, a.Height,
			a.Orientations[orientations[0]], orientations[0],
			a.Orientations[orientations[1]], orientations[1])
		if a.Triangles > 0 {
			fmt.Fprintf(w, "   Widest colour group: %d (spans %d cells)\n", a.WidestGroup+1, a.GroupSpread)
		}
	}

	first, second := totals[orientations[0]], totals[orientations[1]]
	if first != second {
		fmt.Fprintf(w, "⚠️  WARNING: shapes have %d %s and %d %s triangles; translated copies leave gaps\n",
			first, orientations[0], second, orientations[1])
	} else {
		fmt.Fprintf(w, "✅ %s and %s triangles are balanced\n", orientations[0], orientations[1])
	}

	for _, kind := range engine.TileKinds() {
		tile, err := engine.NewTile(kind, config.TriangleType)
		if err != nil {
			continue
		}
		if tile.NumSlots() == groups {
			fmt.Fprintf(w, "✅ Fits %s tiles (%d colour slots)\n", kind, tile.NumSlots())
		} else {
			fmt.Fprintf(w, "   %s tiles expect %d colour groups\n", kind, tile.NumSlots())
		}
	}
}

func analyzeShape(t engine.TriangleType, shape engine.TileShape) ShapeAnalysis {
	a := ShapeAnalysis{Orientations: make(map[engine.Orientation]int)}

	var minX, minY, maxX, maxY int
	for g, group := range shape {
		for i, c := range group {
			if a.Triangles == 0 {
				minX, maxX, minY, maxY = c.X, c.X, c.Y, c.Y
			}
			minX, maxX = min(minX, c.X), max(maxX, c.X)
			minY, maxY = min(minY, c.Y), max(maxY, c.Y)
			a.Triangles++
			a.Orientations[t.OrientationAt(c)]++

			for _, other := range group[i+1:] {
				if d := abs(c.X-other.X) + abs(c.Y-other.Y); d > a.GroupSpread {
					a.GroupSpread = d
					a.WidestGroup = g
				}
			}
		}
	}

	if a.Triangles > 0 {
		a.Width = maxX - minX + 1
		a.Height = maxY - minY + 1
	}
	return a
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
