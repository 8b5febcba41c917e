// Command validate checks the pattern definition JSON files in a directory
// (default "configs", or the first argument). It checks:
//   - JSON structure and required fields
//   - Known triangle type and tile kind
//   - At least one shape, and the same number of colour groups in every shape
//   - Coordinates that appear in more than one colour group of a shape
//
// It prints a report per file and exits with non-zero status if any file is invalid.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/wricardo/tile-pattern-game/game/config"
	"github.com/wricardo/tile-pattern-game/game/engine"
	"github.com/wricardo/tile-pattern-game/game/service"
)

// ValidationResult captures the outcome of validating a single file.
// Errors make the file invalid; Info lines are printed for valid files and
// Warnings are printed either way.
type ValidationResult struct {
	File     string
	Valid    bool
	Errors   []string
	Warnings []string
	Info     []string
}

func (r *ValidationResult) fail(format string, args ...interface{}) {
	r.Valid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// validateConfig loads and validates a single pattern definition file
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:  filepath.Base(filePath),
		Valid: true,
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.fail("Failed to read file: %v", err)
		return result
	}

	var cfg service.PatternConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		result.fail("Invalid JSON: %v", err)
		return result
	}

	if cfg.Name == "" {
		result.fail("name is required")
	}
	if !cfg.TriangleType.Valid() {
		result.fail("triangle_type must be one of %v, got %q", engine.TriangleTypes, cfg.TriangleType)
	}
	if !cfg.TileKind.Valid() {
		result.fail("tile_kind must be one of %v, got %q", engine.TileKinds(), cfg.TileKind)
	}

	validateShapes(&result, cfg.Shapes)

	// The manager's check is authoritative; anything above missed still fails here
	if result.Valid {
		if err := config.ValidatePatternConfig(&cfg); err != nil {
			result.fail("%v", err)
		}
	}

	if result.Valid {
		addInfo(&result, &cfg)
	}

	return result
}

// validateShapes reports every shape whose colour group count differs from
// the first shape, and coordinates repeated across groups of one shape
func validateShapes(result *ValidationResult, shapes []engine.TileShape) {
	if len(shapes) == 0 {
		result.fail("shapes must contain at least one shape")
		return
	}

	expected := len(shapes[0])
	for i, shape := range shapes {
		if len(shape) != expected {
			result.fail("shape %d has %d colour groups, expected %d (same as shape 1)", i+1, len(shape), expected)
		}

		seen := make(map[engine.Coord]int)
		for g, group := range shape {
			if len(group) == 0 {
				result.Warnings = append(result.Warnings, fmt.Sprintf("shape %d group %d is empty", i+1, g+1))
			}
			for _, c := range group {
				if first, ok := seen[c]; ok && first != g {
					result.Warnings = append(result.Warnings,
						fmt.Sprintf("shape %d: [%d,%d] is in groups %d and %d", i+1, c.X, c.Y, first+1, g+1))
					continue
				}
				seen[c] = g
			}
		}
	}
}

func addInfo(result *ValidationResult, cfg *service.PatternConfig) {
	pattern, err := engine.NewPattern(cfg.TriangleType, cfg.Shapes)
	if err != nil {
		result.fail("%v", err)
		return
	}
	props := pattern.Properties()

	result.Info = append(result.Info,
		fmt.Sprintf("✓ Name: %s", cfg.Name),
		fmt.Sprintf("✓ Topology: %s, tile: %s", cfg.TriangleType, cfg.TileKind),
		fmt.Sprintf("✓ Shapes: %d", len(cfg.Shapes)),
		fmt.Sprintf("✓ Colour groups per shape: %d", props.NumColorGroups),
		fmt.Sprintf("✓ Triangles in first shape: %d", props.NumTriangles),
		fmt.Sprintf("✓ Bounds: [%d,%d] to [%d,%d]", props.Bounds.Min.X, props.Bounds.Min.Y, props.Bounds.Max.X, props.Bounds.Max.Y),
	)

	if tile, err := engine.NewTile(cfg.TileKind, cfg.TriangleType); err == nil && tile.NumSlots() != props.NumColorGroups {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("%s tiles have %d colour slots but shapes have %d colour groups", cfg.TileKind, tile.NumSlots(), props.NumColorGroups))
	}
}

// run validates every *.json file in configDir, writes a report to w and
// reports whether all files are valid
func run(configDir string, w io.Writer) bool {
	files, err := filepath.Glob(filepath.Join(configDir, "*.json"))
	if err != nil {
		fmt.Fprintf(w, "Error finding config files: %v\n", err)
		return false
	}
	if len(files) == 0 {
		fmt.Fprintf(w, "No pattern definitions found in %s\n", configDir)
		return false
	}

	allValid := true
	for _, file := range files {
		result := validateConfig(file)

		fmt.Fprintf(w, "\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Fprintln(w, "✅ VALID")
			for _, info := range result.Info {
				fmt.Fprintln(w, "  "+info)
			}
		} else {
			fmt.Fprintln(w, "❌ INVALID")
			allValid = false
			for _, e := range result.Errors {
				fmt.Fprintln(w, "  ❌ "+e)
			}
		}
		for _, warning := range result.Warnings {
			fmt.Fprintln(w, "  ⚠ "+warning)
		}
	}

	fmt.Fprintf(w, "\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Fprintln(w, "✅ All pattern definitions are valid!")
	} else {
		fmt.Fprintln(w, "❌ Some pattern definitions have errors")
	}
	return allValid
}

func main() {
	configDir := "configs"
	if len(os.Args) > 1 {
		configDir = os.Args[1]
	}

	if !run(configDir, os.Stdout) {
		os.Exit(1)
	}
}
