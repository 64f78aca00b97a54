package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ajsb85/boolmesh/mesh"
	"github.com/ajsb85/boolmesh/meshio"
	"github.com/ajsb85/boolmesh/render"
)

// readSoup reads a Triangle Soup from path. Only Wavefront OBJ is a
// supported input format (SPEC_FULL.md §15: the teacher's STEP support
// is write-only, there is no STEP parser in the pack).
func readSoup(path string) (*mesh.Soup, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".obj":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		defer f.Close()
		s, err := meshio.ReadOBJ(f)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("reading %s: unsupported input format %q (only .obj)", path, ext)
	}
}

// writeSoup writes a Triangle Soup to path, choosing OBJ or STEP AP214
// by extension. tags, if non-nil, must be parallel to s.Faces; STEP
// output carries it through as each face's name (render.SaveSTEPTagged).
// OBJ has no per-face metadata field, so tags is ignored there.
func writeSoup(path string, s *mesh.Soup, tags mesh.Tags) error {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".obj":
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		defer f.Close()
		if err := meshio.WriteOBJ(f, s); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		return nil
	case ".step", ".stp":
		opts := render.STEPOptions{ProductName: strings.TrimSuffix(filepath.Base(path), ext)}
		if err := render.SaveSTEPTagged(path, s, tags, opts); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		return nil
	default:
		return fmt.Errorf("writing %s: unsupported output format %q (.obj, .step, .stp)", path, ext)
	}
}
