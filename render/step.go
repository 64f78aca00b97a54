// Package render adapts a classified Boolean result to external file
// formats: STEP AP214 via the step package.
package render

import (
	"fmt"

	"github.com/ajsb85/boolmesh/mesh"
	"github.com/ajsb85/boolmesh/sdf"
	"github.com/ajsb85/boolmesh/step"
)

// STEPOptions configures STEP export.
type STEPOptions struct {
	Author       string
	Organization string
	ProductName  string
}

// SaveSTEP writes a Triangle Soup (typically the output of
// boolean.Extract) to a STEP AP214 file, with every face left
// anonymous. Equivalent to SaveSTEPTagged with a nil tags.
func SaveSTEP(path string, soup *mesh.Soup, opts STEPOptions) error {
	return SaveSTEPTagged(path, soup, nil, opts)
}

// SaveSTEPTagged writes soup to a STEP AP214 file the same way SaveSTEP
// does, but additionally names each exported ADVANCED_FACE entity after
// its Face Tag (spec.md §3): tags[i] must describe soup.Faces[i], the
// same order boolean.ExtractFaceTags returns for a given
// boolean.Extract(mm, op) call. A STEP consumer can then recover which
// surviving faces were Interior/Exterior/Boundary without recomputing
// the classification.
func SaveSTEPTagged(path string, soup *mesh.Soup, tags mesh.Tags, opts STEPOptions) error {
	writer, err := step.NewWriter(path)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	defer writer.Close()

	if opts.Author != "" || opts.Organization != "" {
		author := opts.Author
		if author == "" {
			author = "Unknown"
		}
		org := opts.Organization
		if org == "" {
			org = "Unknown"
		}
		writer.SetAuthor(author, org)
	}

	productName := opts.ProductName
	if productName == "" {
		productName = "boolmesh_model"
	}

	triangles := toTriangles(soup)
	if err := writer.WriteMeshLabeled(triangles, tagLabels(tags), productName); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}

// tagLabels renders a Tags vector to the parallel []string
// step.Writer.WriteMeshLabeled expects, or nil if tags itself is nil
// (leaving every face anonymous, same as the teacher's original writer).
func tagLabels(tags mesh.Tags) []string {
	if tags == nil {
		return nil
	}
	labels := make([]string, len(tags))
	for i, t := range tags {
		labels[i] = t.String()
	}
	return labels
}

// toTriangles converts a Triangle Soup's float64 approximation into the
// step package's triangle slice, the only geometry it understands.
func toTriangles(soup *mesh.Soup) []*sdf.Triangle3 {
	out := make([]*sdf.Triangle3, 0, len(soup.Faces))
	for _, f := range soup.Faces {
		t := &sdf.Triangle3{
			soup.Vertices[f[0]].Approx,
			soup.Vertices[f[1]].Approx,
			soup.Vertices[f[2]].Approx,
		}
		out = append(out, t)
	}
	return out
}
