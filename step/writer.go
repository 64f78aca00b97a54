package step

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ajsb85/boolmesh/sdf"
)

// Writer handles STEP file generation
type Writer struct {
	file       *os.File
	writer     *bufio.Writer
	converter  *MeshConverter
	fileName   string
	authorName string
	orgName    string
}

// NewWriter creates a new STEP writer
func NewWriter(path string) (*Writer, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	return &Writer{
		file:       file,
		writer:     bufio.NewWriter(file),
		converter:  NewMeshConverter(),
		fileName:   filepath.Base(path),
		authorName: "boolmesh User",
		orgName:    "boolmesh Organization",
	}, nil
}

// SetAuthor sets the author information
func (w *Writer) SetAuthor(name, org string) {
	w.authorName = name
	w.orgName = org
}

// Close closes the writer and flushes any remaining data
func (w *Writer) Close() error {
	if err := w.writer.Flush(); err != nil {
		w.file.Close()
		return err
	}
	return w.file.Close()
}

// writeHeader writes the STEP file header
func (w *Writer) writeHeader() error {
	header := []string{
		"ISO-10303-21;",
		"HEADER;",
		"FILE_DESCRIPTION(('STEP AP214'),'1');",
		fmt.Sprintf("FILE_NAME('%s','%s',('%s'),('%s'),'boolmesh STEP Writer','boolmesh','');",
			w.fileName,
			time.Now().Format("2006-01-02T15:04:05"),
			w.authorName,
			w.orgName),
		"FILE_SCHEMA(('AUTOMOTIVE_DESIGN'));",
		"ENDSEC;",
	}

	for _, line := range header {
		if _, err := w.writer.WriteString(line + "\n"); err != nil {
			return err
		}
	}

	return nil
}

// writeData writes the DATA section with entities
func (w *Writer) writeData(entities []Entity) error {
	if _, err := w.writer.WriteString("DATA;\n"); err != nil {
		return err
	}

	for _, entity := range entities {
		str := entity.String()
		// Handle multi-line entities (complex types)
		if strings.Contains(str, "\n") {
			lines := strings.Split(str, "\n")
			for i, line := range lines {
				if i < len(lines)-1 {
					if _, err := w.writer.WriteString(line + "\n"); err != nil {
						return err
					}
				} else {
					if _, err := w.writer.WriteString(line + "\n"); err != nil {
						return err
					}
				}
			}
		} else {
			if _, err := w.writer.WriteString(str + "\n"); err != nil {
				return err
			}
		}
	}

	if _, err := w.writer.WriteString("ENDSEC;\n"); err != nil {
		return err
	}

	return nil
}

// writeFooter writes the STEP file footer
func (w *Writer) writeFooter() error {
	if _, err := w.writer.WriteString("END-ISO-10303-21;\n"); err != nil {
		return err
	}
	return nil
}

// WriteMesh writes a triangle mesh to the STEP file. It delegates to
// WriteMeshLabeled with no per-face labels.
func (w *Writer) WriteMesh(mesh []*sdf.Triangle3, name string) error {
	return w.WriteMeshLabeled(mesh, nil, name)
}

// WriteMeshLabeled writes a triangle mesh to the STEP file, naming each
// triangle's ADVANCED_FACE entity from labels (parallel to mesh; nil
// leaves faces anonymous). render.SaveSTEPTagged uses this to carry a Mixed
// Mesh's per-face Face Tag through into the exported BREP.
func (w *Writer) WriteMeshLabeled(mesh []*sdf.Triangle3, labels []string, name string) error {
	fmt.Printf("WriteMesh: Starting with %d triangles\n", len(mesh))

	// Optimize mesh
	optimizedMesh, optimizedLabels := OptimizeMesh(mesh, labels)
	fmt.Printf("WriteMesh: Optimized to %d triangles\n", len(optimizedMesh))

	// Convert mesh to STEP entities
	fmt.Println("WriteMesh: Converting to STEP entities...")
	entities := w.converter.ConvertMesh(optimizedMesh, optimizedLabels, name)
	fmt.Printf("WriteMesh: Created %d entities\n", len(entities))

	// Write STEP file
	fmt.Println("WriteMesh: Writing header...")
	if err := w.writeHeader(); err != nil {
		return err
	}

	fmt.Println("WriteMesh: Writing data section...")
	if err := w.writeData(entities); err != nil {
		return err
	}

	fmt.Println("WriteMesh: Writing footer...")
	if err := w.writeFooter(); err != nil {
		return err
	}

	fmt.Println("WriteMesh: Flushing buffer...")
	return w.writer.Flush()
}
