package boolean

import (
	"context"
	"fmt"
	"runtime"

	"github.com/ajsb85/boolmesh/broadphase"
	"github.com/ajsb85/boolmesh/coplanar"
	"github.com/ajsb85/boolmesh/isect"
	"github.com/ajsb85/boolmesh/kernel"
	"github.com/ajsb85/boolmesh/mesh"
	"github.com/ajsb85/boolmesh/triangulate"
)

// PipelineError identifies which input and which phase a fatal
// condition was detected in (spec.md §7: "surfaced with an identifying
// message naming the mesh ... and the phase").
type PipelineError struct {
	Mesh  string // "left" or "right"
	Phase string
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("boolean: %s mesh, phase %s: %v", e.Mesh, e.Phase, e.Err)
}

func (e *PipelineError) Unwrap() error { return e.Err }

// ProgressSink receives structured progress events from the pipeline
// (SPEC_FULL.md §2 "Progress reporting": the core never writes to
// stdout itself). Phase names match the component list in spec.md §2.
type ProgressSink interface {
	Progress(phase string, detail string, count int)
}

// NopSink discards every event.
type NopSink struct{}

// Progress implements ProgressSink.
func (NopSink) Progress(string, string, int) {}

// Options configures a pipeline Run.
type Options struct {
	Workers int
	Sink    ProgressSink
}

func (o Options) workers() int {
	if o.Workers < 1 {
		return runtime.GOMAXPROCS(0)
	}
	return o.Workers
}

func (o Options) sink() ProgressSink {
	if o.Sink == nil {
		return NopSink{}
	}
	return o.Sink
}

// Run executes the full corefinement and classification pipeline
// (spec.md §2 "Data flow") over two input soups and returns the
// classified Mixed Mesh together with the accumulated warnings. Callers
// pick the output combination with Extract.
func Run(ctx context.Context, left, right *mesh.Soup, opts Options) (*MixedMesh, Warnings, error) {
	sink := opts.sink()
	workers := opts.workers()

	if err := left.Validate(); err != nil {
		return nil, 0, &PipelineError{Mesh: "left", Phase: "validate", Err: err}
	}
	if err := right.Validate(); err != nil {
		return nil, 0, &PipelineError{Mesh: "right", Phase: "validate", Err: err}
	}

	pool := kernel.NewPool(left.NumVertices() + right.NumVertices())
	pool.StartUniquenessCheck()
	leftTable := mesh.BuildPointIDTable(left, pool)
	rightTable := mesh.BuildPointIDTable(right, pool)
	sink.Progress("point_pool", "built", pool.Len())

	leftTags, rightTags := coplanar.Detect(left.Faces, right.Faces, leftTable, rightTable)
	sink.Progress("coplanar", "tagged", countTagged(leftTags)+countTagged(rightTags))

	pairs := broadphase.Cull(left, right, leftTable, rightTable, leftTags, rightTags)
	sink.Progress("broadphase", "candidate pairs", len(pairs))

	infos, err := isect.ComputeAll(ctx, pool, left, right, leftTable, rightTable, pairs, workers)
	if err != nil {
		return nil, 0, &PipelineError{Mesh: "both", Phase: "intersect", Err: err}
	}
	sink.Progress("intersect", "face pairs with intersections", len(infos))

	pool.StopUniquenessCheck()
	resolved, start, end := isect.Insert(pool, left, right, leftTable, rightTable, infos)
	pool.ForceExactRange(start, end, workers)
	sink.Progress("insert", "new points", int(end-start))

	leftTris, err := triangulate.BuildAll(ctx, pool, left, leftTable, kernel.Left, infos, resolved, workers)
	if err != nil {
		return nil, 0, &PipelineError{Mesh: "left", Phase: "triangulate", Err: err}
	}
	rightTris, err := triangulate.BuildAll(ctx, pool, right, rightTable, kernel.Right, infos, resolved, workers)
	if err != nil {
		return nil, 0, &PipelineError{Mesh: "right", Phase: "triangulate", Err: err}
	}
	sink.Progress("triangulate", "retriangulated faces", len(leftTris)+len(rightTris))

	mm := Build(pool, left, right, leftTable, rightTable, leftTags, rightTags, leftTris, rightTris)
	sink.Progress("mixed_mesh", "faces", len(mm.Faces))

	var warn Warnings
	localWarn, err := classifyLocal(ctx, mm, workers)
	if err != nil {
		return nil, 0, &PipelineError{Mesh: "both", Phase: "local_classify", Err: err}
	}
	warn |= localWarn
	sink.Progress("local_classify", "warnings", int(localWarn))

	warn |= classifyGlobal(mm, left, right, leftTable, rightTable)
	sink.Progress("global_classify", "warnings", int(warn))

	finalizeCoplanarOpposite(mm)
	return mm, warn, nil
}

// finalizeCoplanarOpposite converts the coplanar detector's provisional
// Coplanar/Opposite tags to the output Face Tag vocabulary's Boundary
// (spec.md §3: a finished Mixed Mesh only ever carries
// Exterior/Interior/Boundary). Both sides' copies of a coplanar pair
// become Boundary; Extract's per-op table then naturally emits only the
// left copy, since every op's right-hand column omits Boundary.
func finalizeCoplanarOpposite(mm *MixedMesh) {
	for i := range mm.Faces {
		if mm.Faces[i].Tag == mesh.Coplanar || mm.Faces[i].Tag == mesh.Opposite {
			mm.Faces[i].Tag = mesh.Boundary
		}
	}
}

func countTagged(tags mesh.Tags) int {
	n := 0
	for _, t := range tags {
		if t != mesh.Unknown {
			n++
		}
	}
	return n
}
