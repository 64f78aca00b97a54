// Package kernel provides the exact-arithmetic capability set the
// corefinement pipeline is built on: a lazy-exact point pool, the
// geometric predicates the pipeline's other phases call, and the
// symbolic Triangle Region vocabulary used to describe intersections
// without evaluating coordinates.
package kernel

import (
	"math/big"
	"sync"

	v3 "github.com/ajsb85/boolmesh/vec/v3"
)

// ID is a stable, append-only index into a Pool.
type ID int

// lazyExact holds the on-demand exact rational coordinates for a point,
// kept behind a pointer so that LazyPoint itself stays a plain
// comparable-by-value struct and copying it (e.g. when a Pool's backing
// slice grows) never copies a live sync.Once.
type lazyExact struct {
	once       sync.Once
	ex, ey, ez big.Rat
}

// LazyPoint is a point whose float64 interval is always available and
// whose exact rational coordinates are computed on demand and cached.
// The kernel's predicates evaluate the exact form only; they apply no
// float64 filter before it.
type LazyPoint struct {
	Approx v3.Vec
	exact  *lazyExact
}

// NewLazyPoint constructs a point from exact rational coordinates. The
// float64 interval is derived immediately; the exact form is already
// resolved, matching inputs read from a file where exact coordinates are
// known up front.
func NewLazyPoint(x, y, z *big.Rat) LazyPoint {
	e := &lazyExact{}
	e.ex.Set(x)
	e.ey.Set(y)
	e.ez.Set(z)
	e.once.Do(func() {})
	return LazyPoint{
		Approx: v3.Vec{X: ratToFloat(x), Y: ratToFloat(y), Z: ratToFloat(z)},
		exact:  e,
	}
}

// NewLazyPointFloat constructs a point directly from float64
// coordinates; its exact form is derived lazily the first time Exact is
// called.
func NewLazyPointFloat(x, y, z float64) LazyPoint {
	return LazyPoint{Approx: v3.Vec{X: x, Y: y, Z: z}, exact: &lazyExact{}}
}

func ratToFloat(r *big.Rat) float64 {
	f, _ := r.Float64()
	return f
}

// Exact forces and returns the exact rational coordinates. Safe to call
// concurrently; the computation happens at most once per point (spec.md
// §4.1: "the exact value is computed on demand").
func (p *LazyPoint) Exact() (x, y, z *big.Rat) {
	if p.exact == nil {
		p.exact = &lazyExact{}
	}
	e := p.exact
	e.once.Do(func() {
		e.ex.SetFloat64(p.Approx.X)
		e.ey.SetFloat64(p.Approx.Y)
		e.ez.SetFloat64(p.Approx.Z)
	})
	return &e.ex, &e.ey, &e.ez
}

// ExactEqual reports whether p and q are the same point by exact
// rational comparison. Used by the pool's uniqueness-check dedup and by
// the coplanar detector's key construction.
func (p *LazyPoint) ExactEqual(q *LazyPoint) bool {
	px, py, pz := p.Exact()
	qx, qy, qz := q.Exact()
	return px.Cmp(qx) == 0 && py.Cmp(qy) == 0 && pz.Cmp(qz) == 0
}

// pointKey is a hashable, exact representation of a point usable as a
// Go map key (big.Rat is not comparable).
type pointKey struct{ x, y, z string }

func keyOf(p *LazyPoint) pointKey {
	x, y, z := p.Exact()
	return pointKey{x.RatString(), y.RatString(), z.RatString()}
}

//-----------------------------------------------------------------------------

// Pool is the deduplicated, append-only exact point store shared across
// both input soups and every point constructed during corefinement
// (spec.md §3 "Point Pool", §4.1).
//
// Points are stored as pointers so that ids returned by At remain valid
// across Reserve/Insert-driven growth of the pool's backing slice; only
// the slice of pointers is reallocated, never the pointed-to LazyPoint
// values.
//
// The pool is the single shared mutable structure in the pipeline; it is
// only ever mutated from the serial phases (spec.md §5). Parallel phases
// hold a frozen snapshot and only read At.
type Pool struct {
	points []*LazyPoint
	index  map[pointKey]ID
	unique bool
}

// NewPool returns an empty pool with room reserved for n points.
func NewPool(n int) *Pool {
	return &Pool{points: make([]*LazyPoint, 0, n)}
}

// StartUniquenessCheck enables dedup-on-insert.
func (p *Pool) StartUniquenessCheck() {
	p.unique = true
	if p.index == nil {
		p.index = make(map[pointKey]ID, len(p.points))
		for i, pt := range p.points {
			p.index[keyOf(pt)] = ID(i)
		}
	}
}

// StopUniquenessCheck disables dedup-on-insert; subsequent Insert calls
// always append (spec.md §4.1: used once construction has already been
// deduped through the Inserter's own side map).
func (p *Pool) StopUniquenessCheck() {
	p.unique = false
}

// Reserve grows the backing slice's capacity without changing its length.
func (p *Pool) Reserve(n int) {
	if cap(p.points)-len(p.points) >= n {
		return
	}
	grown := make([]*LazyPoint, len(p.points), len(p.points)+n)
	copy(grown, p.points)
	p.points = grown
}

// Insert appends pt and returns its id, or returns the id of an
// exactly-equal point already present when uniqueness checking is
// enabled.
func (p *Pool) Insert(pt LazyPoint) ID {
	if p.unique {
		k := keyOf(&pt)
		if id, ok := p.index[k]; ok {
			return id
		}
		id := ID(len(p.points))
		p.points = append(p.points, &pt)
		p.index[k] = id
		return id
	}
	id := ID(len(p.points))
	p.points = append(p.points, &pt)
	return id
}

// At returns the point stored at id.
func (p *Pool) At(id ID) *LazyPoint {
	return p.points[id]
}

// Len returns the number of points currently in the pool.
func (p *Pool) Len() int { return len(p.points) }

// TakePoints drains and returns ownership of the pool's backing slice,
// per spec.md §3 ("The pool is finally drained (take_points) to hand
// ownership to the output").
func (p *Pool) TakePoints() []*LazyPoint {
	pts := p.points
	p.points = nil
	p.index = nil
	return pts
}

// ForceExactRange forces the exact representation of every point in
// [start, end) in parallel. Called after the Inserter finishes
// constructing intersection points, so that later read-only concurrent
// phases never race on lazy-evaluation of the cached interval (spec.md
// §4.5, §5 phase 2).
func (p *Pool) ForceExactRange(start, end ID, workers int) {
	if workers < 1 {
		workers = 1
	}
	n := int(end - start)
	if n <= 0 {
		return
	}
	var wg sync.WaitGroup
	chunk := (n + workers - 1) / workers
	for w := 0; w < workers; w++ {
		lo := int(start) + w*chunk
		hi := lo + chunk
		if lo >= int(end) {
			break
		}
		if hi > int(end) {
			hi = int(end)
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				p.points[i].Exact()
			}
		}(lo, hi)
	}
	wg.Wait()
}
