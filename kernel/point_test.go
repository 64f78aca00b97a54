package kernel

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolInsertDedup(t *testing.T) {
	p := NewPool(4)
	p.StartUniquenessCheck()

	id1 := p.Insert(NewLazyPointFloat(1, 2, 3))
	id2 := p.Insert(NewLazyPointFloat(1, 2, 3))
	id3 := p.Insert(NewLazyPointFloat(1, 2, 3.0000001))

	assert.Equal(t, id1, id2, "geometrically equal points must dedup to the same id")
	assert.NotEqual(t, id1, id3)
	assert.Equal(t, 2, p.Len())
}

func TestPoolAppendAfterStopUniqueness(t *testing.T) {
	p := NewPool(1)
	p.StartUniquenessCheck()
	id1 := p.Insert(NewLazyPointFloat(0, 0, 0))
	p.StopUniquenessCheck()

	id2 := p.Insert(NewLazyPointFloat(0, 0, 0))
	require.NotEqual(t, id1, id2, "dedup must not apply once uniqueness checking is stopped")
}

func TestPoolIDsStableAcrossGrowth(t *testing.T) {
	p := NewPool(0) // force repeated reallocation
	ids := make([]ID, 0, 256)
	ptrs := make([]*LazyPoint, 0, 256)
	for i := 0; i < 256; i++ {
		id := p.Insert(NewLazyPointFloat(float64(i), 0, 0))
		ids = append(ids, id)
		ptrs = append(ptrs, p.At(id))
	}
	for i, id := range ids {
		require.Same(t, ptrs[i], p.At(id), "pointer returned by At must remain stable across growth")
		require.Equal(t, float64(i), p.At(id).Approx.X)
	}
}

func TestLazyPointExactFromFloat(t *testing.T) {
	p := NewLazyPointFloat(0.5, -0.25, 2)
	x, y, z := p.Exact()
	assert.Equal(t, big.NewRat(1, 2), x)
	assert.Equal(t, big.NewRat(-1, 4), y)
	assert.Equal(t, big.NewRat(2, 1), z)
}

func TestForceExactRangeParallel(t *testing.T) {
	p := NewPool(100)
	var first ID
	for i := 0; i < 100; i++ {
		id := p.Insert(NewLazyPointFloat(float64(i)*0.5, 0, 0))
		if i == 0 {
			first = id
		}
	}
	p.ForceExactRange(first, ID(p.Len()), 8)
	for i := 0; i < 100; i++ {
		x, _, _ := p.At(ID(i)).Exact()
		want := big.NewRat(int64(i), 2)
		assert.Equal(t, 0, x.Cmp(want), "point %d exact form mismatch", i)
	}
}
