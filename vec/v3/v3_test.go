//-----------------------------------------------------------------------------
/*

Vec 3D Testing

*/
//-----------------------------------------------------------------------------

package v3

import (
	"math"
	"testing"
)

//-----------------------------------------------------------------------------

func Test_Vec_Cross(t *testing.T) {
	testSet := []struct {
		a, b, want Vec
	}{
		{Vec{1, 0, 0}, Vec{0, 1, 0}, Vec{0, 0, 1}},
		{Vec{0, 1, 0}, Vec{0, 0, 1}, Vec{1, 0, 0}},
		{Vec{2, 0, 0}, Vec{0, 2, 0}, Vec{0, 0, 4}},
	}
	for i, test := range testSet {
		got := test.a.Cross(test.b)
		if !got.Equals(test.want, 1e-12) {
			t.Errorf("test %d: expected %v, got %v", i, test.want, got)
		}
	}
}

func Test_Vec_Normalize(t *testing.T) {
	v := Vec{3, 4, 0}
	n := v.Normalize()
	if math.Abs(n.Length()-1) > 1e-12 {
		t.Errorf("expected unit length, got %f", n.Length())
	}
	z := Vec{}.Normalize()
	if z != (Vec{}) {
		t.Errorf("expected zero vector unchanged, got %v", z)
	}
}

//-----------------------------------------------------------------------------
