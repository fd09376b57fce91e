package model

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// axisEpsilon is the squared-length threshold under which a declared
// motion axis is considered degenerate.
const axisEpsilon = 1e-12

// NormalizeFrameOrientation builds the canonical joint frame for a motion
// axis: an orthonormal rotation whose first column is the normalized axis.
// Downstream dynamics express all single-DOF motion about the local X
// axis, so revolute, continuous and prismatic joint frames are reoriented
// with this rotation at creation time.
//
// The remaining two columns are fixed deterministically: the standard
// basis vector of the axis's smallest-magnitude component seeds a
// restricted Gram-Schmidt step (z = x cross y0, y = z cross x), which
// yields a right-handed orthonormal triple for any non-degenerate axis.
//
// A zero or near-zero axis returns the identity rotation and false; the
// caller downgrades this to a warning rather than failing the build.
func NormalizeFrameOrientation(axis mgl64.Vec3) (mgl64.Mat3, bool) {
	if axis.LenSqr() < axisEpsilon {
		return mgl64.Ident3(), false
	}

	x := axis.Normalize()

	smallest := 0
	for i := 1; i < 3; i++ {
		if math.Abs(x[i]) < math.Abs(x[smallest]) {
			smallest = i
		}
	}
	var y0 mgl64.Vec3
	y0[smallest] = 1

	z := x.Cross(y0).Normalize()
	y := z.Cross(x)

	return mgl64.Mat3FromCols(x, y, z), true
}
