// Package opw implements closed-form forward and inverse kinematics for six-axis
// industrial manipulators with an ortho-parallel base and a spherical wrist, the
// structural family covering most serial industrial robot arms.
//
// The geometry of an arm is fully described by seven link parameters following
// the convention of Brandstötter, Angerer and Hofbaur, "An Analytical Solution
// of the Inverse Kinematics Problem of Industrial Serial Manipulators with an
// Ortho-parallel Basis and a Spherical Wrist" (2014), plus per-joint sign
// corrections and zero offsets to absorb axis-direction and zero-pose
// convention differences between vendors.
package opw

import (
	"github.com/j-polden/moveit-opw-kinematics-plugin/utils"
)

// Parameters holds the seven link geometry values of an OPW manipulator along
// with its per-joint corrections. All lengths share one unit, typically meters.
// A Parameters value is never mutated by the solver; it is safe to share across
// any number of concurrent queries.
type Parameters struct {
	A1 float64
	A2 float64
	B  float64
	C1 float64
	C2 float64
	C3 float64
	C4 float64

	// Offsets shift each joint's zero pose, in radians.
	Offsets [6]float64
	// SignCorrections flip the rotation direction of individual axes; each entry must be +1 or -1.
	SignCorrections [6]int
}

// NewParameters returns Parameters with zero link lengths, zero offsets and all
// sign corrections set to +1.
func NewParameters() *Parameters {
	return &Parameters{SignCorrections: [6]int{1, 1, 1, 1, 1, 1}}
}

// corrected maps externally visible joint angles to the raw angles used by the
// kinematic chain.
func (p *Parameters) corrected(q [6]float64) [6]float64 {
	var out [6]float64
	for i := 0; i < 6; i++ {
		out[i] = q[i]*float64(p.SignCorrections[i]) - p.Offsets[i]
	}
	return out
}

// uncorrected is the inverse of corrected; solved raw angles are reported back
// in the external convention, normalized to (-π, π].
func (p *Parameters) uncorrected(q [6]float64) [6]float64 {
	var out [6]float64
	for i := 0; i < 6; i++ {
		out[i] = utils.WrapRad((q[i] + p.Offsets[i]) * float64(p.SignCorrections[i]))
	}
	return out
}
