package opw

import (
	"math"

	"github.com/golang/geo/r3"

	"github.com/j-polden/moveit-opw-kinematics-plugin/spatialmath"
	"github.com/j-polden/moveit-opw-kinematics-plugin/utils"
)

// Raw wrist angles closer than this to a singular configuration collapse into
// a single solution; past it the two wrist branches are numerically distinct.
const singularityEps = 1e-6

// numCandidates is the fixed size of the IK branch enumeration: four
// shoulder/elbow configurations, each with a direct and a flipped wrist.
const numCandidates = 8

// candidate is one closed-form IK branch, in raw (uncorrected) joint space.
type candidate struct {
	q        [6]float64
	feasible bool
}

// forwardPosition evaluates the kinematic chain for raw joint angles, returning
// the flange position and orientation relative to the base frame. The
// composition order is the OPW convention and must not change: base rotation
// about z, two parallel lift axes about y offset by a1 and a2/b, then a
// spherical z-y-z wrist with link lengths c1 through c4.
func forwardPosition(p *Parameters, q [6]float64) (r3.Vector, *spatialmath.RotationMatrix) {
	psi3 := math.Atan2(p.A2, p.C3)
	k := math.Sqrt(p.A2*p.A2 + p.C3*p.C3)

	sin1, cos1 := math.Sincos(q[0])
	sin23, cos23 := math.Sincos(q[1] + q[2])
	sin4, cos4 := math.Sincos(q[3])
	sin5, cos5 := math.Sincos(q[4])
	sin6, cos6 := math.Sincos(q[5])

	// wrist center in the plane of the arm, then rotated about the base
	cx1 := p.C2*math.Sin(q[1]) + k*math.Sin(q[1]+q[2]+psi3) + p.A1
	cy1 := p.B
	cz1 := p.C2*math.Cos(q[1]) + k*math.Cos(q[1]+q[2]+psi3)

	cx0 := cx1*cos1 - cy1*sin1
	cy0 := cx1*sin1 + cy1*cos1
	cz0 := cz1 + p.C1

	// base to wrist center: Rz(q1) * Ry(q2+q3)
	r0c := [9]float64{
		cos1 * cos23, -sin1, cos1 * sin23,
		sin1 * cos23, cos1, sin1 * sin23,
		-sin23, 0, cos23,
	}

	// spherical wrist: Rz(q4) * Ry(q5) * Rz(q6)
	rce := [9]float64{
		cos4*cos5*cos6 - sin4*sin6, -cos4*cos5*sin6 - sin4*cos6, cos4 * sin5,
		sin4*cos5*cos6 + cos4*sin6, -sin4*cos5*sin6 + cos4*cos6, sin4 * sin5,
		-sin5 * cos6, sin5 * sin6, cos5,
	}

	var r0e [9]float64
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			r0e[3*row+col] = r0c[3*row]*rce[col] + r0c[3*row+1]*rce[3+col] + r0c[3*row+2]*rce[6+col]
		}
	}
	rm, _ := spatialmath.NewRotationMatrix(r0e[:])

	pos := r3.Vector{X: cx0, Y: cy0, Z: cz0}.Add(rm.Col(2).Mul(p.C4))
	return pos, rm
}

// acosBranch returns the arc cosine of num/denom, reporting whether the
// argument lies in the valid domain at all. Arguments within floating point
// error of ±1 are clamped; anything further out means the triangle the law of
// cosines was applied to cannot close and the branch is unreachable.
func acosBranch(num, denom float64) (float64, bool) {
	if denom == 0 {
		return 0, false
	}
	x := num / denom
	if math.Abs(x) > 1+1e-9 {
		return 0, false
	}
	return math.Acos(math.Max(-1, math.Min(1, x))), true
}

// inversePosition enumerates the raw joint angle branches reaching the given
// pose. Infeasible branches are returned with their feasible flag unset.
// rawRef, when non-nil, pins axis 4 at wrist singularities.
func inversePosition(p *Parameters, target spatialmath.Pose, rawRef *[6]float64) [numCandidates]candidate {
	var cands [numCandidates]candidate

	rm := target.Orientation().RotationMatrix()
	// wrist center: walk back from the flange along the tool z axis
	c := target.Point().Sub(rm.Col(2).Mul(p.C4))

	nx1sq := c.X*c.X + c.Y*c.Y - p.B*p.B
	if nx1sq < 0 {
		// target is inside the cylinder swept by the lateral offset b
		return cands
	}
	nx1 := math.Sqrt(nx1sq) - p.A1

	// axis 1: direct and shoulder-flipped base rotations
	tmp1 := math.Atan2(c.Y, c.X)
	tmp2 := math.Atan2(p.B, nx1+p.A1)
	theta1I := tmp1 - tmp2
	theta1II := tmp1 + tmp2 - math.Pi

	// axes 2 and 3: law of cosines in the triangle formed by the upper arm c2,
	// the elbow-to-wrist length k and the shoulder-to-wrist distance
	tmp3 := c.Z - p.C1
	s1sq := nx1*nx1 + tmp3*tmp3
	s2sq := utils.Square(nx1+2*p.A1) + tmp3*tmp3
	ksq := p.A2*p.A2 + p.C3*p.C3
	c2sq := p.C2 * p.C2
	k := math.Sqrt(ksq)
	psi := math.Atan2(p.A2, p.C3)

	alpha1, okAlpha1 := acosBranch(s1sq+c2sq-ksq, 2*math.Sqrt(s1sq)*p.C2)
	gamma1, okGamma1 := acosBranch(s1sq-c2sq-ksq, 2*p.C2*k)
	if okAlpha1 && okGamma1 {
		beta := math.Atan2(nx1, tmp3)
		cands[0] = candidate{q: [6]float64{theta1I, beta - alpha1, gamma1 - psi}, feasible: true}
		cands[1] = candidate{q: [6]float64{theta1I, beta + alpha1, -gamma1 - psi}, feasible: true}
	}

	alpha2, okAlpha2 := acosBranch(s2sq+c2sq-ksq, 2*math.Sqrt(s2sq)*p.C2)
	gamma2, okGamma2 := acosBranch(s2sq-c2sq-ksq, 2*p.C2*k)
	if okAlpha2 && okGamma2 {
		beta := math.Atan2(nx1+2*p.A1, tmp3)
		cands[2] = candidate{q: [6]float64{theta1II, -beta - alpha2, gamma2 - psi}, feasible: true}
		cands[3] = candidate{q: [6]float64{theta1II, -beta + alpha2, -gamma2 - psi}, feasible: true}
	}

	// axes 4 through 6: z-y-z decomposition of the residual rotation left after
	// undoing the base and lift rotations of each feasible branch
	for i := 0; i < 4; i++ {
		if !cands[i].feasible {
			continue
		}
		sin1, cos1 := math.Sincos(cands[i].q[0])
		sin23, cos23 := math.Sincos(cands[i].q[1] + cands[i].q[2])

		m := rm.At(0, 2)*sin23*cos1 + rm.At(1, 2)*sin23*sin1 + rm.At(2, 2)*cos23
		sin5 := math.Sqrt(math.Max(0, 1-m*m))
		theta5 := math.Atan2(sin5, m)

		if sin5 < singularityEps {
			// wrist singularity: axes 4 and 6 are collinear and only their sum
			// (or difference, for the inverted wrist) is determined. Pin axis 4
			// to the reference and let axis 6 absorb the remaining rotation,
			// giving one meaningful solution instead of two identical ones.
			theta4 := 0.0
			if rawRef != nil {
				theta4 = rawRef[3]
			}
			rc10 := cos1*rm.At(1, 0) - sin1*rm.At(0, 0)
			rc00 := cos23*(cos1*rm.At(0, 0)+sin1*rm.At(1, 0)) - sin23*rm.At(2, 0)
			var theta6 float64
			if m > 0 {
				theta6 = math.Atan2(rc10, rc00) - theta4
			} else {
				theta6 = theta4 - math.Atan2(-rc10, -rc00)
			}
			cands[i].q[3] = theta4
			cands[i].q[4] = theta5
			cands[i].q[5] = theta6
			continue
		}

		theta4 := math.Atan2(
			rm.At(1, 2)*cos1-rm.At(0, 2)*sin1,
			rm.At(0, 2)*cos23*cos1+rm.At(1, 2)*cos23*sin1-rm.At(2, 2)*sin23,
		)
		theta6 := math.Atan2(
			rm.At(0, 1)*sin23*cos1+rm.At(1, 1)*sin23*sin1+rm.At(2, 1)*cos23,
			-(rm.At(0, 0)*sin23*cos1 + rm.At(1, 0)*sin23*sin1 + rm.At(2, 0)*cos23),
		)
		cands[i].q[3] = theta4
		cands[i].q[4] = theta5
		cands[i].q[5] = theta6

		// wrist-flip companion
		cands[i+4] = candidate{
			q:        [6]float64{cands[i].q[0], cands[i].q[1], cands[i].q[2], theta4 + math.Pi, -theta5, theta6 - math.Pi},
			feasible: true,
		}
	}

	return cands
}
