package opw

import (
	"math"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/j-polden/moveit-opw-kinematics-plugin/spatialmath"
	"github.com/j-polden/moveit-opw-kinematics-plugin/utils"
)

// Limit represents the inclusive bounds of motion for one joint, in radians.
type Limit struct {
	Min float64
	Max float64
}

// Solver computes forward and inverse kinematics for one OPW manipulator.
// It holds no mutable state; a single Solver may serve any number of
// concurrent queries.
type Solver struct {
	params     *Parameters
	jointNames []string
	limits     []Limit
}

// NewSolver returns a Solver for the given geometry. Exactly six joint names
// and six limits are required; all validation faults are reported together.
func NewSolver(params *Parameters, jointNames []string, limits []Limit, logger golog.Logger) (*Solver, error) {
	var errAll error
	if params == nil {
		return nil, errors.New("cannot create solver with nil parameters")
	}
	for i, sign := range params.SignCorrections {
		if sign != 1 && sign != -1 {
			multierr.AppendInto(&errAll, errors.Errorf("sign correction for joint %d must be 1 or -1, got %d", i, sign))
		}
	}
	if len(jointNames) != 6 {
		multierr.AppendInto(&errAll, errors.Wrap(NewIncorrectDoFError(len(jointNames), 6), "joint names"))
	}
	if len(limits) != 6 {
		multierr.AppendInto(&errAll, errors.Wrap(NewIncorrectDoFError(len(limits), 6), "joint limits"))
	}
	for i, limit := range limits {
		if limit.Min > limit.Max {
			multierr.AppendInto(&errAll, errors.Errorf("limit for joint %d has min %f greater than max %f", i, limit.Min, limit.Max))
		}
	}
	if errAll != nil {
		return nil, errAll
	}

	s := &Solver{
		params:     params,
		jointNames: append([]string{}, jointNames...),
		limits:     append([]Limit{}, limits...),
	}
	logger.Debugw("initialized opw kinematics solver", "joints", s.jointNames)
	return s, nil
}

// JointNames returns the ordered joint names solutions are indexed by.
func (s *Solver) JointNames() []string {
	return append([]string{}, s.jointNames...)
}

// DoF returns the per-joint motion limits.
func (s *Solver) DoF() []Limit {
	return append([]Limit{}, s.limits...)
}

// Forward computes the pose of the flange relative to the base frame for the
// given six joint angles in radians. It is defined for all real inputs and
// only errors on a malformed joint vector.
func (s *Solver) Forward(joints []float64) (spatialmath.Pose, error) {
	q, err := toJointArray(joints)
	if err != nil {
		return nil, err
	}
	pos, rm := forwardPosition(s.params, s.params.corrected(q))
	return spatialmath.NewPose(pos, rm), nil
}

// Solve returns every joint configuration within the joint limits that places
// the flange at the target pose, in branch enumeration order. An unreachable
// pose yields an empty set and no error. The reference, when given, is only
// used to pin axis 4 at wrist singularities; pass nil when no reference is
// available.
func (s *Solver) Solve(target spatialmath.Pose, reference []float64) ([][]float64, error) {
	if target == nil {
		return nil, errors.New("cannot solve for nil target pose")
	}
	var rawRef *[6]float64
	if reference != nil {
		ref, err := toJointArray(reference)
		if err != nil {
			return nil, err
		}
		raw := s.params.corrected(ref)
		rawRef = &raw
	}

	solutions := make([][]float64, 0, numCandidates)
	for _, cand := range inversePosition(s.params, target, rawRef) {
		if !cand.feasible {
			continue
		}
		sol := s.params.uncorrected(cand.q)
		if !s.withinLimits(sol) {
			continue
		}
		solutions = append(solutions, sol[:])
	}
	return solutions, nil
}

// ClosestTo solves for the target pose and returns the single solution with the
// smallest summed per-joint angular distance to the reference configuration.
// Ties go to the lowest branch index. Returns ErrNoSolutions when the pose is
// unreachable or every branch is outside the joint limits.
func (s *Solver) ClosestTo(target spatialmath.Pose, reference []float64) ([]float64, error) {
	if len(reference) != 6 {
		return nil, NewIncorrectDoFError(len(reference), 6)
	}
	solutions, err := s.Solve(target, reference)
	if err != nil {
		return nil, err
	}
	if len(solutions) == 0 {
		return nil, ErrNoSolutions
	}

	best := solutions[0]
	bestScore := jointDist(solutions[0], reference)
	for _, sol := range solutions[1:] {
		if score := jointDist(sol, reference); score < bestScore {
			best = sol
			bestScore = score
		}
	}
	return best, nil
}

func (s *Solver) withinLimits(q [6]float64) bool {
	for i, limit := range s.limits {
		if q[i] < limit.Min || q[i] > limit.Max {
			return false
		}
	}
	return true
}

// jointDist sums the per-joint angular distance between two configurations.
func jointDist(a, b []float64) float64 {
	dist := 0.
	for i := range a {
		dist += math.Abs(utils.WrapRad(a[i] - b[i]))
	}
	return dist
}

func toJointArray(joints []float64) ([6]float64, error) {
	var q [6]float64
	if len(joints) != 6 {
		return q, NewIncorrectDoFError(len(joints), 6)
	}
	copy(q[:], joints)
	return q, nil
}
