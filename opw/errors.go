package opw

import (
	"github.com/pkg/errors"
)

// ErrNoSolutions is returned by ClosestTo when no configuration within the
// joint limits reaches the target pose. An unreachable pose is an expected
// outcome of inverse kinematics, not a fault; callers that can proceed with
// zero solutions should use Solve, which reports it as an empty set instead.
var ErrNoSolutions = errors.New("no solutions within joint limits reach the target pose")

// NewIncorrectDoFError returns an error describing a joint vector whose length
// does not match the solver's degrees of freedom.
func NewIncorrectDoFError(actual, expected int) error {
	return errors.Errorf("number of joints does not match solver DoF, expected %d but got %d", expected, actual)
}
