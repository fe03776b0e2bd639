// Package main contains a command to run forward and inverse kinematics
// queries against an OPW robot description.
package main

import (
	"context"
	"os"
	"strconv"
	"strings"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.viam.com/utils"

	"github.com/j-polden/moveit-opw-kinematics-plugin/opw"
	"github.com/j-polden/moveit-opw-kinematics-plugin/spatialmath"
	mathutils "github.com/j-polden/moveit-opw-kinematics-plugin/utils"
)

var logger = golog.NewDevelopmentLogger("opwsolve")

func main() {
	utils.ContextualMain(mainWithArgs, logger)
}

// Arguments for the command.
type Arguments struct {
	Robot   string `flag:"robot,usage=path to a robot description JSON; defaults to the built-in KUKA KR6 R700 sixx"`
	FK      string `flag:"fk,usage=six comma-separated joint angles to solve forward"`
	IK      string `flag:"ik,usage=target as six comma-separated values: x,y,z in meters then an axis-angle ax,ay,az whose norm is the rotation in radians"`
	Seed    string `flag:"seed,usage=six comma-separated joint angles used as the reference configuration for -ik"`
	Degrees bool   `flag:"degrees,usage=interpret and report joint angles in degrees instead of radians"`
}

func mainWithArgs(ctx context.Context, args []string, logger golog.Logger) error {
	var argsParsed Arguments
	if err := utils.ParseFlags(args, &argsParsed); err != nil {
		return err
	}

	solver, err := makeSolver(argsParsed.Robot, logger)
	if err != nil {
		return err
	}

	switch {
	case argsParsed.FK != "":
		return solveForward(solver, argsParsed.FK, argsParsed.Degrees)
	case argsParsed.IK != "":
		return solveInverse(solver, argsParsed.IK, argsParsed.Seed, argsParsed.Degrees)
	default:
		return errors.New("expected one of -fk or -ik")
	}
}

func makeSolver(robotPath string, logger golog.Logger) (*opw.Solver, error) {
	if robotPath == "" {
		return opw.MakeKR6R700Solver(logger)
	}
	data, err := os.ReadFile(robotPath)
	if err != nil {
		return nil, err
	}
	cfg, err := opw.ParseConfig(data)
	if err != nil {
		return nil, err
	}
	logger.Infow("loaded robot description", "name", cfg.Name)
	return opw.NewSolverFromConfig(cfg, logger)
}

func solveForward(solver *opw.Solver, arg string, degrees bool) error {
	joints, err := parseFloats(arg, 6)
	if err != nil {
		return errors.Wrap(err, "-fk")
	}
	if degrees {
		for i, v := range joints {
			joints[i] = mathutils.DegToRad(v)
		}
	}
	pose, err := solver.Forward(joints)
	if err != nil {
		return err
	}
	pt := pose.Point()
	aa := pose.Orientation().AxisAngles()
	logger.Infow("flange pose",
		"x", pt.X, "y", pt.Y, "z", pt.Z,
		"theta", aa.Theta, "rx", aa.RX, "ry", aa.RY, "rz", aa.RZ,
	)
	return nil
}

func solveInverse(solver *opw.Solver, targetArg, seedArg string, degrees bool) error {
	vals, err := parseFloats(targetArg, 6)
	if err != nil {
		return errors.Wrap(err, "-ik")
	}
	rot := r3.Vector{X: vals[3], Y: vals[4], Z: vals[5]}
	aa := spatialmath.NewR4AA()
	if norm := rot.Norm(); !mathutils.Float64AlmostEqual(norm, 0, 1e-9) {
		aa = &spatialmath.R4AA{Theta: norm, RX: rot.X / norm, RY: rot.Y / norm, RZ: rot.Z / norm}
	}
	target := spatialmath.NewPose(r3.Vector{X: vals[0], Y: vals[1], Z: vals[2]}, aa)

	if seedArg != "" {
		seed, err := parseFloats(seedArg, 6)
		if err != nil {
			return errors.Wrap(err, "-seed")
		}
		if degrees {
			for i, v := range seed {
				seed[i] = mathutils.DegToRad(v)
			}
		}
		solution, err := solver.ClosestTo(target, seed)
		if err != nil {
			return err
		}
		logSolution(solver, "closest solution", solution, degrees)
		return nil
	}

	solutions, err := solver.Solve(target, nil)
	if err != nil {
		return err
	}
	if len(solutions) == 0 {
		logger.Infow("target pose is unreachable")
		return nil
	}
	for i, solution := range solutions {
		logSolution(solver, "solution "+strconv.Itoa(i), solution, degrees)
	}
	return nil
}

func logSolution(solver *opw.Solver, label string, solution []float64, degrees bool) {
	keysAndValues := make([]interface{}, 0, 12)
	for i, name := range solver.JointNames() {
		v := solution[i]
		if degrees {
			v = mathutils.RadToDeg(v)
		}
		keysAndValues = append(keysAndValues, name, v)
	}
	logger.Infow(label, keysAndValues...)
}

func parseFloats(arg string, expected int) ([]float64, error) {
	parts := strings.Split(arg, ",")
	if len(parts) != expected {
		return nil, errors.Errorf("expected %d comma-separated values, got %d", expected, len(parts))
	}
	vals := make([]float64, 0, expected)
	for _, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, err
		}
		vals = append(vals, v)
	}
	return vals, nil
}
