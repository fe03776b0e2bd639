package opw

import (
	// for embedding the reference robot description.
	_ "embed"
	"encoding/json"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

//go:embed kuka_kr6r700.json
var kr6r700json []byte

// GeometryConfig mirrors the seven OPW link parameters in a robot description.
// Fields are pointers so that absent required values are detected rather than
// silently defaulted; zero lengths are legitimate for simplified geometries.
type GeometryConfig struct {
	A1 *float64 `json:"a1"`
	A2 *float64 `json:"a2"`
	B  *float64 `json:"b"`
	C1 *float64 `json:"c1"`
	C2 *float64 `json:"c2"`
	C3 *float64 `json:"c3"`
	C4 *float64 `json:"c4"`
}

// JointConfig names one joint and bounds its motion in radians.
type JointConfig struct {
	Name string  `json:"name"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
}

// RobotConfig is the JSON robot description consumed by NewSolverFromConfig.
type RobotConfig struct {
	Name            string          `json:"name"`
	Geometry        *GeometryConfig `json:"geometry"`
	Offsets         []float64       `json:"offsets,omitempty"`
	SignCorrections []int           `json:"sign_corrections,omitempty"`
	Joints          []JointConfig   `json:"joints"`
}

// Validate ensures all parts of the config are present and well formed,
// reporting every fault at once.
func (cfg *RobotConfig) Validate() error {
	var errAll error
	if cfg.Geometry == nil {
		multierr.AppendInto(&errAll, errors.New("robot description missing required geometry section"))
	} else {
		for field, v := range map[string]*float64{
			"a1": cfg.Geometry.A1, "a2": cfg.Geometry.A2, "b": cfg.Geometry.B,
			"c1": cfg.Geometry.C1, "c2": cfg.Geometry.C2, "c3": cfg.Geometry.C3, "c4": cfg.Geometry.C4,
		} {
			if v == nil {
				multierr.AppendInto(&errAll, errors.Errorf("robot description missing required geometry parameter %q", field))
			}
		}
	}
	if len(cfg.Offsets) != 0 && len(cfg.Offsets) != 6 {
		multierr.AppendInto(&errAll, errors.Errorf("expected 6 joint offsets, got %d", len(cfg.Offsets)))
	}
	if len(cfg.SignCorrections) != 0 && len(cfg.SignCorrections) != 6 {
		multierr.AppendInto(&errAll, errors.Errorf("expected 6 sign corrections, got %d", len(cfg.SignCorrections)))
	}
	for i, sign := range cfg.SignCorrections {
		if sign != 1 && sign != -1 {
			multierr.AppendInto(&errAll, errors.Errorf("sign correction for joint %d must be 1 or -1, got %d", i, sign))
		}
	}
	if len(cfg.Joints) != 6 {
		multierr.AppendInto(&errAll, errors.Errorf("expected 6 joints, got %d", len(cfg.Joints)))
	}
	for i, joint := range cfg.Joints {
		if joint.Min > joint.Max {
			multierr.AppendInto(&errAll, errors.Errorf("limit for joint %d has min %f greater than max %f", i, joint.Min, joint.Max))
		}
	}
	return errAll
}

// Parameters builds geometry Parameters from a validated config.
func (cfg *RobotConfig) Parameters() *Parameters {
	params := NewParameters()
	params.A1 = *cfg.Geometry.A1
	params.A2 = *cfg.Geometry.A2
	params.B = *cfg.Geometry.B
	params.C1 = *cfg.Geometry.C1
	params.C2 = *cfg.Geometry.C2
	params.C3 = *cfg.Geometry.C3
	params.C4 = *cfg.Geometry.C4
	copy(params.Offsets[:], cfg.Offsets)
	copy(params.SignCorrections[:], cfg.SignCorrections)
	return params
}

// ParseConfig unmarshals and validates a JSON robot description.
func ParseConfig(data []byte) (*RobotConfig, error) {
	var cfg RobotConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "cannot parse robot description")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// NewSolverFromConfig builds a Solver from a validated robot description.
func NewSolverFromConfig(cfg *RobotConfig, logger golog.Logger) (*Solver, error) {
	names := make([]string, 0, len(cfg.Joints))
	limits := make([]Limit, 0, len(cfg.Joints))
	for _, joint := range cfg.Joints {
		names = append(names, joint.Name)
		limits = append(limits, Limit{Min: joint.Min, Max: joint.Max})
	}
	return NewSolver(cfg.Parameters(), names, limits, logger)
}

// MakeKR6R700Solver returns a Solver for the embedded KUKA KR6 R700 sixx
// description, the reference robot used throughout the tests.
func MakeKR6R700Solver(logger golog.Logger) (*Solver, error) {
	cfg, err := ParseConfig(kr6r700json)
	if err != nil {
		return nil, err
	}
	return NewSolverFromConfig(cfg, logger)
}
