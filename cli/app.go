// Package cli implements the ur3kin command line tool, a small control-panel
// style front end over the kinematics core: it converts user units at the
// boundary, calls forward or inverse kinematics, and renders the results.
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/Tiennd11/ur3-robot-ik/kinematics"
	"github.com/Tiennd11/ur3-robot-ik/referenceframe"
	"github.com/Tiennd11/ur3-robot-ik/spatialmath"
	"github.com/Tiennd11/ur3-robot-ik/utils"
)

const (
	jointsFlag  = "joints"
	degreesFlag = "degrees"
	urdfFlag    = "urdf"
	targetFlag  = "target"
	seedsFlag   = "seeds"
	timeoutFlag = "timeout"
	debugFlag   = "debug"
)

// NewApp returns the ur3kin CLI application writing its tables to out.
func NewApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:  "ur3kin",
		Usage: "forward and inverse kinematics for a UR3 arm",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  debugFlag,
				Usage: "enable debug logging",
			},
			&cli.StringFlag{
				Name:  urdfFlag,
				Usage: "load arm geometry from a URDF file instead of the built-in UR3 chain",
			},
			&cli.BoolFlag{
				Name:  degreesFlag,
				Usage: "interpret joint angles and roll-pitch-yaw values as degrees",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "fk",
				Usage: "compute the pose of every link for a set of joint angles",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     jointsFlag,
						Usage:    "six comma separated joint angles, e.g. 0,-1.57,1.57,0,0,0",
						Required: true,
					},
				},
				Action: func(c *cli.Context) error {
					return runFK(c, out)
				},
			},
			{
				Name:  "ik",
				Usage: "enumerate joint configurations reaching a target end effector pose",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  jointsFlag,
						Usage: "derive the target pose from these six joint angles via forward kinematics",
					},
					&cli.StringFlag{
						Name:  targetFlag,
						Usage: "target pose as x,y,z,roll,pitch,yaw (meters and radians)",
					},
					&cli.IntFlag{
						Name:  seedsFlag,
						Usage: "number of random seed configurations on top of the structured ones",
						Value: kinematics.DefaultSolverOptions().RandomSeeds,
					},
					&cli.DurationFlag{
						Name:  timeoutFlag,
						Usage: "overall time budget for the solve",
						Value: 30 * time.Second,
					},
				},
				Action: func(c *cli.Context) error {
					return runIK(c, out)
				},
			},
		},
	}
}

func newLogger(debug bool) golog.Logger {
	cfg := zap.NewDevelopmentConfig()
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return golog.NewDevelopmentLogger("ur3kin")
	}
	return logger.Sugar()
}

func loadModel(c *cli.Context) (*referenceframe.Model, error) {
	if path := c.String(urdfFlag); path != "" {
		return referenceframe.ParseURDFFile(path, "")
	}
	return referenceframe.UR3Model(), nil
}

// parseJoints converts a comma separated six-angle string into inputs,
// converting degrees to radians here so the core only ever sees radians.
func parseJoints(s string, degrees bool) ([]referenceframe.Input, error) {
	values, err := utils.SpaceDelimitedStringToFloatSlice(strings.ReplaceAll(s, ",", " "))
	if err != nil {
		return nil, err
	}
	if len(values) != referenceframe.NumJoints {
		return nil, errors.Errorf("expected %d comma separated joint angles, got %d", referenceframe.NumJoints, len(values))
	}
	if degrees {
		for i, v := range values {
			values[i] = utils.DegToRad(v)
		}
	}
	return referenceframe.FloatsToInputs(values), nil
}

// parseTarget converts an x,y,z,roll,pitch,yaw string into a pose.
func parseTarget(s string, degrees bool) (*spatialmath.Pose, error) {
	values, err := utils.SpaceDelimitedStringToFloatSlice(strings.ReplaceAll(s, ",", " "))
	if err != nil {
		return nil, err
	}
	if len(values) != 6 {
		return nil, errors.Errorf("expected x,y,z,roll,pitch,yaw, got %d values", len(values))
	}
	rpy := values[3:]
	if degrees {
		for i, v := range rpy {
			rpy[i] = utils.DegToRad(v)
		}
	}
	ea := &spatialmath.EulerAngles{Roll: rpy[0], Pitch: rpy[1], Yaw: rpy[2]}
	return spatialmath.NewPose(
		r3.Vector{X: values[0], Y: values[1], Z: values[2]},
		ea.RotationMatrix(),
	), nil
}

func runFK(c *cli.Context, out io.Writer) error {
	model, err := loadModel(c)
	if err != nil {
		return err
	}
	inputs, err := parseJoints(c.String(jointsFlag), c.Bool(degreesFlag))
	if err != nil {
		return err
	}
	poses, err := model.LinkPoses(inputs)
	if err != nil {
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.AppendHeader(table.Row{"Link", "X (m)", "Y (m)", "Z (m)", "Axis Angle (rad)"})
	for _, lp := range poses {
		pt := lp.Pose.Point()
		aa := lp.Pose.Orientation().R3AxisAngle(1e-9)
		t.AppendRow(table.Row{
			lp.Name,
			fmt.Sprintf("%.5f", pt.X),
			fmt.Sprintf("%.5f", pt.Y),
			fmt.Sprintf("%.5f", pt.Z),
			fmt.Sprintf("[%.4f %.4f %.4f]", aa.X, aa.Y, aa.Z),
		})
	}
	t.Render()
	return nil
}

func runIK(c *cli.Context, out io.Writer) error {
	logger := newLogger(c.Bool(debugFlag))
	model, err := loadModel(c)
	if err != nil {
		return err
	}

	var goal *spatialmath.Pose
	switch {
	case c.String(jointsFlag) != "":
		inputs, err := parseJoints(c.String(jointsFlag), c.Bool(degreesFlag))
		if err != nil {
			return err
		}
		if goal, err = model.Transform(inputs); err != nil {
			return err
		}
	case c.String(targetFlag) != "":
		if goal, err = parseTarget(c.String(targetFlag), c.Bool(degreesFlag)); err != nil {
			return err
		}
	default:
		return errors.Errorf("one of --%s or --%s is required", jointsFlag, targetFlag)
	}

	opts := kinematics.DefaultSolverOptions()
	opts.RandomSeeds = c.Int(seedsFlag)
	solver, err := kinematics.NewSolver(model, logger, opts)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Context, c.Duration(timeoutFlag))
	defer cancel()
	solutions, err := solver.Solve(ctx, goal)
	if err != nil {
		return errors.Wrap(err, "solve did not finish")
	}
	if len(solutions) == 0 {
		fmt.Fprintln(out, "no solutions found; the target pose may be unreachable")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(out)
	header := table.Row{"#"}
	for i := 1; i <= referenceframe.NumJoints; i++ {
		header = append(header, fmt.Sprintf("q%d (deg)", i))
	}
	header = append(header, "Pos Err (m)", "Rot Err", "In Limits")
	t.AppendHeader(header)
	for i, sol := range solutions {
		row := table.Row{i + 1}
		for _, in := range sol.Configuration {
			row = append(row, fmt.Sprintf("%.1f", utils.RadToDeg(in.Value)))
		}
		row = append(row,
			fmt.Sprintf("%.2e", sol.PositionError),
			fmt.Sprintf("%.2e", sol.RotationError),
			model.AreInputsValid(sol.Configuration),
		)
		t.AppendRow(row)
	}
	t.Render()
	return nil
}
