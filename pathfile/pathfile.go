// Package pathfile reads waypoint files and writes planner output as gnuplot-style columns.
package pathfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"go.uber.org/multierr"

	"go.viam.com/pathplanner/pathplanner"
)

// Output file names written by WriteAll.
const (
	ControlPointsFile = "control_points.txt"
	TrajectoryFile    = "trajectory_points.txt"
	EnvironmentFile   = "environment_points.txt"
	LeftPointsFile    = "left_points.txt"
	RightPointsFile   = "right_points.txt"
	VelocityFile      = "velocity.txt"
	LeftVelocityFile  = "left_velocity.txt"
	RightVelocityFile = "right_velocity.txt"
	ReconstructedFile = "reconstructed_points.txt"
)

const defaultPermissions = 0o644

// ReadPath parses whitespace separated "x y [tag]" lines. Blank lines and anything after a
// '#' are ignored. The line number is the payload of each position.
func ReadPath(r io.Reader) (pathplanner.Path[int], error) {
	var path pathplanner.Path[int]
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line, _, _ := strings.Cut(scanner.Text(), "#")
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if len(fields) > 3 {
			return nil, errors.Errorf("line %d: expected \"x y [tag]\", got %q", lineNum, strings.TrimSpace(line))
		}
		x, err := cast.ToFloat64E(fields[0])
		if err != nil {
			return nil, errors.Errorf("line %d: invalid x coordinate %q", lineNum, fields[0])
		}
		if len(fields) < 2 {
			return nil, errors.Errorf("line %d: missing y coordinate", lineNum)
		}
		y, err := cast.ToFloat64E(fields[1])
		if err != nil {
			return nil, errors.Errorf("line %d: invalid y coordinate %q", lineNum, fields[1])
		}
		pos := pathplanner.Position[int]{X: x, Y: y, Data: lineNum}
		if len(fields) == 3 {
			tag, err := cast.ToIntE(fields[2])
			if err != nil || (tag != int(pathplanner.TagFree) && tag != int(pathplanner.TagPinned)) {
				return nil, errors.Errorf("line %d: invalid tag %q, expected 0 or 1", lineNum, fields[2])
			}
			pos.Tag = pathplanner.Tag(tag)
		}
		path = append(path, pos)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading path")
	}
	return path, nil
}

// ReadPathFile opens name and parses it with ReadPath.
func ReadPathFile(name string) (pathplanner.Path[int], error) {
	//nolint:gosec
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	path, err := ReadPath(f)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %q", name)
	}
	return path, nil
}

// WritePath writes one "x\ty" line per position.
func WritePath[T any](w io.Writer, path pathplanner.Path[T]) error {
	bw := bufio.NewWriter(w)
	for _, pos := range path {
		if _, err := fmt.Fprintf(bw, "%g\t%g\n", pos.X, pos.Y); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteProfile writes one "s\tv" line per sample, where s is the arc length of the sample.
func WriteProfile(w io.Writer, profile []float64, distStep float64) error {
	bw := bufio.NewWriter(w)
	for i, v := range profile {
		if _, err := fmt.Fprintf(bw, "%g\t%g\n", float64(i)*distStep, v); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteAll writes every sequence of plan, plus the environment points, into dir. The
// directory must already exist.
func WriteAll[T any](dir string, plan *pathplanner.Plan[T], environment pathplanner.Path[T], distStep float64) (err error) {
	info, statErr := os.Stat(dir)
	if statErr != nil {
		return errors.Wrap(statErr, "output directory unavailable")
	}
	if !info.IsDir() {
		return errors.Errorf("output location %q is not a directory", dir)
	}

	write := func(name string, fn func(io.Writer) error) {
		//nolint:gosec
		f, openErr := os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, defaultPermissions)
		if openErr != nil {
			err = multierr.Append(err, openErr)
			return
		}
		err = multierr.Append(err, errors.Wrapf(fn(f), "writing %s", name))
		err = multierr.Append(err, f.Close())
	}
	paths := []struct {
		name string
		path pathplanner.Path[T]
	}{
		{ControlPointsFile, plan.ControlPoints},
		{TrajectoryFile, plan.Path},
		{EnvironmentFile, environment},
		{LeftPointsFile, plan.Left},
		{RightPointsFile, plan.Right},
		{ReconstructedFile, plan.Reconstructed},
	}
	for _, p := range paths {
		write(p.name, func(w io.Writer) error { return WritePath(w, p.path) })
	}
	profiles := []struct {
		name    string
		profile []float64
	}{
		{VelocityFile, plan.Velocity},
		{LeftVelocityFile, plan.LeftVelocity},
		{RightVelocityFile, plan.RightVelocity},
	}
	for _, p := range profiles {
		write(p.name, func(w io.Writer) error { return WriteProfile(w, p.profile, distStep) })
	}
	return err
}
