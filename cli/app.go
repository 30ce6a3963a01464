// Package cli contains the pathplanner command line application.
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"go.viam.com/pathplanner/config"
	"go.viam.com/pathplanner/logging"
	"go.viam.com/pathplanner/pathfile"
	"go.viam.com/pathplanner/pathplanner"
	"go.viam.com/pathplanner/plotting"
)

const (
	// Flags.
	flagConfig    = "config"
	flagPlot      = "plot"
	flagHistogram = "histogram"
	flagDebug     = "debug"
	flagLogFile   = "log_file"
	flagEnvir     = "envir"

	histogramBins  = 10
	histogramWidth = 40
)

// paramFlags maps each parameter flag to the parameter it overrides.
var paramFlags = []struct {
	flag  string
	param string
	usage string
}{
	{"path_alpha", "path_alpha", "path smoothing fidelity weight"},
	{"path_beta", "path_beta", "path smoothing curvature weight"},
	{"speed_alpha", "speed_alpha", "speed smoothing fidelity weight"},
	{"speed_beta", "speed_beta", "speed smoothing curvature weight"},
	{"robot_width", "robot_width", "distance between the wheels"},
	{"time_step", "time_step", "reconstruction time step in seconds"},
	{"max_speed", "max_speed", "maximum wheel speed"},
	{"max_acceleration", "max_acceleration", "maximum acceleration"},
	{"dist_step", "dist_step", "distance between resampled points"},
	{"speed_step_mult", "speed_step_mult", "speed limits are calculated at every `N`th point"},
	{"final_acc", "final_acc_time", "soft start and stop duration in seconds"},
	{"smooth_pass", "smooth_pass", "number of smoothing passes"},
}

// NewApp returns a new app with the CLI API, Writer set to out, and ErrWriter
// set to errOut.
func NewApp(out, errOut io.Writer) *cli.App {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:    flagConfig,
			Aliases: []string{"c"},
			Usage:   "load parameters from JSON `FILE`; flags override it",
		},
		&cli.StringFlag{
			Name:  flagEnvir,
			Usage: "environment points `FILE` copied to the output and drawn on the plot",
		},
		&cli.BoolFlag{
			Name:  flagPlot,
			Usage: "render trajectory and velocity PNGs into the output directory",
		},
		&cli.BoolFlag{
			Name:  flagHistogram,
			Usage: "print a histogram of the center speeds",
		},
		&cli.StringFlag{
			Name:  flagLogFile,
			Usage: "also write logs to `FILE`, rotated every 10MB",
		},
		&cli.BoolFlag{
			Name:    flagDebug,
			Aliases: []string{"vvv"},
			Usage:   "enable debug logging",
		},
	}
	defaults, _ := config.ParamsToAttributes(pathplanner.DefaultParams())
	for _, pf := range paramFlags {
		// String valued so that a malformed number is reported by name instead of by flag parsing.
		flags = append(flags, &cli.StringFlag{
			Name:        pf.flag,
			Usage:       pf.usage,
			DefaultText: fmt.Sprint(defaults[pf.param]),
		})
	}

	return &cli.App{
		Name:            "pathplanner",
		Usage:           "generate a smooth trajectory and velocity profile for a differential drive robot",
		ArgsUsage:       "<trajectory> <output_dir>",
		HideHelpCommand: true,
		Writer:          out,
		ErrWriter:       errOut,
		Flags:           flags,
		Action:          PlanAction,
		Commands: []*cli.Command{
			{
				Name:   "schema",
				Usage:  "print the JSON schema of the parameters file",
				Action: SchemaAction,
			},
		},
	}
}

// PlanAction plans a trajectory through the waypoints of the first argument and writes
// every resulting sequence into the directory named by the second.
func PlanAction(c *cli.Context) error {
	if c.NArg() != 2 {
		return errors.Errorf("expected 2 arguments <trajectory> <output_dir>, got %d", c.NArg())
	}
	trajectoryFile, outputDir := c.Args().Get(0), c.Args().Get(1)

	logger := newLogger(c)
	params, err := paramsFromContext(c)
	if err != nil {
		return err
	}
	printf(c.App.Writer, "%s", paramsTable(params))

	controls, err := pathfile.ReadPathFile(trajectoryFile)
	if err != nil {
		return errors.Wrap(err, "loading trajectory")
	}
	// The last two points fix the terminal position and approach direction.
	if len(controls) >= 2 {
		if err := controls.Pin(-2, -1); err != nil {
			return err
		}
	}

	var environment pathplanner.Path[int]
	if name := c.String(flagEnvir); name != "" {
		if environment, err = pathfile.ReadPathFile(name); err != nil {
			return errors.Wrap(err, "loading environment")
		}
	}

	planner, err := pathplanner.NewPlanner[int](params, logger.Sublogger("planner"))
	if err != nil {
		return err
	}
	if err := planner.SetControlPoints(controls); err != nil {
		return err
	}
	plan, err := planner.Compute()
	if err != nil {
		return errors.Wrap(err, "planning trajectory")
	}

	var writers errgroup.Group
	writers.Go(func() error {
		return pathfile.WriteAll(outputDir, plan, environment, params.DistStep)
	})
	if c.Bool(flagPlot) {
		writers.Go(func() error {
			return plotting.SaveAll(outputDir, plan, environment, params.DistStep)
		})
	}
	if err := writers.Wait(); err != nil {
		return err
	}

	if c.Bool(flagHistogram) {
		if err := printSpeedHistogram(c.App.Writer, plan.Velocity); err != nil {
			return err
		}
	}

	report, err := pathplanner.Deviation(plan.Path, plan.Reconstructed)
	if err != nil {
		return err
	}
	logger.Infow("reconstruction deviation", "mean", report.Mean, "p95", report.P95, "max", report.Max)
	color.New(color.FgGreen).Fprintf(c.App.Writer, "planned %d points over %.3f, output written to %s\n",
		len(plan.Path), plan.Path.Length(), outputDir)
	return logger.Sync()
}

func printSpeedHistogram(w io.Writer, speeds []float64) error {
	slowest, err := stats.Min(speeds)
	if err != nil {
		return err
	}
	fastest, err := stats.Max(speeds)
	if err != nil {
		return err
	}
	if fastest <= slowest {
		printf(w, "all %d speeds are %g", len(speeds), slowest)
		return nil
	}
	printf(w, "center speed distribution:")
	return histogram.Fprint(w, histogram.Hist(histogramBins, speeds), histogram.Linear(histogramWidth))
}

// SchemaAction prints the JSON schema of the parameters.
func SchemaAction(c *cli.Context) error {
	data, err := json.MarshalIndent(config.Schema(), "", "  ")
	if err != nil {
		return err
	}
	printf(c.App.Writer, "%s", data)
	return nil
}

func newLogger(c *cli.Context) logging.Logger {
	logger := logging.NewBlankLogger("pathplanner")
	logger.AddAppender(logging.NewWriterAppender(c.App.ErrWriter))
	if name := c.String(flagLogFile); name != "" {
		logger.AddAppender(logging.NewFileAppender(name, 10, 3))
	}
	if !c.Bool(flagDebug) {
		logger.SetLevel(logging.INFO)
	}
	return logger
}

func paramsFromContext(c *cli.Context) (pathplanner.Params, error) {
	params := pathplanner.DefaultParams()
	if name := c.String(flagConfig); name != "" {
		var err error
		if params, err = config.LoadParamsFile(name); err != nil {
			return pathplanner.Params{}, err
		}
	}
	overrides := map[string]string{}
	for _, pf := range paramFlags {
		if c.IsSet(pf.flag) {
			overrides[pf.param] = c.String(pf.flag)
		}
	}
	return config.ApplyOverrides(params, overrides)
}

func paramsTable(params pathplanner.Params) string {
	attributes, err := config.ParamsToAttributes(params)
	if err != nil {
		return err.Error()
	}
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Parameter", "Value"})
	for _, name := range config.ParamNames() {
		t.AppendRow(table.Row{name, attributes[name]})
	}
	return t.Render()
}

func printf(w io.Writer, format string, a ...interface{}) {
	// no newline in format string
	fmt.Fprintf(w, format+"\n", a...)
}
