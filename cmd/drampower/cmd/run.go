package cmd

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/sarchlab/drampower/analysis"
	"github.com/sarchlab/drampower/datarecording"
	"github.com/sarchlab/drampower/energy"
	"github.com/sarchlab/drampower/memspec"
	"github.com/sarchlab/drampower/monitoring"
	"github.com/sarchlab/drampower/report"
	"github.com/sarchlab/drampower/trace"
	"github.com/spf13/cobra"
)

// defaultWindow is the number of trace commands evaluated at a time.
const defaultWindow = 1000000

type runOptions struct {
	memspecPath string
	preset      string
	tracePath   string
	window      int
	record      string
	recordDB    string
	monitor     bool
	port        int
	openBrowser bool
	quiet       bool
	warnings    bool
}

var runOpts runOptions

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Evaluate a command trace.",
	Long: "`run --trace t.csv --memspec device.json` evaluates the trace and " +
		"prints the counters and the energy of every rank.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := applyEnv(cmd); err != nil {
			return err
		}

		return runAnalysis(runOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	f := runCmd.Flags()
	f.StringVar(&runOpts.memspecPath, "memspec", "",
		"JSON memory specification file")
	f.StringVar(&runOpts.preset, "preset", "DDR3",
		"built-in device used when no memspec file is given")
	f.StringVar(&runOpts.tracePath, "trace", "", "command trace file")
	f.IntVar(&runOpts.window, "window", defaultWindow,
		"number of commands evaluated at a time")
	f.StringVar(&runOpts.record, "record", "",
		"record every window into this database file")
	f.StringVar(&runOpts.recordDB, "record-db", "sqlite",
		"database used by --record, sqlite or bolt")
	f.BoolVar(&runOpts.monitor, "monitor", false,
		"serve the progress and the latest window over HTTP")
	f.IntVar(&runOpts.port, "port", 0, "port of the monitoring server")
	f.BoolVar(&runOpts.openBrowser, "open-browser", false,
		"open the monitoring page in a browser")
	f.BoolVar(&runOpts.quiet, "quiet", false, "do not log warnings")
	f.BoolVar(&runOpts.warnings, "warnings", false,
		"list all the warnings after the report")

	_ = runCmd.MarkFlagRequired("trace")
}

func runAnalysis(opts runOptions, stdout, stderr io.Writer) (err error) {
	if opts.window <= 0 {
		return fmt.Errorf("window must be positive, got %d", opts.window)
	}

	spec, err := loadSpec(opts)
	if err != nil {
		return err
	}

	f, err := os.Open(opts.tracePath)
	if err != nil {
		return err
	}
	defer f.Close()

	calc := energy.NewCalculator(spec)
	builder := analysis.MakeBuilder().WithSpec(spec)

	if !opts.quiet {
		builder = builder.WithHook(
			analysis.NewWarningLogger(log.New(stderr, "", 0)))
	}

	if opts.record != "" {
		recorder, openErr := openRecorder(opts)
		if openErr != nil {
			return openErr
		}

		defer func() {
			err = errors.Join(err, recorder.Close())
		}()

		builder = builder.WithHook(
			datarecording.NewWindowRecorder(recorder).WithEnergy(calc))
	}

	var bar *monitoring.ProgressBar

	if opts.monitor {
		monitor := monitoring.NewMonitor().WithPortNumber(opts.port)
		builder = builder.WithHook(monitor)

		url := monitor.StartServer()
		if opts.openBrowser {
			if err := monitor.OpenInBrowser(url); err != nil {
				fmt.Fprintf(stderr, "cannot open browser: %v\n", err)
			}
		}

		var size uint64
		if info, err := f.Stat(); err == nil {
			size = uint64(info.Size())
		}

		bar = monitor.CreateProgressBar(opts.tracePath, size)
		defer monitor.CompleteProgressBar(bar)
	}

	engine := builder.Build("drampower")

	if err := evaluate(engine, trace.NewReader(f), opts.window, bar); err != nil {
		return err
	}

	totals := engine.RunningTotals()

	if err := report.Write(stdout, totals, calc.Snapshot(totals)); err != nil {
		return err
	}

	if opts.warnings {
		return report.WriteWarnings(stdout, totals.Warnings)
	}

	return nil
}

// evaluate feeds the trace to the engine one batch at a time. Every batch
// holds all the commands of its last cycle and ends at that cycle.
func evaluate(
	engine *analysis.Engine,
	r *trace.Reader,
	window int,
	bar *monitoring.ProgressBar,
) error {
	var windowEnd int64

	for {
		cmds, final, err := r.NextBatch(window)
		if err != nil {
			return err
		}

		if len(cmds) > 0 {
			windowEnd = max(windowEnd, cmds[len(cmds)-1].Time)
		}

		if _, err := engine.EvaluateWindow(cmds, windowEnd, final); err != nil {
			return err
		}

		if bar != nil {
			bar.SetFinished(uint64(r.InputOffset()))
		}

		if final {
			return nil
		}
	}
}

func loadSpec(opts runOptions) (*memspec.Spec, error) {
	if opts.memspecPath != "" {
		return memspec.Load(opts.memspecPath)
	}

	p, err := memspec.ParseProtocol(opts.preset)
	if err != nil {
		return nil, err
	}

	preset := memspec.Preset(p)

	return memspec.MakeBuilder().WithSpec(preset).Build(preset.Name), nil
}

func openRecorder(opts runOptions) (datarecording.DataRecorder, error) {
	switch opts.recordDB {
	case "sqlite":
		filename := opts.record + ".sqlite3"
		if _, err := os.Stat(filename); err == nil {
			return nil, fmt.Errorf("file %s already exists", filename)
		}

		return datarecording.New(opts.record), nil
	case "bolt":
		return datarecording.NewBolt(opts.record + ".bolt")
	default:
		return nil, fmt.Errorf("unknown recording database %q", opts.recordDB)
	}
}
