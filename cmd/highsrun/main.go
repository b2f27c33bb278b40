// Command highsrun solves a model file with HiGHS and writes a result file
// for the driver that requested the solve.
package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/bartolsthoorn/highsrun/highs"
	"github.com/bartolsthoorn/highsrun/soln"
)

var (
	verbose bool
	logger  *zap.Logger

	solveOpts solveFlags
)

var rootCmd = &cobra.Command{
	Use:   "highsrun",
	Short: "Solve a model with HiGHS and write a solver result file",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	SilenceUsage: true,
}

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Solve a model file and write the result file",
	Long: `Reads a model (MPS or LP), optionally a warm start, applies solver
options, runs HiGHS and writes a result file with a problem, a solver and,
when a solution exists, a solution section.

No result file is written when the run fails; the exit status is non-zero.`,
	Args: cobra.NoArgs,
	RunE: runSolve,
}

var statusesCmd = &cobra.Command{
	Use:   "statuses",
	Short: "Print how each HiGHS model status is reported",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printStatuses(cmd.OutOrStdout())
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the linked HiGHS version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		caps := highs.Capabilities()
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", caps.Solver, caps.Version)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging and solver output")

	f := solveCmd.Flags()
	f.StringVar(&solveOpts.request, "request", "", "YAML request file")
	f.StringVarP(&solveOpts.model, "model", "m", "", "Model file (MPS or LP)")
	f.StringVar(&solveOpts.warmStart, "warmstart", "", "YAML file of variable name to starting value")
	f.StringVarP(&solveOpts.out, "soln", "o", "", "Result file (default: model path with .soln extension)")
	f.Float64Var(&solveOpts.mipGap, "mipgap", 0, "Relative MIP gap")
	f.StringArrayVarP(&solveOpts.suffixes, "suffix", "s", nil, "Suffix to report: dual, slack or rc (repeatable)")
	f.StringArrayVar(&solveOpts.options, "option", nil, "Solver option as key=value (repeatable)")
	f.StringVar(&solveOpts.optionsFile, "options-file", "", "YAML mapping of solver option to value")

	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(statusesCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runSolve(cmd *cobra.Command, args []string) error {
	solveOpts.mipGapSet = cmd.Flags().Changed("mipgap")
	req, err := buildRequest(solveOpts)
	if err != nil {
		return err
	}
	out := resultPath(solveOpts.out, req.ModelFile)

	backend, err := highs.NewBackend(logger.Named("highs"))
	if err != nil {
		return err
	}
	defer backend.Close()

	if err := backend.SetOption("output_flag", verbose); err != nil {
		logger.Debug("could not set output_flag", zap.Error(err))
	}

	caps := highs.Capabilities()
	logger.Debug("solving",
		zap.String("model", req.ModelFile),
		zap.String("soln", out),
		zap.Stringer("highs_version", caps.Version))

	if err := soln.Run(req, backend, caps, out, soln.WithLogger(logger)); err != nil {
		logger.Error("solve failed", zap.String("model", req.ModelFile), zap.Error(err))
		return err
	}
	return nil
}

func printStatuses(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CODE\tNAME\tSTATUS\tCONDITION\tMESSAGE")
	for _, code := range soln.NativeStatuses() {
		o := soln.MapStatus(code)
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", int(code), code, o.Status, o.Condition, o.Message)
	}
	return tw.Flush()
}
