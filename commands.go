package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/cockroachdb/errors"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"joinframe/pkg/csvio"
	"joinframe/pkg/execution/join"
	"joinframe/pkg/logging"
	"joinframe/pkg/plan"
	"joinframe/pkg/table"
	"joinframe/pkg/ui"
)

// cliConfig holds the flag values of one invocation.
type cliConfig struct {
	logLevel    string
	logFormat   string
	logFile     string
	maxRows     int
	quiet       bool
	interactive bool

	left            string
	right           string
	on              []string
	rightOn         []string
	joinType        string
	allowDuplicates bool
	keepKeys        bool
	output          string
}

var titleStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#7C3AED")).
	Bold(true)

func newRootCommand() *cobra.Command {
	cfg := &cliConfig{}

	root := &cobra.Command{
		Use:           "joinframe",
		Short:         "join CSV tables with a sort-merge join",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initLogging(cfg)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&cfg.logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	flags.StringVar(&cfg.logFormat, "log-format", "text", "log format: text or json")
	flags.StringVar(&cfg.logFile, "log-file", "", "write logs to this file instead of stderr")
	flags.IntVar(&cfg.maxRows, "max-rows", 0, "print at most this many rows (0 prints all)")
	flags.BoolVarP(&cfg.quiet, "quiet", "q", false, "do not print the title line")
	flags.BoolVarP(&cfg.interactive, "interactive", "i", false, "browse the result in a full-screen view instead of printing it")

	root.AddCommand(newJoinCommand(cfg), newRunCommand(cfg))
	return root
}

func newJoinCommand(cfg *cliConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "join --left <csv> --right <csv> --on <cols>",
		Short: "join two CSV files",
		Long: `
Joins two CSV files whose header cells are "name" or "name:KIND" and prints
the result, or writes it as CSV with --output.

  joinframe join --left orders.csv --right customers.csv --on customer_id --right-on id --type left
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJoin(cmd.InOrStdin(), cmd.OutOrStdout(), cfg)
		},
	}

	f := cmd.Flags()
	f.StringVar(&cfg.left, "left", "", "left CSV file")
	f.StringVar(&cfg.right, "right", "", "right CSV file")
	f.StringSliceVar(&cfg.on, "on", nil, "join columns of the left table")
	f.StringSliceVar(&cfg.rightOn, "right-on", nil, "join columns of the right table (default: same as --on)")
	f.StringVar(&cfg.joinType, "type", "inner", "join type: inner, left, right or full")
	f.BoolVar(&cfg.allowDuplicates, "allow-duplicates", false, "prefix duplicate right-hand column names with a table alias")
	f.BoolVar(&cfg.keepKeys, "keep-keys", false, "keep the join columns of both tables")
	f.StringVarP(&cfg.output, "output", "o", "", "write the result to this CSV file")
	_ = cmd.MarkFlagRequired("left")
	_ = cmd.MarkFlagRequired("right")
	_ = cmd.MarkFlagRequired("on")
	return cmd
}

func newRunCommand(cfg *cliConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "run <plan.yaml>",
		Short: "run a YAML join plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := plan.Load(args[0])
			if err != nil {
				return err
			}
			result, err := p.Run(cmd.Context())
			if err != nil {
				return err
			}
			return emit(cmd.InOrStdin(), cmd.OutOrStdout(), cfg, result, p.OutputPath())
		},
	}
}

func initLogging(cfg *cliConfig) error {
	level, err := logging.ParseLevel(cfg.logLevel)
	if err != nil {
		return err
	}
	format := strings.ToLower(cfg.logFormat)
	if format != "text" && format != "json" {
		return errors.Newf("unknown log format %q", cfg.logFormat)
	}
	// A previous invocation in the same process may still hold the logger.
	if err := logging.Close(); err != nil {
		return err
	}
	return logging.Init(logging.Config{Level: level, Format: format, OutputPath: cfg.logFile})
}

func runJoin(in io.Reader, out io.Writer, cfg *cliConfig) error {
	kind, err := join.ParseJoinType(cfg.joinType)
	if err != nil {
		return err
	}
	left, err := csvio.ReadFile(cfg.left)
	if err != nil {
		return err
	}
	right, err := csvio.ReadFile(cfg.right)
	if err != nil {
		return err
	}

	j, err := join.NewJoiner(left, cfg.on...)
	if err != nil {
		return err
	}
	result, err := j.Join(kind, right, join.Options{
		AllowDuplicateColumnNames: cfg.allowDuplicates,
		KeepAllJoinKeyColumns:     cfg.keepKeys,
	}, cfg.rightOn...)
	if err != nil {
		return err
	}
	return emit(in, out, cfg, result, cfg.output)
}

// emit writes result to outputPath as CSV, or shows it when no path is set.
func emit(in io.Reader, out io.Writer, cfg *cliConfig, result *table.Table, outputPath string) error {
	summary := fmt.Sprintf("%s rows x %s columns",
		humanize.Comma(int64(result.RowCount())), humanize.Comma(int64(result.ColumnCount())))

	if outputPath != "" {
		if err := csvio.WriteFile(outputPath, result); err != nil {
			return err
		}
		logging.Info("result written", "path", outputPath, "rows", result.RowCount())
		fmt.Fprintf(out, "wrote %s to %s\n", summary, outputPath)
		return nil
	}

	if cfg.interactive {
		return ui.Browse(in, out, result, summary)
	}
	if !cfg.quiet {
		fmt.Fprintln(out, titleStyle.Render(result.Name()))
	}
	result.Print(out, cfg.maxRows)
	fmt.Fprintln(out, summary)
	return nil
}
