package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rvtsukanov/fakedemand/demand/dataset"
	"github.com/rvtsukanov/fakedemand/demand/export"
)

var (
	// CLI flags for dataset generation
	configPath   string // YAML DatasetSpec; empty = built-in defaults
	numGroups    int    // Number of groups
	rowsPerGroup int    // Rows per group
	seed         int64  // Seed for group sampling and factor draws
	axisStart    string // First date (YYYY-MM-DD)
	axisEnd      string // Last date (YYYY-MM-DD), inclusive
	frequency    string // Sampling frequency or alias
	outPath      string // CSV destination; "-" = stdout
	headerPath   string // Optional YAML header destination
	groupInfo    bool   // Emit group_id and group_config columns
	logLevel     string // Log verbosity level
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "fakedemand",
	Short: "Synthetic demand time-series generator",
}

// generateCmd samples a grouped dataset and writes it as CSV
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a grouped synthetic demand dataset",
	Long:  "Sample groups of demand rows from a DatasetSpec (or the built-in defaults) and write them as a long CSV table. Flags override values from --config.",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel()

		spec, err := resolveSpec(cmd.Flags().Changed)
		if err != nil {
			logrus.Fatalf("Failed to load dataset spec: %v", err)
		}

		rs, err := dataset.NewRowSet(spec)
		if err != nil {
			logrus.Fatalf("Invalid dataset spec: %v", err)
		}
		if err := rs.GenerateGroups(); err != nil {
			logrus.Fatalf("Generation failed: %v", err)
		}
		stats := rs.Statistics()
		logrus.Infof("Generated %d rows in %d groups over %d samples (seed %d)",
			stats.TotalRows, stats.NumGroups, rs.Axis().NumPoints(), rs.Seed())

		if outPath == "" || outPath == "-" {
			if headerPath != "" {
				if err := export.WriteHeader(headerPath, rs); err != nil {
					logrus.Fatalf("%v", err)
				}
			}
			if err := export.WriteRowSet(os.Stdout, rs, groupInfo); err != nil {
				logrus.Fatalf("Writing dataset failed: %v", err)
			}
			return
		}
		if err := export.ExportDataset(rs, headerPath, outPath, groupInfo); err != nil {
			logrus.Fatalf("Writing dataset failed: %v", err)
		}
		logrus.Infof("Dataset saved to %s", outPath)
	},
}

// resolveSpec loads --config (or the defaults) and applies every flag the
// user set explicitly.
func resolveSpec(changed func(name string) bool) (dataset.DatasetSpec, error) {
	spec := dataset.DefaultDatasetSpec()
	if configPath != "" {
		loaded, err := dataset.LoadDatasetSpec(configPath)
		if err != nil {
			return dataset.DatasetSpec{}, err
		}
		spec = *loaded
	}
	if changed("groups") {
		spec.NumGroups = numGroups
	}
	if changed("rows-per-group") {
		spec.RowsPerGroup = rowsPerGroup
	}
	if changed("seed") {
		s := seed
		spec.Seed = &s
	}
	if changed("start") {
		spec.Axis.Start = axisStart
	}
	if changed("end") {
		spec.Axis.End = axisEnd
	}
	if changed("freq") {
		spec.Axis.Frequency = frequency
	}
	return spec, nil
}

func setLogLevel() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	def := dataset.DefaultAxisSpec()

	generateCmd.Flags().StringVar(&configPath, "config", "", "Path to a YAML dataset spec")
	generateCmd.Flags().IntVar(&numGroups, "groups", dataset.DefaultNumGroups, "Number of groups")
	generateCmd.Flags().IntVar(&rowsPerGroup, "rows-per-group", dataset.DefaultRowsPerGroup, "Rows per group")
	generateCmd.Flags().Int64Var(&seed, "seed", 0, "Seed for group sampling and factor draws (unset: config seed, else the clock)")
	generateCmd.Flags().StringVar(&axisStart, "start", def.Start, "First date of the axis (YYYY-MM-DD)")
	generateCmd.Flags().StringVar(&axisEnd, "end", def.End, "Last date of the axis (YYYY-MM-DD, inclusive)")
	generateCmd.Flags().StringVar(&frequency, "freq", def.Frequency, "Sampling frequency (daily, weekly, monthly, quarterly or D, W, M, Q)")
	generateCmd.Flags().StringVar(&outPath, "out", "-", "CSV output path (- for stdout)")
	generateCmd.Flags().StringVar(&headerPath, "header", "", "Optional YAML header output path")
	generateCmd.Flags().BoolVar(&groupInfo, "group-info", true, "Include group_id and group_config columns")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")

	rootCmd.AddCommand(generateCmd)
}
