package cmd

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rvtsukanov/fakedemand/demand"
	"github.com/rvtsukanov/fakedemand/demand/dataset"
)

// --- fakedemand defaults ---

var defaultsCmd = &cobra.Command{
	Use:   "defaults",
	Short: "Print the built-in dataset spec as YAML",
	Long:  "Print the default DatasetSpec (group counts, axis and factor templates) to stdout. Edit the output and pass it back with generate --config.",
	Run: func(cmd *cobra.Command, args []string) {
		writeYAMLToStdout(dataset.DefaultDatasetSpec())
	},
}

// --- fakedemand validate ---

var validatePaths []string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check dataset spec files without generating",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel()
		failed := 0
		for _, path := range validatePaths {
			if err := validateSpecFile(path); err != nil {
				logrus.Errorf("%s: %v", path, err)
				failed++
				continue
			}
			fmt.Printf("%s: ok\n", path)
		}
		if failed > 0 {
			logrus.Fatalf("%d of %d specs invalid", failed, len(validatePaths))
		}
	},
}

func validateSpecFile(path string) error {
	spec, err := dataset.LoadDatasetSpec(path)
	if err != nil {
		return err
	}
	full := spec.WithDefaults()
	return full.Validate()
}

// --- fakedemand peaks ---

var (
	peakNames     []string
	peakAmplitude float64
)

var peaksCmd = &cobra.Command{
	Use:   "peaks",
	Short: "Show offset, frequency and phase of seasonality peaks",
	Long:  "Compute the oscillation numbers a seasonality factor uses for the given peaks over an axis. Output is YAML on stdout.",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel()
		axis, err := dataset.AxisSpec{Start: axisStart, End: axisEnd, Frequency: frequency}.DateAxis()
		if err != nil {
			logrus.Fatalf("Invalid axis: %v", err)
		}
		s, err := demand.NewSeasonality(peakNames, peakAmplitude, 0)
		if err != nil {
			logrus.Fatalf("Invalid seasonality: %v", err)
		}
		info, err := s.PeakInfo(axis)
		if err != nil {
			logrus.Fatalf("Peak computation failed: %v", err)
		}
		logrus.Infof("Peaks %s over %d %s samples", strings.Join(s.Peaks, ", "), axis.NumPoints(), axis.Frequency)
		writeYAMLToStdout(info)
	},
}

func writeYAMLToStdout(v any) {
	data, err := yaml.Marshal(v)
	if err != nil {
		logrus.Fatalf("YAML marshal failed: %v", err)
	}
	fmt.Print(string(data))
}

func init() {
	validateCmd.Flags().StringArrayVar(&validatePaths, "spec", nil, "Path to a YAML dataset spec (can be repeated)")
	_ = validateCmd.MarkFlagRequired("spec")

	def := dataset.DefaultAxisSpec()
	peaksCmd.Flags().StringSliceVar(&peakNames, "peaks", []string{demand.DefaultPeak}, "Comma-separated peak names (months, weekdays, q1-q4, year_start, mid_year)")
	peaksCmd.Flags().Float64Var(&peakAmplitude, "amplitude", 0.2, "Seasonality amplitude in [0, 1]")
	peaksCmd.Flags().StringVar(&axisStart, "start", def.Start, "First date of the axis (YYYY-MM-DD)")
	peaksCmd.Flags().StringVar(&axisEnd, "end", def.End, "Last date of the axis (YYYY-MM-DD, inclusive)")
	peaksCmd.Flags().StringVar(&frequency, "freq", def.Frequency, "Sampling frequency")

	rootCmd.AddCommand(defaultsCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(peaksCmd)
}
