// SPDX-License-Identifier: EPL-2.0

package commands

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ik5/audpipe"
	"github.com/ik5/audpipe/config"
)

var (
	inputFile  string
	outputFile string
	sampleType string
	verify     bool
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert an audio file",
	Long: `Convert an audio file into another container or sample type.

Flags override the values of --config. Without --sample-type the input's
sample type is kept and samples are copied unchanged.

Sample types: s16, f32, f64.`,
	Args: cobra.NoArgs,
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringVarP(&inputFile, "input", "i", "", "input file")
	convertCmd.Flags().StringVarP(&outputFile, "output", "o", "", "output file")
	convertCmd.Flags().StringVar(&sampleType, "sample-type", "", "output sample type (s16, f32, f64)")
	convertCmd.Flags().BoolVar(&verify, "verify", false, "re-read WAV output and compare it with what was written")
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, _ := cfg.Log.SlogLevel()
	setLogLevel(level)

	st, _ := config.ParseSampleType(cfg.SampleType)
	stats, err := audpipe.ConvertFile(cmd.Context(), cfg.Input, cfg.Output, audpipe.ConvertOptions{
		SampleType: st,
		Verify:     cfg.Verify,
		Logger:     slog.Default(),
	})
	if err != nil {
		if audpipe.IsFormatError(err) {
			return fmt.Errorf("%s cannot be written as %s: %w", cfg.Input, cfg.Output, err)
		}
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s: %d samples, %d bytes in, %d bytes out, %s\n",
		cfg.Input, cfg.Output, stats.Samples, stats.BytesIn, stats.BytesOut, stats.Duration)
	return nil
}

// loadConfig reads --config when given and applies the flags the user set.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := &config.Config{}
	if cfgFile != "" {
		var err error
		if cfg, err = config.Load(cfgFile); err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("input") {
		cfg.Input = inputFile
	}
	if flags.Changed("output") {
		cfg.Output = outputFile
	}
	if flags.Changed("sample-type") {
		cfg.SampleType = sampleType
	}
	if flags.Changed("verify") {
		cfg.Verify = verify
	}
	return cfg, nil
}
