// SPDX-License-Identifier: EPL-2.0

package commands

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "audpipe",
	Short: "Pull based audio file converter",
	Long: `audpipe moves audio from a container source through an optional sample
type conversion into a container sink.

Containers are picked by file extension:
  - .wav/.wave  read and write
  - .aif/.aiff  read
  - .au/.snd    write (big-endian PCM only)

Examples:
  # Convert 16-bit PCM to 32-bit float and check the result
  audpipe convert -i in.wav -o out.wav --sample-type f32 --verify

  # Use a YAML file, overriding its output
  audpipe convert --config job.yaml -o other.wav

  # Show what a file holds
  audpipe info in.aiff
`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Command returns the root command for mounting into a parent CLI.
func Command() *cobra.Command {
	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initLogging)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "conversion config file (YAML)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(infoCmd)
}

func initLogging() {
	setLogLevel(slog.LevelInfo)
}

// setLogLevel installs the default text logger. Verbose always wins.
func setLogLevel(level slog.Level) {
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
}
