// SPDX-License-Identifier: EPL-2.0

package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ik5/audpipe"
	"github.com/ik5/audpipe/config"
)

var infoCmd = &cobra.Command{
	Use:   "info <file>",
	Short: "Print the stream type of an audio file",
	Long: `Open an audio file and print the streams its source offers.

WAV files are also read with go-audio/wav and its view of the header is
printed next to ours.`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

func runInfo(cmd *cobra.Command, args []string) error {
	path := args[0]
	key, err := config.FormatKey(path)
	if err != nil {
		return err
	}
	dec, ok := audpipe.DefaultRegistry().Decoder(key)
	if !ok {
		return fmt.Errorf("%w: %s", audpipe.ErrNoDecoder, key)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	src, _, err := dec.Decode(f)
	if err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	defer src.Shutdown()

	pd, err := src.PresentationDescriptor()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s (%s)\n", path, key)
	for i := range pd.Count() {
		sd, err := pd.Stream(i)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "  stream %d: %s\n", sd.ID, sd.StreamType)
	}

	if key != "wav" {
		return nil
	}
	info, err := audpipe.Verify(f)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "  go-audio/wav: %s\n", info)
	return nil
}
