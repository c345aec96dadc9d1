// SPDX-License-Identifier: EPL-2.0

package audpipe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/ik5/audpipe/audio"
	"github.com/ik5/audpipe/config"
	"github.com/ik5/audpipe/formats/aiff"
	"github.com/ik5/audpipe/formats/au"
	"github.com/ik5/audpipe/formats/wav"
)

var (
	ErrNoDecoder = fmt.Errorf("no decoder registered for format: %w", audio.ErrUnsupportedFormat)
	ErrNoEncoder = fmt.Errorf("no encoder registered for format: %w", audio.ErrUnsupportedFormat)
)

// DefaultRegistry returns a registry with every container this module
// implements: WAV in both directions, AIFF for reading and .snd for writing.
func DefaultRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.RegisterDecoder("wav", wav.Decoder{})
	reg.RegisterEncoder("wav", wav.Encoder{})
	reg.RegisterDecoder("aiff", aiff.Decoder{})
	reg.RegisterEncoder("au", au.Encoder{})
	return reg
}

// ConvertOptions tunes ConvertFile.
type ConvertOptions struct {
	// SampleType of the output; the zero value keeps the input's.
	SampleType audio.SampleType
	// Verify re-reads WAV output with go-audio/wav and compares it with what
	// was written.
	Verify bool
	// Registry defaults to DefaultRegistry.
	Registry *audio.Registry
	Logger   *slog.Logger
}

// ConvertFile runs a pipeline from the file at in to the file at out. The
// containers are picked by file extension. A partially written output file
// is removed when the conversion fails.
func ConvertFile(ctx context.Context, in, out string, opts ConvertOptions) (stats Stats, err error) {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	reg := opts.Registry
	if reg == nil {
		reg = DefaultRegistry()
	}

	inKey, err := config.FormatKey(in)
	if err != nil {
		return Stats{}, err
	}
	outKey, err := config.FormatKey(out)
	if err != nil {
		return Stats{}, err
	}

	dec, ok := reg.Decoder(inKey)
	if !ok {
		return Stats{}, fmt.Errorf("%w: %s", ErrNoDecoder, inKey)
	}
	// .snd stores big-endian samples only, AIFF's native order.
	if _, isAIFF := dec.(aiff.Decoder); isAIFF && outKey == "au" {
		dec = aiff.Decoder{Endian: audio.BigEndian}
	}
	enc, ok := reg.Encoder(outKey)
	if !ok {
		return Stats{}, fmt.Errorf("%w: %s", ErrNoEncoder, outKey)
	}

	inFile, err := os.Open(in)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to open input: %w", err)
	}
	defer inFile.Close()

	src, stream, err := dec.Decode(inFile)
	if err != nil {
		return Stats{}, fmt.Errorf("decode %s: %w", in, err)
	}

	outFile, err := os.Create(out)
	if err != nil {
		_ = src.Shutdown()
		return Stats{}, fmt.Errorf("failed to create output: %w", err)
	}
	defer func() {
		if cerr := outFile.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close output: %w", cerr)
		}
		if err != nil {
			_ = os.Remove(out)
		}
	}()

	sink, err := enc.Encode(outFile)
	if err != nil {
		_ = src.Shutdown()
		return Stats{}, fmt.Errorf("encode %s: %w", out, err)
	}

	log.Info("converting", "input", in, "output", out)
	p := &Pipeline{
		Source:     src,
		Stream:     stream,
		Sink:       sink,
		SampleType: opts.SampleType,
		Logger:     log,
	}
	stats, err = p.Run(ctx)
	if err != nil {
		return stats, err
	}

	if opts.Verify {
		if outKey != "wav" {
			log.Warn("verification supports WAV output only", "output", out)
			return stats, nil
		}
		info, err := Verify(outFile)
		if err != nil {
			return stats, err
		}
		if err := CheckWAV(info, stats); err != nil {
			return stats, err
		}
		log.Info("verified", "info", info.String())
	}
	return stats, nil
}

// CheckWAV compares a re-read WAV file with the stats of the run that wrote
// it.
func CheckWAV(info *WAVInfo, stats Stats) error {
	if uint64(info.DataSize) != stats.BytesOut {
		return fmt.Errorf("%w: data chunk holds %d bytes, wrote %d", ErrVerify, info.DataSize, stats.BytesOut)
	}
	if info.Channels < 1 || info.SampleRate < 1 || info.BitDepth < 8 {
		return fmt.Errorf("%w: %s", ErrVerify, info)
	}
	return nil
}

// IsFormatError reports whether err comes from a stream format that a stage
// cannot handle, as opposed to an I/O or structural failure.
func IsFormatError(err error) bool {
	return errors.Is(err, audio.ErrUnsupportedFormat) || errors.Is(err, audio.ErrPrecondition)
}
