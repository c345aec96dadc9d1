// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"fmt"

	"github.com/ik5/audpipe/audio"
)

var (
	// ErrNotAiffFile indicates the file is not a valid AIFF file
	ErrNotAiffFile = fmt.Errorf("not an AIFF file: %w", audio.ErrMalformed)

	// ErrUnsupportedBitDepth indicates a sample size other than 8, 16, 24 or 32 bits
	ErrUnsupportedBitDepth = fmt.Errorf("unsupported AIFF bit depth: %w", audio.ErrUnsupportedFormat)

	// ErrUnsupportedAiffLayout indicates an unsupported AIFF layout
	ErrUnsupportedAiffLayout = fmt.Errorf("unsupported AIFF layout: %w", audio.ErrUnsupportedFormat)

	ErrAlreadyOpen  = fmt.Errorf("aiff source already open: %w", audio.ErrInvalidState)
	ErrNotOpen      = fmt.Errorf("aiff source not open: %w", audio.ErrInvalidState)
	ErrStreamExists = fmt.Errorf("aiff stream already created: %w", audio.ErrInvalidState)
)
