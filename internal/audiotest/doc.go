// SPDX-License-Identifier: EPL-2.0

// Package audiotest holds fixtures shared by the package tests: WAV files
// built in memory, an in-memory io.ReadWriteSeeker and waveform generators.
package audiotest
