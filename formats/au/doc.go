// SPDX-License-Identifier: EPL-2.0

// Package au writes Sun/NeXT .snd ("au") files.
//
// The header is six big-endian 32-bit words: the ".snd" magic, the data
// offset (24), the data size, the encoding, the sample rate and the channel
// count. The sink writes it when the stream type is set, with the data size
// set to UnknownSize. Finalize writes the queued samples and, when the writer
// can seek, patches the real data size in.
//
// Samples must already be big-endian; the sink never converts them. The
// stored encodings are:
//
//	µ-law               1
//	8/16/24/32-bit PCM  2/3/4/5
//	32/64-bit float     6/7
//	A-law               27
//
// Reading .snd files is not supported.
package au
