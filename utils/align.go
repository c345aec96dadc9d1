// SPDX-License-Identifier: EPL-2.0

package utils

// BlockAlign rounds n up to the next multiple of blockSize. A zero blockSize
// leaves n unchanged.
func BlockAlign(n, blockSize uint64) uint64 {
	if blockSize == 0 {
		return n
	}
	t := n + blockSize - 1
	return t - t%blockSize
}
