package cpu

import "github.com/glaze-ml/glaze/internal/tensor"

// broadcastStrides maps src's strides onto a broadcast target shape.
// Broadcast dimensions, including leading ones src does not have, read the
// same source element repeatedly and so get stride 0.
func broadcastStrides(src, target tensor.Shape) []int {
	strides := make([]int, len(target))
	srcStrides := src.ComputeStrides()
	pad := len(target) - len(src)
	for i := pad; i < len(target); i++ {
		if src[i-pad] != 1 {
			strides[i] = srcStrides[i-pad]
		}
	}
	return strides
}

// sourceIndex converts a flat index in the target layout to the flat index
// of the source element it reads, given broadcast-adjusted source strides.
func sourceIndex(flat int, targetStrides, srcStrides []int) int {
	idx := 0
	for i, ts := range targetStrides {
		idx += (flat / ts) * srcStrides[i]
		flat %= ts
	}
	return idx
}
