package hufftree

import (
	mathbits "math/bits"
)

func log2uint(x uint) uint {
	if x == 0 {
		x = 1
	}
	return uint(mathbits.UintSize - mathbits.LeadingZeros(x))
}
