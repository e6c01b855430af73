package util

import (
	"fmt"
	"strconv"
	"unsafe"
)

func ArrayToString[T uint8 | uint16 | uint32 | uint64](arr []T) string {
	ret := ""

	for _, v := range arr {
		bitWidth := int(unsafe.Sizeof(v) * 8)
		ret += fmt.Sprintf("%0[1]*[2]x", bitWidth/4, v)
	}

	return ret
}

// StringToUint64Array parses what ArrayToString renders for uint64
// elements: concatenated 16-nibble big-endian words.
func StringToUint64Array(s string) ([]uint64, error) {
	if len(s)%16 != 0 {
		return nil, fmt.Errorf("length %d is not a multiple of 16", len(s))
	}

	ret := make([]uint64, len(s)/16)

	for i := range ret {
		v, err := strconv.ParseUint(s[i*16:(i+1)*16], 16, 64)
		if err != nil {
			return nil, err
		}

		ret[i] = v
	}

	return ret, nil
}
