package models

import "strconv"

// RollingHash is a deterministic 32-bit shift-accumulate hash
// (h = h*31 + b with int32 wraparound), rendered in decimal.
func RollingHash(data []byte) string {
	var h int32
	for _, b := range data {
		h = (h << 5) - h + int32(b)
	}
	return strconv.FormatInt(int64(h), 10)
}
