// SPDX-License-Identifier: EPL-2.0

package dsp

// Clamp limits x to [-1, 1].
func Clamp(x float32) float32 {
	return min(max(x, -1), 1)
}

// FullScale returns the magnitude of the most negative value of a signed
// integer sample with the given bit depth (128 for 8, 32768 for 16 and so on).
func FullScale(bitDepth int) float64 {
	return float64(int64(1) << (bitDepth - 1))
}

// IntToFloat converts a signed integer sample to [-1, 1).
func IntToFloat(v int, bitDepth int) float32 {
	return float32(float64(v) / FullScale(bitDepth))
}

// FloatToInt clamps x and scales it to a signed integer sample. The
// positive peak maps to FullScale-1 so it never overflows.
func FloatToInt(x float32, bitDepth int) int {
	return int(float64(Clamp(x)) * (FullScale(bitDepth) - 1))
}
