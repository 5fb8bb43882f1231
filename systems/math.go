package systems

import "math"

// Clamp functions for common value ranges

// clampFloat clamps v between minVal and maxVal. NaN clamps to minVal.
func clampFloat(v, minVal, maxVal float64) float64 {
	if math.IsNaN(v) || v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// clamp01 clamps a value to the [0, 1] range. NaN maps to 0.
func clamp01(v float64) float64 {
	return clampFloat(v, 0, 1)
}

// mapRange linearly maps v from [inMin, inMax] onto [outMin, outMax].
// The result is not clamped. A zero-width input domain maps to outMin.
func mapRange(v, inMin, inMax, outMin, outMax float64) float64 {
	span := inMax - inMin
	if span == 0 {
		return outMin
	}
	return outMin + (v-inMin)/span*(outMax-outMin)
}

// logEase remaps a linear fraction through 1 - |log10(f)|.
// The input is clamped first and the output clamped after; log10 of
// zero collapses to the 0 boundary instead of -Inf.
func logEase(f float64) float64 {
	f = clamp01(f)
	if f <= 0 {
		return 0
	}
	return clamp01(1 - math.Abs(math.Log10(f)))
}

// degToRad converts degrees to radians.
func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// scaleChannel multiplies an 8-bit channel by f, truncating like a float cast.
func scaleChannel(c uint8, f float64) uint8 {
	v := float64(c) * f
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
