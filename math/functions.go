package math

// Lerp computes a weighted average between a and b
func Lerp(a, b, frac float32) float32 {
	return (1-frac)*a + frac*b
}

// SplineFraction eases value*scale along 3x²-2x³.
func SplineFraction(value, scale float32) float32 {
	v := value * scale
	vs := v * v
	return 3*vs - 2*vs*v
}
