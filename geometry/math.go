package geometry

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Min returns the minimum of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the maximum of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Mod returns x modulo n in the range [0, n).
func Mod(x, n int) int {
	m := x % n
	if m < 0 {
		m += n
	}
	return m
}

// isOdd reports whether x is odd, for negative values too.
func isOdd(x int) bool {
	return x&1 == 1
}
