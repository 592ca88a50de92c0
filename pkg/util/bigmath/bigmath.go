/*
Package bigmath contains exact int64 helpers that fall back to 256-bit
arithmetic where a plain int64 computation could wrap around.
*/
package bigmath

import (
	"errors"
	"math"

	"github.com/holiman/uint256"
)

var (
	// ErrDivisionByZero is returned by MulDiv for a zero divisor.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrOutOfRange is returned when an exact result doesn't fit into int64.
	ErrOutOfRange = errors.New("result is out of int64 range")
)

// MulOverflows reports whether a*b can't be represented as int64.
func MulOverflows(a, b int64) bool {
	if a == 0 || b == 0 {
		return false
	}
	if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return true
	}
	c := a * b
	return c/b != a
}

// AddOverflows reports whether a+b can't be represented as int64.
func AddOverflows(a, b int64) bool {
	c := a + b
	return (b > 0 && c < a) || (b < 0 && c > a)
}

// MulDiv returns a*b/d computed exactly with the quotient truncated toward
// zero. The intermediate product never wraps, only the final quotient has to
// fit into int64.
func MulDiv(a, b, d int64) (int64, error) {
	if d == 0 {
		return 0, ErrDivisionByZero
	}
	var (
		neg = (a < 0) != (b < 0) != (d < 0)
		x   uint256.Int
		y   uint256.Int
		z   uint256.Int
	)
	if a == 0 || b == 0 {
		return 0, nil
	}
	x.SetUint64(abs(a))
	y.SetUint64(abs(b))
	z.SetUint64(abs(d))
	x.Mul(&x, &y)
	x.Div(&x, &z)
	if !x.IsUint64() {
		return 0, ErrOutOfRange
	}
	q := x.Uint64()
	if neg {
		if q > 1<<63 {
			return 0, ErrOutOfRange
		}
		return int64(-q), nil
	}
	if q > math.MaxInt64 {
		return 0, ErrOutOfRange
	}
	return int64(q), nil
}

// IsZeroSum reports whether the sum of all amounts is exactly zero. The sum
// is accumulated in 256-bit two's complement, so an int64 wraparound can't
// fake a zero.
func IsZeroSum(amounts ...int64) bool {
	var sum, v uint256.Int
	for _, a := range amounts {
		v.SetUint64(abs(a))
		if a < 0 {
			sum.Sub(&sum, &v)
		} else {
			sum.Add(&sum, &v)
		}
	}
	return sum.IsZero()
}

// abs returns |a| as uint64, which is exact even for math.MinInt64.
func abs(a int64) uint64 {
	if a < 0 {
		return uint64(-a)
	}
	return uint64(a)
}
