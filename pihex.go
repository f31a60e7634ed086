// Package pihex calculates hexadecimal digits of pi at arbitrary zero-based
// offsets using the Bailey-Borwein-Plouffe digit extraction algorithm, without
// calculating any of the preceding digits. Any offset that fits in an int64 is
// supported; intermediate products of the modular exponentiation are evaluated
// with 128-bit arithmetic so the series denominators cannot overflow.
package pihex

import (
	"errors"
	"fmt"
	"math"
	"math/bits"

	"github.com/go-logr/logr"
)

const (
	// DigitsPerSum is the number of hexadecimal digits extracted from each
	// evaluation of the weighted BBP series. Consumers that cache results
	// should align their keys to multiples of this value.
	DigitsPerSum = 8
	// Series terms smaller than this value contribute less than the least
	// significant extracted digit and are dropped. The value is tied to
	// IEEE 754 double precision arithmetic.
	seriesEpsilon = 1e-17
)

var (
	// Logger used by this package; default is a no-op logger.
	Logger = logr.Discard()
	// ErrInvalidStart is returned when the requested start offset is negative.
	ErrInvalidStart = errors.New("start must be greater than or equal to zero")
	// ErrInvalidCount is returned when the requested digit count is negative.
	ErrInvalidCount = errors.New("count must be greater than or equal to zero")
)

// GetDigits returns count hexadecimal digits of the fractional part of pi
// beginning at the zero-based offset start. Each returned byte is a digit
// value between 0 and 15 inclusive; use FormatDigits to render them as text.
// The calculation is stateless and safe to call from concurrent goroutines.
//
// Digit accuracy depends on IEEE 754 double precision arithmetic; on
// platforms with different floating point semantics the least significant
// digit of a block can differ at very large offsets.
func GetDigits(start, count int64) ([]byte, error) {
	l := Logger.V(1).WithValues("start", start, "count", count)
	l.Info("GetDigits: enter")
	if start < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidStart, start)
	}
	if count < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCount, count)
	}
	digits := make([]byte, count)
	var sum float64
	cursor := start
	for i := int64(0); i < count; i++ {
		// The weighted series is good for DigitsPerSum digits before
		// accumulated floating point error degrades the next digit, so
		// re-derive it at every block boundary relative to start.
		if i%DigitsPerSum == 0 {
			sum = 4*seriesSum(1, cursor) - 2*seriesSum(4, cursor) - seriesSum(5, cursor) - seriesSum(6, cursor)
			cursor += DigitsPerSum
		}
		sum = 16 * (sum - math.Floor(sum))
		digits[i] = byte(sum)
	}
	l.Info("GetDigits: exit")
	return digits, nil
}

// FormatDigits renders a slice of digit values as lower-case hexadecimal text.
func FormatDigits(digits []byte) string {
	const hextable = "0123456789abcdef"
	rendered := make([]byte, len(digits))
	for i, digit := range digits {
		rendered[i] = hextable[digit&0xf]
	}
	return string(rendered)
}

// seriesSum evaluates the fractional part of sum(16^(n-k)/(8k+m)) for k >= 0,
// one of the four component series of the BBP formula. While the exponent is
// non-negative the term numerator is reduced modulo its denominator so the
// partial sum stays within floating point range; once the exponent goes
// negative the terms shrink geometrically and the sum is truncated at
// seriesEpsilon. A negative n is valid and skips straight to the second phase.
func seriesSum(m, n int64) float64 {
	var sum float64
	d := m
	power := n
	for ; power >= 0; power, d = power-1, d+8 {
		sum += float64(powMod16(uint64(power), uint64(d))) / float64(d)
		sum -= math.Floor(sum)
	}
	for ; ; power, d = power-1, d+8 {
		term := math.Pow(16, float64(power)) / float64(d)
		if term < seriesEpsilon {
			break
		}
		sum += term
	}
	return sum
}

// powMod16 returns 16^p mod m using binary exponentiation, consuming the bits
// of p from most significant to least. Intermediate products are reduced via
// 128-bit multiply/divide so any uint64 modulus is safe.
func powMod16(p, m uint64) uint64 {
	if m == 1 {
		return 0
	}
	result := uint64(1)
	if p == 0 {
		return result
	}
	for mask := uint64(1) << (63 - bits.LeadingZeros64(p)); mask > 0; mask >>= 1 {
		result = mulMod(result, result, m)
		if p&mask != 0 {
			result = mulMod(result, 16, m)
		}
	}
	return result
}

// mulMod returns (a * b) mod m without overflow for any uint64 operands.
func mulMod(a, b, m uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	_, rem := bits.Div64(hi%m, lo, m)
	return rem
}
