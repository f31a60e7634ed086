package pihex

import (
	"errors"
	"fmt"
	"math/big"
	"testing"
)

const (
	// First 128 fractional hexadecimal digits of pi.
	PiHexDigits = "243f6a8885a308d313198a2e03707344a4093822299f31d0082efa98ec4e6c89452821e638d01377be5466cf34e90c6cc0ac29b7c97c50dd3f84d5b5b5470917"
	// Sixteen fractional hexadecimal digits of pi from offset 1000.
	PiHexDigitsAt1000 = "49f1c09b075372c9"
	// Eight fractional hexadecimal digits of pi from offset 4096.
	PiHexDigitsAt4096 = "5a04abfc"
)

func testDigits(t *testing.T, start, count int64, expected string) {
	t.Helper()
	digits, err := GetDigits(start, count)
	if err != nil {
		t.Errorf("GetDigits returned an error: %v", err)
	}
	if int64(len(digits)) != count {
		t.Errorf("Expected %d digits, got %d", count, len(digits))
	}
	for i, digit := range digits {
		if digit > 15 {
			t.Errorf("Digit %d is out of range: %d", i, digit)
		}
	}
	if actual := FormatDigits(digits); actual != expected {
		t.Errorf("Checking start %d count %d: expected %s got %s", start, count, expected, actual)
	}
}

func TestGetDigits(t *testing.T) {
	testDigits(t, 0, int64(len(PiHexDigits)), PiHexDigits)
}

func TestGetDigits_UnalignedStart(t *testing.T) {
	// Verify the block boundaries are relative to the requested start
	// offset, not absolute multiples of DigitsPerSum.
	for start := int64(0); start < 32; start++ {
		start := start
		t.Run(fmt.Sprintf("start=%d", start), func(t *testing.T) {
			testDigits(t, start, 24, PiHexDigits[start:start+24])
		})
	}
}

func TestGetDigits_KnownOffsets(t *testing.T) {
	tests := []struct {
		start    int64
		expected string
	}{
		{1000, PiHexDigitsAt1000},
		{4096, PiHexDigitsAt4096},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(fmt.Sprintf("start=%d", tt.start), func(t *testing.T) {
			testDigits(t, tt.start, int64(len(tt.expected)), tt.expected)
		})
	}
}

func TestGetDigits_ZeroCount(t *testing.T) {
	digits, err := GetDigits(1234, 0)
	if err != nil {
		t.Errorf("GetDigits returned an error: %v", err)
	}
	if len(digits) != 0 {
		t.Errorf("Expected empty result, got %d digits", len(digits))
	}
}

func TestGetDigits_InvalidArguments(t *testing.T) {
	if _, err := GetDigits(-1, 10); !errors.Is(err, ErrInvalidStart) {
		t.Errorf("Expected ErrInvalidStart, got %v", err)
	}
	if _, err := GetDigits(10, -1); !errors.Is(err, ErrInvalidCount) {
		t.Errorf("Expected ErrInvalidCount, got %v", err)
	}
}

// A digit at offset k must not depend on the start or count of the call that
// produced it, so a run can be split at any point and concatenated.
func TestGetDigits_Concatenation(t *testing.T) {
	whole, err := GetDigits(0, 64)
	if err != nil {
		t.Errorf("GetDigits returned an error: %v", err)
	}
	for _, split := range []int64{1, 7, 8, 13, 32, 63} {
		split := split
		t.Run(fmt.Sprintf("split=%d", split), func(t *testing.T) {
			head, err := GetDigits(0, split)
			if err != nil {
				t.Errorf("GetDigits returned an error: %v", err)
			}
			tail, err := GetDigits(split, 64-split)
			if err != nil {
				t.Errorf("GetDigits returned an error: %v", err)
			}
			actual := FormatDigits(append(head, tail...))
			if expected := FormatDigits(whole); actual != expected {
				t.Errorf("Expected %s got %s", expected, actual)
			}
		})
	}
}

func TestPowMod16(t *testing.T) {
	sixteen := big.NewInt(16)
	exponents := []uint64{0, 1, 2, 3, 7, 8, 31, 63, 64, 1000, 65537, 1 << 40, 1<<40 + 12345}
	moduli := []uint64{1, 2, 3, 5, 7, 16, 255, 8009, 65537, 1 << 31, 1<<62 + 9}
	for _, p := range exponents {
		for _, m := range moduli {
			expected := new(big.Int).Exp(sixteen, new(big.Int).SetUint64(p), new(big.Int).SetUint64(m)).Uint64()
			if actual := powMod16(p, m); actual != expected {
				t.Errorf("powMod16(%d, %d): expected %d got %d", p, m, expected, actual)
			}
		}
	}
}

func TestFormatDigits(t *testing.T) {
	actual := FormatDigits([]byte{0, 1, 2, 9, 10, 15})
	if expected := "0129af"; actual != expected {
		t.Errorf("Expected %s got %s", expected, actual)
	}
}
