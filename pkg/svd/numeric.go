package svd

import (
	"fmt"
	"strconv"
	"strings"
)

// parseNumber parses an SVD scaled-integer literal: 0x/0X hexadecimal,
// # or 0b/0B binary, otherwise plain decimal. The conversion is total over
// these forms and rejects everything else.
func parseNumber(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty numeric value")
	}

	var digits string
	var base int
	switch {
	case strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X"):
		digits, base = s[2:], 16
	case strings.HasPrefix(s, "#"):
		digits, base = s[1:], 2
	case strings.HasPrefix(s, "0b") || strings.HasPrefix(s, "0B"):
		digits, base = s[2:], 2
	default:
		digits, base = s, 10
	}

	v, err := strconv.ParseUint(digits, base, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid numeric value %q", s)
	}
	return v, nil
}

// formatHex32 renders v in the canonical address format: zero-padded
// 8-digit 0x-prefixed hexadecimal. Values wider than 32 bits keep their
// natural width.
func formatHex32(v uint64) string {
	return fmt.Sprintf("0x%08X", v)
}

// formatHex renders v as unpadded 0x-prefixed hexadecimal.
func formatHex(v uint64) string {
	return fmt.Sprintf("0x%X", v)
}
