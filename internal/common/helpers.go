package common

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/holiman/uint256"
)

const (
	DefaultDecimals = 7  // Stellar-style tokens use 7 decimals (stroops)
	MaxDecimals     = 18 // upper bound accepted for community tokens
)

// Pow10 returns 10^decimals as a 256-bit integer
func Pow10(decimals int) (*uint256.Int, error) {
	if decimals < 0 || decimals > 77 {
		return nil, fmt.Errorf("decimals out of range: %d", decimals)
	}
	result := uint256.NewInt(1)
	ten := uint256.NewInt(10)
	for i := 0; i < decimals; i++ {
		result.Mul(result, ten)
	}
	return result, nil
}

// FormatUnits converts minor units to a decimal string without float precision loss
// Example: FormatUnits(5000000000000, 7) = "500000.0000000"
func FormatUnits(value *uint256.Int, decimals int) string {
	s := value.Dec()
	if decimals <= 0 {
		return s
	}

	// Pad with leading zeros if needed
	if len(s) <= decimals {
		s = strings.Repeat("0", decimals-len(s)+1) + s
	}

	// Insert decimal point
	pos := len(s) - decimals
	return s[:pos] + "." + s[pos:]
}

// ParseUnits converts a decimal string to minor units by removing the decimal point.
// Fraction digits beyond decimals are accepted only when they are zeros.
// Example: ParseUnits("0.0249818", 7) = 249818
func ParseUnits(s string, decimals int) (*uint256.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty string")
	}
	if decimals < 0 {
		return nil, fmt.Errorf("decimals out of range: %d", decimals)
	}

	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return nil, fmt.Errorf("invalid decimal format")
	}

	whole := parts[0]
	frac := ""
	if len(parts) == 2 {
		frac = parts[1]
	}
	if whole == "" {
		whole = "0"
	}
	if !isDigits(whole) || !isDigits(frac) {
		return nil, fmt.Errorf("invalid decimal format")
	}

	// Pad or trim fractional part to exact decimals
	if len(frac) < decimals {
		frac += strings.Repeat("0", decimals-len(frac))
	} else if len(frac) > decimals {
		if strings.Trim(frac[decimals:], "0") != "" {
			return nil, fmt.Errorf("too many decimal places (max %d)", decimals)
		}
		frac = frac[:decimals]
	}

	digits := strings.TrimLeft(whole+frac, "0")
	if digits == "" {
		return new(uint256.Int), nil
	}

	value, err := uint256.FromDecimal(digits)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}
	return value, nil
}

// CompareUnits compares two decimal string amounts without float precision loss.
// Returns: -1 if a < b, 0 if a == b, 1 if a > b, and error if parsing fails
func CompareUnits(a, b string, decimals int) (int, error) {
	aVal, err := ParseUnits(a, decimals)
	if err != nil {
		return 0, fmt.Errorf("failed to parse amount '%s': %w", a, err)
	}

	bVal, err := ParseUnits(b, decimals)
	if err != nil {
		return 0, fmt.Errorf("failed to parse amount '%s': %w", b, err)
	}

	return aVal.Cmp(bVal), nil
}

// FormatDisplay renders minor units for people: grouped thousands and at most
// two fraction digits, trailing zeros dropped ("1,234.5").
func FormatDisplay(value *uint256.Int, decimals int) string {
	cents := new(uint256.Int)
	switch {
	case decimals >= 2:
		divisor, err := Pow10(decimals - 2)
		if err != nil {
			return FormatUnits(value, decimals)
		}
		half := new(uint256.Int).Rsh(divisor, 1)
		cents.Add(value, half)
		cents.Div(cents, divisor)
	case decimals == 1:
		cents.Mul(value, uint256.NewInt(10))
	default:
		cents.Mul(value, uint256.NewInt(100))
	}

	whole, frac := new(uint256.Int).DivMod(cents, uint256.NewInt(100), new(uint256.Int))
	out := humanize.BigComma(whole.ToBig())
	if frac.IsZero() {
		return out
	}
	return out + "." + strings.TrimRight(fmt.Sprintf("%02d", frac.Uint64()), "0")
}

// TruncateAddress shortens an address for display: "GABCDE...WXYZ"
func TruncateAddress(address string, chars int) string {
	if chars <= 0 {
		chars = 4
	}
	if len(address) <= chars*2+2 {
		return address
	}
	return address[:chars+2] + "..." + address[len(address)-chars:]
}

// TimeAgo renders the distance between t and now in compact form ("5m ago")
func TimeAgo(t, now time.Time) string {
	seconds := int64(now.Sub(t) / time.Second)
	if seconds < 60 {
		return "just now"
	}

	minutes := seconds / 60
	if minutes < 60 {
		return fmt.Sprintf("%dm ago", minutes)
	}

	hours := minutes / 60
	if hours < 24 {
		return fmt.Sprintf("%dh ago", hours)
	}

	days := hours / 24
	if days < 30 {
		return fmt.Sprintf("%dd ago", days)
	}

	months := days / 30
	if months < 12 {
		return fmt.Sprintf("%dmo ago", months)
	}

	return fmt.Sprintf("%dy ago", months/12)
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
