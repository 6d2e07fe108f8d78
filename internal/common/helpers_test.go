package common

import (
	"testing"
	"time"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatUnits(t *testing.T) {
	tests := []struct {
		name     string
		value    uint64
		decimals int
		expected string
	}{
		{"zero with padding", 0, 7, "0.0000000"},
		{"sub unit", 249818, 7, "0.0249818"},
		{"whole tokens", 5000000000000, 7, "500000.0000000"},
		{"no decimals", 42, 0, "42"},
		{"exactly decimals digits", 1234567, 7, "0.1234567"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatUnits(uint256.NewInt(tt.value), tt.decimals))
		})
	}
}

func TestParseUnits(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		decimals int
		expected uint64
		hasError bool
	}{
		{"integer", "100", 7, 1000000000, false},
		{"fraction", "0.0249818", 7, 249818, false},
		{"short fraction", "1.5", 7, 15000000, false},
		{"trailing zeros beyond precision", "1.500000000", 7, 15000000, false},
		{"leading dot", ".5", 1, 5, false},
		{"zero", "0.0", 7, 0, false},
		{"too precise", "0.00000001", 7, 0, true},
		{"empty", "", 7, 0, true},
		{"negative", "-1", 7, 0, true},
		{"multiple dots", "1.2.3", 7, 0, true},
		{"letters", "abc", 7, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseUnits(tt.input, tt.decimals)
			if tt.hasError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got.Uint64())
		})
	}
}

func TestParseFormatRoundTrip(t *testing.T) {
	for _, s := range []string{"0.0000001", "1.0000000", "999999999.9999999"} {
		v, err := ParseUnits(s, 7)
		require.NoError(t, err)
		assert.Equal(t, s, FormatUnits(v, 7))
	}
}

func TestCompareUnits(t *testing.T) {
	cmp, err := CompareUnits("1.5", "1.50", 7)
	require.NoError(t, err)
	assert.Equal(t, 0, cmp)

	cmp, err = CompareUnits("2", "10", 7)
	require.NoError(t, err)
	assert.Equal(t, -1, cmp)

	_, err = CompareUnits("x", "1", 7)
	require.Error(t, err)
}

func TestFormatDisplay(t *testing.T) {
	tests := []struct {
		name     string
		value    uint64
		decimals int
		expected string
	}{
		{"grouped whole", 10000000000000, 7, "1,000,000"},
		{"one fraction digit", 12345000000, 7, "1,234.5"},
		{"rounds half up", 1234567, 7, "0.12"},
		{"rounds up to next cent", 1995000, 7, "0.2"},
		{"no decimals", 1500, 0, "1,500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatDisplay(uint256.NewInt(tt.value), tt.decimals))
		})
	}
}

func TestTruncateAddress(t *testing.T) {
	addr := "GABCDEFGHIJKLMNOPQRSTUVWXYZ234567ABCDEFGHIJKLMNOPQRSTUVW"
	assert.Equal(t, "GABCDE...TUVW", TruncateAddress(addr, 4))
	assert.Equal(t, "GABC", TruncateAddress("GABC", 4))
}

func TestTimeAgo(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		ago      time.Duration
		expected string
	}{
		{30 * time.Second, "just now"},
		{5 * time.Minute, "5m ago"},
		{3 * time.Hour, "3h ago"},
		{2 * 24 * time.Hour, "2d ago"},
		{65 * 24 * time.Hour, "2mo ago"},
		{400 * 24 * time.Hour, "1y ago"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, TimeAgo(now.Add(-tt.ago), now))
		})
	}
}
