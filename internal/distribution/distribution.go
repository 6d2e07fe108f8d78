// Package distribution computes and validates how a community token's supply
// is split across named allocation buckets.
//
// All arithmetic runs on integer minor units (amount × 10^decimals); decimal
// strings are produced only when an amount is handed back to a caller.
package distribution

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/AlexZinkM/token-communities/internal/common"

	"github.com/holiman/uint256"
)

// CompletePercentage is the sum a finalized plan must reach.
const CompletePercentage = 100

var (
	ErrInvalidSupply     = errors.New("total supply must be at least 1")
	ErrInvalidPercentage = errors.New("percentage must be between 0 and 100")
	ErrInvalidDecimals   = fmt.Errorf("decimals must be between 0 and %d", common.MaxDecimals)
	ErrIncompletePlan    = errors.New("total allocation must equal 100%")
	ErrAmountOverflow    = errors.New("amount exceeds 256 bits")
)

var (
	addressPattern  = regexp.MustCompile(`^G[A-Z2-7]{55}$`)
	contractPattern = regexp.MustCompile(`^C[A-Z2-7]{55}$`)
)

// Bucket is a named allocation target holding a share of the supply.
// A bucket needs a destination wallet unless WalletOptional is set.
type Bucket struct {
	Name           string `json:"name"`
	Percentage     int    `json:"percentage"`
	Wallet         string `json:"wallet,omitempty"`
	WalletOptional bool   `json:"walletOptional,omitempty"`
}

// DefaultBuckets returns the allocation offered to new communities.
func DefaultBuckets() []Bucket {
	return []Bucket{
		{Name: "Treasury", Percentage: 50},
		{Name: "Founder", Percentage: 20},
		{Name: "Community", Percentage: 30},
	}
}

// ComputeUnits returns totalSupply × percentage / 100 in minor units.
// Fractions of a minor unit are rounded half up.
func ComputeUnits(totalSupply int64, percentage, decimals int) (*uint256.Int, error) {
	if totalSupply < 1 {
		return nil, ErrInvalidSupply
	}
	if percentage < 0 || percentage > CompletePercentage {
		return nil, ErrInvalidPercentage
	}
	if decimals < 0 || decimals > common.MaxDecimals {
		return nil, ErrInvalidDecimals
	}

	scale, err := common.Pow10(decimals)
	if err != nil {
		return nil, err
	}

	units, overflow := new(uint256.Int).MulOverflow(uint256.NewInt(uint64(totalSupply)), scale)
	if overflow {
		return nil, ErrAmountOverflow
	}
	if _, overflow = units.MulOverflow(units, uint256.NewInt(uint64(percentage))); overflow {
		return nil, ErrAmountOverflow
	}

	units.Add(units, uint256.NewInt(CompletePercentage/2))
	units.Div(units, uint256.NewInt(CompletePercentage))
	return units, nil
}

// ComputeAmount returns totalSupply × percentage / 100 as a decimal string
// with exactly decimals fraction digits.
func ComputeAmount(totalSupply int64, percentage, decimals int) (string, error) {
	units, err := ComputeUnits(totalSupply, percentage, decimals)
	if err != nil {
		return "", err
	}
	return common.FormatUnits(units, decimals), nil
}

// SumPercentages adds up every bucket's percentage.
func SumPercentages(buckets []Bucket) int {
	sum := 0
	for _, b := range buckets {
		sum += b.Percentage
	}
	return sum
}

// Deviation reports how far the buckets are from a complete plan;
// positive means over-allocated.
func Deviation(buckets []Bucket) int {
	return SumPercentages(buckets) - CompletePercentage
}

// IsCompletePlan reports whether the buckets sum to exactly 100%.
func IsCompletePlan(buckets []Bucket) bool {
	return SumPercentages(buckets) == CompletePercentage
}

// IsValidAddress is a syntactic check for account addresses: "G" followed by
// 55 base32 characters. It says nothing about the account existing.
func IsValidAddress(address string) bool {
	return addressPattern.MatchString(address)
}

// IsValidContractID is the same check for contract IDs, which start with "C"
func IsValidContractID(contractID string) bool {
	return contractPattern.MatchString(contractID)
}

// WalletCheck is the outcome of ValidateDistributionWallets.
type WalletCheck struct {
	Valid              bool     `json:"valid"`
	InvalidBucketNames []string `json:"invalidBucketNames"`
}

// ValidateDistributionWallets checks every bucket that needs a wallet and
// names the ones whose address is missing or malformed.
func ValidateDistributionWallets(buckets []Bucket) WalletCheck {
	check := WalletCheck{InvalidBucketNames: []string{}}
	for _, b := range buckets {
		if b.WalletOptional && b.Wallet == "" {
			continue
		}
		if !IsValidAddress(b.Wallet) {
			check.InvalidBucketNames = append(check.InvalidBucketNames, b.Name)
		}
	}
	check.Valid = len(check.InvalidBucketNames) == 0
	return check
}

// ValidateBuckets checks bucket shape: non-empty unique names and
// percentages within 0..100. It does not require the plan to be complete.
func ValidateBuckets(buckets []Bucket) error {
	if len(buckets) == 0 {
		return errors.New("at least one bucket is required")
	}
	seen := make(map[string]struct{}, len(buckets))
	for _, b := range buckets {
		name := strings.TrimSpace(b.Name)
		if name == "" {
			return errors.New("bucket name is required")
		}
		key := strings.ToLower(name)
		if _, ok := seen[key]; ok {
			return fmt.Errorf("duplicate bucket %q", name)
		}
		seen[key] = struct{}{}
		if b.Percentage < 0 || b.Percentage > CompletePercentage {
			return fmt.Errorf("bucket %q: %w", name, ErrInvalidPercentage)
		}
	}
	return nil
}
