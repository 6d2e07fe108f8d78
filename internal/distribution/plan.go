package distribution

import (
	"fmt"

	"github.com/AlexZinkM/token-communities/internal/common"

	"github.com/holiman/uint256"
)

// Allocation is a bucket with its computed share of the supply.
type Allocation struct {
	Bucket
	Units  *uint256.Int // minor units
	Amount string       // Units formatted with the plan's decimals
}

// Plan is a finalized distribution of a token supply.
type Plan struct {
	TotalSupply int64
	Decimals    int
	Allocations []Allocation
	// Remainder is supply left over after per-bucket rounding; it goes to the admin.
	Remainder *uint256.Int
}

// Calculate splits totalSupply across the buckets. The buckets must form a
// complete plan; an incomplete one is rejected with ErrIncompletePlan.
func Calculate(totalSupply int64, decimals int, buckets []Bucket) (*Plan, error) {
	if err := ValidateBuckets(buckets); err != nil {
		return nil, err
	}
	if !IsCompletePlan(buckets) {
		return nil, fmt.Errorf("%w (currently %d%%)", ErrIncompletePlan, SumPercentages(buckets))
	}

	total, err := ComputeUnits(totalSupply, CompletePercentage, decimals)
	if err != nil {
		return nil, err
	}

	plan := &Plan{
		TotalSupply: totalSupply,
		Decimals:    decimals,
		Allocations: make([]Allocation, 0, len(buckets)),
	}

	distributed := new(uint256.Int)
	for _, b := range buckets {
		units, err := ComputeUnits(totalSupply, b.Percentage, decimals)
		if err != nil {
			return nil, fmt.Errorf("bucket %q: %w", b.Name, err)
		}
		distributed.Add(distributed, units)
		plan.Allocations = append(plan.Allocations, Allocation{
			Bucket: b,
			Units:  units,
			Amount: common.FormatUnits(units, decimals),
		})
	}

	// Half-up rounding per bucket can overshoot by at most one unit per bucket.
	if distributed.Gt(total) {
		excess := new(uint256.Int).Sub(distributed, total)
		for i := len(plan.Allocations) - 1; i >= 0 && !excess.IsZero(); i-- {
			a := &plan.Allocations[i]
			if a.Units.IsZero() {
				continue
			}
			a.Units.Sub(a.Units, uint256.NewInt(1))
			a.Amount = common.FormatUnits(a.Units, decimals)
			excess.Sub(excess, uint256.NewInt(1))
		}
		distributed.Set(total)
	}

	plan.Remainder = new(uint256.Int).Sub(total, distributed)
	return plan, nil
}

// TotalUnits is the whole supply in minor units.
func (p *Plan) TotalUnits() *uint256.Int {
	total := new(uint256.Int).Set(p.Remainder)
	for _, a := range p.Allocations {
		total.Add(total, a.Units)
	}
	return total
}

// Find returns the allocation with the given bucket name.
func (p *Plan) Find(name string) (Allocation, bool) {
	for _, a := range p.Allocations {
		if a.Name == name {
			return a, true
		}
	}
	return Allocation{}, false
}

// VotingPower is a holder's share of the supply in basis points (1/100 of a percent).
func VotingPower(balance, totalSupply *uint256.Int) uint64 {
	return basisPoints(balance, totalSupply)
}

// QuorumBasisPoints is the share of the supply that has voted, in basis points.
func QuorumBasisPoints(totalVotes, totalSupply *uint256.Int) uint64 {
	return basisPoints(totalVotes, totalSupply)
}

func basisPoints(part, whole *uint256.Int) uint64 {
	if whole == nil || whole.IsZero() || part == nil {
		return 0
	}
	scaled, overflow := new(uint256.Int).MulOverflow(part, uint256.NewInt(10000))
	if overflow {
		// part is astronomically large; scale the whole down instead
		scaled = new(uint256.Int).Div(part, new(uint256.Int).Div(whole, uint256.NewInt(10000)))
		return scaled.Uint64()
	}
	return scaled.Div(scaled, whole).Uint64()
}
