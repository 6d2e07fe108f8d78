package distribution

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateDefaultPlan(t *testing.T) {
	plan, err := Calculate(1000000, 7, DefaultBuckets())
	require.NoError(t, err)

	expected := map[string]string{
		"Treasury":  "500000.0000000",
		"Founder":   "200000.0000000",
		"Community": "300000.0000000",
	}
	require.Len(t, plan.Allocations, 3)
	for _, a := range plan.Allocations {
		assert.Equal(t, expected[a.Name], a.Amount, a.Name)
	}
	assert.True(t, plan.Remainder.IsZero())
	assert.Equal(t, "10000000000000", plan.TotalUnits().Dec())
}

func TestCalculateReconcilesRounding(t *testing.T) {
	buckets := []Bucket{
		{Name: "A", Percentage: 50},
		{Name: "B", Percentage: 50},
	}

	// 1 token with no decimals: both halves round up to 1, so one is trimmed.
	plan, err := Calculate(1, 0, buckets)
	require.NoError(t, err)
	assert.Equal(t, "1", plan.TotalUnits().Dec())
	assert.Equal(t, "1", plan.Allocations[0].Amount)
	assert.Equal(t, "0", plan.Allocations[1].Amount)

	buckets = []Bucket{
		{Name: "A", Percentage: 33},
		{Name: "B", Percentage: 33},
		{Name: "C", Percentage: 34},
	}
	plan, err = Calculate(10, 0, buckets)
	require.NoError(t, err)
	assert.Equal(t, "10", plan.TotalUnits().Dec())
}

func TestPlanFind(t *testing.T) {
	plan, err := Calculate(100, 7, DefaultBuckets())
	require.NoError(t, err)

	founder, ok := plan.Find("Founder")
	require.True(t, ok)
	assert.Equal(t, "20.0000000", founder.Amount)

	_, ok = plan.Find("Missing")
	assert.False(t, ok)
}

func TestVotingPowerAndQuorum(t *testing.T) {
	supply := uint256.NewInt(1000000)
	assert.Equal(t, uint64(2500), VotingPower(uint256.NewInt(250000), supply))
	assert.Equal(t, uint64(0), VotingPower(uint256.NewInt(1), new(uint256.Int)))
	assert.Equal(t, uint64(2000), QuorumBasisPoints(uint256.NewInt(200000), supply))
}
