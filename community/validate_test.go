package community

import (
	"testing"

	"github.com/AlexZinkM/token-communities/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldNames(fields []model.FieldError) []string {
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.Field)
	}
	return names
}

func TestNormalize(t *testing.T) {
	req := validRequest()
	req.Name = "  Builders  "
	req.TokenSymbol = " bld "
	Normalize(&req)

	assert.Equal(t, "Builders", req.Name)
	assert.Equal(t, "BLD", req.TokenSymbol)
	require.NotNil(t, req.Decimals)
	assert.Equal(t, 7, *req.Decimals)
	require.NotNil(t, req.Settings.VotingPeriod)
	assert.Equal(t, 7, *req.Settings.VotingPeriod)
	require.NotNil(t, req.Settings.QuorumPercentage)
	assert.Equal(t, 20, *req.Settings.QuorumPercentage)
	assert.Equal(t, []string{"general", "treasury", "governance"}, req.Settings.Categories)
}

func TestValidateSteps(t *testing.T) {
	zero := 0
	tooMany := 19
	days31 := 31
	quorum4 := 4

	tests := []struct {
		name   string
		step   int
		mutate func(*model.CreateCommunityRequest)
		want   []string
	}{
		{"valid basic info", StepBasicInfo, func(r *model.CreateCommunityRequest) {}, nil},
		{"missing name", StepBasicInfo, func(r *model.CreateCommunityRequest) { r.Name = "" }, []string{"name"}},
		{"missing description", StepBasicInfo, func(r *model.CreateCommunityRequest) { r.Description = " " }, []string{"description"}},
		{"long symbol", StepTokenSettings, func(r *model.CreateCommunityRequest) { r.TokenSymbol = "ABCDEFGHIJK" }, []string{"tokenSymbol"}},
		{"symbol punctuation", StepTokenSettings, func(r *model.CreateCommunityRequest) { r.TokenSymbol = "BL-D" }, []string{"tokenSymbol"}},
		{"zero supply", StepTokenSettings, func(r *model.CreateCommunityRequest) { r.InitialSupply = 0 }, []string{"initialSupply"}},
		{"supply over max", StepTokenSettings, func(r *model.CreateCommunityRequest) { r.InitialSupply = MaxSupply + 1 }, []string{"initialSupply"}},
		{"zero decimals allowed", StepTokenSettings, func(r *model.CreateCommunityRequest) { r.Decimals = &zero }, nil},
		{"too many decimals", StepTokenSettings, func(r *model.CreateCommunityRequest) { r.Decimals = &tooMany }, []string{"decimals"}},
		{"voting period", StepGovernance, func(r *model.CreateCommunityRequest) { r.Settings.VotingPeriod = &days31 }, []string{"settings.votingPeriod"}},
		{"explicit zero voting period", StepGovernance, func(r *model.CreateCommunityRequest) { r.Settings.VotingPeriod = &zero }, []string{"settings.votingPeriod"}},
		{"quorum", StepGovernance, func(r *model.CreateCommunityRequest) { r.Settings.QuorumPercentage = &quorum4 }, []string{"settings.quorumPercentage"}},
		{"explicit zero quorum", StepGovernance, func(r *model.CreateCommunityRequest) { r.Settings.QuorumPercentage = &zero }, []string{"settings.quorumPercentage"}},
		{"threshold above supply", StepGovernance, func(r *model.CreateCommunityRequest) { r.Settings.ProposalThreshold = 2_000_000 }, []string{"settings.proposalThreshold"}},
		{"negative threshold", StepGovernance, func(r *model.CreateCommunityRequest) { r.Settings.ProposalThreshold = -1 }, []string{"settings.proposalThreshold"}},
		{"incomplete plan", StepDistribution, func(r *model.CreateCommunityRequest) { r.Distribution[2].Percentage = 20 }, []string{"distribution"}},
		{"bad wallet", StepDistribution, func(r *model.CreateCommunityRequest) { r.Distribution[1].Wallet = "GBAD" }, []string{"distribution[1].wallet"}},
		{"unknown bucket", StepDistribution, func(r *model.CreateCommunityRequest) { r.Distribution[2].Name = "Advisors" }, []string{"distribution"}},
		{"duplicate bucket", StepDistribution, func(r *model.CreateCommunityRequest) { r.Distribution[2].Name = "treasury" }, []string{"distribution"}},
		{"no buckets", StepDistribution, func(r *model.CreateCommunityRequest) { r.Distribution = nil }, []string{"distribution"}},
		{"review collects all", StepReview, func(r *model.CreateCommunityRequest) {
			r.Name = ""
			r.Distribution[0].Percentage = 60
		}, []string{"name", "distribution"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)
			Normalize(&req)

			fields, err := ValidateStep(tt.step, &req)
			require.NoError(t, err)
			if tt.want == nil {
				assert.Empty(t, fields)
				return
			}
			assert.Equal(t, tt.want, fieldNames(fields))
		})
	}
}

func TestValidateStepUnknown(t *testing.T) {
	req := validRequest()
	_, err := ValidateStep(6, &req)
	require.ErrorIs(t, err, ErrUnknownStep)
	assert.Equal(t, "", StepName(0))
	assert.Equal(t, "Distribution", StepName(StepDistribution))
}

func TestValidate(t *testing.T) {
	req := validRequest()
	Normalize(&req)
	require.NoError(t, Validate(&req))

	req.TokenName = ""
	err := Validate(&req)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, err.Error(), "tokenName")
}
