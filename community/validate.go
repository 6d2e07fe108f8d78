package community

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/AlexZinkM/token-communities/internal/common"
	"github.com/AlexZinkM/token-communities/internal/distribution"
	"github.com/AlexZinkM/token-communities/internal/model"
	"github.com/AlexZinkM/token-communities/internal/registry"
)

const (
	MaxSupply          = 1_000_000_000
	MaxSymbolLength    = 10
	MinVotingPeriod    = 1 // days
	MaxVotingPeriod    = 30
	MinQuorum          = 5 // percent
	MaxQuorum          = 100
	defaultVotingDays  = 7
	defaultQuorum      = 20
	maxNameLength      = 100
	maxDescriptionSize = 2000
)

// Wizard steps
const (
	StepBasicInfo = iota + 1
	StepTokenSettings
	StepGovernance
	StepDistribution
	StepReview
)

// StepNames are indexed by step number minus one
var StepNames = []string{"Basic Info", "Token Settings", "Governance", "Distribution", "Review"}

var defaultCategories = []string{"general", "treasury", "governance"}

var symbolPattern = regexp.MustCompile(`^[A-Z0-9]+$`)

// ErrUnknownStep is returned for step numbers outside 1..5
var ErrUnknownStep = fmt.Errorf("step must be between %d and %d", StepBasicInfo, StepReview)

// ValidationError carries field-level messages that block progression
type ValidationError struct {
	Step   int
	Fields []model.FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// StepName returns the display name of a step
func StepName(step int) string {
	if step < StepBasicInfo || step > StepReview {
		return ""
	}
	return StepNames[step-1]
}

// Normalize trims text fields, upper-cases the symbol and fills defaults
func Normalize(req *model.CreateCommunityRequest) {
	req.Name = strings.TrimSpace(req.Name)
	req.Description = strings.TrimSpace(req.Description)
	req.TokenName = strings.TrimSpace(req.TokenName)
	req.TokenSymbol = strings.ToUpper(strings.TrimSpace(req.TokenSymbol))
	if req.Decimals == nil {
		d := common.DefaultDecimals
		req.Decimals = &d
	}
	if req.Settings.VotingPeriod == nil {
		days := defaultVotingDays
		req.Settings.VotingPeriod = &days
	}
	if req.Settings.QuorumPercentage == nil {
		quorum := defaultQuorum
		req.Settings.QuorumPercentage = &quorum
	}
	if req.Settings.Categories == nil {
		req.Settings.Categories = append([]string(nil), defaultCategories...)
	}
	for i := range req.Distribution {
		req.Distribution[i].Name = strings.TrimSpace(req.Distribution[i].Name)
		req.Distribution[i].Wallet = strings.TrimSpace(req.Distribution[i].Wallet)
	}
}

// ValidateStep returns the field errors of one wizard step; Review checks
// every step. req should be normalized first.
func ValidateStep(step int, req *model.CreateCommunityRequest) ([]model.FieldError, error) {
	var v validator
	switch step {
	case StepBasicInfo:
		v.basicInfo(req)
	case StepTokenSettings:
		v.tokenSettings(req)
	case StepGovernance:
		v.governance(req)
	case StepDistribution:
		v.distribution(req)
	case StepReview:
		v.basicInfo(req)
		v.tokenSettings(req)
		v.governance(req)
		v.distribution(req)
	default:
		return nil, ErrUnknownStep
	}
	return v.fields, nil
}

// Validate checks the whole request and returns a *ValidationError on failure
func Validate(req *model.CreateCommunityRequest) error {
	fields, err := ValidateStep(StepReview, req)
	if err != nil {
		return err
	}
	if len(fields) > 0 {
		return &ValidationError{Step: StepReview, Fields: fields}
	}
	return nil
}

type validator struct {
	fields []model.FieldError
}

func (v *validator) add(field, format string, args ...any) {
	v.fields = append(v.fields, model.FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

func (v *validator) basicInfo(req *model.CreateCommunityRequest) {
	switch {
	case req.Name == "":
		v.add("name", "community name is required")
	case len(req.Name) > maxNameLength:
		v.add("name", "community name must be at most %d characters", maxNameLength)
	}
	switch {
	case req.Description == "":
		v.add("description", "description is required")
	case len(req.Description) > maxDescriptionSize:
		v.add("description", "description must be at most %d characters", maxDescriptionSize)
	}
}

func (v *validator) tokenSettings(req *model.CreateCommunityRequest) {
	if req.TokenName == "" {
		v.add("tokenName", "token name is required")
	}
	switch {
	case req.TokenSymbol == "":
		v.add("tokenSymbol", "token symbol is required")
	case len(req.TokenSymbol) > MaxSymbolLength:
		v.add("tokenSymbol", "token symbol must be at most %d characters", MaxSymbolLength)
	case !symbolPattern.MatchString(req.TokenSymbol):
		v.add("tokenSymbol", "token symbol may contain only A-Z and 0-9")
	}
	if req.InitialSupply < 1 || req.InitialSupply > MaxSupply {
		v.add("initialSupply", "initial supply must be between 1 and %d", MaxSupply)
	}
	if req.Decimals != nil && (*req.Decimals < 0 || *req.Decimals > common.MaxDecimals) {
		v.add("decimals", "decimals must be between 0 and %d", common.MaxDecimals)
	}
}

func (v *validator) governance(req *model.CreateCommunityRequest) {
	s := req.Settings
	if s.VotingPeriod == nil || *s.VotingPeriod < MinVotingPeriod || *s.VotingPeriod > MaxVotingPeriod {
		v.add("settings.votingPeriod", "voting period must be between %d and %d days", MinVotingPeriod, MaxVotingPeriod)
	}
	if s.QuorumPercentage == nil || *s.QuorumPercentage < MinQuorum || *s.QuorumPercentage > MaxQuorum {
		v.add("settings.quorumPercentage", "quorum must be between %d%% and %d%%", MinQuorum, MaxQuorum)
	}
	switch {
	case s.ProposalThreshold < 0:
		v.add("settings.proposalThreshold", "proposal threshold cannot be negative")
	case req.InitialSupply > 0 && s.ProposalThreshold > req.InitialSupply:
		v.add("settings.proposalThreshold", "proposal threshold cannot exceed the initial supply")
	}
}

func (v *validator) distribution(req *model.CreateCommunityRequest) {
	buckets := req.Distribution
	if len(buckets) == 0 {
		v.add("distribution", "distribution is required")
		return
	}

	if err := distribution.ValidateBuckets(buckets); err != nil {
		v.add("distribution", "%s", bucketMessage(err))
		return
	}
	if _, _, _, err := registry.CanonicalBuckets(buckets); err != nil {
		v.add("distribution", "%s", err.Error())
	}
	if !distribution.IsCompletePlan(buckets) {
		v.add("distribution", "total allocation must equal 100%% (currently %d%%)", distribution.SumPercentages(buckets))
	}

	check := distribution.ValidateDistributionWallets(buckets)
	if check.Valid {
		return
	}
	invalid := make(map[string]bool, len(check.InvalidBucketNames))
	for _, name := range check.InvalidBucketNames {
		invalid[name] = true
	}
	for i, b := range buckets {
		if invalid[b.Name] {
			v.add(fmt.Sprintf("distribution[%d].wallet", i), "%s wallet must be a valid Stellar address", b.Name)
		}
	}
}

func bucketMessage(err error) string {
	if errors.Is(err, distribution.ErrInvalidPercentage) {
		return "each allocation must be between 0% and 100%"
	}
	return err.Error()
}
