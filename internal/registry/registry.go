// Package registry deploys community tokens and answers token queries, either
// against the contract backend or an in-memory ledger.
package registry

import (
	"context"
	"errors"
	"strings"

	"github.com/AlexZinkM/token-communities/internal/distribution"

	"github.com/holiman/uint256"
)

var (
	// ErrNoContract is returned for token operations on an unknown or empty contract ID
	ErrNoContract = errors.New("no contract deployed")
	// ErrInsufficientBalance is returned when a transfer exceeds the sender's balance
	ErrInsufficientBalance = errors.New("insufficient token balance")
	// ErrMissingBucket is returned when a deployment lacks one of the canonical buckets
	ErrMissingBucket = errors.New("distribution must contain treasury, founder and community buckets")
	// ErrUnsupported is returned for operations the contract backend has no endpoint for
	ErrUnsupported = errors.New("operation not supported by the contract backend")
	// ErrUnknownDeployment is returned when no deployment is tracked under an ID
	ErrUnknownDeployment = errors.New("unknown deployment")
)

// Bucket names the backend contract allocates to
const (
	BucketTreasury  = "Treasury"
	BucketFounder   = "Founder"
	BucketCommunity = "Community"
)

// DeployRequest describes a token to deploy
type DeployRequest struct {
	CommunityName string
	Description   string
	TokenName     string
	TokenSymbol   string
	Decimals      int
	TotalSupply   int64 // whole tokens
	Admin         string
	Buckets       []distribution.Bucket
}

// DeployResult is the outcome of a deployment. Mock is set when the contract
// only exists in the in-memory ledger.
type DeployResult struct {
	ContractID      string
	TransactionHash string
	Mock            bool
}

// TokenInfo is token metadata
type TokenInfo struct {
	ContractID  string
	Name        string
	Symbol      string
	Decimals    int
	TotalSupply *uint256.Int // minor units
}

// Deployment progress states reported by DeploymentStatus
const (
	DeploymentPending      = "pending"
	DeploymentUploading    = "uploading"
	DeploymentDeploying    = "deploying"
	DeploymentInitializing = "initializing"
	DeploymentCompleted    = "completed"
	DeploymentFailed       = "failed"
)

// DeploymentStatus tracks a deployment; Progress is 0..100
type DeploymentStatus struct {
	ID         string
	Status     string
	Progress   int
	Message    string
	ContractID string
}

// Health reports reachability of the backend and the network
type Health struct {
	Backend      bool
	Network      bool
	Status       string
	LatestLedger uint32
}

// Registry is the token contract surface used by the community service
type Registry interface {
	Deploy(ctx context.Context, req DeployRequest) (*DeployResult, error)
	TokenInfo(ctx context.Context, contractID string) (*TokenInfo, error)
	// Balance returns minor units
	Balance(ctx context.Context, contractID, address string) (*uint256.Int, error)
	// Transfer moves amount minor units and returns the transaction hash
	Transfer(ctx context.Context, contractID, from, to string, amount *uint256.Int) (string, error)
	// Burn destroys amount minor units held by from, lowering the total supply
	Burn(ctx context.Context, contractID, from string, amount *uint256.Int) (string, error)
	// Approve sets how many minor units spender may move out of owner's balance
	Approve(ctx context.Context, contractID, owner, spender string, amount *uint256.Int) (string, error)
	Allowance(ctx context.Context, contractID, owner, spender string) (*uint256.Int, error)
	DeploymentStatus(ctx context.Context, deploymentID string) (*DeploymentStatus, error)
	Health(ctx context.Context) (*Health, error)
}

// CanonicalBuckets picks the treasury, founder and community buckets by name,
// case-insensitively.
func CanonicalBuckets(buckets []distribution.Bucket) (treasury, founder, community distribution.Bucket, err error) {
	found := 0
	for _, b := range buckets {
		switch {
		case strings.EqualFold(b.Name, BucketTreasury):
			treasury = b
		case strings.EqualFold(b.Name, BucketFounder):
			founder = b
		case strings.EqualFold(b.Name, BucketCommunity):
			community = b
		default:
			return treasury, founder, community, ErrMissingBucket
		}
		found++
	}
	if found != 3 || treasury.Name == "" || founder.Name == "" || community.Name == "" {
		return treasury, founder, community, ErrMissingBucket
	}
	return treasury, founder, community, nil
}

func checkContractID(contractID string) error {
	if strings.TrimSpace(contractID) == "" {
		return ErrNoContract
	}
	return nil
}
