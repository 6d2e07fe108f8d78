package registry

import (
	"context"
	"errors"

	"github.com/AlexZinkM/token-communities/internal/client"

	"github.com/holiman/uint256"
	"go.uber.org/zap"
)

// Fallback deploys through primary and, when that fails, on the in-memory
// ledger instead. Token operations on contracts the ledger created stay on it.
type Fallback struct {
	primary Registry
	mock    *Fake
	logger  *zap.Logger
}

// NewFallback wraps primary with mock deployment on failure
func NewFallback(primary Registry, mock *Fake, logger *zap.Logger) *Fallback {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fallback{primary: primary, mock: mock, logger: logger}
}

func (f *Fallback) route(contractID string) Registry {
	if f.mock.Has(contractID) {
		return f.mock
	}
	return f.primary
}

// Deploy tries primary first. Only an unreachable or failing backend falls
// back: a deployment the backend answered and refused is returned as is.
func (f *Fallback) Deploy(ctx context.Context, req DeployRequest) (*DeployResult, error) {
	res, err := f.primary.Deploy(ctx, req)
	if err == nil {
		return res, nil
	}
	if errors.Is(err, ErrMissingBucket) || errors.Is(err, client.ErrBackend) || ctx.Err() != nil {
		return nil, err
	}

	f.logger.Warn("deployment failed, falling back to mock deployment", zap.Error(err))
	return f.mock.Deploy(ctx, req)
}

func (f *Fallback) TokenInfo(ctx context.Context, contractID string) (*TokenInfo, error) {
	return f.route(contractID).TokenInfo(ctx, contractID)
}

func (f *Fallback) Balance(ctx context.Context, contractID, address string) (*uint256.Int, error) {
	return f.route(contractID).Balance(ctx, contractID, address)
}

func (f *Fallback) Transfer(ctx context.Context, contractID, from, to string, amount *uint256.Int) (string, error) {
	return f.route(contractID).Transfer(ctx, contractID, from, to, amount)
}

func (f *Fallback) Burn(ctx context.Context, contractID, from string, amount *uint256.Int) (string, error) {
	return f.route(contractID).Burn(ctx, contractID, from, amount)
}

func (f *Fallback) Approve(ctx context.Context, contractID, owner, spender string, amount *uint256.Int) (string, error) {
	return f.route(contractID).Approve(ctx, contractID, owner, spender, amount)
}

func (f *Fallback) Allowance(ctx context.Context, contractID, owner, spender string) (*uint256.Int, error) {
	return f.route(contractID).Allowance(ctx, contractID, owner, spender)
}

// DeploymentStatus answers mock deployments locally and asks primary otherwise
func (f *Fallback) DeploymentStatus(ctx context.Context, deploymentID string) (*DeploymentStatus, error) {
	return f.route(deploymentID).DeploymentStatus(ctx, deploymentID)
}

// Health reports the primary's health
func (f *Fallback) Health(ctx context.Context) (*Health, error) {
	return f.primary.Health(ctx)
}
