package registry

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/AlexZinkM/token-communities/internal/client"
	"github.com/AlexZinkM/token-communities/internal/common"
	"github.com/AlexZinkM/token-communities/internal/model"

	"github.com/holiman/uint256"
	"go.uber.org/zap"
)

// Backend is the REST surface of the contract backend
type Backend interface {
	DeployCommunityToken(ctx context.Context, req model.DeployTokenRequest) (*model.DeployTokenResponse, error)
	ContractInfo(ctx context.Context, contractID string) (*model.TokenData, error)
	TokenBalance(ctx context.Context, contractID, address string) (string, error)
	PrepareTransfer(ctx context.Context, contractID string, req model.PrepareTransferRequest) (string, error)
	SubmitTransaction(ctx context.Context, envelope string) (string, error)
	DeploymentStatus(ctx context.Context, deploymentID string) (*model.DeploymentStatusResponse, error)
	Health(ctx context.Context) (*model.HealthResponse, error)
}

// Network reports ledger status; nil disables network checks
type Network interface {
	GetHealth(ctx context.Context) (*client.SorobanHealth, error)
}

// HTTP is the registry backed by the contract backend
type HTTP struct {
	backend Backend
	network Network
	logger  *zap.Logger
}

// NewHTTP creates a registry over backend; network may be nil
func NewHTTP(backend Backend, network Network, logger *zap.Logger) *HTTP {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTP{backend: backend, network: network, logger: logger}
}

// Deploy sends a deployment to the backend
func (h *HTTP) Deploy(ctx context.Context, req DeployRequest) (*DeployResult, error) {
	treasury, founder, community, err := CanonicalBuckets(req.Buckets)
	if err != nil {
		return nil, err
	}

	resp, err := h.backend.DeployCommunityToken(ctx, model.DeployTokenRequest{
		TokenName:           req.TokenName,
		TokenSymbol:         req.TokenSymbol,
		Decimals:            req.Decimals,
		TotalSupply:         strconv.FormatInt(req.TotalSupply, 10),
		AdminAddress:        req.Admin,
		CommunityName:       req.CommunityName,
		Description:         req.Description,
		TreasuryAllocation:  treasury.Percentage,
		FounderAllocation:   founder.Percentage,
		CommunityAllocation: community.Percentage,
		TreasuryWallet:      treasury.Wallet,
		FounderWallet:       founder.Wallet,
		CommunityWallet:     community.Wallet,
	})
	if err != nil {
		return nil, err
	}

	h.logger.Info("token deployed",
		zap.String("contractId", resp.ContractID),
		zap.String("transactionHash", resp.TransactionHash))
	return &DeployResult{ContractID: resp.ContractID, TransactionHash: resp.TransactionHash}, nil
}

// TokenInfo gets token metadata from the backend
func (h *HTTP) TokenInfo(ctx context.Context, contractID string) (*TokenInfo, error) {
	if err := checkContractID(contractID); err != nil {
		return nil, err
	}
	data, err := h.backend.ContractInfo(ctx, contractID)
	if err != nil {
		return nil, err
	}

	name := data.Name
	if name == "" {
		name = data.TokenName
	}
	symbol := data.Symbol
	if symbol == "" {
		symbol = data.TokenSymbol
	}
	supply := new(uint256.Int)
	if data.TotalSupply != "" {
		// backend reports supply in whole tokens
		if supply, err = common.ParseUnits(data.TotalSupply, data.Decimals); err != nil {
			return nil, fmt.Errorf("invalid total supply %q: %w", data.TotalSupply, err)
		}
	}
	return &TokenInfo{
		ContractID:  contractID,
		Name:        name,
		Symbol:      symbol,
		Decimals:    data.Decimals,
		TotalSupply: supply,
	}, nil
}

// Balance gets the holder's balance in minor units
func (h *HTTP) Balance(ctx context.Context, contractID, address string) (*uint256.Int, error) {
	if err := checkContractID(contractID); err != nil {
		return nil, err
	}
	raw, err := h.backend.TokenBalance(ctx, contractID, address)
	if err != nil {
		return nil, err
	}
	balance, err := uint256.FromDecimal(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid balance %q: %w", raw, err)
	}
	return balance, nil
}

// Transfer prepares a transfer on the backend and submits the returned
// envelope. The backend signs for custodial accounts.
func (h *HTTP) Transfer(ctx context.Context, contractID, from, to string, amount *uint256.Int) (string, error) {
	if err := checkContractID(contractID); err != nil {
		return "", err
	}
	if amount == nil || amount.IsZero() {
		return "", errors.New("transfer amount must be positive")
	}

	envelope, err := h.backend.PrepareTransfer(ctx, contractID, model.PrepareTransferRequest{
		From:   from,
		To:     to,
		Amount: amount.Dec(),
	})
	if err != nil {
		return "", err
	}
	return h.backend.SubmitTransaction(ctx, envelope)
}

// Burn is not offered by the backend: it prepares transfers only
func (h *HTTP) Burn(ctx context.Context, contractID, from string, amount *uint256.Int) (string, error) {
	if err := checkContractID(contractID); err != nil {
		return "", err
	}
	return "", fmt.Errorf("burn: %w", ErrUnsupported)
}

// Approve is not offered by the backend
func (h *HTTP) Approve(ctx context.Context, contractID, owner, spender string, amount *uint256.Int) (string, error) {
	if err := checkContractID(contractID); err != nil {
		return "", err
	}
	return "", fmt.Errorf("approve: %w", ErrUnsupported)
}

// Allowance is not offered by the backend
func (h *HTTP) Allowance(ctx context.Context, contractID, owner, spender string) (*uint256.Int, error) {
	if err := checkContractID(contractID); err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("allowance: %w", ErrUnsupported)
}

// DeploymentStatus asks the backend for the progress of a deployment
func (h *HTTP) DeploymentStatus(ctx context.Context, deploymentID string) (*DeploymentStatus, error) {
	if strings.TrimSpace(deploymentID) == "" {
		return nil, ErrUnknownDeployment
	}
	resp, err := h.backend.DeploymentStatus(ctx, deploymentID)
	if err != nil {
		return nil, err
	}
	return &DeploymentStatus{
		ID:         deploymentID,
		Status:     resp.Status,
		Progress:   resp.Progress,
		Message:    resp.Message,
		ContractID: resp.ContractID,
	}, nil
}

// Health combines backend health and, when configured, Soroban RPC health
func (h *HTTP) Health(ctx context.Context) (*Health, error) {
	out := &Health{}

	resp, err := h.backend.Health(ctx)
	if err != nil {
		h.logger.Warn("backend health check failed", zap.Error(err))
		out.Status = "backend unreachable"
	} else {
		out.Backend = resp.Success
		out.Status = resp.Status
		out.Network = resp.Stellar
	}

	if h.network != nil {
		nh, err := h.network.GetHealth(ctx)
		if err != nil {
			h.logger.Warn("network health check failed", zap.Error(err))
			out.Network = false
		} else {
			out.Network = nh.Status == "healthy"
			out.LatestLedger = nh.LatestLedger
		}
	}
	return out, nil
}
