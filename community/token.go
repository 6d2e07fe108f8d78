package community

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/AlexZinkM/token-communities/internal/common"
	"github.com/AlexZinkM/token-communities/internal/distribution"
	"github.com/AlexZinkM/token-communities/internal/events"
	"github.com/AlexZinkM/token-communities/internal/model"
	"github.com/AlexZinkM/token-communities/internal/registry"
	"github.com/AlexZinkM/token-communities/internal/store"
	"github.com/AlexZinkM/token-communities/internal/wallet"

	"github.com/holiman/uint256"
	"go.uber.org/zap"
)

// parseAmount reads a decimal token amount into minor units
func parseAmount(raw string, decimals int, allowZero bool) (*uint256.Int, error) {
	amount, err := common.ParseUnits(raw, decimals)
	if err != nil {
		return nil, &ValidationError{Fields: []model.FieldError{{Field: "amount", Message: err.Error()}}}
	}
	if !allowZero && amount.IsZero() {
		return nil, &ValidationError{Fields: []model.FieldError{{Field: "amount", Message: "amount must be greater than zero"}}}
	}
	return amount, nil
}

// decimals looks the token up locally first, then asks the registry
func (s *Service) decimals(ctx context.Context, contractID string) (int, error) {
	c, err := s.store.GetCommunity(contractID)
	if err == nil {
		return c.Decimals, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return 0, err
	}
	info, err := s.registry.TokenInfo(ctx, contractID)
	if err != nil {
		return 0, err
	}
	return info.Decimals, nil
}

// Balance returns the token balance of address
func (s *Service) Balance(ctx context.Context, contractID, address string) (*model.TokenBalanceResponse, error) {
	if strings.TrimSpace(contractID) == "" {
		return nil, registry.ErrNoContract
	}
	if !distribution.IsValidAddress(address) {
		return nil, ErrInvalidAddress
	}

	decimals, err := s.decimals(ctx, contractID)
	if err != nil {
		return nil, err
	}
	units, err := s.registry.Balance(ctx, contractID, address)
	if err != nil {
		return nil, fmt.Errorf("failed to get balance: %w", err)
	}

	return &model.TokenBalanceResponse{
		ContractID: contractID,
		Address:    address,
		Balance:    common.FormatUnits(units, decimals),
		Display:    common.FormatDisplay(units, decimals),
	}, nil
}

// Transfer sends tokens from the connected wallet
func (s *Service) Transfer(ctx context.Context, contractID string, req model.TransferRequest) (*model.TransferResponse, error) {
	if strings.TrimSpace(contractID) == "" {
		return nil, registry.ErrNoContract
	}
	session := s.session.Snapshot()
	if !session.IsConnected() {
		return nil, ErrWalletNotConnected
	}
	to := strings.TrimSpace(req.ToAddress)
	if !distribution.IsValidAddress(to) {
		return nil, ErrInvalidAddress
	}

	decimals, err := s.decimals(ctx, contractID)
	if err != nil {
		return nil, err
	}
	amount, err := parseAmount(req.Amount, decimals, false)
	if err != nil {
		return nil, err
	}

	s.transferMu.Lock()
	defer s.transferMu.Unlock()

	txHash, err := s.registry.Transfer(ctx, contractID, session.Address, to, amount)
	if err != nil {
		return nil, fmt.Errorf("failed to transfer tokens: %w", err)
	}

	resp := &model.TransferResponse{
		TransactionHash: txHash,
		From:            session.Address,
		To:              to,
		Amount:          common.FormatUnits(amount, decimals),
	}
	s.logger.Info("tokens transferred",
		zap.String("contractId", contractID),
		zap.String("to", to),
		zap.String("amount", resp.Amount),
		zap.String("transactionHash", txHash))
	s.publish(events.TokenTransferred, resp)
	return resp, nil
}

// RefreshSessionBalance loads the connected wallet's balance of contractID
// into the session
func (s *Service) RefreshSessionBalance(ctx context.Context, contractID string) (wallet.State, error) {
	session := s.session.Snapshot()
	if !session.IsConnected() {
		return session, ErrWalletNotConnected
	}
	if strings.TrimSpace(contractID) == "" {
		return session, registry.ErrNoContract
	}

	decimals, err := s.decimals(ctx, contractID)
	if err != nil {
		return session, err
	}
	units, err := s.registry.Balance(ctx, contractID, session.Address)
	if err != nil {
		return session, fmt.Errorf("failed to get balance: %w", err)
	}

	// the session balance is a display number; precision beyond float64 is not needed there
	balance, err := strconv.ParseFloat(common.FormatUnits(units, decimals), 64)
	if err != nil {
		return session, fmt.Errorf("failed to convert balance: %w", err)
	}
	s.session.SetBalance(balance)
	return s.session.Snapshot(), nil
}

// Burn destroys tokens held by the connected wallet. The lower supply is
// written back to the stored community when there is one.
func (s *Service) Burn(ctx context.Context, contractID string, req model.BurnRequest) (*model.BurnResponse, error) {
	if strings.TrimSpace(contractID) == "" {
		return nil, registry.ErrNoContract
	}
	session := s.session.Snapshot()
	if !session.IsConnected() {
		return nil, ErrWalletNotConnected
	}

	decimals, err := s.decimals(ctx, contractID)
	if err != nil {
		return nil, err
	}
	amount, err := parseAmount(req.Amount, decimals, false)
	if err != nil {
		return nil, err
	}

	s.transferMu.Lock()
	defer s.transferMu.Unlock()

	txHash, err := s.registry.Burn(ctx, contractID, session.Address, amount)
	if err != nil {
		return nil, fmt.Errorf("failed to burn tokens: %w", err)
	}

	resp := &model.BurnResponse{
		TransactionHash: txHash,
		From:            session.Address,
		Amount:          common.FormatUnits(amount, decimals),
	}
	if info, err := s.registry.TokenInfo(ctx, contractID); err != nil {
		s.logger.Warn("tokens burned but supply not refreshed", zap.String("contractId", contractID), zap.Error(err))
	} else {
		resp.TotalSupply = common.FormatUnits(info.TotalSupply, decimals)
		s.recordSupply(contractID, resp.TotalSupply)
	}

	s.logger.Info("tokens burned",
		zap.String("contractId", contractID),
		zap.String("amount", resp.Amount),
		zap.String("transactionHash", txHash))
	s.publish(events.TokensBurned, resp)
	return resp, nil
}

func (s *Service) recordSupply(contractID, supply string) {
	c, err := s.store.GetCommunity(contractID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			s.logger.Warn("failed to load community", zap.String("contractId", contractID), zap.Error(err))
		}
		return
	}
	c.TotalSupply = supply
	c.UpdatedAt = s.now().UTC()
	if err := s.store.SaveCommunity(c); err != nil {
		s.logger.Error("failed to save community supply", zap.String("contractId", contractID), zap.Error(err))
	}
}

// ApproveGovernanceSpending lets spender, usually the governance contract,
// move up to amount of the connected wallet's tokens. Zero revokes.
func (s *Service) ApproveGovernanceSpending(ctx context.Context, contractID string, req model.ApproveRequest) (*model.ApproveResponse, error) {
	if strings.TrimSpace(contractID) == "" {
		return nil, registry.ErrNoContract
	}
	session := s.session.Snapshot()
	if !session.IsConnected() {
		return nil, ErrWalletNotConnected
	}
	spender := strings.TrimSpace(req.Spender)
	if !distribution.IsValidContractID(spender) && !distribution.IsValidAddress(spender) {
		return nil, ErrInvalidAddress
	}

	decimals, err := s.decimals(ctx, contractID)
	if err != nil {
		return nil, err
	}
	amount, err := parseAmount(req.Amount, decimals, true)
	if err != nil {
		return nil, err
	}

	txHash, err := s.registry.Approve(ctx, contractID, session.Address, spender, amount)
	if err != nil {
		return nil, fmt.Errorf("failed to approve spending: %w", err)
	}

	resp := &model.ApproveResponse{
		TransactionHash: txHash,
		Owner:           session.Address,
		Spender:         spender,
		Amount:          common.FormatUnits(amount, decimals),
	}
	s.logger.Info("spending approved",
		zap.String("contractId", contractID),
		zap.String("spender", spender),
		zap.String("amount", resp.Amount))
	s.publish(events.SpendingApproved, resp)
	return resp, nil
}

// Allowance returns how much spender may still move out of owner's balance
func (s *Service) Allowance(ctx context.Context, contractID, owner, spender string) (*model.AllowanceResponse, error) {
	if strings.TrimSpace(contractID) == "" {
		return nil, registry.ErrNoContract
	}
	if !distribution.IsValidAddress(owner) {
		return nil, ErrInvalidAddress
	}
	if !distribution.IsValidContractID(spender) && !distribution.IsValidAddress(spender) {
		return nil, ErrInvalidAddress
	}

	decimals, err := s.decimals(ctx, contractID)
	if err != nil {
		return nil, err
	}
	units, err := s.registry.Allowance(ctx, contractID, owner, spender)
	if err != nil {
		return nil, fmt.Errorf("failed to get allowance: %w", err)
	}

	return &model.AllowanceResponse{
		ContractID: contractID,
		Owner:      owner,
		Spender:    spender,
		Allowance:  common.FormatUnits(units, decimals),
		Display:    common.FormatDisplay(units, decimals),
	}, nil
}

// DeploymentStatus reports the progress of a token deployment
func (s *Service) DeploymentStatus(ctx context.Context, deploymentID string) (*model.DeploymentStatus, error) {
	if strings.TrimSpace(deploymentID) == "" {
		return nil, registry.ErrUnknownDeployment
	}
	st, err := s.registry.DeploymentStatus(ctx, deploymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get deployment status: %w", err)
	}
	return &model.DeploymentStatus{
		DeploymentID: st.ID,
		Status:       st.Status,
		Progress:     st.Progress,
		Message:      st.Message,
		ContractID:   st.ContractID,
	}, nil
}
