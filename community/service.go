// Package community creates token communities and runs token operations for
// the connected wallet.
package community

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/AlexZinkM/token-communities/internal/common"
	"github.com/AlexZinkM/token-communities/internal/distribution"
	"github.com/AlexZinkM/token-communities/internal/events"
	"github.com/AlexZinkM/token-communities/internal/model"
	"github.com/AlexZinkM/token-communities/internal/registry"
	"github.com/AlexZinkM/token-communities/internal/wallet"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
	"go.uber.org/zap"
)

var (
	// ErrWalletNotConnected is returned when an operation needs a connected wallet
	ErrWalletNotConnected = errors.New("please connect your wallet to continue")
	// ErrInvalidAddress is returned for malformed account addresses
	ErrInvalidAddress = errors.New("invalid Stellar address")
)

// Store persists community records
type Store interface {
	SaveCommunity(c *model.Community) error
	GetCommunity(contractID string) (*model.Community, error)
	ListCommunities() ([]model.Community, error)
}

// Publisher receives change notifications
type Publisher interface {
	Publish(eventType string, data any)
}

// Service is the community application service
type Service struct {
	registry registry.Registry
	store    Store
	session  *wallet.Session
	events   Publisher
	logger   *zap.Logger
	now      func() time.Time

	// one token transfer at a time from the session wallet
	transferMu sync.Mutex
}

// NewService creates a community service; events and logger may be nil
func NewService(reg registry.Registry, store Store, session *wallet.Session, pub Publisher, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		registry: reg,
		store:    store,
		session:  session,
		events:   pub,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *Service) publish(eventType string, data any) {
	if s.events != nil {
		s.events.Publish(eventType, data)
	}
}

// Create validates the request, deploys the token with the connected wallet
// as admin and stores the community under its contract ID.
func (s *Service) Create(ctx context.Context, req model.CreateCommunityRequest) (*model.Community, error) {
	session := s.session.Snapshot()
	if !session.IsConnected() {
		return nil, ErrWalletNotConnected
	}

	Normalize(&req)
	if err := Validate(&req); err != nil {
		return nil, err
	}
	decimals := *req.Decimals

	plan, err := distribution.Calculate(req.InitialSupply, decimals, req.Distribution)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate distribution: %w", err)
	}

	res, err := s.registry.Deploy(ctx, registry.DeployRequest{
		CommunityName: req.Name,
		Description:   req.Description,
		TokenName:     req.TokenName,
		TokenSymbol:   req.TokenSymbol,
		Decimals:      decimals,
		TotalSupply:   req.InitialSupply,
		Admin:         session.Address,
		Buckets:       req.Distribution,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to deploy token: %w", err)
	}

	qr, err := generateQRCode(res.ContractID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	c := &model.Community{
		ID:              uuid.NewString(),
		ContractID:      res.ContractID,
		TransactionHash: res.TransactionHash,
		Mock:            res.Mock,
		Name:            req.Name,
		Description:     req.Description,
		TokenName:       req.TokenName,
		TokenSymbol:     req.TokenSymbol,
		Decimals:        decimals,
		TotalSupply:     common.FormatUnits(plan.TotalUnits(), decimals),
		Creator:         session.Address,
		Network:         string(session.Network),
		Settings:        req.Settings,
		Distribution:    Allocations(plan),
		QR:              qr,
		MemberCount:     memberCount(session.Address, req.Distribution),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.store.SaveCommunity(c); err != nil {
		s.logger.Error("token deployed but community not saved",
			zap.String("contractId", c.ContractID), zap.Error(err))
		return nil, fmt.Errorf("failed to save community: %w", err)
	}

	s.logger.Info("community created",
		zap.String("id", c.ID),
		zap.String("contractId", c.ContractID),
		zap.Bool("mock", c.Mock))
	s.publish(events.CommunityCreated, c)
	return c, nil
}

// Get returns the community stored under contractID
func (s *Service) Get(contractID string) (*model.Community, error) {
	if contractID == "" {
		return nil, registry.ErrNoContract
	}
	return s.store.GetCommunity(contractID)
}

// List returns summaries newest first; IsOwner is relative to the connected wallet
func (s *Service) List() ([]model.CommunitySummary, error) {
	list, err := s.store.ListCommunities()
	if err != nil {
		return nil, fmt.Errorf("failed to list communities: %w", err)
	}

	sort.SliceStable(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})

	session := s.session.Snapshot()
	now := s.now()
	out := make([]model.CommunitySummary, 0, len(list))
	for _, c := range list {
		out = append(out, model.CommunitySummary{
			ID:          c.ID,
			ContractID:  c.ContractID,
			Name:        c.Name,
			Description: c.Description,
			TokenSymbol: c.TokenSymbol,
			MemberCount: c.MemberCount,
			CreatedAt:   c.CreatedAt,
			CreatedAgo:  common.TimeAgo(c.CreatedAt, now),
			IsOwner:     session.IsConnected() && c.Creator == session.Address,
		})
	}
	return out, nil
}

// Allocations renders a plan for API responses
func Allocations(plan *distribution.Plan) []model.Allocation {
	out := make([]model.Allocation, 0, len(plan.Allocations))
	for _, a := range plan.Allocations {
		out = append(out, model.Allocation{
			Name:       a.Name,
			Percentage: a.Percentage,
			Wallet:     a.Wallet,
			Amount:     a.Amount,
			Display:    common.FormatDisplay(a.Units, plan.Decimals),
		})
	}
	return out
}

// memberCount counts distinct initial holders: the admin and every bucket wallet
func memberCount(admin string, buckets []distribution.Bucket) int {
	holders := map[string]struct{}{admin: {}}
	for _, b := range buckets {
		if b.Wallet != "" {
			holders[b.Wallet] = struct{}{}
		}
	}
	return len(holders)
}

// generateQRCode generates QR code of a contract ID in base64
func generateQRCode(contractID string) (string, error) {
	qr, err := qrcode.New(contractID, qrcode.Medium)
	if err != nil {
		return "", fmt.Errorf("failed to create QR code: %w", err)
	}

	png, err := qr.PNG(256)
	if err != nil {
		return "", fmt.Errorf("failed to generate PNG: %w", err)
	}

	return base64.StdEncoding.EncodeToString(png), nil
}
