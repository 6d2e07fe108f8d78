package model

import (
	"time"

	"github.com/AlexZinkM/token-communities/internal/distribution"
)

// CommunitySettings are the governance parameters of a community
type CommunitySettings struct {
	IsPublic          bool     `json:"isPublic"`
	RequiresApproval  bool     `json:"requiresApproval"`
	VotingPeriod      *int     `json:"votingPeriod,omitempty"`     // days, defaults to 7
	QuorumPercentage  *int     `json:"quorumPercentage,omitempty"` // percent of supply, defaults to 20
	ProposalThreshold int64    `json:"proposalThreshold"` // whole tokens needed to propose
	Categories        []string `json:"categories"`
}

// CreateCommunityRequest represents request for POST /communities
type CreateCommunityRequest struct {
	Name          string                `json:"name"`
	Description   string                `json:"description"`
	TokenName     string                `json:"tokenName"`
	TokenSymbol   string                `json:"tokenSymbol"`
	InitialSupply int64                 `json:"initialSupply"`
	Decimals      *int                  `json:"decimals,omitempty"` // defaults to 7
	Settings      CommunitySettings     `json:"settings"`
	Distribution  []distribution.Bucket `json:"distribution"`
}

// ValidateStepRequest represents request for POST /communities/validate
type ValidateStepRequest struct {
	Step      int                    `json:"step"`
	Community CreateCommunityRequest `json:"community"`
}

// ValidateStepResponse represents response for POST /communities/validate
type ValidateStepResponse struct {
	Step   int          `json:"step"`
	Name   string       `json:"name"`
	Valid  bool         `json:"valid"`
	Fields []FieldError `json:"fields"`
}

// Community is the persisted community record
type Community struct {
	ID              string            `json:"id"`
	ContractID      string            `json:"contractId"`
	TransactionHash string            `json:"transactionHash"`
	Mock            bool              `json:"mock,omitempty"`
	Name            string            `json:"name"`
	Description     string            `json:"description"`
	TokenName       string            `json:"tokenName"`
	TokenSymbol     string            `json:"tokenSymbol"`
	Decimals        int               `json:"decimals"`
	TotalSupply     string            `json:"totalSupply"`
	Creator         string            `json:"creator"`
	Network         string            `json:"network"`
	Settings        CommunitySettings `json:"settings"`
	Distribution    []Allocation      `json:"distribution"`
	QR              string            `json:"QR"`
	MemberCount     int               `json:"memberCount"`
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`
}

// CommunitySummary is a list entry for GET /communities
type CommunitySummary struct {
	ID          string    `json:"id"`
	ContractID  string    `json:"contractId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	TokenSymbol string    `json:"tokenSymbol"`
	MemberCount int       `json:"memberCount"`
	CreatedAt   time.Time `json:"createdAt"`
	CreatedAgo  string    `json:"createdAgo"`
	IsOwner     bool      `json:"isOwner"`
}

// CommunityListResponse represents response for GET /communities
type CommunityListResponse struct {
	Communities []CommunitySummary `json:"communities"`
}

// TokenBalanceResponse represents response for GET /communities/{contractId}/balance/{address}
type TokenBalanceResponse struct {
	ContractID string `json:"contractId"`
	Address    string `json:"address"`
	Balance    string `json:"balance"`
	Display    string `json:"display"`
}

// TransferRequest represents request for POST /communities/{contractId}/transfer
type TransferRequest struct {
	ToAddress string `json:"toAddress"`
	Amount    string `json:"amount"`
}

// TransferResponse represents response for POST /communities/{contractId}/transfer
type TransferResponse struct {
	TransactionHash string `json:"transactionHash"`
	From            string `json:"from"`
	To              string `json:"to"`
	Amount          string `json:"amount"`
}

// BurnRequest represents request for POST /communities/{contractId}/burn
type BurnRequest struct {
	Amount string `json:"amount"`
}

// BurnResponse represents response for POST /communities/{contractId}/burn
type BurnResponse struct {
	TransactionHash string `json:"transactionHash"`
	From            string `json:"from"`
	Amount          string `json:"amount"`
	TotalSupply     string `json:"totalSupply,omitempty"`
}

// ApproveRequest represents request for POST /communities/{contractId}/approve
type ApproveRequest struct {
	Spender string `json:"spender"` // governance contract or account
	Amount  string `json:"amount"`  // 0 revokes
}

// ApproveResponse represents response for POST /communities/{contractId}/approve
type ApproveResponse struct {
	TransactionHash string `json:"transactionHash"`
	Owner           string `json:"owner"`
	Spender         string `json:"spender"`
	Amount          string `json:"amount"`
}

// AllowanceResponse represents response for GET /communities/{contractId}/allowance/{owner}/{spender}
type AllowanceResponse struct {
	ContractID string `json:"contractId"`
	Owner      string `json:"owner"`
	Spender    string `json:"spender"`
	Allowance  string `json:"allowance"`
	Display    string `json:"display"`
}

// DeploymentStatus represents response for GET /deployments/{deploymentId}/status
type DeploymentStatus struct {
	DeploymentID string `json:"deploymentId"`
	Status       string `json:"status"`
	Progress     int    `json:"progress"`
	Message      string `json:"message,omitempty"`
	ContractID   string `json:"contractId,omitempty"`
}
