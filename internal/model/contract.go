package model

// DeployTokenRequest is the body of POST /api/contracts/deploy-community-token
type DeployTokenRequest struct {
	TokenName     string `json:"tokenName"`
	TokenSymbol   string `json:"tokenSymbol"`
	Decimals      int    `json:"decimals"`
	TotalSupply   string `json:"totalSupply"` // whole tokens
	AdminAddress  string `json:"adminAddress"`
	CommunityName string `json:"communityName"`
	Description   string `json:"description"`

	TreasuryAllocation  int `json:"treasuryAllocation"`
	FounderAllocation   int `json:"founderAllocation"`
	CommunityAllocation int `json:"communityAllocation"`

	TreasuryWallet  string `json:"treasuryWallet"`
	FounderWallet   string `json:"founderWallet"`
	CommunityWallet string `json:"communityWallet"`
}

// DeployTokenResponse is the backend's answer to a deployment
type DeployTokenResponse struct {
	Success         bool       `json:"success"`
	ContractID      string     `json:"contractId,omitempty"`
	TransactionHash string     `json:"transactionHash,omitempty"`
	Error           string     `json:"error,omitempty"`
	Data            *TokenData `json:"data,omitempty"`
}

// TokenData carries token metadata and balances in backend responses
type TokenData struct {
	ContractID  string `json:"contractId,omitempty"`
	Name        string `json:"name,omitempty"`
	TokenName   string `json:"tokenName,omitempty"`
	Symbol      string `json:"symbol,omitempty"`
	TokenSymbol string `json:"tokenSymbol,omitempty"`
	Decimals    int    `json:"decimals,omitempty"`
	TotalSupply string `json:"totalSupply,omitempty"`
	Balance     string `json:"balance,omitempty"`
	Address     string `json:"address,omitempty"`
}

// TokenInteractionResponse is the backend's answer to info/balance/submit calls
type TokenInteractionResponse struct {
	Success         bool       `json:"success"`
	TransactionHash string     `json:"transactionHash,omitempty"`
	Data            *TokenData `json:"data,omitempty"`
	Error           string     `json:"error,omitempty"`
}

// PrepareTransferRequest is the body of POST /api/contracts/{id}/prepare-transfer
type PrepareTransferRequest struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount string `json:"amount"`
}

// PrepareTransferResponse carries the unsigned transaction envelope (XDR)
type PrepareTransferResponse struct {
	Success     bool   `json:"success"`
	Transaction string `json:"transaction,omitempty"`
	Error       string `json:"error,omitempty"`
}

// SubmitTransactionRequest is the body of POST /api/contracts/submit-transaction
type SubmitTransactionRequest struct {
	SignedTransaction string `json:"signedTransaction"`
}

// DeploymentStatusResponse is the backend's answer to GET /api/deployments/{id}/status
type DeploymentStatusResponse struct {
	Success    bool   `json:"success"`
	Status     string `json:"status,omitempty"`
	Progress   int    `json:"progress,omitempty"`
	Message    string `json:"message,omitempty"`
	ContractID string `json:"contractId,omitempty"`
	Error      string `json:"error,omitempty"`
}

// HealthResponse represents response for GET /health and the backend's /api/health
type HealthResponse struct {
	Success   bool   `json:"success"`
	Status    string `json:"status,omitempty"`
	Stellar   bool   `json:"stellar"`
	Contracts bool   `json:"contracts"`
	Ledger    uint32 `json:"latestLedger,omitempty"`
}
