package model

import "github.com/AlexZinkM/token-communities/internal/distribution"

// PlanRequest represents request for POST /plans/compute
type PlanRequest struct {
	TotalSupply int64                 `json:"totalSupply"`
	Decimals    *int                  `json:"decimals,omitempty"` // defaults to 7
	Buckets     []distribution.Bucket `json:"buckets"`
}

// PlanResponse represents response for POST /plans/compute
type PlanResponse struct {
	TotalSupply int64                    `json:"totalSupply"`
	Decimals    int                      `json:"decimals"`
	Sum         int                      `json:"sum"`
	Deviation   int                      `json:"deviation"`
	Complete    bool                     `json:"complete"`
	Wallets     distribution.WalletCheck `json:"wallets"`
	Allocations []Allocation             `json:"allocations"`
	Remainder   string                   `json:"remainder"`
}

// Allocation is a bucket with its computed amount
type Allocation struct {
	Name       string `json:"name"`
	Percentage int    `json:"percentage"`
	Wallet     string `json:"wallet,omitempty"`
	Amount     string `json:"amount"`
	Display    string `json:"display"`
}

// AddressRequest represents request for POST /addresses/validate
type AddressRequest struct {
	Address string `json:"address"`
}

// AddressResponse represents response for POST /addresses/validate
type AddressResponse struct {
	Address   string `json:"address"`
	Valid     bool   `json:"valid"`
	Truncated string `json:"truncated"`
}
