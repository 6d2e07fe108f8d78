package model

import (
	"encoding/json"
	"errors"
)

// WalletResponse represents response for GET /wallet
type WalletResponse struct {
	IsConnected bool    `json:"isConnected"`
	Address     *string `json:"address"`
	PublicKey   *string `json:"publicKey"`
	Network     string  `json:"network"`
	Balance     float64 `json:"balance"`
	Status      string  `json:"status"`
	Stale       bool    `json:"stale,omitempty"`
}

// ConnectRequest represents request for POST /wallet/connect
type ConnectRequest struct {
	WalletID string       `json:"walletId"`
	Address  AddressValue `json:"address"`
}

// NetworkRequest represents request for PUT /wallet/network
type NetworkRequest struct {
	Network string `json:"network"`
}

// BalanceRequest represents request for PUT /wallet/balance
type BalanceRequest struct {
	Balance float64 `json:"balance"`
}

// AddressValue accepts both shapes wallet adapters return from getAddress:
// a bare string or an object {"address": "..."}.
type AddressValue string

// UnmarshalJSON implements json.Unmarshaler
func (a *AddressValue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*a = AddressValue(s)
		return nil
	}

	var obj struct {
		Address string `json:"address"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return errors.New("address must be a string or an object with an address field")
	}
	*a = AddressValue(obj.Address)
	return nil
}
