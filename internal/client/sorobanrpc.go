package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gagliardetto/solana-go/rpc/jsonrpc"
)

// SorobanClient queries network status from a Soroban JSON-RPC endpoint
type SorobanClient struct {
	rpc jsonrpc.RPCClient
	url string
}

// SorobanHealth is the result of getHealth
type SorobanHealth struct {
	Status                string `json:"status"`
	LatestLedger          uint32 `json:"latestLedger"`
	OldestLedger          uint32 `json:"oldestLedger"`
	LedgerRetentionWindow uint32 `json:"ledgerRetentionWindow"`
}

// LatestLedger is the result of getLatestLedger
type LatestLedger struct {
	ID              string `json:"id"`
	ProtocolVersion int    `json:"protocolVersion"`
	Sequence        uint32 `json:"sequence"`
}

// NewSorobanClient creates a new Soroban RPC client
func NewSorobanClient(rpcURL string, timeout time.Duration) *SorobanClient {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &SorobanClient{
		rpc: jsonrpc.NewClientWithOpts(rpcURL, &jsonrpc.RPCClientOpts{
			HTTPClient: &http.Client{Timeout: timeout},
		}),
		url: rpcURL,
	}
}

// GetHealth calls getHealth
func (c *SorobanClient) GetHealth(ctx context.Context) (*SorobanHealth, error) {
	var out SorobanHealth
	if err := c.rpc.CallForInto(ctx, &out, "getHealth", nil); err != nil {
		return nil, fmt.Errorf("failed to get network health from %s: %w", c.url, err)
	}
	return &out, nil
}

// GetLatestLedger calls getLatestLedger
func (c *SorobanClient) GetLatestLedger(ctx context.Context) (*LatestLedger, error) {
	var out LatestLedger
	if err := c.rpc.CallForInto(ctx, &out, "getLatestLedger", nil); err != nil {
		return nil, fmt.Errorf("failed to get latest ledger from %s: %w", c.url, err)
	}
	return &out, nil
}

// Close releases idle connections
func (c *SorobanClient) Close() error {
	return c.rpc.Close()
}
