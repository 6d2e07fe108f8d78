package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/AlexZinkM/token-communities/internal/model"
)

// ErrBackend is returned when the backend answers success=false
var ErrBackend = errors.New("backend rejected request")

// BackendClient client for the contract backend REST API
type BackendClient struct {
	baseURL string
	client  *http.Client
}

// NewBackendClient creates a new backend client
func NewBackendClient(baseURL string, timeout time.Duration) *BackendClient {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &BackendClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// DeployCommunityToken deploys and initializes a community token contract
func (c *BackendClient) DeployCommunityToken(ctx context.Context, req model.DeployTokenRequest) (*model.DeployTokenResponse, error) {
	var resp model.DeployTokenResponse
	if err := c.do(ctx, http.MethodPost, "/api/contracts/deploy-community-token", req, &resp); err != nil {
		return nil, fmt.Errorf("failed to deploy token: %w", err)
	}
	if !resp.Success {
		return nil, fmt.Errorf("failed to deploy token: %w: %s", ErrBackend, resp.Error)
	}
	if resp.ContractID == "" {
		return nil, fmt.Errorf("failed to deploy token: %w: no contract id", ErrBackend)
	}
	return &resp, nil
}

// ContractInfo gets token metadata of a deployed contract
func (c *BackendClient) ContractInfo(ctx context.Context, contractID string) (*model.TokenData, error) {
	var resp model.TokenInteractionResponse
	path := "/api/contracts/" + url.PathEscape(contractID) + "/info"
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to get contract info: %w", err)
	}
	if !resp.Success || resp.Data == nil {
		return nil, fmt.Errorf("failed to get contract info: %w: %s", ErrBackend, resp.Error)
	}
	return resp.Data, nil
}

// TokenBalance gets the balance of address in minor units
func (c *BackendClient) TokenBalance(ctx context.Context, contractID, address string) (string, error) {
	var resp model.TokenInteractionResponse
	path := "/api/contracts/" + url.PathEscape(contractID) + "/balance/" + url.PathEscape(address)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return "", fmt.Errorf("failed to get balance: %w", err)
	}
	if !resp.Success || resp.Data == nil {
		return "", fmt.Errorf("failed to get balance: %w: %s", ErrBackend, resp.Error)
	}
	if resp.Data.Balance == "" {
		return "0", nil
	}
	return resp.Data.Balance, nil
}

// PrepareTransfer builds an unsigned transfer transaction (XDR)
func (c *BackendClient) PrepareTransfer(ctx context.Context, contractID string, req model.PrepareTransferRequest) (string, error) {
	var resp model.PrepareTransferResponse
	path := "/api/contracts/" + url.PathEscape(contractID) + "/prepare-transfer"
	if err := c.do(ctx, http.MethodPost, path, req, &resp); err != nil {
		return "", fmt.Errorf("failed to prepare transfer: %w", err)
	}
	if !resp.Success || resp.Transaction == "" {
		return "", fmt.Errorf("failed to prepare transfer: %w: %s", ErrBackend, resp.Error)
	}
	return resp.Transaction, nil
}

// SubmitTransaction submits a transaction envelope and returns its hash
func (c *BackendClient) SubmitTransaction(ctx context.Context, envelope string) (string, error) {
	var resp model.TokenInteractionResponse
	req := model.SubmitTransactionRequest{SignedTransaction: envelope}
	if err := c.do(ctx, http.MethodPost, "/api/contracts/submit-transaction", req, &resp); err != nil {
		return "", fmt.Errorf("failed to submit transaction: %w", err)
	}
	if !resp.Success {
		return "", fmt.Errorf("failed to submit transaction: %w: %s", ErrBackend, resp.Error)
	}
	return resp.TransactionHash, nil
}

// DeploymentStatus gets the progress of a deployment
func (c *BackendClient) DeploymentStatus(ctx context.Context, deploymentID string) (*model.DeploymentStatusResponse, error) {
	var resp model.DeploymentStatusResponse
	path := "/api/deployments/" + url.PathEscape(deploymentID) + "/status"
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to get deployment status: %w", err)
	}
	if !resp.Success {
		return nil, fmt.Errorf("failed to get deployment status: %w: %s", ErrBackend, resp.Error)
	}
	return &resp, nil
}

// Health gets backend health
func (c *BackendClient) Health(ctx context.Context) (*model.HealthResponse, error) {
	var resp model.HealthResponse
	if err := c.do(ctx, http.MethodGet, "/api/health", nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to get health: %w", err)
	}
	return &resp, nil
}

func (c *BackendClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
