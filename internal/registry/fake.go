package registry

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/AlexZinkM/token-communities/internal/common"
	"github.com/AlexZinkM/token-communities/internal/distribution"

	"github.com/holiman/uint256"
)

const (
	contractAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ234567"
	hexAlphabet      = "0123456789abcdef"
)

type fakeToken struct {
	info       TokenInfo
	balances   map[string]*uint256.Int
	allowances map[string]map[string]*uint256.Int // owner -> spender
}

// debit takes amount off holder or fails with ErrInsufficientBalance
func (t *fakeToken) debit(holder string, amount *uint256.Int) error {
	bal, ok := t.balances[holder]
	if !ok || bal.Lt(amount) {
		have := new(uint256.Int)
		if ok {
			have = bal
		}
		return fmt.Errorf("%w: have %s, need %s", ErrInsufficientBalance,
			common.FormatUnits(have, t.info.Decimals), common.FormatUnits(amount, t.info.Decimals))
	}
	bal.Sub(bal, amount)
	return nil
}

// Fake is an in-memory token ledger. With the same seed it hands out the same
// sequence of contract IDs and transaction hashes.
type Fake struct {
	mu     sync.Mutex
	rng    *rand.Rand
	tokens map[string]*fakeToken
}

// NewFake creates a fake registry; seed 0 seeds from the clock
func NewFake(seed uint64) *Fake {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Fake{
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		tokens: make(map[string]*fakeToken),
	}
}

func (f *Fake) randomString(alphabet string, n int) string {
	var b strings.Builder
	b.Grow(n)
	for range n {
		b.WriteByte(alphabet[f.rng.IntN(len(alphabet))])
	}
	return b.String()
}

// Deploy mints the supply into the bucket wallets; the admin receives rounding
// dust and the share of any bucket without a wallet.
func (f *Fake) Deploy(ctx context.Context, req DeployRequest) (*DeployResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	plan, err := distribution.Calculate(req.TotalSupply, req.Decimals, req.Buckets)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate distribution: %w", err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	contractID := "C" + f.randomString(contractAlphabet, 55)
	for f.tokens[contractID] != nil {
		contractID = "C" + f.randomString(contractAlphabet, 55)
	}

	token := &fakeToken{
		info: TokenInfo{
			ContractID:  contractID,
			Name:        req.TokenName,
			Symbol:      req.TokenSymbol,
			Decimals:    req.Decimals,
			TotalSupply: plan.TotalUnits(),
		},
		balances:   make(map[string]*uint256.Int),
		allowances: make(map[string]map[string]*uint256.Int),
	}
	credit := func(holder string, units *uint256.Int) {
		if units.IsZero() {
			return
		}
		bal, ok := token.balances[holder]
		if !ok {
			bal = new(uint256.Int)
			token.balances[holder] = bal
		}
		bal.Add(bal, units)
	}
	for _, a := range plan.Allocations {
		holder := a.Wallet
		if holder == "" {
			holder = req.Admin
		}
		credit(holder, a.Units)
	}
	credit(req.Admin, plan.Remainder)

	f.tokens[contractID] = token
	return &DeployResult{
		ContractID:      contractID,
		TransactionHash: f.randomString(hexAlphabet, 64),
		Mock:            true,
	}, nil
}

func (f *Fake) token(contractID string) (*fakeToken, error) {
	if err := checkContractID(contractID); err != nil {
		return nil, err
	}
	t, ok := f.tokens[contractID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoContract, contractID)
	}
	return t, nil
}

// TokenInfo returns metadata of a token deployed on this fake
func (f *Fake) TokenInfo(ctx context.Context, contractID string) (*TokenInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	t, err := f.token(contractID)
	if err != nil {
		return nil, err
	}
	info := t.info
	info.TotalSupply = new(uint256.Int).Set(t.info.TotalSupply)
	return &info, nil
}

// Balance of an unknown holder is zero
func (f *Fake) Balance(ctx context.Context, contractID, address string) (*uint256.Int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	t, err := f.token(contractID)
	if err != nil {
		return nil, err
	}
	if bal, ok := t.balances[address]; ok {
		return new(uint256.Int).Set(bal), nil
	}
	return new(uint256.Int), nil
}

// Transfer moves minor units between holders
func (f *Fake) Transfer(ctx context.Context, contractID, from, to string, amount *uint256.Int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	t, err := f.token(contractID)
	if err != nil {
		return "", err
	}
	if amount == nil || amount.IsZero() {
		return "", fmt.Errorf("transfer amount must be positive")
	}

	if err := t.debit(from, amount); err != nil {
		return "", err
	}

	dst, ok := t.balances[to]
	if !ok {
		dst = new(uint256.Int)
		t.balances[to] = dst
	}
	dst.Add(dst, amount)

	return f.randomString(hexAlphabet, 64), nil
}

// Burn destroys minor units of from and lowers the total supply by the same amount
func (f *Fake) Burn(ctx context.Context, contractID, from string, amount *uint256.Int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	t, err := f.token(contractID)
	if err != nil {
		return "", err
	}
	if amount == nil || amount.IsZero() {
		return "", fmt.Errorf("burn amount must be positive")
	}
	if err := t.debit(from, amount); err != nil {
		return "", err
	}
	t.info.TotalSupply.Sub(t.info.TotalSupply, amount)

	return f.randomString(hexAlphabet, 64), nil
}

// Approve replaces the allowance of spender over owner's tokens; zero revokes it
func (f *Fake) Approve(ctx context.Context, contractID, owner, spender string, amount *uint256.Int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	t, err := f.token(contractID)
	if err != nil {
		return "", err
	}
	if amount == nil {
		return "", fmt.Errorf("approve amount is required")
	}

	spenders := t.allowances[owner]
	if amount.IsZero() {
		delete(spenders, spender)
	} else {
		if spenders == nil {
			spenders = make(map[string]*uint256.Int)
			t.allowances[owner] = spenders
		}
		spenders[spender] = new(uint256.Int).Set(amount)
	}

	return f.randomString(hexAlphabet, 64), nil
}

// Allowance of a pair that never approved is zero
func (f *Fake) Allowance(ctx context.Context, contractID, owner, spender string) (*uint256.Int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	t, err := f.token(contractID)
	if err != nil {
		return nil, err
	}
	if a, ok := t.allowances[owner][spender]; ok {
		return new(uint256.Int).Set(a), nil
	}
	return new(uint256.Int), nil
}

// DeploymentStatus reports deployments on this fake as completed; the
// deployment ID is the contract ID.
func (f *Fake) DeploymentStatus(ctx context.Context, deploymentID string) (*DeploymentStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.tokens[deploymentID]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDeployment, deploymentID)
	}
	return &DeploymentStatus{
		ID:         deploymentID,
		Status:     DeploymentCompleted,
		Progress:   100,
		Message:    "Contract deployed successfully",
		ContractID: deploymentID,
	}, nil
}

// Health always reports healthy
func (f *Fake) Health(ctx context.Context) (*Health, error) {
	return &Health{Backend: true, Network: true, Status: "mock"}, nil
}

// Has reports whether contractID was deployed on this fake
func (f *Fake) Has(contractID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.tokens[contractID]
	return ok
}
