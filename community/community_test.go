package community

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"
	"time"

	"github.com/AlexZinkM/token-communities/internal/crypto"
	"github.com/AlexZinkM/token-communities/internal/distribution"
	"github.com/AlexZinkM/token-communities/internal/events"
	"github.com/AlexZinkM/token-communities/internal/model"
	"github.com/AlexZinkM/token-communities/internal/registry"
	"github.com/AlexZinkM/token-communities/internal/store"
	"github.com/AlexZinkM/token-communities/internal/wallet"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	admin     = "GADMINAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"
	treasury  = "GTREASURYAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"
	founder   = "GFOUNDERAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"
	community = "GCOMMUNITYAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"
	outsider  = "GOUTSIDERAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"
)

type fixture struct {
	svc     *Service
	session *wallet.Session
	fake    *registry.Fake
	bus     *events.Bus
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st, err := store.Open(t.TempDir(), nil, crypto.DefaultParams())
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	session := wallet.NewSession(wallet.Testnet)
	fake := registry.NewFake(11)
	bus := events.NewBus()
	return &fixture{
		svc:     NewService(fake, st, session, bus, nil),
		session: session,
		fake:    fake,
		bus:     bus,
	}
}

func validRequest() model.CreateCommunityRequest {
	return model.CreateCommunityRequest{
		Name:          "Stellar Builders",
		Description:   "A community for builders",
		TokenName:     "Builder Token",
		TokenSymbol:   "bld",
		InitialSupply: 1_000_000,
		Settings: model.CommunitySettings{
			IsPublic:          true,
			ProposalThreshold: 1000,
		},
		Distribution: []distribution.Bucket{
			{Name: "Treasury", Percentage: 50, Wallet: treasury},
			{Name: "Founder", Percentage: 20, Wallet: founder},
			{Name: "Community", Percentage: 30, Wallet: community},
		},
	}
}

func TestAddressesAreValid(t *testing.T) {
	for _, a := range []string{admin, treasury, founder, community, outsider} {
		require.True(t, distribution.IsValidAddress(a), a)
	}
}

func TestCreateRequiresConnectedWallet(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Create(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrWalletNotConnected)
}

func TestCreate(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.session.Connect(admin, admin))
	sub, cancel := f.bus.Subscribe()
	defer cancel()

	c, err := f.svc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, c.ID)
	assert.Len(t, c.ContractID, 56)
	assert.True(t, c.Mock)
	assert.Equal(t, "BLD", c.TokenSymbol)
	assert.Equal(t, 7, c.Decimals)
	assert.Equal(t, "1000000.0000000", c.TotalSupply)
	assert.Equal(t, admin, c.Creator)
	assert.Equal(t, "testnet", c.Network)
	assert.Equal(t, 7, *c.Settings.VotingPeriod)
	assert.Equal(t, 20, *c.Settings.QuorumPercentage)
	assert.Equal(t, 4, c.MemberCount)

	require.Len(t, c.Distribution, 3)
	assert.Equal(t, "500000.0000000", c.Distribution[0].Amount)
	assert.Equal(t, "500,000", c.Distribution[0].Display)
	assert.Equal(t, "200000.0000000", c.Distribution[1].Amount)
	assert.Equal(t, "300000.0000000", c.Distribution[2].Amount)

	png, err := base64.StdEncoding.DecodeString(c.QR)
	require.NoError(t, err)
	assert.Equal(t, "\x89PNG", string(png[:4]))

	ev := <-sub
	assert.Equal(t, events.CommunityCreated, ev.Type)

	got, err := f.svc.Get(c.ContractID)
	require.NoError(t, err)
	assert.Equal(t, c.ID, got.ID)

	bal, err := f.svc.Balance(context.Background(), c.ContractID, treasury)
	require.NoError(t, err)
	assert.Equal(t, "500000.0000000", bal.Balance)
}

func TestCreateRejectsInvalidRequest(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.session.Connect(admin, admin))

	req := validRequest()
	req.Distribution[1].Percentage = 30

	_, err := f.svc.Create(context.Background(), req)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "distribution", verr.Fields[0].Field)

	list, err := f.svc.List()
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestListNewestFirst(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.session.Connect(admin, admin))

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	f.svc.now = func() time.Time { return base }
	first, err := f.svc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	f.svc.now = func() time.Time { return base.Add(2 * time.Hour) }
	req := validRequest()
	req.Name = "Second"
	second, err := f.svc.Create(context.Background(), req)
	require.NoError(t, err)

	f.svc.now = func() time.Time { return base.Add(3 * time.Hour) }
	list, err := f.svc.List()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ContractID, list[0].ContractID)
	assert.Equal(t, first.ContractID, list[1].ContractID)
	assert.Equal(t, "1h ago", list[0].CreatedAgo)
	assert.Equal(t, "3h ago", list[1].CreatedAgo)
	assert.True(t, list[0].IsOwner)

	require.NoError(t, f.session.Connect(outsider, outsider))
	list, err = f.svc.List()
	require.NoError(t, err)
	assert.False(t, list[0].IsOwner)
}

func TestTransferAndRefresh(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	require.NoError(t, f.session.Connect(admin, admin))

	req := validRequest()
	req.Distribution[1].Wallet = admin
	c, err := f.svc.Create(ctx, req)
	require.NoError(t, err)

	state, err := f.svc.RefreshSessionBalance(ctx, c.ContractID)
	require.NoError(t, err)
	assert.Equal(t, 200000.0, state.Balance)

	resp, err := f.svc.Transfer(ctx, c.ContractID, model.TransferRequest{ToAddress: outsider, Amount: "1250.5"})
	require.NoError(t, err)
	assert.Len(t, resp.TransactionHash, 64)
	assert.Equal(t, "1250.5000000", resp.Amount)

	bal, err := f.svc.Balance(ctx, c.ContractID, outsider)
	require.NoError(t, err)
	assert.Equal(t, "1250.5000000", bal.Balance)
	assert.Equal(t, "1,250.5", bal.Display)

	state, err = f.svc.RefreshSessionBalance(ctx, c.ContractID)
	require.NoError(t, err)
	assert.Equal(t, 198749.5, state.Balance)
}

func TestTransferErrors(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.Transfer(ctx, "", model.TransferRequest{ToAddress: outsider, Amount: "1"})
	require.ErrorIs(t, err, registry.ErrNoContract)

	_, err = f.svc.Transfer(ctx, "CANY", model.TransferRequest{ToAddress: outsider, Amount: "1"})
	require.ErrorIs(t, err, ErrWalletNotConnected)

	require.NoError(t, f.session.Connect(admin, admin))
	c, err := f.svc.Create(ctx, validRequest())
	require.NoError(t, err)

	_, err = f.svc.Transfer(ctx, c.ContractID, model.TransferRequest{ToAddress: "GSHORT", Amount: "1"})
	require.ErrorIs(t, err, ErrInvalidAddress)

	var verr *ValidationError
	_, err = f.svc.Transfer(ctx, c.ContractID, model.TransferRequest{ToAddress: outsider, Amount: "abc"})
	require.ErrorAs(t, err, &verr)
	_, err = f.svc.Transfer(ctx, c.ContractID, model.TransferRequest{ToAddress: outsider, Amount: "0"})
	require.ErrorAs(t, err, &verr)

	// admin holds nothing when every bucket has its own wallet
	_, err = f.svc.Transfer(ctx, c.ContractID, model.TransferRequest{ToAddress: outsider, Amount: "1"})
	require.ErrorIs(t, err, registry.ErrInsufficientBalance)

	_, err = f.svc.Transfer(ctx, "CUNKNOWN", model.TransferRequest{ToAddress: outsider, Amount: "1"})
	require.ErrorIs(t, err, registry.ErrNoContract)
}

func TestBalanceErrors(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.Balance(ctx, " ", admin)
	require.ErrorIs(t, err, registry.ErrNoContract)

	_, err = f.svc.Balance(ctx, "CUNKNOWN", "not-an-address")
	require.ErrorIs(t, err, ErrInvalidAddress)

	_, err = f.svc.Balance(ctx, "CUNKNOWN", admin)
	require.ErrorIs(t, err, registry.ErrNoContract)

	_, err = f.svc.Get("CUNKNOWN")
	require.ErrorIs(t, err, store.ErrNotFound)
}

type failingRegistry struct {
	registry.Registry
}

func (failingRegistry) Deploy(context.Context, registry.DeployRequest) (*registry.DeployResult, error) {
	return nil, errors.New("backend down")
}

func TestCreateDeployFailureStoresNothing(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.session.Connect(admin, admin))
	f.svc.registry = failingRegistry{}

	_, err := f.svc.Create(context.Background(), validRequest())
	require.Error(t, err)

	list, err := f.svc.List()
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestBurn(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.Burn(ctx, "CANY", model.BurnRequest{Amount: "1"})
	require.ErrorIs(t, err, ErrWalletNotConnected)

	require.NoError(t, f.session.Connect(admin, admin))
	req := validRequest()
	req.Distribution[1].Wallet = admin
	c, err := f.svc.Create(ctx, req)
	require.NoError(t, err)
	sub, cancel := f.bus.Subscribe()
	defer cancel()

	resp, err := f.svc.Burn(ctx, c.ContractID, model.BurnRequest{Amount: "1000"})
	require.NoError(t, err)
	assert.Len(t, resp.TransactionHash, 64)
	assert.Equal(t, admin, resp.From)
	assert.Equal(t, "1000.0000000", resp.Amount)
	assert.Equal(t, "999000.0000000", resp.TotalSupply)

	stored, err := f.svc.Get(c.ContractID)
	require.NoError(t, err)
	assert.Equal(t, "999000.0000000", stored.TotalSupply)

	bal, err := f.svc.Balance(ctx, c.ContractID, admin)
	require.NoError(t, err)
	assert.Equal(t, "199000.0000000", bal.Balance)

	select {
	case ev := <-sub:
		assert.Equal(t, events.TokensBurned, ev.Type)
	case <-time.After(time.Second):
		t.Fatal("no burn event")
	}

	_, err = f.svc.Burn(ctx, c.ContractID, model.BurnRequest{Amount: "199000.0000001"})
	require.ErrorIs(t, err, registry.ErrInsufficientBalance)

	var verr *ValidationError
	_, err = f.svc.Burn(ctx, c.ContractID, model.BurnRequest{Amount: "0"})
	require.ErrorAs(t, err, &verr)

	_, err = f.svc.Burn(ctx, "", model.BurnRequest{Amount: "1"})
	require.ErrorIs(t, err, registry.ErrNoContract)
}

func TestApproveGovernanceSpending(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	governance := "C" + admin[1:]

	_, err := f.svc.ApproveGovernanceSpending(ctx, "CANY", model.ApproveRequest{Spender: governance, Amount: "1"})
	require.ErrorIs(t, err, ErrWalletNotConnected)

	require.NoError(t, f.session.Connect(admin, admin))
	c, err := f.svc.Create(ctx, validRequest())
	require.NoError(t, err)

	_, err = f.svc.ApproveGovernanceSpending(ctx, c.ContractID, model.ApproveRequest{Spender: "CSHORT", Amount: "1"})
	require.ErrorIs(t, err, ErrInvalidAddress)

	resp, err := f.svc.ApproveGovernanceSpending(ctx, c.ContractID, model.ApproveRequest{Spender: governance, Amount: "2500"})
	require.NoError(t, err)
	assert.Equal(t, admin, resp.Owner)
	assert.Equal(t, governance, resp.Spender)
	assert.Equal(t, "2500.0000000", resp.Amount)

	allowance, err := f.svc.Allowance(ctx, c.ContractID, admin, governance)
	require.NoError(t, err)
	assert.Equal(t, "2500.0000000", allowance.Allowance)
	assert.Equal(t, "2,500", allowance.Display)

	// zero revokes
	_, err = f.svc.ApproveGovernanceSpending(ctx, c.ContractID, model.ApproveRequest{Spender: governance, Amount: "0"})
	require.NoError(t, err)
	allowance, err = f.svc.Allowance(ctx, c.ContractID, admin, governance)
	require.NoError(t, err)
	assert.Equal(t, "0.0000000", allowance.Allowance)

	_, err = f.svc.Allowance(ctx, c.ContractID, "nobody", governance)
	require.ErrorIs(t, err, ErrInvalidAddress)
}

func TestDeploymentStatus(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	require.NoError(t, f.session.Connect(admin, admin))
	c, err := f.svc.Create(ctx, validRequest())
	require.NoError(t, err)

	st, err := f.svc.DeploymentStatus(ctx, c.ContractID)
	require.NoError(t, err)
	assert.Equal(t, "completed", st.Status)
	assert.Equal(t, 100, st.Progress)
	assert.Equal(t, c.ContractID, st.ContractID)

	_, err = f.svc.DeploymentStatus(ctx, "CUNKNOWN")
	require.ErrorIs(t, err, registry.ErrUnknownDeployment)

	_, err = f.svc.DeploymentStatus(ctx, "")
	require.ErrorIs(t, err, registry.ErrUnknownDeployment)
}
