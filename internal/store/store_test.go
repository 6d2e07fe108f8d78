package store

import (
	"testing"
	"time"

	"github.com/AlexZinkM/token-communities/internal/crypto"
	"github.com/AlexZinkM/token-communities/internal/model"
	"github.com/AlexZinkM/token-communities/internal/wallet"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testParams = crypto.Params{N: 1 << 10, R: 8, P: 1}

func community(id, name string) *model.Community {
	return &model.Community{
		ID:          "id-" + id,
		ContractID:  id,
		Name:        name,
		TokenSymbol: "TST",
		Decimals:    7,
		TotalSupply: "1000000",
		CreatedAt:   time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func openPlain(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir(), nil, testParams)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestCommunityRoundTrip(t *testing.T) {
	s := openPlain(t)

	_, err := s.GetCommunity("CMISSING")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.SaveCommunity(community("C1", "First")))
	require.NoError(t, s.SaveCommunity(community("C2", "Second")))

	got, err := s.GetCommunity("C2")
	require.NoError(t, err)
	assert.Equal(t, "Second", got.Name)
	assert.True(t, got.CreatedAt.Equal(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)))

	list, err := s.ListCommunities()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "C1", list[0].ContractID)
	assert.Equal(t, "C2", list[1].ContractID)

	n, err := s.CountCommunities()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestSaveCommunityUpserts(t *testing.T) {
	s := openPlain(t)
	require.NoError(t, s.SaveCommunity(community("C1", "Before")))
	require.NoError(t, s.SaveCommunity(community("C1", "After")))

	list, err := s.ListCommunities()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "After", list[0].Name)

	require.Error(t, s.SaveCommunity(&model.Community{Name: "no id"}))
}

func TestSession(t *testing.T) {
	s := openPlain(t)

	_, ok, err := s.LoadSession()
	require.NoError(t, err)
	assert.False(t, ok)

	want := wallet.Persisted{IsConnected: true, Address: "GABC", PublicKey: "GABC", Network: wallet.Mainnet}
	require.NoError(t, s.SaveSession(want))

	got, ok, err := s.LoadSession()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, want, got)
}

func TestSealedStore(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir, []byte("secret"), testParams)
	require.NoError(t, err)
	assert.True(t, s.Sealed())
	require.NoError(t, s.SaveCommunity(community("C1", "Hidden")))
	require.NoError(t, s.Close())

	_, err = Open(dir, nil, testParams)
	require.ErrorIs(t, err, ErrSealed)

	_, err = Open(dir, []byte("wrong"), testParams)
	require.ErrorIs(t, err, crypto.ErrInvalidPassphrase)

	s, err = Open(dir, []byte("secret"), testParams)
	require.NoError(t, err)
	defer s.Close()
	got, err := s.GetCommunity("C1")
	require.NoError(t, err)
	assert.Equal(t, "Hidden", got.Name)
}

func TestPassphraseOnPlainStoreWithData(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir, nil, testParams)
	require.NoError(t, err)
	require.NoError(t, s.SaveCommunity(community("C1", "Plain")))
	require.NoError(t, s.Close())

	_, err = Open(dir, []byte("secret"), testParams)
	require.ErrorIs(t, err, ErrNotSealed)
}

func TestReseal(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir, nil, testParams)
	require.NoError(t, err)
	require.NoError(t, s.SaveCommunity(community("C1", "One")))
	require.NoError(t, s.SaveSession(wallet.Persisted{Network: wallet.Testnet}))

	// community record, list and session
	n, err := s.Reseal([]byte("first"), testParams)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	require.NoError(t, s.Close())

	s, err = Open(dir, []byte("first"), testParams)
	require.NoError(t, err)
	_, err = s.Reseal([]byte("second"), testParams)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, err = Open(dir, []byte("first"), testParams)
	require.ErrorIs(t, err, crypto.ErrInvalidPassphrase)

	s, err = Open(dir, []byte("second"), testParams)
	require.NoError(t, err)
	got, err := s.GetCommunity("C1")
	require.NoError(t, err)
	assert.Equal(t, "One", got.Name)

	_, err = s.Reseal(nil, testParams)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(dir, nil, testParams)
	require.NoError(t, err)
	defer s.Close()
	assert.False(t, s.Sealed())
	list, err := s.ListCommunities()
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
