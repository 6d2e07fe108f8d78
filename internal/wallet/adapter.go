package wallet

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrNoAddress is returned when the adapter has no authorized account
var ErrNoAddress = errors.New("wallet returned no address")

// Adapter is the external wallet kit, seen only through this contract
type Adapter interface {
	SetWallet(id string) error
	GetAddress(ctx context.Context) (string, error)
}

// WalletOption is one wallet offered by the selection modal
type WalletOption struct {
	ID   string
	Name string
}

// ModalAdapter can ask the user to pick a wallet. onSelected runs inside the
// modal flow, so the adapter is queried while the selection is still current.
type ModalAdapter interface {
	Adapter
	OpenModal(ctx context.Context, onSelected func(WalletOption) error) error
}

// ConnectWith runs the connect flow: the session goes to Connecting, the user
// picks a wallet, and the adapter's address becomes both address and public
// key. On any failure the session leaves Connecting and the error is returned;
// an ErrPersist error means the session did connect but was not saved.
// Nothing here retries or times out beyond ctx.
func ConnectWith(ctx context.Context, s *Session, adapter ModalAdapter) error {
	if err := s.BeginConnect(); err != nil {
		return err
	}

	connected := false
	err := adapter.OpenModal(ctx, func(opt WalletOption) error {
		if err := adapter.SetWallet(opt.ID); err != nil {
			return fmt.Errorf("failed to select wallet %q: %w", opt.ID, err)
		}
		address, err := adapter.GetAddress(ctx)
		if err != nil {
			return fmt.Errorf("failed to get address: %w", err)
		}
		if address == "" {
			return ErrNoAddress
		}
		// address doubles as the public key: the kit exposes a single identity value
		err = s.Connect(address, address)
		connected = err == nil || errors.Is(err, ErrPersist)
		return err
	})
	if err == nil && !connected {
		err = errors.New("no wallet selected")
	}
	if err != nil {
		s.FailConnect()
		return err
	}
	return nil
}

// RequestAdapter stands in for the browser wallet kit on the server side: the
// client has already run the kit's modal and sends the chosen wallet and the
// address it reported.
type RequestAdapter struct {
	WalletID string
	Address  string

	selected string
}

// SetWallet records the selected wallet
func (a *RequestAdapter) SetWallet(id string) error {
	if strings.TrimSpace(id) == "" {
		return errors.New("wallet id is required")
	}
	a.selected = id
	return nil
}

// GetAddress returns the address reported by the client for the selected wallet
func (a *RequestAdapter) GetAddress(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if a.selected == "" {
		return "", errors.New("no wallet selected")
	}
	if a.Address == "" {
		return "", ErrNoAddress
	}
	return a.Address, nil
}

// OpenModal immediately selects the wallet named in the request
func (a *RequestAdapter) OpenModal(ctx context.Context, onSelected func(WalletOption) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return onSelected(WalletOption{ID: a.WalletID, Name: a.WalletID})
}
