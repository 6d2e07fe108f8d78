package main

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/AlexZinkM/token-communities/internal/config"
	"github.com/AlexZinkM/token-communities/internal/crypto"
	"github.com/AlexZinkM/token-communities/internal/store"

	"github.com/spf13/cobra"
)

// swapped in tests
var (
	readPassphrase = config.ReadPassphrase
	scryptParams   = crypto.DefaultParams
)

func defaultStateDir() string {
	if c, err := config.Load(); err == nil {
		return c.StateDir
	}
	return "./data"
}

// openState opens dir, asking for the passphrase only when the store is sealed.
func openState(dir string) (*store.Store, error) {
	st, err := store.Open(dir, nil, scryptParams())
	if !errors.Is(err, store.ErrSealed) {
		return st, err
	}

	pass, err := readPassphrase("Current passphrase: ")
	if err != nil {
		return nil, err
	}
	defer clear(pass)
	return store.Open(dir, pass, scryptParams())
}

func newStateCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "state",
		Short: "Inspect and maintain the state store",
	}
	cmd.PersistentFlags().StringVar(&dir, "dir", defaultStateDir(), "state directory (STATE_DIR)")

	cmd.AddCommand(&cobra.Command{
		Use:   "info",
		Short: "Show encryption status and record counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openState(dir)
			if err != nil {
				return err
			}
			defer st.Close()

			n, err := st.CountCommunities()
			if err != nil {
				return err
			}
			session, ok, err := st.LoadSession()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "encrypted:   %t\n", st.Sealed())
			fmt.Fprintf(out, "communities: %d\n", n)
			if ok && session.IsConnected {
				fmt.Fprintf(out, "wallet:      %s (%s)\n", session.Address, session.Network)
			} else {
				fmt.Fprintln(out, "wallet:      disconnected")
			}
			return nil
		},
	})

	var unseal bool
	reseal := &cobra.Command{
		Use:   "reseal",
		Short: "Re-encrypt every stored value under a new passphrase",
		Long: `Re-encrypts every stored value under a new passphrase in a single batch.
Also turns encryption on for a plain store, or off with --unseal.
Stop communityd first: the store allows one process at a time.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openState(dir)
			if err != nil {
				return err
			}
			defer st.Close()

			var next []byte
			if !unseal {
				if next, err = readPassphrase("New passphrase: "); err != nil {
					return err
				}
				defer clear(next)
				confirm, err := readPassphrase("Repeat new passphrase: ")
				if err != nil {
					return err
				}
				defer clear(confirm)
				if !bytes.Equal(next, confirm) {
					return errors.New("passphrases do not match")
				}
			}

			n, err := st.Reseal(next, scryptParams())
			if err != nil {
				return err
			}
			communities, err := st.CountCommunities()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "resealed %d values (%d communities), encrypted: %t\n", n, communities, st.Sealed())
			return nil
		},
	}
	reseal.Flags().BoolVar(&unseal, "unseal", false, "store values unencrypted")
	cmd.AddCommand(reseal)

	return cmd
}
