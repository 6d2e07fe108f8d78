package main

import (
	"fmt"

	"github.com/AlexZinkM/token-communities/internal/common"
	"github.com/AlexZinkM/token-communities/internal/distribution"

	"github.com/spf13/cobra"
)

func newAddressCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "address ADDRESS...",
		Short: "Check account addresses",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			invalid := 0
			for _, a := range args {
				status := "valid"
				if !distribution.IsValidAddress(a) {
					status = "invalid"
					invalid++
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", common.TruncateAddress(a, 4), status)
			}
			if invalid > 0 {
				return fmt.Errorf("%d of %d addresses invalid", invalid, len(args))
			}
			return nil
		},
	}
}
