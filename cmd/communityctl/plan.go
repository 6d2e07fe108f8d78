package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/AlexZinkM/token-communities/internal/common"
	"github.com/AlexZinkM/token-communities/internal/distribution"

	"github.com/spf13/cobra"
)

// parseBucket reads NAME=PERCENT or NAME=PERCENT:WALLET
func parseBucket(s string) (distribution.Bucket, error) {
	name, rest, ok := strings.Cut(s, "=")
	if !ok || strings.TrimSpace(name) == "" {
		return distribution.Bucket{}, fmt.Errorf("bucket %q: want NAME=PERCENT[:WALLET]", s)
	}
	pct, wallet, _ := strings.Cut(rest, ":")
	p, err := strconv.Atoi(strings.TrimSpace(pct))
	if err != nil {
		return distribution.Bucket{}, fmt.Errorf("bucket %q: invalid percentage", s)
	}
	return distribution.Bucket{
		Name:           strings.TrimSpace(name),
		Percentage:     p,
		Wallet:         strings.TrimSpace(wallet),
		WalletOptional: strings.TrimSpace(wallet) == "",
	}, nil
}

func newPlanCommand() *cobra.Command {
	var (
		supply   int64
		decimals int
		buckets  []string
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Preview how a token supply is split across buckets",
		Example: `  communityctl plan --supply 1000000
  communityctl plan --supply 1000 --decimals 2 \
    --bucket Treasury=50:GTREASURY... --bucket Founder=20 --bucket Community=30`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// default buckets carry no wallet; the admin receives them at mint
			list := distribution.DefaultBuckets()
			for i := range list {
				list[i].WalletOptional = true
			}
			if len(buckets) > 0 {
				list = list[:0]
				for _, s := range buckets {
					b, err := parseBucket(s)
					if err != nil {
						return err
					}
					list = append(list, b)
				}
			}
			if err := distribution.ValidateBuckets(list); err != nil {
				return err
			}
			if !distribution.IsCompletePlan(list) {
				return fmt.Errorf("%w: buckets sum to %d%% (%+d)",
					distribution.ErrIncompletePlan, distribution.SumPercentages(list), distribution.Deviation(list))
			}

			plan, err := distribution.Calculate(supply, decimals, list)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "BUCKET\tPERCENT\tAMOUNT\tWALLET")
			for _, a := range plan.Allocations {
				wallet := "-"
				if a.Bucket.Wallet != "" {
					wallet = common.TruncateAddress(a.Bucket.Wallet, 4)
				}
				fmt.Fprintf(w, "%s\t%d%%\t%s\t%s\n",
					a.Bucket.Name, a.Bucket.Percentage, common.FormatDisplay(a.Units, decimals), wallet)
			}
			fmt.Fprintf(w, "TOTAL\t100%%\t%s\t\n", common.FormatDisplay(plan.TotalUnits(), decimals))
			if err := w.Flush(); err != nil {
				return err
			}

			if !plan.Remainder.IsZero() {
				fmt.Fprintf(cmd.OutOrStdout(), "remainder: %s (credited to the admin)\n",
					common.FormatUnits(plan.Remainder, decimals))
			}
			if check := distribution.ValidateDistributionWallets(list); !check.Valid {
				return errors.New("invalid wallet for: " + strings.Join(check.InvalidBucketNames, ", "))
			}
			return nil
		},
	}

	cmd.Flags().Int64Var(&supply, "supply", 0, "initial supply in whole tokens")
	cmd.Flags().IntVar(&decimals, "decimals", common.DefaultDecimals, "token decimals")
	cmd.Flags().StringArrayVar(&buckets, "bucket", nil, "bucket as NAME=PERCENT[:WALLET], repeatable")
	cmd.MarkFlagRequired("supply")
	return cmd
}
