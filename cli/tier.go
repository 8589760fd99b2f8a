package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/asaidimu/go-portal/core/portal"
	"github.com/asaidimu/go-portal/core/query"
	"github.com/spf13/cobra"
)

func newTierCommand(a *app) *cobra.Command {
	var (
		points   int
		months   int
		joinDate string
	)

	cmd := &cobra.Command{
		Use:   "tier",
		Short: "Resolve the membership tier for points and seniority",
		Example: `  portal tier --points 8200 --months 67
  portal tier --points 4500 --join-date 2020-03-15`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if points < 0 || months < 0 {
				return errors.New("points and months must not be negative")
			}
			if joinDate != "" {
				if cmd.Flags().Changed("months") {
					return errors.New("--months and --join-date are mutually exclusive")
				}
				if _, ok := query.ToTime(joinDate); !ok {
					return fmt.Errorf("invalid --join-date %q: expected a date such as 2020-03-15", joinDate)
				}
				months = portal.SeniorityMonths(joinDate, a.cfg.Now()())
			}

			seed, err := portal.LoadSeed()
			if err != nil {
				return err
			}
			tier, ok := portal.ResolveTier(seed.Tiers, points, months)
			if !ok {
				return fmt.Errorf("no tier for %d points and %d months", points, months)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s (min %d points, %d months seniority)\n", tier.Name, tier.MinPoints, tier.MinSeniorityMonths)
			if len(tier.Benefits) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Benefits: %s\n", strings.Join(tier.Benefits, "; "))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&points, "points", 0, "accumulated points")
	cmd.Flags().IntVar(&months, "months", 0, "seniority in months")
	cmd.Flags().StringVar(&joinDate, "join-date", "", "join date, used instead of --months")
	return cmd
}
