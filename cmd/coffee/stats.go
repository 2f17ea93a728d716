package coffee

import (
	"fmt"

	"github.com/Mixilino/coffee-management/internal/service"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show overall and per-coffee shot statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withState(false, func(ledger *service.Ledger, shots *service.ExtractionLog) error {
			report := service.BuildStats(ledger.All(), shots.All())

			fmt.Fprintf(cmd.OutOrStdout(), "Total shots: %d\n", report.TotalShots)
			fmt.Fprintf(cmd.OutOrStdout(), "Coffee used: %s\n", formatGrams(report.TotalUsed))
			if report.AvgRating > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Avg rating: %.1f/5\n", report.AvgRating)
			}
			if report.TotalShots > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Avg ratio: %.1f:1\n", report.AvgRatio)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Coffees: %d (%d active)\n", report.TotalCoffees, report.ActiveCoffees)

			if len(report.ByCoffee) > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "\nCOFFEE\tSHOTS\tUSED\tAVG TIME\tAVG RATIO\tAVG RATING\tBEST")
				for _, c := range report.ByCoffee {
					rating, best := "-", "-"
					if c.AvgRating > 0 {
						rating = fmt.Sprintf("%.1f", c.AvgRating)
						best = fmt.Sprintf("%d/5", c.BestRating)
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\t%d\t%.1fg\t%.1fs\t%.1f:1\t%s\t%s\n",
						c.Name, c.Seller, c.TotalShots, c.GramsUsed, c.AvgTime, c.AvgRatio, rating, best)
				}
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
