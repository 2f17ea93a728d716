package coffee

import (
	"fmt"

	"github.com/Mixilino/coffee-management/internal/service"
	"github.com/spf13/cobra"
)

var doctorFix bool

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run inventory integrity checks",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withState(doctorFix, func(ledger *service.Ledger, shots *service.ExtractionLog) error {
			report := service.CheckIntegrity(ledger, shots, doctorFix)
			fmt.Fprintf(cmd.OutOrStdout(), "Remaining mismatches: %d\n", report.RemainingMismatches)
			fmt.Fprintf(cmd.OutOrStdout(), "Active-flag mismatches: %d\n", report.ActiveMismatches)
			fmt.Fprintf(cmd.OutOrStdout(), "Used-grams drift: %d\n", report.UsedGramsDrift)
			fmt.Fprintf(cmd.OutOrStdout(), "Orphan shots: %d\n", report.OrphanShots)
			for _, d := range report.Details {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", d)
			}
			if doctorFix {
				fmt.Fprintf(cmd.OutOrStdout(), "Reconciled coffees: %d\n", report.FixedCoffees)
				// Re-check after fixes so the exit status reflects final state.
				report = service.CheckIntegrity(ledger, shots, false)
			}
			if !report.Clean() {
				return fmt.Errorf("doctor found integrity issues")
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Reconcile used grams from the shot log")
}
