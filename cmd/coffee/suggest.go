package coffee

import (
	"fmt"

	"github.com/Mixilino/coffee-management/internal/service"
	"github.com/spf13/cobra"
)

// Starter baseline used when a coffee has no history yet.
const (
	baselineGramsIn = 18.0
	baselineGrind   = "15"
	baselineRatio   = 2.0
	baselineTime    = 28
)

var suggestCmd = &cobra.Command{
	Use:   "suggest <coffee-id>",
	Short: "Suggest starting parameters for the next shot of a coffee",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withState(false, func(ledger *service.Ledger, shots *service.ExtractionLog) error {
			c, ok := ledger.ByID(args[0])
			if !ok {
				return fmt.Errorf("coffee %s not found", args[0])
			}

			s := service.SuggestSettings(c.ID, shots.All())
			if s == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "No shots logged for %s yet; starter baseline:\n", c.Name)
				fmt.Fprintf(cmd.OutOrStdout(), "dose: %.1fg\ngrind: %s\nratio: %.1f:1 (%.1fg out)\ntime: %ds\n",
					baselineGramsIn, baselineGrind, baselineRatio, baselineGramsIn*baselineRatio, baselineTime)
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Suggestion for %s (based on %s, confidence %s):\n", c.Name, s.BasedOn, s.Confidence)
			fmt.Fprintf(cmd.OutOrStdout(), "dose: %.1fg\ngrind: %s\nratio: %.2f:1 (%.1fg out)\ntime: %ds\n",
				s.GramsIn, s.GrinderSetting, s.Ratio, s.GramsIn*s.Ratio, s.TimeSeconds)
			if s.Hint != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "hint: %s\n", s.Hint)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(suggestCmd)
}
