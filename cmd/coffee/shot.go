package coffee

import (
	"fmt"
	"strings"

	"github.com/Mixilino/coffee-management/internal/service"
	"github.com/spf13/cobra"
)

var shotCmd = &cobra.Command{
	Use:   "shot",
	Short: "Log and manage espresso shots",
}

var (
	shotCoffeeID string
	shotGramsIn  float64
	shotGrind    string
	shotTime     int
	shotYield    float64
	shotDate     string
)

var shotLogCmd = &cobra.Command{
	Use:   "log",
	Short: "Log a shot (updates the coffee's remaining weight)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requirePositive("--in", shotGramsIn); err != nil {
			return err
		}
		if err := requirePositive("--out", shotYield); err != nil {
			return err
		}
		if shotTime <= 0 {
			return fmt.Errorf("--time must be > 0")
		}
		date, err := parseDateOrNow(shotDate)
		if err != nil {
			return err
		}
		return withState(true, func(ledger *service.Ledger, shots *service.ExtractionLog) error {
			c, ok := ledger.ByID(shotCoffeeID)
			if !ok {
				return fmt.Errorf("coffee %s not found", shotCoffeeID)
			}
			id := shots.LogShot(service.LogShotInput{
				CoffeeID:       c.ID,
				CoffeeName:     c.Name,
				CoffeeSeller:   c.Seller,
				GramsIn:        shotGramsIn,
				GrinderSetting: strings.TrimSpace(shotGrind),
				TimeSeconds:    shotTime,
				YieldGrams:     shotYield,
				Date:           date,
			})
			e, _ := shots.ByID(id)
			c, _ = ledger.ByID(shotCoffeeID)
			fmt.Fprintf(cmd.OutOrStdout(), "Logged shot %s: %.1fg in, %.1fg out, ratio %.2f:1, %ds\n", id, e.GramsIn, e.YieldGrams, e.Ratio, e.TimeSeconds)
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s remaining\n", c.Name, formatGrams(c.Remaining))
			fmt.Fprintf(cmd.OutOrStdout(), "Rate it with: coffee shot rate %s --rating N\n", id)
			return nil
		})
	},
}

var (
	rateRating int
	rateNotes  string
)

var shotRateCmd = &cobra.Command{
	Use:   "rate <shot-id>",
	Short: "Rate a shot and get an extraction recommendation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if rateRating < 1 || rateRating > 5 {
			return fmt.Errorf("--rating must be between 1 and 5")
		}
		return withState(true, func(ledger *service.Ledger, shots *service.ExtractionLog) error {
			if _, ok := shots.ByID(args[0]); !ok {
				return fmt.Errorf("shot %s not found", args[0])
			}
			shots.AttachRatingAndNotes(args[0], rateRating, strings.TrimSpace(rateNotes))
			e, _ := shots.ByID(args[0])
			rec := e.Recommendation
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", rec.Reason)
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", service.QuickSummary(*rec))
			if rec.Severity != "none" {
				fmt.Fprintf(cmd.OutOrStdout(), "severity: %s\n", rec.Severity)
			}
			return nil
		})
	},
}

var shotDeleteCmd = &cobra.Command{
	Use:   "delete <shot-id>",
	Short: "Delete a shot (restores the coffee's remaining weight)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withState(true, func(ledger *service.Ledger, shots *service.ExtractionLog) error {
			e, ok := shots.ByID(args[0])
			if !ok {
				return fmt.Errorf("shot %s not found", args[0])
			}
			shots.Delete(args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted shot %s (%s)\n", e.ID, e.CoffeeName)
			return nil
		})
	},
}

var (
	shotListCoffee string
	shotListLimit  int
)

var shotListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent shots",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withState(false, func(ledger *service.Ledger, shots *service.ExtractionLog) error {
			extractions := shots.Recent(shotListLimit)
			if strings.TrimSpace(shotListCoffee) != "" {
				extractions = shots.ByCoffee(shotListCoffee)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tDATE\tCOFFEE\tIN\tOUT\tRATIO\tTIME\tGRIND\tRATING")
			for _, e := range extractions {
				rating := "-"
				if e.Rating != nil {
					rating = fmt.Sprintf("%d/5", *e.Rating)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%.1f\t%.1f\t%.2f\t%ds\t%s\t%s\n",
					e.ID, e.Date.Format("2006-01-02 15:04"), e.CoffeeName, e.GramsIn, e.YieldGrams, e.Ratio, e.TimeSeconds, e.GrinderSetting, rating)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(shotCmd)
	shotCmd.AddCommand(shotLogCmd, shotRateCmd, shotDeleteCmd, shotListCmd)

	shotLogCmd.Flags().StringVar(&shotCoffeeID, "coffee", "", "Coffee id")
	shotLogCmd.Flags().Float64Var(&shotGramsIn, "in", 0, "Dose in grams")
	shotLogCmd.Flags().StringVar(&shotGrind, "grind", "", "Grinder setting")
	shotLogCmd.Flags().IntVar(&shotTime, "time", 0, "Shot time in seconds")
	shotLogCmd.Flags().Float64Var(&shotYield, "out", 0, "Yield in grams")
	shotLogCmd.Flags().StringVar(&shotDate, "date", "", "Shot time (default now)")
	_ = shotLogCmd.MarkFlagRequired("coffee")
	_ = shotLogCmd.MarkFlagRequired("in")
	_ = shotLogCmd.MarkFlagRequired("time")
	_ = shotLogCmd.MarkFlagRequired("out")

	shotRateCmd.Flags().IntVar(&rateRating, "rating", 0, "Rating 1-5")
	shotRateCmd.Flags().StringVar(&rateNotes, "notes", "", "Tasting notes")
	_ = shotRateCmd.MarkFlagRequired("rating")

	shotListCmd.Flags().StringVar(&shotListCoffee, "coffee", "", "Only shots of this coffee id")
	shotListCmd.Flags().IntVar(&shotListLimit, "limit", 10, "Max shots to show")
}
