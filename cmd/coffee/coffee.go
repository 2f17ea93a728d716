package coffee

import (
	"fmt"
	"strings"

	"github.com/Mixilino/coffee-management/internal/service"
	"github.com/spf13/cobra"
)

var coffeeCmd = &cobra.Command{
	Use:   "coffee",
	Short: "Manage coffee bags and their weight accounting",
}

var (
	addName   string
	addSeller string
	addGrams  float64
)

var coffeeAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a coffee bag (restocks a matching non-archived coffee)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if strings.TrimSpace(addName) == "" {
			return fmt.Errorf("--name is required")
		}
		if err := requirePositive("--grams", addGrams); err != nil {
			return err
		}
		return withState(true, func(ledger *service.Ledger, shots *service.ExtractionLog) error {
			_, existed := ledger.ByPair(addName, addSeller)
			c := ledger.AddOrRestock(addName, addSeller, addGrams)
			if existed {
				fmt.Fprintf(cmd.OutOrStdout(), "Restocked %s (%s): +%s, %s remaining\n", c.Name, c.Seller, formatGrams(addGrams), formatGrams(c.Remaining))
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s): %s\nid: %s\n", c.Name, c.Seller, formatGrams(c.Remaining), c.ID)
			}
			return nil
		})
	},
}

var (
	restockMode  string
	restockGrams float64
)

var coffeeRestockCmd = &cobra.Command{
	Use:   "restock <coffee-id>",
	Short: "Restock a coffee (mode add), or correct its remaining weight (set/custom)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mode := service.RestockMode(strings.ToLower(strings.TrimSpace(restockMode)))
		switch mode {
		case service.RestockAdd, service.RestockSet, service.RestockCustom:
		default:
			return fmt.Errorf("invalid --mode %q (use add, set or custom)", restockMode)
		}
		if err := requirePositive("--grams", restockGrams); err != nil {
			return err
		}
		return withState(true, func(ledger *service.Ledger, shots *service.ExtractionLog) error {
			if _, ok := ledger.ByID(args[0]); !ok {
				return fmt.Errorf("coffee %s not found", args[0])
			}
			ledger.Restock(args[0], mode, restockGrams)
			c, _ := ledger.ByID(args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s remaining\n", c.Name, formatGrams(c.Remaining))
			return nil
		})
	},
}

var (
	adjustActual float64
	adjustReason string
)

var coffeeAdjustCmd = &cobra.Command{
	Use:   "adjust <coffee-id>",
	Short: "Record the actual weighed amount left in the bag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if adjustActual < 0 {
			return fmt.Errorf("--actual must be >= 0")
		}
		return withState(true, func(ledger *service.Ledger, shots *service.ExtractionLog) error {
			if _, ok := ledger.ByID(args[0]); !ok {
				return fmt.Errorf("coffee %s not found", args[0])
			}
			ledger.AdjustActualAmount(args[0], adjustActual, adjustReason)
			c, _ := ledger.ByID(args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s remaining (offset %+.1fg)\n", c.Name, formatGrams(c.Remaining), c.ManualOffset)
			return nil
		})
	},
}

var coffeeArchiveCmd = &cobra.Command{
	Use:   "archive <coffee-id>",
	Short: "Archive a coffee (hides it, keeps its history)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withState(true, func(ledger *service.Ledger, shots *service.ExtractionLog) error {
			c, ok := ledger.ByID(args[0])
			if !ok {
				return fmt.Errorf("coffee %s not found", args[0])
			}
			ledger.Archive(args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "Archived %s (%s)\n", c.Name, c.Seller)
			return nil
		})
	},
}

var coffeeDeleteCmd = &cobra.Command{
	Use:   "delete <coffee-id>",
	Short: "Permanently delete an archived coffee",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withState(true, func(ledger *service.Ledger, shots *service.ExtractionLog) error {
			c, ok := ledger.ByID(args[0])
			if !ok {
				return fmt.Errorf("coffee %s not found", args[0])
			}
			if !c.IsArchived {
				return fmt.Errorf("coffee %s is not archived; archive it first", args[0])
			}
			ledger.DeletePermanently(args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s (%s)\n", c.Name, c.Seller)
			return nil
		})
	},
}

var (
	listAll    bool
	listActive bool
)

var coffeeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List coffees",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withState(false, func(ledger *service.Ledger, shots *service.ExtractionLog) error {
			coffees := ledger.Current()
			if listAll {
				coffees = ledger.All()
			} else if listActive {
				coffees = ledger.Active()
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tNAME\tSELLER\tREMAINING\tBOUGHT\tUSED\tSTATUS")
			for _, c := range coffees {
				status := "active"
				if c.IsArchived {
					status = "archived"
				} else if !c.IsActive {
					status = "empty"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%.1f\t%.1f\t%.1f\t%s\n", c.ID, c.Name, c.Seller, c.Remaining, c.BoughtGrams, c.UsedGrams, status)
			}
			return nil
		})
	},
}

var coffeeOffsetsCmd = &cobra.Command{
	Use:   "offsets",
	Short: "Show the manual correction audit log",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withState(false, func(ledger *service.Ledger, shots *service.ExtractionLog) error {
			fmt.Fprintln(cmd.OutOrStdout(), "TIMESTAMP\tCOFFEE\tBEFORE\tAFTER\tOFFSET\tREASON")
			for _, entry := range ledger.OffsetLogs() {
				coffeeName := "-"
				if entry.CoffeeID != "" {
					if c, ok := ledger.ByID(entry.CoffeeID); ok {
						coffeeName = c.Name
					}
				}
				reason := entry.Reason
				if reason == "" {
					reason = "-"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%.1f\t%.1f\t%+.1f\t%s\n", entry.Timestamp.Format("2006-01-02 15:04"), coffeeName, entry.PreviousRemaining, entry.NewRemaining, entry.Offset, reason)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(coffeeCmd)
	coffeeCmd.AddCommand(coffeeAddCmd, coffeeRestockCmd, coffeeAdjustCmd, coffeeArchiveCmd, coffeeDeleteCmd, coffeeListCmd, coffeeOffsetsCmd)

	coffeeAddCmd.Flags().StringVar(&addName, "name", "", "Coffee name")
	coffeeAddCmd.Flags().StringVar(&addSeller, "seller", "", "Seller/roaster (default Unknown)")
	coffeeAddCmd.Flags().Float64Var(&addGrams, "grams", 0, "Bag weight in grams")
	_ = coffeeAddCmd.MarkFlagRequired("name")
	_ = coffeeAddCmd.MarkFlagRequired("grams")

	coffeeRestockCmd.Flags().StringVar(&restockMode, "mode", "add", "Restock mode: add|set|custom")
	coffeeRestockCmd.Flags().Float64Var(&restockGrams, "grams", 0, "Amount in grams")
	_ = coffeeRestockCmd.MarkFlagRequired("grams")

	coffeeAdjustCmd.Flags().Float64Var(&adjustActual, "actual", 0, "Weighed remaining grams")
	coffeeAdjustCmd.Flags().StringVar(&adjustReason, "reason", "", "Optional reason for the correction")
	_ = coffeeAdjustCmd.MarkFlagRequired("actual")

	coffeeListCmd.Flags().BoolVar(&listAll, "all", false, "Include archived coffees")
	coffeeListCmd.Flags().BoolVar(&listActive, "active", false, "Only coffees with beans left")
}
