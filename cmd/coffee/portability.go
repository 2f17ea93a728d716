package coffee

import (
	"fmt"
	"os"
	"strings"

	"github.com/Mixilino/coffee-management/internal/service"
	"github.com/spf13/cobra"
)

var (
	exportCoffeesOut string
	exportShotsOut   string
	importCoffeesIn  string
	importShotsIn    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export coffees and shots as CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		if strings.TrimSpace(exportCoffeesOut) == "" && strings.TrimSpace(exportShotsOut) == "" {
			return fmt.Errorf("at least one of --coffees or --shots is required")
		}
		return withState(false, func(ledger *service.Ledger, shots *service.ExtractionLog) error {
			if strings.TrimSpace(exportCoffeesOut) != "" {
				f, err := os.Create(exportCoffeesOut)
				if err != nil {
					return fmt.Errorf("create coffee export: %w", err)
				}
				if err := service.WriteCoffeesCSV(f, ledger.All()); err != nil {
					f.Close()
					return err
				}
				if err := f.Close(); err != nil {
					return fmt.Errorf("close coffee export: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported coffees to %s\n", exportCoffeesOut)
			}
			if strings.TrimSpace(exportShotsOut) != "" {
				f, err := os.Create(exportShotsOut)
				if err != nil {
					return fmt.Errorf("create shot export: %w", err)
				}
				if err := service.WriteExtractionsCSV(f, shots.All()); err != nil {
					f.Close()
					return err
				}
				if err := f.Close(); err != nil {
					return fmt.Errorf("close shot export: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported shots to %s\n", exportShotsOut)
			}
			return nil
		})
	},
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import coffees and shots from CSV (additive by id)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if strings.TrimSpace(importCoffeesIn) == "" && strings.TrimSpace(importShotsIn) == "" {
			return fmt.Errorf("at least one of --coffees or --shots is required")
		}
		return withState(true, func(ledger *service.Ledger, shots *service.ExtractionLog) error {
			if strings.TrimSpace(importCoffeesIn) != "" {
				f, err := os.Open(importCoffeesIn)
				if err != nil {
					return fmt.Errorf("open coffee import: %w", err)
				}
				coffees, err := service.ParseCoffeesCSV(f)
				f.Close()
				if err != nil {
					return err
				}
				inserted := ledger.ImportMerge(coffees)
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d of %d coffees\n", inserted, len(coffees))
			}
			if strings.TrimSpace(importShotsIn) != "" {
				f, err := os.Open(importShotsIn)
				if err != nil {
					return fmt.Errorf("open shot import: %w", err)
				}
				extractions, err := service.ParseExtractionsCSV(f)
				f.Close()
				if err != nil {
					return err
				}
				inserted := shots.ImportMerge(extractions)

				// ImportMerge deliberately skips ledger reconciliation;
				// recompute every coffee touched by the imported shots.
				affected := map[string]bool{}
				for _, e := range extractions {
					affected[e.CoffeeID] = true
				}
				all := shots.All()
				for coffeeID := range affected {
					ledger.RecalculateUsed(coffeeID, all)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d of %d shots (%d coffees reconciled)\n", inserted, len(extractions), len(affected))
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(exportCmd, importCmd)
	exportCmd.Flags().StringVar(&exportCoffeesOut, "coffees", "", "Coffee CSV output path")
	exportCmd.Flags().StringVar(&exportShotsOut, "shots", "", "Shot CSV output path")
	importCmd.Flags().StringVar(&importCoffeesIn, "coffees", "", "Coffee CSV input path")
	importCmd.Flags().StringVar(&importShotsIn, "shots", "", "Shot CSV input path")
}
