package coffee

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var dbPath string

var rootCmd = &cobra.Command{
	Use:   "coffee",
	Short: "coffee tracks espresso bags and shots from your terminal",
	Long:  "coffee is a local-first espresso tracker: bag inventory with weight accounting, a shot log, and guarded dial-in suggestions.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to SQLite database")
}
