package coffee

import (
	"fmt"

	"github.com/Mixilino/coffee-management/internal/app"
	"github.com/Mixilino/coffee-management/internal/db"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the local coffee database",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveDBPath()
		if err != nil {
			return err
		}
		if err := app.EnsureDBDir(path); err != nil {
			return err
		}

		sqldb, err := db.Open(path)
		if err != nil {
			return err
		}
		defer sqldb.Close()

		ledger, shots, err := db.LoadState(sqldb)
		if err != nil {
			return err
		}
		if err := db.SaveState(sqldb, ledger, shots); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Initialized coffee database at %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func resolveDBPath() (string, error) {
	if dbPath != "" {
		return dbPath, nil
	}
	return app.DefaultDBPath()
}
