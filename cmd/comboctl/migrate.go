package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aslimited22-collab/combo-3em1-atb-prod/internal/platform/db"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the purchases and webhook_delivery_log tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			gdb, log, err := openDB()
			if err != nil {
				return err
			}
			defer closeDB(gdb)

			if err := db.AutoMigrate(log, gdb); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migration completed")
			return nil
		},
	}
}
