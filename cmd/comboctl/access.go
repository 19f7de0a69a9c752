package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/aslimited22-collab/combo-3em1-atb-prod/internal/app/service/entitlement"
	"github.com/aslimited22-collab/combo-3em1-atb-prod/internal/app/service/purchase"
	"github.com/aslimited22-collab/combo-3em1-atb-prod/internal/models"
	"github.com/aslimited22-collab/combo-3em1-atb-prod/internal/platform/db"
	"github.com/aslimited22-collab/combo-3em1-atb-prod/pkg/config"
	"github.com/aslimited22-collab/combo-3em1-atb-prod/pkg/logger"
)

// openDB loads configuration the same way the API does and connects.
func openDB() (*gorm.DB, *zap.SugaredLogger, error) {
	cfg, err := config.New()
	if err != nil {
		return nil, nil, err
	}
	log, err := logger.New(cfg)
	if err != nil {
		return nil, nil, err
	}
	gdb, err := db.NewDB(log, cfg)
	if err != nil {
		return nil, nil, err
	}
	return gdb, log, nil
}

func closeDB(gdb *gorm.DB) {
	if sqlDB, err := gdb.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func accessCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "access [email]",
		Short: "Run the entitlement check for an email against the database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gdb, log, err := openDB()
			if err != nil {
				return err
			}
			defer closeDB(gdb)

			gate := entitlement.NewGate(purchase.NewStore(gdb, log), log)
			p, err := gate.CheckAccess(cmd.Context(), args[0])
			return printAccess(cmd.OutOrStdout(), args[0], p, err)
		},
	}
}

func printAccess(out io.Writer, email string, p *models.Purchase, err error) error {
	switch {
	case err == nil:
		fmt.Fprintf(out, "%s: entitled (order %s)\n", email, p.OrderID)
	case errors.Is(err, entitlement.ErrAlreadyConsumed):
		fmt.Fprintf(out, "%s: combo already generated\n", email)
	case errors.Is(err, entitlement.ErrNotFound):
		fmt.Fprintf(out, "%s: no approved purchase\n", email)
	default:
		return err
	}
	return nil
}
