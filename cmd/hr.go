package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mohit-756/interview-bot/internal/workflow"
)

var hrCmd = &cobra.Command{
	Use:   "hr",
	Short: "Manage the HR account",
}

var hrSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the HR account from auth.hr_email and auth.hr_password when absent",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		cfg, log, err := setup()
		if err != nil {
			return err
		}
		defer log.Sync()

		db, err := openStore(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer db.Close()

		created, err := seedHR(ctx, db, cfg.Auth.HREmail, cfg.Auth.HRPassword, log)
		if err != nil {
			return err
		}
		if created {
			log.Info("hr account created", zap.String("email", cfg.Auth.HREmail))
		} else {
			log.Info("hr account already exists", zap.String("email", cfg.Auth.HREmail))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(hrCmd)
	hrCmd.AddCommand(hrSeedCmd)
}

func seedHR(ctx context.Context, store workflow.Store, email, password string, log *zap.Logger) (bool, error) {
	return workflow.New(workflow.Deps{Store: store, Log: log}).SeedHR(ctx, email, password)
}
