package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mohit-756/interview-bot/internal/notify"
)

var mailCmd = &cobra.Command{
	Use:   "mail",
	Short: "Configure outgoing mail",
}

var mailAuthorizeCmd = &cobra.Command{
	Use:   "authorize",
	Short: "Run the Gmail consent flow and store the token at mail.gmail_token",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}
		defer log.Sync()

		if err := notify.AuthorizeGmail(cmd.Context(), cfg.Mail.GmailCredentials, cfg.Mail.GmailToken, os.Stdin, cmd.OutOrStdout()); err != nil {
			return err
		}
		log.Info("gmail token saved", zap.String("path", cfg.Mail.GmailToken))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mailCmd)
	mailCmd.AddCommand(mailAuthorizeCmd)
}
