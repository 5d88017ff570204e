package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mohit-756/interview-bot/internal/workflow"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the candidate report workbook",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		cfg, log, err := setup()
		if err != nil {
			return err
		}
		defer log.Sync()

		out, _ := cmd.Flags().GetString("out")
		if out == "" {
			out = fmt.Sprintf("candidates_%s.xlsx", time.Now().Format("20060102_150405"))
		}

		db, err := openStore(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer db.Close()

		svc := workflow.New(workflow.Deps{Store: db, Log: log})
		path, err := svc.ExportReportFile(ctx, out)
		if err != nil {
			return err
		}
		log.Info("report written", zap.String("path", path))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringP("out", "o", "", "output file (default candidates_<timestamp>.xlsx)")
}
