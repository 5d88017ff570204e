package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mohit-756/interview-bot/internal/ingestion"
	"github.com/mohit-756/interview-bot/internal/models"
	"github.com/mohit-756/interview-bot/internal/scoring"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a resume against a JD taxonomy file",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}
		defer log.Sync()

		resumePath, _ := cmd.Flags().GetString("resume")
		jdPath, _ := cmd.Flags().GetString("jd-file")
		qualify, _ := cmd.Flags().GetInt("qualify")

		raw, err := os.ReadFile(jdPath)
		if err != nil {
			return fmt.Errorf("reading jd file: %w", err)
		}
		var taxonomy models.JDTaxonomy
		if err := json.Unmarshal(raw, &taxonomy); err != nil {
			return fmt.Errorf("parsing jd file: %w", err)
		}

		text := ingestion.NewTextExtractor(log).Text(resumePath)
		if strings.TrimSpace(text) == "" {
			log.Warn("no text extracted from resume", zap.String("path", resumePath))
		}

		result := newScorer(cfg, log).Analyze(text, taxonomy.Normalized(), qualify)
		return printJSON(cmd.OutOrStdout(), result)
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().StringP("resume", "r", "", "resume file (.pdf, .docx, .doc or .txt)")
	scoreCmd.Flags().String("jd-file", "", "JSON file with the JD taxonomy")
	scoreCmd.Flags().Int("qualify", scoring.DefaultQualifyScore, "minimum final score for shortlisting")
	scoreCmd.MarkFlagRequired("resume")
	scoreCmd.MarkFlagRequired("jd-file")
}
