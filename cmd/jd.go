package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mohit-756/interview-bot/internal/extraction"
	"github.com/mohit-756/interview-bot/internal/models"
)

const (
	PromptYes = "Yes"
	PromptNo  = "No"
)

var jdCmd = &cobra.Command{
	Use:   "jd",
	Short: "Work with job descriptions",
}

var jdExtractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Print the skill taxonomy and default weights of a JD text file",
	RunE: func(cmd *cobra.Command, _ []string) error {
		path, _ := cmd.Flags().GetString("file")
		return jdExtract(cmd.Context(), path, cmd.OutOrStdout())
	},
}

var jdCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Extract a JD text file and save it as a JD configuration",
	RunE: func(cmd *cobra.Command, _ []string) error {
		path, _ := cmd.Flags().GetString("file")
		title, _ := cmd.Flags().GetString("title")
		qualify, _ := cmd.Flags().GetInt("qualify")
		questions, _ := cmd.Flags().GetInt("questions")
		ratio, _ := cmd.Flags().GetInt("project-ratio")
		yes, _ := cmd.Flags().GetBool("yes")

		req := models.JDCreateRequest{Title: title}
		if cmd.Flags().Changed("qualify") {
			req.QualifyScore = qualify
		}
		if cmd.Flags().Changed("questions") {
			req.QuestionCount = questions
		}
		if cmd.Flags().Changed("project-ratio") {
			req.ProjectRatio = ratio
		}
		return jdCreate(cmd.Context(), path, req, yes, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(jdCmd)
	jdCmd.AddCommand(jdExtractCmd, jdCreateCmd)

	jdExtractCmd.Flags().StringP("file", "f", "", "plain-text job description")
	jdExtractCmd.MarkFlagRequired("file")

	jdCreateCmd.Flags().StringP("file", "f", "", "plain-text job description")
	jdCreateCmd.Flags().StringP("title", "t", "", "title shown to candidates")
	jdCreateCmd.Flags().Int("qualify", models.DefaultQualifyScore, "minimum final score for shortlisting")
	jdCreateCmd.Flags().Int("questions", models.DefaultQuestionCount, "number of interview questions")
	jdCreateCmd.Flags().Int("project-ratio", models.DefaultProjectRatio, "percentage of project questions")
	jdCreateCmd.Flags().BoolP("yes", "y", false, "do not ask for confirmation")
	jdCreateCmd.MarkFlagRequired("file")
}

func readJDText(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading jd file: %w", err)
	}
	text := strings.TrimSpace(string(raw))
	if text == "" {
		return "", fmt.Errorf("jd file %s is empty", path)
	}
	return text, nil
}

func printJSON(w io.Writer, v any) error {
	pretty, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(pretty))
	return err
}

func jdExtract(ctx context.Context, path string, out io.Writer) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	text, err := readJDText(path)
	if err != nil {
		return err
	}

	extractor, closers := newExtractor(ctx, cfg, log)
	defer func() {
		for _, c := range closers {
			c()
		}
	}()

	taxonomy := extractor.Extract(ctx, text)
	return printJSON(out, models.ExtractionResponse{
		JDDict:       taxonomy,
		SkillWeights: extraction.DefaultWeights(taxonomy),
	})
}

func jdCreate(ctx context.Context, path string, req models.JDCreateRequest, yes bool, out io.Writer) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	text, err := readJDText(path)
	if err != nil {
		return err
	}

	c, err := build(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer c.Close()

	extracted := c.svc.ExtractJD(ctx, text)
	if err := printJSON(out, extracted); err != nil {
		return err
	}

	if !yes {
		prompt := promptui.Select{
			Label: "Save this JD?",
			Items: []string{PromptYes, PromptNo},
		}
		_, answer, err := prompt.Run()
		if err != nil {
			return err
		}
		if answer != PromptYes {
			log.Info("jd not saved")
			return nil
		}
	}

	req.JDText = text
	req.JDDict = &extracted.JDDict
	req.SkillWeights = extracted.SkillWeights

	jd, err := c.svc.CreateJD(ctx, req)
	if err != nil {
		return err
	}
	log.Info("jd saved", zap.Int64("id", jd.ID), zap.String("title", jd.Title))
	return nil
}
