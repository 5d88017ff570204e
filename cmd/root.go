package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/mohit-756/interview-bot/internal/config"
	"github.com/mohit-756/interview-bot/internal/logger"
)

const (
	app = "interview-bot"
)

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:          app,
		Short:        "interview-bot screens resumes against job descriptions and runs first-round interviews",
		SilenceUsage: true,
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(loadDotEnv)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is interview-bot.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

// loadDotEnv exports variables from ./.env when the file exists
func loadDotEnv() {
	if _, err := os.Stat(".env"); errors.Is(err, os.ErrNotExist) {
		return
	}
	if err := godotenv.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "loading .env: %v\n", err)
	}
}

// setup builds the logger and loads the configuration
func setup() (*config.Config, *zap.Logger, error) {
	log, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		return nil, nil, fmt.Errorf("creating a logger: %w", err)
	}

	cfg, err := config.Load(viper.New(), cfgFile)
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}
