package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/Vikasjoshi008/github-skill-analyzer/internal/logger"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [username]",
	Short: "Analyze a GitHub profile and print the assembled result as JSON",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runAnalyze(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringP("job-file", "f", "", "file with a job description for gap analysis. Default is unset.")
}

func runAnalyze(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	username := ""
	if len(args) > 0 {
		username = args[0]
	}

	if strings.TrimSpace(username) == "" {
		prompt := promptui.Prompt{Label: "GitHub username"}
		username, err = prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}
	}

	jobDescription, err := readJobDescription(cmd.Flag("job-file").Value.String())
	if err != nil {
		logger.Fatal("reading job description", zap.Error(err))
	}

	pipeline, err := buildPipeline(ctx, config, logger)
	if err != nil {
		logger.Fatal("building the pipeline", zap.Error(err))
	}

	logger.Info("starting the analysis", zap.String("username", strings.TrimSpace(username)))

	result, err := pipeline.Analyze(ctx, username, jobDescription)
	if err != nil {
		logger.Fatal("analysis failed", zap.Error(err))
	}

	pretty, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		logger.Fatal("encoding the result", zap.Error(err))
	}

	fmt.Println(string(pretty))
}

func readJobDescription(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(string(data)), nil
}
