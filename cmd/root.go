package cmd

import (
	"errors"
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Vikasjoshi008/github-skill-analyzer/internal/stats"
)

const (
	app = "github-skill-analyzer"
)

type Config struct {
	Listen   string          `mapstructure:"listen"`
	GitHub   *GitHubConfig   `mapstructure:"github"`
	Scoring  stats.Weights   `mapstructure:"scoring"`
	Evidence *EvidenceConfig `mapstructure:"evidence"`
	AI       *AIConfig       `mapstructure:"ai"`
}

type GitHubConfig struct {
	Token     string `mapstructure:"token"`
	TokenFile string `mapstructure:"token-file"`
}

type EvidenceConfig struct {
	MaxRepos int `mapstructure:"max-repos"`
}

type AIConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Provider string        `mapstructure:"provider"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKey         string `mapstructure:"api-key"`
	APIKeyFile     string `mapstructure:"api-key-file"`
	Model          string `mapstructure:"model"`
	MaxLogLength   int    `mapstructure:"max-log-length"`
	TimeoutSeconds int    `mapstructure:"timeout-seconds"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "github-skill-analyzer derives skill statistics from a GitHub profile and audits them with Gemini",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// A .env file is a convenience for local runs; absence is fine.
	_ = godotenv.Load()

	if err := viper.BindEnv("github.token-file", "GITHUB_TOKEN_FILE"); err != nil {
		log.Fatalf("binding GITHUB_TOKEN_FILE environment variable: %v", err)
	}
	if err := viper.BindEnv("github.token", "GITHUB_TOKEN"); err != nil {
		log.Fatalf("binding GITHUB_TOKEN environment variable: %v", err)
	}
	if err := viper.BindEnv("ai.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}
	if err := viper.BindEnv("ai.gemini.api-key", "GEMINI_API_KEY"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is "+app+".yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// Every setting has a default, so a missing config file is fine; a
	// present but unparsable one is not.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	if config == nil {
		config = &Config{}
	}

	return config, nil
}
