package cmd

import (
	"log"

	"github.com/tarinagarwal/RRC2025/internal/scoring"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "job-matcher"
)

type Config struct {
	ParserURL  string         `mapstructure:"parser-url"`
	ScraperURL string         `mapstructure:"scraper-url"`
	Gemini     *GeminiConfig  `mapstructure:"gemini"`
	Search     *SearchConfig  `mapstructure:"search"`
	Scoring    *ScoringConfig `mapstructure:"scoring"`
	Server     *ServerConfig  `mapstructure:"server"`
}

type GeminiConfig struct {
	APIKey     string `mapstructure:"api-key"`
	APIKeyFile string `mapstructure:"api-key-file"`
	Model      string `mapstructure:"model"`
	EmbedModel string `mapstructure:"embed-model"`
}

type SearchConfig struct {
	ResultsWanted int `mapstructure:"results-wanted"`
	HoursOld      int `mapstructure:"hours-old"`
}

type ScoringConfig struct {
	Workers int              `mapstructure:"workers"`
	Weights *scoring.Weights `mapstructure:"weights"`
}

type ServerConfig struct {
	Addr       string `mapstructure:"addr"`
	UploadsDir string `mapstructure:"uploads-dir"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "job-matcher scores job postings against a parsed resume and suggests next career steps",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("gemini.api-key", "GEMINI_API_KEY"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is job-matcher.yaml in current directory)")
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

	// The config file is optional; defaults and flags cover a full run.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, err
	}

	if config.ParserURL == "" {
		config.ParserURL = "http://localhost:8000"
	}
	if config.ScraperURL == "" {
		config.ScraperURL = "http://localhost:8001"
	}
	if config.Gemini == nil {
		config.Gemini = &GeminiConfig{}
	}
	if config.Search == nil {
		config.Search = &SearchConfig{}
	}
	if config.Scoring == nil {
		config.Scoring = &ScoringConfig{}
	}
	if config.Scoring.Weights == nil {
		weights := scoring.DefaultWeights()
		config.Scoring.Weights = &weights
	}
	if config.Server == nil {
		config.Server = &ServerConfig{}
	}
	if config.Server.Addr == "" {
		config.Server.Addr = ":8080"
	}
	if config.Server.UploadsDir == "" {
		config.Server.UploadsDir = "uploads"
	}

	return config, nil
}
