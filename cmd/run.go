package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/tarinagarwal/RRC2025/internal/ai/gemini"
	"github.com/tarinagarwal/RRC2025/internal/guidance"
	"github.com/tarinagarwal/RRC2025/internal/jobsearch"
	"github.com/tarinagarwal/RRC2025/internal/logger"
	"github.com/tarinagarwal/RRC2025/internal/pipeline"
	"github.com/tarinagarwal/RRC2025/internal/resume"
	"github.com/tarinagarwal/RRC2025/internal/scoring"
	"github.com/tarinagarwal/RRC2025/internal/secrets"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the matching pipeline for a resume",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("resume", "r", "", "path to the resume PDF (required)")
	runCmd.Flags().StringP("location", "l", "", "preferred job location. Default is taken from the resume.")
	runCmd.Flags().Bool("remote", false, "prefer remote positions")
	runCmd.Flags().IntP("salary", "s", 0, "minimum salary")
	runCmd.Flags().StringP("output", "o", "", "write the full result as JSON to this file")

	runCmd.MarkFlagRequired("resume")
}

// run is the main command for the cli.
func run(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the job-matcher", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	pipe, err := buildPipeline(ctx, config, logger)
	if err != nil {
		logger.Fatal("building the pipeline", zap.Error(err))
	}

	resumePath, _ := cmd.Flags().GetString("resume")
	location, _ := cmd.Flags().GetString("location")
	remote, _ := cmd.Flags().GetBool("remote")
	salary, _ := cmd.Flags().GetInt("salary")
	output, _ := cmd.Flags().GetString("output")

	pipe.OnProgress(func(p pipeline.Progress) {
		logger.Info(p.Message, zap.String("step", string(p.Step)), zap.Int("progress", p.Percent))
	})

	state := pipe.Run(ctx, pipeline.Request{
		ResumePath: resumePath,
		Location:   location,
		Remote:     remote,
		MinSalary:  salary,
	})

	if state.CurrentStep == pipeline.StepError {
		logger.Fatal("the pipeline failed", zap.Strings("errors", state.Errors))
	}

	fmt.Println(pipeline.Summary(state))

	if output != "" {
		data, err := json.MarshalIndent(state, "", "  ")
		if err != nil {
			logger.Fatal("encoding results", zap.Error(err))
		}
		if err := os.WriteFile(output, data, 0o644); err != nil {
			logger.Fatal("writing results file", zap.Error(err))
		}
		logger.Info("results saved", zap.String("file", output))
	}
}

// buildPipeline wires the pipeline stages from the configuration.
func buildPipeline(ctx context.Context, config *Config, logger *zap.Logger) (*pipeline.Pipeline, error) {
	apiKey, err := resolveAPIKey(config)
	if err != nil {
		return nil, fmt.Errorf("loading gemini api key: %w", err)
	}

	client, err := gemini.NewClient(ctx, apiKey, config.Gemini.Model, config.Gemini.EmbedModel)
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	provider := jobsearch.NewClient(config.ScraperURL, logger)
	searcher := jobsearch.NewSearcher(provider, jobsearch.DefaultCountryRules(),
		config.Search.ResultsWanted, config.Search.HoursOld, logger)

	scorer := scoring.NewScorer(scoring.NewSkillSimilarity(client), *config.Scoring.Weights, logger)
	stage := scoring.NewStage(
		scoring.NewExtractor(client, logger),
		scorer,
		scoring.NewAnalyzer(client),
		config.Scoring.Workers,
		logger,
	)

	return pipeline.New(pipeline.Deps{
		Parser:   resume.NewHTTPParser(config.ParserURL, logger),
		Enhancer: resume.NewEnhancer(client, logger),
		Planner:  jobsearch.NewPlanner(client, logger),
		Searcher: searcher,
		Scoring:  stage,
		Coach:    guidance.NewCoach(client, logger),
		Logger:   logger,
	}), nil
}

func resolveAPIKey(config *Config) (string, error) {
	key, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: config.Gemini.APIKey,
		File:  config.Gemini.APIKeyFile,
	})
	if err == nil {
		return key, nil
	}

	// Last resort: ask on the terminal.
	prompt := promptui.Prompt{
		Label: "Gemini API key",
		Mask:  '*',
	}
	key, promptErr := prompt.Run()
	if promptErr != nil || key == "" {
		return "", err
	}

	return key, nil
}
