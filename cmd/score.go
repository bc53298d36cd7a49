package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/resumetools/ats-scanner/internal/ai"
	"github.com/resumetools/ats-scanner/internal/ai/gemini"
	"github.com/resumetools/ats-scanner/internal/config"
	"github.com/resumetools/ats-scanner/internal/engine"
	"github.com/resumetools/ats-scanner/internal/extract"
	logging "github.com/resumetools/ats-scanner/internal/logger"
	"github.com/resumetools/ats-scanner/internal/report"
	"github.com/resumetools/ats-scanner/internal/scoring"
	"github.com/resumetools/ats-scanner/internal/secrets"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	PromptSaveReport = "Save PDF report"
	PromptShowJSON   = "Show result as JSON"
	PromptExit       = "Exit"
	defaultReportDir = "reports"
	defaultAITimeout = 30 * time.Second
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptSaveReport, PromptShowJSON, PromptExit},
}

var scoreCmd = &cobra.Command{
	Use:   "score <resume-file>",
	Short: "Score a resume document (PDF or DOCX) for ATS compatibility",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		score(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().BoolP("ai", "a", false, "append an AI-generated suggestion to the feedback")
	scoreCmd.Flags().BoolP("auto", "y", false, "save the report and exit without prompting")
	scoreCmd.Flags().StringP("report-dir", "r", "", "directory for rendered PDF reports")

	viper.BindPFlag("report-dir", scoreCmd.Flags().Lookup("report-dir"))
}

// score is the main command for the cli.
func score(cmd *cobra.Command, path string) {
	ctx := context.Background()

	logger, err := logging.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	cfg, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the ats-scanner", zap.String("version", version), zap.String("file", path))

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Fatal("reading resume file", zap.Error(err))
	}

	aiEnabled := cmd.Flag("ai").Value.String() == "true"

	suggester, err := prepareSuggester(ctx, cfg.AI, aiEnabled, logger)
	if err != nil {
		// AI is best-effort: a broken AI setup degrades to no suggestion.
		logger.Warn("ai suggestions disabled", zap.Error(err))
		suggester = nil
	}

	keywords, err := loadKeywords(cfg, logger)
	if err != nil {
		logger.Fatal("loading keywords", zap.Error(err))
	}

	eng := engine.New(engine.Options{
		Keywords:  keywords,
		Suggester: suggester,
		AITimeout: aiTimeout(cfg.AI),
		Logger:    logger,
	})

	result, err := eng.Run(ctx, data, filepath.Ext(path), aiEnabled && suggester != nil)
	if err != nil {
		logger.Fatal("scoring failed", zap.String("reason", rejectionReason(err)), zap.Error(err))
	}

	printResult(result)

	reportDir := strings.TrimSpace(viper.GetString("report-dir"))
	if reportDir == "" {
		reportDir = cfg.ReportDir
	}
	if reportDir == "" {
		reportDir = defaultReportDir
	}

	if cmd.Flag("auto").Value.String() == "true" {
		if err := saveReport(result, reportDir, logger); err != nil {
			// The score is already computed and shown; a missing report is a
			// degraded response, not a failed one.
			logger.Error("report generation failed", zap.Error(err))
		}
		return
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(action, result, reportDir, logger); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Error("action failed", zap.Error(err))
		}
	}
}

func handleAction(action string, result *scoring.Result, reportDir string, logger *zap.Logger) error {
	switch action {
	case PromptSaveReport:
		return saveReport(result, reportDir, logger)
	case PromptShowJSON:
		pretty, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal result: %w", err)
		}
		fmt.Println(string(pretty))
		return nil
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func printResult(result *scoring.Result) {
	fmt.Printf("\nATS compatibility score: %d/100\n\n", result.Score)
	for _, item := range result.Feedback {
		fmt.Printf("%s %s\n", item.Severity.Marker(), item.Message)
	}
	fmt.Println()
}

func saveReport(result *scoring.Result, dir string, logger *zap.Logger) error {
	store, err := report.NewStore(dir)
	if err != nil {
		return err
	}

	renderer := report.NewRenderer()
	id, err := store.Save(func(w io.Writer) error {
		return renderer.Render(result, w)
	})
	if err != nil {
		return err
	}

	logger.Info("report saved",
		zap.String("report_id", id),
		zap.String("path", store.Path(id)),
	)
	return nil
}

func loadKeywords(cfg *Config, logger *zap.Logger) ([]string, error) {
	if strings.TrimSpace(cfg.KeywordsFile) == "" {
		return config.DefaultKeywords().Flatten(), nil
	}

	keywords, err := config.LoadKeywords(cfg.KeywordsFile)
	if err != nil {
		return nil, err
	}

	logger.Debug("keywords loaded from file",
		zap.String("file", cfg.KeywordsFile),
		zap.Int("count", len(keywords.Flatten())),
	)
	return keywords.Flatten(), nil
}

func prepareSuggester(ctx context.Context, cfg *AIConfig, aiEnabled bool, logger *zap.Logger) (ai.Suggester, error) {
	if !aiEnabled {
		return nil, nil
	}

	if cfg == nil || !cfg.Enabled {
		return nil, errors.New("ai is not enabled in the configuration")
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	if cfg.Gemini == nil {
		return nil, errors.New("gemini configuration is required when ai is enabled")
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: cfg.Gemini.APIKeyFile,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model)
	if err != nil {
		return nil, err
	}

	limiter := requestLimiter(cfg.Gemini.RequestsPerMinute)

	suggesterLogger := logger.With(
		zap.String("provider", "gemini"),
		zap.String("model", generator.Model()),
	)

	return gemini.NewSuggester(generator, limiter, cfg.Gemini.MaxLogLength, suggesterLogger), nil
}

func requestLimiter(perMinute int) *rate.Limiter {
	if perMinute <= 0 {
		perMinute = 6
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1)
}

func aiTimeout(cfg *AIConfig) time.Duration {
	if cfg == nil || cfg.Gemini == nil || cfg.Gemini.TimeoutSeconds <= 0 {
		return defaultAITimeout
	}
	return time.Duration(cfg.Gemini.TimeoutSeconds) * time.Second
}

// rejectionReason names the extraction-stage failure so a rejected upload is
// explained, not reported as a generic error.
func rejectionReason(err error) string {
	switch {
	case errors.Is(err, extract.ErrUnsupportedFormat):
		return "unsupported format: only PDF and DOCX are accepted"
	case errors.Is(err, extract.ErrCorruptDocument):
		return "the document could not be read"
	case errors.Is(err, extract.ErrEmptyDocument):
		return "no text could be extracted from the document"
	default:
		return "internal error"
	}
}
