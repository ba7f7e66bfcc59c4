package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"esgcopilot/cmd/esgcopilot/ui"
	"esgcopilot/internal/config"
	"esgcopilot/internal/conversation"
	"esgcopilot/internal/copilot"
	"esgcopilot/internal/gemini"
	"esgcopilot/internal/logging"
	"esgcopilot/internal/store"
	"esgcopilot/internal/types"
)

var (
	// Global flags
	verbose    bool
	apiKey     string
	workspace  string
	configPath string
	timeout    time.Duration

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "esgcopilot",
	Short: "ESG Copilot - AI-assisted VSME self-assessment for SMEs",
	Long: `esgcopilot guides small and medium enterprises through the VSME
(Voluntary SME) ESG reporting standard.

It keeps the whole assessment in a live in-memory workspace: the company
profile, the question catalogue with answers and evidence links, the uploaded
evidence register, and the remediation action board. A Gemini-backed copilot
answers questions, suggests values, extracts facts from documents, and drafts
action plans. Without an API key every AI feature degrades to a documented
offline fallback, so the assessment workflow always works.

Run without arguments to start the interactive copilot chat.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// The chat UI owns the terminal; it configures logging itself.
		if cmd.Use == "esgcopilot" && cmd.CalledAs() == "esgcopilot" {
			return nil
		}

		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: launch the interactive copilot chat
		return runInteractiveChat()
	},
}

// statusCmd shows assessment progress per pillar
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show assessment progress across the three ESG pillars",
	RunE:  showStatus,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "Gemini API key (or set GEMINI_API_KEY env)")
	rootCmd.PersistentFlags().StringVarP(&workspace, "workspace", "w", "", "Workspace directory (default: current)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: <workspace>/.esgcopilot/config.yaml)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 2*time.Minute, "AI request timeout")

	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(assessCmd)
	rootCmd.AddCommand(evidenceCmd)
	rootCmd.AddCommand(actionsCmd)
	rootCmd.AddCommand(profileCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app bundles the wired-up backend shared by every command.
type app struct {
	cfg      config.Config
	store    *store.Store
	log      *conversation.Log
	copilot  *copilot.Copilot
	inflight *copilot.Inflight
}

// newApp loads configuration, initializes the category logger, and wires the
// store and copilot. The generative client is only constructed when a
// credential is present; otherwise the copilot runs in unconfigured mode.
func newApp(ctx context.Context) (*app, error) {
	ws := workspace
	if ws == "" {
		ws, _ = os.Getwd()
	}

	path := configPath
	if path == "" {
		path = config.DefaultPath(ws)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if apiKey != "" {
		cfg.Gemini.APIKey = apiKey
	}

	if err := logging.Initialize(ws, cfg.Logging.DebugMode, cfg.Logging.Categories); err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}
	logging.Boot("workspace=%s configured=%t model=%s", ws, cfg.Gemini.Configured(), cfg.Gemini.Model)

	var gen gemini.Generator
	if cfg.Gemini.Configured() {
		client, err := gemini.NewClient(ctx, gemini.Config{
			APIKey:  cfg.Gemini.APIKey,
			Model:   cfg.Gemini.Model,
			Timeout: cfg.Gemini.RequestTimeout(),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini client: %w", err)
		}
		gen = client
	}

	return &app{
		cfg:      cfg,
		store:    store.New(),
		log:      conversation.New(),
		copilot:  copilot.New(gen),
		inflight: copilot.NewInflight(),
	}, nil
}

// showStatus prints the dashboard summary.
func showStatus(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}

	s := currentStyles()
	p := a.store.Progress()
	company := a.store.Company()

	fmt.Println(ui.Logo(s))
	fmt.Println(s.Title.Render(fmt.Sprintf("%s — ESG Assessment %d", company.Name, company.ReportingYear)))
	fmt.Printf("%s %d%% (%d of %d answered)\n\n",
		s.RenderProgressBar(p.Done, p.Total, 30), p.Percent(), p.Done, p.Total)

	for _, cat := range types.Categories() {
		cp := p.ByCategory[cat]
		fmt.Printf("  %-12s %s %d/%d\n",
			string(cat), s.RenderProgressBar(cp.Done, cp.Total, 20), cp.Done, cp.Total)
	}

	mode := s.Success.Render("AI connected")
	if !a.copilot.Configured() {
		mode = s.Warning.Render("offline mode (no API key)")
	}
	fmt.Printf("\n  %s\n", mode)
	return nil
}
