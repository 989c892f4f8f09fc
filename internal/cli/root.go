package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/existflow/digicafe/internal/ambient"
	"github.com/existflow/digicafe/internal/config"
	"github.com/existflow/digicafe/internal/genai"
	"github.com/existflow/digicafe/internal/logger"
	"github.com/existflow/digicafe/internal/match"
	"github.com/existflow/digicafe/internal/tui"
)

var (
	logLevel   string
	logFile    string
	logConsole bool
	seed       uint64

	// cfg is loaded once per invocation by the root command
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "digicafe",
	Short: "Digi Cafe - a cozy study cafe in your terminal",
	Long: `Digi Cafe is a study companion with a focus timer, an AI barista to chat
with, AI-brewed quizzes, a memory match game and ambient sounds.

Run 'digicafe' without arguments to launch the interactive TUI.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			logger.Warn("Failed to load config, using defaults", logger.F("error", err))
			loaded = config.DefaultConfig()
			loaded.ApplyEnv()
		}
		cfg = loaded

		// CLI flags win over file and environment
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel = logLevel
		}
		if cmd.Flags().Changed("log-file") {
			cfg.LogFile = logFile
		}
		if cmd.Flags().Changed("log-console") {
			cfg.LogConsole = logConsole
		}

		logConfig := logger.Config{
			Level:      logger.ParseLevel(cfg.LogLevel),
			FilePath:   cfg.LogFile,
			MaxSize:    10 * 1024 * 1024, // 10MB
			MaxAge:     7,
			MaxBackups: 5,
			Console:    cfg.LogConsole,
		}

		if err := logger.Init(logConfig); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		logger.Info("Digi Cafe started", logger.F("command", cmd.Name()))
		return nil
	},

	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		player := ambient.Player(ambient.NopPlayer{})
		if cfg.AudioEnabled {
			player = ambient.ExecPlayer{Command: cfg.AudioCommand}
		}
		mixer := ambient.NewMixer(ctx, player)
		defer mixer.StopAll()

		logger.Info("Launching TUI")
		m := tui.NewModel(ctx, tui.Deps{
			Generator: newGenerator(),
			Mixer:     mixer,
			Shuffler:  newShuffler(),
			Pacing:    match.Pacing{Match: cfg.MatchDelay, Mismatch: cfg.MismatchDelay},
		})
		p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

		if _, err := p.Run(); err != nil {
			logger.Error("TUI error", logger.F("error", err))
			return fmt.Errorf("failed to run TUI: %w", err)
		}

		logger.Info("TUI exited normally")
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Info("Digi Cafe exiting", logger.F("command", cmd.Name()))
		logger.Close()
	},
}

// newGenerator builds the generation client from the loaded config
func newGenerator() genai.Generator {
	if cfg.APIKey == "" {
		logger.Warn("No API key configured; chat and quiz will use fallbacks")
	}
	return genai.NewClient(genai.Options{
		APIKey:        cfg.APIKey,
		Model:         cfg.Model,
		BaseURL:       cfg.APIBaseURL,
		Timeout:       cfg.RequestTimeout,
		QuizQuestions: cfg.QuizQuestions,
	})
}

func newShuffler() match.Shuffler {
	if seed == 0 {
		return nil
	}
	logger.Info("Using seeded shuffle", logger.F("seed", seed))
	return match.NewSeeded(seed)
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Add logging flags
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (DEBUG, INFO, WARN, ERROR)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Path to log file")
	rootCmd.PersistentFlags().BoolVar(&logConsole, "log-console", false, "Enable console logging")
	rootCmd.PersistentFlags().Uint64Var(&seed, "seed", 0, "Match game shuffle seed (0 = random)")

	// Add subcommands
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(keyCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}
