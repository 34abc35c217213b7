package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/pavelanni/schreiben/internal/grammar"
	"github.com/pavelanni/schreiben/internal/handler"
	appI18n "github.com/pavelanni/schreiben/internal/i18n"
	"github.com/pavelanni/schreiben/internal/llm"
	"github.com/pavelanni/schreiben/internal/model"
	"github.com/pavelanni/schreiben/internal/report"
	"github.com/pavelanni/schreiben/internal/scoring"
	"github.com/pavelanni/schreiben/internal/session"
	"github.com/pavelanni/schreiben/internal/store"
)

const shutdownTimeout = 5 * time.Second

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "schreiben",
		Short: "Timed B2 writing exam trainer with grammar check and scoring",
	}

	serve := serveCmd()
	root.AddCommand(serve, checkCmd())

	// Make "serve" the default when no subcommand is given.
	root.RunE = serve.RunE

	// Register serve flags on root so bare `schreiben --addr ...` still works.
	root.Flags().AddFlagSet(serve.Flags())

	return root
}

func addCheckerFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("checker", "languagetool", "Grammar checker backend (languagetool, llm)")
	f.String("checker-url", grammar.DefaultURL, "LanguageTool check endpoint")
	f.String("language", grammar.DefaultLanguage, "Language of the essay (BCP 47)")
	f.Duration("cache-ttl", 10*time.Minute, "How long check results are reused for unchanged text (0 disables)")
	f.String("llm-url", "http://localhost:11434/v1", "OpenAI-compatible API base URL")
	f.String("llm-key", "ollama", "API key for LLM")
	f.String("llm-model", "llama3.2", "LLM model name")
	f.Int("min-words", session.DefaultMinWords, "Minimum words before a check is sent")
	f.String("scoring-variant", string(scoring.VariantClassic), "Scoring variant (classic, unified)")
	f.String("log-level", "info", "Log level (debug, info, warn, error)")
	f.String("log-format", "text", "Log format (text, json, tint)")
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the exam page and API",
		RunE:  runServe,
	}
	f := cmd.Flags()
	f.StringP("addr", "a", ":8080", "HTTP listen address")
	f.String("db", "schreiben.db", "SQLite database path for the saved draft")
	f.Duration("duration", 30*time.Minute, "Exam duration")
	f.Duration("tick-interval", time.Second, "Interval between countdown ticks")
	addCheckerFlags(cmd)
	return cmd
}

func checkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check FILE",
		Short: "Check and score an essay file, printing the report",
		Args:  cobra.ExactArgs(1),
		RunE:  runCheck,
	}
	addCheckerFlags(cmd)
	return cmd
}

func setupLogging(cmd *cobra.Command) {
	v := viperForCmd(cmd)

	var logLevel slog.Level
	switch strings.ToLower(v.GetString("log-level")) {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	handlerOpts := &slog.HandlerOptions{Level: logLevel}
	var logHandler slog.Handler
	switch strings.ToLower(v.GetString("log-format")) {
	case "json":
		logHandler = slog.NewJSONHandler(os.Stderr, handlerOpts)
	case "tint":
		logHandler = tint.NewHandler(os.Stderr, &tint.Options{Level: logLevel, TimeFormat: time.Kitchen})
	default:
		logHandler = slog.NewTextHandler(os.Stderr, handlerOpts)
	}
	slog.SetDefault(slog.New(logHandler))
}

// viperForCmd binds a command's flags and environment to a fresh viper instance.
func viperForCmd(cmd *cobra.Command) *viper.Viper {
	v := viper.New()
	_ = v.BindPFlags(cmd.Flags())

	v.SetEnvPrefix("SCHREIBEN")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName("schreiben")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/schreiben")
	v.AddConfigPath("/etc/schreiben")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Warn("error reading config file", "error", err)
		}
	} else {
		slog.Debug("loaded config file", "path", v.ConfigFileUsed())
	}

	return v
}

// examConfig resolves and validates the exam parameters.
func examConfig(v *viper.Viper) (model.ExamConfig, error) {
	variant := strings.ToLower(strings.TrimSpace(v.GetString("scoring-variant")))
	if !scoring.IsValidVariant(variant) {
		slog.Warn("invalid scoring-variant, using classic", "variant", variant)
		variant = string(scoring.VariantClassic)
	}

	cfg := model.ExamConfig{
		Duration:       v.GetDuration("duration"),
		TickInterval:   v.GetDuration("tick-interval"),
		MinWords:       v.GetInt("min-words"),
		Checker:        strings.ToLower(v.GetString("checker")),
		CheckerURL:     v.GetString("checker-url"),
		Language:       v.GetString("language"),
		ScoringVariant: variant,
		CacheTTL:       v.GetDuration("cache-ttl"),
		LLMURL:         v.GetString("llm-url"),
		LLMKey:         v.GetString("llm-key"),
		LLMModel:       v.GetString("llm-model"),
	}
	// The check command defines no clock flags.
	if cfg.Duration == 0 {
		cfg.Duration = 30 * time.Minute
	}
	if cfg.TickInterval == 0 {
		cfg.TickInterval = time.Second
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newChecker builds the configured backend wrapped in the result cache.
func newChecker(ctx context.Context, cfg model.ExamConfig) (grammar.Checker, error) {
	var backend grammar.Checker
	switch cfg.Checker {
	case "llm":
		client := llm.New(cfg.LLMURL, cfg.LLMKey, cfg.LLMModel, cfg.Language)
		if err := client.Ping(ctx); err != nil {
			return nil, fmt.Errorf("LLM health check: %w", err)
		}
		slog.Info("LLM endpoint OK", "url", cfg.LLMURL, "model", cfg.LLMModel)
		backend = client
	default:
		backend = grammar.NewLanguageTool(cfg.CheckerURL, cfg.Language)
	}
	return grammar.Cached(backend, cfg.CacheTTL), nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	setupLogging(cmd)
	v := viperForCmd(cmd)

	cfg, err := examConfig(v)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := store.New(v.GetString("db"))
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := appI18n.Init(appI18n.Lang); err != nil {
		return fmt.Errorf("init i18n: %w", err)
	}

	checker, err := newChecker(ctx, cfg)
	if err != nil {
		return err
	}

	view := handler.NewWebPresenter(session.FormatRemaining(int(cfg.Duration / time.Second)))
	sess := session.New(session.Config{
		Duration: cfg.Duration,
		MinWords: cfg.MinWords,
		Variant:  scoring.Variant(cfg.ScoringVariant),
	}, checker, view, db)
	if _, err := sess.RestoreDraft(); err != nil {
		slog.Warn("could not restore draft", "error", err)
	}

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(appI18n.Middleware(appI18n.Lang))
	handler.New(sess, view).Routes(r)

	srv := &http.Server{
		Addr:              v.GetString("addr"),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("starting server",
		"addr", srv.Addr,
		"checker", cfg.Checker,
		"language", cfg.Language,
		"duration", cfg.Duration,
		"min_words", cfg.MinWords,
		"scoring_variant", cfg.ScoringVariant,
		"cache_ttl", cfg.CacheTTL,
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		clockCtx := appI18n.WithLocalizer(gctx, appI18n.NewLocalizer(appI18n.Lang))
		return sess.Run(clockCtx, cfg.TickInterval)
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown", "error", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen and serve: %w", err)
		}
		slog.Info("server stopped", "addr", srv.Addr)
		return nil
	})
	return g.Wait()
}

func runCheck(cmd *cobra.Command, args []string) error {
	setupLogging(cmd)
	v := viperForCmd(cmd)

	cfg, err := examConfig(v)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read essay: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = appI18n.WithLocalizer(ctx, appI18n.NewLocalizer(appI18n.Lang))

	checker, err := newChecker(ctx, cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	sess := session.New(session.Config{
		Duration: cfg.Duration,
		MinWords: cfg.MinWords,
		Variant:  scoring.Variant(cfg.ScoringVariant),
	}, checker, report.NewPresenter(ctx, out), nil)
	if _, err := sess.SetText(string(data)); err != nil {
		return err
	}

	if _, _, err := sess.Check(ctx); err != nil {
		return fmt.Errorf("check %s: %w", args[0], err)
	}
	return nil
}
