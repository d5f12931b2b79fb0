package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/lexiz/internal/config"
	"github.com/abhisek/lexiz/internal/llm"
	"github.com/abhisek/lexiz/internal/logging"
	"github.com/abhisek/lexiz/internal/quiz"
	"github.com/abhisek/lexiz/internal/screen"
	"github.com/abhisek/lexiz/internal/store"
	"github.com/abhisek/lexiz/internal/tips"
	"github.com/abhisek/lexiz/internal/vocab"
	"github.com/abhisek/lexiz/internal/wordlist"
)

// errWordFiles is returned by commands that modify the database when the
// corpus comes from --words files.
var errWordFiles = errors.New("word files are in use; drop --words to work with the database")

// runtime bundles what every command needs.
type runtime struct {
	cfg   *config.Config
	log   *zap.Logger
	store *store.Store // nil when the corpus comes from word files
	words vocab.Source
}

// setup loads configuration, builds the logger and opens the word source.
// Word files from --words (or the words config key) take precedence over
// the database.
func setup(cmd *cobra.Command) (*runtime, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	log, err := logging.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}
	rt := &runtime{cfg: cfg, log: log.With(zap.String("command", cmd.Name()))}

	files, _ := cmd.Flags().GetStringSlice("words")
	if len(files) == 0 {
		files = cfg.Words
	}
	if len(files) > 0 {
		res, err := wordlist.LoadFiles(wordlist.Options{}, files...)
		if err != nil {
			rt.Close()
			return nil, fmt.Errorf("load word lists: %w", err)
		}
		if res.Skipped > 0 {
			rt.log.Warn("skipped incomplete rows", zap.Int("rows", res.Skipped))
		}
		rt.log.Debug("loaded word files", zap.Strings("files", files), zap.Int("words", len(res.Records)))
		rt.words = vocab.NewMemorySource(res.Records)
		return rt, nil
	}

	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}
	rt.log.Debug("opened store", zap.String("path", dbPath))
	rt.store = st
	rt.words = st.WordRepo()
	return rt, nil
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the db config key, then the default data path.
func resolveDBPath(cmd *cobra.Command, cfg *config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg.DB != "" {
		return cfg.DB, store.EnsureDir(cfg.DB)
	}
	return store.DefaultDBPath()
}

func (rt *runtime) Close() {
	if rt.store != nil {
		if err := rt.store.Close(); err != nil {
			rt.log.Warn("close store", zap.Error(err))
		}
	}
	_ = rt.log.Sync()
}

// wordRepo returns the database repository for commands that write to it.
func (rt *runtime) wordRepo() (store.WordRepo, error) {
	if rt.store == nil {
		return nil, errWordFiles
	}
	return rt.store.WordRepo(), nil
}

// tipsService builds the memory tips service. It returns nil when no LLM
// provider is configured; the rest of the app works without it.
func (rt *runtime) tipsService(ctx context.Context) *tips.Service {
	llmCfg, ok := rt.cfg.LLMConfig()
	if !ok {
		rt.log.Info("no LLM provider configured, memory tips disabled")
		return nil
	}
	provider, err := llm.NewProvider(ctx, llmCfg, rt.log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Memory tips will be unavailable.")
		rt.log.Warn("init LLM provider", zap.Error(err))
		return nil
	}
	return tips.NewService(provider, tips.DefaultConfig(), rt.log)
}

// screenEnv assembles the TUI dependencies.
func (rt *runtime) screenEnv(ctx context.Context, opts ...quiz.Option) (screen.Env, error) {
	defaults, err := rt.cfg.QuizSettings()
	if err != nil {
		return screen.Env{}, fmt.Errorf("quiz defaults: %w", err)
	}
	return screen.Env{
		Source:      rt.words,
		Tips:        rt.tipsService(ctx),
		Defaults:    defaults,
		Log:         rt.log,
		QuizOptions: opts,
	}, nil
}
