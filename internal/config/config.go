// Package config loads lexiz settings from an optional YAML file, a .env
// file and LEXIZ_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/abhisek/lexiz/internal/llm"
	"github.com/abhisek/lexiz/internal/quiz"
)

// EnvPrefix prefixes every environment variable lexiz reads.
const EnvPrefix = "LEXIZ"

var validate = validator.New()

// Config holds application configuration.
type Config struct {
	Env     string   `mapstructure:"env" validate:"oneof=development production"`
	DB      string   `mapstructure:"db"`       // SQLite path ("" = default data dir)
	LogFile string   `mapstructure:"log_file"` // "" = default state dir
	Words   []string `mapstructure:"words"`    // word list files used instead of the database
	Quiz    Quiz     `mapstructure:"quiz"`
	LLM     LLM      `mapstructure:"llm"`
}

// Quiz holds the default quiz settings shown on the setup screen.
type Quiz struct {
	Direction string `mapstructure:"direction" validate:"oneof=term-to-meaning meaning-to-term"`
	From      int    `mapstructure:"from" validate:"min=0"`
	To        int    `mapstructure:"to" validate:"omitempty,gtefield=From"`
	Group     string `mapstructure:"group"`
	Count     int    `mapstructure:"count" validate:"min=1,max=50"`
}

// LLM configures the optional memory tips provider.
type LLM struct {
	Provider   string        `mapstructure:"provider" validate:"omitempty,oneof=anthropic openai gemini openrouter mock"`
	Timeout    time.Duration `mapstructure:"timeout" validate:"min=0"`
	Anthropic  Provider      `mapstructure:"anthropic"`
	OpenAI     Provider      `mapstructure:"openai"`
	Gemini     Provider      `mapstructure:"gemini"`
	OpenRouter Provider      `mapstructure:"openrouter"`
}

// Provider holds the credentials and model for one LLM provider.
type Provider struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

func setDefaults(v *viper.Viper) {
	def := quiz.DefaultSettings()
	llmDef := llm.DefaultConfig()

	v.SetDefault("env", "production")
	v.SetDefault("db", "")
	v.SetDefault("log_file", "")
	v.SetDefault("words", []string{})

	v.SetDefault("quiz.direction", def.Direction.String())
	v.SetDefault("quiz.from", def.From)
	v.SetDefault("quiz.to", def.To)
	v.SetDefault("quiz.group", def.Group)
	v.SetDefault("quiz.count", def.Count)

	v.SetDefault("llm.provider", "")
	v.SetDefault("llm.timeout", llmDef.Timeout)
	for name, model := range map[string]string{
		"anthropic":  llmDef.Anthropic.Model,
		"openai":     llmDef.OpenAI.Model,
		"gemini":     llmDef.Gemini.Model,
		"openrouter": llmDef.OpenRouter.Model,
	} {
		v.SetDefault("llm."+name+".api_key", "")
		v.SetDefault("llm."+name+".model", model)
		v.SetDefault("llm."+name+".base_url", "")
	}
}

// Load reads configuration. path names a YAML file; when empty the
// default location is tried and silently skipped if missing. A .env file
// in the working directory is loaded first without overriding variables
// that are already set.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else if dir, err := DefaultDir(); err == nil {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(dir)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("invalid config: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: %s %s", strings.ToLower(fe.Namespace()), fe.Tag(), fe.Param()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

// IsDevelopment reports whether lexiz runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// QuizSettings converts the quiz section into engine settings.
func (c *Config) QuizSettings() (quiz.Settings, error) {
	dir, err := quiz.ParseDirection(c.Quiz.Direction)
	if err != nil {
		return quiz.Settings{}, err
	}
	return quiz.Settings{
		Direction: dir,
		From:      c.Quiz.From,
		To:        c.Quiz.To,
		Group:     c.Quiz.Group,
		Count:     c.Quiz.Count,
	}, nil
}

// LLMConfig builds the provider configuration. When no provider is set,
// the standard provider API key variables are probed. ok is false when no
// provider is available.
func (c *Config) LLMConfig() (cfg llm.Config, ok bool) {
	if c.LLM.Provider == "" {
		cfg, ok = llm.DiscoverConfig()
		if ok && c.LLM.Timeout > 0 {
			cfg.Timeout = c.LLM.Timeout
		}
		return cfg, ok
	}

	cfg = llm.DefaultConfig()
	cfg.Provider = c.LLM.Provider
	if c.LLM.Timeout > 0 {
		cfg.Timeout = c.LLM.Timeout
	}
	cfg.Anthropic = llm.AnthropicConfig{APIKey: c.LLM.Anthropic.APIKey, Model: orDefault(c.LLM.Anthropic.Model, cfg.Anthropic.Model)}
	cfg.OpenAI = llm.OpenAIConfig{APIKey: c.LLM.OpenAI.APIKey, Model: orDefault(c.LLM.OpenAI.Model, cfg.OpenAI.Model), BaseURL: c.LLM.OpenAI.BaseURL}
	cfg.Gemini = llm.GeminiConfig{APIKey: c.LLM.Gemini.APIKey, Model: orDefault(c.LLM.Gemini.Model, cfg.Gemini.Model)}
	cfg.OpenRouter = llm.OpenRouterConfig{
		APIKey:  c.LLM.OpenRouter.APIKey,
		Model:   orDefault(c.LLM.OpenRouter.Model, cfg.OpenRouter.Model),
		BaseURL: c.LLM.OpenRouter.BaseURL,
	}
	return cfg, true
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// DefaultDir returns $XDG_CONFIG_HOME/lexiz or ~/.config/lexiz.
func DefaultDir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "lexiz"), nil
}
