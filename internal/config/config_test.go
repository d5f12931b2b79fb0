package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lexiz/internal/quiz"
)

// isolate points config discovery at an empty directory and clears the
// provider variables so the host environment cannot leak in.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	for _, k := range []string{
		"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
		"LEXIZ_ENV", "LEXIZ_DB", "LEXIZ_WORDS", "LEXIZ_QUIZ_COUNT", "LEXIZ_QUIZ_DIRECTION",
		"LEXIZ_LLM_PROVIDER",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	t.Chdir(dir)
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "production", cfg.Env)
	assert.False(t, cfg.IsDevelopment())
	assert.Empty(t, cfg.Words)

	s, err := cfg.QuizSettings()
	require.NoError(t, err)
	assert.Equal(t, quiz.DefaultSettings(), s)

	_, ok := cfg.LLMConfig()
	assert.False(t, ok)
}

func TestLoad_File(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
env: development
db: /tmp/words.db
words:
  - part1.xlsx
  - part2.xlsx
quiz:
  direction: meaning-to-term
  from: 100
  to: 200
  group: Group 3
  count: 20
llm:
  provider: openai
  timeout: 45s
  openai:
    api_key: sk-test
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, "/tmp/words.db", cfg.DB)
	assert.Equal(t, []string{"part1.xlsx", "part2.xlsx"}, cfg.Words)

	s, err := cfg.QuizSettings()
	require.NoError(t, err)
	assert.Equal(t, quiz.Settings{Direction: quiz.MeaningToTerm, From: 100, To: 200, Group: "Group 3", Count: 20}, s)

	lc, ok := cfg.LLMConfig()
	require.True(t, ok)
	assert.Equal(t, "openai", lc.Provider)
	assert.Equal(t, "sk-test", lc.OpenAI.APIKey)
	assert.Equal(t, "gpt-4o-mini", lc.OpenAI.Model)
	assert.Equal(t, 45*time.Second, lc.Timeout)
	assert.NoError(t, lc.Validate())
}

func TestLoad_DefaultLocation(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "lexiz"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lexiz", "config.yaml"), []byte("quiz:\n  count: 5\n"), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Quiz.Count)
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("LEXIZ_QUIZ_COUNT", "25")
	t.Setenv("LEXIZ_QUIZ_DIRECTION", "meaning-to-term")
	t.Setenv("LEXIZ_WORDS", "a.xlsx,b.csv")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 25, cfg.Quiz.Count)
	assert.Equal(t, "meaning-to-term", cfg.Quiz.Direction)
	assert.Equal(t, []string{"a.xlsx", "b.csv"}, cfg.Words)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("ANTHROPIC_API_KEY=from-dotenv\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("ANTHROPIC_API_KEY") })

	cfg, err := Load("")
	require.NoError(t, err)

	lc, ok := cfg.LLMConfig()
	require.True(t, ok)
	assert.Equal(t, "anthropic", lc.Provider)
	assert.Equal(t, "from-dotenv", lc.Anthropic.APIKey)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"count too large", "quiz:\n  count: 500\n", "count"},
		{"bad direction", "quiz:\n  direction: sideways\n", "direction"},
		{"inverted range", "quiz:\n  from: 10\n  to: 5\n", "to"},
		{"unknown provider", "llm:\n  provider: carrier-pigeon\n", "provider"},
		{"bad env", "env: staging\n", "env"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			path := filepath.Join(dir, "c.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o644))

			_, err := Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	dir := isolate(t)
	_, err := Load(filepath.Join(dir, "nope.yaml"))
	assert.Error(t, err)
}
