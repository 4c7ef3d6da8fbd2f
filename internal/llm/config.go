package llm

import (
	"os"
	"strconv"
)

// TaskType identifies the pipeline stage issuing an LLM call.
type TaskType string

const (
	TaskAnalyze  TaskType = "analyze"
	TaskGenerate TaskType = "generate"
	TaskOptimize TaskType = "optimize"
)

// TaskConfig holds per-task sampling parameters.
// MaxTokens 0 means the field is omitted and the backend default applies.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides global if > 0
}

// Config holds all configuration for the LLM subsystem.
type Config struct {
	Endpoint   string
	Model      string
	APIKey     string
	LogCalls   bool
	TimeoutMs  int
	MaxRetries int
	Tasks      map[TaskType]TaskConfig
}

// DefaultConfig returns a Config targeting a local Ollama instance via its
// OpenAI-compatible surface.
func DefaultConfig() Config {
	return Config{
		Endpoint:   "http://localhost:11434/v1",
		Model:      "qwen2.5-coder:7b",
		APIKey:     "ollama",
		LogCalls:   false,
		TimeoutMs:  30000,
		MaxRetries: 1,
		Tasks: map[TaskType]TaskConfig{
			TaskAnalyze:  {Temperature: 0.3, MaxTokens: 512, TimeoutMs: 15000},
			TaskGenerate: {Temperature: 0.1, MaxTokens: 4096, TimeoutMs: 60000},
			TaskOptimize: {Temperature: 0.2, MaxTokens: 0, TimeoutMs: 30000},
		},
	}
}

// LoadConfig reads LLM configuration from environment variables, falling
// back to defaults for any unset values.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("CODEFORGE_LLM_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("CODEFORGE_LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("CODEFORGE_LLM_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("CODEFORGE_LLM_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("CODEFORGE_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("CODEFORGE_LLM_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}

	applyTaskTimeoutEnv(&cfg, TaskAnalyze, "CODEFORGE_LLM_ANALYZE_TIMEOUT_MS")
	applyTaskTimeoutEnv(&cfg, TaskGenerate, "CODEFORGE_LLM_GENERATE_TIMEOUT_MS")
	applyTaskTimeoutEnv(&cfg, TaskOptimize, "CODEFORGE_LLM_OPTIMIZE_TIMEOUT_MS")

	return cfg
}

// TaskTimeout returns the effective timeout for a given task type.
// Uses the task-specific timeout if set, otherwise the global timeout.
func (c Config) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}

func applyTaskTimeoutEnv(cfg *Config, task TaskType, envName string) {
	v := os.Getenv(envName)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return
	}
	tc := cfg.Tasks[task]
	tc.TimeoutMs = n
	cfg.Tasks[task] = tc
}
