package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "http://localhost:11434/v1", cfg.Endpoint)
	assert.Equal(t, "qwen2.5-coder:7b", cfg.Model)
	assert.Equal(t, 1, cfg.MaxRetries)

	assert.InDelta(t, 0.3, cfg.Tasks[TaskAnalyze].Temperature, 1e-9)
	assert.Equal(t, 512, cfg.Tasks[TaskAnalyze].MaxTokens)
	assert.InDelta(t, 0.1, cfg.Tasks[TaskGenerate].Temperature, 1e-9)
	assert.Equal(t, 4096, cfg.Tasks[TaskGenerate].MaxTokens)
	assert.InDelta(t, 0.2, cfg.Tasks[TaskOptimize].Temperature, 1e-9)
	assert.Equal(t, 0, cfg.Tasks[TaskOptimize].MaxTokens, "optimize uses backend default")
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("CODEFORGE_LLM_ENDPOINT", "http://example:8080/v1")
	t.Setenv("CODEFORGE_LLM_MODEL", "codellama:13b")
	t.Setenv("CODEFORGE_LLM_MAX_RETRIES", "3")
	t.Setenv("CODEFORGE_LLM_GENERATE_TIMEOUT_MS", "90000")

	cfg := LoadConfig()
	assert.Equal(t, "http://example:8080/v1", cfg.Endpoint)
	assert.Equal(t, "codellama:13b", cfg.Model)
	assert.Equal(t, 3, cfg.MaxRetries)
	assert.Equal(t, 90000, cfg.TaskTimeout(TaskGenerate))
}

func TestLoadConfigIgnoresInvalidValues(t *testing.T) {
	t.Setenv("CODEFORGE_LLM_TIMEOUT_MS", "not-a-number")
	t.Setenv("CODEFORGE_LLM_MAX_RETRIES", "-2")

	cfg := LoadConfig()
	assert.Equal(t, DefaultConfig().TimeoutMs, cfg.TimeoutMs)
	assert.Equal(t, DefaultConfig().MaxRetries, cfg.MaxRetries)
}

func TestTaskTimeoutFallsBackToGlobal(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TimeoutMs = 12345
	cfg.Tasks[TaskOptimize] = TaskConfig{Temperature: 0.2}
	assert.Equal(t, 12345, cfg.TaskTimeout(TaskOptimize))
	assert.Equal(t, 12345, cfg.TaskTimeout(TaskType("unknown")))
}
