package pipeline

import (
	"context"
	"log/slog"

	"github.com/alexanderramin/codeforge/internal/domain"
	"github.com/alexanderramin/codeforge/internal/llm"
)

// fallbackLanguage is used whenever the analyzer cannot infer a target
// language and the caller did not select one.
const fallbackLanguage = "Python"

// Analyzer turns raw requirement text into a structured intent by
// prompting the LLM backend and parsing a JSON payload out of its reply.
type Analyzer struct {
	client llm.Client
	logger *slog.Logger
}

// NewAnalyzer creates an Analyzer backed by an LLM client.
func NewAnalyzer(client llm.Client, logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{client: client, logger: logger}
}

// Analyze is a total function: a gateway or parse failure degrades to an
// intent built from the raw requirement text instead of propagating.
func (a *Analyzer) Analyze(ctx context.Context, req domain.Requirement) domain.StructuredIntent {
	resp, err := a.client.Complete(ctx, llm.CompletionRequest{
		Task:         llm.TaskAnalyze,
		SystemPrompt: analysisSystemPrompt,
		UserPrompt:   buildAnalysisUserPrompt(req.Text),
	})
	if err != nil {
		a.logger.Warn("requirement analysis degraded to raw text", "error", err)
		return fallbackIntent(req.Text)
	}

	intent, err := llm.ExtractJSON[domain.StructuredIntent](resp.Text)
	if err != nil {
		a.logger.Warn("analysis response unparseable, using raw text", "error", err)
		return fallbackIntent(req.Text)
	}

	// Absent fields default independently.
	if intent.Description == "" {
		intent.Description = req.Text
	}
	if intent.TargetLanguage == "" {
		intent.TargetLanguage = fallbackLanguage
	}
	return intent
}

func fallbackIntent(text string) domain.StructuredIntent {
	return domain.StructuredIntent{
		Description:    text,
		TargetLanguage: fallbackLanguage,
	}
}
