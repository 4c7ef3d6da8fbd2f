package pipeline

import (
	"context"
	"log/slog"

	"github.com/alexanderramin/codeforge/internal/domain"
	"github.com/alexanderramin/codeforge/internal/llm"
)

// SyntaxChecker reports whether src parses under one language's grammar.
// A nil return means the source is syntactically well formed.
type SyntaxChecker func(src string) error

// Validator checks generated code locally and optionally rewrites it for
// quality via a second LLM call.
type Validator struct {
	client   llm.Client
	checkers map[string]SyntaxChecker
	logger   *slog.Logger
}

// NewValidator creates a Validator. Go is the one grammar checked locally;
// artifacts in any other language pass validation unchecked.
func NewValidator(client llm.Client, logger *slog.Logger) *Validator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Validator{
		client:   client,
		checkers: map[string]SyntaxChecker{"Go": CheckGoSyntax},
		logger:   logger,
	}
}

// Validate transitions the artifact from Pending to Valid or Invalid.
// The language match is case-sensitive and exact; languages without a
// local checker are always Valid (a scope limitation, not a guarantee).
func (v *Validator) Validate(a *domain.GeneratedArtifact) domain.ValidationStatus {
	check, ok := v.checkers[a.Language]
	if !ok {
		a.Status = domain.StatusValid
		return a.Status
	}
	if err := check(a.Body); err != nil {
		a.Status = domain.StatusInvalid
	} else {
		a.Status = domain.StatusValid
	}
	return a.Status
}

// Optimize is best-effort: on success it replaces the body and marks the
// artifact Optimized; on failure the artifact is left completely
// unchanged and the error is only logged.
func (v *Validator) Optimize(ctx context.Context, a *domain.GeneratedArtifact) *domain.GeneratedArtifact {
	resp, err := v.client.Complete(ctx, llm.CompletionRequest{
		Task:       llm.TaskOptimize,
		UserPrompt: buildOptimizePrompt(a.Body),
	})
	if err != nil {
		v.logger.Warn("optimization skipped", "error", err)
		return a
	}

	a.Body = resp.Text
	a.Status = domain.StatusOptimized
	return a
}
