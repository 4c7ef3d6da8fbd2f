package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"strings"

	"github.com/alexanderramin/codeforge/internal/domain"
)

// ErrEmptyRequirement rejects blank input before any backend call.
var ErrEmptyRequirement = errors.New("enter a requirement")

// StatusTest marks the placeholder result returned when the pipeline
// services are not wired at all.
const StatusTest = "test"

// maxTraceLen bounds the diagnostic trace attached to internal errors.
const maxTraceLen = 500

// GenerationRequest is the inbound trigger from the HTTP layer.
// Framework is recorded with saved projects but ignored by generation.
type GenerationRequest struct {
	Requirement string `json:"requirement"`
	Language    string `json:"language"`
	Framework   string `json:"framework"`
}

// Principal identifies the acting user for one request.
type Principal struct {
	Username string
	Role     domain.Role
}

// GenerationResult is the outbound result surfaced to the caller.
type GenerationResult struct {
	Code        string `json:"code"`
	Language    string `json:"language"`
	Status      string `json:"status"`
	GeneratedBy string `json:"generated_by"`
	Note        string `json:"note,omitempty"`
}

// InternalError carries a bounded diagnostic trace for failures recovered
// at the orchestrator boundary.
type InternalError struct {
	Message string
	Trace   string
}

func (e *InternalError) Error() string { return e.Message }

// Orchestrator sequences analyze -> generate -> validate -> optimize with
// role-based gating. The three services are injected at construction;
// there is no runtime service lookup.
type Orchestrator struct {
	analyzer  *Analyzer
	generator *Generator
	validator *Validator
	logger    *slog.Logger
}

// NewOrchestrator wires the pipeline. Passing nil services is tolerated:
// requests then take the placeholder path instead of failing.
func NewOrchestrator(analyzer *Analyzer, generator *Generator, validator *Validator, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		analyzer:  analyzer,
		generator: generator,
		validator: validator,
		logger:    logger,
	}
}

// HandleGeneration runs one full pipeline execution. It returns either a
// usable (possibly degraded, clearly labeled) result or a structured
// error; a panic anywhere in the sequence is converted into an
// InternalError rather than crashing the process.
func (o *Orchestrator) HandleGeneration(ctx context.Context, req GenerationRequest, principal Principal) (result *GenerationResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			trace := string(debug.Stack())
			if len(trace) > maxTraceLen {
				trace = trace[len(trace)-maxTraceLen:]
			}
			o.logger.Error("generation pipeline panicked", "panic", r)
			result = nil
			err = &InternalError{
				Message: fmt.Sprintf("generation failed: %v", r),
				Trace:   trace,
			}
		}
	}()

	text := strings.TrimSpace(req.Requirement)
	if text == "" {
		return nil, ErrEmptyRequirement
	}

	language := req.Language
	if language == "" {
		language = fallbackLanguage
	}
	username := principal.Username
	if username == "" {
		username = "unknown"
	}

	if o.analyzer == nil || o.generator == nil || o.validator == nil {
		o.logger.Warn("pipeline services unavailable, returning placeholder result")
		return placeholderResult(text, language, username), nil
	}

	requirement := domain.NewRequirement(text)
	intent := o.analyzer.Analyze(ctx, requirement)

	// The caller's explicit language selection overrides whatever the
	// analyzer inferred.
	intent.TargetLanguage = language

	withComments := principal.Role == domain.RoleStudent
	artifact := o.generator.Generate(ctx, intent, withComments)

	status := o.validator.Validate(artifact)
	if status == domain.StatusValid && principal.Role.Has(domain.PermOptimize) {
		o.validator.Optimize(ctx, artifact)
	}

	o.logger.Info("generation completed",
		"user", username,
		"language", artifact.Language,
		"status", artifact.Status,
	)

	return &GenerationResult{
		Code:        artifact.Body,
		Language:    artifact.Language,
		Status:      string(artifact.Status),
		GeneratedBy: username,
	}, nil
}

// placeholderResult is the structural fallback for wiring failures: a
// clearly marked stub so the user experience degrades instead of breaking.
func placeholderResult(requirement, language, username string) *GenerationResult {
	code := fmt.Sprintf(`// Generated code in %s
// Requirement: %s

func main() {
	println("Hello, World!")
}
`, language, requirement)

	return &GenerationResult{
		Code:        code,
		Language:    language,
		Status:      StatusTest,
		GeneratedBy: username,
		Note:        "placeholder output: generation services are not configured",
	}
}
