package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alexanderramin/codeforge/internal/domain"
	"github.com/alexanderramin/codeforge/internal/llm"
)

// artifactName is the display name of every artifact produced by a
// generation request.
const artifactName = "Generated"

// Generator turns a structured intent into a code artifact.
type Generator struct {
	client          llm.Client
	commentLanguage string
	logger          *slog.Logger
}

// NewGenerator creates a Generator. commentLanguage is the human language
// used when the caller requests commented output.
func NewGenerator(client llm.Client, commentLanguage string, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{client: client, commentLanguage: commentLanguage, logger: logger}
}

// Generate always produces a displayable artifact: on gateway failure the
// body is a single-line error marker and the status stays Pending.
func (g *Generator) Generate(ctx context.Context, intent domain.StructuredIntent, withComments bool) *domain.GeneratedArtifact {
	resp, err := g.client.Complete(ctx, llm.CompletionRequest{
		Task:       llm.TaskGenerate,
		UserPrompt: buildGenerationPrompt(intent, withComments, g.commentLanguage),
	})
	if err != nil {
		g.logger.Warn("code generation failed", "language", intent.TargetLanguage, "error", err)
		body := fmt.Sprintf("// generation error: %v", err)
		return domain.NewGeneratedArtifact(artifactName, body, intent.TargetLanguage, withComments)
	}

	return domain.NewGeneratedArtifact(artifactName, resp.Text, intent.TargetLanguage, withComments)
}
