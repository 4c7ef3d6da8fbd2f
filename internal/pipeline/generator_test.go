package pipeline

import (
	"context"
	"testing"

	"github.com/alexanderramin/codeforge/internal/domain"
	"github.com/alexanderramin/codeforge/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testIntent() domain.StructuredIntent {
	return domain.StructuredIntent{
		Description:    "a todo list manager",
		TargetLanguage: "Go",
		Entities: domain.EntityList{
			{Name: "Task", Fields: []string{"title", "done"}},
		},
	}
}

func TestGenerator_Generate_Success(t *testing.T) {
	client := newFakeClient()
	client.responses[llm.TaskGenerate] = "```go\npackage main\n\nfunc main() {}\n```"
	g := NewGenerator(client, "English", discardLogger())

	artifact := g.Generate(context.Background(), testIntent(), false)

	assert.Equal(t, "package main\n\nfunc main() {}", artifact.Body)
	assert.Equal(t, "Go", artifact.Language)
	assert.Equal(t, "Generated", artifact.Name)
	assert.False(t, artifact.HasComments)
	assert.Equal(t, domain.StatusPending, artifact.Status)

	calls := client.callsFor(llm.TaskGenerate)
	require.Len(t, calls, 1)
	assert.Contains(t, calls[0].UserPrompt, "Write code in Go:\na todo list manager")
	assert.Contains(t, calls[0].UserPrompt, "Entities: Task(title, done)")
	assert.NotContains(t, calls[0].UserPrompt, "comments")
	assert.Empty(t, calls[0].SystemPrompt)
}

func TestGenerator_Generate_WithComments(t *testing.T) {
	client := newFakeClient()
	client.responses[llm.TaskGenerate] = "code"
	g := NewGenerator(client, "Russian", discardLogger())

	artifact := g.Generate(context.Background(), testIntent(), true)

	assert.True(t, artifact.HasComments)
	calls := client.callsFor(llm.TaskGenerate)
	require.Len(t, calls, 1)
	assert.Contains(t, calls[0].UserPrompt, "Add detailed comments in Russian.")
}

func TestGenerator_Generate_NoEntities(t *testing.T) {
	client := newFakeClient()
	client.responses[llm.TaskGenerate] = "code"
	g := NewGenerator(client, "English", discardLogger())

	intent := testIntent()
	intent.Entities = nil
	g.Generate(context.Background(), intent, false)

	calls := client.callsFor(llm.TaskGenerate)
	require.Len(t, calls, 1)
	assert.NotContains(t, calls[0].UserPrompt, "Entities:")
}

func TestGenerator_Generate_GatewayFailureProducesErrorMarker(t *testing.T) {
	client := newFakeClient()
	client.errs[llm.TaskGenerate] = llm.ErrTimeout
	g := NewGenerator(client, "English", discardLogger())

	artifact := g.Generate(context.Background(), testIntent(), false)

	require.NotNil(t, artifact)
	assert.Contains(t, artifact.Body, "// generation error:")
	assert.Contains(t, artifact.Body, "timed out")
	assert.Equal(t, domain.StatusPending, artifact.Status)
	assert.Equal(t, "Go", artifact.Language)
}
