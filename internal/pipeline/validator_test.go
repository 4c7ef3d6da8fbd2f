package pipeline

import (
	"context"
	"testing"

	"github.com/alexanderramin/codeforge/internal/domain"
	"github.com/alexanderramin/codeforge/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wellFormedGo = `package main

import "fmt"

func main() {
	fmt.Println("hello")
}`

const malformedGo = `package main

func main() {
	if true {
` // unbalanced block

func TestValidator_Validate_GoWellFormed(t *testing.T) {
	v := NewValidator(newFakeClient(), discardLogger())
	a := domain.NewGeneratedArtifact("Generated", wellFormedGo, "Go", false)

	status := v.Validate(a)

	assert.Equal(t, domain.StatusValid, status)
	assert.Equal(t, domain.StatusValid, a.Status)
}

func TestValidator_Validate_GoMalformed(t *testing.T) {
	v := NewValidator(newFakeClient(), discardLogger())
	a := domain.NewGeneratedArtifact("Generated", malformedGo, "Go", false)

	status := v.Validate(a)

	assert.Equal(t, domain.StatusInvalid, status)
	assert.Equal(t, domain.StatusInvalid, a.Status)
}

func TestValidator_Validate_OtherLanguagesAlwaysValid(t *testing.T) {
	v := NewValidator(newFakeClient(), discardLogger())

	for _, lang := range []string{"Python", "TypeScript", "go", "GO", ""} {
		a := domain.NewGeneratedArtifact("Generated", "not even code {{{", lang, false)
		assert.Equal(t, domain.StatusValid, v.Validate(a), "language %q", lang)
	}
}

func TestValidator_Optimize_Success(t *testing.T) {
	client := newFakeClient()
	client.responses[llm.TaskOptimize] = "```go\n// faster\npackage main\n```"
	v := NewValidator(client, discardLogger())

	a := domain.NewGeneratedArtifact("Generated", "package main", "Go", false)
	a.Status = domain.StatusValid

	out := v.Optimize(context.Background(), a)

	assert.Same(t, a, out)
	assert.Equal(t, "// faster\npackage main", a.Body)
	assert.Equal(t, domain.StatusOptimized, a.Status)

	calls := client.callsFor(llm.TaskOptimize)
	require.Len(t, calls, 1)
	assert.Contains(t, calls[0].UserPrompt, "Optimize this code for performance and readability:")
	assert.Contains(t, calls[0].UserPrompt, "package main")
}

func TestValidator_Optimize_FailureLeavesArtifactUntouched(t *testing.T) {
	client := newFakeClient()
	client.errs[llm.TaskOptimize] = llm.ErrBackendUnavailable
	v := NewValidator(client, discardLogger())

	a := domain.NewGeneratedArtifact("Generated", "original body", "Go", false)
	a.Status = domain.StatusValid

	v.Optimize(context.Background(), a)

	assert.Equal(t, "original body", a.Body)
	assert.Equal(t, domain.StatusValid, a.Status)
}

func TestCheckGoSyntax(t *testing.T) {
	assert.NoError(t, CheckGoSyntax(wellFormedGo))
	assert.Error(t, CheckGoSyntax(malformedGo))

	// A bare snippet without a package clause still validates.
	assert.NoError(t, CheckGoSyntax("func add(a, b int) int { return a + b }"))
	assert.Error(t, CheckGoSyntax("func add(a, b int int { return a + b }"))
}
