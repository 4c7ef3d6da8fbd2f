package pipeline

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/codeforge/internal/domain"
)

// analysisSystemPrompt instructs the backend to reduce a free-text
// requirement to a structured intent.
const analysisSystemPrompt = `You are an expert requirements analyst. Break down the requirement and return ONLY a clean JSON object with no explanations:
{
  "functional_description": "...",
  "target_language": "Python",
  "entities": {"ClassName": ["field1", "field2"]}
}
If you are unsure, leave the fields empty.`

func buildAnalysisUserPrompt(text string) string {
	return "Requirement: " + text
}

func buildGenerationPrompt(intent domain.StructuredIntent, withComments bool, commentLanguage string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write code in %s:\n%s", intent.TargetLanguage, intent.Description)
	if len(intent.Entities) > 0 {
		b.WriteString("\nEntities: ")
		b.WriteString(renderEntities(intent.Entities))
	}
	if withComments {
		fmt.Fprintf(&b, "\nAdd detailed comments in %s.", commentLanguage)
	}
	return b.String()
}

// renderEntities serializes entities as "Name(field, field); Name(field)",
// keeping the order the analyzer produced them in.
func renderEntities(entities domain.EntityList) string {
	parts := make([]string, 0, len(entities))
	for _, e := range entities {
		parts = append(parts, fmt.Sprintf("%s(%s)", e.Name, strings.Join(e.Fields, ", ")))
	}
	return strings.Join(parts, "; ")
}

func buildOptimizePrompt(code string) string {
	return "Optimize this code for performance and readability:\n" + code
}
