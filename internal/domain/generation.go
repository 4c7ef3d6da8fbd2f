package domain

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// InputType declares the modality of a submitted requirement.
// Only natural language input is implemented.
type InputType string

const (
	InputNaturalLanguage InputType = "Natural Language"
	InputFormalSpec      InputType = "Formal Specification"
	InputDiagram         InputType = "Diagram"
)

// ValidationStatus is the artifact state machine:
// Pending -> {Valid, Invalid} via validation, Valid -> Optimized via
// optimization. Invalid is terminal.
type ValidationStatus string

const (
	StatusPending   ValidationStatus = "Pending"
	StatusValid     ValidationStatus = "Valid"
	StatusInvalid   ValidationStatus = "Invalid"
	StatusOptimized ValidationStatus = "Optimized"
)

// Requirement is a user-submitted requirement. Immutable once handed to
// the pipeline.
type Requirement struct {
	ID        string
	Text      string
	InputType InputType
}

// NewRequirement creates a natural-language requirement.
func NewRequirement(text string) Requirement {
	return Requirement{
		ID:        uuid.NewString(),
		Text:      text,
		InputType: InputNaturalLanguage,
	}
}

// Entity is a named record extracted from a requirement, with its fields
// in declaration order.
type Entity struct {
	Name   string
	Fields []string
}

// EntityList holds extracted entities in the order they appeared in the
// analyzer output.
type EntityList []Entity

// UnmarshalJSON decodes a JSON object into an EntityList, preserving the
// object's key insertion order (encoding/json maps would lose it).
func (e *EntityList) UnmarshalJSON(data []byte) error {
	if string(bytes.TrimSpace(data)) == "null" {
		*e = nil
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("entities: expected JSON object, got %v", tok)
	}

	var out EntityList
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("entities: expected string key, got %v", keyTok)
		}
		var fields []string
		if err := dec.Decode(&fields); err != nil {
			return fmt.Errorf("entities: fields of %q: %w", name, err)
		}
		out = append(out, Entity{Name: name, Fields: fields})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*e = out
	return nil
}

// MarshalJSON encodes the list back to a JSON object in stored order.
func (e EntityList) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, ent := range e {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(ent.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		fields, err := json.Marshal(ent.Fields)
		if err != nil {
			return nil, err
		}
		buf.Write(fields)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// StructuredIntent is the normalized form of a requirement. The
// orchestrator overwrites TargetLanguage with the caller's explicit
// selection; no other field is mutated after creation.
type StructuredIntent struct {
	Description    string     `json:"functional_description"`
	TargetLanguage string     `json:"target_language"`
	Entities       EntityList `json:"entities"`
}

// GeneratedArtifact is a generated code string plus metadata and
// validation state. Created once per request and discarded after the
// response is produced.
type GeneratedArtifact struct {
	ID          string
	Name        string
	Body        string
	Language    string
	HasComments bool
	Status      ValidationStatus
}

// NewGeneratedArtifact creates an artifact in the Pending state.
func NewGeneratedArtifact(name, body, language string, hasComments bool) *GeneratedArtifact {
	return &GeneratedArtifact{
		ID:          uuid.NewString(),
		Name:        name,
		Body:        body,
		Language:    language,
		HasComments: hasComments,
		Status:      StatusPending,
	}
}
