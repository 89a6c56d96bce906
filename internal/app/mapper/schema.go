package mapper

import (
	"fmt"
	"os"
	"strings"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

// Field names a value a column is filled from
type Field string

const (
	FieldName       Field = "name"
	FieldDate       Field = "date"
	FieldEmail      Field = "email"
	FieldLocation   Field = "location"
	FieldAnswerLink Field = "answer_link"
	FieldAnswerText Field = "answer_text"
)

var knownFields = []Field{FieldName, FieldDate, FieldEmail, FieldLocation, FieldAnswerLink, FieldAnswerText}

// Column is one spreadsheet column. Question is set for answer columns.
type Column struct {
	Header   string `yaml:"header"`
	Field    Field  `yaml:"field"`
	Question string `yaml:"question,omitempty"`
}

// QuestionSpec describes which answers belong to a question.
// Label is informational; Match holds the phrases searched for in answer labels.
type QuestionSpec struct {
	Key   string   `yaml:"key"`
	Label string   `yaml:"label"`
	Match []string `yaml:"match"`
}

// Schema fixes the column order of a mapped row
type Schema struct {
	Columns   []Column       `yaml:"columns"`
	Questions []QuestionSpec `yaml:"questions"`
}

// DefaultSchema returns the VideoAsk responses layout
func DefaultSchema() *Schema {
	questions := []QuestionSpec{
		{Key: "introduce", Label: "Introduce Yourself", Match: []string{"introduce", "intro"}},
		{Key: "influence", Label: "Foundation's Influence", Match: []string{"influence"}},
		{Key: "advice", Label: "Sharing Advice", Match: []string{"advice"}},
		{Key: "purpose", Label: "Purpose & Joy", Match: []string{"purpose", "joy"}},
		{Key: "connected", Label: "Staying Connected", Match: []string{"connected", "staying"}},
	}

	columns := []Column{
		{Header: "Name", Field: FieldName},
		{Header: "DATE", Field: FieldDate},
		{Header: "EMAIL", Field: FieldEmail},
		{Header: "LOCATION", Field: FieldLocation},
	}
	for _, q := range questions {
		columns = append(columns,
			Column{Header: "🔗 " + q.Label, Field: FieldAnswerLink, Question: q.Key},
			Column{Header: "📝 " + q.Label, Field: FieldAnswerText, Question: q.Key},
		)
	}

	return &Schema{Columns: columns, Questions: questions}
}

// LoadSchema reads a YAML schema file. An empty path yields the default schema.
func LoadSchema(path string) (*Schema, error) {
	if path == "" {
		return DefaultSchema(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}

	var schema Schema
	if err := yaml.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("failed to parse schema file: %w", err)
	}

	if err := schema.Validate(); err != nil {
		return nil, err
	}
	return &schema, nil
}

// Validate checks that every column has a known field and that answer columns
// reference declared questions.
func (s *Schema) Validate() error {
	if len(s.Columns) == 0 {
		return fmt.Errorf("schema has no columns")
	}

	keys := lo.Map(s.Questions, func(q QuestionSpec, _ int) string { return q.Key })
	if dup := lo.FindDuplicates(keys); len(dup) > 0 {
		return fmt.Errorf("duplicate question keys: %s", strings.Join(dup, ", "))
	}

	for i, q := range s.Questions {
		if q.Key == "" || len(q.Match) == 0 {
			return fmt.Errorf("question %d needs a key and at least one match phrase", i)
		}
	}

	for i, col := range s.Columns {
		if col.Header == "" {
			return fmt.Errorf("column %d has no header", i)
		}
		if !lo.Contains(knownFields, col.Field) {
			return fmt.Errorf("column %q has unknown field %q", col.Header, col.Field)
		}
		if col.Field == FieldAnswerLink || col.Field == FieldAnswerText {
			if !lo.Contains(keys, col.Question) {
				return fmt.Errorf("column %q references unknown question %q", col.Header, col.Question)
			}
		}
	}
	return nil
}

// Header returns the column headers in order
func (s *Schema) Header() []string {
	return lo.Map(s.Columns, func(c Column, _ int) string { return c.Header })
}
