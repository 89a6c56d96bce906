// Package mapper turns form-response webhook payloads into spreadsheet rows.
// Mapping is pure: the same payload always yields the same row, whatever the
// order of its answers.
package mapper

import (
	"sort"
	"strings"
	"time"
)

const sheetDateLayout = "2006-01-02 15:04:05"

// Row is a mapped spreadsheet row. Its length always equals the number of
// schema columns and no cell is ever nil.
type Row []string

// Mapper maps payloads using a fixed schema
type Mapper struct {
	schema *Schema
}

// New creates a mapper. A nil schema means DefaultSchema.
func New(schema *Schema) *Mapper {
	if schema == nil {
		schema = DefaultSchema()
	}
	return &Mapper{schema: schema}
}

// Schema returns the schema the mapper was built with
func (m *Mapper) Schema() *Schema {
	return m.schema
}

// Map converts a payload into a row. Missing data becomes an empty cell.
func (m *Mapper) Map(payload *Payload) Row {
	contact := payload.GetContact()
	matched := m.matchAnswers(payload)

	row := make(Row, len(m.schema.Columns))
	for i, col := range m.schema.Columns {
		switch col.Field {
		case FieldName:
			row[i] = contact.GetName()
		case FieldEmail:
			row[i] = contact.GetEmail()
		case FieldDate:
			row[i] = formatDate(contact.GetCreatedAt())
		case FieldLocation:
			row[i] = contact.GetLocation()
		case FieldAnswerLink:
			if a, ok := matched[col.Question]; ok {
				row[i] = a.Link()
			}
		case FieldAnswerText:
			if a, ok := matched[col.Question]; ok {
				row[i] = a.Value()
			}
		}
	}
	return row
}

type labelledAnswer struct {
	Answer
	label string
}

// matchAnswers assigns at most one answer to each question key
func (m *Mapper) matchAnswers(payload *Payload) map[string]Answer {
	form := payload.GetForm()
	answers := payload.GetContact().GetAnswers()

	candidates := make([]labelledAnswer, 0, len(answers))
	for _, a := range answers {
		candidates = append(candidates, labelledAnswer{
			Answer: a,
			label:  strings.ToLower(form.LabelFor(a)),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.label != b.label {
			return a.label < b.label
		}
		if a.QuestionID != b.QuestionID {
			return a.QuestionID < b.QuestionID
		}
		if a.AnswerID != b.AnswerID {
			return a.AnswerID < b.AnswerID
		}
		return a.Value() < b.Value()
	})

	matched := make(map[string]Answer, len(m.schema.Questions))
	for _, c := range candidates {
		if c.label == "" {
			continue
		}
		for _, q := range m.schema.Questions {
			if _, taken := matched[q.Key]; taken {
				continue
			}
			if matchesAny(c.label, q.Match) {
				matched[q.Key] = c.Answer
				break
			}
		}
	}
	return matched
}

func matchesAny(label string, phrases []string) bool {
	for _, p := range phrases {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" && strings.Contains(label, p) {
			return true
		}
	}
	return false
}

func formatDate(raw string) string {
	if raw == "" {
		return ""
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return raw
	}
	return t.UTC().Format(sheetDateLayout)
}

// Record pairs each header with its cell, for display
func (r Row) Record(schema *Schema) map[string]string {
	record := make(map[string]string, len(schema.Columns))
	for i, col := range schema.Columns {
		if i < len(r) {
			record[col.Header] = r[i]
		}
	}
	return record
}

// Values converts the row into spreadsheet cell values
func (r Row) Values() []interface{} {
	values := make([]interface{}, len(r))
	for i, v := range r {
		values[i] = v
	}
	return values
}
