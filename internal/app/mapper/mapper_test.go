package mapper

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSchemaHeader(t *testing.T) {
	header := DefaultSchema().Header()

	require.Len(t, header, 14)
	assert.Equal(t, []string{"Name", "DATE", "EMAIL", "LOCATION"}, header[:4])
	assert.Equal(t, "🔗 Introduce Yourself", header[4])
	assert.Equal(t, "📝 Introduce Yourself", header[5])
	assert.Equal(t, "📝 Staying Connected", header[13])
	assert.NoError(t, DefaultSchema().Validate())
}

func TestMapBasicPayload(t *testing.T) {
	payload := &Payload{
		Contact: &Contact{
			Name:  "Jane Doe",
			Email: "j@x.com",
			Answers: []Answer{
				{Label: "Intro", Text: "Hello"},
			},
		},
	}

	row := New(nil).Map(payload)

	require.Len(t, row, 14)
	assert.Equal(t, "Jane Doe", row[0])
	assert.Equal(t, "", row[1])
	assert.Equal(t, "j@x.com", row[2])
	assert.Equal(t, "", row[3])
	assert.Equal(t, "", row[4])
	assert.Equal(t, "Hello", row[5])
	for _, cell := range row[6:] {
		assert.Equal(t, "", cell)
	}
}

func TestMapPrefersTranscription(t *testing.T) {
	payload := &Payload{
		Contact: &Contact{
			Answers: []Answer{
				{Label: "What advice?", Text: "typed", Transcription: "  spoken  ", ShareURL: "https://v/1"},
			},
		},
	}

	record := New(nil).Map(payload).Record(DefaultSchema())

	assert.Equal(t, "spoken", record["📝 Sharing Advice"])
	assert.Equal(t, "https://v/1", record["🔗 Sharing Advice"])
}

func TestMapLabelFromForm(t *testing.T) {
	record := New(nil).Map(SamplePayload()).Record(DefaultSchema())

	assert.Equal(t, "Test User", record["Name"])
	assert.Equal(t, "2024-01-15 10:30:00", record["DATE"])
	assert.Equal(t, "Test City", record["LOCATION"])
	assert.Equal(t, "https://videoask.com/share/sample-intro", record["🔗 Introduce Yourself"])
	assert.Contains(t, record["📝 Introduce Yourself"], "introduction")
	assert.Equal(t, "Keep learning and stay curious.", record["📝 Sharing Advice"])
	assert.Equal(t, "", record["📝 Purpose & Joy"])
}

func TestMapMissingData(t *testing.T) {
	testCases := []struct {
		name    string
		payload *Payload
	}{
		{name: "nil payload", payload: nil},
		{name: "empty payload", payload: &Payload{}},
		{name: "empty contact", payload: &Payload{Contact: &Contact{}}},
		{name: "unmatched answers", payload: &Payload{Contact: &Contact{Answers: []Answer{
			{Label: "Favourite colour", Text: "blue"},
			{Text: "no label at all"},
		}}}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			row := New(nil).Map(tc.payload)
			require.Len(t, row, 14)
			for _, cell := range row {
				assert.Equal(t, "", cell)
			}
		})
	}
}

func TestMapIsIdempotentAndOrderIndependent(t *testing.T) {
	answers := []Answer{
		{AnswerID: "a", Label: "Tell us about your purpose", Text: "first purpose"},
		{AnswerID: "b", Label: "Staying connected", Text: "newsletter"},
		{AnswerID: "c", Label: "Your purpose and joy", Text: "second purpose"},
		{AnswerID: "d", Label: "Introduce yourself", Transcription: "hi"},
	}
	build := func(order []int) *Payload {
		ordered := make([]Answer, 0, len(order))
		for _, i := range order {
			ordered = append(ordered, answers[i])
		}
		return &Payload{Contact: &Contact{Name: "Sam", Answers: ordered}}
	}

	m := New(nil)
	expected := m.Map(build([]int{0, 1, 2, 3}))

	assert.Equal(t, expected, m.Map(build([]int{0, 1, 2, 3})))
	assert.Equal(t, expected, m.Map(build([]int{3, 2, 1, 0})))
	assert.Equal(t, expected, m.Map(build([]int{2, 0, 3, 1})))

	record := expected.Record(m.Schema())
	assert.Equal(t, "first purpose", record["📝 Purpose & Joy"])
	assert.Equal(t, "newsletter", record["📝 Staying Connected"])
	assert.Equal(t, "hi", record["📝 Introduce Yourself"])
}

func TestMapLocationFallsBackToVariables(t *testing.T) {
	payload := &Payload{Contact: &Contact{Variables: map[string]interface{}{"location": "Lisbon"}}}

	assert.Equal(t, "Lisbon", New(nil).Map(payload)[3])
}

func TestDecodeToleratesNonStringVariables(t *testing.T) {
	payload, err := Decode([]byte(`{"contact":{"name":"Jane Doe","variables":{"location":"Lisbon","age":42,"opted_in":true,"tags":["a"]},"answers":[{"label":"Intro","transcription":"Hello"}]}}`))
	require.NoError(t, err)

	contact := payload.GetContact()
	assert.Equal(t, "", contact.Variable("age"))
	assert.Equal(t, "", contact.Variable("opted_in"))
	assert.Equal(t, "", contact.Variable("tags"))

	row := New(nil).Map(payload)
	assert.Equal(t, "Jane Doe", row[0])
	assert.Equal(t, "Lisbon", row[3])

	payload, err = Decode([]byte(`{"contact":{"name":"Jane Doe","variables":{"location":7}}}`))
	require.NoError(t, err)
	assert.Equal(t, "", New(nil).Map(payload)[3])
}

func TestMapUnparseableDatePassesThrough(t *testing.T) {
	payload := &Payload{Contact: &Contact{CreatedAt: "last tuesday"}}

	assert.Equal(t, "last tuesday", New(nil).Map(payload)[1])
}

func TestDecode(t *testing.T) {
	payload, err := Decode([]byte(`{"event_type":"form_response","contact":{"name":"A","answers":[{"label":"Intro","text":"x"}]},"extra":1}`))
	require.NoError(t, err)
	assert.Equal(t, "A", payload.GetContact().GetName())

	_, err = Decode([]byte(`{"event_type":"form_response"}`))
	assert.ErrorIs(t, err, ErrNoContact)

	_, err = Decode([]byte(`{not json`))
	assert.Error(t, err)

	_, err = Decode([]byte("  "))
	assert.Error(t, err)
}

func TestLoadSchema(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "schema.yaml")
	content := `
questions:
  - key: story
    label: Your Story
    match: [story]
columns:
  - header: Who
    field: name
  - header: Story
    field: answer_text
    question: story
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	schema, err := LoadSchema(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Who", "Story"}, schema.Header())

	row := New(schema).Map(&Payload{Contact: &Contact{
		Name:    "Ana",
		Answers: []Answer{{Label: "Tell your STORY", Text: "once upon a time"}},
	}})
	assert.Equal(t, Row{"Ana", "once upon a time"}, row)
}

func TestLoadSchemaRejectsInvalid(t *testing.T) {
	testCases := []struct {
		name    string
		content string
	}{
		{name: "no columns", content: "columns: []\n"},
		{name: "unknown field", content: "columns:\n  - header: X\n    field: phone\n"},
		{name: "unknown question", content: "columns:\n  - header: X\n    field: answer_text\n    question: nope\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "schema.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tc.content), 0o600))

			_, err := LoadSchema(path)
			assert.Error(t, err)
		})
	}

	schema, err := LoadSchema("")
	require.NoError(t, err)
	assert.Len(t, schema.Columns, 14)
}
