package mapper

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNoContact is returned when a payload carries no contact block
var ErrNoContact = errors.New("payload has no contact")

// Payload is a VideoAsk form-response webhook body. Only the fields the
// sheet schema reads are modelled; everything else is ignored.
type Payload struct {
	EventType string   `json:"event_type"`
	EventID   string   `json:"event_id,omitempty"`
	Contact   *Contact `json:"contact"`
	Form      *Form    `json:"form,omitempty"`
}

// Contact is the respondent together with their answers
type Contact struct {
	ContactID   string                 `json:"contact_id,omitempty"`
	Name        string                 `json:"name,omitempty"`
	Email       string                 `json:"email,omitempty"`
	CreatedAt   string                 `json:"created_at,omitempty"`
	ProductName string                 `json:"product_name,omitempty"`
	Location    string                 `json:"location,omitempty"`
	Variables   map[string]interface{} `json:"variables,omitempty"`
	Answers     []Answer               `json:"answers,omitempty"`
}

// Answer is one response entry. Video and audio answers carry a transcription.
type Answer struct {
	AnswerID      string `json:"answer_id,omitempty"`
	QuestionID    string `json:"question_id,omitempty"`
	Type          string `json:"type,omitempty"`
	Label         string `json:"label,omitempty"`
	Text          string `json:"text,omitempty"`
	Transcription string `json:"transcription,omitempty"`
	ShareURL      string `json:"share_url,omitempty"`
	MediaURL      string `json:"media_url,omitempty"`
}

// Form describes the questions the answers refer to
type Form struct {
	FormID    string     `json:"form_id,omitempty"`
	Title     string     `json:"title,omitempty"`
	Questions []Question `json:"questions,omitempty"`
}

// Question is a form question as listed in the payload
type Question struct {
	QuestionID string `json:"question_id,omitempty"`
	Label      string `json:"label,omitempty"`
	Title      string `json:"title,omitempty"`
	ShareURL   string `json:"share_url,omitempty"`
}

// Decode parses a raw webhook body. Unknown fields are ignored; a body without
// a contact is rejected because nothing could be mapped from it.
func Decode(data []byte) (*Payload, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, errors.New("empty payload")
	}

	var payload Payload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("malformed payload: %w", err)
	}
	if payload.Contact == nil {
		return nil, ErrNoContact
	}
	return &payload, nil
}

// GetContact returns the contact or nil
func (p *Payload) GetContact() *Contact {
	if p == nil {
		return nil
	}
	return p.Contact
}

// GetForm returns the form or nil
func (p *Payload) GetForm() *Form {
	if p == nil {
		return nil
	}
	return p.Form
}

func (c *Contact) GetContactID() string {
	if c == nil {
		return ""
	}
	return strings.TrimSpace(c.ContactID)
}

func (c *Contact) GetName() string {
	if c == nil {
		return ""
	}
	return strings.TrimSpace(c.Name)
}

func (c *Contact) GetEmail() string {
	if c == nil {
		return ""
	}
	return strings.TrimSpace(c.Email)
}

func (c *Contact) GetCreatedAt() string {
	if c == nil {
		return ""
	}
	return strings.TrimSpace(c.CreatedAt)
}

// GetLocation prefers the explicit location field and falls back to the
// "location" contact variable.
func (c *Contact) GetLocation() string {
	if c == nil {
		return ""
	}
	if loc := strings.TrimSpace(c.Location); loc != "" {
		return loc
	}
	return c.Variable("location")
}

// Variable returns a string contact variable. Numbers, booleans and nested
// values are not rendered.
func (c *Contact) Variable(name string) string {
	if c == nil {
		return ""
	}
	value, _ := c.Variables[name].(string)
	return strings.TrimSpace(value)
}

func (c *Contact) GetAnswers() []Answer {
	if c == nil {
		return nil
	}
	return c.Answers
}

// Value returns the transcription when present, otherwise the typed text
func (a Answer) Value() string {
	if t := strings.TrimSpace(a.Transcription); t != "" {
		return t
	}
	return strings.TrimSpace(a.Text)
}

// Link returns the share URL, otherwise the media URL
func (a Answer) Link() string {
	if u := strings.TrimSpace(a.ShareURL); u != "" {
		return u
	}
	return strings.TrimSpace(a.MediaURL)
}

// question finds a form question by id
func (f *Form) question(id string) (Question, bool) {
	if f == nil || id == "" {
		return Question{}, false
	}
	for _, q := range f.Questions {
		if q.QuestionID == id {
			return q, true
		}
	}
	return Question{}, false
}

// LabelFor resolves the label of an answer: its own label, else the label or
// title of the form question it answers.
func (f *Form) LabelFor(a Answer) string {
	if label := strings.TrimSpace(a.Label); label != "" {
		return label
	}
	q, ok := f.question(a.QuestionID)
	if !ok {
		return ""
	}
	if label := strings.TrimSpace(q.Label); label != "" {
		return label
	}
	return strings.TrimSpace(q.Title)
}
