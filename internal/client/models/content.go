package models

import (
	"encoding/json"
	"sort"
	"time"
)

// FallbackReply is shown when the tutor answered with an empty body.
const FallbackReply = "I apologize, but I couldn't generate a response at this time."

type ChatRequest struct {
	Question string `json:"question"`
}

// ChatAnswer covers the field names the chat service has used for its reply.
type ChatAnswer struct {
	Answer  string `json:"answer,omitempty"`
	Message string `json:"message,omitempty"`
	Text    string `json:"text,omitempty"`
}

// Reply returns the first non-empty field, or FallbackReply.
func (a *ChatAnswer) Reply() string {
	for _, s := range []string{a.Answer, a.Message, a.Text} {
		if s != "" {
			return s
		}
	}
	return FallbackReply
}

type Sender string

const (
	SenderUser Sender = "user"
	SenderAI   Sender = "ai"
)

// Message is one line of a chat transcript.
type Message struct {
	ID        string
	Sender    Sender
	Text      string
	Timestamp time.Time
}

type UploadedFile struct {
	ID          IdentityID `json:"id"`
	Filename    string     `json:"filename"`
	Size        int64      `json:"size"`
	ContentType string     `json:"content_type"`
	Description string     `json:"description,omitempty"`
	UploadedAt  string     `json:"uploaded_at"`
	Status      string     `json:"status"`
}

type UploadedFileList struct {
	Files []UploadedFile `json:"files"`
}

type GradeList struct {
	Grades []string `json:"grades"`
}

// GradeStructure maps each term of a grade to its subjects.
type GradeStructure struct {
	Grade string              `json:"grade"`
	Terms map[string][]string `json:"terms"`
}

// TermNames returns the terms in lexical order.
func (g *GradeStructure) TermNames() []string {
	names := make([]string, 0, len(g.Terms))
	for name := range g.Terms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type CurriculumStructure struct {
	Grade     string         `json:"grade"`
	Structure GradeStructure `json:"structure"`
	UserGrade string         `json:"user_grade,omitempty"`
}

type SubConcept struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Examples    []string          `json:"examples,omitempty"`
	Exercises   []json.RawMessage `json:"exercises,omitempty"`
}

type ConceptMetadata struct {
	Grade   string `json:"grade"`
	Term    string `json:"term"`
	Subject string `json:"subject"`
}

type Concept struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Examples    []string          `json:"examples,omitempty"`
	SubConcepts []SubConcept      `json:"sub_concepts,omitempty"`
	Exercises   []json.RawMessage `json:"exercises,omitempty"`
	Metadata    *ConceptMetadata  `json:"metadata,omitempty"`
}

// GeneratingConceptsName is the single placeholder concept the content service
// returns while it is still producing a subject's concepts.
const GeneratingConceptsName = "Generating Concepts"

type ConceptList struct {
	Grade    string    `json:"grade"`
	Term     string    `json:"term"`
	Subject  string    `json:"subject"`
	Concepts []Concept `json:"concepts"`

	// Generating is set by Normalize when the list is only the placeholder.
	Generating bool `json:"-"`
}

// Normalize stamps every concept with the list's grade/term/subject and
// replaces the "still generating" placeholder with an empty list.
func (l *ConceptList) Normalize() {
	if len(l.Concepts) == 1 && l.Concepts[0].Name == GeneratingConceptsName {
		l.Generating = true
		l.Concepts = nil
		return
	}
	for i := range l.Concepts {
		l.Concepts[i].Metadata = &ConceptMetadata{Grade: l.Grade, Term: l.Term, Subject: l.Subject}
	}
}

type TextRequest struct {
	Text string `json:"text"`
}

type GradeRequest struct {
	Answer string `json:"answer"`
}

type Notification struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	UserID  string `json:"user_id"`
}

// ServiceStatus is the outcome of probing one backend health endpoint.
type ServiceStatus struct {
	Name       string
	Endpoint   string
	Online     bool
	Data       json.RawMessage
	Error      string
	StatusCode int
}
