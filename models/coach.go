package models

import (
	"encoding/json"
	"fmt"
)

// Sender identifies which side of a coach thread wrote a message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderAI   Sender = "ai"
)

// CoachPayload is the structured form of an AI coach reply.
type CoachPayload struct {
	Message      string   `json:"message"`
	FirstMoves   []string `json:"first_moves"`
	CheckPrereqs []string `json:"check_prereqs"`
	Risks        []string `json:"risks"`
	DoneWhen     []string `json:"done_when"`
}

// CoachMessage is one entry in an item's append-only coach thread. Content is
// a tagged variant: plain text (legacy threads and user turns) or a structured
// payload (current AI turns). Exactly one of Text/Payload is meaningful.
type CoachMessage struct {
	Sender  Sender
	Text    string
	Payload *CoachPayload
}

// IsStructured reports whether the message carries a structured payload.
func (m CoachMessage) IsStructured() bool {
	return m.Payload != nil
}

// DisplayText returns the human-readable body regardless of variant.
func (m CoachMessage) DisplayText() string {
	if m.Payload != nil {
		return m.Payload.Message
	}
	return m.Text
}

// Clone returns a deep copy of the message.
func (m CoachMessage) Clone() CoachMessage {
	out := m
	if m.Payload != nil {
		p := *m.Payload
		p.FirstMoves = append([]string(nil), m.Payload.FirstMoves...)
		p.CheckPrereqs = append([]string(nil), m.Payload.CheckPrereqs...)
		p.Risks = append([]string(nil), m.Payload.Risks...)
		p.DoneWhen = append([]string(nil), m.Payload.DoneWhen...)
		out.Payload = &p
	}
	return out
}

// NewUserMessage builds the user half of a coach turn.
func NewUserMessage(text string) CoachMessage {
	return CoachMessage{Sender: SenderUser, Text: text}
}

// NewAIMessage builds a structured AI reply.
func NewAIMessage(payload CoachPayload) CoachMessage {
	return CoachMessage{Sender: SenderAI, Payload: &payload}
}

// NewAIErrorMessage synthesizes an AI reply standing in for a failed coach
// call. The error text lands in the payload message so the conversation keeps
// the turn even though the real reply was lost.
func NewAIErrorMessage(err error) CoachMessage {
	return NewAIMessage(CoachPayload{
		Message:      fmt.Sprintf("Sorry, I couldn't respond. Error: %v", err),
		FirstMoves:   []string{},
		CheckPrereqs: []string{},
		Risks:        []string{},
		DoneWhen:     []string{},
	})
}

// coachMessageJSON is the durable encoding: content holds either a JSON
// string (legacy plain text) or a payload object.
type coachMessageJSON struct {
	Sender  Sender          `json:"sender"`
	Content json.RawMessage `json:"content"`
}

// MarshalJSON encodes the content variant as either a string or an object.
func (m CoachMessage) MarshalJSON() ([]byte, error) {
	var content any
	if m.Payload != nil {
		content = m.Payload
	} else {
		content = m.Text
	}
	raw, err := json.Marshal(content)
	if err != nil {
		return nil, err
	}
	return json.Marshal(coachMessageJSON{Sender: m.Sender, Content: raw})
}

// UnmarshalJSON accepts both the legacy string form and the structured form.
func (m *CoachMessage) UnmarshalJSON(data []byte) error {
	var enc coachMessageJSON
	if err := json.Unmarshal(data, &enc); err != nil {
		return err
	}
	m.Sender = enc.Sender
	m.Text = ""
	m.Payload = nil
	if len(enc.Content) == 0 {
		return nil
	}
	var text string
	if err := json.Unmarshal(enc.Content, &text); err == nil {
		m.Text = text
		return nil
	}
	var payload CoachPayload
	if err := json.Unmarshal(enc.Content, &payload); err != nil {
		return fmt.Errorf("coach message content is neither text nor payload: %w", err)
	}
	m.Payload = &payload
	return nil
}
