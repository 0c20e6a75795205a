package a2a

import (
	"strings"

	"github.com/google/uuid"
)

/*
Message represents all non-artifact communication between client and agent.
The MessageID is client-assigned and preserved verbatim end-to-end; servers
never rewrite it.
*/
type Message struct {
	Role             string         `json:"role"`
	Parts            []Part         `json:"parts"`
	MessageID        string         `json:"messageId"`
	Kind             string         `json:"kind"`
	Metadata         map[string]any `json:"metadata,omitempty"`
	Extensions       []string       `json:"extensions,omitempty"`
	ReferenceTaskIDs []string       `json:"referenceTaskIds,omitempty"`

	// A taskId on an inbound message is an implicit request to continue
	// that task.
	TaskID    string `json:"taskId,omitempty"`
	ContextID string `json:"contextId,omitempty"`
}

func NewTextMessage(role string, text string) Message {
	return Message{
		Role:      role,
		Parts:     []Part{NewTextPart(text)},
		MessageID: uuid.NewString(),
		Kind:      KindMessage,
	}
}

func NewFileMessage(role string, part Part) Message {
	return Message{
		Role:      role,
		Parts:     []Part{part},
		MessageID: uuid.NewString(),
		Kind:      KindMessage,
	}
}

/*
String concatenates the text parts of the message, which is the useful
rendering for logs and CLI output.
*/
func (msg *Message) String() string {
	var sb strings.Builder

	for _, part := range msg.Parts {
		sb.WriteString(part.Text)
	}

	return sb.String()
}
