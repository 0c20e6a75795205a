package a2a

import (
	"encoding/json"
	"fmt"
)

// Wire discriminator values for the streaming event union.
const (
	KindMessage        = "message"
	KindTask           = "task"
	KindStatusUpdate   = "status-update"
	KindArtifactUpdate = "artifact-update"
)

/*
Event is one of the four result variants carried inside an SSE stream:
Message, Task, TaskStatusUpdateEvent or TaskArtifactUpdateEvent.
*/
type Event interface {
	EventKind() string
}

func (msg Message) EventKind() string { return KindMessage }

func (task Task) EventKind() string { return KindTask }

/*
TaskStatusUpdateEvent informs the client of a status transition. Final is
set when no further events follow for this task.
*/
type TaskStatusUpdateEvent struct {
	TaskID    string         `json:"taskId"`
	ContextID string         `json:"contextId"`
	Kind      string         `json:"kind"`
	Status    TaskStatus     `json:"status"`
	Final     bool           `json:"final"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

func (evt TaskStatusUpdateEvent) EventKind() string { return KindStatusUpdate }

/*
TaskArtifactUpdateEvent carries a new or updated artifact. Append signals
that the artifact's parts extend the previous chunk rather than replace it;
LastChunk marks the final chunk of the artifact.
*/
type TaskArtifactUpdateEvent struct {
	TaskID    string         `json:"taskId"`
	ContextID string         `json:"contextId"`
	Kind      string         `json:"kind"`
	Artifact  Artifact       `json:"artifact"`
	Append    *bool          `json:"append,omitempty"`
	LastChunk *bool          `json:"lastChunk,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

func (evt TaskArtifactUpdateEvent) EventKind() string { return KindArtifactUpdate }

func NewStatusUpdateEvent(task *Task, final bool) TaskStatusUpdateEvent {
	return TaskStatusUpdateEvent{
		TaskID:    task.ID,
		ContextID: task.ContextID,
		Kind:      KindStatusUpdate,
		Status:    task.Status,
		Final:     final,
	}
}

func NewArtifactUpdateEvent(task *Task, artifact Artifact, appendChunk, lastChunk bool) TaskArtifactUpdateEvent {
	return TaskArtifactUpdateEvent{
		TaskID:    task.ID,
		ContextID: task.ContextID,
		Kind:      KindArtifactUpdate,
		Artifact:  artifact,
		Append:    &appendChunk,
		LastChunk: &lastChunk,
	}
}

/*
ErrUnknownEventKind is returned by DecodeEvent for kinds outside the closed
union. Streaming consumers skip these for forward compatibility.
*/
type ErrUnknownEventKind struct {
	Kind string
}

func (e *ErrUnknownEventKind) Error() string {
	return fmt.Sprintf("unknown event kind: %q", e.Kind)
}

/*
DecodeEvent parses a streaming event keyed on its wire kind.
*/
func DecodeEvent(raw []byte) (Event, error) {
	var probe struct {
		Kind string `json:"kind"`
	}

	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, err
	}

	switch probe.Kind {
	case KindMessage:
		var msg Message
		if err := json.Unmarshal(raw, &msg); err != nil {
			return nil, err
		}
		return msg, nil
	case KindTask:
		var task Task
		if err := json.Unmarshal(raw, &task); err != nil {
			return nil, err
		}
		return task, nil
	case KindStatusUpdate:
		var evt TaskStatusUpdateEvent
		if err := json.Unmarshal(raw, &evt); err != nil {
			return nil, err
		}
		return evt, nil
	case KindArtifactUpdate:
		var evt TaskArtifactUpdateEvent
		if err := json.Unmarshal(raw, &evt); err != nil {
			return nil, err
		}
		return evt, nil
	}

	return nil, &ErrUnknownEventKind{Kind: probe.Kind}
}
