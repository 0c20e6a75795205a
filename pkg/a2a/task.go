package a2a

import (
	"time"

	"github.com/google/uuid"
)

/*
TaskState enumerates the mutually exclusive states a task may be in. The
zero value is "unknown".
*/
type TaskState string

const (
	TaskStateSubmitted    TaskState = "submitted"
	TaskStateWorking      TaskState = "working"
	TaskStateInputReq     TaskState = "input-required"
	TaskStateCompleted    TaskState = "completed"
	TaskStateCanceled     TaskState = "canceled"
	TaskStateFailed       TaskState = "failed"
	TaskStateRejected     TaskState = "rejected"
	TaskStateAuthRequired TaskState = "auth-required"
	TaskStateUnknown      TaskState = "unknown"
)

/*
IsTerminal reports whether the state admits no further transitions.
*/
func (state TaskState) IsTerminal() bool {
	switch state {
	case TaskStateCompleted, TaskStateCanceled, TaskStateFailed, TaskStateRejected:
		return true
	}

	return false
}

/*
TaskStatus is the current position of a task in its lifecycle. Timestamps
are ISO-8601 UTC strings on the wire, never numeric epochs.
*/
type TaskStatus struct {
	State     TaskState `json:"state"`
	Message   *Message  `json:"message,omitempty"`
	Timestamp string    `json:"timestamp,omitempty"`
}

/*
Task is a server-owned, stateful unit of agent work. The server that
created a task owns its lifecycle; clients hold at most transient copies.
*/
type Task struct {
	ID        string         `json:"id"`
	ContextID string         `json:"contextId"`
	Status    TaskStatus     `json:"status"`
	History   []Message      `json:"history,omitempty"`
	Artifacts []Artifact     `json:"artifacts,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	Kind      string         `json:"kind"`
}

/*
NewTask mints a task in the submitted state with fresh identifiers.
*/
func NewTask() *Task {
	return &Task{
		ID:        uuid.NewString(),
		ContextID: uuid.NewString(),
		Status: TaskStatus{
			State:     TaskStateSubmitted,
			Timestamp: Timestamp(),
		},
		Kind: KindTask,
	}
}

/*
ToStatus moves the task to the given state with a refreshed timestamp.
*/
func (task *Task) ToStatus(state TaskState, message *Message) {
	task.Status = TaskStatus{
		State:     state,
		Message:   message,
		Timestamp: Timestamp(),
	}
}

func (task *Task) AddArtifact(artifact Artifact) {
	task.Artifacts = append(task.Artifacts, artifact)
}

func (task *Task) AddToHistory(message Message) {
	task.History = append(task.History, message)
}

/*
LastArtifact returns the most recently added artifact, or nil.
*/
func (task *Task) LastArtifact() *Artifact {
	if len(task.Artifacts) == 0 {
		return nil
	}

	return &task.Artifacts[len(task.Artifacts)-1]
}

/*
WithHistoryLength returns a copy of the task whose history is truncated to
the last n messages when n is positive, or stripped entirely when n is nil
or non-positive.
*/
func (task Task) WithHistoryLength(n *int) Task {
	if n == nil || *n <= 0 {
		task.History = nil
		return task
	}

	if len(task.History) > *n {
		task.History = task.History[len(task.History)-*n:]
	}

	return task
}

/*
Timestamp formats the current time as an ISO-8601 UTC string.
*/
func Timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
