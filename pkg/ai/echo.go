package ai

import (
	"context"

	"github.com/spindlework/a2a-runtime/pkg/a2a"
	"github.com/spindlework/a2a-runtime/pkg/stores"
)

/*
EchoAdapter is a complete reference adapter that answers every message by
echoing its text back. Sends carrying a {"oneShot": true} metadata entry
are answered as a bare message; everything else runs through the full task
lifecycle (submitted, working, artifact, completed). Useful for smoke
tests and as a template for real adapters.
*/
type EchoAdapter struct {
	Name string
}

func NewEchoAdapter(name string) *EchoAdapter {
	if name == "" {
		name = "Echo Agent"
	}

	return &EchoAdapter{Name: name}
}

func (echo *EchoAdapter) AgentName() string { return echo.Name }

func (echo *EchoAdapter) AgentDescription() string {
	return "Echoes user input back, optionally as a streaming task."
}

func (echo *EchoAdapter) CardCapabilities() a2a.AgentCapabilities {
	return a2a.AgentCapabilities{Streaming: true}
}

func (echo *EchoAdapter) Skills() []a2a.AgentSkill {
	return []a2a.AgentSkill{{ID: "echo", Name: "Echo", Description: "Repeat the input text."}}
}

func (echo *EchoAdapter) DefaultInputModes() []string { return []string{"text/plain"} }

func (echo *EchoAdapter) DefaultOutputModes() []string { return []string{"text/plain"} }

func (echo *EchoAdapter) ResponseType(params a2a.MessageSendParams) ResponseType {
	if oneShot, ok := params.Message.Metadata["oneShot"].(bool); ok && oneShot {
		return ResponseTypeMessage
	}

	return ResponseTypeTask
}

func (echo *EchoAdapter) HandleMessageSend(ctx context.Context, params a2a.MessageSendParams) (a2a.Message, error) {
	reply := a2a.NewTextMessage("agent", params.Message.String())
	return reply, nil
}

func (echo *EchoAdapter) HandleTaskSend(ctx context.Context, params a2a.MessageSendParams, taskID, contextID string, store stores.TaskStore) error {
	store.UpdateStatus(taskID, a2a.TaskStatus{
		State:     a2a.TaskStateWorking,
		Timestamp: a2a.Timestamp(),
	})

	artifact := a2a.NewArtifact("echo", a2a.NewTextPart(params.Message.String()))
	store.UpdateArtifacts(taskID, []a2a.Artifact{artifact})

	store.UpdateStatus(taskID, a2a.TaskStatus{
		State:     a2a.TaskStateCompleted,
		Timestamp: a2a.Timestamp(),
	})

	return nil
}

func (echo *EchoAdapter) HandleStream(ctx context.Context, params a2a.MessageSendParams, taskID, contextID string, store stores.TaskStore, sink EventSink) error {
	// Message-mode stream: a single one-shot reply.
	if taskID == "" {
		sink(a2a.NewTextMessage("agent", params.Message.String()))
		return nil
	}

	task := &a2a.Task{ID: taskID, ContextID: contextID, Kind: a2a.KindTask}

	working := a2a.TaskStatus{State: a2a.TaskStateWorking, Timestamp: a2a.Timestamp()}
	store.UpdateStatus(taskID, working)
	task.Status = working
	sink(a2a.NewStatusUpdateEvent(task, false))

	artifact := a2a.NewArtifact("echo", a2a.NewTextPart(params.Message.String()))
	store.UpdateArtifacts(taskID, []a2a.Artifact{artifact})
	sink(a2a.NewArtifactUpdateEvent(task, artifact, false, true))

	done := a2a.TaskStatus{State: a2a.TaskStateCompleted, Timestamp: a2a.Timestamp()}
	store.UpdateStatus(taskID, done)
	task.Status = done
	sink(a2a.NewStatusUpdateEvent(task, true))

	return nil
}
