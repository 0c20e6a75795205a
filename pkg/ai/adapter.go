package ai

import (
	"context"

	"github.com/spindlework/a2a-runtime/pkg/a2a"
	"github.com/spindlework/a2a-runtime/pkg/stores"
)

/*
EventSink receives the events an adapter emits during a stream. The
dispatcher frames each event on the wire as one SSE record.
*/
type EventSink func(event a2a.Event)

/*
ResponseType classifies how an adapter wants to answer a send: as a
one-shot message with no task created, or as a task with a lifecycle.
*/
type ResponseType string

const (
	ResponseTypeMessage ResponseType = "message"
	ResponseTypeTask    ResponseType = "task"
)

/*
Adapter is the contract an agent implementation satisfies to be served by
the dispatcher. The metadata getters feed the agent card; the handlers do
the actual work. Adapter errors during a stream are swallowed by the
dispatcher and the stream is finalized.
*/
type Adapter interface {
	AgentName() string
	AgentDescription() string
	CardCapabilities() a2a.AgentCapabilities
	Skills() []a2a.AgentSkill
	DefaultInputModes() []string
	DefaultOutputModes() []string

	// ResponseType is an advisory classification that lets the server skip
	// task creation for one-shot replies.
	ResponseType(params a2a.MessageSendParams) ResponseType

	// HandleMessageSend is invoked when ResponseType returns message.
	HandleMessageSend(ctx context.Context, params a2a.MessageSendParams) (a2a.Message, error)

	// HandleTaskSend is invoked when ResponseType returns task. The adapter
	// must push status transitions and artifacts into the store.
	HandleTaskSend(ctx context.Context, params a2a.MessageSendParams, taskID, contextID string, store stores.TaskStore) error

	// HandleStream emits zero or more events into the sink. taskID,
	// contextID and store are zero-valued for message-mode streams.
	HandleStream(ctx context.Context, params a2a.MessageSendParams, taskID, contextID string, store stores.TaskStore, sink EventSink) error
}
