package service

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/gofiber/fiber/v3"
	fiberadaptor "github.com/gofiber/fiber/v3/middleware/adaptor"

	"github.com/spindlework/a2a-runtime/pkg/a2a"
	"github.com/spindlework/a2a-runtime/pkg/ai"
	"github.com/spindlework/a2a-runtime/pkg/errors"
	"github.com/spindlework/a2a-runtime/pkg/jsonrpc"
	"github.com/spindlework/a2a-runtime/pkg/logging"
	"github.com/spindlework/a2a-runtime/pkg/stores"
)

/*
handleMessageStream serves message/stream. The SSE body is written
through a net/http handler so we get an http.Flusher; fiber's adaptor
bridges the two worlds, the same trick the card endpoint does not need.
*/
func (srv *A2AServer) handleMessageStream(ctx fiber.Ctx) error {
	if !srv.card.Capabilities.Streaming {
		return respondError(ctx, fiber.StatusNotImplemented, nil,
			errors.ErrUnsupportedOperation.WithMessagef("streaming is not enabled for this agent"))
	}

	return fiberadaptor.HTTPHandler(http.HandlerFunc(srv.streamMessage))(ctx)
}

func (srv *A2AServer) handleResubscribe(ctx fiber.Ctx) error {
	return fiberadaptor.HTTPHandler(http.HandlerFunc(srv.streamResubscribe))(ctx)
}

func (srv *A2AServer) streamMessage(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeStreamError(w, http.StatusBadRequest, nil,
			errors.ErrParseError.WithMessagef("failed to read request body: %v", err))
		return
	}

	req, rpcErr := jsonrpc.Decode(body)
	if rpcErr != nil {
		writeStreamError(w, http.StatusBadRequest, nil, rpcErr)
		return
	}

	var params a2a.MessageSendParams

	if rpcErr := jsonrpc.DecodeParams(req, &params); rpcErr != nil {
		writeStreamError(w, http.StatusBadRequest, req.ID, rpcErr)
		return
	}

	var existing *a2a.Task

	if id := params.Message.TaskID; id != "" {
		task, ok := srv.store.Get(id)
		if !ok {
			writeStreamError(w, http.StatusBadRequest, req.ID,
				errors.ErrTaskNotFound.WithData(map[string]any{"taskId": id}))
			return
		}

		if task.Status.State.IsTerminal() {
			writeStreamError(w, http.StatusBadRequest, req.ID,
				errors.ErrInvalidRequest.WithMessagef(
					"task %s is in terminal state %s", id, task.Status.State))
			return
		}

		existing = &task
	}

	mode := ai.ResponseTypeTask
	if existing == nil {
		mode = srv.adapter.ResponseType(params)
	}

	var (
		taskID, contextID string
		store             stores.TaskStore
	)

	if mode == ai.ResponseTypeTask {
		store = srv.store

		if existing != nil {
			existing.AddToHistory(params.Message)
			srv.store.Add(existing)
			taskID, contextID = existing.ID, existing.ContextID
		} else {
			task := a2a.NewTask()
			task.AddToHistory(params.Message)
			srv.store.Add(task)
			taskID, contextID = task.ID, task.ContextID
		}
	}

	if params.Metadata == nil {
		params.Metadata = make(map[string]any)
	}
	params.Metadata["requestId"] = req.ID

	writeStreamHeaders(w)

	flusher, _ := w.(http.Flusher)

	sink := func(event a2a.Event) {
		srv.writeEvent(w, flusher, req.ID, event)
	}

	defer func() {
		if recovered := recover(); recovered != nil {
			logging.Error("stream adapter panicked", "taskId", taskID, "panic", recovered)
		}
	}()

	if err := srv.adapter.HandleStream(r.Context(), params, taskID, contextID, store, sink); err != nil {
		// The stream is already committed; the error ends it early.
		logging.Error("stream adapter failed", "taskId", taskID, "error", err)
	}
}

/*
streamResubscribe emits a snapshot of the task as a short SSE stream: at
most one artifact event carrying the last artifact, then one status
event, then EOF. Mid-flight events of a running task are not replayed.
*/
func (srv *A2AServer) streamResubscribe(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeStreamError(w, http.StatusBadRequest, nil,
			errors.ErrParseError.WithMessagef("failed to read request body: %v", err))
		return
	}

	req, rpcErr := jsonrpc.Decode(body)
	if rpcErr != nil {
		writeStreamError(w, http.StatusBadRequest, nil, rpcErr)
		return
	}

	var params a2a.TaskIDParams

	if rpcErr := jsonrpc.DecodeParams(req, &params); rpcErr != nil {
		writeStreamError(w, http.StatusBadRequest, req.ID, rpcErr)
		return
	}

	task, ok := srv.store.Get(params.ID)
	if !ok {
		writeStreamError(w, http.StatusBadRequest, req.ID,
			errors.ErrTaskNotFound.WithData(map[string]any{"taskId": params.ID}))
		return
	}

	terminal := task.Status.State.IsTerminal()

	writeStreamHeaders(w)

	flusher, _ := w.(http.Flusher)

	if last := task.LastArtifact(); last != nil {
		srv.writeEvent(w, flusher, req.ID, a2a.NewArtifactUpdateEvent(&task, *last, false, terminal))
	}

	task.Status.Timestamp = a2a.Timestamp()
	srv.writeEvent(w, flusher, req.ID, a2a.NewStatusUpdateEvent(&task, terminal))
}

func writeStreamHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache, no-transform")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
}

/*
writeEvent frames one event as exactly one SSE record: the event wrapped
in a JSON-RPC success envelope echoing the request id, on a single
data: line, terminated by a blank line.
*/
func (srv *A2AServer) writeEvent(w io.Writer, flusher http.Flusher, id any, event a2a.Event) {
	payload, err := json.Marshal(jsonrpc.NewResult(id, srv.outboundEvent(event)))
	if err != nil {
		logging.Error("failed to encode stream event", "kind", event.EventKind(), "error", err)
		return
	}

	fmt.Fprintf(w, "data: %s\n\n", payload)

	if flusher != nil {
		flusher.Flush()
	}
}

func writeStreamError(w http.ResponseWriter, status int, id any, rpcErr *errors.RpcError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(jsonrpc.NewError(id, rpcErr)); err != nil {
		logging.Error("failed to write stream error", "error", err)
	}
}
