package service

import (
	"github.com/gofiber/fiber/v3"

	"github.com/spindlework/a2a-runtime/pkg/a2a"
	"github.com/spindlework/a2a-runtime/pkg/ai"
	"github.com/spindlework/a2a-runtime/pkg/errors"
	"github.com/spindlework/a2a-runtime/pkg/jsonrpc"
	"github.com/spindlework/a2a-runtime/pkg/logging"
)

/*
handleAgentCard publishes the card raw, without a JSON-RPC envelope.
*/
func (srv *A2AServer) handleAgentCard(ctx fiber.Ctx) error {
	return ctx.JSON(srv.card)
}

/*
handleMessageSend answers a send either as a bare message or by running a
full task lifecycle, depending on how the adapter classifies the params.
*/
func (srv *A2AServer) handleMessageSend(ctx fiber.Ctx) error {
	req, rpcErr := jsonrpc.Decode(ctx.Body())
	if rpcErr != nil {
		return respondError(ctx, fiber.StatusBadRequest, nil, rpcErr)
	}

	var params a2a.MessageSendParams

	if rpcErr := jsonrpc.DecodeParams(req, &params); rpcErr != nil {
		return respondError(ctx, fiber.StatusBadRequest, req.ID, rpcErr)
	}

	switch srv.adapter.ResponseType(params) {
	case ai.ResponseTypeMessage:
		msg, err := srv.adapter.HandleMessageSend(ctx.Context(), params)
		if err != nil {
			logging.Error("message send failed", "error", err)
			return respondError(ctx, fiber.StatusInternalServerError, req.ID,
				errors.ErrInternal.WithMessagef("message send failed: %v", err))
		}

		return ctx.JSON(jsonrpc.NewResult(req.ID, srv.outboundMessage(msg)))

	case ai.ResponseTypeTask:
		task := a2a.NewTask()
		task.AddToHistory(params.Message)
		srv.store.Add(task)

		if err := srv.adapter.HandleTaskSend(ctx.Context(), params, task.ID, task.ContextID, srv.store); err != nil {
			logging.Error("task send failed", "taskId", task.ID, "error", err)
			return respondError(ctx, fiber.StatusInternalServerError, req.ID,
				errors.ErrInternal.WithMessagef("task send failed: %v", err))
		}

		updated, ok := srv.store.Get(task.ID)
		if !ok {
			return respondError(ctx, fiber.StatusInternalServerError, req.ID,
				errors.ErrTaskNotFound.WithMessagef("task %s missing after processing", task.ID))
		}

		return ctx.JSON(jsonrpc.NewResult(req.ID, srv.outboundTask(updated)))
	}

	return respondError(ctx, fiber.StatusInternalServerError, req.ID,
		errors.ErrInvalidAgentResponse.WithMessagef("adapter returned an unknown response type"))
}

/*
handleTasksGet returns a stored task with its history truncated to the
requested length, or stripped when no positive length is given.
*/
func (srv *A2AServer) handleTasksGet(ctx fiber.Ctx) error {
	req, rpcErr := jsonrpc.Decode(ctx.Body())
	if rpcErr != nil {
		return respondError(ctx, fiber.StatusBadRequest, nil, rpcErr)
	}

	var params a2a.TaskQueryParams

	if rpcErr := jsonrpc.DecodeParams(req, &params); rpcErr != nil {
		return respondError(ctx, fiber.StatusBadRequest, req.ID, rpcErr)
	}

	task, ok := srv.store.Get(params.ID)
	if !ok {
		return respondError(ctx, fiber.StatusNotFound, req.ID,
			errors.ErrTaskNotFound.WithData(map[string]any{"taskId": params.ID}))
	}

	return ctx.JSON(jsonrpc.NewResult(req.ID, srv.outboundTask(task.WithHistoryLength(params.HistoryLength))))
}

/*
handleTasksCancel moves a non-terminal task to canceled. Terminal tasks
are returned unchanged, which keeps cancel idempotent.
*/
func (srv *A2AServer) handleTasksCancel(ctx fiber.Ctx) error {
	req, rpcErr := jsonrpc.Decode(ctx.Body())
	if rpcErr != nil {
		return respondError(ctx, fiber.StatusBadRequest, nil, rpcErr)
	}

	var params a2a.TaskIDParams

	if rpcErr := jsonrpc.DecodeParams(req, &params); rpcErr != nil {
		return respondError(ctx, fiber.StatusBadRequest, req.ID, rpcErr)
	}

	task, ok := srv.store.Get(params.ID)
	if !ok {
		return respondError(ctx, fiber.StatusNotFound, req.ID,
			errors.ErrTaskNotFound.WithData(map[string]any{"taskId": params.ID}))
	}

	if !task.Status.State.IsTerminal() {
		srv.store.UpdateStatus(params.ID, a2a.TaskStatus{
			State:     a2a.TaskStateCanceled,
			Timestamp: a2a.Timestamp(),
		})

		task, _ = srv.store.Get(params.ID)
	}

	return ctx.JSON(jsonrpc.NewResult(req.ID, srv.outboundTask(task)))
}

/*
handlePushConfigSet accepts and echoes a push notification config. The
runtime never delivers push notifications; the echo acknowledges storage
intent without promising delivery.
*/
func (srv *A2AServer) handlePushConfigSet(ctx fiber.Ctx) error {
	req, rpcErr := jsonrpc.Decode(ctx.Body())
	if rpcErr != nil {
		return respondError(ctx, fiber.StatusBadRequest, nil, rpcErr)
	}

	var params a2a.TaskPushNotificationConfig

	if rpcErr := jsonrpc.DecodeParams(req, &params); rpcErr != nil {
		return respondError(ctx, fiber.StatusBadRequest, req.ID, rpcErr)
	}

	return ctx.JSON(jsonrpc.NewResult(req.ID, params))
}

/*
handlePushConfigGet returns a placeholder config for the task.
*/
func (srv *A2AServer) handlePushConfigGet(ctx fiber.Ctx) error {
	req, rpcErr := jsonrpc.Decode(ctx.Body())
	if rpcErr != nil {
		return respondError(ctx, fiber.StatusBadRequest, nil, rpcErr)
	}

	var params a2a.TaskIDParams

	if rpcErr := jsonrpc.DecodeParams(req, &params); rpcErr != nil {
		return respondError(ctx, fiber.StatusBadRequest, req.ID, rpcErr)
	}

	return ctx.JSON(jsonrpc.NewResult(req.ID, a2a.TaskPushNotificationConfig{
		ID:                     params.ID,
		PushNotificationConfig: a2a.PushNotificationConfig{URL: ""},
	}))
}

/*
handleExtendedCard returns the card in a success envelope. Because auth
runs before this handler, holders of valid credentials get the same card
the well-known endpoint serves.
*/
func (srv *A2AServer) handleExtendedCard(ctx fiber.Ctx) error {
	req, rpcErr := jsonrpc.Decode(ctx.Body())
	if rpcErr != nil {
		return respondError(ctx, fiber.StatusBadRequest, nil, rpcErr)
	}

	return ctx.JSON(jsonrpc.NewResult(req.ID, srv.card))
}

func (srv *A2AServer) outboundMessage(msg a2a.Message) a2a.Message {
	if !srv.opts.FilterReasoning {
		return msg
	}

	return a2a.FilterMessage(msg)
}

func (srv *A2AServer) outboundTask(task a2a.Task) a2a.Task {
	if !srv.opts.FilterReasoning {
		return task
	}

	return a2a.FilterTask(task)
}

func (srv *A2AServer) outboundEvent(event a2a.Event) a2a.Event {
	if !srv.opts.FilterReasoning {
		return event
	}

	switch evt := event.(type) {
	case a2a.Message:
		return a2a.FilterMessage(evt)
	case a2a.Task:
		return a2a.FilterTask(evt)
	case a2a.TaskStatusUpdateEvent:
		if evt.Status.Message != nil {
			filtered := a2a.FilterMessage(*evt.Status.Message)
			evt.Status.Message = &filtered
		}
		return evt
	case a2a.TaskArtifactUpdateEvent:
		evt.Artifact = a2a.FilterArtifact(evt.Artifact)
		return evt
	}

	return event
}
