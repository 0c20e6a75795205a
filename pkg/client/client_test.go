package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spindlework/a2a-runtime/pkg/a2a"
	"github.com/spindlework/a2a-runtime/pkg/catalog"
	"github.com/spindlework/a2a-runtime/pkg/errors"
	"github.com/spindlework/a2a-runtime/pkg/jsonrpc"
)

// recordingServer is a canned A2A server that records the requests it saw.
type recordingServer struct {
	*httptest.Server

	mu       sync.Mutex
	requests []jsonrpc.Request
	headers  []http.Header
}

func newRecordingServer(t *testing.T) *recordingServer {
	t.Helper()

	rec := &recordingServer{}
	mux := http.NewServeMux()

	mux.HandleFunc(catalog.WellKnownPath, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(a2a.AgentCard{
			Name:         "Canned Agent",
			Capabilities: a2a.AgentCapabilities{Streaming: true},
		})
	})

	record := func(r *http.Request) jsonrpc.Request {
		var req jsonrpc.Request
		json.NewDecoder(r.Body).Decode(&req)

		rec.mu.Lock()
		rec.requests = append(rec.requests, req)
		rec.headers = append(rec.headers, r.Header.Clone())
		rec.mu.Unlock()

		return req
	}

	mux.HandleFunc("/message/send", func(w http.ResponseWriter, r *http.Request) {
		req := record(r)
		json.NewEncoder(w).Encode(jsonrpc.NewResult(req.ID, a2a.NewTextMessage("agent", "pong")))
	})

	mux.HandleFunc("/tasks/get", func(w http.ResponseWriter, r *http.Request) {
		req := record(r)

		var params a2a.TaskQueryParams
		json.Unmarshal(req.Params, &params)

		if params.ID == "missing" {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(jsonrpc.NewError(req.ID, errors.ErrTaskNotFound))
			return
		}

		task := a2a.NewTask()
		task.ID = params.ID
		json.NewEncoder(w).Encode(jsonrpc.NewResult(req.ID, task))
	})

	mux.HandleFunc("/tasks/cancel", func(w http.ResponseWriter, r *http.Request) {
		req := record(r)

		task := a2a.NewTask()
		task.Status.State = a2a.TaskStateCanceled
		json.NewEncoder(w).Encode(jsonrpc.NewResult(req.ID, task))
	})

	mux.HandleFunc("/tasks/pushNotificationConfig/set", func(w http.ResponseWriter, r *http.Request) {
		req := record(r)

		var params a2a.TaskPushNotificationConfig
		json.Unmarshal(req.Params, &params)
		json.NewEncoder(w).Encode(jsonrpc.NewResult(req.ID, params))
	})

	mux.HandleFunc("/agent/authenticatedExtendedCard", func(w http.ResponseWriter, r *http.Request) {
		req := record(r)
		json.NewEncoder(w).Encode(jsonrpc.NewResult(req.ID, a2a.AgentCard{Name: "Canned Agent"}))
	})

	mux.HandleFunc("/message/stream", func(w http.ResponseWriter, r *http.Request) {
		req := record(r)

		w.Header().Set("Content-Type", "text/event-stream")

		reply := a2a.NewTextMessage("agent", "streamed")
		payload, _ := json.Marshal(jsonrpc.NewResult(req.ID, reply))
		fmt.Fprintf(w, "data: %s\n\n", payload)
	})

	mux.HandleFunc("/tasks/resubscribe", func(w http.ResponseWriter, r *http.Request) {
		req := record(r)

		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(jsonrpc.NewError(req.ID, errors.ErrTaskNotFound))
	})

	rec.Server = httptest.NewServer(mux)
	t.Cleanup(rec.Close)

	return rec
}

func (rec *recordingServer) lastRequest() jsonrpc.Request {
	rec.mu.Lock()
	defer rec.mu.Unlock()

	return rec.requests[len(rec.requests)-1]
}

func (rec *recordingServer) lastHeader() http.Header {
	rec.mu.Lock()
	defer rec.mu.Unlock()

	return rec.headers[len(rec.headers)-1]
}

func newTestClient(t *testing.T, rec *recordingServer, creds Credentials) *Client {
	t.Helper()

	c, err := New(context.Background(), Config{URL: rec.URL, Credentials: creds})
	assert.NoError(t, err)
	t.Cleanup(func() { c.Close() })

	return c
}

func TestNewFetchesCard(t *testing.T) {
	rec := newRecordingServer(t)
	c := newTestClient(t, rec, Credentials{})

	assert.Equal(t, "Canned Agent", c.Card().Name)
	assert.True(t, c.Card().Capabilities.Streaming)
}

func TestNewFailsWithoutCard(t *testing.T) {
	_, err := New(context.Background(), Config{URL: "http://127.0.0.1:1"})
	assert.Error(t, err)
}

func TestSendMessage(t *testing.T) {
	rec := newRecordingServer(t)
	c := newTestClient(t, rec, Credentials{})

	event, err := c.SendMessage(context.Background(), a2a.MessageSendParams{
		Message: a2a.NewTextMessage("user", "ping"),
	})
	assert.NoError(t, err)

	msg, ok := event.(a2a.Message)
	assert.True(t, ok)
	assert.Equal(t, "pong", msg.String())
	assert.Equal(t, "message/send", rec.lastRequest().Method)
}

func TestRequestIDIncreases(t *testing.T) {
	rec := newRecordingServer(t)
	c := newTestClient(t, rec, Credentials{})

	params := a2a.MessageSendParams{Message: a2a.NewTextMessage("user", "x")}

	_, err := c.SendMessage(context.Background(), params)
	assert.NoError(t, err)
	first := rec.lastRequest().ID

	_, err = c.SendMessage(context.Background(), params)
	assert.NoError(t, err)
	second := rec.lastRequest().ID

	assert.Greater(t, second.(float64), first.(float64))
}

func TestBearerTokenPrecedence(t *testing.T) {
	rec := newRecordingServer(t)
	c := newTestClient(t, rec, Credentials{BearerToken: "tok", APIKey: "key"})

	_, err := c.SendMessage(context.Background(), a2a.MessageSendParams{
		Message: a2a.NewTextMessage("user", "x"),
	})
	assert.NoError(t, err)

	header := rec.lastHeader()
	assert.Equal(t, "Bearer tok", header.Get("Authorization"))
	assert.Empty(t, header.Get("X-API-Key"))
}

func TestAPIKeyHeader(t *testing.T) {
	rec := newRecordingServer(t)
	c := newTestClient(t, rec, Credentials{APIKey: "key"})

	_, err := c.SendMessage(context.Background(), a2a.MessageSendParams{
		Message: a2a.NewTextMessage("user", "x"),
	})
	assert.NoError(t, err)

	header := rec.lastHeader()
	assert.Equal(t, "key", header.Get("X-API-Key"))
	assert.Empty(t, header.Get("Authorization"))
}

func TestGetTask(t *testing.T) {
	rec := newRecordingServer(t)
	c := newTestClient(t, rec, Credentials{})

	task, err := c.GetTask(context.Background(), a2a.TaskQueryParams{
		TaskIDParams: a2a.TaskIDParams{ID: "t42"},
	})
	assert.NoError(t, err)
	assert.Equal(t, "t42", task.ID)
}

func TestGetTaskErrorEnvelope(t *testing.T) {
	rec := newRecordingServer(t)
	c := newTestClient(t, rec, Credentials{})

	_, err := c.GetTask(context.Background(), a2a.TaskQueryParams{
		TaskIDParams: a2a.TaskIDParams{ID: "missing"},
	})

	rpcErr, ok := err.(*errors.RpcError)
	assert.True(t, ok)
	assert.Equal(t, errors.ErrTaskNotFound.Code, rpcErr.Code)
}

func TestCancelTask(t *testing.T) {
	rec := newRecordingServer(t)
	c := newTestClient(t, rec, Credentials{})

	task, err := c.CancelTask(context.Background(), a2a.TaskIDParams{ID: "t1"})
	assert.NoError(t, err)
	assert.Equal(t, a2a.TaskStateCanceled, task.Status.State)
}

func TestSetPushNotificationConfigEchoes(t *testing.T) {
	rec := newRecordingServer(t)
	c := newTestClient(t, rec, Credentials{})

	sent := a2a.TaskPushNotificationConfig{
		ID:                     "t1",
		PushNotificationConfig: a2a.PushNotificationConfig{URL: "https://hooks.example.com"},
	}

	got, err := c.SetPushNotificationConfig(context.Background(), sent)
	assert.NoError(t, err)
	assert.Equal(t, sent, got)
}

func TestExtendedCard(t *testing.T) {
	rec := newRecordingServer(t)
	c := newTestClient(t, rec, Credentials{})

	card, err := c.ExtendedCard(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "Canned Agent", card.Name)
}

func TestStreamMessage(t *testing.T) {
	rec := newRecordingServer(t)
	c := newTestClient(t, rec, Credentials{})

	stream, err := c.StreamMessage(context.Background(), a2a.MessageSendParams{
		Message: a2a.NewTextMessage("user", "x"),
	})
	assert.NoError(t, err)
	defer stream.Close()

	var events []a2a.Event
	for event := range stream.Events() {
		events = append(events, event)
	}

	assert.Len(t, events, 1)
	msg, ok := events[0].(a2a.Message)
	assert.True(t, ok)
	assert.Equal(t, "streamed", msg.String())
}

func TestStreamErrorStatusSurfacesEnvelope(t *testing.T) {
	rec := newRecordingServer(t)
	c := newTestClient(t, rec, Credentials{})

	_, err := c.Resubscribe(context.Background(), a2a.TaskIDParams{ID: "gone"})

	rpcErr, ok := err.(*errors.RpcError)
	assert.True(t, ok)
	assert.Equal(t, errors.ErrTaskNotFound.Code, rpcErr.Code)
}

func TestFlattenEnv(t *testing.T) {
	flattened := flattenEnv(map[string]string{"A": "1"})
	assert.Equal(t, []string{"A=1"}, flattened)
}
