package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"strings"
	"sync/atomic"
	"time"

	fiberClient "github.com/gofiber/fiber/v3/client"
	"github.com/spindlework/a2a-runtime/pkg/a2a"
	"github.com/spindlework/a2a-runtime/pkg/catalog"
	"github.com/spindlework/a2a-runtime/pkg/errors"
	"github.com/spindlework/a2a-runtime/pkg/jsonrpc"
	"github.com/spindlework/a2a-runtime/pkg/logging"
	"github.com/spindlework/a2a-runtime/pkg/sse"
)

// Card polling budget when a colocated server process was just booted.
const (
	bootAttempts = 30
	bootDelay    = time.Second
)

/*
Credentials attaches authentication to every request. The bearer token
takes precedence as an Authorization header; otherwise the API key is sent
as X-API-Key; else no auth header at all.
*/
type Credentials struct {
	BearerToken string
	APIKey      string
}

/*
BootCall describes a colocated server process to spawn before connecting.
*/
type BootCall struct {
	Command string
	Args    []string
	Env     map[string]string
}

/*
Config configures a protocol client for one remote agent.
*/
type Config struct {
	URL         string
	Credentials Credentials
	Boot        *BootCall
}

/*
Client speaks the A2A protocol to a single remote agent: one method per
server endpoint, with a monotonically increasing per-client request id.
Unary calls go through the fiber client; streaming endpoints return a lazy
event sequence read from the SSE response body.
*/
type Client struct {
	baseURL   string
	card      a2a.AgentCard
	creds     Credentials
	conn      *fiberClient.Client
	http      *http.Client
	requestID atomic.Int64
	boot      *exec.Cmd
}

/*
New connects to the agent at cfg.URL. When a boot call is configured the
process is spawned first and the well-known card is polled for up to 30
seconds; without one a single immediate fetch is made. Failure to retrieve
the card is fatal to initialization.
*/
func New(ctx context.Context, cfg Config) (*Client, error) {
	client := &Client{
		baseURL: strings.TrimRight(cfg.URL, "/"),
		creds:   cfg.Credentials,
		conn:    fiberClient.New().SetBaseURL(strings.TrimRight(cfg.URL, "/")),
		http:    &http.Client{},
	}

	if cfg.Boot != nil {
		cmd := exec.Command(cfg.Boot.Command, cfg.Boot.Args...)
		cmd.Env = append(os.Environ(), flattenEnv(cfg.Boot.Env)...)

		if err := cmd.Start(); err != nil {
			return nil, fmt.Errorf("failed to boot agent process: %w", err)
		}

		client.boot = cmd
		logging.Info("booted agent process", "command", cfg.Boot.Command, "pid", cmd.Process.Pid)

		card, err := catalog.AwaitAgentCard(ctx, client.http, client.baseURL, bootAttempts, bootDelay)
		if err != nil {
			return nil, err
		}

		client.card = card
		return client, nil
	}

	card, err := catalog.FetchAgentCard(ctx, client.http, client.baseURL)
	if err != nil {
		return nil, err
	}

	client.card = card
	return client, nil
}

/*
Card returns the agent card resolved during initialization.
*/
func (client *Client) Card() a2a.AgentCard {
	return client.card
}

/*
Close terminates a booted colocated process, if any.
*/
func (client *Client) Close() error {
	if client.boot != nil && client.boot.Process != nil {
		return client.boot.Process.Kill()
	}

	return nil
}

func (client *Client) nextID() int64 {
	return client.requestID.Add(1)
}

func (client *Client) headers() map[string]string {
	headers := map[string]string{
		"Content-Type": "application/json",
	}

	switch {
	case client.creds.BearerToken != "":
		headers["Authorization"] = "Bearer " + client.creds.BearerToken
	case client.creds.APIKey != "":
		headers["X-API-Key"] = client.creds.APIKey
	}

	return headers
}

// rpcEnvelope mirrors jsonrpc.Response with a raw result so callers can
// decode into their own type.
type rpcEnvelope struct {
	JSONRPC string           `json:"jsonrpc"`
	ID      any              `json:"id,omitempty"`
	Result  json.RawMessage  `json:"result,omitempty"`
	Error   *errors.RpcError `json:"error,omitempty"`
}

/*
call performs a unary JSON-RPC request against the given path and decodes
the success result into out.
*/
func (client *Client) call(path string, params any, out any) error {
	raw, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("failed to marshal params: %w", err)
	}

	req := jsonrpc.NewRequest(strings.TrimPrefix(path, "/"), client.nextID(), raw)

	res, err := client.conn.Post(path, fiberClient.Config{
		Header: client.headers(),
		Body:   req,
	})
	if err != nil {
		return fmt.Errorf("network error calling %s: %w", path, err)
	}

	var envelope rpcEnvelope

	if err := json.Unmarshal(res.Body(), &envelope); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", path, err)
	}

	if envelope.Error != nil {
		return envelope.Error
	}

	if out != nil && len(envelope.Result) > 0 {
		if err := json.Unmarshal(envelope.Result, out); err != nil {
			return fmt.Errorf("failed to decode result from %s: %w", path, err)
		}
	}

	return nil
}

/*
stream opens a streaming endpoint and hands the response body to the SSE
reader. The returned sequence is finite and non-restartable; closing it
cancels the producer.
*/
func (client *Client) stream(ctx context.Context, path string, params any) (*sse.Stream, error) {
	raw, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal params: %w", err)
	}

	body, err := json.Marshal(jsonrpc.NewRequest(strings.TrimPrefix(path, "/"), client.nextID(), raw))
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, client.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	for key, value := range client.headers() {
		req.Header.Set(key, value)
	}
	req.Header.Set("Accept", "text/event-stream")

	resp, err := client.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("network error opening stream %s: %w", path, err)
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()

		payload, _ := io.ReadAll(resp.Body)

		var envelope rpcEnvelope
		if err := json.Unmarshal(payload, &envelope); err == nil && envelope.Error != nil {
			return nil, envelope.Error
		}

		return nil, fmt.Errorf("unexpected status %d opening stream %s", resp.StatusCode, path)
	}

	return sse.NewStream(resp.Body), nil
}

/*
SendMessage performs message/send. The result is either a Message or a
Task depending on how the remote adapter classified the send.
*/
func (client *Client) SendMessage(ctx context.Context, params a2a.MessageSendParams) (a2a.Event, error) {
	var raw json.RawMessage

	if err := client.call("/message/send", params, &raw); err != nil {
		return nil, err
	}

	return a2a.DecodeEvent(raw)
}

/*
StreamMessage performs message/stream and returns the event sequence.
*/
func (client *Client) StreamMessage(ctx context.Context, params a2a.MessageSendParams) (*sse.Stream, error) {
	return client.stream(ctx, "/message/stream", params)
}

/*
GetTask performs tasks/get.
*/
func (client *Client) GetTask(ctx context.Context, params a2a.TaskQueryParams) (a2a.Task, error) {
	var task a2a.Task

	if err := client.call("/tasks/get", params, &task); err != nil {
		return a2a.Task{}, err
	}

	return task, nil
}

/*
CancelTask performs tasks/cancel. Cancel is idempotent server-side:
terminal tasks come back unchanged.
*/
func (client *Client) CancelTask(ctx context.Context, params a2a.TaskIDParams) (a2a.Task, error) {
	var task a2a.Task

	if err := client.call("/tasks/cancel", params, &task); err != nil {
		return a2a.Task{}, err
	}

	return task, nil
}

/*
Resubscribe performs tasks/resubscribe, yielding a short snapshot stream:
at most one artifact event and one status event.
*/
func (client *Client) Resubscribe(ctx context.Context, params a2a.TaskIDParams) (*sse.Stream, error) {
	return client.stream(ctx, "/tasks/resubscribe", params)
}

/*
SetPushNotificationConfig performs tasks/pushNotificationConfig/set. The
server echoes the config without delivering notifications.
*/
func (client *Client) SetPushNotificationConfig(ctx context.Context, params a2a.TaskPushNotificationConfig) (a2a.TaskPushNotificationConfig, error) {
	var config a2a.TaskPushNotificationConfig

	if err := client.call("/tasks/pushNotificationConfig/set", params, &config); err != nil {
		return a2a.TaskPushNotificationConfig{}, err
	}

	return config, nil
}

/*
GetPushNotificationConfig performs tasks/pushNotificationConfig/get.
*/
func (client *Client) GetPushNotificationConfig(ctx context.Context, params a2a.TaskIDParams) (a2a.TaskPushNotificationConfig, error) {
	var config a2a.TaskPushNotificationConfig

	if err := client.call("/tasks/pushNotificationConfig/get", params, &config); err != nil {
		return a2a.TaskPushNotificationConfig{}, err
	}

	return config, nil
}

/*
ExtendedCard performs agent/authenticatedExtendedCard.
*/
func (client *Client) ExtendedCard(ctx context.Context) (a2a.AgentCard, error) {
	var card a2a.AgentCard

	if err := client.call("/agent/authenticatedExtendedCard", struct{}{}, &card); err != nil {
		return a2a.AgentCard{}, err
	}

	return card, nil
}

/*
flattenEnv renders an env map as KEY=value pairs for exec. Values are
already strings at this layer; the config package flattens booleans and
numbers before they get here.
*/
func flattenEnv(env map[string]string) []string {
	flattened := make([]string, 0, len(env))

	for key, value := range env {
		flattened = append(flattened, key+"="+value)
	}

	return flattened
}
