package service

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/gofiber/fiber/v3/middleware/logger"

	"github.com/spindlework/a2a-runtime/pkg/a2a"
	"github.com/spindlework/a2a-runtime/pkg/ai"
	"github.com/spindlework/a2a-runtime/pkg/catalog"
	"github.com/spindlework/a2a-runtime/pkg/errors"
	"github.com/spindlework/a2a-runtime/pkg/jsonrpc"
	"github.com/spindlework/a2a-runtime/pkg/logging"
	"github.com/spindlework/a2a-runtime/pkg/stores"
)

// File payloads larger than this must be referenced by URL instead of
// inlined as base64 bytes.
const maxBodyBytes = 100 << 20

const defaultAddr = ":3210"

/*
Options configures a server instance. A non-empty BearerToken puts a
security scheme on the agent card, which in turn gates every endpoint
except the well-known card.
*/
type Options struct {
	Addr            string
	URL             string
	Version         string
	BearerToken     string
	FilterReasoning bool
}

/*
A2AServer is the protocol dispatcher: it owns the HTTP surface, the task
store and the agent card, and delegates all agent behavior to the
injected adapter. Safe for concurrent use because the store is.
*/
type A2AServer struct {
	app     *fiber.App
	adapter ai.Adapter
	store   stores.TaskStore
	card    a2a.AgentCard
	opts    Options
}

/*
NewA2AServer constructs a server around the supplied adapter.
*/
func NewA2AServer(adapter ai.Adapter, opts Options) *A2AServer {
	srv := &A2AServer{
		app: fiber.New(fiber.Config{
			AppName:           adapter.AgentName(),
			ServerHeader:      "A2A-Agent-Server",
			BodyLimit:         maxBodyBytes,
			StreamRequestBody: true,
		}),
		adapter: adapter,
		store:   stores.NewInMemoryTaskStore(),
		card:    buildCard(adapter, opts),
		opts:    opts,
	}

	srv.routes()
	return srv
}

func (srv *A2AServer) routes() {
	srv.app.Use(logger.New(logger.Config{
		// Skip logging for the streaming endpoints to reduce noise.
		Next: func(ctx fiber.Ctx) bool {
			return ctx.Path() == "/message/stream" || ctx.Path() == "/tasks/resubscribe"
		},
	}), healthcheck.NewHealthChecker())

	srv.app.Use(srv.requireAuth)

	srv.app.Get(catalog.WellKnownPath, srv.handleAgentCard)
	srv.app.Post("/message/send", srv.handleMessageSend)
	srv.app.Post("/message/stream", srv.handleMessageStream)
	srv.app.Post("/tasks/get", srv.handleTasksGet)
	srv.app.Post("/tasks/cancel", srv.handleTasksCancel)
	srv.app.Post("/tasks/resubscribe", srv.handleResubscribe)
	srv.app.Post("/tasks/pushNotificationConfig/set", srv.handlePushConfigSet)
	srv.app.Post("/tasks/pushNotificationConfig/get", srv.handlePushConfigGet)
	srv.app.Post("/agent/authenticatedExtendedCard", srv.handleExtendedCard)
}

/*
Start blocks serving the configured address.
*/
func (srv *A2AServer) Start() error {
	addr := srv.opts.Addr
	if addr == "" {
		addr = defaultAddr
	}

	logging.Info("starting agent server", "agent", srv.card.Name, "addr", addr)
	return srv.app.Listen(addr, fiber.ListenConfig{DisableStartupMessage: true})
}

func (srv *A2AServer) Shutdown() error {
	return srv.app.Shutdown()
}

/*
App exposes the underlying fiber app, mainly for in-process testing.
*/
func (srv *A2AServer) App() *fiber.App {
	return srv.app
}

func (srv *A2AServer) Card() a2a.AgentCard {
	return srv.card
}

/*
Store exposes the task store so colocated callers can observe task state.
*/
func (srv *A2AServer) Store() stores.TaskStore {
	return srv.store
}

func buildCard(adapter ai.Adapter, opts Options) a2a.AgentCard {
	version := opts.Version
	if version == "" {
		version = "0.1.0"
	}

	card := a2a.AgentCard{
		Name:               adapter.AgentName(),
		Description:        adapter.AgentDescription(),
		URL:                opts.URL,
		Version:            version,
		Capabilities:       adapter.CardCapabilities(),
		DefaultInputModes:  adapter.DefaultInputModes(),
		DefaultOutputModes: adapter.DefaultOutputModes(),
		Skills:             adapter.Skills(),
	}

	if opts.BearerToken != "" {
		card.SecuritySchemes = []a2a.SecurityScheme{{Type: "http", Scheme: "bearer"}}
		card.Security = []map[string][]string{{"bearer": {}}}
	}

	return card
}

func respondError(ctx fiber.Ctx, status int, id any, rpcErr *errors.RpcError) error {
	return ctx.Status(status).JSON(jsonrpc.NewError(id, rpcErr))
}
