package manager

import (
	"context"

	"github.com/spindlework/a2a-runtime/pkg/a2a"
	"github.com/spindlework/a2a-runtime/pkg/catalog"
	"github.com/spindlework/a2a-runtime/pkg/client"
	"github.com/spindlework/a2a-runtime/pkg/config"
	"github.com/spindlework/a2a-runtime/pkg/logging"
	"github.com/spindlework/a2a-runtime/pkg/tools"
)

/*
Manager multiplexes tool calls across a stable set of protocol clients
keyed by the server-advertised agent card name. Routing is by exact,
case-sensitive match; duplicate names across servers are a configuration
error and are not deduplicated.
*/
type Manager struct {
	clients  map[string]*client.Client
	registry *catalog.Registry
}

/*
New builds a manager from pre-built clients.
*/
func New(clients ...*client.Client) *Manager {
	mgr := &Manager{
		clients:  make(map[string]*client.Client, len(clients)),
		registry: catalog.NewRegistry(),
	}

	for _, c := range clients {
		card := c.Card()

		if _, exists := mgr.clients[card.Name]; exists {
			logging.Warn("duplicate agent name in manager", "name", card.Name)
		}

		mgr.clients[card.Name] = c
		mgr.registry.AddAgent(card)
	}

	return mgr
}

/*
NewFromConfig builds a manager from a parsed agent config: one client per
configured server, each optionally booting a colocated process with the
per-server env merged over the global env. Servers that fail to initialize
are skipped with a warning so one unreachable agent does not take the
whole manager down.
*/
func NewFromConfig(ctx context.Context, file *config.File) *Manager {
	clients := make([]*client.Client, 0, len(file.A2AServers))

	for name, server := range file.A2AServers {
		cfg := client.Config{}

		if server.Run != nil {
			cfg.URL = server.Run.URL
			cfg.Credentials = client.Credentials{
				BearerToken: server.Run.Token,
				APIKey:      server.Run.APIKey,
			}
		}

		if server.Boot != nil {
			cfg.Boot = &client.BootCall{
				Command: server.Boot.Command,
				Args:    server.Boot.Args,
				Env:     server.MergedEnv(file.GlobalEnv),
			}
		}

		c, err := client.New(ctx, cfg)
		if err != nil {
			logging.Warn("skipping unreachable agent", "server", name, "error", err)
			continue
		}

		clients = append(clients, c)
	}

	return New(clients...)
}

/*
AvailableTools produces one tool definition per registered agent: the
agent card's name and description, with a single required instructions
parameter.
*/
func (mgr *Manager) AvailableTools() []tools.Tool {
	defs := make([]tools.Tool, 0, len(mgr.clients))

	for _, card := range mgr.registry.GetAgents() {
		defs = append(defs, tools.NewStringParamTool(
			card.Name,
			card.Description,
			tools.TypeA2AAgent,
			map[string]string{"instructions": "Instructions for the agent to act on."},
			"instructions",
		))
	}

	return defs
}

/*
Close releases every client, killing any booted colocated processes.
*/
func (mgr *Manager) Close() {
	for name, c := range mgr.clients {
		if err := c.Close(); err != nil {
			logging.Warn("failed to close client", "agent", name, "error", err)
		}
	}
}

/*
AgentCall routes a tool call to the agent whose card name matches exactly
and folds the resulting event stream into responses. Routing and argument
validation failures return empty rather than erroring so one malformed
call in a batch does not poison its siblings.
*/
func (mgr *Manager) AgentCall(ctx context.Context, call tools.ToolCall) []AgentResponse {
	c, ok := mgr.clients[call.Name]
	if !ok {
		logging.Debug("no agent handles tool call", "name", call.Name)
		return nil
	}

	arguments, ok := call.Arguments.(map[string]any)
	if !ok {
		logging.Debug("tool call arguments are not an object", "name", call.Name)
		return nil
	}

	instructions, ok := arguments["instructions"].(string)
	if !ok {
		logging.Debug("tool call missing string instructions", "name", call.Name)
		return nil
	}

	stream, err := c.StreamMessage(ctx, a2a.MessageSendParams{
		Message: a2a.NewTextMessage("user", instructions),
	})
	if err != nil {
		logging.Error("failed to open agent stream", "name", call.Name, "error", err)
		return nil
	}
	defer stream.Close()

	return foldEvents(stream.Events())
}
