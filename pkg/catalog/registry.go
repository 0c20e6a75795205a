package catalog

import (
	"sync"

	"github.com/spindlework/a2a-runtime/pkg/a2a"
	"github.com/spindlework/a2a-runtime/pkg/logging"
)

/*
Registry is a concurrency-safe collection of agent cards keyed by the
name the serving agent advertises. Names are declared by servers;
duplicates across servers are a configuration error and are not
deduplicated here, the last writer wins.
*/
type Registry struct {
	agents *sync.Map
}

func NewRegistry() *Registry {
	return &Registry{
		agents: new(sync.Map),
	}
}

func (registry *Registry) AddAgent(card a2a.AgentCard) {
	logging.Debug("adding agent to catalog", "name", card.Name)
	registry.agents.Store(card.Name, card)
}

func (registry *Registry) GetAgent(name string) (a2a.AgentCard, bool) {
	agent, ok := registry.agents.Load(name)

	if !ok {
		return a2a.AgentCard{}, false
	}

	return agent.(a2a.AgentCard), true
}

func (registry *Registry) GetAgents() []a2a.AgentCard {
	agents := make([]a2a.AgentCard, 0)

	registry.agents.Range(func(key, value any) bool {
		agents = append(agents, value.(a2a.AgentCard))
		return true
	})

	return agents
}
